package health

import (
	"context"
	"database/sql"
	"time"
)

const pingTimeout = 2 * time.Second

// Database states reported by Status.
const (
	DatabaseMemory      = "memory"
	DatabaseOK          = "ok"
	DatabaseUnavailable = "unavailable"
)

// Service encapsulates health-related checks.
type Service struct {
	LLMProvider string
	DB          *sql.DB
}

// NewService constructs a new health service.
func NewService(llmProvider string, db *sql.DB) *Service {
	return &Service{LLMProvider: llmProvider, DB: db}
}

// Status is the payload served by GET /health.
type Status struct {
	OK          bool   `json:"ok"`
	LLMProvider string `json:"llmProvider"`
	Database    string `json:"database"`
}

// Status reports the configured provider and pings the database when one is wired.
// OK stays true when the database is unavailable.
func (s *Service) Status(ctx context.Context) Status {
	st := Status{OK: true, LLMProvider: s.LLMProvider, Database: DatabaseMemory}
	if st.LLMProvider == "" {
		st.LLMProvider = "none"
	}
	if s.DB == nil {
		return st
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(pingCtx); err != nil {
		st.Database = DatabaseUnavailable
		return st
	}
	st.Database = DatabaseOK
	return st
}
