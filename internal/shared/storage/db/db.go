package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	_ "modernc.org/sqlite"             // pure-Go sqlite driver for database/sql

	"resume-builder/internal/shared/telemetry"
)

// Dialects understood by Connect and RunMigrations. The values are goose
// dialect names.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

// ErrEmptyURL is returned when no DATABASE_URL is configured.
var ErrEmptyURL = errors.New("DATABASE_URL is empty")

// Target is a DATABASE_URL resolved to a database/sql driver.
type Target struct {
	Driver  string
	DSN     string
	Dialect string
}

// ParseURL resolves a DATABASE_URL. postgres:// and postgresql:// URLs (and
// bare key=value DSNs) go to pgx; sqlite://, file: and *.db go to sqlite.
func ParseURL(databaseURL string) (Target, error) {
	u := strings.TrimSpace(databaseURL)
	if u == "" {
		return Target{}, ErrEmptyURL
	}
	if Dialect(u) == DialectPostgres {
		if scheme, _, ok := strings.Cut(u, "://"); ok && scheme != "postgres" && scheme != "postgresql" {
			return Target{}, fmt.Errorf("unsupported database scheme %q", scheme)
		}
		return Target{Driver: "pgx", DSN: u, Dialect: DialectPostgres}, nil
	}

	dsn := strings.TrimPrefix(u, "sqlite://")
	if !strings.Contains(dsn, "_pragma=") {
		if strings.Contains(dsn, "?") {
			dsn += "&" + sqlitePragmas
		} else {
			dsn += "?" + sqlitePragmas
		}
	}
	return Target{Driver: "sqlite", DSN: dsn, Dialect: DialectSQLite}, nil
}

// Dialect reports the goose dialect for a DATABASE_URL.
func Dialect(databaseURL string) string {
	u := strings.TrimSpace(databaseURL)
	switch {
	case strings.HasPrefix(u, "sqlite://"), strings.HasPrefix(u, "file:"), strings.HasSuffix(u, ".db"):
		return DialectSQLite
	default:
		return DialectPostgres
	}
}

// Pool tunes the connection pool. Zero fields keep database/sql defaults,
// except MaxOpen which falls back to 10.
type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
	PingTimeout time.Duration
}

// ServerPool suits the long-running API process.
func ServerPool() Pool {
	return Pool{MaxOpen: 10, MaxIdle: 5, MaxLifetime: time.Hour, MaxIdleTime: 2 * time.Minute, PingTimeout: 5 * time.Second}
}

// MigratePool suits one-shot CLI runs.
func MigratePool() Pool {
	return Pool{MaxOpen: 1, MaxIdle: 1, MaxLifetime: time.Hour, PingTimeout: 5 * time.Second}
}

// WithEnv overrides fields from DB_MAX_OPEN_CONNS, DB_MAX_IDLE_CONNS,
// DB_CONN_MAX_LIFETIME, DB_CONN_MAX_IDLE_TIME and DB_PING_TIMEOUT.
// Malformed values are logged and ignored.
func (p Pool) WithEnv() Pool {
	ints := map[string]*int{
		"DB_MAX_OPEN_CONNS": &p.MaxOpen,
		"DB_MAX_IDLE_CONNS": &p.MaxIdle,
	}
	for key, dst := range ints {
		if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil || v < 0 {
				telemetry.Warn("db.invalid_env", map[string]any{"key": key, "value": raw})
				continue
			}
			*dst = v
		}
	}
	durations := map[string]*time.Duration{
		"DB_CONN_MAX_LIFETIME":  &p.MaxLifetime,
		"DB_CONN_MAX_IDLE_TIME": &p.MaxIdleTime,
		"DB_PING_TIMEOUT":       &p.PingTimeout,
	}
	for key, dst := range durations {
		if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
			v, err := time.ParseDuration(raw)
			if err != nil || v < 0 {
				telemetry.Warn("db.invalid_env", map[string]any{"key": key, "value": raw})
				continue
			}
			*dst = v
		}
	}
	return p
}

func (p Pool) apply(db *sql.DB) {
	maxOpen := p.MaxOpen
	if maxOpen <= 0 {
		maxOpen = 10
	}
	db.SetMaxOpenConns(maxOpen)
	if p.MaxIdle > 0 {
		db.SetMaxIdleConns(p.MaxIdle)
	}
	if p.MaxLifetime > 0 {
		db.SetConnMaxLifetime(p.MaxLifetime)
	}
	if p.MaxIdleTime > 0 {
		db.SetConnMaxIdleTime(p.MaxIdleTime)
	}
}

var openDB = sql.Open

// Connect opens and pings the database behind databaseURL. SQLite always runs
// on a single connection.
func Connect(ctx context.Context, databaseURL string, pool Pool) (*sql.DB, error) {
	target, err := ParseURL(databaseURL)
	if err != nil {
		return nil, err
	}
	db, err := openDB(target.Driver, target.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", target.Driver, err)
	}
	if target.Dialect == DialectSQLite {
		pool.MaxOpen, pool.MaxIdle = 1, 1
	}
	pool.apply(db)

	timeout := pool.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", target.Dialect, err)
	}

	stats := db.Stats()
	telemetry.Info("db.connected", map[string]any{
		"dialect":  target.Dialect,
		"max_open": stats.MaxOpenConnections,
		"open":     stats.OpenConnections,
	})
	return db, nil
}
