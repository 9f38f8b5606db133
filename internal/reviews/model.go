package reviews

import (
	"encoding/json"
	"time"
)

// Entry is one stored tailor or review result.
type Entry struct {
	ID        string
	UserID    string
	Kind      string
	JobTitle  string
	Review    json.RawMessage
	CreatedAt time.Time
}
