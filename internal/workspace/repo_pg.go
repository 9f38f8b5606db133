package workspace

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo on database/sql. The queries run unchanged on
// Postgres and SQLite.
type PGRepo struct {
	DB *sql.DB
}

// Put upserts the entry.
func (r *PGRepo) Put(ctx context.Context, entry Entry) error {
	const query = `
INSERT INTO workspace_entries (user_id, key, value, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, key) DO UPDATE SET
  value = EXCLUDED.value,
  updated_at = EXCLUDED.updated_at`
	_, err := r.DB.ExecContext(ctx, query, entry.UserID, entry.Key, entry.Value, entry.UpdatedAt)
	return err
}

// ListByUser returns all entries stored for userID.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Entry, error) {
	const query = `
SELECT user_id, key, value, updated_at
FROM workspace_entries
WHERE user_id = $1
ORDER BY key`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.UserID, &e.Key, &e.Value, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
