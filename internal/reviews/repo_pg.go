package reviews

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo on database/sql (Postgres or SQLite).
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, entry Entry) error {
	const query = `
INSERT INTO review_history (id, user_id, kind, job_title, review, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Kind,
		entry.JobTitle,
		string(entry.Review),
		entry.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (Entry, error) {
	const query = `
SELECT id, user_id, kind, job_title, review, created_at
FROM review_history
WHERE id = $1 AND user_id = $2
LIMIT 1`
	entry, err := scanEntry(r.DB.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return entry, err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, kind, job_title, review, created_at
FROM review_history
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var (
		e      Entry
		review string
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.Kind, &e.JobTitle, &review, &e.CreatedAt); err != nil {
		return Entry{}, err
	}
	e.Review = []byte(review)
	return e, nil
}

var _ Repo = (*PGRepo)(nil)
