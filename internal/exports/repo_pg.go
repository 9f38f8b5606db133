package exports

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo on database/sql (Postgres or SQLite).
type PGRepo struct {
	DB *sql.DB
}

// Create inserts an export.
func (r *PGRepo) Create(ctx context.Context, export Export) error {
	const query = `
INSERT INTO exports (
    id, user_id, source, storage_key, file_name, mime_type, size_bytes, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		export.ID,
		export.UserID,
		export.Source,
		export.StorageKey,
		export.FileName,
		export.MimeType,
		export.SizeBytes,
		export.CreatedAt,
	)
	return err
}

// GetByID returns an export by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, exportID string) (Export, error) {
	const query = `
SELECT id, user_id, source, storage_key, file_name, mime_type, size_bytes, created_at
FROM exports
WHERE id = $1
LIMIT 1`
	export, err := scanExport(r.DB.QueryRowContext(ctx, query, exportID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Export{}, ErrNotFound
		}
		return Export{}, err
	}
	if export.UserID != userID {
		return Export{}, ErrForbidden
	}
	return export, nil
}

// ListByUser lists exports ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Export, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, source, storage_key, file_name, mime_type, size_bytes, created_at
FROM exports
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Export{}
	for rows.Next() {
		export, err := scanExport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, export)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExport(row rowScanner) (Export, error) {
	var e Export
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.Source,
		&e.StorageKey,
		&e.FileName,
		&e.MimeType,
		&e.SizeBytes,
		&e.CreatedAt,
	)
	return e, err
}

var _ Repo = (*PGRepo)(nil)
