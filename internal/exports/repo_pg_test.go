package exports

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"resume-builder/internal/shared/storage/db"
)

func TestPGRepoCreate(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	export := Export{
		ID: "export-1", UserID: "user-1", Source: SourceTailor, StorageKey: "k",
		FileName: FileName, MimeType: MimeType, SizeBytes: 12, CreatedAt: time.Now().UTC(),
	}
	mock.ExpectExec("INSERT INTO exports").
		WithArgs(export.ID, export.UserID, export.Source, export.StorageKey, export.FileName, export.MimeType, export.SizeBytes, export.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := (&PGRepo{DB: sqlDB}).Create(context.Background(), export); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDOwnership(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	cols := []string{"id", "user_id", "source", "storage_key", "file_name", "mime_type", "size_bytes", "created_at"}
	mock.ExpectQuery("SELECT .* FROM exports WHERE id = \\$1").
		WithArgs("export-1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("export-1", "owner", SourceManual, "k", FileName, MimeType, 3, time.Now().UTC()))
	mock.ExpectQuery("SELECT .* FROM exports WHERE id = \\$1").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(cols))

	repo := &PGRepo{DB: sqlDB}
	if _, err := repo.GetByID(context.Background(), "someone-else", "export-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := repo.GetByID(context.Background(), "owner", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoOnSQLite(t *testing.T) {
	ctx := context.Background()
	sqlDB, err := db.Connect(ctx, "sqlite://"+filepath.Join(t.TempDir(), "exports.db"), db.MigratePool())
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.RunMigrations(ctx, sqlDB, db.DialectSQLite); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}

	repo := &PGRepo{DB: sqlDB}
	base := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "new"} {
		err := repo.Create(ctx, Export{
			ID: id, UserID: "user-1", Source: SourcePreview, StorageKey: "k-" + id,
			FileName: FileName, MimeType: MimeType, SizeBytes: int64(10 + i), CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Create %s: %v", id, err)
		}
	}

	list, err := repo.ListByUser(ctx, "user-1", 10, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 2 || list[0].ID != "new" || list[1].ID != "old" {
		t.Fatalf("expected newest first, got %+v", list)
	}
	got, err := repo.GetByID(ctx, "user-1", "old")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.CreatedAt.Equal(base) || got.SizeBytes != 10 {
		t.Fatalf("unexpected export %+v", got)
	}
}
