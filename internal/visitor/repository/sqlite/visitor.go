package sqlite

import (
	"context"
	"fmt"

	repo "chat-relay/internal/visitor/repository"
)

func (r *implRepository) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			username   TEXT NOT NULL UNIQUE,
			created_at INTEGER NOT NULL DEFAULT (unixepoch())
		)`, r.table)

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("EnsureSchema"), err)
		return repo.ErrFailedToMigrate
	}
	return nil
}

func (r *implRepository) InsertIfAbsent(ctx context.Context, userKey string) (bool, error) {
	query := fmt.Sprintf(`INSERT OR IGNORE INTO %s (username) VALUES (?)`, r.table)

	res, err := r.db.ExecContext(ctx, query, userKey)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("InsertIfAbsent"), err)
		return false, repo.ErrFailedToInsert
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, nil
	}
	return n > 0, nil
}
