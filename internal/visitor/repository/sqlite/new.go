package sqlite

import (
	"database/sql"
	"fmt"

	"chat-relay/internal/visitor/repository"
	"chat-relay/pkg/log"
)

type implRepository struct {
	db    *sql.DB
	l     log.Logger
	table string
}

// New creates a SQLite-backed visitor Repository writing into table.
func New(db *sql.DB, l log.Logger, table string) (repository.Repository, error) {
	if db == nil {
		panic("visitor/repository/sqlite: db is required")
	}
	if !repository.ValidTableName(table) {
		return nil, fmt.Errorf("%w: %q", repository.ErrInvalidTable, table)
	}
	return &implRepository{db: db, l: l, table: table}, nil
}

func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("visitor/repository/sqlite.%s", method)
}
