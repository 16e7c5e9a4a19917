package repository

import (
	"context"
	"regexp"
)

// Repository is the visitor store.
type Repository interface {
	// EnsureSchema creates the visitor table when it does not exist.
	EnsureSchema(ctx context.Context) error
	// InsertIfAbsent stores userKey once. inserted is false when the key was
	// already present.
	InsertIfAbsent(ctx context.Context, userKey string) (inserted bool, err error)
}

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// ValidTableName reports whether name can be interpolated into SQL as a table
// identifier.
func ValidTableName(name string) bool {
	return tableNamePattern.MatchString(name)
}
