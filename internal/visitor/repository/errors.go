package repository

import "errors"

var (
	ErrFailedToInsert  = errors.New("failed to insert visitor")
	ErrFailedToMigrate = errors.New("failed to create visitor table")
	ErrInvalidTable    = errors.New("invalid visitor table name")
)
