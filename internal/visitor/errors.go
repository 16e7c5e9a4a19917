package visitor

import (
	"errors"
	"fmt"
)

var ErrEmptyUserKey = errors.New("visitor: empty user key")

// PersistenceError is returned when the visitor store rejects a write.
type PersistenceError struct {
	UserKey string
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("visitor: record %q: %v", e.UserKey, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
