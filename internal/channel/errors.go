package channel

import "fmt"

// Error reports a failed channel operation.
type Error struct {
	Op     string
	ChatID int64
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("channel %s chat=%d: %v", e.Op, e.ChatID, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
