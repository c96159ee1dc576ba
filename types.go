package booklend

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("Query no results")
var ErrDuplicate = errors.New("Duplicate key")
var ErrConflict = errors.New("Conflict")

// Error is a failure with a message meant for API clients. Kind is one of
// the sentinel errors above so callers can use errors.Is.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

func notFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Msg: fmt.Sprintf(format, args...)}
}

// UserInput is the body accepted when registering a user
type UserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BookInput is the body accepted when adding a book, it is stored as is
type BookInput struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Language    string `json:"language"`
	Description string `json:"description"`
}

// ReturnInput is the body accepted when a book is returned.
// Score is kept raw so any JSON value decodes and the checks can tell a
// missing score apart from a malformed one.
type ReturnInput struct {
	Score json.RawMessage `json:"score"`
}

type ImportResult struct {
	Added   int
	Invalid int
	Errors  int
}
