// Package cerr provides the core errors which carry an HTTP status
// code hint, so the restful adapters can report them properly without
// knowing the core error types individually.
package cerr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/momeni/txscope/pkg/core/orm"
)

type Error struct {
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

func Conflict(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusConflict}
}

// FromORM wraps the orm sentinel errors with their corresponding
// status codes. Other errors (including nil) are returned as is.
func FromORM(err error) error {
	var re *orm.ResolutionError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, orm.ErrNotFound),
		errors.Is(err, orm.ErrNoRowsUpdated),
		errors.Is(err, orm.ErrNoRowsDeleted):
		return NotFound(err)
	case errors.Is(err, orm.ErrConflict):
		return Conflict(err)
	case errors.As(err, &re):
		return BadRequest(err)
	default:
		return err
	}
}
