package apierr

import (
	"errors"
	"fmt"
	"net/http"

	pkgerrors "github.com/yungbote/designhire-backend/internal/pkg/errors"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// The status helpers wrap the matching pkg/errors sentinel, so callers can
// test the condition with errors.Is without knowing the status code.

func BadRequest(code, msg string) *Error {
	return Detail(http.StatusBadRequest, code, msg, pkgerrors.ErrInvalidArgument)
}

func Unauthorized(code, msg string) *Error {
	return Detail(http.StatusUnauthorized, code, msg, pkgerrors.ErrUnauthorized)
}

func NotFound(code, msg string) *Error {
	return Detail(http.StatusNotFound, code, msg, pkgerrors.ErrNotFound)
}

func Forbidden(msg string) *Error {
	return Detail(http.StatusForbidden, "forbidden", msg, pkgerrors.ErrForbidden)
}

func Internal(code string, err error) *Error {
	return New(http.StatusInternalServerError, code, err)
}

// As extracts an *Error from err. Unknown errors become a 500.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) && ae != nil {
		return ae
	}
	return Internal("internal_error", err)
}

type detailError struct {
	msg   string
	cause error
}

func (e *detailError) Error() string { return e.msg }
func (e *detailError) Unwrap() error { return e.cause }

// Detail reports msg to the client while keeping cause matchable with errors.Is.
func Detail(status int, code, msg string, cause error) *Error {
	return New(status, code, &detailError{msg: msg, cause: cause})
}
