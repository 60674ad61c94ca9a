// Package errs provides the error taxonomy bridges return to the web layer.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"

	"github.com/jrazmi/tasktrack/sdk/validation"
)

// ErrCode is an application error code with a fixed HTTP status.
type ErrCode struct {
	value  int
	name   string
	status int
}

func (ec ErrCode) Value() int      { return ec.value }
func (ec ErrCode) String() string  { return ec.name }
func (ec ErrCode) HTTPStatus() int { return ec.status }

var (
	InvalidArgument = ErrCode{value: 1, name: "invalid_argument", status: http.StatusBadRequest}
	Unauthenticated = ErrCode{value: 2, name: "unauthenticated", status: http.StatusUnauthorized}
	NotFound        = ErrCode{value: 3, name: "not_found", status: http.StatusNotFound}
	AlreadyExists   = ErrCode{value: 4, name: "already_exists", status: http.StatusConflict}
	Aborted         = ErrCode{value: 5, name: "aborted", status: http.StatusConflict}
	TooManyRequests = ErrCode{value: 6, name: "too_many_requests", status: http.StatusTooManyRequests}
	Internal        = ErrCode{value: 7, name: "internal", status: http.StatusInternalServerError}

	// InternalOnlyLog is logged with its message but rendered as a generic
	// internal error.
	InternalOnlyLog = ErrCode{value: 8, name: "internal_only_log", status: http.StatusInternalServerError}
)

const internalMessage = "Internal Server Error"

// Error is the error value handlers return. It encodes itself as the JSON
// error body.
type Error struct {
	Code     ErrCode                 `json:"-"`
	Message  string                  `json:"message"`
	Fields   []validation.FieldError `json:"errors,omitempty"`
	FuncName string                  `json:"-"`
	FileName string                  `json:"-"`
}

// New wraps err with code, recording the caller.
func New(code ErrCode, err error) *Error {
	return newError(code, err.Error())
}

// Newf builds an Error with a formatted message, recording the caller.
func Newf(code ErrCode, format string, v ...any) *Error {
	return newError(code, fmt.Sprintf(format, v...))
}

// NewFieldErrors reports a validation failure carrying every field error.
func NewFieldErrors(fe *validation.FieldErrors) *Error {
	e := newError(InvalidArgument, "Validation failed")
	if fe != nil {
		e.Fields = append([]validation.FieldError(nil), (*fe)...)
		if len(e.Fields) == 1 {
			e.Message = e.Fields[0].Message
		}
	}
	return e
}

// FromValidation returns a field error response when err carries field
// errors, and nil otherwise.
func FromValidation(err error) *Error {
	var fe *validation.FieldErrors
	if errors.As(err, &fe) {
		return NewFieldErrors(fe)
	}
	return nil
}

func newError(code ErrCode, message string) *Error {
	e := &Error{Code: code, Message: message}

	pc, file, line, ok := runtime.Caller(2)
	if ok {
		e.FileName = fmt.Sprintf("%s:%d", file, line)
		if fn := runtime.FuncForPC(pc); fn != nil {
			e.FuncName = fn.Name()
		}
	}
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Public returns the error as it may be shown to a client.
func (e *Error) Public() *Error {
	if e.Code == Internal || e.Code == InternalOnlyLog {
		return &Error{Code: Internal, Message: internalMessage, FuncName: e.FuncName, FileName: e.FileName}
	}
	return e
}

// Encode implements the web encoder interface.
func (e *Error) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json; charset=utf-8", err
}

// HTTPStatus implements the web package's status interface.
func (e *Error) HTTPStatus() int {
	if e.Code.status == 0 {
		return http.StatusInternalServerError
	}
	return e.Code.status
}

// Equal compares codes and messages.
func (e *Error) Equal(e2 *Error) bool {
	return e.Code == e2.Code && e.Message == e2.Message
}
