// Package apperr defines the error taxonomy shared by the service and HTTP layers.
//
// Every error carries a Kind and the HTTP status it renders with. The message
// is client-safe; the optional cause is kept for logs and errors.Is/As.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error.
type Kind string

const (
	KindInvalidArgument Kind = "invalid_argument"
	KindNotFound        Kind = "not_found"
	KindEmptyResponse   Kind = "empty_response"
	KindEmptyPayload    Kind = "empty_payload"
	KindRemote          Kind = "remote_error"
	KindInternal        Kind = "internal"
)

// Error is the canonical application error.
type Error struct {
	kind       Kind
	httpStatus int
	message    string
	context    map[string]any
	cause      error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Kind() Kind { return e.kind }
func (e *Error) HTTPStatus() int { return e.httpStatus }
func (e *Error) Message() string { return e.message }

// PublicCauser is implemented by causes that can describe themselves to a
// client without leaking addresses or response bodies.
type PublicCauser interface {
	PublicMessage() string
}

// ClientMessage is the text safe to show a caller. A cause is included only
// through its PublicMessage; anything else stays in the log.
func (e *Error) ClientMessage() string {
	if e.kind == KindInternal {
		return e.message
	}
	var pc PublicCauser
	if e.cause != nil && errors.As(e.cause, &pc) {
		if pm := pc.PublicMessage(); pm != "" {
			return e.message + ": " + pm
		}
	}
	return e.message
}

// Context returns a copy of the error context.
func (e *Error) Context() map[string]any {
	if len(e.context) == 0 {
		return nil
	}
	out := make(map[string]any, len(e.context))
	for k, v := range e.context {
		out[k] = v
	}
	return out
}

// Is matches another *Error of the same kind, so errors.Is(err, apperr.ErrNotFound) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.message == "" && t.kind == e.kind
}

// WithContextKV sets a key/value pair on the error context and returns the receiver.
func (e *Error) WithContextKV(k string, v any) *Error {
	if e == nil {
		return nil
	}
	if e.context == nil {
		e.context = map[string]any{}
	}
	e.context[k] = v
	return e
}

// Sentinels for errors.Is; they carry only a kind.
var (
	ErrNotFound     = &Error{kind: KindNotFound}
	ErrEmptyPayload = &Error{kind: KindEmptyPayload}
)

func newError(kind Kind, status int, msg string, cause error) *Error {
	return &Error{kind: kind, httpStatus: status, message: msg, cause: cause}
}

// InvalidArgument reports caller input that failed local validation.
func InvalidArgument(msg string) *Error {
	return newError(KindInvalidArgument, http.StatusBadRequest, msg, nil)
}

// NotFound reports an entity the upstream does not have.
func NotFound(entity, field string, value any) *Error {
	msg := fmt.Sprintf("%s not found with the given %s : %v", entity, field, value)
	return newError(KindNotFound, http.StatusNotFound, msg, nil).
		WithContextKV("entity", entity).
		WithContextKV("field", field).
		WithContextKV("value", value)
}

// EmptyResponse reports that the upstream produced no envelope at all.
func EmptyResponse() *Error {
	return newError(KindEmptyResponse, http.StatusBadGateway, "Received null response from remote service", nil)
}

// EmptyPayload reports a successful envelope without data.
func EmptyPayload() *Error {
	return newError(KindEmptyPayload, http.StatusBadGateway, "Response data is null", nil)
}

// Remote reports a failure of the upstream service.
func Remote(msg string) *Error {
	return newError(KindRemote, http.StatusBadGateway, msg, nil)
}

// RemoteWrap reports an upstream failure caused by err.
func RemoteWrap(err error, msg string) *Error {
	return newError(KindRemote, http.StatusBadGateway, msg, err)
}

// Ensure converts any error into *Error. Errors that are already *Error are
// returned as-is; anything else becomes an internal error.
func Ensure(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return newError(KindInternal, http.StatusInternalServerError, "Internal server error", err)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.kind == kind
}
