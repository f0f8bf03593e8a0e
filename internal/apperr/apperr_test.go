package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		kind   Kind
		status int
		msg    string
	}{
		{"invalid argument", InvalidArgument("bad id"), KindInvalidArgument, http.StatusBadRequest, "bad id"},
		{"not found", NotFound("Employee", "ID", "42"), KindNotFound, http.StatusNotFound, "Employee not found with the given ID : 42"},
		{"empty response", EmptyResponse(), KindEmptyResponse, http.StatusBadGateway, "Received null response from remote service"},
		{"empty payload", EmptyPayload(), KindEmptyPayload, http.StatusBadGateway, "Response data is null"},
		{"remote", Remote("Remote service error: boom"), KindRemote, http.StatusBadGateway, "Remote service error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.err.Kind())
			assert.Equal(t, tt.status, tt.err.HTTPStatus())
			assert.Equal(t, tt.msg, tt.err.Message())
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestNotFoundContext(t *testing.T) {
	err := NotFound("Employee", "ID", "abc")
	ctx := err.Context()
	assert.Equal(t, "Employee", ctx["entity"])
	assert.Equal(t, "ID", ctx["field"])
	assert.Equal(t, "abc", ctx["value"])

	ctx["entity"] = "mutated"
	assert.Equal(t, "Employee", err.Context()["entity"])
}

func TestIsAndAs(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NotFound("Employee", "ID", "1"))

	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, ErrEmptyPayload))
	assert.True(t, IsKind(wrapped, KindNotFound))

	var e *Error
	require.True(t, errors.As(wrapped, &e))
	assert.Equal(t, http.StatusNotFound, e.HTTPStatus())
}

func TestRemoteWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := RemoteWrap(cause, "Remote service unavailable")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Remote service unavailable: connection refused", err.Error())
	assert.Equal(t, "Remote service unavailable", err.Message())
}

func TestEnsure(t *testing.T) {
	assert.Nil(t, Ensure(nil))

	nf := NotFound("Employee", "ID", "1")
	assert.Same(t, nf, Ensure(fmt.Errorf("wrap: %w", nf)))

	internal := Ensure(errors.New("boom"))
	assert.Equal(t, KindInternal, internal.Kind())
	assert.Equal(t, http.StatusInternalServerError, internal.HTTPStatus())
	assert.Equal(t, "Internal server error", internal.Message())
}

type publicCause struct{}

func (publicCause) Error() string         { return "GET http://10.0.0.7/api status=500 body=stacktrace" }
func (publicCause) PublicMessage() string { return "upstream responded with status 500" }

func TestClientMessage(t *testing.T) {
	assert.Equal(t, "Remote service unavailable", RemoteWrap(errors.New("dial tcp 10.0.0.7:8112"), "Remote service unavailable").ClientMessage())
	assert.Equal(t, "Remote service unavailable: upstream responded with status 500",
		RemoteWrap(fmt.Errorf("call: %w", publicCause{}), "Remote service unavailable").ClientMessage())
	assert.Equal(t, "Employee not found with the given ID : 1", NotFound("Employee", "ID", "1").ClientMessage())
	assert.Equal(t, "Internal server error", Ensure(publicCause{}).ClientMessage())
}
