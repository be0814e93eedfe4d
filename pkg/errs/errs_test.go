package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/pkg/errors"
)

func TestNew(t *testing.T) {
	err := New(NotFound, "jurisdiction 1 not found")
	assert.Equal(t, "NotFound: jurisdiction 1 not found", err.Error())
}

func TestWrap_KeepsKindAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CloudError, cause, "error describing stack")

	assert.Contains(t, err.Error(), "CloudError")
	assert.Contains(t, err.Error(), "error describing stack")
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, cause, errors.Unwrap(errors.Unwrap(err)))
	assert.Equal(t, cause, pkgerrors.Cause(err))
}

func TestWrap_AttachesStack(t *testing.T) {
	err := Wrap(CloudError, errors.New("boom"), "wrapped")

	type stackTracer interface {
		StackTrace() pkgerrors.StackTrace
	}
	var st stackTracer
	require.True(t, errors.As(err.Unwrap(), &st), "the wrapped cause must carry a pkg/errors stack trace")
}

func TestKindOf(t *testing.T) {
	err := Newf(PrecondFail, "kubernetes_version %q is not supported", "1.1")
	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, PrecondFail, kind)

	_, ok = KindOf(errors.New("plain error"))
	assert.False(t, ok)
}

func TestKindOf_SeesThroughFmtWrap(t *testing.T) {
	base := New(Conflict, "already active")
	wrapped := fmt.Errorf("provisioning failed: %w", base)

	kind, ok := KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, Conflict, kind)
}

func TestIs(t *testing.T) {
	err := New(Timeout, "deadline exceeded")
	assert.True(t, Is(err, Timeout))
	assert.False(t, Is(err, Conflict))
	assert.False(t, Is(errors.New("plain"), Timeout))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "NotFound", NotFound.String())
	assert.Equal(t, "Unknown", Kind(999).String())
}
