package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Format(t *testing.T) {
	cause := errors.New("connection reset")

	assert.Equal(t, "[invalid_argument] key is required", InvalidArgument("key is required").Error())
	assert.Equal(t, "[store_unavailable] list failed: connection reset",
		Wrap(ErrKindStoreUnavailable, "list failed", cause).Error())
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		invalid    bool
		notFound   bool
		storeUnavl bool
	}{
		{"invalid argument", InvalidArgument("bad"), true, false, false},
		{"not found", New(ErrKindNotFound, "missing"), false, true, false},
		{"store unavailable", Wrap(ErrKindStoreUnavailable, "down", errors.New("x")), false, false, true},
		{"wrapped with fmt", fmt.Errorf("page 2: %w", New(ErrKindNotFound, "missing")), false, true, false},
		{"plain error", errors.New("boom"), false, false, false},
		{"nil", nil, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.invalid, IsInvalidArgument(tt.err))
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
			assert.Equal(t, tt.storeUnavl, IsStoreUnavailable(tt.err))
		})
	}
}

func TestUnwrap_PreservesCause(t *testing.T) {
	cause := errors.New("timeout")
	err := Wrap(ErrKindStoreUnavailable, "sign failed", cause)

	assert.ErrorIs(t, err, cause)
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "Image key is required", MessageOf(InvalidArgument("Image key is required"), "fallback"))
	assert.Equal(t, "fallback", MessageOf(errors.New("raw"), "fallback"))
	assert.Equal(t, "fallback", MessageOf(New(ErrKindNotFound, ""), "fallback"))
}

func TestErrKind_String(t *testing.T) {
	assert.Equal(t, "unknown", ErrKindUnknown.String())
	assert.Equal(t, "not_found", ErrKindNotFound.String())
}
