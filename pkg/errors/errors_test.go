package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCollision, "two paths collide")
	assert.Equal(t, "[COLLISION] two paths collide", err.Error())

	wrapped := Wrap(fmt.Errorf("disk full"), ErrFileWrite, "cannot write file")
	assert.Equal(t, "[FILE_WRITE] cannot write file: disk full", wrapped.Error())
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrInternal, "nope"))
	assert.Nil(t, Wrapf(nil, ErrInternal, "nope %d", 1))
}

func TestIsMatchesByCode(t *testing.T) {
	err := Newf(ErrParamCoerce, "parameter %q", "limit")
	assert.True(t, errors.Is(err, New(ErrParamCoerce, "")))
	assert.False(t, errors.Is(err, New(ErrParamChoice, "")))
}

func TestUnwrap(t *testing.T) {
	inner := fmt.Errorf("inner")
	err := Wrap(inner, ErrHookFailed, "hook blew up")
	assert.Equal(t, inner, errors.Unwrap(err))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, ErrMergeConflict, GetCode(New(ErrMergeConflict, "x")))
	assert.Equal(t, ErrUnknown, GetCode(fmt.Errorf("plain")))

	wrapped := fmt.Errorf("context: %w", New(ErrRenderSyntax, "bad"))
	assert.Equal(t, ErrRenderSyntax, GetCode(wrapped))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrParamCoerce, "bad").WithDetail("parameter", "limit")
	assert.Equal(t, "limit", err.Details["parameter"])
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("wrapping: %w", New(ErrHookFailed, "exit 2"))
	assert.True(t, IsCode(err, ErrHookFailed))
	assert.False(t, IsCode(err, ErrCollision))
}
