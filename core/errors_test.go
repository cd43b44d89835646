package core

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	err := Error(EUNSUPPORTED, "shaper %q cannot handle face", "gotext")
	assert.Equal(t, EUNSUPPORTED, Code(err))
	assert.Equal(t, `shaper "gotext" cannot handle face`, UserMessage(err))
	//
	wrapped := fmt.Errorf("context: %w", err)
	assert.Equal(t, EUNSUPPORTED, Code(wrapped), "code should survive wrapping")
}

func TestWrapError(t *testing.T) {
	err := WrapError(io.ErrUnexpectedEOF, EINVALID, "font data truncated")
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.Equal(t, EINVALID, Code(err))
	assert.Equal(t, "font data truncated", UserMessage(err))
	//
	err = WrapError(nil, EMISSING, "no font")
	assert.Equal(t, EMISSING, Code(err))
}

func TestPlainErrors(t *testing.T) {
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, EINTERNAL, Code(errors.New("boom")))
	assert.Equal(t, "internal error", UserMessage(errors.New("boom")))
}
