package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodeSurvivesWrapping(t *testing.T) {
	t.Parallel()
	base := Errorf(CodeInvalidInputFormat, "yaml: line %d", 3)
	wrapped := fmt.Errorf("transform input %q: %w", "in-1", base)

	assert.Equal(t, CodeInvalidInputFormat, CodeOf(wrapped))
	assert.True(t, errors.Is(wrapped, ErrInvalidInputFormat))
	assert.False(t, errors.Is(wrapped, ErrInvalidJSONFromLLM))
	assert.Equal(t, "transform input \"in-1\": InvalidInputFormat: yaml: line 3", wrapped.Error())
}

func TestErrorUnwrapsCause(t *testing.T) {
	t.Parallel()
	cause := errors.New("connection refused")
	err := Errorf(CodeTransportError, "call model: %w", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestCodeOfPlainError(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Code(""), CodeOf(errors.New("boom")))
	assert.Equal(t, Code(""), CodeOf(nil))
}

func TestFieldPathCode(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "fields[2].data_path.invalid", FieldPathCode(2, PathInvalid))
	assert.Equal(t, "fields[0].data_path.invalid_format", FieldPathCode(0, PathInvalidFormat))
	assert.Equal(t, "fields[1].data_path.not_enough_values", FieldPathCode(1, PathNotEnoughValues))
}
