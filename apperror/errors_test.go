package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := ErrRequestFileDesynchronized.WithContext("fileIndex", 0, "seq", 66)

	assert.ErrorIs(t, err, ErrRequestFileDesynchronized)
	assert.NotErrorIs(t, err, ErrRequestFileAlreadyClosed)

	wrapped := fmt.Errorf("send chunk: %w", err)
	assert.ErrorIs(t, wrapped, ErrRequestFileDesynchronized)
	assert.Equal(t, RequestFileDesynchronized, CodeOf(wrapped))
}

func TestError_WithContextDoesNotMutateSentinel(t *testing.T) {
	_ = ErrRequestSizeExceeded.WithContext("size", 10)

	assert.Empty(t, ErrRequestSizeExceeded.Context)
}

func TestError_Message(t *testing.T) {
	err := New(RequestFileSizeExceeded).WithContext("size", 100, "fileIndex", 1)

	assert.Equal(t, "REQUEST_FILE_SIZE_EXCEEDED {fileIndex: 1, size: 100}", err.Error())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := ErrInvalidParams.Wrap(cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, Code(""), CodeOf(cause))
}
