package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := ConfigInvalid("STORE_DRIVER must be memory, sqlite or postgres")
	wrapped := Wrap(base, "failed to load store configuration")

	assert.Equal(t, CodeConfigInvalid, GetCode(wrapped))
	assert.Contains(t, wrapped.Error(), "failed to load store configuration")
	assert.True(t, stderrors.Is(wrapped, base))
}

func TestWrapPlainErrorIsInternal(t *testing.T) {
	wrapped := Wrapf(stderrors.New("boom"), "step %d", 3)

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Equal(t, "step 3: boom", wrapped.Error())
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestGetCodeThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("persist: %w", StorageError("write failed", stderrors.New("disk full")))

	assert.Equal(t, CodeStorageError, GetCode(err))
	assert.True(t, IsAppError(err))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeInvalidState, stderrors.New("bad marker"))

	assert.Equal(t, CodeInvalidState, GetCode(err))
	assert.Contains(t, err.Error(), "bad marker")
}
