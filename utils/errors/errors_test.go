package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsAPIError(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", ErrNotFound)
	got := Wrap(wrapped, "X", "y", http.StatusTeapot)
	assert.Same(t, ErrNotFound, got)
}

func TestWrapPlainError(t *testing.T) {
	cause := stderrors.New("boom")
	got := Internal(cause)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.ErrorIs(t, got, cause)
	assert.Contains(t, got.Error(), "boom")
}

func TestWithMessageMatchesSentinel(t *testing.T) {
	err := ErrConflict.WithMessage("Bu kullanıcı zaten arkadaşınız")
	assert.True(t, stderrors.Is(err, ErrConflict))
	assert.False(t, stderrors.Is(err, ErrNotFound))
	assert.Equal(t, "Kayıt zaten mevcut", ErrConflict.Message)
}
