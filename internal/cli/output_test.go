package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitError_MessageAndUnwrap(t *testing.T) {
	underlying := errors.New("boom")
	err := WrapExitError(ExitCommandError, "failed to open", underlying)

	assert.Equal(t, "failed to open: boom", err.Error())
	assert.ErrorIs(t, err, underlying)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "suite failed")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad path")))

	// Wrapped ExitErrors still resolve.
	wrapped := fmt.Errorf("context: %w", NewExitError(ExitCommandError, "inner"))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))

	// Non-ExitErrors default to failure.
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
}
