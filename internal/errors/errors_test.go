package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorKind(t *testing.T) {
	err := NewValidationError("nothing to do", EmptyTaskList, nil)
	assert.Equal(t, EmptyTaskList, err.Kind())
	assert.True(t, IsValidation(err))
	assert.False(t, IsLaunch(err))
	assert.Equal(t, "nothing to do", err.Error())
}

func TestLaunchErrorNamesProgram(t *testing.T) {
	cause := New("no such file")
	err := NewLaunchError("/opt/backend_engine/backend_engine", cause)
	assert.True(t, IsLaunch(err))
	assert.Equal(t, "/opt/backend_engine/backend_engine", err.Program)
	assert.Contains(t, err.Error(), "/opt/backend_engine/backend_engine")
	assert.Contains(t, err.Error(), "no such file")
	assert.ErrorIs(t, err, cause)
}

func TestSentinels(t *testing.T) {
	assert.True(t, IsValidation(ErrEmptyTaskList))
	assert.Equal(t, EmptyTaskList, ErrEmptyTaskList.Kind())
	assert.Equal(t, MissingOutputDir, ErrMissingOutputDir.Kind())
	assert.Equal(t, SessionActive, ErrSessionActive.Kind())
}

func TestWrappedValidationDetected(t *testing.T) {
	wrapped := NewConfigError("outer", ErrEmptyTaskList)
	assert.True(t, IsValidation(wrapped))
}
