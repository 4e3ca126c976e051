// Package errors provides standardized error handling for statdesk. It
// defines the error kinds the front-ends distinguish (validation problems
// that block a run, launch failures, configuration problems) and helpers
// for consistent creation and classification.
package errors

import (
	"errors"
	"fmt"
)

// Re-exported stdlib helpers so callers only import one errors package.
var (
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
	New    = errors.New
)

// ErrorKind classifies an ApplicationError.
type ErrorKind int

const (
	Unknown ErrorKind = iota
	// Validation error kinds: reported synchronously, block the run, no state change
	EmptyTaskList
	MissingOutputDir
	// Launch error kinds: fatal to the session
	ExecutableNotFound
	// Config error kinds
	InvalidConfig
	// Session error kinds
	SessionActive
)

// Common sentinel errors for the synchronous start validations.
var (
	ErrEmptyTaskList    = NewValidationError("no files checked for processing", EmptyTaskList, nil)
	ErrMissingOutputDir = NewValidationError("no output directory set and output-to-source is off", MissingOutputDir, nil)
	ErrSessionActive    = &ApplicationError{msg: "a processing session is already active", kind: SessionActive}
)

// ApplicationError is the base error type for all statdesk errors.
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the error classification.
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// ValidationError blocks a run before any process is spawned.
type ValidationError struct {
	ApplicationError
}

// NewValidationError creates a ValidationError with the given kind.
func NewValidationError(msg string, kind ErrorKind, err error) *ValidationError {
	return &ValidationError{ApplicationError{msg: msg, err: err, kind: kind}}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return As(err, &ve)
}

// LaunchError means the backend process could not be started at all.
type LaunchError struct {
	ApplicationError
	// Program is the path the supervisor expected the executable at.
	Program string
}

// NewLaunchError creates a LaunchError naming the expected executable path.
func NewLaunchError(program string, err error) *LaunchError {
	return &LaunchError{
		ApplicationError: ApplicationError{
			msg:  fmt.Sprintf("failed to start backend engine at %s", program),
			err:  err,
			kind: ExecutableNotFound,
		},
		Program: program,
	}
}

// IsLaunch reports whether err is (or wraps) a LaunchError.
func IsLaunch(err error) bool {
	var le *LaunchError
	return As(err, &le)
}

// ConfigError wraps configuration load/save problems.
type ConfigError struct {
	ApplicationError
}

// NewConfigError creates a ConfigError.
func NewConfigError(msg string, err error) *ConfigError {
	return &ConfigError{ApplicationError{msg: msg, err: err, kind: InvalidConfig}}
}
