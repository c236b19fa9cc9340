package versiongate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFileMissing indicates the version file does not exist when a bump is required.
	ErrFileMissing = errors.New("version file does not exist")

	// ErrMalformedVersion indicates the version file does not hold a strict X.Y.Z triplet.
	ErrMalformedVersion = errors.New("malformed version")

	// ErrStagingFailed indicates the bumped version file could not be added to the index.
	ErrStagingFailed = errors.New("staging failed")

	// ErrHookExists indicates a foreign pre-commit hook is already installed.
	ErrHookExists = errors.New("pre-commit hook already exists")

	// ErrInvalidConfig indicates an unusable configuration value.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// FileMissingError names the version file that was expected but not found.
type FileMissingError struct {
	Path string
}

func (e *FileMissingError) Error() string {
	return e.Path + " does not exist."
}

func (e *FileMissingError) Unwrap() error {
	return ErrFileMissing
}

// MalformedVersionError reports the literal content of a version file that
// failed to parse.
type MalformedVersionError struct {
	Path    string
	Content string
}

func (e *MalformedVersionError) Error() string {
	return fmt.Sprintf("%s must contain a valid semver 'X.Y.Z', found '%s'", e.Path, e.Content)
}

func (e *MalformedVersionError) Unwrap() error {
	return ErrMalformedVersion
}

// StagingError is returned when the VCS refuses to stage the rewritten version file.
// The file on disk already holds the new version when this happens.
type StagingError struct {
	Path   string
	Stderr string
	Err    error
}

func (e *StagingError) Error() string {
	msg := fmt.Sprintf("failed to stage %s: %v", e.Path, e.Err)
	if detail := strings.TrimSpace(e.Stderr); detail != "" {
		msg += ", detail: " + detail
	}
	return msg
}

func (e *StagingError) Unwrap() []error {
	return []error{ErrStagingFailed, e.Err}
}

// IsFileMissing reports whether err is caused by a missing version file.
func IsFileMissing(err error) bool {
	return errors.Is(err, ErrFileMissing)
}

// IsMalformedVersion reports whether err is caused by unparsable version file content.
func IsMalformedVersion(err error) bool {
	return errors.Is(err, ErrMalformedVersion)
}

// IsStagingFailure reports whether err is caused by a failed re-stage of the version file.
func IsStagingFailure(err error) bool {
	return errors.Is(err, ErrStagingFailed)
}
