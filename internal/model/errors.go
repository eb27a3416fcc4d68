package model

import (
	"errors"
	"fmt"
)

// InputError means the URL was missing or malformed; nothing external ran.
type InputError struct {
	Input  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Input, e.Reason)
}

// PathError means the destination directory could not be created or written.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("destination %s: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// ExtractionError wraps any failure of the extraction library.
type ExtractionError struct {
	URL string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.URL, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// PostProcessWarning reports a skipped or failed post-processing step. The
// original download still counts as a success.
type PostProcessWarning struct {
	Path string
	Err  error
}

func (e *PostProcessWarning) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("post-processing skipped: %v", e.Err)
	}
	return fmt.Sprintf("post-processing %s: %v", e.Path, e.Err)
}

func (e *PostProcessWarning) Unwrap() error { return e.Err }

// UpdateWarning reports a failed self-update of the extraction binary.
type UpdateWarning struct {
	Err error
}

func (e *UpdateWarning) Error() string {
	return fmt.Sprintf("extraction library update failed: %v", e.Err)
}

func (e *UpdateWarning) Unwrap() error { return e.Err }

// ErrFFmpegMissing is the cause of a PostProcessWarning when no media binary was found.
var ErrFFmpegMissing = errors.New("ffmpeg not found on PATH")

// IsWarning reports whether err only carries warnings and must not fail a request.
func IsWarning(err error) bool {
	var ppw *PostProcessWarning
	var uw *UpdateWarning
	return errors.As(err, &ppw) || errors.As(err, &uw)
}
