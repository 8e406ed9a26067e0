package audio

import (
	"errors"
	"fmt"
)

var (
	ErrNoFilesSelected = errors.New("no files selected")
	ErrEmptyOutputName = errors.New("output file name is empty")
	ErrOutputIsInput   = errors.New("output file would overwrite one of the inputs")
	ErrEngineReused    = errors.New("merge engine has already run a job")
)

// IOError is a read or write failure while building the output.
// It aborts the job; whatever was already written stays on disk.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// IsIOFailure reports whether err is an *IOError
func IsIOFailure(err error) bool {
	var e *IOError
	return errors.As(err, &e)
}

// IsValidationError reports whether err was raised before any file was touched
func IsValidationError(err error) bool {
	return errors.Is(err, ErrNoFilesSelected) ||
		errors.Is(err, ErrEmptyOutputName) ||
		errors.Is(err, ErrOutputIsInput)
}
