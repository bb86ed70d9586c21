package fileutil

import (
	"fmt"

	"github.com/terroirai/terroir-web/pkg/failure"
)

type FileErrorCause string

const (
	ErrCausePathError  FileErrorCause = "path error"
	ErrCauseWriteError FileErrorCause = "write error"
)

// FileError keeps the underlying OS error so callers can match errno values
// such as ENOSPC with errors.Is.
type FileError struct {
	Message   string
	Retryable bool
	Cause     FileErrorCause
	Path      string
	Err       error
}

func newFileError(cause FileErrorCause, path string, err error) *FileError {
	return &FileError{
		Message: err.Error(),
		Cause:   cause,
		Path:    path,
		Err:     err,
	}
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file error: %s: %s", e.Cause, e.Message)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

func (e *FileError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}
