package excerpt

import (
	"fmt"

	"github.com/terroirai/terroir-web/internal/metadata"
	"github.com/terroirai/terroir-web/pkg/failure"
)

type ExcerptErrorCause string

const (
	ErrCauseParseFailure      ExcerptErrorCause = "failed to parse content"
	ErrCauseConversionFailure ExcerptErrorCause = "conversion failed"
)

type ExcerptError struct {
	Message   string
	Retryable bool
	Cause     ExcerptErrorCause
}

func (e *ExcerptError) Error() string {
	return fmt.Sprintf("excerpt error: %s: %s", e.Cause, e.Message)
}

// A missing excerpt only degrades a description; pages fall back to the title.
func (e *ExcerptError) Severity() failure.Severity {
	return failure.SeverityIgnored
}

func mapExcerptErrorToMetadataCause(err *ExcerptError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseParseFailure, ErrCauseConversionFailure:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
