package head

import (
	"fmt"

	"github.com/terroirai/terroir-web/internal/metadata"
	"github.com/terroirai/terroir-web/pkg/failure"
)

type HeadErrorCause string

const (
	ErrCauseParseFailure  HeadErrorCause = "failed to parse document"
	ErrCauseNoHead        HeadErrorCause = "document has no head"
	ErrCauseRenderFailure HeadErrorCause = "failed to render document"
)

type HeadError struct {
	Message   string
	Retryable bool
	Cause     HeadErrorCause
}

func (e *HeadError) Error() string {
	return fmt.Sprintf("head error: %s: %s", e.Cause, e.Message)
}

func (e *HeadError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// MapToMetadataCause maps head failures to the canonical metadata.ErrorCause
// table. Observational only.
func MapToMetadataCause(err *HeadError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseParseFailure:
		return metadata.CauseContentInvalid
	case ErrCauseNoHead:
		return metadata.CauseInvariantViolation
	default:
		return metadata.CauseUnknown
	}
}
