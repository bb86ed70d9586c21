package tracker

import (
	"fmt"

	"github.com/terroirai/terroir-web/internal/metadata"
	"github.com/terroirai/terroir-web/pkg/failure"
)

type DispatchErrorCause string

const (
	ErrCauseEncodeFailure  DispatchErrorCause = "payload encoding failed"
	ErrCauseRequestInvalid DispatchErrorCause = "invalid request"
	ErrCauseNetworkFailure DispatchErrorCause = "network issues"
	ErrCauseTimeout        DispatchErrorCause = "timeout"
	ErrCauseNon2xx         DispatchErrorCause = "non-2xx response"
)

// DispatchError describes a report that did not reach the collector.
// Reports are never retried, so Retryable is always false.
type DispatchError struct {
	Message   string
	Retryable bool
	Cause     DispatchErrorCause
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch error: %s: %s", e.Cause, e.Message)
}

func (e *DispatchError) Severity() failure.Severity {
	return failure.SeverityIgnored
}

// mapDispatchErrorToMetadataCause maps dispatch failures to the canonical
// metadata.ErrorCause table. Observational only.
func mapDispatchErrorToMetadataCause(err *DispatchError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseNetworkFailure, ErrCauseTimeout, ErrCauseNon2xx:
		return metadata.CauseNetworkFailure
	case ErrCauseEncodeFailure:
		return metadata.CauseContentInvalid
	case ErrCauseRequestInvalid:
		return metadata.CauseInvariantViolation
	default:
		return metadata.CauseUnknown
	}
}
