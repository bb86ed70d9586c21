package identity

import (
	"fmt"

	"github.com/terroirai/terroir-web/internal/metadata"
	"github.com/terroirai/terroir-web/pkg/failure"
)

type StoreErrorCause string

const (
	ErrCauseInvalidCookie StoreErrorCause = "invalid cookie"
	ErrCauseUnavailable   StoreErrorCause = "storage unavailable"
)

type StoreError struct {
	Message   string
	Retryable bool
	Cause     StoreErrorCause
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("identity store error: %s: %s", e.Cause, e.Message)
}

// Identity writes are best effort; a failed write never reaches the caller.
func (e *StoreError) Severity() failure.Severity {
	return failure.SeverityIgnored
}

func mapStoreErrorToMetadataCause(err *StoreError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseInvalidCookie:
		return metadata.CauseInvariantViolation
	case ErrCauseUnavailable:
		return metadata.CauseStorageFailure
	default:
		return metadata.CauseUnknown
	}
}
