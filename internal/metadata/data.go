package metadata

/*
	ErrorCause is a closed, canonical classification used exclusively for
	observability (logging, reporting).

	Rules:
	 - ErrorCause MUST NOT influence control flow.
	 - A failed analytics report is never retried because of its cause.
	 - Packages MAY map their local errors to ErrorCause,
	   but MUST NOT invent new meanings.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

/*
Canonical ErrorCause Table

# CauseUnknown
  - The failure does not map cleanly to any known category.

# CauseNetworkFailure
  - Transport failure or non-2xx answer from the collection endpoint.
  - Examples: connection refused, timeout, 5xx from /analytics/event

# CauseContentInvalid
  - Content could not be processed meaningfully.
  - Examples: unparseable page shell, malformed report body at the collector,
    JSON-LD document that cannot be serialized

# CauseStorageFailure
  - Failure while persisting artifacts or identity values.
  - Examples: prerender write failure, cookie jar rejecting a cookie

# CauseInvariantViolation
  - A system-level invariant was violated.
  - Examples: head without a <head> element after parsing
*/
const (
	CauseUnknown ErrorCause = iota
	CauseNetworkFailure
	CauseContentInvalid
	CauseStorageFailure
	CauseInvariantViolation
)

func (c ErrorCause) String() string {
	switch c {
	case CauseNetworkFailure:
		return "network_failure"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseStorageFailure:
		return "storage_failure"
	case CauseInvariantViolation:
		return "invariant_violation"
	default:
		return "unknown"
	}
}

type ArtifactKind string

const (
	ArtifactPrerenderedPage ArtifactKind = "prerendered_page"
)

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrURL       AttributeKey = "url"
	AttrPath      AttributeKey = "path"
	AttrEndpoint  AttributeKey = "endpoint"
	AttrEvent     AttributeKey = "event"
	AttrKey       AttributeKey = "key"
	AttrField     AttributeKey = "field"
	AttrHash      AttributeKey = "hash"
	AttrWritePath AttributeKey = "write_path"
	AttrMessage   AttributeKey = "message"
)
