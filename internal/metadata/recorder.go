package metadata

import (
	"time"

	"go.uber.org/zap"
)

/*
Recorder captures structured runtime events of the page session.
It must not:
- affect control flow
- surface anything to the end user
- retry or reorder reports

Metadata is write-only.
No component may read metadata to influence tracking or head decisions.

Ordering guarantees:
- Events from the rendering goroutine are recorded in call order.
- Dispatch outcomes arrive from detached report goroutines, in any order.
*/
type Recorder struct {
	logger *zap.Logger
}

func NewRecorder(logger *zap.Logger) *Recorder {
	return &Recorder{
		logger: logger,
	}
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
	fields := []zap.Field{
		zap.Time("observed_at", observedAt),
		zap.String("package", packageName),
		zap.String("action", action),
		zap.Stringer("cause", cause),
		zap.String("error", errorString),
	}
	r.logger.Debug("runtime error recorded", append(fields, attrFields(attrs)...)...)
}

// RecordDispatch records the outcome of one analytics report. It is called
// from the report goroutine after the response (or failure) is known.
func (r *Recorder) RecordDispatch(
	endpoint string,
	statusCode int,
	duration time.Duration,
	delivered bool,
) {
	r.logger.Debug("report dispatched",
		zap.String("endpoint", endpoint),
		zap.Int("status", statusCode),
		zap.Duration("duration", duration),
		zap.Bool("delivered", delivered),
	)
}

func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {
	fields := []zap.Field{
		zap.String("kind", string(kind)),
		zap.String("path", path),
	}
	r.logger.Info("artifact written", append(fields, attrFields(attrs)...)...)
}

func attrFields(attrs []Attribute) []zap.Field {
	fields := make([]zap.Field, 0, len(attrs))
	for _, attr := range attrs {
		fields = append(fields, zap.String(string(attr.Key), attr.Value))
	}
	return fields
}

type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)
	RecordDispatch(
		endpoint string,
		statusCode int,
		duration time.Duration,
		delivered bool,
	)
	RecordArtifact(kind ArtifactKind, path string, attrs []Attribute)
}

// Compile-time interface checks
var (
	_ MetadataSink = (*Recorder)(nil)
	_ MetadataSink = (*NoopSink)(nil)
)

// NoopSink implements MetadataSink but does nothing.
// Sessions in a non-live rendering context and most tests inject it.
type NoopSink struct{}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
}

func (n *NoopSink) RecordDispatch(
	endpoint string,
	statusCode int,
	duration time.Duration,
	delivered bool,
) {
}

func (n *NoopSink) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {}
