package tracker_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/terroirai/terroir-web/internal/browsing"
	"github.com/terroirai/terroir-web/internal/identity"
	"github.com/terroirai/terroir-web/internal/metadata"
	"github.com/terroirai/terroir-web/internal/tracker"
)

var testSettings = tracker.Settings{
	VisitorCookie:     "terroir_vid",
	VisitorExpiryDays: 365,
	SessionCookie:     "terroir_sid",
}

type dispatched struct {
	endpoint string
	payload  any
}

// recordingDispatcher captures reports synchronously.
type recordingDispatcher struct {
	mu      sync.Mutex
	reports []dispatched
}

func (d *recordingDispatcher) Dispatch(endpoint string, payload any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reports = append(d.reports, dispatched{endpoint: endpoint, payload: payload})
}

func (d *recordingDispatcher) all() []dispatched {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]dispatched(nil), d.reports...)
}

func newTestTracker(t *testing.T, ctx *browsing.Context) (*tracker.Tracker, *recordingDispatcher, *identity.MemoryStore) {
	t.Helper()
	store := identity.NewMemoryStore(0)
	ids := identity.NewIdentityStore(store, ctx, &metadata.NoopSink{})
	dispatcher := &recordingDispatcher{}
	return tracker.NewTracker(ctx, ids, dispatcher, testSettings), dispatcher, store
}

func liveContext(t *testing.T, location string, referrer string, width int) *browsing.Context {
	t.Helper()
	ctx, err := browsing.NewLive(location, referrer, width)
	require.NoError(t, err)
	return ctx
}

type metadataSinkMock struct {
	mock.Mock
}

func (m *metadataSinkMock) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	m.Called(observedAt, packageName, action, cause, details, attrs)
}

func (m *metadataSinkMock) RecordDispatch(endpoint string, statusCode int, duration time.Duration, delivered bool) {
	m.Called(endpoint, statusCode, duration, delivered)
}

func (m *metadataSinkMock) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
	m.Called(kind, path, attrs)
}

func strPtr(s string) *string {
	return &s
}
