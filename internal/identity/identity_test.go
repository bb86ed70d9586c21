package identity_test

import (
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/terroirai/terroir-web/internal/identity"
	"github.com/terroirai/terroir-web/internal/metadata"
)

var idPattern = regexp.MustCompile(`^[0-9a-z]+-[0-9a-z]{8}$`)

func fixedClock() time.Time {
	return time.UnixMilli(1767225600000) // 2026-01-01T00:00:00Z
}

func TestGetOrCreate_GeneratesFormattedID(t *testing.T) {
	store := newRecordingStore()
	ids := identity.NewIdentityStoreForTest(store, liveness(true), &metadata.NoopSink{}, fixedClock, sequence(10, 11, 12, 13, 0, 1, 2, 35))

	id := ids.GetOrCreate("terroir_vid", 365)

	assert.Equal(t, "mjuohs00-abcd012z", id)
	assert.Regexp(t, idPattern, id)
	assert.Equal(t, id, store.values["terroir_vid"])
	assert.Equal(t, 365*24*time.Hour, store.expiry["terroir_vid"])
}

func TestGetOrCreate_ReturnsSameValueTwice(t *testing.T) {
	ids := identity.NewIdentityStore(identity.NewMemoryStore(0), liveness(true), &metadata.NoopSink{})

	first := ids.GetOrCreate("terroir_vid", 365)
	second := ids.GetOrCreate("terroir_vid", 365)

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestGetOrCreate_SessionHasNoExpiry(t *testing.T) {
	store := newRecordingStore()
	ids := identity.NewIdentityStore(store, liveness(true), &metadata.NoopSink{})

	ids.GetOrCreate("terroir_sid", 0)

	assert.Equal(t, time.Duration(0), store.expiry["terroir_sid"])
}

func TestGetOrCreate_KeepsExistingValue(t *testing.T) {
	store := newRecordingStore()
	store.values["terroir_vid"] = "existing-visitor"
	ids := identity.NewIdentityStore(store, liveness(true), &metadata.NoopSink{})

	assert.Equal(t, "existing-visitor", ids.GetOrCreate("terroir_vid", 365))
	assert.Zero(t, store.sets)
}

func TestGetOrCreate_NonLiveContextIsNoop(t *testing.T) {
	store := newRecordingStore()
	ids := identity.NewIdentityStore(store, liveness(false), &metadata.NoopSink{})

	assert.Empty(t, ids.GetOrCreate("terroir_vid", 365))
	assert.Zero(t, store.sets)
}

func TestGetOrCreate_WriteFailureIsRecordedNotSurfaced(t *testing.T) {
	store := newRecordingStore()
	store.failErr = &identity.StoreError{Message: "quota", Cause: identity.ErrCauseUnavailable}
	sink := &metadataSinkMock{}
	sink.On("RecordError",
		mock.Anything,
		"identity",
		"IdentityStore.GetOrCreate",
		metadata.CauseStorageFailure,
		mock.Anything,
		[]metadata.Attribute{metadata.NewAttr(metadata.AttrKey, "terroir_vid")},
	).Once()

	ids := identity.NewIdentityStore(store, liveness(true), sink)
	id := ids.GetOrCreate("terroir_vid", 365)

	assert.Regexp(t, idPattern, id)
	sink.AssertExpectations(t)
}

func TestGetOrCreate_ExpiredEntryIsRegenerated(t *testing.T) {
	mem := identity.NewMemoryStore(0)
	ids := identity.NewIdentityStore(mem, liveness(true), &metadata.NoopSink{})

	first := ids.GetOrCreate("terroir_vid", 365)
	mem.Delete("terroir_vid")
	second := ids.GetOrCreate("terroir_vid", 365)

	assert.NotEqual(t, first, second)
}

func TestGetOrCreate_ConcurrentCallersShareOneID(t *testing.T) {
	ids := identity.NewIdentityStore(identity.NewMemoryStore(0), liveness(true), &metadata.NoopSink{})

	const workers = 16
	results := make([]string, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = ids.GetOrCreate("terroir_sid", 0)
		}()
	}
	wg.Wait()

	for _, r := range results {
		require.Equal(t, results[0], r)
	}
}

func TestResolve(t *testing.T) {
	store := newRecordingStore()
	ids := identity.NewIdentityStore(store, liveness(true), &metadata.NoopSink{})

	who := ids.Resolve("terroir_vid", 365, "terroir_sid")

	assert.Equal(t, store.values["terroir_vid"], who.VisitorID)
	assert.Equal(t, store.values["terroir_sid"], who.SessionID)
	assert.NotEqual(t, who.VisitorID, who.SessionID)
}
