package identity

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/terroirai/terroir-web/internal/metadata"
)

/*
Responsibilities
- Look up an identifier by key, creating and persisting it on first use
- Keep an existing identifier stable until its store entry goes away
- Do nothing at all when the browsing context is not live

Identifiers are base36(unix millis) + "-" + 8 random base36 characters.
They are best-effort unique and carry no meaning.
*/

const (
	base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	randomLength   = 8
	day            = 24 * time.Hour
)

// Liveness reports whether identity may be created. *browsing.Context satisfies it.
type Liveness interface {
	IsLive() bool
}

// VisitorIdentity pairs the durable visitor id with the session id.
type VisitorIdentity struct {
	VisitorID string
	SessionID string
}

type IdentityStore struct {
	mu           sync.Mutex
	store        Store
	liveness     Liveness
	metadataSink metadata.MetadataSink
	now          func() time.Time
	intN         func(n int) int
}

func NewIdentityStore(store Store, liveness Liveness, metadataSink metadata.MetadataSink) *IdentityStore {
	return &IdentityStore{
		store:        store,
		liveness:     liveness,
		metadataSink: metadataSink,
		now:          time.Now,
		intN:         rand.IntN,
	}
}

// NewIdentityStoreForTest allows injecting the clock and random source.
func NewIdentityStoreForTest(
	store Store,
	liveness Liveness,
	metadataSink metadata.MetadataSink,
	now func() time.Time,
	intN func(n int) int,
) *IdentityStore {
	return &IdentityStore{
		store:        store,
		liveness:     liveness,
		metadataSink: metadataSink,
		now:          now,
		intN:         intN,
	}
}

// GetOrCreate returns the identifier stored under key, generating and
// persisting a new one if none exists. expiryDays of zero creates a
// session-lifetime entry. Returns "" in a non-live context.
func (s *IdentityStore) GetOrCreate(key string, expiryDays int) string {
	if !s.liveness.IsLive() {
		return ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.store.Get(key); ok && existing != "" {
		return existing
	}

	id := s.generate()
	expiry := time.Duration(expiryDays) * day
	if err := s.store.Set(key, id, expiry); err != nil {
		s.recordWriteFailure(key, err)
	}
	return id
}

// Resolve returns both identifiers used by analytics reports.
func (s *IdentityStore) Resolve(visitorKey string, visitorExpiryDays int, sessionKey string) VisitorIdentity {
	return VisitorIdentity{
		SessionID: s.GetOrCreate(sessionKey, 0),
		VisitorID: s.GetOrCreate(visitorKey, visitorExpiryDays),
	}
}

func (s *IdentityStore) generate() string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(s.now().UnixMilli(), 36))
	b.WriteByte('-')
	for range randomLength {
		b.WriteByte(base36Alphabet[s.intN(len(base36Alphabet))])
	}
	return b.String()
}

func (s *IdentityStore) recordWriteFailure(key string, err error) {
	cause := metadata.CauseStorageFailure
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		cause = mapStoreErrorToMetadataCause(storeErr)
	}
	s.metadataSink.RecordError(
		s.now(),
		"identity",
		"IdentityStore.GetOrCreate",
		cause,
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrKey, key),
		},
	)
}
