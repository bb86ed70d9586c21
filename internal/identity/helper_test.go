package identity_test

import (
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/terroirai/terroir-web/internal/metadata"
)

type liveness bool

func (l liveness) IsLive() bool { return bool(l) }

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

// recordingStore remembers every Set call and can be told to fail.
type recordingStore struct {
	values  map[string]string
	expiry  map[string]time.Duration
	sets    int
	failErr error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{
		values: map[string]string{},
		expiry: map[string]time.Duration{},
	}
}

func (s *recordingStore) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *recordingStore) Set(key string, value string, expiry time.Duration) error {
	s.sets++
	if s.failErr != nil {
		return s.failErr
	}
	s.values[key] = value
	s.expiry[key] = expiry
	return nil
}

// sequence returns successive values from digits, wrapping around.
func sequence(digits ...int) func(int) int {
	i := 0
	return func(n int) int {
		d := digits[i%len(digits)] % n
		i++
		return d
	}
}
