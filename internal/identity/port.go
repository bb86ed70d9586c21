package identity

import "time"

// Store is the port through which identifiers are persisted.
// In a browser this is the cookie jar; tests and prerendering use memory.
//
// Values are opaque strings. An expiry of zero means "lives as long as the
// session", i.e. no explicit expiration is attached.
type Store interface {
	// Get returns the stored value and true, or "" and false when the key is
	// absent or expired.
	Get(key string) (string, bool)

	// Set stores value under key, overwriting any previous value.
	Set(key string, value string, expiry time.Duration) error
}
