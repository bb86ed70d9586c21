package identity

import (
	"net/http"
	"net/url"
	"time"
)

// CookieStore persists identifiers as first-party cookies in an http.CookieJar,
// scoped to the site origin with Path=/ and SameSite=Lax.
type CookieStore struct {
	jar  http.CookieJar
	site *url.URL
	now  func() time.Time
}

func NewCookieStore(jar http.CookieJar, site *url.URL) *CookieStore {
	return &CookieStore{
		jar:  jar,
		site: site,
		now:  time.Now,
	}
}

func (s *CookieStore) Get(key string) (string, bool) {
	for _, cookie := range s.jar.Cookies(s.site) {
		if cookie.Name == key {
			return cookie.Value, true
		}
	}
	return "", false
}

func (s *CookieStore) Set(key string, value string, expiry time.Duration) error {
	cookie := &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	}
	if expiry > 0 {
		cookie.Expires = s.now().Add(expiry).UTC()
	}
	if err := cookie.Valid(); err != nil {
		return &StoreError{
			Message: err.Error(),
			Cause:   ErrCauseInvalidCookie,
		}
	}
	s.jar.SetCookies(s.site, []*http.Cookie{cookie})
	return nil
}
