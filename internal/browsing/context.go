package browsing

import (
	"fmt"
	"net/url"
	"sync"
)

/*
Context is the state of one browsing context (a tab, or a prerender pass).

Responsibilities
- Report whether the context is live (only a live context may report)
- Hold the current location, updated by the router on every navigation.
- Hold the entry referrer and viewport width, fixed for the session.

A non-live context models server-side rendering: pages render and the head
is synchronized, but nothing leaves the process.
*/
type Context struct {
	mu            sync.RWMutex
	live          bool
	location      url.URL
	referrer      string
	viewportWidth int
}

// NewLive creates a live context positioned at location. The location must
// be absolute.
func NewLive(location string, referrer string, viewportWidth int) (*Context, error) {
	parsed, err := parseAbsolute(location)
	if err != nil {
		return nil, err
	}
	return &Context{
		live:          true,
		location:      *parsed,
		referrer:      referrer,
		viewportWidth: viewportWidth,
	}, nil
}

// NewStatic creates a non-live context used for prerendering.
func NewStatic(location string) (*Context, error) {
	parsed, err := parseAbsolute(location)
	if err != nil {
		return nil, err
	}
	return &Context{location: *parsed}, nil
}

func parseAbsolute(location string) (*url.URL, error) {
	parsed, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLocation, err.Error())
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q is not absolute", ErrInvalidLocation, location)
	}
	return parsed, nil
}

func (c *Context) IsLive() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.live
}

// Location returns a copy of the current location.
func (c *Context) Location() url.URL {
	c.mu.RLock()
	defer c.mu.RUnlock()
	loc := c.location
	return loc
}

// Origin returns scheme://host of the current location.
func (c *Context) Origin() *url.URL {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return &url.URL{Scheme: c.location.Scheme, Host: c.location.Host, Path: "/"}
}

func (c *Context) Referrer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.referrer
}

func (c *Context) ViewportWidth() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.viewportWidth
}

// Resolve resolves ref (typically "/path?query") against the current location
// without moving to it.
func (c *Context) Resolve(ref string) (url.URL, error) {
	parsed, err := url.Parse(ref)
	if err != nil {
		return url.URL{}, fmt.Errorf("%w: %s", ErrInvalidLocation, err.Error())
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return *c.location.ResolveReference(parsed), nil
}

// SetLocation moves the context to loc. The referrer is not touched: it keeps
// describing how the session was entered.
func (c *Context) SetLocation(loc url.URL) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.location = loc
}
