package navigation

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/terroirai/terroir-web/internal/browsing"
	"github.com/terroirai/terroir-web/pkg/urlutil"
)

/*
Responsibilities
- Resolve a requested URL against the route table, following redirects
- Move the browsing context to the resolved location
- Emit NavigationEnd to subscribers, synchronously, in subscription order

Subscribers run on the navigating goroutine and must not block; anything slow
(an analytics report) is handed off by the subscriber itself.
*/

const maxRedirects = 5

type Router struct {
	mu          sync.Mutex
	routes      []Route
	context     *browsing.Context
	lastID      int
	nextSubID   int
	subscribers map[int]func(NavigationEnd)
	order       []int
}

func NewRouter(context *browsing.Context, routes []Route) *Router {
	return &Router{
		routes:      routes,
		context:     context,
		subscribers: make(map[int]func(NavigationEnd)),
	}
}

// Subscribe registers fn for NavigationEnd occurrences and returns a function
// that removes the subscription.
func (r *Router) Subscribe(fn func(NavigationEnd)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextSubID++
	id := r.nextSubID
	r.subscribers[id] = fn
	r.order = append(r.order, id)

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subscribers, id)
		for i, sub := range r.order {
			if sub == id {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
}

// Navigate resolves ref (for example "/blog?utm_source=newsletter") against
// the current location, follows redirects, moves the context and notifies
// subscribers.
func (r *Router) Navigate(ref string) (Match, error) {
	requested, err := r.context.Resolve(ref)
	if err != nil {
		return Match{}, err
	}

	match, err := r.resolve(requested)
	if err != nil {
		return Match{}, err
	}

	r.context.SetLocation(match.Location)

	r.mu.Lock()
	r.lastID++
	event := NavigationEnd{
		ID:                r.lastID,
		URL:               routerURL(requested),
		URLAfterRedirects: routerURL(match.Location),
	}
	subscribers := make([]func(NavigationEnd), 0, len(r.order))
	for _, id := range r.order {
		subscribers = append(subscribers, r.subscribers[id])
	}
	r.mu.Unlock()

	for _, fn := range subscribers {
		fn(event)
	}
	return match, nil
}

// Match resolves a path against the route table without navigating.
func (r *Router) Match(path string) (Match, error) {
	loc, err := r.context.Resolve(path)
	if err != nil {
		return Match{}, err
	}
	return r.resolve(loc)
}

func (r *Router) resolve(loc url.URL) (Match, error) {
	for range maxRedirects {
		loc.Path = urlutil.CleanPath(loc.Path)
		loc.RawPath = ""
		route, params, ok := r.lookup(loc.Path)
		if !ok {
			return Match{}, fmt.Errorf("%w: %s", ErrNoRoute, loc.Path)
		}
		if route.Name != "" {
			return Match{Route: route, Params: params, Location: loc}, nil
		}
		loc.Path = "/" + route.RedirectTo
	}
	return Match{}, fmt.Errorf("%w: %s", ErrRedirectLoop, loc.Path)
}

func (r *Router) lookup(path string) (Route, map[string]string, bool) {
	segments := splitSegments(path)
	for _, route := range r.routes {
		if route.Pattern == "**" {
			return route, map[string]string{}, true
		}
		if params, ok := matchPattern(splitSegments(route.Pattern), segments); ok {
			return route, params, true
		}
	}
	return Route{}, nil, false
}

func matchPattern(pattern []string, segments []string) (map[string]string, bool) {
	if len(pattern) != len(segments) {
		return nil, false
	}
	params := map[string]string{}
	for i, part := range pattern {
		if name, ok := strings.CutPrefix(part, ":"); ok {
			params[name] = segments[i]
			continue
		}
		if part != segments[i] {
			return nil, false
		}
	}
	return params, true
}

func splitSegments(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func routerURL(u url.URL) string {
	if u.RawQuery == "" {
		return u.EscapedPath()
	}
	return u.EscapedPath() + "?" + u.RawQuery
}
