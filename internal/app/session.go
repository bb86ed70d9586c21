package app

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/terroirai/terroir-web/internal/browsing"
	"github.com/terroirai/terroir-web/internal/config"
	"github.com/terroirai/terroir-web/internal/excerpt"
	"github.com/terroirai/terroir-web/internal/head"
	"github.com/terroirai/terroir-web/internal/identity"
	"github.com/terroirai/terroir-web/internal/metadata"
	"github.com/terroirai/terroir-web/internal/navigation"
	"github.com/terroirai/terroir-web/internal/pages"
	"github.com/terroirai/terroir-web/internal/schema"
	"github.com/terroirai/terroir-web/internal/seo"
	"github.com/terroirai/terroir-web/internal/tracker"
)

/*
Session is the explicit wiring object for one page session.

It owns one instance of every runtime component and connects them:
- the router notifies the tracker (one pageview per completed navigation)
- the router notifies the page registry, which rewrites the head

Nothing here is global. Two sessions never share a head document, an identity
store or a router.
*/
type Session struct {
	context    *browsing.Context
	identity   *identity.IdentityStore
	tracker    *tracker.Tracker
	router     *navigation.Router
	document   *head.Document
	seo        *seo.Synchronizer
	schema     *schema.Injector
	pages      pages.Registry
	dispatcher tracker.Dispatcher

	metadataSink metadata.MetadataSink
	detach       []func()

	mu            sync.Mutex
	activationErr error
}

// Deps are the capabilities a session is assembled from. Document, Store and
// Dispatcher are optional.
type Deps struct {
	Context      *browsing.Context
	Document     *head.Document
	Store        identity.Store
	Dispatcher   tracker.Dispatcher
	Posts        pages.PostSource
	MetadataSink metadata.MetadataSink
}

func NewSession(cfg config.Config, deps Deps) *Session {
	sink := deps.MetadataSink
	if sink == nil {
		sink = &metadata.NoopSink{}
	}
	doc := deps.Document
	if doc == nil {
		doc = head.New()
	}
	store := deps.Store
	if store == nil {
		store = identity.NewMemoryStore(time.Hour)
	}
	dispatcher := deps.Dispatcher
	if dispatcher == nil {
		dispatcher = tracker.NewHTTPBeacon(sink, cfg.APIBaseURL(), cfg.UserAgent(), cfg.ReportTimeout())
	}
	posts := deps.Posts
	if posts == nil {
		posts = pages.NewStaticPosts(pages.SamplePosts()...)
	}

	identityStore := identity.NewIdentityStore(store, deps.Context, sink)
	synchronizer := seo.NewSynchronizer(doc, seo.Site{
		Name:         cfg.SiteName(),
		BaseURL:      cfg.SiteBaseURL(),
		DefaultImage: cfg.DefaultImage(),
		Locale:       cfg.Locale(),
		TwitterCard:  cfg.TwitterCard(),
	}, sink)
	injector := schema.NewInjector(doc, sink)

	s := &Session{
		context:  deps.Context,
		identity: identityStore,
		tracker: tracker.NewTracker(deps.Context, identityStore, dispatcher, tracker.Settings{
			VisitorCookie:     cfg.VisitorCookie(),
			VisitorExpiryDays: cfg.VisitorExpiryDays(),
			SessionCookie:     cfg.SessionCookie(),
		}),
		router:   navigation.NewRouter(deps.Context, navigation.DefaultRoutes()),
		document: doc,
		seo:      synchronizer,
		schema:   injector,
		pages: pages.NewRegistry(pages.Head{
			SEO:    synchronizer,
			Schema: injector,
			Site: schema.Site{
				Name:         cfg.SiteName(),
				BaseURL:      cfg.SiteBaseURL(),
				DefaultImage: cfg.DefaultImage(),
				LogoPath:     logoPath,
			},
		}, posts, excerpt.NewExtractor(sink, excerpt.DefaultMaxRunes)),
		dispatcher:   dispatcher,
		metadataSink: sink,
	}

	s.detach = append(s.detach,
		s.tracker.Attach(s.router),
		s.router.Subscribe(s.activate),
	)
	return s
}

// NewLiveSession builds a session for a real visitor. Identity lives in the
// cookie jar and reports go to the configured collection endpoint.
func NewLiveSession(
	cfg config.Config,
	location string,
	referrer string,
	viewportWidth int,
	jar http.CookieJar,
	metadataSink metadata.MetadataSink,
) (*Session, error) {
	ctx, err := browsing.NewLive(location, referrer, viewportWidth)
	if err != nil {
		return nil, err
	}
	site := ctx.Origin()
	return NewSession(cfg, Deps{
		Context:      ctx,
		Store:        identity.NewCookieStore(jar, site),
		Posts:        pages.NewAPIPosts(cfg.APIBaseURL(), cfg.UserAgent(), 5*time.Minute),
		MetadataSink: metadataSink,
	}), nil
}

// NewStaticSession builds a session for rendering without a visitor, such as
// prerendering. Tracking is disabled by the non-live context.
func NewStaticSession(
	cfg config.Config,
	shell io.Reader,
	posts pages.PostSource,
	metadataSink metadata.MetadataSink,
) (*Session, error) {
	ctx, err := browsing.NewStatic(cfg.SiteBaseURL())
	if err != nil {
		return nil, err
	}
	var doc *head.Document
	if shell != nil {
		doc, err = head.Parse(shell)
		if err != nil {
			return nil, err
		}
	}
	return NewSession(cfg, Deps{
		Context:      ctx,
		Document:     doc,
		Posts:        posts,
		MetadataSink: metadataSink,
	}), nil
}

// Navigate moves the session to ref. Subscribers run before it returns, so
// the head reflects the new page once Navigate returns without error.
func (s *Session) Navigate(ref string) error {
	s.mu.Lock()
	s.activationErr = nil
	s.mu.Unlock()

	if _, err := s.router.Navigate(ref); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activationErr
}

func (s *Session) activate(event navigation.NavigationEnd) {
	match, err := s.router.Match(event.URLAfterRedirects)
	if err == nil {
		err = s.pages.Activate(context.Background(), match)
	}
	if err != nil {
		s.metadataSink.RecordError(
			time.Now(),
			"app",
			"Session.activate",
			metadata.CauseContentInvalid,
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrPath, event.URLAfterRedirects),
			},
		)
	}
	s.mu.Lock()
	s.activationErr = err
	s.mu.Unlock()
}

// Close detaches every subscription and waits for in-flight reports when the
// dispatcher supports it.
func (s *Session) Close() {
	for _, fn := range s.detach {
		fn()
	}
	s.detach = nil
	if d, ok := s.dispatcher.(interface{ Drain() }); ok {
		d.Drain()
	}
}

func (s *Session) Context() *browsing.Context {
	return s.context
}

func (s *Session) Identity() *identity.IdentityStore {
	return s.identity
}

func (s *Session) Tracker() *tracker.Tracker {
	return s.tracker
}

func (s *Session) Router() *navigation.Router {
	return s.router
}

func (s *Session) Document() *head.Document {
	return s.document
}

func (s *Session) SEO() *seo.Synchronizer {
	return s.seo
}

func (s *Session) Schema() *schema.Injector {
	return s.schema
}

// Location is the URL the session currently shows.
func (s *Session) Location() url.URL {
	return s.context.Location()
}

const logoPath = "/assets/logo.svg"
