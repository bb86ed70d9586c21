package tracker

import (
	"github.com/terroirai/terroir-web/internal/browsing"
	"github.com/terroirai/terroir-web/internal/identity"
	"github.com/terroirai/terroir-web/internal/navigation"
	"github.com/terroirai/terroir-web/pkg/urlutil"
)

/*
Responsibilities

- Build pageview and interaction payloads from identity and browsing state
- Hand them to the Dispatcher without waiting
- Report exactly one pageview per completed navigation once attached

In a non-live browsing context every method returns immediately: no identity
is created and nothing is dispatched.
*/

var utmKeys = [...]string{"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content"}

// NavigationSource emits completed navigations. *navigation.Router satisfies it.
type NavigationSource interface {
	Subscribe(fn func(navigation.NavigationEnd)) func()
}

type Tracker struct {
	context    *browsing.Context
	identity   *identity.IdentityStore
	dispatcher Dispatcher
	settings   Settings
}

func NewTracker(
	context *browsing.Context,
	identityStore *identity.IdentityStore,
	dispatcher Dispatcher,
	settings Settings,
) *Tracker {
	return &Tracker{
		context:    context,
		identity:   identityStore,
		dispatcher: dispatcher,
		settings:   settings,
	}
}

// Attach reports a pageview for every NavigationEnd, using the URL the router
// landed on after redirects. The returned function detaches.
func (t *Tracker) Attach(source NavigationSource) func() {
	return source.Subscribe(func(event navigation.NavigationEnd) {
		t.TrackPageView(event.URLAfterRedirects)
	})
}

func (t *Tracker) TrackPageView(path string) {
	if !t.context.IsLive() {
		return
	}

	who := t.identity.Resolve(t.settings.VisitorCookie, t.settings.VisitorExpiryDays, t.settings.SessionCookie)
	location := t.context.Location()

	payload := PageViewPayload{
		SessionID:   who.SessionID,
		VisitorID:   who.VisitorID,
		Path:        path,
		ScreenWidth: t.context.ViewportWidth(),
	}
	if referrer := t.context.Referrer(); referrer != "" {
		payload.Referrer = &referrer
	}

	utm := make([]*string, len(utmKeys))
	for i, key := range utmKeys {
		utm[i] = urlutil.QueryValue(&location, key)
	}
	payload.UTMSource, payload.UTMMedium, payload.UTMCampaign, payload.UTMTerm, payload.UTMContent =
		utm[0], utm[1], utm[2], utm[3], utm[4]

	t.dispatcher.Dispatch(PageViewEndpoint, payload)
}

// TrackEvent reports an interaction event. The category defaults to
// CategoryInteraction; the path is the current location's path.
func (t *Tracker) TrackEvent(name string, opts ...EventOption) {
	if !t.context.IsLive() {
		return
	}

	who := t.identity.Resolve(t.settings.VisitorCookie, t.settings.VisitorExpiryDays, t.settings.SessionCookie)
	location := t.context.Location()

	payload := EventPayload{
		SessionID:     who.SessionID,
		VisitorID:     who.VisitorID,
		EventName:     name,
		EventCategory: CategoryInteraction,
		Properties:    map[string]any{},
		Path:          location.Path,
	}
	for _, opt := range opts {
		opt(&payload)
	}

	t.dispatcher.Dispatch(EventEndpoint, payload)
}

func (t *Tracker) TrackCTAClick(label string) {
	t.TrackEvent("cta_click", WithCategory(CategoryActivation), WithLabel(label))
}

func (t *Tracker) TrackContactSubmit() {
	t.TrackEvent("contact_submit", WithCategory(CategoryActivation), WithLabel("contact_form"))
}

func (t *Tracker) TrackWaitlistJoin() {
	t.TrackEvent("waitlist_join", WithCategory(CategoryActivation), WithLabel("lidar_beta"))
}

func (t *Tracker) TrackDownloadClick() {
	t.TrackEvent("download_click", WithCategory(CategoryRevenue), WithLabel("ios_app"))
}

func (t *Tracker) TrackBlogRead(slug string) {
	t.TrackEvent("blog_read", WithCategory(CategoryRetention), WithLabel(slug))
}

func (t *Tracker) TrackShare(platform string) {
	t.TrackEvent("share_click", WithCategory(CategoryReferral), WithLabel(platform))
}

func (t *Tracker) TrackPilotSignup(acreage string, company string) {
	t.TrackEvent("pilot_signup",
		WithCategory(CategoryActivation),
		WithLabel("pilot_2026"),
		WithProperties(map[string]any{
			"acreage": acreage,
			"company": company,
		}),
	)
}
