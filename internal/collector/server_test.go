package collector_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terroirai/terroir-web/internal/browsing"
	"github.com/terroirai/terroir-web/internal/collector"
	"github.com/terroirai/terroir-web/internal/identity"
	"github.com/terroirai/terroir-web/internal/metadata"
	"github.com/terroirai/terroir-web/internal/pages"
	"github.com/terroirai/terroir-web/internal/tracker"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newServer(t *testing.T) (*collector.Server, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	posts := pages.NewStaticPosts(pages.Post{Slug: "frost-risk", Title: "Frost Risk"})
	return collector.NewServer(zap.New(core), posts, "https://terroirai.com"), logs
}

func do(t *testing.T, s *collector.Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestPageView(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "complete",
			body:       `{"session_id":"s","visitor_id":"v","path":"/blog?utm_source=newsletter","referrer":null,"utm_source":"newsletter","utm_medium":null,"utm_campaign":null,"utm_term":null,"utm_content":null,"screen_width":1280}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing visitor",
			body:       `{"session_id":"s","path":"/"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing path",
			body:       `{"session_id":"s","visitor_id":"v"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not json",
			body:       `path=/`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newServer(t)
			rec := do(t, s, http.MethodPost, "/api/analytics/pageview", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus == http.StatusOK, body["ok"])
			if tt.wantStatus == http.StatusOK {
				_, err := uuid.Parse(body["id"].(string))
				assert.NoError(t, err)
			}
		})
	}
}

func TestPageView_LogsUTM(t *testing.T) {
	s, logs := newServer(t)
	rec := do(t, s, http.MethodPost, "/api/analytics/pageview",
		`{"session_id":"s","visitor_id":"v","path":"/","utm_source":"newsletter","screen_width":390}`)
	require.Equal(t, http.StatusOK, rec.Code)

	entries := logs.FilterMessage("pageview").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "newsletter", fields["utm_source"])
	assert.Nil(t, fields["utm_medium"])
	assert.Equal(t, int64(390), fields["screen_width"])
}

func TestEvent(t *testing.T) {
	s, logs := newServer(t)

	rec := do(t, s, http.MethodPost, "/api/analytics/event",
		`{"session_id":"s","visitor_id":"v","event_name":"cta_click","event_label":"hero","properties":{},"path":"/"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	entries := logs.FilterMessage("event").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "interaction", entries[0].ContextMap()["event_category"])

	rec = do(t, s, http.MethodPost, "/api/analytics/event", `{"session_id":"s","visitor_id":"v"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthCountsReports(t *testing.T) {
	s, _ := newServer(t)
	do(t, s, http.MethodPost, "/api/analytics/pageview", `{"session_id":"s","visitor_id":"v","path":"/"}`)
	do(t, s, http.MethodPost, "/api/analytics/event", `{"session_id":"s","visitor_id":"v","event_name":"share"}`)
	do(t, s, http.MethodPost, "/api/analytics/event", `{"session_id":"s","visitor_id":"v","event_name":"share"}`)

	rec := do(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(1), body["pageviews"])
	assert.Equal(t, float64(2), body["events"])
}

func TestCORS(t *testing.T) {
	s, _ := newServer(t)

	rec := do(t, s, http.MethodOptions, "/api/analytics/pageview", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://terroirai.com", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, "https://terroirai.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestBlogAPI(t *testing.T) {
	s, _ := newServer(t)

	rec := do(t, s, http.MethodGet, "/api/blog/frost-risk", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var post pages.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))
	assert.Equal(t, "Frost Risk", post.Title)

	rec = do(t, s, http.MethodGet, "/api/blog/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/blog", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var posts []pages.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	assert.Len(t, posts, 1)
}

// The tracker's beacon and the collector agree on paths and payload shape.
func TestTrackerToCollector(t *testing.T) {
	s, logs := newServer(t)
	server := httptest.NewServer(s.Handler())
	t.Cleanup(server.Close)

	ctx, err := browsing.NewLive("https://terroirai.com/blog?utm_campaign=spring", "", 768)
	require.NoError(t, err)
	beacon := tracker.NewHTTPBeacon(&metadata.NoopSink{}, server.URL+"/api", "terroir-web/test", time.Second)
	identities := identity.NewIdentityStore(identity.NewMemoryStore(time.Minute), ctx, &metadata.NoopSink{})
	tr := tracker.NewTracker(ctx, identities, beacon, tracker.Settings{
		VisitorCookie:     "terroir_vid",
		VisitorExpiryDays: 365,
		SessionCookie:     "terroir_sid",
	})

	tr.TrackPageView("/blog?utm_campaign=spring")
	tr.TrackWaitlistJoin()
	beacon.Drain()

	pageviews := logs.FilterMessage("pageview").All()
	require.Len(t, pageviews, 1)
	assert.Equal(t, "spring", pageviews[0].ContextMap()["utm_campaign"])
	assert.Len(t, logs.FilterMessage("event").All(), 1)
	assert.Empty(t, logs.FilterMessage("rejected pageview").All())
}

// The content API served here is the one pages.APIPosts reads.
func TestBlogAPI_ReadByAPIPosts(t *testing.T) {
	s, _ := newServer(t)
	server := httptest.NewServer(s.Handler())
	t.Cleanup(server.Close)

	source := pages.NewAPIPosts(server.URL+"/api", "terroir-web/test", time.Minute)

	post, err := source.Post(t.Context(), "frost-risk")
	require.NoError(t, err)
	assert.Equal(t, "Frost Risk", post.Title)

	_, err = source.Post(t.Context(), "unknown")
	assert.ErrorIs(t, err, pages.ErrPostNotFound)
}
