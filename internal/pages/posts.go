package pages

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/terroirai/terroir-web/pkg/urlutil"
)

var ErrPostNotFound = errors.New("blog post not found")
var ErrPostSourceUnavailable = errors.New("blog post source unavailable")

// Post is a published blog post as served by the content API.
type Post struct {
	Slug            string `json:"slug"`
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle,omitempty"`
	Category        string `json:"category"`
	HeroImageURL    string `json:"hero_image_url,omitempty"`
	ContentHTML     string `json:"content_html"`
	Excerpt         string `json:"excerpt"`
	AuthorName      string `json:"author_name"`
	ReadTimeMinutes int    `json:"read_time_minutes"`
	PublishedAt     string `json:"published_at,omitempty"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}

// PostSource looks up blog posts by slug.
type PostSource interface {
	Post(ctx context.Context, slug string) (Post, error)
	Posts(ctx context.Context) ([]Post, error)
}

// StaticPosts serves a fixed set of posts from memory.
type StaticPosts struct {
	mu    sync.RWMutex
	posts map[string]Post
}

func NewStaticPosts(posts ...Post) *StaticPosts {
	s := &StaticPosts{posts: make(map[string]Post, len(posts))}
	for _, p := range posts {
		s.posts[p.Slug] = p
	}
	return s
}

func (s *StaticPosts) Post(_ context.Context, slug string) (Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.posts[slug]
	if !ok {
		return Post{}, fmt.Errorf("%w: %s", ErrPostNotFound, slug)
	}
	return post, nil
}

// Posts returns every post, newest first.
func (s *StaticPosts) Posts(_ context.Context) ([]Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	posts := make([]Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].PublishedAt == posts[j].PublishedAt {
			return posts[i].Slug < posts[j].Slug
		}
		return posts[i].PublishedAt > posts[j].PublishedAt
	})
	return posts, nil
}

// APIPosts reads posts from the content API (<api>/blog and <api>/blog/<slug>)
// and keeps successful lookups in an expiring cache.
type APIPosts struct {
	httpClient *http.Client
	apiBaseURL string
	userAgent  string
	cache      *cache.Cache
}

func NewAPIPosts(apiBaseURL string, userAgent string, ttl time.Duration) *APIPosts {
	return &APIPosts{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiBaseURL: apiBaseURL,
		userAgent:  userAgent,
		cache:      cache.New(ttl, 2*ttl),
	}
}

func (a *APIPosts) Post(ctx context.Context, slug string) (Post, error) {
	if cached, ok := a.cache.Get("post:" + slug); ok {
		return cached.(Post), nil
	}

	var post Post
	endpoint := urlutil.JoinBase(a.apiBaseURL, "/blog/"+url.PathEscape(slug))
	if err := a.getJSON(ctx, endpoint, &post); err != nil {
		return Post{}, err
	}
	a.cache.SetDefault("post:"+slug, post)
	return post, nil
}

func (a *APIPosts) Posts(ctx context.Context) ([]Post, error) {
	if cached, ok := a.cache.Get("posts"); ok {
		return cached.([]Post), nil
	}

	var posts []Post
	if err := a.getJSON(ctx, urlutil.JoinBase(a.apiBaseURL, "/blog"), &posts); err != nil {
		return nil, err
	}
	a.cache.SetDefault("posts", posts)
	return posts, nil
}

func (a *APIPosts) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrPostSourceUnavailable, err.Error())
	}
	req.Header.Set("Accept", "application/json")
	if a.userAgent != "" {
		req.Header.Set("User-Agent", a.userAgent)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrPostSourceUnavailable, err.Error())
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrPostNotFound, endpoint)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: %s answered %d", ErrPostSourceUnavailable, endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s", ErrPostSourceUnavailable, err.Error())
	}
	return nil
}
