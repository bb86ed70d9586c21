package collector

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/terroirai/terroir-web/internal/build"
	"github.com/terroirai/terroir-web/internal/pages"
	"github.com/terroirai/terroir-web/internal/tracker"
	"go.uber.org/zap"
)

/*
Responsibilities

- Accept pageview and event reports on the paths the tracker posts to
- Validate required identity and naming fields
- Assign every accepted report an id and log it
- Serve the blog content API the page components read in development

The collector stores nothing. It exists so a site can run end to end
without the production backend.
*/

const shutdownTimeout = 5 * time.Second

type Server struct {
	engine    *gin.Engine
	logger    *zap.Logger
	posts     pages.PostSource
	newID     func() string
	startedAt time.Time
	pageViews atomic.Int64
	events    atomic.Int64
}

func NewServer(logger *zap.Logger, posts pages.PostSource, corsOrigin string) *Server {
	s := &Server{
		engine:    gin.New(),
		logger:    logger,
		posts:     posts,
		newID:     func() string { return uuid.New().String() },
		startedAt: time.Now(),
	}

	s.engine.Use(gin.Recovery(), requestLogger(logger), corsMiddleware(corsOrigin))

	s.engine.GET("/health", s.health)

	api := s.engine.Group("/api")
	api.POST(tracker.PageViewEndpoint, s.trackPageView)
	api.POST(tracker.EventEndpoint, s.trackEvent)
	api.GET("/blog", s.listPosts)
	api.GET("/blog/:slug", s.getPost)

	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("collector listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("collector shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) trackPageView(c *gin.Context) {
	var req pageViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Warn("rejected pageview", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	id := s.newID()
	s.pageViews.Add(1)
	s.logger.Info("pageview",
		zap.String("id", id),
		zap.String("visitor_id", req.VisitorID),
		zap.String("session_id", req.SessionID),
		zap.String("path", req.Path),
		zap.Stringp("referrer", req.Referrer),
		zap.Stringp("utm_source", req.UTMSource),
		zap.Stringp("utm_medium", req.UTMMedium),
		zap.Stringp("utm_campaign", req.UTMCampaign),
		zap.Stringp("utm_term", req.UTMTerm),
		zap.Stringp("utm_content", req.UTMContent),
		zap.Int("screen_width", req.ScreenWidth),
	)
	c.JSON(http.StatusOK, ackResponse{OK: true, ID: id})
}

func (s *Server) trackEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Warn("rejected event", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if req.EventCategory == "" {
		req.EventCategory = string(tracker.CategoryInteraction)
	}

	id := s.newID()
	s.events.Add(1)
	s.logger.Info("event",
		zap.String("id", id),
		zap.String("visitor_id", req.VisitorID),
		zap.String("session_id", req.SessionID),
		zap.String("event_name", req.EventName),
		zap.String("event_category", req.EventCategory),
		zap.Stringp("event_label", req.EventLabel),
		zap.Float64p("event_value", req.EventValue),
		zap.Any("properties", req.Properties),
		zap.String("path", req.Path),
	)
	c.JSON(http.StatusOK, ackResponse{OK: true, ID: id})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:    "ok",
		Version:   build.Version,
		PageViews: s.pageViews.Load(),
		Events:    s.events.Load(),
		StartedAt: s.startedAt.UTC().Format(time.RFC3339),
	})
}

func (s *Server) listPosts(c *gin.Context) {
	posts, err := s.posts.Posts(c.Request.Context())
	if err != nil {
		s.logger.Error("list posts failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "posts unavailable"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (s *Server) getPost(c *gin.Context) {
	post, err := s.posts.Post(c.Request.Context(), c.Param("slug"))
	switch {
	case errors.Is(err, pages.ErrPostNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "post not found"})
	case err != nil:
		s.logger.Error("get post failed", zap.String("slug", c.Param("slug")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "posts unavailable"})
	default:
		c.JSON(http.StatusOK, post)
	}
}
