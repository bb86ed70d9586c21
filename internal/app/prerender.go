package app

import (
	"bytes"
	"context"
	"fmt"

	"github.com/terroirai/terroir-web/internal/config"
	"github.com/terroirai/terroir-web/internal/metadata"
	"github.com/terroirai/terroir-web/internal/navigation"
	"github.com/terroirai/terroir-web/internal/pages"
	"github.com/terroirai/terroir-web/internal/storage"
	"github.com/terroirai/terroir-web/pkg/hashutil"
)

// DefaultShell is the page shell used when no built index.html is supplied.
const DefaultShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body><app-root></app-root></body>
</html>
`

// Rendered is one route rendered through a fresh static session.
type Rendered struct {
	Route       string
	HTML        []byte
	HeadHTML    string
	Fingerprint string
}

/*
Prerenderer renders routes ahead of time.

Every route gets its own static session parsed from the same shell, so no
head state carries over between routes. Tracking never runs.
*/
type Prerenderer struct {
	cfg          config.Config
	shell        []byte
	posts        pages.PostSource
	sink         storage.Sink
	metadataSink metadata.MetadataSink
}

func NewPrerenderer(
	cfg config.Config,
	shell []byte,
	posts pages.PostSource,
	sink storage.Sink,
	metadataSink metadata.MetadataSink,
) *Prerenderer {
	if len(shell) == 0 {
		shell = []byte(DefaultShell)
	}
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	return &Prerenderer{
		cfg:          cfg,
		shell:        shell,
		posts:        posts,
		sink:         sink,
		metadataSink: metadataSink,
	}
}

// Routes lists the static routes, followed by every blog post when
// withPosts is set.
func (p *Prerenderer) Routes(ctx context.Context, withPosts bool) ([]string, error) {
	routes := navigation.StaticRoutes()
	if !withPosts {
		return routes, nil
	}
	posts, err := p.posts.Posts(ctx)
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		routes = append(routes, "/blog/"+post.Slug)
	}
	return routes, nil
}

func (p *Prerenderer) Render(route string) (Rendered, error) {
	session, err := NewStaticSession(p.cfg, bytes.NewReader(p.shell), p.posts, p.metadataSink)
	if err != nil {
		return Rendered{}, err
	}
	defer session.Close()

	if err := session.Navigate(route); err != nil {
		return Rendered{}, fmt.Errorf("render %s: %w", route, err)
	}

	var buf bytes.Buffer
	if err := session.Document().Render(&buf); err != nil {
		return Rendered{}, fmt.Errorf("render %s: %w", route, err)
	}
	headHTML, err := session.Document().HeadHTML()
	if err != nil {
		return Rendered{}, fmt.Errorf("render %s: %w", route, err)
	}
	fingerprint, err := session.Document().Fingerprint()
	if err != nil {
		return Rendered{}, fmt.Errorf("render %s: %w", route, err)
	}
	return Rendered{
		Route:       route,
		HTML:        buf.Bytes(),
		HeadHTML:    headHTML,
		Fingerprint: fingerprint,
	}, nil
}

// Write renders every route and writes it under outputDir through the sink. It stops at the
// first route that fails.
func (p *Prerenderer) Write(outputDir string, routes []string) ([]storage.WriteResult, error) {
	results := make([]storage.WriteResult, 0, len(routes))
	for _, route := range routes {
		rendered, err := p.Render(route)
		if err != nil {
			return results, err
		}
		result, writeErr := p.sink.Write(
			outputDir,
			storage.NewRenderedPage(route, rendered.HTML),
			hashutil.HashAlgoBLAKE3,
		)
		if writeErr != nil {
			return results, writeErr
		}
		results = append(results, result)
	}
	return results, nil
}
