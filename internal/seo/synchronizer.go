package seo

import (
	"errors"
	"time"

	"github.com/terroirai/terroir-web/internal/head"
	"github.com/terroirai/terroir-web/internal/metadata"
)

/*
Responsibilities
- Derive the full title, canonical URL, robots directive and image fallback
- Upsert title, description, robots, canonical, Open Graph and Twitter tags
- Upsert article:* tags for articles, and clear the ones a page did not set

Apply is idempotent: applying the same metadata twice leaves one element per
tag. It never fails from the caller's point of view; a head that cannot be
written is recorded and left stale.
*/

var articleTags = [...]head.TagKey{
	head.Property("article:published_time"),
	head.Property("article:author"),
	head.Property("article:section"),
}

type Synchronizer struct {
	doc          *head.Document
	site         Site
	metadataSink metadata.MetadataSink
}

func NewSynchronizer(doc *head.Document, site Site, metadataSink metadata.MetadataSink) *Synchronizer {
	return &Synchronizer{
		doc:          doc,
		site:         site,
		metadataSink: metadataSink,
	}
}

func (s *Synchronizer) Apply(m PageMetadata) {
	fullTitle := m.FullTitle(s.site.Name)
	canonical := m.CanonicalURL(s.site.BaseURL)
	image := m.image(s.site.DefaultImage)

	s.doc.SetTitle(fullTitle)
	s.doc.SetMeta(head.Name("description"), m.Description)
	s.doc.SetMeta(head.Name("robots"), m.robots())
	s.doc.SetLink(head.CanonicalRel, canonical)

	s.doc.SetMeta(head.Property("og:title"), fullTitle)
	s.doc.SetMeta(head.Property("og:description"), m.Description)
	s.doc.SetMeta(head.Property("og:url"), canonical)
	s.doc.SetMeta(head.Property("og:image"), image)
	s.doc.SetMeta(head.Property("og:type"), string(m.kind()))
	s.doc.SetMeta(head.Property("og:site_name"), s.site.Name)
	s.doc.SetMeta(head.Property("og:locale"), s.site.Locale)

	s.doc.SetMeta(head.Name("twitter:card"), s.site.TwitterCard)
	s.doc.SetMeta(head.Name("twitter:title"), fullTitle)
	s.doc.SetMeta(head.Name("twitter:description"), m.Description)
	s.doc.SetMeta(head.Name("twitter:image"), image)

	s.applyArticle(m)

	if err := s.doc.Flush(); err != nil {
		s.recordFlushError(m.URL, err)
	}
}

// applyArticle sets the article:* tags present on an article page and removes
// every other one, so a previous article's values never leak into this page.
func (s *Synchronizer) applyArticle(m PageMetadata) {
	var values [len(articleTags)]string
	if m.kind() == KindArticle && m.Article != nil {
		values = [len(articleTags)]string{m.Article.PublishedTime, m.Article.Author, m.Article.Section}
	}
	for i, key := range articleTags {
		if values[i] == "" {
			s.doc.RemoveMeta(key)
			continue
		}
		s.doc.SetMeta(key, values[i])
	}
}

func (s *Synchronizer) recordFlushError(url string, err error) {
	cause := metadata.CauseUnknown
	var headErr *head.HeadError
	if errors.As(err, &headErr) {
		cause = head.MapToMetadataCause(headErr)
	}
	s.metadataSink.RecordError(
		time.Now(),
		"seo",
		"Synchronizer.Apply",
		cause,
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrPath, url),
		},
	)
}
