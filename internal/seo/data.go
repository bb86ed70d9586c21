package seo

import "github.com/terroirai/terroir-web/pkg/urlutil"

type Kind string

const (
	KindWebsite Kind = "website"
	KindArticle Kind = "article"
)

// ArticleFields are emitted as article:* tags. Empty fields are absent.
type ArticleFields struct {
	PublishedTime string
	Author        string
	Section       string
}

// PageMetadata is what a page hands to the synchronizer on activation.
// URL is site-relative ("/blog"); Image is absolute and optional.
type PageMetadata struct {
	Title       string
	Description string
	URL         string
	Image       string
	Kind        Kind
	Article     *ArticleFields
	NoIndex     bool
}

// Site carries the values shared by every page.
type Site struct {
	Name         string
	BaseURL      string
	DefaultImage string
	Locale       string
	TwitterCard  string
}

// FullTitle is the title alone when it already equals the site name,
// otherwise "<title> | <site name>".
func (m PageMetadata) FullTitle(siteName string) string {
	if m.Title == siteName {
		return m.Title
	}
	return m.Title + " | " + siteName
}

// CanonicalURL is the site base joined with the page URL; the base alone
// when the page URL is empty.
func (m PageMetadata) CanonicalURL(baseURL string) string {
	return urlutil.JoinBase(baseURL, m.URL)
}

func (m PageMetadata) kind() Kind {
	if m.Kind == "" {
		return KindWebsite
	}
	return m.Kind
}

func (m PageMetadata) image(defaultImage string) string {
	if m.Image == "" {
		return defaultImage
	}
	return m.Image
}

func (m PageMetadata) robots() string {
	if m.NoIndex {
		return "noindex, nofollow"
	}
	return "index, follow"
}
