package pages

import (
	"context"
	"fmt"

	"github.com/terroirai/terroir-web/internal/excerpt"
	"github.com/terroirai/terroir-web/internal/navigation"
	"github.com/terroirai/terroir-web/internal/schema"
	"github.com/terroirai/terroir-web/internal/seo"
)

/*
Page components. Each one computes its metadata and structured data on
activation and pushes them into the head, replacing whatever the previous
page left. Nothing is merged across pages.
*/

// Page is activated once per navigation that lands on its route.
type Page interface {
	Activate(ctx context.Context, match navigation.Match) error
}

// Head bundles the head-writing collaborators every page uses.
type Head struct {
	SEO    *seo.Synchronizer
	Schema *schema.Injector
	Site   schema.Site
}

// clearStructuredData is used by pages without structured data of their own,
// so the previous page's documents do not outlive it.
func (h Head) clearStructuredData() {
	h.Schema.RemovePrimary()
	h.Schema.RemoveSecondary(schema.BreadcrumbKey)
}

// Registry maps route names to page components.
type Registry map[navigation.RouteName]Page

func NewRegistry(head Head, posts PostSource, excerpts *excerpt.Extractor) Registry {
	return Registry{
		navigation.RouteHome:     &Home{head: head},
		navigation.RouteBlog:     &Blog{head: head},
		navigation.RouteBlogPost: &BlogPost{head: head, posts: posts, excerpts: excerpts},
		navigation.RouteContact:  &Contact{head: head},
		navigation.RouteAdmin:    &Admin{head: head},
	}
}

// Activate dispatches to the page registered for the match.
func (r Registry) Activate(ctx context.Context, match navigation.Match) error {
	page, ok := r[match.Route.Name]
	if !ok {
		return fmt.Errorf("no page registered for route %q", match.Route.Name)
	}
	return page.Activate(ctx, match)
}

type Home struct {
	head Head
}

// Activate sets the Organization graph and then the FAQ page in the primary
// slot; the FAQ document is the one left in the head.
func (p *Home) Activate(_ context.Context, _ navigation.Match) error {
	p.head.SEO.Apply(seo.PageMetadata{
		Title:       "Terroir AI — Precision Labor Intelligence for Specialty Crops",
		Description: "Apply for the 2026 pilot program. iPhone-based computer vision that turns a single drive through your rows into a labor deployment plan — crew sizes, spray priorities, harvest logistics. Limited to 20 farms.",
		URL:         "/",
		Image:       homeImage,
	})
	p.head.Schema.SetPrimary(schema.Organization(p.head.Site, organizationProfile))
	p.head.Schema.SetPrimary(schema.NewFAQPage(homeFAQs))
	p.head.Schema.RemoveSecondary(schema.BreadcrumbKey)
	return nil
}

type Blog struct {
	head Head
}

func (p *Blog) Activate(_ context.Context, _ navigation.Match) error {
	p.head.SEO.Apply(seo.PageMetadata{
		Title:       "Blog — Precision Agriculture Insights",
		Description: "Expert articles on specialty crop intelligence, labor optimization, disease management, and field technology from the Terroir AI team.",
		URL:         "/blog",
	})
	p.head.clearStructuredData()
	return nil
}

type Contact struct {
	head Head
}

func (p *Contact) Activate(_ context.Context, _ navigation.Match) error {
	p.head.SEO.Apply(seo.PageMetadata{
		Title:       "Contact Us — See a Demo",
		Description: "Get in touch with Terroir AI. Schedule a demo or learn how precision labor intelligence can optimize crew deployment and reduce costs for your specialty crop operation.",
		URL:         "/contact",
	})
	p.head.clearStructuredData()
	return nil
}

type Admin struct {
	head Head
}

func (p *Admin) Activate(_ context.Context, _ navigation.Match) error {
	p.head.SEO.Apply(seo.PageMetadata{
		Title:       "Admin Dashboard",
		Description: "Internal admin dashboard",
		URL:         "/admin",
		NoIndex:     true,
	})
	p.head.clearStructuredData()
	return nil
}

type BlogPost struct {
	head     Head
	posts    PostSource
	excerpts *excerpt.Extractor
}

// Activate loads the post named by the slug parameter. When the post cannot
// be loaded the head is left as it was and the error is returned.
func (p *BlogPost) Activate(ctx context.Context, match navigation.Match) error {
	post, err := p.posts.Post(ctx, match.Param("slug"))
	if err != nil {
		return err
	}

	url := "/blog/" + post.Slug
	description := p.description(post)

	p.head.SEO.Apply(seo.PageMetadata{
		Title:       post.Title,
		Description: description,
		URL:         url,
		Image:       post.HeroImageURL,
		Kind:        seo.KindArticle,
		Article: &seo.ArticleFields{
			PublishedTime: post.PublishedAt,
			Author:        post.AuthorName,
			Section:       post.Category,
		},
	})

	modified := post.UpdatedAt
	if modified == "" {
		modified = post.PublishedAt
	}
	p.head.Schema.SetPrimary(schema.NewArticle(p.head.Site, schema.ArticleInput{
		Title:         post.Title,
		Description:   description,
		URL:           url,
		Image:         post.HeroImageURL,
		DatePublished: post.PublishedAt,
		DateModified:  modified,
		Author:        post.AuthorName,
	}))
	p.head.Schema.SetSecondary(schema.BreadcrumbKey, schema.NewBreadcrumbList(p.head.Site, []schema.Crumb{
		{Name: "Home", URL: "/"},
		{Name: "Blog", URL: "/blog"},
		{Name: post.Title, URL: url},
	}))
	return nil
}

// description prefers the editorial excerpt, then a summary of the content,
// then the title.
func (p *BlogPost) description(post Post) string {
	if post.Excerpt != "" {
		return post.Excerpt
	}
	if p.excerpts != nil {
		if summary, err := p.excerpts.Summarize(post.ContentHTML); err == nil && summary != "" {
			return summary
		}
	}
	return post.Title
}
