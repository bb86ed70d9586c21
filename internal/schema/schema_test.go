package schema_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terroirai/terroir-web/internal/head"
	"github.com/terroirai/terroir-web/internal/metadata"
	"github.com/terroirai/terroir-web/internal/schema"
)

var testSite = schema.Site{
	Name:         "Terroir AI",
	BaseURL:      "https://terroirai.com",
	DefaultImage: "https://terroirai.com/assets/og-default.jpg",
	LogoPath:     "/assets/logo.svg",
}

func decode(t *testing.T, body string) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	return out
}

func TestOrganization_Graph(t *testing.T) {
	graph := schema.Organization(testSite, schema.OrganizationProfile{
		Description:    "Crop intelligence",
		Email:          "hello@terroirai.com",
		AppName:        "Field Fitness Tracker",
		AppOS:          "iOS",
		AppCategory:    "BusinessApplication",
		AppDescription: "Maps yield variation",
		OfferPrice:     "0",
		OfferCurrency:  "USD",
		OfferNote:      "Free trial available",
	})

	body, err := json.Marshal(graph)
	require.NoError(t, err)
	doc := decode(t, string(body))

	assert.Equal(t, "https://schema.org", doc["@context"])
	nodes := doc["@graph"].([]any)
	require.Len(t, nodes, 3)

	org := nodes[0].(map[string]any)
	assert.Equal(t, "Organization", org["@type"])
	assert.Equal(t, "https://terroirai.com/#organization", org["@id"])
	assert.Equal(t, "Terroir AI", org["name"])
	assert.Equal(t, map[string]any{"@type": "ImageObject", "url": "https://terroirai.com/assets/logo.svg"}, org["logo"])
	assert.Equal(t, []any{}, org["sameAs"])
	assert.Equal(t, "sales", org["contactPoint"].(map[string]any)["contactType"])

	app := nodes[1].(map[string]any)
	assert.Equal(t, "SoftwareApplication", app["@type"])
	assert.Equal(t, map[string]any{"@id": "https://terroirai.com/#organization"}, app["publisher"])
	assert.Equal(t, "0", app["offers"].(map[string]any)["price"])

	site := nodes[2].(map[string]any)
	assert.Equal(t, "WebSite", site["@type"])
	assert.Equal(t, "https://terroirai.com/#website", site["@id"])
	assert.Equal(t, map[string]any{"@id": "https://terroirai.com/#organization"}, site["publisher"])
}

func TestNewArticle_Defaults(t *testing.T) {
	article := schema.NewArticle(testSite, schema.ArticleInput{
		Title:         "Frost Risk",
		Description:   "How to plan for frost",
		URL:           "/blog/frost-risk",
		DatePublished: "2026-03-01",
	})

	assert.Equal(t, "Article", article.Type)
	assert.Equal(t, testSite.DefaultImage, article.Image)
	assert.Equal(t, "https://terroirai.com/blog/frost-risk", article.URL)
	assert.Equal(t, "2026-03-01", article.DateModified)
	assert.Equal(t, "Terroir AI Team", article.Author.Name)
	assert.Equal(t, "Organization", article.Author.Type)
	assert.Equal(t, "https://terroirai.com", article.Author.URL)
	assert.Equal(t, "Terroir AI", article.Publisher.Name)
	require.NotNil(t, article.Publisher.Logo)
	assert.Equal(t, "https://terroirai.com/assets/logo.svg", article.Publisher.Logo.URL)
	assert.Equal(t, schema.WebPageRef{Type: "WebPage", ID: "https://terroirai.com/blog/frost-risk"}, article.MainEntityOfPage)
}

func TestNewArticle_ExplicitValues(t *testing.T) {
	article := schema.NewArticle(testSite, schema.ArticleInput{
		Title:         "Canopy Vigor",
		URL:           "/blog/canopy-vigor",
		Image:         "https://cdn.terroirai.com/canopy.jpg",
		DatePublished: "2026-02-01",
		DateModified:  "2026-02-10",
		Author:        "Dana Ruiz",
	})

	assert.Equal(t, "https://cdn.terroirai.com/canopy.jpg", article.Image)
	assert.Equal(t, "2026-02-10", article.DateModified)
	assert.Equal(t, "Dana Ruiz", article.Author.Name)
}

func TestNewArticle_MissingDatesAreOmitted(t *testing.T) {
	body, err := json.Marshal(schema.NewArticle(testSite, schema.ArticleInput{Title: "Draft", URL: "/blog/draft"}))
	require.NoError(t, err)
	doc := decode(t, string(body))

	assert.NotContains(t, doc, "datePublished")
	assert.NotContains(t, doc, "dateModified")
	assert.NotContains(t, doc["author"], "logo")
}

func TestNewFAQPage_PreservesOrder(t *testing.T) {
	faq := schema.NewFAQPage([]schema.FAQ{
		{Question: "What crops?", Answer: "Wine grapes first."},
		{Question: "Which phone?", Answer: "iPhone 12 Pro or newer."},
		{Question: "How long to set up?", Answer: "One afternoon."},
	})

	assert.Equal(t, "FAQPage", faq.Type)
	require.Len(t, faq.MainEntity, 3)
	assert.Equal(t, "What crops?", faq.MainEntity[0].Name)
	assert.Equal(t, "Which phone?", faq.MainEntity[1].Name)
	assert.Equal(t, "How long to set up?", faq.MainEntity[2].Name)
	for _, q := range faq.MainEntity {
		assert.Equal(t, "Question", q.Type)
		assert.Equal(t, "Answer", q.AcceptedAnswer.Type)
	}
	assert.Equal(t, "One afternoon.", faq.MainEntity[2].AcceptedAnswer.Text)
}

func TestNewBreadcrumbList(t *testing.T) {
	list := schema.NewBreadcrumbList(testSite, []schema.Crumb{
		{Name: "Home", URL: "/"},
		{Name: "Blog", URL: "/blog"},
		{Name: "Frost Risk", URL: "/blog/frost-risk"},
	})

	assert.Equal(t, "BreadcrumbList", list.Type)
	assert.Equal(t, []schema.ListItem{
		{Type: "ListItem", Position: 1, Name: "Home", Item: "https://terroirai.com/"},
		{Type: "ListItem", Position: 2, Name: "Blog", Item: "https://terroirai.com/blog"},
		{Type: "ListItem", Position: 3, Name: "Frost Risk", Item: "https://terroirai.com/blog/frost-risk"},
	}, list.ItemListElement)
}

func TestInjector_PrimaryAndSecondarySlots(t *testing.T) {
	doc := head.New()
	injector := schema.NewInjector(doc, &metadata.NoopSink{})

	injector.SetPrimary(schema.NewArticle(testSite, schema.ArticleInput{Title: "Frost Risk", URL: "/blog/frost-risk"}))
	injector.SetSecondary(schema.BreadcrumbKey, schema.NewBreadcrumbList(testSite, []schema.Crumb{{Name: "Home", URL: "/"}}))

	scripts := doc.Scripts()
	require.Len(t, scripts, 2)
	assert.Equal(t, "Article", decode(t, scripts[0].Body)["@type"])
	assert.Equal(t, "breadcrumb", scripts[1].Key)

	injector.SetPrimary(schema.NewFAQPage([]schema.FAQ{{Question: "q", Answer: "a"}}))

	scripts = doc.Scripts()
	require.Len(t, scripts, 2)
	types := map[string]any{}
	for _, s := range scripts {
		types[s.Key] = decode(t, s.Body)["@type"]
	}
	assert.Equal(t, map[string]any{"": "FAQPage", "breadcrumb": "BreadcrumbList"}, types)
	assert.Equal(t, 1, doc.Count(`script[data-schema="breadcrumb"]`))
}

func TestInjector_SecondaryReplacesOnlyItsKey(t *testing.T) {
	doc := head.New()
	injector := schema.NewInjector(doc, &metadata.NoopSink{})

	injector.SetSecondary("breadcrumb", map[string]string{"v": "1"})
	injector.SetSecondary("event", map[string]string{"v": "e"})
	injector.SetSecondary("breadcrumb", map[string]string{"v": "2"})

	assert.ElementsMatch(t, []head.Script{
		{Key: "event", Body: `{"v":"e"}`},
		{Key: "breadcrumb", Body: `{"v":"2"}`},
	}, doc.Scripts())

	injector.RemoveSecondary("event")
	assert.Equal(t, []head.Script{{Key: "breadcrumb", Body: `{"v":"2"}`}}, doc.Scripts())
}

func TestInjector_EscapesScriptTerminator(t *testing.T) {
	doc := head.New()
	injector := schema.NewInjector(doc, &metadata.NoopSink{})

	injector.SetPrimary(schema.NewFAQPage([]schema.FAQ{{Question: "</script><script>alert(1)", Answer: "no"}}))

	rendered, err := doc.HeadHTML()
	require.NoError(t, err)
	assert.NotContains(t, rendered, "</script><script>")
	assert.Equal(t, "</script><script>alert(1)", decode(t, doc.Scripts()[0].Body)["mainEntity"].([]any)[0].(map[string]any)["name"])
}

// errorCountingSink counts recorded errors.
type errorCountingSink struct {
	metadata.NoopSink
	errors    int
	lastCause metadata.ErrorCause
}

func (e *errorCountingSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	e.errors++
	e.lastCause = cause
}

func TestInjector_UnencodableDocumentKeepsPrevious(t *testing.T) {
	doc := head.New()
	sink := &errorCountingSink{}
	injector := schema.NewInjector(doc, sink)

	injector.SetPrimary(map[string]string{"@type": "FAQPage"})
	injector.SetPrimary(map[string]any{"bad": func() {}})

	assert.Equal(t, []head.Script{{Key: "", Body: `{"@type":"FAQPage"}`}}, doc.Scripts())
	assert.Equal(t, 1, sink.errors)
	assert.Equal(t, metadata.CauseContentInvalid, sink.lastCause)
}
