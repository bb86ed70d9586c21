package pages

import "github.com/terroirai/terroir-web/internal/schema"

const homeImage = "https://images.unsplash.com/photo-1533038590840-1cde6e668a91?q=80&w=1200&auto=format&fit=crop"

var organizationProfile = schema.OrganizationProfile{
	Description:    "Real-time iPhone-based computer vision for specialty crop intelligence. Optimize labor, forecast yield, and manage disease.",
	Email:          "hello@terroirai.com",
	SameAs:         []string{},
	AppName:        "Terroir AI Field Fitness Tracker",
	AppOS:          "iOS",
	AppCategory:    "BusinessApplication",
	AppDescription: "iPhone-based computer vision that maps yield variation, detects disease, and optimizes labor deployment for specialty crop farmers.",
	OfferPrice:     "0",
	OfferCurrency:  "USD",
	OfferNote:      "Free trial available",
}

var homeFAQs = []schema.FAQ{
	{
		Question: "How does Terroir AI reduce labor costs?",
		Answer:   "Terroir AI uses iPhone-based computer vision to create plant-level maps of yield, disease, and crop load. These maps power variable rate labor deployment — sending the right number of workers to each block based on actual data, not gut feel. Growers typically see a 30% reduction in labor costs.",
	},
	{
		Question: "What is Precision Labor Intelligence?",
		Answer:   "Precision Labor Intelligence turns a single drive through your rows into a complete labor deployment plan — directed scouting assignments, variable crew sizing per block, spray priorities, and harvest logistics. All processing happens on-device at 30+ frames per second with no cloud upload required.",
	},
	{
		Question: "How does Terroir AI help with harvest labor planning?",
		Answer:   "By counting and sizing fruit across your operation, Terroir AI generates yield forecasts grounded in actual data. This lets you right-size H-2A crews weeks in advance, prevent over-hiring, and allocate bins and equipment precisely where they are needed.",
	},
}

// SamplePosts seed the development content API and offline prerendering.
func SamplePosts() []Post {
	return []Post{
		{
			Slug:            "variable-rate-labor",
			Title:           "Variable Rate Labor: Sending Crews Where the Vines Need Them",
			Category:        "Labor",
			ContentHTML:     "<h2>The problem with uniform crews</h2><p>Most vineyards staff every block the same way, even though crop load can vary threefold across a single ranch.</p><p>Plant-level maps change that.</p>",
			Excerpt:         "Why uniform crew sizing wastes labor, and how plant-level maps fix it.",
			AuthorName:      "Terroir AI Team",
			ReadTimeMinutes: 6,
			PublishedAt:     "2026-02-03T16:00:00Z",
			UpdatedAt:       "2026-02-10T09:30:00Z",
		},
		{
			Slug:            "early-disease-detection",
			Title:           "Catching Powdery Mildew Before It Spreads",
			Category:        "Disease",
			HeroImageURL:    "https://images.unsplash.com/photo-1506377247377-2a5b3b417ebb?w=1200",
			ContentHTML:     "<p>Powdery mildew shows up on the canopy days before a scout notices it from the row end. <strong>Computer vision</strong> spots it on the first pass.</p>",
			AuthorName:      "Dana Ruiz",
			ReadTimeMinutes: 4,
			PublishedAt:     "2026-01-20T16:00:00Z",
		},
	}
}
