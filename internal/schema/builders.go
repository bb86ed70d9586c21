package schema

// Builders produce the structural shape of each JSON-LD document. They do not
// validate values against schema.org.

func Organization(site Site, profile OrganizationProfile) Graph {
	orgID := site.BaseURL + "/#organization"
	sameAs := profile.SameAs
	if sameAs == nil {
		sameAs = []string{}
	}

	return Graph{
		Context: schemaContext,
		Graph: []any{
			OrganizationNode{
				Type:        "Organization",
				ID:          orgID,
				Name:        site.Name,
				URL:         site.BaseURL,
				Logo:        ImageObject{Type: "ImageObject", URL: site.logoURL()},
				Description: profile.Description,
				SameAs:      sameAs,
				ContactPoint: ContactPoint{
					Type:        "ContactPoint",
					Email:       profile.Email,
					ContactType: "sales",
				},
			},
			SoftwareApplicationNode{
				Type:                "SoftwareApplication",
				Name:                profile.AppName,
				OperatingSystem:     profile.AppOS,
				ApplicationCategory: profile.AppCategory,
				Description:         profile.AppDescription,
				Offers: Offer{
					Type:          "Offer",
					Price:         profile.OfferPrice,
					PriceCurrency: profile.OfferCurrency,
					Description:   profile.OfferNote,
				},
				Publisher: Reference{ID: orgID},
			},
			WebSiteNode{
				Type:      "WebSite",
				ID:        site.BaseURL + "/#website",
				URL:       site.BaseURL,
				Name:      site.Name,
				Publisher: Reference{ID: orgID},
			},
		},
	}
}

// NewArticle builds an Article. The image falls back to the site default,
// dateModified to datePublished and the author to "<site name> Team".
func NewArticle(site Site, in ArticleInput) Article {
	pageURL := site.BaseURL + in.URL

	image := in.Image
	if image == "" {
		image = site.DefaultImage
	}
	modified := in.DateModified
	if modified == "" {
		modified = in.DatePublished
	}
	author := in.Author
	if author == "" {
		author = site.Name + " Team"
	}

	return Article{
		Context:       schemaContext,
		Type:          "Article",
		Headline:      in.Title,
		Description:   in.Description,
		Image:         image,
		URL:           pageURL,
		DatePublished: in.DatePublished,
		DateModified:  modified,
		Author: Party{
			Type: "Organization",
			Name: author,
			URL:  site.BaseURL,
		},
		Publisher: Party{
			Type: "Organization",
			Name: site.Name,
			Logo: &ImageObject{Type: "ImageObject", URL: site.logoURL()},
		},
		MainEntityOfPage: WebPageRef{Type: "WebPage", ID: pageURL},
	}
}

// NewFAQPage keeps the order of faqs.
func NewFAQPage(faqs []FAQ) FAQPage {
	questions := make([]Question, 0, len(faqs))
	for _, faq := range faqs {
		questions = append(questions, Question{
			Type: "Question",
			Name: faq.Question,
			AcceptedAnswer: Answer{
				Type: "Answer",
				Text: faq.Answer,
			},
		})
	}
	return FAQPage{
		Context:    schemaContext,
		Type:       "FAQPage",
		MainEntity: questions,
	}
}

// NewBreadcrumbList numbers crumbs from 1 and makes their URLs absolute.
func NewBreadcrumbList(site Site, crumbs []Crumb) BreadcrumbList {
	items := make([]ListItem, 0, len(crumbs))
	for i, crumb := range crumbs {
		items = append(items, ListItem{
			Type:     "ListItem",
			Position: i + 1,
			Name:     crumb.Name,
			Item:     site.BaseURL + crumb.URL,
		})
	}
	return BreadcrumbList{
		Context:         schemaContext,
		Type:            "BreadcrumbList",
		ItemListElement: items,
	}
}
