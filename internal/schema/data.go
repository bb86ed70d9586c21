package schema

const schemaContext = "https://schema.org"

// BreadcrumbKey is the secondary slot breadcrumbs are written to.
const BreadcrumbKey = "breadcrumb"

// Site carries the values every builder needs.
type Site struct {
	Name         string
	BaseURL      string
	DefaultImage string
	LogoPath     string
}

func (s Site) logoURL() string {
	return s.BaseURL + s.LogoPath
}

type ImageObject struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

type Reference struct {
	ID string `json:"@id"`
}

type ContactPoint struct {
	Type        string `json:"@type"`
	Email       string `json:"email"`
	ContactType string `json:"contactType"`
}

type Offer struct {
	Type          string `json:"@type"`
	Price         string `json:"price"`
	PriceCurrency string `json:"priceCurrency"`
	Description   string `json:"description"`
}

type OrganizationNode struct {
	Type         string       `json:"@type"`
	ID           string       `json:"@id"`
	Name         string       `json:"name"`
	URL          string       `json:"url"`
	Logo         ImageObject  `json:"logo"`
	Description  string       `json:"description"`
	SameAs       []string     `json:"sameAs"`
	ContactPoint ContactPoint `json:"contactPoint"`
}

type SoftwareApplicationNode struct {
	Type                string    `json:"@type"`
	Name                string    `json:"name"`
	OperatingSystem     string    `json:"operatingSystem"`
	ApplicationCategory string    `json:"applicationCategory"`
	Description         string    `json:"description"`
	Offers              Offer     `json:"offers"`
	Publisher           Reference `json:"publisher"`
}

type WebSiteNode struct {
	Type      string    `json:"@type"`
	ID        string    `json:"@id"`
	URL       string    `json:"url"`
	Name      string    `json:"name"`
	Publisher Reference `json:"publisher"`
}

// Graph is the Organization + SoftwareApplication + WebSite document.
type Graph struct {
	Context string `json:"@context"`
	Graph   []any  `json:"@graph"`
}

type Party struct {
	Type string       `json:"@type"`
	Name string       `json:"name"`
	URL  string       `json:"url,omitempty"`
	Logo *ImageObject `json:"logo,omitempty"`
}

type WebPageRef struct {
	Type string `json:"@type"`
	ID   string `json:"@id"`
}

type Article struct {
	Context          string     `json:"@context"`
	Type             string     `json:"@type"`
	Headline         string     `json:"headline"`
	Description      string     `json:"description"`
	Image            string     `json:"image"`
	URL              string     `json:"url"`
	DatePublished    string     `json:"datePublished,omitempty"`
	DateModified     string     `json:"dateModified,omitempty"`
	Author           Party      `json:"author"`
	Publisher        Party      `json:"publisher"`
	MainEntityOfPage WebPageRef `json:"mainEntityOfPage"`
}

type Answer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

type Question struct {
	Type           string `json:"@type"`
	Name           string `json:"name"`
	AcceptedAnswer Answer `json:"acceptedAnswer"`
}

type FAQPage struct {
	Context    string     `json:"@context"`
	Type       string     `json:"@type"`
	MainEntity []Question `json:"mainEntity"`
}

type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

type BreadcrumbList struct {
	Context         string     `json:"@context"`
	Type            string     `json:"@type"`
	ItemListElement []ListItem `json:"itemListElement"`
}

// Builder inputs

// OrganizationProfile describes the company and its app.
type OrganizationProfile struct {
	Description    string
	Email          string
	SameAs         []string
	AppName        string
	AppOS          string
	AppCategory    string
	AppDescription string
	OfferPrice     string
	OfferCurrency  string
	OfferNote      string
}

// ArticleInput describes one blog post. URL is site-relative.
type ArticleInput struct {
	Title         string
	Description   string
	URL           string
	Image         string
	DatePublished string
	DateModified  string
	Author        string
}

type FAQ struct {
	Question string
	Answer   string
}

// Crumb is one breadcrumb step. URL is site-relative.
type Crumb struct {
	Name string
	URL  string
}
