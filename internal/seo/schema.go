package seo

import (
	"encoding/json"
	"fmt"
)

// PostalAddress is the schema.org address block of a LocalBusiness.
type PostalAddress struct {
	Type            string `json:"@type"`
	StreetAddress   string `json:"streetAddress"`
	AddressLocality string `json:"addressLocality"`
	AddressRegion   string `json:"addressRegion"`
	PostalCode      string `json:"postalCode"`
	AddressCountry  string `json:"addressCountry"`
}

// GeoCoordinates pins a LocalBusiness to a point.
type GeoCoordinates struct {
	Type      string  `json:"@type"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocalBusinessParams describes a local-business schema fragment. Optional
// fields are omitted from the output, never emitted as null.
type LocalBusinessParams struct {
	Name        string
	Description string
	Street      string
	City        string
	Region      string
	PostalCode  string
	Country     string
	Latitude    *float64
	Longitude   *float64
	Telephone   string
	URL         string
	PriceRange  string
	AreaServed  []string
}

type localBusinessSchema struct {
	Context     string          `json:"@context"`
	Type        string          `json:"@type"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Address     PostalAddress   `json:"address"`
	URL         string          `json:"url"`
	Telephone   string          `json:"telephone,omitempty"`
	PriceRange  string          `json:"priceRange,omitempty"`
	Geo         *GeoCoordinates `json:"geo,omitempty"`
	AreaServed  []areaCity      `json:"areaServed,omitempty"`
}

type areaCity struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// LocalBusinessSchema renders a schema.org LocalBusiness JSON-LD fragment.
func LocalBusinessSchema(p LocalBusinessParams) string {
	s := localBusinessSchema{
		Context:     "https://schema.org",
		Type:        "LocalBusiness",
		Name:        p.Name,
		Description: p.Description,
		Address: PostalAddress{
			Type:            "PostalAddress",
			StreetAddress:   p.Street,
			AddressLocality: p.City,
			AddressRegion:   p.Region,
			PostalCode:      p.PostalCode,
			AddressCountry:  p.Country,
		},
		URL:        p.URL,
		Telephone:  p.Telephone,
		PriceRange: p.PriceRange,
	}
	if p.Latitude != nil && p.Longitude != nil {
		s.Geo = &GeoCoordinates{Type: "GeoCoordinates", Latitude: *p.Latitude, Longitude: *p.Longitude}
	}
	for _, area := range p.AreaServed {
		s.AreaServed = append(s.AreaServed, areaCity{Type: "City", Name: area})
	}
	return renderJSONLD(s)
}

// FAQItem is one question/answer pair of a FAQPage fragment.
type FAQItem struct {
	Question string
	Answer   string
}

type faqSchema struct {
	Context    string        `json:"@context"`
	Type       string        `json:"@type"`
	MainEntity []faqQuestion `json:"mainEntity"`
}

type faqQuestion struct {
	Type           string    `json:"@type"`
	Name           string    `json:"name"`
	AcceptedAnswer faqAnswer `json:"acceptedAnswer"`
}

type faqAnswer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

// FAQSchema renders a schema.org FAQPage JSON-LD fragment.
func FAQSchema(items []FAQItem) string {
	s := faqSchema{
		Context:    "https://schema.org",
		Type:       "FAQPage",
		MainEntity: make([]faqQuestion, 0, len(items)),
	}
	for _, it := range items {
		s.MainEntity = append(s.MainEntity, faqQuestion{
			Type: "Question",
			Name: it.Question,
			AcceptedAnswer: faqAnswer{
				Type: "Answer",
				Text: it.Answer,
			},
		})
	}
	return renderJSONLD(s)
}

// BreadcrumbItem is one entry of a BreadcrumbList fragment.
type BreadcrumbItem struct {
	Name string
	URL  string
}

type breadcrumbSchema struct {
	Context         string           `json:"@context"`
	Type            string           `json:"@type"`
	ItemListElement []breadcrumbElem `json:"itemListElement"`
}

type breadcrumbElem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

// BreadcrumbSchema renders a schema.org BreadcrumbList JSON-LD fragment.
// Positions are 1-based in input order.
func BreadcrumbSchema(items []BreadcrumbItem) string {
	s := breadcrumbSchema{
		Context:         "https://schema.org",
		Type:            "BreadcrumbList",
		ItemListElement: make([]breadcrumbElem, 0, len(items)),
	}
	for i, it := range items {
		s.ItemListElement = append(s.ItemListElement, breadcrumbElem{
			Type:     "ListItem",
			Position: i + 1,
			Name:     it.Name,
			Item:     it.URL,
		})
	}
	return renderJSONLD(s)
}

// OrganizationParams describes an Organization schema fragment.
type OrganizationParams struct {
	Name      string
	URL       string
	Logo      string
	SameAs    []string
	Telephone string
	Email     string
}

type organizationSchema struct {
	Context   string   `json:"@context"`
	Type      string   `json:"@type"`
	Name      string   `json:"name"`
	URL       string   `json:"url"`
	Logo      string   `json:"logo,omitempty"`
	SameAs    []string `json:"sameAs,omitempty"`
	Telephone string   `json:"telephone,omitempty"`
	Email     string   `json:"email,omitempty"`
}

// OrganizationSchema renders a schema.org Organization JSON-LD fragment.
func OrganizationSchema(p OrganizationParams) string {
	return renderJSONLD(organizationSchema{
		Context:   "https://schema.org",
		Type:      "Organization",
		Name:      p.Name,
		URL:       p.URL,
		Logo:      p.Logo,
		SameAs:    p.SameAs,
		Telephone: p.Telephone,
		Email:     p.Email,
	})
}

// renderJSONLD marshals v and wraps it in the script tag search engines
// expect. The schema types above cannot fail to marshal.
func renderJSONLD(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return fmt.Sprintf(`<script type="application/ld+json">%s</script>`, data)
}
