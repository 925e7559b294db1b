package seo

import (
	"fmt"
	"strings"

	"github.com/sells-group/localpages/internal/model"
)

// topic-specific meta description templates keyed by lowercased topic.
var topicMetaTemplates = map[string]string{
	"residential":  "Residential %s %s, %s. Perfect for home cleanouts, renovations & yard waste. Easy booking, fast delivery. Call now!",
	"commercial":   "Commercial %s services %s, %s. Reliable waste management for businesses. Multiple sizes, flexible scheduling. Free quote!",
	"construction": "Construction %s %s, %s. Heavy-duty containers for job sites. Quick delivery, competitive rates. Order today!",
	"roofing":      "Roofing %s %s, %s. Specialized containers for shingle disposal. Fast service, transparent pricing. Get started!",
}

// MetaDescription produces the default meta description for a page. Topic
// pages with a known topic get topic-specific copy; everything else falls
// back to the main city template.
func MetaDescription(service, city, state string, pageType model.PageType, topic string) string {
	if pageType == model.PageTypeTopic && topic != "" {
		if tpl, ok := topicMetaTemplates[strings.ToLower(topic)]; ok {
			return fmt.Sprintf(tpl, service, city, state)
		}
	}
	return fmt.Sprintf("Professional %s in %s, %s. Same-day delivery, competitive pricing, all sizes available. Get your free quote today!", service, city, state)
}

// OpenGraphParams describes an Open Graph / Twitter card tag block.
type OpenGraphParams struct {
	Title       string
	Description string
	URL         string
	Image       string
	Type        string
}

// OpenGraphTags renders the Open Graph and Twitter card meta tags for a
// page head.
func OpenGraphTags(p OpenGraphParams) string {
	ogType := p.Type
	if ogType == "" {
		ogType = "website"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<meta property=%q content=%q />\n", "og:title", p.Title)
	fmt.Fprintf(&b, "<meta property=%q content=%q />\n", "og:description", p.Description)
	fmt.Fprintf(&b, "<meta property=%q content=%q />\n", "og:url", p.URL)
	fmt.Fprintf(&b, "<meta property=%q content=%q />\n", "og:type", ogType)
	if p.Image != "" {
		fmt.Fprintf(&b, "<meta property=%q content=%q />\n", "og:image", p.Image)
	}
	fmt.Fprintf(&b, "<meta name=%q content=%q />\n", "twitter:card", "summary_large_image")
	fmt.Fprintf(&b, "<meta name=%q content=%q />\n", "twitter:title", p.Title)
	fmt.Fprintf(&b, "<meta name=%q content=%q />", "twitter:description", p.Description)
	if p.Image != "" {
		fmt.Fprintf(&b, "\n<meta name=%q content=%q />", "twitter:image", p.Image)
	}
	return b.String()
}

// CanonicalTag renders the canonical link tag for a URL.
func CanonicalTag(url string) string {
	return fmt.Sprintf(`<link rel="canonical" href=%q />`, url)
}

// ExpandKeywords produces the base and semantic keyword set for a city,
// capped at limit. Used to seed keyword tracking for new locations.
func ExpandKeywords(service, city, state string, limit int) []string {
	base := []string{
		fmt.Sprintf("%s %s", service, city),
		fmt.Sprintf("%s %s", city, service),
		fmt.Sprintf("%s %s %s", service, city, state),
		fmt.Sprintf("roll off %s %s", service, city),
		fmt.Sprintf("waste management %s", city),
	}

	semantic := []string{
		"rent a dumpster",
		"waste container",
		"trash removal",
		"junk removal",
		"debris removal",
		"construction waste",
		"residential dumpster",
		"commercial dumpster",
		"dumpster sizes",
		"dumpster prices",
	}

	all := base
	for _, kw := range semantic {
		all = append(all, fmt.Sprintf("%s %s", kw, city))
	}

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}
