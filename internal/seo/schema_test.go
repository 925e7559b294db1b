package seo

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unwrapJSONLD strips the script tag and parses the embedded JSON.
func unwrapJSONLD(t *testing.T, fragment string) map[string]any {
	t.Helper()
	require.True(t, strings.HasPrefix(fragment, `<script type="application/ld+json">`))
	require.True(t, strings.HasSuffix(fragment, `</script>`))

	payload := strings.TrimPrefix(fragment, `<script type="application/ld+json">`)
	payload = strings.TrimSuffix(payload, `</script>`)

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(payload), &m))
	return m
}

func TestLocalBusinessSchema(t *testing.T) {
	lat, lon := 30.2672, -97.7431
	got := unwrapJSONLD(t, LocalBusinessSchema(LocalBusinessParams{
		Name:        "Austin Dumpster Rental",
		Description: "Fast local dumpster rental.",
		City:        "Austin",
		Region:      "TX",
		Country:     "US",
		Latitude:    &lat,
		Longitude:   &lon,
		URL:         "https://example.com/austin-tx",
		AreaServed:  []string{"Austin"},
	}))

	assert.Equal(t, "https://schema.org", got["@context"])
	assert.Equal(t, "LocalBusiness", got["@type"])
	assert.Equal(t, "Austin Dumpster Rental", got["name"])

	addr := got["address"].(map[string]any)
	assert.Equal(t, "PostalAddress", addr["@type"])
	assert.Equal(t, "Austin", addr["addressLocality"])
	assert.Equal(t, "TX", addr["addressRegion"])

	geo := got["geo"].(map[string]any)
	assert.InDelta(t, 30.2672, geo["latitude"].(float64), 0.0001)

	areas := got["areaServed"].([]any)
	require.Len(t, areas, 1)
	assert.Equal(t, "Austin", areas[0].(map[string]any)["name"])
}

func TestLocalBusinessSchemaOmitsMissingGeo(t *testing.T) {
	got := unwrapJSONLD(t, LocalBusinessSchema(LocalBusinessParams{
		Name:   "Test",
		City:   "Austin",
		Region: "TX",
	}))
	_, hasGeo := got["geo"]
	assert.False(t, hasGeo)
}

func TestFAQSchema(t *testing.T) {
	got := unwrapJSONLD(t, FAQSchema([]FAQItem{
		{Question: "How much does it cost?", Answer: "It depends on size."},
		{Question: "Do I need a permit?", Answer: "Only for street placement."},
	}))

	assert.Equal(t, "FAQPage", got["@type"])
	entities := got["mainEntity"].([]any)
	require.Len(t, entities, 2)

	first := entities[0].(map[string]any)
	assert.Equal(t, "Question", first["@type"])
	assert.Equal(t, "How much does it cost?", first["name"])
	answer := first["acceptedAnswer"].(map[string]any)
	assert.Equal(t, "It depends on size.", answer["text"])
}

func TestBreadcrumbSchemaPositionsAreOneBased(t *testing.T) {
	got := unwrapJSONLD(t, BreadcrumbSchema([]BreadcrumbItem{
		{Name: "Home", URL: "https://example.com"},
		{Name: "Austin", URL: "https://example.com/austin-tx"},
	}))

	items := got["itemListElement"].([]any)
	require.Len(t, items, 2)
	assert.EqualValues(t, 1, items[0].(map[string]any)["position"])
	assert.EqualValues(t, 2, items[1].(map[string]any)["position"])
}

func TestOrganizationSchema(t *testing.T) {
	got := unwrapJSONLD(t, OrganizationSchema(OrganizationParams{
		Name: "Sells Group",
		URL:  "https://example.com",
	}))
	assert.Equal(t, "Organization", got["@type"])
	assert.Equal(t, "Sells Group", got["name"])
	_, hasLogo := got["logo"]
	assert.False(t, hasLogo)
}
