package extractor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localpulse/localpulse/pkg/event"
)

var extractionTime = time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

func testExtractor() *Extractor {
	return NewAt(func() time.Time { return extractionTime })
}

func musicRequest() Request {
	return Request{
		VenueName: "The Mill",
		Category:  event.CategoryMusic,
		SourceURL: "https://themill.example.com/events/",
	}
}

func TestStructuredDataExtraction(t *testing.T) {
	html := `<html><head>
	<script type="application/ld+json">
	{
		"@type": "Event",
		"name": "Jazz Night",
		"description": "An evening of straight-ahead jazz.",
		"startDate": "2025-11-15T20:00",
		"offers": {"price": "25"},
		"url": "https://themill.example.com/jazz-night"
	}
	</script>
	</head><body></body></html>`

	drafts, err := testExtractor().Extract(html, musicRequest())
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	d := drafts[0]
	assert.Equal(t, "Jazz Night", d.Name)
	assert.Equal(t, "2025-11-15", d.Date)
	assert.Equal(t, "20:00", d.Time)
	assert.Equal(t, float64(25), d.Price)
	assert.Equal(t, event.PriceModerate, d.PriceCategory)
	assert.Equal(t, event.StatusPending, d.Status)
	assert.True(t, d.UserSubmitted)
	assert.Equal(t, extractionTime, d.SubmittedAt)
	assert.Equal(t, "https://themill.example.com/jazz-night", d.ExternalLink)
	assert.Equal(t, "🎵", d.Image)
	assert.Equal(t, []string{"E", "S", "F", "P"}, d.PersonalityTags)
	assert.NotEmpty(t, d.Vibes)
}

func TestStructuredDataArrayAndCompoundTypes(t *testing.T) {
	html := `<script type="application/ld+json">
	[
		{"@type": ["Thing", "MusicEvent"], "name": "Opening Act", "startDate": "2025-11-01T19:00"},
		{"@type": "Event", "name": "Headliner", "startDate": "2025-11-01T21:30"},
		{"@type": "Place", "name": "Not An Event"}
	]
	</script>`

	drafts, err := testExtractor().Extract(html, musicRequest())
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, "Opening Act", drafts[0].Name)
	assert.Equal(t, "Headliner", drafts[1].Name)
}

func TestMalformedStructuredDataIsSkipped(t *testing.T) {
	html := `
	<script type="application/ld+json">{not valid json</script>
	<script type="application/ld+json">
	{"@type": "Event", "name": "Survivor Set", "startDate": "2025-12-01T18:00"}
	</script>`

	drafts, err := testExtractor().Extract(html, musicRequest())
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Survivor Set", drafts[0].Name)
}

func TestStructuredDataDefaults(t *testing.T) {
	html := `<script type="application/ld+json">
	{"@type": "Event", "name": "Date Night Social"}
	</script>`

	drafts, err := testExtractor().Extract(html, musicRequest())
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	d := drafts[0]
	assert.Equal(t, "2025-10-01", d.Date, "missing startDate defaults to the extraction date")
	assert.Equal(t, "evening", d.Time)
	assert.Equal(t, float64(0), d.Price)
	assert.Equal(t, event.PriceFree, d.PriceCategory)
	assert.Equal(t, "https://themill.example.com/events/", d.ExternalLink)
	assert.Equal(t, "The Mill", d.Location, "location falls back to the venue name")
}

func TestStructuredDataClockVariants(t *testing.T) {
	tests := []struct {
		startDate string
		date      string
		clock     string
	}{
		{"2025-11-15T8:00", "2025-11-15", "08:00"},
		{"2025-11-15T19:30:00", "2025-11-15", "19:30"},
		{"2025-11-15T19:30:00-05:00", "2025-11-15", "19:30"},
		{"2025-11-15T20:00Z", "2025-11-15", "20:00"},
		{"2025-11-15Tlater", "2025-11-15", "evening"},
		{"2025-11-15", "2025-11-15", "evening"},
	}
	for _, tt := range tests {
		date, clock := testExtractor().splitStartDate(tt.startDate)
		assert.Equal(t, tt.date, date, "startDate %q", tt.startDate)
		assert.Equal(t, tt.clock, clock, "startDate %q", tt.startDate)
	}
}

func TestStructuredDataNestedAddress(t *testing.T) {
	html := `<script type="application/ld+json">
	{
		"@type": "Event",
		"name": "Gallery Opening",
		"startDate": "2025-11-20T18:00",
		"location": {
			"name": "Annex Gallery",
			"address": {"streetAddress": "29 S Orange Ave", "addressLocality": "Orlando", "addressRegion": "FL"}
		}
	}
	</script>`

	drafts, err := testExtractor().Extract(html, Request{
		VenueName: "Downtown Arts District",
		Category:  event.CategoryArts,
		SourceURL: "https://arts.example.com/",
	})
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "29 S Orange Ave, Orlando, FL", drafts[0].Location)
	assert.Equal(t, "Annex Gallery", drafts[0].VenueName)
}

func TestStructuredDataOffersList(t *testing.T) {
	html := `<script type="application/ld+json">
	{
		"@type": "Event",
		"name": "Two Tier Show",
		"startDate": "2025-11-02T20:00",
		"offers": [{"price": "18"}, {"price": "55"}]
	}
	</script>`

	drafts, err := testExtractor().Extract(html, musicRequest())
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, float64(18), drafts[0].Price, "first offer wins")
	assert.Equal(t, event.PriceBudget, drafts[0].PriceCategory)
}

func TestPatternFallbackContainers(t *testing.T) {
	html := `<html><body>
	<div class="event-item">
		<h3 class="event-title">Punk Rock Flea Market</h3>
		<p class="event-description">Vendors, bands and cheap amps.</p>
		<time datetime="2025-11-22">Nov 22</time>
		<span class="event-price">$5</span>
		<a href="/events/flea-market">Details</a>
	</div>
	<div class="event-item">
		<h3 class="event-title">Acoustic Sunday</h3>
		<time>November 23, 2025</time>
		<span class="price">Free</span>
	</div>
	</body></html>`

	drafts, err := testExtractor().Extract(html, musicRequest())
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	first := drafts[0]
	assert.Equal(t, "Punk Rock Flea Market", first.Name)
	assert.Equal(t, "2025-11-22", first.Date)
	assert.Equal(t, float64(5), first.Price)
	assert.Equal(t, "https://themill.example.com/events/flea-market", first.ExternalLink, "relative hrefs resolve against the source URL")
	assert.Contains(t, first.Vibes, "edgy", "punk in the text enriches the vibes")

	second := drafts[1]
	assert.Equal(t, "2025-11-23", second.Date)
	assert.Equal(t, float64(0), second.Price)
	assert.Equal(t, event.PriceFree, second.PriceCategory)
	assert.Equal(t, "https://themill.example.com/events/", second.ExternalLink)
}

func TestHeadingFallback(t *testing.T) {
	html := `<html><body>
	<p>Upcoming this month:</p>
	<h3>Trivia Tuesday</h3>
	<h3>Vinyl Swap</h3>
	<h3>Closing Party</h3>
	</body></html>`

	drafts, err := testExtractor().Extract(html, musicRequest())
	require.NoError(t, err)
	require.Len(t, drafts, 3)
	assert.Equal(t, "Trivia Tuesday", drafts[0].Name)
	for _, d := range drafts {
		assert.Equal(t, "2025-10-01", d.Date, "heading drafts default to the extraction date")
		assert.Equal(t, event.StatusPending, d.Status)
	}
}

func TestStructuredDataWinsOverPatterns(t *testing.T) {
	html := `
	<script type="application/ld+json">
	{"@type": "Event", "name": "Real Listing", "startDate": "2025-11-05T19:00"}
	</script>
	<div class="event-item"><h3>Decoy Listing</h3></div>`

	drafts, err := testExtractor().Extract(html, musicRequest())
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Real Listing", drafts[0].Name, "strategies never merge")
}

func TestEmptyPageIsNotAnError(t *testing.T) {
	drafts, err := testExtractor().Extract("<html><body><p>Closed for the season.</p></body></html>", musicRequest())
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestCategoryInference(t *testing.T) {
	tests := []struct {
		text     string
		expected event.Category
	}{
		{"Live jazz concert downtown", event.CategoryMusic},
		{"Wine tasting and brunch", event.CategoryFood},
		{"Gallery exhibit opening", event.CategoryArts},
		{"5k race through the park", event.CategorySports},
		{"Guided nature trail walk", event.CategoryOutdoor},
		{"Intro pottery workshop", event.CategoryEducation},
		{"Annual block gathering", event.CategoryCommunity},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, InferCategory(tt.text), "text %q", tt.text)
	}
}

func TestCategoryInferredWhenRequestOmitsIt(t *testing.T) {
	html := `<script type="application/ld+json">
	{"@type": "Event", "name": "Watercolor Workshop", "startDate": "2025-11-09T10:00"}
	</script>`

	drafts, err := testExtractor().Extract(html, Request{VenueName: "Community Hall", SourceURL: "https://hall.example.com/"})
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, event.CategoryEducation, drafts[0].Category)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in       string
		expected float64
	}{
		{"$25", 25},
		{"$12.50", 12.5},
		{"Tickets from 30", 30},
		{"Free admission", 0},
		{"No charge", 0},
		{"TBA", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, parsePrice(tt.in), "input %q", tt.in)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in       string
		expected string
		ok       bool
	}{
		{"2025-11-15", "2025-11-15", true},
		{"Doors open 11/5/2025 at 8", "2025-11-05", true},
		{"January 15, 2026", "2026-01-15", true},
		{"Jan 15, 2026", "2026-01-15", true},
		{"next Friday", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := parseDate(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.expected, got, "input %q", tt.in)
	}
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"plain text", "plain text"},
		{"  spaced   out  ", "spaced out"},
		{"<p>Doors at <strong>8pm</strong></p>", "Doors at 8pm"},
		{"line<br>break", "line break"},
		{"<script>alert(1)</script>Visible", "Visible"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, stripMarkup(tt.in), "input %q", tt.in)
	}
}
