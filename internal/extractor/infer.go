package extractor

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/localpulse/localpulse/pkg/event"
)

// Field inference: fixed lookup tables keyed by category, applied to
// every draft regardless of which extraction strategy produced it.

var categoryIcons = map[event.Category]string{
	event.CategoryMusic:     "🎵",
	event.CategoryFood:      "🍔",
	event.CategorySports:    "⚽",
	event.CategoryArts:      "🎨",
	event.CategoryOutdoor:   "🌳",
	event.CategoryEducation: "📚",
	event.CategoryCommunity: "🤝",
}

const defaultIcon = "🎉"

var categoryTraits = map[event.Category][]string{
	event.CategoryMusic:     {"E", "S", "F", "P"},
	event.CategoryFood:      {"I", "S", "F", "P"},
	event.CategorySports:    {"E", "S", "T", "P"},
	event.CategoryArts:      {"I", "N", "F", "J"},
	event.CategoryOutdoor:   {"I", "N", "F", "P"},
	event.CategoryEducation: {"I", "N", "T", "J"},
	event.CategoryCommunity: {"I", "N", "F", "P"},
}

var defaultTraits = []string{"E", "S", "F", "P"}

var categoryVibes = map[event.Category][]string{
	event.CategoryMusic:     {"energetic", "social"},
	event.CategoryArts:      {"cultural", "relaxed"},
	event.CategoryFood:      {"casual", "social"},
	event.CategorySports:    {"energetic", "competitive"},
	event.CategoryOutdoor:   {"adventurous", "relaxed"},
	event.CategoryEducation: {"educational", "intellectual"},
	event.CategoryCommunity: {"social", "meaningful"},
}

var defaultVibes = []string{"casual"}

// descriptionVibes enriches the vibe set from keywords found in the
// event's own text.
var descriptionVibes = []struct {
	keywords []string
	vibe     string
}{
	{[]string{"indie", "alternative", "punk"}, "edgy"},
	{[]string{"romantic", "date night"}, "romantic"},
	{[]string{"party", "dance", "club"}, "party"},
}

var categoryInteractivity = map[event.Category]event.Interactivity{
	event.CategorySports:    event.InteractivityHigh,
	event.CategoryEducation: event.InteractivityHigh,
	event.CategoryCommunity: event.InteractivityHigh,
	event.CategoryArts:      event.InteractivityLow,
	event.CategoryMusic:     event.InteractivityLow,
}

var categoryDurations = map[event.Category]string{
	event.CategoryMusic:     "2-3 hours",
	event.CategoryArts:      "1-2 hours",
	event.CategoryFood:      "1-2 hours",
	event.CategorySports:    "2-3 hours",
	event.CategoryOutdoor:   "2-4 hours",
	event.CategoryEducation: "1-2 hours",
	event.CategoryCommunity: "2-3 hours",
}

// categoryKeywords drives category inference when the caller supplies
// none.
var categoryKeywords = []struct {
	category event.Category
	words    []string
}{
	{event.CategoryMusic, []string{"concert", "music", "band", "dj", "jazz", "rock"}},
	{event.CategoryFood, []string{"food", "restaurant", "dining", "tasting", "brunch"}},
	{event.CategoryArts, []string{"art", "gallery", "exhibit", "museum", "theater", "play"}},
	{event.CategorySports, []string{"sports", "game", "match", "race", "tournament"}},
	{event.CategoryOutdoor, []string{"outdoor", "park", "hike", "nature", "trail"}},
	{event.CategoryEducation, []string{"workshop", "class", "seminar", "education", "learning"}},
}

// InferCategory guesses a category from free text, defaulting to
// community.
func InferCategory(text string) event.Category {
	lower := strings.ToLower(text)
	for _, ck := range categoryKeywords {
		for _, w := range ck.words {
			if strings.Contains(lower, w) {
				return ck.category
			}
		}
	}
	return event.CategoryCommunity
}

// inferFields fills in the display and affinity attributes a scraped
// page cannot provide.
func inferFields(e *event.Event) {
	e.Image = categoryIcons[e.Category]
	if e.Image == "" {
		e.Image = defaultIcon
	}

	e.PersonalityTags = categoryTraits[e.Category]
	if e.PersonalityTags == nil {
		e.PersonalityTags = defaultTraits
	}

	vibes := append([]string(nil), categoryVibes[e.Category]...)
	if len(vibes) == 0 {
		vibes = append(vibes, defaultVibes...)
	}
	text := strings.ToLower(e.Name + " " + e.Description)
	for _, dv := range descriptionVibes {
		for _, kw := range dv.keywords {
			if strings.Contains(text, kw) {
				vibes = append(vibes, dv.vibe)
				break
			}
		}
	}
	switch e.PriceCategory {
	case event.PriceFree:
		vibes = append(vibes, "accessible")
	case event.PricePremium:
		vibes = append(vibes, "upscale")
	}
	e.Vibes = dedupeLimit(vibes, 3)

	if e.Interactivity == "" {
		if i, ok := categoryInteractivity[e.Category]; ok {
			e.Interactivity = i
		} else {
			e.Interactivity = event.InteractivityMedium
		}
	}
	if e.Capacity == "" {
		e.Capacity = event.CapacityMedium
	}
	if e.Venue == "" {
		e.Venue = event.VenueIndoor
	}
	if e.Duration == "" {
		e.Duration = categoryDurations[e.Category]
		if e.Duration == "" {
			e.Duration = "2-3 hours"
		}
	}
	if e.GroupSizes == nil {
		e.GroupSizes = inferGroupSizes(e)
	}
}

func inferGroupSizes(e *event.Event) []event.GroupSize {
	sizes := []event.GroupSize{event.GroupSolo}
	switch e.Category {
	case event.CategoryFood, event.CategoryArts, event.CategoryOutdoor:
		sizes = append(sizes, event.GroupCouple)
	}
	switch e.Category {
	case event.CategoryMusic, event.CategorySports, event.CategoryCommunity:
		sizes = append(sizes, event.GroupSmall)
	}
	if e.Capacity == event.CapacityLarge {
		sizes = append(sizes, event.GroupLarge)
	}
	return sizes
}

func dedupeLimit(values []string, limit int) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, limit)
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}

var (
	freePattern  = regexp.MustCompile(`(?i)\b(free|no charge|complimentary)\b`)
	pricePattern = regexp.MustCompile(`\$?\s*(\d+(?:\.\d{2})?)`)
)

// parsePrice extracts a numeric price from arbitrary text, defaulting
// to 0 when nothing numeric is found.
func parsePrice(text string) float64 {
	if text == "" || freePattern.MatchString(text) {
		return 0
	}
	m := pricePattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	price, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return price
}

var (
	isoDatePattern   = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	slashDatePattern = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`)
	wordDatePattern  = regexp.MustCompile(`[A-Za-z]+\.?\s+\d{1,2},?\s+\d{4}`)
)

// parseDate pulls the first recognizable calendar date out of text and
// normalizes it to YYYY-MM-DD. The bool reports success.
func parseDate(text string) (string, bool) {
	if m := isoDatePattern.FindString(text); m != "" {
		if _, err := time.Parse(event.DateLayout, m); err == nil {
			return m, true
		}
	}
	if m := slashDatePattern.FindString(text); m != "" {
		if d, err := time.Parse("1/2/2006", m); err == nil {
			return d.Format(event.DateLayout), true
		}
	}
	if m := wordDatePattern.FindString(text); m != "" {
		cleaned := strings.NewReplacer(",", "", ".", "").Replace(m)
		for _, layout := range []string{"January 2 2006", "Jan 2 2006"} {
			if d, err := time.Parse(layout, cleaned); err == nil {
				return d.Format(event.DateLayout), true
			}
		}
	}
	return "", false
}
