package event

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceCategoryThresholds(t *testing.T) {
	tests := []struct {
		price    float64
		expected PriceCategory
	}{
		{0, PriceFree},
		{0.01, PriceBudget},
		{15, PriceBudget},
		{20, PriceBudget},
		{20.01, PriceModerate},
		{50, PriceModerate},
		{50.01, PricePremium},
		{120, PricePremium},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, PriceCategoryFor(tt.price), "price %v", tt.price)
	}
}

func TestSetPriceRecomputesCategory(t *testing.T) {
	e := Event{Name: "Jazz Night", Category: CategoryMusic}
	e.SetPrice(25)
	assert.Equal(t, PriceModerate, e.PriceCategory)

	e.SetPrice(0)
	assert.Equal(t, PriceFree, e.PriceCategory)

	// Negative prices are clamped, not propagated.
	e.SetPrice(-5)
	assert.Equal(t, float64(0), e.Price)
	assert.Equal(t, PriceFree, e.PriceCategory)
}

func TestBucketOf(t *testing.T) {
	tests := []struct {
		in       string
		expected TimeBucket
	}{
		{"morning", BucketMorning},
		{"Evening", BucketEvening},
		{"08:30", BucketMorning},
		{"12:00", BucketAfternoon},
		{"16:59", BucketAfternoon},
		{"20:00", BucketEvening},
		{"21:00", BucketNight},
		{"02:00", BucketNight},
		{"", BucketTBD},
		{"TBD", BucketTBD},
		{"doors at eight", BucketTBD},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, BucketOf(tt.in), "input %q", tt.in)
	}
}

func TestNormalize(t *testing.T) {
	e := Event{
		Name:            "Food Truck Rally",
		Category:        "Food",
		Description:     strings.Repeat("x", 600),
		Price:           12,
		Interactivity:   "extreme",
		Capacity:        "stadium",
		PersonalityTags: []string{"e", "S", "Q", "F"},
		GroupSizes:      []GroupSize{GroupSolo, "crowd", GroupLarge},
		Status:          "Pending",
	}
	require.NoError(t, e.Normalize())

	assert.Equal(t, CategoryFood, e.Category)
	assert.Len(t, e.Description, MaxDescriptionLen)
	assert.Equal(t, PriceBudget, e.PriceCategory)
	assert.Equal(t, InteractivityMedium, e.Interactivity)
	assert.Equal(t, CapacityMedium, e.Capacity)
	assert.Equal(t, []string{"E", "S", "F"}, e.PersonalityTags)
	assert.Equal(t, []GroupSize{GroupSolo, GroupLarge}, e.GroupSizes)
	assert.Equal(t, StatusPending, e.Status)
}

func TestNormalizeTruncatesOnRuneBoundary(t *testing.T) {
	// "é" is two bytes; positioned so the cap lands mid-rune.
	e := Event{
		Name:        "Bake Sale",
		Category:    CategoryFood,
		Description: strings.Repeat("x", MaxDescriptionLen-1) + "éclair party",
	}
	require.NoError(t, e.Normalize())

	assert.True(t, utf8.ValidString(e.Description))
	assert.LessOrEqual(t, len(e.Description), MaxDescriptionLen)
	assert.True(t, strings.HasSuffix(e.Description, "x"), "the split rune is dropped entirely")

	e = Event{
		Name:        "Trivia Night",
		Category:    CategoryCommunity,
		Description: strings.Repeat("🎉", MaxDescriptionLen),
	}
	require.NoError(t, e.Normalize())
	assert.True(t, utf8.ValidString(e.Description))
	assert.LessOrEqual(t, len(e.Description), MaxDescriptionLen)
}

func TestNormalizeRejectsUnknownEnums(t *testing.T) {
	e := Event{Name: "Mystery", Category: "paranormal"}
	assert.Error(t, e.Normalize())

	e = Event{Name: "Mystery", Category: CategoryArts, Status: "vanished"}
	assert.Error(t, e.Normalize())

	e = Event{Category: CategoryArts}
	assert.Error(t, e.Normalize(), "missing name")
}

func TestIsUpcomingWithin(t *testing.T) {
	now := time.Date(2025, 10, 1, 15, 0, 0, 0, time.UTC)

	e := Event{Date: "2025-10-05"}
	assert.True(t, e.IsUpcomingWithin(now, 0, 7))
	assert.False(t, e.IsUpcomingWithin(now, 8, 30))

	e.Date = "2025-10-20"
	assert.False(t, e.IsUpcomingWithin(now, 0, 7))
	assert.True(t, e.IsUpcomingWithin(now, 8, 30))

	// Malformed dates never count as upcoming.
	e.Date = "next Tuesday"
	assert.False(t, e.IsUpcomingWithin(now, 0, 7))

	e.Date = ""
	assert.False(t, e.IsUpcomingWithin(now, 0, 365))
}

func TestProfileValidate(t *testing.T) {
	p := UserProfile{PersonalityTraits: []string{"E", "S", "T", "J"}}
	require.NoError(t, p.Validate())

	p.PersonalityTraits = []string{"E", "I", "T", "J"} // both of a pair
	assert.Error(t, p.Validate())

	p.PersonalityTraits = []string{"E", "S", "T"}
	assert.Error(t, p.Validate())
}

func TestReviewValidate(t *testing.T) {
	r := Review{EventID: "42", Rating: 4, Text: "really great show, would go again"}
	require.NoError(t, r.Validate())

	r.Rating = 0
	assert.Error(t, r.Validate())

	r.Rating = 6
	assert.Error(t, r.Validate())

	r = Review{EventID: "42", Rating: 3, Text: "  short  "}
	assert.Error(t, r.Validate())

	r = Review{Rating: 3, Text: "long enough review text"}
	assert.Error(t, r.Validate())
}
