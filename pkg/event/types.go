// Package event defines the normalized event record shared by the
// extraction, scoring and moderation pipelines.
package event

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Category classifies an event into one of the fixed app categories.
type Category string

const (
	CategoryMusic     Category = "music"
	CategoryFood      Category = "food"
	CategorySports    Category = "sports"
	CategoryArts      Category = "arts"
	CategoryOutdoor   Category = "outdoor"
	CategoryEducation Category = "education"
	CategoryCommunity Category = "community"
)

// Categories lists every valid category.
var Categories = []Category{
	CategoryMusic, CategoryFood, CategorySports, CategoryArts,
	CategoryOutdoor, CategoryEducation, CategoryCommunity,
}

// ParseCategory coerces a raw string to a Category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// PriceCategory is the tier derived from the numeric price.
type PriceCategory string

const (
	PriceFree     PriceCategory = "free"
	PriceBudget   PriceCategory = "budget"
	PriceModerate PriceCategory = "moderate"
	PricePremium  PriceCategory = "premium"
)

// PriceCategoryFor derives the tier from a numeric price.
// 0 is free, up to $20 budget, up to $50 moderate, above that premium.
func PriceCategoryFor(price float64) PriceCategory {
	switch {
	case price == 0:
		return PriceFree
	case price <= 20:
		return PriceBudget
	case price <= 50:
		return PriceModerate
	default:
		return PricePremium
	}
}

// ParsePriceCategory coerces a raw string to a PriceCategory.
func ParsePriceCategory(s string) (PriceCategory, bool) {
	switch PriceCategory(strings.ToLower(strings.TrimSpace(s))) {
	case PriceFree:
		return PriceFree, true
	case PriceBudget:
		return PriceBudget, true
	case PriceModerate:
		return PriceModerate, true
	case PricePremium:
		return PricePremium, true
	}
	return "", false
}

// Status is the moderation state of a draft event. Curated baseline
// events carry no status and are implicitly approved.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus coerces a raw string to a Status.
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, true
	case StatusApproved:
		return StatusApproved, true
	case StatusRejected:
		return StatusRejected, true
	}
	return "", false
}

// Interactivity is how participatory an event is.
type Interactivity string

const (
	InteractivityLow    Interactivity = "low"
	InteractivityMedium Interactivity = "medium"
	InteractivityHigh   Interactivity = "high"
)

// Capacity is the rough venue size.
type Capacity string

const (
	CapacitySmall  Capacity = "small"
	CapacityMedium Capacity = "medium"
	CapacityLarge  Capacity = "large"
)

// VenueKind distinguishes indoor from outdoor venues.
type VenueKind string

const (
	VenueIndoor  VenueKind = "indoor"
	VenueOutdoor VenueKind = "outdoor"
)

// GroupSize is a party size an event is suited to.
type GroupSize string

const (
	GroupSolo   GroupSize = "solo"
	GroupCouple GroupSize = "couple"
	GroupSmall  GroupSize = "small"
	GroupLarge  GroupSize = "large"
)

// TimeBucket is a coarse time-of-day label.
type TimeBucket string

const (
	BucketMorning   TimeBucket = "morning"
	BucketAfternoon TimeBucket = "afternoon"
	BucketEvening   TimeBucket = "evening"
	BucketNight     TimeBucket = "night"
	BucketTBD       TimeBucket = "TBD"
)

// TraitAlphabet is the 8-symbol personality dimension set.
var TraitAlphabet = []string{"E", "I", "S", "N", "T", "F", "J", "P"}

// MaxDescriptionLen caps event descriptions on ingestion.
const MaxDescriptionLen = 500

// DateLayout is the calendar date format used across the system.
const DateLayout = "2006-01-02"

// Event is the central entity: one local event, curated or submitted.
type Event struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Tags        []string `json:"tags,omitempty"`

	Date string `json:"date"` // YYYY-MM-DD
	Time string `json:"time"` // HH:MM or a TimeBucket label

	Price         float64       `json:"price"`
	PriceCategory PriceCategory `json:"priceCategory"`

	PersonalityTags []string      `json:"personalityTags,omitempty"`
	Vibes           []string      `json:"vibes,omitempty"`
	GroupSizes      []GroupSize   `json:"groupSizes,omitempty"`
	Interactivity   Interactivity `json:"interactivity,omitempty"`
	Capacity        Capacity      `json:"capacity,omitempty"`
	Venue           VenueKind     `json:"venue,omitempty"`

	VenueName    string `json:"venueName,omitempty"`
	Location     string `json:"location,omitempty"`
	Duration     string `json:"duration,omitempty"`
	Image        string `json:"image,omitempty"`
	Artists      string `json:"artists,omitempty"`
	ExternalLink string `json:"externalLink,omitempty"`

	Source        string    `json:"source,omitempty"`
	SourceURL     string    `json:"sourceUrl,omitempty"`
	UserSubmitted bool      `json:"userSubmitted,omitempty"`
	SubmittedAt   time.Time `json:"submittedAt,omitempty"`

	Status Status `json:"status,omitempty"`
}

// SetPrice updates the price and recomputes the derived tier. All
// price mutations must go through here so the two never drift.
func (e *Event) SetPrice(price float64) {
	if price < 0 {
		price = 0
	}
	e.Price = price
	e.PriceCategory = PriceCategoryFor(price)
}

// TimeBucketOf maps the event's time field to a coarse bucket. Clock
// times are bucketed by hour; bucket labels pass through; anything
// unparseable is TBD.
func (e *Event) TimeBucketOf() TimeBucket {
	return BucketOf(e.Time)
}

// BucketOf maps a time string (HH:MM or a bucket label) to a TimeBucket.
func BucketOf(s string) TimeBucket {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case string(BucketMorning):
		return BucketMorning
	case string(BucketAfternoon):
		return BucketAfternoon
	case string(BucketEvening):
		return BucketEvening
	case string(BucketNight):
		return BucketNight
	case "", "tbd":
		return BucketTBD
	}
	parts := strings.SplitN(s, ":", 2)
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return BucketTBD
	}
	switch {
	case hour >= 5 && hour < 12:
		return BucketMorning
	case hour >= 12 && hour < 17:
		return BucketAfternoon
	case hour >= 17 && hour < 21:
		return BucketEvening
	default:
		return BucketNight
	}
}

// Normalize coerces the record into the closed schema: enums are
// validated, the description is capped, and the price tier is
// recomputed from the price. Unknown enum values are an error rather
// than being carried through as raw strings.
func (e *Event) Normalize() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("event name is required")
	}
	cat, ok := ParseCategory(string(e.Category))
	if !ok {
		return fmt.Errorf("unknown category %q", e.Category)
	}
	e.Category = cat

	if e.Status != "" {
		st, ok := ParseStatus(string(e.Status))
		if !ok {
			return fmt.Errorf("unknown status %q", e.Status)
		}
		e.Status = st
	}

	if len(e.Description) > MaxDescriptionLen {
		// Back up to a rune boundary so the cap never splits a
		// multi-byte character.
		cut := MaxDescriptionLen
		for cut > 0 && !utf8.RuneStart(e.Description[cut]) {
			cut--
		}
		e.Description = e.Description[:cut]
	}
	e.SetPrice(e.Price)

	switch e.Interactivity {
	case "", InteractivityLow, InteractivityMedium, InteractivityHigh:
	default:
		e.Interactivity = InteractivityMedium
	}
	switch e.Capacity {
	case "", CapacitySmall, CapacityMedium, CapacityLarge:
	default:
		e.Capacity = CapacityMedium
	}
	switch e.Venue {
	case "", VenueIndoor, VenueOutdoor:
	default:
		e.Venue = VenueIndoor
	}

	e.PersonalityTags = filterTraits(e.PersonalityTags)
	e.GroupSizes = filterGroupSizes(e.GroupSizes)
	return nil
}

// IsUpcomingWithin reports whether the event date falls within [0, days]
// days of now. Malformed or missing dates are treated as not upcoming.
func (e *Event) IsUpcomingWithin(now time.Time, fromDays, toDays int) bool {
	d, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	diff := int(d.Sub(today).Hours() / 24)
	return diff >= fromDays && diff <= toDays
}

func filterTraits(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	valid := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToUpper(strings.TrimSpace(t))
		for _, known := range TraitAlphabet {
			if t == known {
				valid = append(valid, t)
				break
			}
		}
	}
	return valid
}

func filterGroupSizes(sizes []GroupSize) []GroupSize {
	if len(sizes) == 0 {
		return nil
	}
	valid := make([]GroupSize, 0, len(sizes))
	for _, g := range sizes {
		switch g {
		case GroupSolo, GroupCouple, GroupSmall, GroupLarge:
			valid = append(valid, g)
		}
	}
	return valid
}
