package recommend

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localpulse/localpulse/internal/sentiment"
	"github.com/localpulse/localpulse/pkg/event"
)

var testNow = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

type fakeCatalog struct {
	events []event.Event
}

func (f *fakeCatalog) Visible() []event.Event { return f.events }

func (f *fakeCatalog) Get(id string) (event.Event, error) {
	for _, e := range f.events {
		if e.ID == id {
			return e, nil
		}
	}
	return event.Event{}, errors.New("event not found")
}

func mk(id, name string, cat event.Category, price float64, vibes []string, opts func(*event.Event)) event.Event {
	e := event.Event{
		ID:       id,
		Name:     name,
		Category: cat,
		Date:     "2025-10-10",
		Time:     "evening",
		Vibes:    vibes,
	}
	e.SetPrice(price)
	if opts != nil {
		opts(&e)
	}
	return e
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{events: []event.Event{
		mk("1", "Jazz Night", event.CategoryMusic, 25, []string{"energetic", "social"}, nil),
		mk("2", "Indie Showcase", event.CategoryMusic, 15, []string{"energetic", "edgy"}, nil),
		mk("3", "Free Park Concert", event.CategoryMusic, 0, []string{"social", "casual"}, nil),
		mk("4", "Pottery Class", event.CategoryArts, 40, []string{"relaxed"}, func(e *event.Event) {
			e.Interactivity = event.InteractivityHigh
			e.Capacity = event.CapacitySmall
		}),
		mk("5", "Listening Room Session", event.CategoryMusic, 20, []string{"social", "relaxed"}, func(e *event.Event) {
			e.Capacity = event.CapacitySmall
		}),
		mk("6", "Food Festival", event.CategoryFood, 10, []string{"casual", "social"}, func(e *event.Event) {
			e.Interactivity = event.InteractivityHigh
		}),
	}}
}

func TestHighRatingSuggestsSimilar(t *testing.T) {
	en := NewEngine(testCatalog())

	recs, err := en.Recommend("1", 5, sentiment.Classification{Sentiment: sentiment.Positive}, nil, testNow)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	for _, r := range recs {
		assert.Equal(t, BadgeSimilar, r.Badge)
		assert.Contains(t, r.Reason, "Jazz Night")
		assert.NotEqual(t, "1", r.Event.ID)
	}
	// Indie Showcase shares category, a vibe and the evening slot; it
	// should outrank the cross-category options.
	assert.Equal(t, "2", recs[0].Event.ID)
}

func TestPriceConcernSuggestsCheapRelated(t *testing.T) {
	en := NewEngine(testCatalog())
	cls := sentiment.Classification{Sentiment: sentiment.Negative, Concerns: []sentiment.Concern{sentiment.ConcernPrice}}

	recs, err := en.Recommend("1", 3, cls, nil, testNow)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	// Ascending by price: the free concert first.
	assert.Equal(t, "3", recs[0].Event.ID)
	assert.Equal(t, BadgeBudgetFriendly, recs[0].Badge)
	for _, r := range recs {
		assert.Contains(t, []event.PriceCategory{event.PriceFree, event.PriceBudget}, r.Event.PriceCategory)
	}
}

func TestCrowdConcernSuggestsSmallVenues(t *testing.T) {
	en := NewEngine(testCatalog())
	cls := sentiment.Classification{Concerns: []sentiment.Concern{sentiment.ConcernCrowd}}

	recs, err := en.Recommend("1", 3, cls, nil, testNow)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "5", recs[0].Event.ID)
	assert.Equal(t, BadgeIntimate, recs[0].Badge)
}

func TestBoringConcernSuggestsInteractive(t *testing.T) {
	en := NewEngine(testCatalog())
	cls := sentiment.Classification{Concerns: []sentiment.Concern{sentiment.ConcernBoring}}

	recs, err := en.Recommend("1", 3, cls, nil, testNow)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.Equal(t, event.InteractivityHigh, r.Event.Interactivity)
		assert.Equal(t, BadgeInteractive, r.Badge)
	}
}

func TestLowRatingNoConcernsChangesCategory(t *testing.T) {
	en := NewEngine(testCatalog())

	recs, err := en.Recommend("1", 1, sentiment.Classification{Sentiment: sentiment.Negative}, nil, testNow)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.NotEqual(t, event.CategoryMusic, r.Event.Category)
		assert.Equal(t, BadgeFreshPerspective, r.Badge)
	}
}

// A five-star review that also complains about crowding triggers both
// the similar rule and the intimate rule; dedup keeps the similar
// framing for events that qualify under both.
func TestRulesMergeWithFirstRuleWinning(t *testing.T) {
	en := NewEngine(testCatalog())
	cls := sentiment.Classification{Sentiment: sentiment.Positive, Concerns: []sentiment.Concern{sentiment.ConcernCrowd}}

	recs, err := en.Recommend("1", 5, cls, nil, testNow)
	require.NoError(t, err)
	// Rule 1 picks events 2, 3 and 5; the intimate rule re-nominates 5,
	// which dedup drops.
	require.Len(t, recs, 3)

	seen := make(map[string]bool)
	for _, r := range recs {
		assert.False(t, seen[r.Event.ID], "no duplicate ids")
		seen[r.Event.ID] = true
		assert.NotEqual(t, "1", r.Event.ID, "never the reviewed event")
		if r.Event.ID == "5" {
			assert.Equal(t, BadgeSimilar, r.Badge, "the earlier rule's framing wins")
		}
	}
}

func TestNeverMoreThanFour(t *testing.T) {
	en := NewEngine(testCatalog())
	cls := sentiment.Classification{
		Sentiment: sentiment.Positive,
		Concerns:  []sentiment.Concern{sentiment.ConcernPrice, sentiment.ConcernCrowd, sentiment.ConcernBoring},
	}

	recs, err := en.Recommend("1", 5, cls, nil, testNow)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(recs), MaxRecommendations)
}

func TestUnknownReviewedEvent(t *testing.T) {
	en := NewEngine(testCatalog())
	_, err := en.Recommend("ghost", 5, sentiment.Classification{}, nil, testNow)
	assert.Error(t, err)
}
