// Package recommend turns a classified review into a ranked,
// deduplicated list of alternative events.
package recommend

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/localpulse/localpulse/internal/scoring"
	"github.com/localpulse/localpulse/internal/sentiment"
	"github.com/localpulse/localpulse/pkg/event"
	"github.com/localpulse/localpulse/pkg/logging"
)

// MaxRecommendations caps the returned list.
const MaxRecommendations = 4

// Badge labels the rule that produced a recommendation. Display only.
type Badge string

const (
	BadgeSimilar          Badge = "similar"
	BadgeBudgetFriendly   Badge = "budget-friendly"
	BadgeIntimate         Badge = "intimate"
	BadgeInteractive      Badge = "interactive"
	BadgeFreshPerspective Badge = "fresh-perspective"
)

// Recommendation pairs an event with the human-readable justification
// for suggesting it.
type Recommendation struct {
	Event  event.Event `json:"event"`
	Reason string      `json:"reason"`
	Badge  Badge       `json:"badge"`
}

// Catalog is the read surface the engine needs from the event store.
type Catalog interface {
	Visible() []event.Event
	Get(id string) (event.Event, error)
}

// Engine generates contextual recommendations from reviews.
type Engine struct {
	catalog Catalog
	logger  zerolog.Logger
}

// NewEngine builds an Engine over a catalog.
func NewEngine(catalog Catalog) *Engine {
	return &Engine{
		catalog: catalog,
		logger:  logging.GetLogger("recommend"),
	}
}

// Recommend produces up to four alternatives to the reviewed event.
// Five candidate rules run independently in a fixed order; their
// outputs are concatenated, deduplicated (first occurrence wins,
// so an earlier rule's framing sticks) and truncated.
func (en *Engine) Recommend(reviewedID string, rating int, cls sentiment.Classification, profile *event.UserProfile, now time.Time) ([]Recommendation, error) {
	reviewed, err := en.catalog.Get(reviewedID)
	if err != nil {
		return nil, err
	}

	var others []event.Event
	for _, e := range en.catalog.Visible() {
		if e.ID != reviewedID {
			others = append(others, e)
		}
	}

	var candidates []Recommendation
	if rating >= 4 {
		candidates = append(candidates, en.similarTo(&reviewed, others)...)
	}
	if cls.HasConcern(sentiment.ConcernPrice) {
		candidates = append(candidates, en.budgetFriendly(&reviewed, others)...)
	}
	if cls.HasConcern(sentiment.ConcernCrowd) {
		candidates = append(candidates, en.intimate(&reviewed, others, profile, now)...)
	}
	if cls.HasConcern(sentiment.ConcernBoring) {
		candidates = append(candidates, en.interactive(others, profile, now)...)
	}
	if rating <= 2 && len(cls.Concerns) == 0 {
		candidates = append(candidates, en.freshPerspective(&reviewed, others, profile, now)...)
	}

	seen := make(map[string]bool, len(candidates))
	var out []Recommendation
	for _, c := range candidates {
		if seen[c.Event.ID] {
			continue
		}
		seen[c.Event.ID] = true
		out = append(out, c)
		if len(out) == MaxRecommendations {
			break
		}
	}

	en.logger.Debug().
		Str("reviewed_id", reviewedID).
		Int("rating", rating).
		Int("candidates", len(candidates)).
		Int("returned", len(out)).
		Msg("Recommendations generated")
	return out, nil
}

// similarTo: the reviewer liked it, so surface the three most similar
// events by the event-to-event similarity score.
func (en *Engine) similarTo(reviewed *event.Event, others []event.Event) []Recommendation {
	type scored struct {
		e event.Event
		s int
	}
	ranked := make([]scored, 0, len(others))
	for _, e := range others {
		ranked = append(ranked, scored{e, scoring.Similarity(reviewed, &e)})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].s > ranked[j].s })

	out := make([]Recommendation, 0, 3)
	for _, r := range ranked {
		if len(out) == 3 {
			break
		}
		out = append(out, Recommendation{
			Event:  r.e,
			Reason: fmt.Sprintf("Because you enjoyed %s", reviewed.Name),
			Badge:  BadgeSimilar,
		})
	}
	return out
}

// budgetFriendly: the review complained about price, so suggest free
// or budget events in the same lane, cheapest first.
func (en *Engine) budgetFriendly(reviewed *event.Event, others []event.Event) []Recommendation {
	var pool []event.Event
	for _, e := range others {
		cheap := e.PriceCategory == event.PriceFree || e.PriceCategory == event.PriceBudget
		if cheap && related(reviewed, &e) {
			pool = append(pool, e)
		}
	}
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].Price < pool[j].Price })

	return take(pool, 2, BadgeBudgetFriendly, func(e *event.Event) string {
		if e.Price == 0 {
			return "A free alternative that keeps the same spirit"
		}
		return fmt.Sprintf("Same spirit at just $%.0f", e.Price)
	})
}

// intimate: the review complained about crowding, so suggest related
// small-capacity events, best score first.
func (en *Engine) intimate(reviewed *event.Event, others []event.Event, profile *event.UserProfile, now time.Time) []Recommendation {
	var pool []event.Event
	for _, e := range others {
		if e.Capacity == event.CapacitySmall && related(reviewed, &e) {
			pool = append(pool, e)
		}
	}
	sortByScore(pool, profile, now)

	return take(pool, 2, BadgeIntimate, func(e *event.Event) string {
		return "A smaller crowd with the same vibe"
	})
}

// interactive: the review found it boring, so suggest high-interactivity
// events, best score first.
func (en *Engine) interactive(others []event.Event, profile *event.UserProfile, now time.Time) []Recommendation {
	var pool []event.Event
	for _, e := range others {
		if e.Interactivity == event.InteractivityHigh {
			pool = append(pool, e)
		}
	}
	sortByScore(pool, profile, now)

	return take(pool, 2, BadgeInteractive, func(e *event.Event) string {
		return "Hands-on from start to finish"
	})
}

// freshPerspective: a low rating with no specific complaint, so try a
// different category entirely.
func (en *Engine) freshPerspective(reviewed *event.Event, others []event.Event, profile *event.UserProfile, now time.Time) []Recommendation {
	var pool []event.Event
	for _, e := range others {
		if e.Category != reviewed.Category {
			pool = append(pool, e)
		}
	}
	sortByScore(pool, profile, now)

	return take(pool, 2, BadgeFreshPerspective, func(e *event.Event) string {
		return fmt.Sprintf("Something different: give %s a try", e.Category)
	})
}

// related means same category or at least one shared vibe.
func related(a, b *event.Event) bool {
	return a.Category == b.Category || scoring.SharedVibes(a, b) > 0
}

func sortByScore(pool []event.Event, profile *event.UserProfile, now time.Time) {
	sort.SliceStable(pool, func(i, j int) bool {
		return scoring.Score(&pool[i], profile, now) > scoring.Score(&pool[j], profile, now)
	})
}

func take(pool []event.Event, n int, badge Badge, reason func(*event.Event) string) []Recommendation {
	if len(pool) < n {
		n = len(pool)
	}
	out := make([]Recommendation, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Recommendation{Event: pool[i], Reason: reason(&pool[i]), Badge: badge})
	}
	return out
}
