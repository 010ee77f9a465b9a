// Package scoring ranks events against a user profile, or against
// recency/value heuristics when no profile exists.
package scoring

import (
	"math"
	"strings"
	"time"

	"github.com/localpulse/localpulse/pkg/event"
)

// Sub-score weights. They sum to 100, so the weighted sum is already
// on the final scale.
const (
	personalityWeight = 40
	vibeWeight        = 30
	budgetWeight      = 15
	groupWeight       = 10
	timeWeight        = 5
)

// adjacentBudgets are the tier pairs that earn half credit. The set is
// deliberately asymmetric (free↔budget, budget↔moderate,
// premium↔moderate) rather than a general adjacency rule.
var adjacentBudgets = map[[2]event.PriceCategory]bool{
	{event.PriceFree, event.PriceBudget}:       true,
	{event.PriceBudget, event.PriceFree}:       true,
	{event.PriceBudget, event.PriceModerate}:   true,
	{event.PriceModerate, event.PriceBudget}:   true,
	{event.PricePremium, event.PriceModerate}:  true,
	{event.PriceModerate, event.PricePremium}:  true,
}

// Score computes a 0-100 relevance score for one event. With a profile
// it is a weighted personality/vibe/budget/group/time match; without
// one it falls back to recency and value. Pure function of its inputs.
func Score(e *event.Event, profile *event.UserProfile, now time.Time) int {
	if profile == nil {
		return recencyScore(e, now)
	}
	return profileScore(e, profile)
}

func profileScore(e *event.Event, p *event.UserProfile) int {
	var total float64

	// Personality: fixed denominator of 4, not the event's tag count.
	matches := overlap(p.PersonalityTraits, e.PersonalityTags)
	total += float64(matches) / 4 * personalityWeight

	// Vibes: denominator capped at 3; zero-vibe events contribute 0.
	if len(e.Vibes) > 0 {
		denom := len(e.Vibes)
		if denom > 3 {
			denom = 3
		}
		shared := overlap(p.Vibes, e.Vibes)
		if shared > denom {
			shared = denom
		}
		total += float64(shared) / float64(denom) * vibeWeight
	}

	// Budget: full credit on exact tier, half on the listed pairs.
	if p.Budget != "" {
		switch {
		case p.Budget == e.PriceCategory:
			total += budgetWeight
		case adjacentBudgets[[2]event.PriceCategory{p.Budget, e.PriceCategory}]:
			total += budgetWeight / 2.0
		}
	}

	// Group size: membership in the event's allowed sizes.
	for _, g := range e.GroupSizes {
		if g == p.GroupSize {
			total += groupWeight
			break
		}
	}

	// Time: exact bucket equality.
	if p.TimePreference != "" && p.TimePreference == e.TimeBucketOf() {
		total += timeWeight
	}

	score := int(math.Round(total))
	if score > 100 {
		score = 100
	}
	return score
}

func recencyScore(e *event.Event, now time.Time) int {
	score := 50
	if e.UserSubmitted {
		score += 10
	}
	if e.IsUpcomingWithin(now, 0, 7) {
		score += 20
	} else if e.IsUpcomingWithin(now, 8, 30) {
		score += 10
	}
	if e.Price == 0 {
		score += 5
	}
	if score > 100 {
		score = 100
	}
	return score
}

// Similarity scores how alike two events are, for "more like this"
// suggestions. Unlike Score it compares events to each other, not to a
// profile.
func Similarity(a, b *event.Event) int {
	score := 0
	if a.Category == b.Category {
		score += 20
	}
	score += 10 * overlap(a.Vibes, b.Vibes)
	if a.PriceCategory == b.PriceCategory {
		score += 15
	}
	if a.TimeBucketOf() == b.TimeBucketOf() {
		score += 10
	}
	if a.Interactivity != "" && a.Interactivity == b.Interactivity {
		score += 10
	}
	return score
}

// overlap counts how many entries of want appear in have,
// case-insensitively.
func overlap(want, have []string) int {
	if len(want) == 0 || len(have) == 0 {
		return 0
	}
	set := make(map[string]bool, len(have))
	for _, h := range have {
		set[strings.ToLower(h)] = true
	}
	n := 0
	for _, w := range want {
		if set[strings.ToLower(w)] {
			n++
		}
	}
	return n
}

// SharedVibes counts vibes two events have in common.
func SharedVibes(a, b *event.Event) int {
	return overlap(a.Vibes, b.Vibes)
}
