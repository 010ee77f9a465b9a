package event

import (
	"fmt"
	"strings"
	"time"
)

// UserProfile holds the onboarding quiz results used for personality
// matching. A nil profile is valid everywhere and falls back to
// recency/value heuristics.
type UserProfile struct {
	PersonalityTraits []string      `json:"personalityTraits"` // one from each of E/I, S/N, T/F, J/P
	Vibes             []string      `json:"vibes,omitempty"`
	Budget            PriceCategory `json:"budget,omitempty"`
	GroupSize         GroupSize     `json:"groupSize,omitempty"`
	TimePreference    TimeBucket    `json:"timePreference,omitempty"`
}

// traitPairs are the four opposing personality dimensions.
var traitPairs = [4][2]string{{"E", "I"}, {"S", "N"}, {"T", "F"}, {"J", "P"}}

// Validate checks that the profile carries exactly one trait from each
// opposing pair.
func (p *UserProfile) Validate() error {
	if len(p.PersonalityTraits) != 4 {
		return fmt.Errorf("profile must have exactly 4 personality traits, got %d", len(p.PersonalityTraits))
	}
	have := make(map[string]bool, 4)
	for _, t := range p.PersonalityTraits {
		have[strings.ToUpper(strings.TrimSpace(t))] = true
	}
	for _, pair := range traitPairs {
		a, b := have[pair[0]], have[pair[1]]
		if a == b { // both or neither
			return fmt.Errorf("profile must pick exactly one of %s/%s", pair[0], pair[1])
		}
	}
	if p.Budget != "" {
		if _, ok := ParsePriceCategory(string(p.Budget)); !ok {
			return fmt.Errorf("unknown budget %q", p.Budget)
		}
	}
	return nil
}

// MinReviewTextLen is the minimum review length after trimming.
const MinReviewTextLen = 10

// Review is a user's rating and free-text feedback for one event.
// There is at most one review per event; resubmitting overwrites.
type Review struct {
	EventID   string    `json:"eventId"`
	Rating    int       `json:"rating"` // 1..5
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Validate rejects invalid reviews at the boundary with a specific
// reason, before they reach the core.
func (r *Review) Validate() error {
	if strings.TrimSpace(r.EventID) == "" {
		return fmt.Errorf("review must reference an event")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", r.Rating)
	}
	if len(strings.TrimSpace(r.Text)) < MinReviewTextLen {
		return fmt.Errorf("review text must be at least %d characters", MinReviewTextLen)
	}
	return nil
}
