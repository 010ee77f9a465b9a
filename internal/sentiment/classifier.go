// Package sentiment is a purely lexical classifier for review text:
// case-insensitive substring matching against fixed keyword lists, no
// NLP.
package sentiment

import "strings"

// Sentiment is the overall tone of a review.
type Sentiment string

const (
	Positive Sentiment = "positive"
	Neutral  Sentiment = "neutral"
	Negative Sentiment = "negative"
)

// Concern is a complaint category detected in review text.
type Concern string

const (
	ConcernPrice  Concern = "price"
	ConcernCrowd  Concern = "crowd"
	ConcernBoring Concern = "boring"
)

// Classification is the classifier output consumed by the
// recommendation engine.
type Classification struct {
	Sentiment Sentiment `json:"sentiment"`
	Concerns  []Concern `json:"concerns,omitempty"`
}

// HasConcern reports whether a concern was flagged.
func (c Classification) HasConcern(concern Concern) bool {
	for _, got := range c.Concerns {
		if got == concern {
			return true
		}
	}
	return false
}

var positiveWords = []string{
	"amazing", "awesome", "great", "fantastic", "excellent", "wonderful",
	"love", "loved", "fun", "enjoyed", "incredible", "perfect", "best",
	"beautiful", "recommend",
}

var negativeWords = []string{
	"bad", "terrible", "awful", "horrible", "hate", "hated", "worst",
	"disappointing", "disappointed", "poor", "mediocre", "waste",
}

// Each concern is flagged on its own listed forms; "overpriced"
// matches because it is listed, not by containing "price".
var concernWords = map[Concern][]string{
	ConcernPrice:  {"expensive", "overpriced", "pricey", "costly", "too much money", "not worth"},
	ConcernCrowd:  {"crowded", "packed", "too busy", "cramped", "long line", "long lines", "no room"},
	ConcernBoring: {"boring", "dull", "uninteresting", "bland", "slow", "nothing happened"},
}

// Classify maps free text to a sentiment and a set of concerns.
// Positive needs a margin of more than one over negative hits; a
// plain majority is enough for negative. Empty text is neutral.
func Classify(text string) Classification {
	lower := strings.ToLower(text)
	result := Classification{Sentiment: Neutral}
	if strings.TrimSpace(lower) == "" {
		return result
	}

	posHits := countHits(lower, positiveWords)
	negHits := countHits(lower, negativeWords)

	switch {
	case posHits > negHits+1:
		result.Sentiment = Positive
	case negHits > posHits:
		result.Sentiment = Negative
	}

	for _, concern := range []Concern{ConcernPrice, ConcernCrowd, ConcernBoring} {
		if countHits(lower, concernWords[concern]) > 0 {
			result.Concerns = append(result.Concerns, concern)
		}
	}
	return result
}

func countHits(lower string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(lower, w) {
			n++
		}
	}
	return n
}
