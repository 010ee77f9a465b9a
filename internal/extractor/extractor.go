// Package extractor converts raw venue HTML into normalized pending
// event drafts. Strategies are tried in priority order: embedded
// structured data first, then pattern matching over event-like
// containers, then bare page headings. The first strategy to produce
// events wins; results are never merged across strategies.
package extractor

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/localpulse/localpulse/internal/metrics"
	"github.com/localpulse/localpulse/pkg/event"
	"github.com/localpulse/localpulse/pkg/logging"
)

// Request carries the source metadata for one extraction run.
type Request struct {
	VenueName string
	Category  event.Category // empty means infer per event
	SourceURL string
}

// Extractor turns HTML into event drafts. Safe for reuse across runs.
type Extractor struct {
	logger zerolog.Logger
	now    func() time.Time
}

// New builds an Extractor.
func New() *Extractor {
	return &Extractor{
		logger: logging.GetLogger("extractor"),
		now:    time.Now,
	}
}

// NewAt builds an Extractor with a fixed clock, for deterministic
// extraction dates.
func NewAt(now func() time.Time) *Extractor {
	e := New()
	e.now = now
	return e
}

// Extract runs the strategy chain over the given HTML. A page that
// yields no events is a normal empty result, not an error; the only
// error case is HTML the parser cannot read at all.
func (x *Extractor) Extract(html string, req Request) ([]event.Event, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	strategy := "structured-data"
	events := x.extractStructured(doc, req)
	if len(events) == 0 {
		strategy = "pattern-matching"
		events = x.extractPatterns(doc, req)
	}
	if len(events) == 0 {
		x.logger.Info().Str("venue", req.VenueName).Msg("No events found")
		return nil, nil
	}

	drafts := make([]event.Event, 0, len(events))
	for i := range events {
		e := events[i]
		x.finalize(&e, req)
		if err := e.Normalize(); err != nil {
			x.logger.Debug().Err(err).Str("name", e.Name).Msg("Dropping unnormalizable draft")
			continue
		}
		drafts = append(drafts, e)
	}

	metrics.EventsExtracted.WithLabelValues(strategy).Add(float64(len(drafts)))
	extractionLogger := logging.GetExtractionLogger(req.VenueName, strategy)
	extractionLogger.Info().
		Int("events", len(drafts)).
		Msg("Extraction complete")
	return drafts, nil
}

// finalize applies the shared provenance and inference pass to a draft
// from either strategy.
func (x *Extractor) finalize(e *event.Event, req Request) {
	if req.Category != "" {
		e.Category = req.Category
	} else if e.Category == "" {
		e.Category = InferCategory(e.Name + " " + e.Description)
	}
	if e.VenueName == "" {
		e.VenueName = req.VenueName
	}
	if e.Location == "" {
		e.Location = req.VenueName
	}
	if e.ExternalLink == "" {
		e.ExternalLink = req.SourceURL
	}
	e.Source = req.VenueName
	e.SourceURL = req.SourceURL
	e.Status = event.StatusPending
	e.UserSubmitted = true
	e.SubmittedAt = x.now()

	inferFields(e)
}
