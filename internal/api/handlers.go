// Package api exposes the LocalPulse catalog, scoring and moderation
// operations over HTTP.
package api

import (
	"errors"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/localpulse/localpulse/internal/extractor"
	"github.com/localpulse/localpulse/internal/metrics"
	"github.com/localpulse/localpulse/internal/moderation"
	"github.com/localpulse/localpulse/internal/recommend"
	"github.com/localpulse/localpulse/internal/scoring"
	"github.com/localpulse/localpulse/internal/sentiment"
	"github.com/localpulse/localpulse/internal/sources"
	"github.com/localpulse/localpulse/internal/store"
	"github.com/localpulse/localpulse/pkg/event"
	"github.com/localpulse/localpulse/pkg/logging"
)

// AdminSecretHeader carries the shared admin secret on admin routes.
const AdminSecretHeader = "X-Admin-Secret"

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	store       *store.Store
	workflow    *moderation.Workflow
	engine      *recommend.Engine
	extractor   *extractor.Extractor
	registry    *sources.Registry
	fetcher     *sources.Client
	adminSecret string
	logger      zerolog.Logger
	now         func() time.Time
}

// NewHandlers creates a new handlers instance.
func NewHandlers(s *store.Store, registry *sources.Registry, fetcher *sources.Client, adminSecret string) *Handlers {
	return &Handlers{
		store:       s,
		workflow:    moderation.New(s, logging.GetLogger("moderation")),
		engine:      recommend.NewEngine(s),
		extractor:   extractor.New(),
		registry:    registry,
		fetcher:     fetcher,
		adminSecret: adminSecret,
		logger:      logging.GetLogger("api"),
		now:         time.Now,
	}
}

// Health returns the service health status.
func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"service":   "localpulse",
		"timestamp": time.Now().UTC(),
	})
}

// ListEvents returns the visible catalog: curated events plus approved
// submissions.
func (h *Handlers) ListEvents(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"events": h.store.Visible(),
	})
}

// GetEvent returns a single event by ID.
func (h *Handlers) GetEvent(c *fiber.Ctx) error {
	e, err := h.store.Get(c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(e)
}

// ScoredEvent pairs an event with its affinity score for a profile.
type ScoredEvent struct {
	Event event.Event `json:"event"`
	Score int         `json:"score"`
}

// ScoreEventsRequest carries the profile to score the catalog against.
// A missing profile scores events by recency instead.
type ScoreEventsRequest struct {
	Profile *event.UserProfile `json:"profile"`
}

// ScoreEvents scores every visible event for the submitted profile and
// returns them ranked best first.
func (h *Handlers) ScoreEvents(c *fiber.Ctx) error {
	var req ScoreEventsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
	}
	if req.Profile != nil {
		if err := req.Profile.Validate(); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "Invalid profile",
				"details": err.Error(),
			})
		}
	}

	now := h.now()
	visible := h.store.Visible()
	scored := make([]ScoredEvent, 0, len(visible))
	for i := range visible {
		scored = append(scored, ScoredEvent{
			Event: visible[i],
			Score: scoring.Score(&visible[i], req.Profile, now),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	return c.JSON(fiber.Map{"events": scored})
}

// SubmitReviewRequest is one user review of an attended event.
type SubmitReviewRequest struct {
	EventID string             `json:"eventId"`
	Rating  int                `json:"rating"`
	Text    string             `json:"text"`
	Profile *event.UserProfile `json:"profile"`
}

// SubmitReview records a review, classifies its sentiment and returns
// follow-up recommendations.
func (h *Handlers) SubmitReview(c *fiber.Ctx) error {
	var req SubmitReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
	}
	if req.Profile != nil {
		if err := req.Profile.Validate(); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "Invalid profile",
				"details": err.Error(),
			})
		}
	}

	review := event.Review{
		EventID:   req.EventID,
		Rating:    req.Rating,
		Text:      req.Text,
		Timestamp: h.now(),
	}
	if err := h.store.SaveReview(review); err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrDeleted) {
			return storeError(c, err)
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid review",
			"details": err.Error(),
		})
	}
	metrics.ReviewsSubmitted.Inc()

	cls := sentiment.Classify(req.Text)
	recs, err := h.engine.Recommend(req.EventID, req.Rating, cls, req.Profile, h.now())
	if err != nil {
		return storeError(c, err)
	}
	metrics.RecommendationsServed.Add(float64(len(recs)))

	h.logger.Info().
		Str("event_id", req.EventID).
		Int("rating", req.Rating).
		Str("sentiment", string(cls.Sentiment)).
		Int("recommendations", len(recs)).
		Msg("Review recorded")

	return c.JSON(fiber.Map{
		"sentiment":       cls.Sentiment,
		"concerns":        cls.Concerns,
		"recommendations": recs,
	})
}

// ListReviews returns all recorded reviews.
func (h *Handlers) ListReviews(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"reviews": h.store.Reviews()})
}

// SaveEvent marks an event as saved for later.
func (h *Handlers) SaveEvent(c *fiber.Ctx) error {
	if err := h.store.SaveEvent(c.Params("id")); err != nil {
		return storeError(c, err)
	}
	return c.JSON(fiber.Map{"saved": h.store.SavedIDs()})
}

// UnsaveEvent removes an event from the saved set.
func (h *Handlers) UnsaveEvent(c *fiber.Ctx) error {
	if err := h.store.UnsaveEvent(c.Params("id")); err != nil {
		return storeError(c, err)
	}
	return c.JSON(fiber.Map{"saved": h.store.SavedIDs()})
}

// ListSaved returns the IDs of saved events.
func (h *Handlers) ListSaved(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"saved": h.store.SavedIDs()})
}

// storeError maps store sentinels onto HTTP statuses.
func storeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrDeleted):
		return c.Status(fiber.StatusGone).JSON(fiber.Map{"error": "Event was deleted"})
	case errors.Is(err, store.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Event not found"})
	case errors.Is(err, store.ErrCurated):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Curated events cannot be modified"})
	case errors.Is(err, moderation.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Invalid moderation transition"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Internal error",
			"details": err.Error(),
		})
	}
}
