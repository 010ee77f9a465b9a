package api

import (
	"crypto/subtle"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/localpulse/localpulse/internal/extractor"
	"github.com/localpulse/localpulse/pkg/event"
)

// RequireAdmin guards admin routes behind the shared secret header.
func (h *Handlers) RequireAdmin(c *fiber.Ctx) error {
	if h.adminSecret == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Admin access is not configured",
		})
	}
	given := c.Get(AdminSecretHeader)
	if subtle.ConstantTimeCompare([]byte(given), []byte(h.adminSecret)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid admin secret",
		})
	}
	return c.Next()
}

// ListDrafts returns every submission awaiting or past moderation.
func (h *Handlers) ListDrafts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"drafts": h.store.Drafts()})
}

// SubmitDraft accepts a manually entered event submission.
func (h *Handlers) SubmitDraft(c *fiber.Ctx) error {
	var e event.Event
	if err := c.BodyParser(&e); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
	}

	e.UserSubmitted = true
	if e.SubmittedAt.IsZero() {
		e.SubmittedAt = h.now()
	}
	saved, err := h.store.AddDraft(e)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid event",
			"details": err.Error(),
		})
	}

	h.logger.Info().Str("event_id", saved.ID).Str("name", saved.Name).Msg("Draft submitted")
	return c.Status(fiber.StatusCreated).JSON(saved)
}

// ExtractRequest carries pasted HTML plus source metadata.
type ExtractRequest struct {
	HTML      string `json:"html"`
	VenueName string `json:"venueName"`
	Category  string `json:"category"`
	SourceURL string `json:"sourceUrl"`
}

// ExtractDrafts runs the extractor over pasted HTML and stores every
// resulting draft as pending.
func (h *Handlers) ExtractDrafts(c *fiber.Ctx) error {
	var req ExtractRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
	}
	if req.HTML == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "html is required",
		})
	}
	if req.Category != "" {
		if _, ok := event.ParseCategory(req.Category); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("unknown category %q", req.Category),
			})
		}
	}

	drafts, err := h.extractor.Extract(req.HTML, extractor.Request{
		VenueName: req.VenueName,
		Category:  event.Category(req.Category),
		SourceURL: req.SourceURL,
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Extraction failed",
			"details": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"drafts": h.storeDrafts(drafts),
	})
}

// ApproveDraft transitions a submission to approved.
func (h *Handlers) ApproveDraft(c *fiber.Ctx) error {
	return h.moderate(c, h.workflow.Approve)
}

// RejectDraft transitions a submission to rejected.
func (h *Handlers) RejectDraft(c *fiber.Ctx) error {
	return h.moderate(c, h.workflow.Reject)
}

// DeleteDraft removes a submission permanently.
func (h *Handlers) DeleteDraft(c *fiber.Ctx) error {
	return h.moderate(c, h.workflow.Delete)
}

func (h *Handlers) moderate(c *fiber.Ctx, op func(string) error) error {
	id := c.Params("id")
	if err := op(id); err != nil {
		return storeError(c, err)
	}
	return c.JSON(fiber.Map{"id": id})
}

// ListSources returns the configured scrape sources.
func (h *Handlers) ListSources(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"sources": h.registry.All()})
}

// ScrapeSource fetches one registered source and stores the extracted
// events as pending drafts.
func (h *Handlers) ScrapeSource(c *fiber.Ctx) error {
	key := c.Params("key")
	src, ok := h.registry.Lookup(key)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": fmt.Sprintf("unknown source %q", key),
		})
	}

	html, err := h.fetcher.Fetch(c.Context(), src.URL)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "Fetch failed",
			"details": err.Error(),
		})
	}

	drafts, err := h.extractor.Extract(html, src.Request())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "Extraction failed",
			"details": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"source": src.Key,
		"drafts": h.storeDrafts(drafts),
	})
}

// storeDrafts persists extracted drafts, skipping any the store
// rejects.
func (h *Handlers) storeDrafts(drafts []event.Event) []event.Event {
	stored := make([]event.Event, 0, len(drafts))
	for _, d := range drafts {
		saved, err := h.store.AddDraft(d)
		if err != nil {
			h.logger.Warn().Err(err).Str("name", d.Name).Msg("Skipping rejected draft")
			continue
		}
		stored = append(stored, saved)
	}
	return stored
}
