// Package moderation is the state machine that gates draft events
// into the public catalog.
package moderation

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/localpulse/localpulse/internal/metrics"
	"github.com/localpulse/localpulse/internal/store"
	"github.com/localpulse/localpulse/pkg/event"
)

// ErrInvalidTransition is returned for status changes the workflow
// does not permit.
var ErrInvalidTransition = errors.New("invalid moderation transition")

// Workflow applies moderation transitions to drafts in the store.
// Allowed: pending→approved, pending→rejected, approved↔rejected and
// any→deleted. Deleted is terminal. Re-applying the current status is
// a no-op.
type Workflow struct {
	store  *store.Store
	logger zerolog.Logger
}

// New builds a Workflow over the shared store.
func New(s *store.Store, logger zerolog.Logger) *Workflow {
	return &Workflow{store: s, logger: logger}
}

// Approve publishes a draft into the public view.
func (w *Workflow) Approve(id string) error {
	return w.transition(id, event.StatusApproved)
}

// Reject retracts a draft from the public view.
func (w *Workflow) Reject(id string) error {
	return w.transition(id, event.StatusRejected)
}

// Delete destroys a draft entirely; the id is retired and the event
// disappears from the public view if it was approved.
func (w *Workflow) Delete(id string) error {
	if err := w.store.RemoveDraft(id); err != nil {
		return err
	}
	metrics.ModerationTransitions.WithLabelValues("deleted").Inc()
	w.logger.Info().Str("id", id).Msg("Draft deleted")
	return nil
}

func (w *Workflow) transition(id string, target event.Status) error {
	current, err := w.store.Get(id)
	if err != nil {
		return err
	}
	if current.Status == "" {
		return fmt.Errorf("%w: %q is a curated event", ErrInvalidTransition, id)
	}
	if current.Status == target {
		// Idempotent re-invocation.
		return nil
	}
	if err := w.store.SetDraftStatus(id, target); err != nil {
		return err
	}
	metrics.ModerationTransitions.WithLabelValues(string(target)).Inc()
	w.logger.Info().
		Str("id", id).
		Str("from", string(current.Status)).
		Str("to", string(target)).
		Msg("Moderation transition")
	return nil
}
