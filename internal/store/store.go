// Package store holds the in-memory event collection: the curated
// baseline plus operator-gated drafts, along with reviews and the
// saved-event set. Every mutation is followed by a re-serialization of
// the affected collection into the key-value store.
package store

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/localpulse/localpulse/internal/kvstore"
	"github.com/localpulse/localpulse/pkg/event"
	"github.com/localpulse/localpulse/pkg/logging"
)

var (
	// ErrNotFound is returned when an event id resolves to nothing.
	ErrNotFound = errors.New("event not found")
	// ErrDeleted is returned for ids that were deleted this session.
	// Deleted ids are never reused.
	ErrDeleted = errors.New("event was deleted")
	// ErrCurated is returned when a mutation targets a curated
	// baseline event, which is immutable.
	ErrCurated = errors.New("curated events cannot be modified")
)

// Store is the single shared state of the pipeline. There is exactly
// one logical writer context; the mutex only guards against the HTTP
// layer's accidental concurrency.
type Store struct {
	mu      sync.RWMutex
	kv      kvstore.Store
	curated []event.Event
	drafts  map[string]*event.Event
	order   []string
	reviews map[string]event.Review
	saved   map[string]bool
	deleted map[string]bool
	logger  zerolog.Logger
}

// New builds a Store over the given key-value collaborator, seeding
// the curated baseline and restoring persisted drafts, reviews and
// saved ids.
func New(kv kvstore.Store) *Store {
	s := &Store{
		kv:      kv,
		curated: CuratedEvents(),
		drafts:  make(map[string]*event.Event),
		reviews: make(map[string]event.Review),
		saved:   make(map[string]bool),
		deleted: make(map[string]bool),
		logger:  logging.GetLogger("store"),
	}
	s.restore()
	return s
}

func (s *Store) restore() {
	if raw, ok := s.kv.Get(kvstore.KeyDrafts); ok {
		var drafts []event.Event
		if err := json.Unmarshal([]byte(raw), &drafts); err != nil {
			s.logger.Warn().Err(err).Msg("Discarding unreadable draft collection")
		} else {
			for i := range drafts {
				d := drafts[i]
				s.drafts[d.ID] = &d
				s.order = append(s.order, d.ID)
			}
		}
	}
	if raw, ok := s.kv.Get(kvstore.KeyReviews); ok {
		var reviews []event.Review
		if err := json.Unmarshal([]byte(raw), &reviews); err != nil {
			s.logger.Warn().Err(err).Msg("Discarding unreadable review collection")
		} else {
			for _, r := range reviews {
				s.reviews[r.EventID] = r
			}
		}
	}
	if raw, ok := s.kv.Get(kvstore.KeySavedEvents); ok {
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err == nil {
			for _, id := range ids {
				s.saved[id] = true
			}
		}
	}
}

// Visible returns the public view: every curated event plus drafts
// with approved status, in stable order.
func (s *Store) Visible() []event.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]event.Event, 0, len(s.curated)+len(s.order))
	out = append(out, s.curated...)
	for _, id := range s.order {
		if d := s.drafts[id]; d != nil && d.Status == event.StatusApproved {
			out = append(out, *d)
		}
	}
	return out
}

// Drafts returns every submitted/extracted draft in submission order,
// regardless of status.
func (s *Store) Drafts() []event.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]event.Event, 0, len(s.order))
	for _, id := range s.order {
		if d := s.drafts[id]; d != nil {
			out = append(out, *d)
		}
	}
	return out
}

// Get resolves an id against curated events and drafts.
func (s *Store) Get(id string) (event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLocked(id)
}

func (s *Store) isCuratedLocked(id string) bool {
	for _, c := range s.curated {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) getLocked(id string) (event.Event, error) {
	for _, c := range s.curated {
		if c.ID == id {
			return c, nil
		}
	}
	if d, ok := s.drafts[id]; ok {
		return *d, nil
	}
	if s.deleted[id] {
		return event.Event{}, ErrDeleted
	}
	return event.Event{}, ErrNotFound
}

// AddDraft normalizes and stores a new pending draft, assigning an id
// when the caller did not provide one.
func (s *Store) AddDraft(e event.Event) (event.Event, error) {
	if e.Status == "" {
		e.Status = event.StatusPending
	}
	if err := e.Normalize(); err != nil {
		return event.Event{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if s.isCuratedLocked(e.ID) {
		return event.Event{}, ErrCurated
	}
	if s.deleted[e.ID] {
		return event.Event{}, ErrDeleted
	}
	if _, exists := s.drafts[e.ID]; !exists {
		s.order = append(s.order, e.ID)
	}
	s.drafts[e.ID] = &e
	s.persistDraftsLocked()

	s.logger.Debug().Str("id", e.ID).Str("name", e.Name).Msg("Draft added")
	return e, nil
}

// UpdateDraft replaces a draft's fields before approval. The status
// field is preserved; transitions go through the moderation workflow.
func (s *Store) UpdateDraft(e event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.drafts[e.ID]
	if !ok {
		if s.isCuratedLocked(e.ID) {
			return ErrCurated
		}
		if s.deleted[e.ID] {
			return ErrDeleted
		}
		return ErrNotFound
	}
	e.Status = existing.Status
	if err := e.Normalize(); err != nil {
		return err
	}
	s.drafts[e.ID] = &e
	s.persistDraftsLocked()
	return nil
}

// SetDraftStatus writes a status without transition checks; the
// moderation workflow is the only caller.
func (s *Store) SetDraftStatus(id string, status event.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[id]
	if !ok {
		if s.isCuratedLocked(id) {
			return ErrCurated
		}
		if s.deleted[id] {
			return ErrDeleted
		}
		return ErrNotFound
	}
	d.Status = status
	s.persistDraftsLocked()
	return nil
}

// RemoveDraft destroys a draft and retires its id for the session.
func (s *Store) RemoveDraft(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drafts[id]; !ok {
		if s.isCuratedLocked(id) {
			return ErrCurated
		}
		if s.deleted[id] {
			return ErrDeleted
		}
		return ErrNotFound
	}
	delete(s.drafts, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.deleted[id] = true
	s.persistDraftsLocked()

	s.logger.Debug().Str("id", id).Msg("Draft deleted")
	return nil
}

// SaveReview stores a review, overwriting any prior review for the
// same event. The referenced event must exist.
func (s *Store) SaveReview(r event.Review) error {
	if err := r.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getLocked(r.EventID); err != nil {
		return err
	}
	s.reviews[r.EventID] = r
	s.persistReviewsLocked()
	return nil
}

// Review returns the review for an event, if any.
func (s *Store) Review(eventID string) (event.Review, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reviews[eventID]
	return r, ok
}

// Reviews returns all stored reviews.
func (s *Store) Reviews() []event.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]event.Review, 0, len(s.reviews))
	for _, r := range s.reviews {
		out = append(out, r)
	}
	return out
}

// SaveEvent marks an event id as saved by the user.
func (s *Store) SaveEvent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getLocked(id); err != nil {
		return err
	}
	s.saved[id] = true
	s.persistSavedLocked()
	return nil
}

// UnsaveEvent removes an event id from the saved set. Unsaving an
// unsaved id is a no-op.
func (s *Store) UnsaveEvent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.saved, id)
	s.persistSavedLocked()
	return nil
}

// SavedIDs returns the saved-event id set.
func (s *Store) SavedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.saved))
	for _, id := range s.order {
		if s.saved[id] {
			out = append(out, id)
		}
	}
	for _, c := range s.curated {
		if s.saved[c.ID] {
			out = append(out, c.ID)
		}
	}
	return out
}

func (s *Store) persistDraftsLocked() {
	drafts := make([]event.Event, 0, len(s.order))
	for _, id := range s.order {
		if d := s.drafts[id]; d != nil {
			drafts = append(drafts, *d)
		}
	}
	s.persist(kvstore.KeyDrafts, drafts)
}

func (s *Store) persistReviewsLocked() {
	reviews := make([]event.Review, 0, len(s.reviews))
	for _, r := range s.reviews {
		reviews = append(reviews, r)
	}
	s.persist(kvstore.KeyReviews, reviews)
}

func (s *Store) persistSavedLocked() {
	ids := make([]string, 0, len(s.saved))
	for id := range s.saved {
		ids = append(ids, id)
	}
	s.persist(kvstore.KeySavedEvents, ids)
}

func (s *Store) persist(key string, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to serialize collection")
		return
	}
	if err := s.kv.Set(key, string(b)); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to persist collection")
	}
}
