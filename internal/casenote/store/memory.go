package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"casenotes/internal/casenote/models"
	"casenotes/pkg/platform/sentinel"
)

// InMemoryStore keeps local case notes in process memory. Sensitivity is
// taken from the note as saved.
type InMemoryStore struct {
	mu      sync.RWMutex
	notes   map[uuid.UUID]*models.CaseNote
	deleted map[uuid.UUID]time.Time
	seq     int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		notes:   make(map[uuid.UUID]*models.CaseNote),
		deleted: make(map[uuid.UUID]time.Time),
	}
}

func (s *InMemoryStore) Save(_ context.Context, note *models.CaseNote) (*models.CaseNote, error) {
	id, ok := note.ID.Local()
	if !ok {
		return nil, fmt.Errorf("save case note: %q is not a local identifier", note.ID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.notes[id]; exists {
		return nil, fmt.Errorf("save case note %s: %w", id, sentinel.ErrConflict)
	}
	s.seq++
	stored := cloneNote(note)
	stored.Sequence = s.seq
	stored.SortAmendments()
	s.notes[id] = stored
	return cloneNote(stored), nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.CaseNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.live(id)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneNote(n), nil
}

func (s *InMemoryStore) FindByLegacyID(_ context.Context, legacyID int64) (*models.CaseNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, n := range s.notes {
		if _, gone := s.deleted[id]; gone {
			continue
		}
		if n.LegacyID != nil && *n.LegacyID == legacyID {
			return cloneNote(n), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) FindByFilter(_ context.Context, personID string, filter models.Filter) ([]*models.CaseNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.CaseNote
	for id, n := range s.notes {
		if _, gone := s.deleted[id]; gone {
			continue
		}
		if n.BelongsTo(personID) && filter.Matches(n) {
			out = append(out, cloneNote(n))
		}
	}
	slices.SortFunc(out, func(a, b *models.CaseNote) int {
		return cmp.Compare(a.Sequence, b.Sequence)
	})
	return out, nil
}

func (s *InMemoryStore) Refresh(ctx context.Context, note *models.CaseNote) (*models.CaseNote, error) {
	id, ok := note.ID.Local()
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.FindByID(ctx, id)
}

func (s *InMemoryStore) AddAmendment(_ context.Context, id uuid.UUID, amendment models.Amendment) (*models.CaseNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.live(id)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if amendment.ID == uuid.Nil {
		amendment.ID = uuid.New()
	}
	n.Amendments = append(n.Amendments, amendment)
	n.SortAmendments()
	n.ModifiedAt = amendment.CreatedAt
	return cloneNote(n), nil
}

func (s *InMemoryStore) SoftDelete(_ context.Context, id uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.live(id)
	if !ok {
		return sentinel.ErrNotFound
	}
	n.ModifiedAt = at
	s.deleted[id] = at
	return nil
}

func (s *InMemoryStore) live(id uuid.UUID) (*models.CaseNote, bool) {
	n, ok := s.notes[id]
	if !ok {
		return nil, false
	}
	if _, gone := s.deleted[id]; gone {
		return nil, false
	}
	return n, true
}

func cloneNote(n *models.CaseNote) *models.CaseNote {
	c := *n
	if n.LegacyID != nil {
		v := *n.LegacyID
		c.LegacyID = &v
	}
	c.Amendments = slices.Clone(n.Amendments)
	return &c
}
