package store

import (
	"context"
	"sync"

	"casenotes/internal/notetype/models"
	"casenotes/pkg/platform/sentinel"
)

// InMemoryStore holds a fixed local type catalog.
type InMemoryStore struct {
	mu    sync.RWMutex
	types []models.NoteType
}

func NewInMemoryStore(types ...models.NoteType) *InMemoryStore {
	s := &InMemoryStore{}
	for _, t := range types {
		s.types = append(s.types, copyType(t))
	}
	return s
}

func (s *InMemoryStore) ListTypes(_ context.Context) ([]models.NoteType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.NoteType, 0, len(s.types))
	for _, t := range s.types {
		out = append(out, copyType(t))
	}
	return out, nil
}

func (s *InMemoryStore) FindSubType(_ context.Context, typeCode, subTypeCode string) (models.SubTypeRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ref, ok := models.Find(s.types, typeCode, subTypeCode)
	if !ok {
		return models.SubTypeRef{}, sentinel.ErrNotFound
	}
	return ref, nil
}

// Put adds or replaces a parent type.
func (s *InMemoryStore) Put(t models.NoteType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.types {
		if s.types[i].Code == t.Code {
			s.types[i] = copyType(t)
			return
		}
	}
	s.types = append(s.types, copyType(t))
}

func copyType(t models.NoteType) models.NoteType {
	c := t
	c.SubTypes = append([]models.NoteSubType(nil), t.SubTypes...)
	return c
}
