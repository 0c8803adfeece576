package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/halcyon-labs/docq-cli/internal/core/domain"
	"github.com/halcyon-labs/docq-cli/internal/core/ports/driven"
)

// Ensure QuestionStore implements the interface.
var _ driven.QuestionStore = (*QuestionStore)(nil)

// QuestionStore is an in-memory implementation of driven.QuestionStore.
type QuestionStore struct {
	mu   sync.RWMutex
	sets map[string]domain.QuestionSet
}

// NewQuestionStore creates a new in-memory question store.
func NewQuestionStore() *QuestionStore {
	return &QuestionStore{sets: make(map[string]domain.QuestionSet)}
}

// Save stores a question set.
func (s *QuestionStore) Save(_ context.Context, set *domain.QuestionSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets[set.ID] = *set
	return nil
}

// List returns an owner's question sets, newest first.
func (s *QuestionStore) List(_ context.Context, ownerID string) ([]domain.QuestionSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sets []domain.QuestionSet
	for _, set := range s.sets {
		if set.OwnerID == ownerID {
			sets = append(sets, set)
		}
	}
	sort.Slice(sets, func(i, j int) bool { return sets[i].CreatedAt.After(sets[j].CreatedAt) })
	return sets, nil
}

// Delete removes a question set by ID.
func (s *QuestionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sets, id)
	return nil
}

// DeleteByDocument removes question sets for the given document.
func (s *QuestionStore) DeleteByDocument(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, set := range s.sets {
		if set.DocumentID == documentID {
			delete(s.sets, id)
		}
	}
	return nil
}
