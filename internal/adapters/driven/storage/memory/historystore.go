package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/halcyon-labs/docq-cli/internal/core/domain"
	"github.com/halcyon-labs/docq-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
type HistoryStore struct {
	mu      sync.RWMutex
	records []domain.QARecord
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Save stores a Q&A record.
func (s *HistoryStore) Save(_ context.Context, record *domain.QARecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, *record)
	return nil
}

// List returns an owner's most recent records, newest first.
func (s *HistoryStore) List(_ context.Context, ownerID string, limit int) ([]domain.QARecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []domain.QARecord
	for _, r := range s.records {
		if r.OwnerID == ownerID {
			records = append(records, r)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].CreatedAt.After(records[j].CreatedAt) })
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// DeleteByDocument removes records that cite the given document.
func (s *HistoryStore) DeleteByDocument(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	for _, r := range s.records {
		cites := false
		for _, c := range r.Citations {
			if c.DocumentID == documentID {
				cites = true
				break
			}
		}
		if !cites {
			kept = append(kept, r)
		}
	}
	s.records = kept
	return nil
}

// Ensure SummaryStore implements the interface.
var _ driven.SummaryStore = (*SummaryStore)(nil)

// SummaryStore is an in-memory implementation of driven.SummaryStore.
type SummaryStore struct {
	mu        sync.RWMutex
	summaries map[string]domain.Summary
}

// NewSummaryStore creates a new in-memory summary store.
func NewSummaryStore() *SummaryStore {
	return &SummaryStore{summaries: make(map[string]domain.Summary)}
}

// Save stores a summary.
func (s *SummaryStore) Save(_ context.Context, summary *domain.Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries[summary.ID] = *summary
	return nil
}

// List returns an owner's summaries, newest first.
func (s *SummaryStore) List(_ context.Context, ownerID string) ([]domain.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var summaries []domain.Summary
	for _, sum := range s.summaries {
		if sum.OwnerID == ownerID {
			summaries = append(summaries, sum)
		}
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].CreatedAt.After(summaries[j].CreatedAt) })
	return summaries, nil
}

// Delete removes a summary by ID.
func (s *SummaryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.summaries, id)
	return nil
}

// DeleteByDocument removes summaries of the given document.
func (s *SummaryStore) DeleteByDocument(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sum := range s.summaries {
		if sum.DocumentID == documentID {
			delete(s.summaries, id)
		}
	}
	return nil
}
