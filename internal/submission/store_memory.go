package submission

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// InMemoryStore keeps records in process memory. It backs local development
// and tests when no database is configured.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]TrustScoreRecord
	order   []uuid.UUID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[uuid.UUID]TrustScoreRecord)}
}

func (s *InMemoryStore) Append(_ context.Context, record TrustScoreRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[record.ID]; !exists {
		s.order = append(s.order, record.ID)
	}
	s.records[record.ID] = record
	return nil
}

func (s *InMemoryStore) List(_ context.Context) ([]TrustScoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]TrustScoreRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (TrustScoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.records[id]; ok {
		return record, nil
	}
	return TrustScoreRecord{}, ErrNotFound
}

func (s *InMemoryStore) UpdateAdjustment(_ context.Context, id uuid.UUID, adjustment, trustScore float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	record.AdminAdjustment = adjustment
	record.TrustScore = trustScore
	s.records[id] = record
	return nil
}

func (s *InMemoryStore) Health(_ context.Context) error {
	return nil
}
