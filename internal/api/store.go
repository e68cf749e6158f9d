package api

import (
	"sort"
	"sync"
)

// ModelStore keeps built model summaries in memory, keyed by id.  The
// store owns its own locking; model construction itself is single
// threaded per request.
type ModelStore struct {
	mu     sync.Mutex
	models map[string]*ModelSummary
}

func NewModelStore() *ModelStore {
	return &ModelStore{models: make(map[string]*ModelSummary)}
}

func (s *ModelStore) Put(summary *ModelSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models[summary.ID] = summary
}

func (s *ModelStore) Get(id string) (*ModelSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	summary, ok := s.models[id]
	return summary, ok
}

func (s *ModelStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.models[id]; !ok {
		return false
	}
	delete(s.models, id)
	return true
}

// List returns all stored summaries sorted by id for stable output.
func (s *ModelStore) List() []*ModelSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*ModelSummary, 0, len(s.models))
	for _, summary := range s.models {
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
