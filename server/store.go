package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/polis-analysis/postmeta/model"
)

// Default cap on retained results. Old extractions only exist so their CSVs
// can be downloaded; once evicted the user just re-runs the extraction.
const defaultStoreCapacity = 256

// ExtractionResult is one finished extraction held for download.
type ExtractionResult struct {
	ID     string
	Post   model.PostRecord
	Author model.AuthorRecord
}

// ResultStore keeps finished extractions in memory, keyed by a generated
// ID. Nothing survives a restart; that is intentional.
type ResultStore struct {
	mu       sync.Mutex
	results  map[string]*ExtractionResult
	order    []string
	capacity int
}

func NewResultStore() *ResultStore {
	return &ResultStore{
		results:  map[string]*ExtractionResult{},
		capacity: defaultStoreCapacity,
	}
}

// Put stores a record pair and returns its download ID. When the store is
// full the oldest result is evicted.
func (s *ResultStore) Put(post model.PostRecord, author model.AuthorRecord) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.results[id] = &ExtractionResult{ID: id, Post: post, Author: author}
	s.order = append(s.order, id)

	for len(s.order) > s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.results, oldest)
	}
	return id
}

func (s *ResultStore) Get(id string) (*ExtractionResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, ok := s.results[id]
	return result, ok
}
