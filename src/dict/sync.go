package dict

import "sync"

// SyncIndex guards a PrefixIndex with a readers-writer lock so it can be shared between goroutines.
type SyncIndex struct {
	mu    sync.RWMutex
	index *PrefixIndex
}

func NewSyncIndex(index *PrefixIndex) *SyncIndex {
	return &SyncIndex{index: index}
}

func (s *SyncIndex) Insert(word string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Insert(word)
}

func (s *SyncIndex) Query(prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Query(prefix)
}

func (s *SyncIndex) Contains(word string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Contains(word)
}

func (s *SyncIndex) HasPrefix(prefix string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.HasPrefix(prefix)
}

func (s *SyncIndex) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Len()
}
