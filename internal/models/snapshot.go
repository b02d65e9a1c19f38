package models

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Snapshot is the outcome of one load cycle.
type Snapshot struct {
	ID       string           `json:"id"`
	Sections []ServiceSection `json:"sections"`
	LoadedAt time.Time        `json:"loaded_at"`
	Source   string           `json:"source"`
	Fallback bool             `json:"fallback"`
	Error    string           `json:"error,omitempty"`
}

// SectionStore is an in-memory thread-safe holder for the current snapshot.
// Snapshots are replaced wholesale and never mutated in place.
type SectionStore struct {
	mu      sync.RWMutex
	current *Snapshot
	version uint64
}

// NewSectionStore creates an empty section store.
func NewSectionStore() *SectionStore {
	return &SectionStore{}
}

// Swap installs a new snapshot, assigning it a UUID, and returns it.
func (s *SectionStore) Swap(snap *Snapshot) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap.ID = uuid.New().String()
	if snap.LoadedAt.IsZero() {
		snap.LoadedAt = time.Now()
	}
	if snap.Sections == nil {
		snap.Sections = []ServiceSection{}
	}
	s.current = snap
	s.version++
	return snap
}

// Current returns the installed snapshot, or nil before the first load.
func (s *SectionStore) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Version increments on every Swap. Zero means nothing has been loaded.
func (s *SectionStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Sections returns the current sections, never nil.
func (s *SectionStore) Sections() []ServiceSection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return []ServiceSection{}
	}
	return s.current.Sections
}

// Get returns the section with the given type slug, or nil if not found.
func (s *SectionStore) Get(slug string) *ServiceSection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	for i := range s.current.Sections {
		if s.current.Sections[i].Type == slug {
			sec := s.current.Sections[i]
			return &sec
		}
	}
	return nil
}
