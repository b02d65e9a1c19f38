package models

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Load triggers.
const (
	TriggerStartup = "startup"
	TriggerWatch   = "watch"
	TriggerAPI     = "api"
)

// Load statuses.
const (
	LoadRunning   = "running"
	LoadCompleted = "completed"
	LoadFallback  = "fallback"
)

// Load records one pass of the settings loader.
type Load struct {
	ID         string     `json:"id"`
	Trigger    string     `json:"trigger"`
	Source     string     `json:"source"`
	Status     string     `json:"status"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Sections   int        `json:"sections"`
	Resources  int        `json:"resources"`
	SnapshotID string     `json:"snapshot_id,omitempty"`
	Error      string     `json:"error,omitempty"`
	Output     []string   `json:"output"`
	mu         sync.Mutex
}

// AppendLog adds a diagnostic line to the load output.
func (l *Load) AppendLog(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Output = append(l.Output, line)
}

// Snapshot returns a copy of the load that is safe to read or encode
// while the load is still running.
func (l *Load) Snapshot() *Load {
	l.mu.Lock()
	defer l.mu.Unlock()
	c := &Load{
		ID:         l.ID,
		Trigger:    l.Trigger,
		Source:     l.Source,
		Status:     l.Status,
		StartedAt:  l.StartedAt,
		Sections:   l.Sections,
		Resources:  l.Resources,
		SnapshotID: l.SnapshotID,
		Error:      l.Error,
		Output:     make([]string, len(l.Output)),
	}
	copy(c.Output, l.Output)
	if l.FinishedAt != nil {
		finished := *l.FinishedAt
		c.FinishedAt = &finished
	}
	return c
}

// Complete marks the load as finished with a parsed snapshot.
func (l *Load) Complete(snap *Snapshot) {
	l.finish(LoadCompleted, snap, "")
}

// Fallback marks the load as finished with the default sections.
func (l *Load) Fallback(snap *Snapshot, err string) {
	l.finish(LoadFallback, snap, err)
}

func (l *Load) finish(status string, snap *Snapshot, err string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Status = status
	l.Error = err
	if snap != nil {
		l.SnapshotID = snap.ID
		l.Sections = len(snap.Sections)
		l.Resources = ResourceCount(snap.Sections)
	}
	now := time.Now()
	l.FinishedAt = &now
}

// LoadStore is an in-memory thread-safe history of loads.
type LoadStore struct {
	mu    sync.RWMutex
	loads map[string]*Load
	limit int
}

// NewLoadStore creates an empty load store that keeps at most limit entries.
// A limit <= 0 keeps everything.
func NewLoadStore(limit int) *LoadStore {
	return &LoadStore{loads: make(map[string]*Load), limit: limit}
}

// Create adds a new running load, assigning it a UUID.
func (s *LoadStore) Create(trigger, source string) *Load {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := &Load{
		ID:        uuid.New().String(),
		Trigger:   trigger,
		Source:    source,
		Status:    LoadRunning,
		StartedAt: time.Now(),
		Output:    []string{},
	}
	s.loads[l.ID] = l
	s.evictLocked()
	return l
}

// Get returns a load by ID.
func (s *LoadStore) Get(id string) *Load {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loads[id]
}

// List returns all loads, most recent first.
func (s *LoadStore) List() []*Load {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked()
}

// Snapshots returns copies of all loads, most recent first.
func (s *LoadStore) Snapshots() []*Load {
	loads := s.List()
	result := make([]*Load, len(loads))
	for i, l := range loads {
		result[i] = l.Snapshot()
	}
	return result
}

func (s *LoadStore) sortedLocked() []*Load {
	result := make([]*Load, 0, len(s.loads))
	for _, l := range s.loads {
		result = append(result, l)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartedAt.After(result[j].StartedAt)
	})
	return result
}

func (s *LoadStore) evictLocked() {
	if s.limit <= 0 || len(s.loads) <= s.limit {
		return
	}
	sorted := s.sortedLocked()
	for _, l := range sorted[s.limit:] {
		delete(s.loads, l.ID)
	}
}
