package settings

import (
	"context"
	"sync"
	"time"

	"github.com/rflorenc/azure-service-dashboard/internal/metrics"
	"github.com/rflorenc/azure-service-dashboard/internal/models"
)

// Reloader runs loads one at a time, installs each result in the section
// store and records it in the load history.
type Reloader struct {
	mu       sync.Mutex
	loader   *Loader
	sections *models.SectionStore
	loads    *models.LoadStore
}

// NewReloader wires a loader to its stores.
func NewReloader(loader *Loader, sections *models.SectionStore, loads *models.LoadStore) *Reloader {
	return &Reloader{loader: loader, sections: sections, loads: loads}
}

// Reload performs a full load and swaps the result in. A failed load still
// replaces the current snapshot with the default sections.
func (r *Reloader) Reload(ctx context.Context, trigger string) *models.Load {
	r.mu.Lock()
	defer r.mu.Unlock()

	source := r.loader.Fetcher.Source()
	load := r.loads.Create(trigger, source)
	start := time.Now()

	res := r.loader.Load(ctx, load.AppendLog)
	snap := &models.Snapshot{
		Sections: res.Sections,
		Source:   source,
		Fallback: res.Fallback,
	}
	if res.Err != nil {
		snap.Error = res.Err.Error()
	}
	snap = r.sections.Swap(snap)

	outcome := models.LoadCompleted
	if res.Fallback {
		outcome = models.LoadFallback
		load.Fallback(snap, snap.Error)
	} else {
		load.Complete(snap)
	}

	metrics.RecordLoad(trigger, outcome, time.Since(start).Seconds())
	metrics.AddRowsSkipped(len(res.Skipped))
	metrics.SetSnapshot(sectionCounts(snap.Sections), snap.Fallback)
	return load
}

func sectionCounts(sections []models.ServiceSection) []metrics.SectionCounts {
	counts := make([]metrics.SectionCounts, 0, len(sections))
	for _, s := range sections {
		c := metrics.SectionCounts{Section: s.Name}
		for _, r := range s.Resources {
			if r.StatusClass == models.StatusStopped {
				c.Stopped++
			} else {
				c.Running++
			}
		}
		counts = append(counts, c)
	}
	return counts
}
