package api

import (
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rflorenc/azure-service-dashboard/internal/models"
)

// sectionResource is a resource flattened out of its section.
type sectionResource struct {
	Section     string `json:"section"`
	SectionType string `json:"section_type"`
	models.ResourceRecord
}

func (s *Server) ListSections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Sections.Sections())
}

func (s *Server) GetSection(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "type")
	sec := s.Sections.Get(strings.ToLower(slug))
	if sec == nil {
		writeError(w, http.StatusNotFound, "section not found")
		return
	}
	writeJSON(w, http.StatusOK, sec)
}

// ListResources returns every resource, optionally filtered by ?env=,
// ?status= (running|stopped) and ?section= (type slug).
func (s *Server) ListResources(w http.ResponseWriter, r *http.Request) {
	env := strings.ToLower(r.URL.Query().Get("env"))
	status := strings.ToLower(r.URL.Query().Get("status"))
	section := strings.ToLower(r.URL.Query().Get("section"))
	if status != "" && status != models.StatusRunning && status != models.StatusStopped {
		writeError(w, http.StatusBadRequest, "status must be running or stopped")
		return
	}

	result := []sectionResource{}
	for _, sec := range s.Sections.Sections() {
		if section != "" && sec.Type != section {
			continue
		}
		for _, res := range sec.Resources {
			if env != "" && res.Environment != env {
				continue
			}
			if status != "" && res.StatusClass != status {
				continue
			}
			result = append(result, sectionResource{Section: sec.Name, SectionType: sec.Type, ResourceRecord: res})
		}
	}
	writeJSON(w, http.StatusOK, result)
}

// GetSnapshot returns metadata about the snapshot being served.
func (s *Server) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := s.Sections.Current()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "settings not loaded yet")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":        snap.ID,
		"loaded_at": snap.LoadedAt,
		"source":    snap.Source,
		"fallback":  snap.Fallback,
		"error":     snap.Error,
		"sections":  len(snap.Sections),
		"resources": models.ResourceCount(snap.Sections),
	})
}

// ServeSettings serves the raw settings document from disk.
func (s *Server) ServeSettings(w http.ResponseWriter, r *http.Request) {
	if _, err := os.Stat(s.SettingsFile); err != nil {
		writeError(w, http.StatusNotFound, "settings file not found")
		return
	}
	if strings.HasSuffix(strings.ToLower(s.SettingsFile), ".csv") {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.Header().Set("Cache-Control", "no-store")
	http.ServeFile(w, r, s.SettingsFile)
}
