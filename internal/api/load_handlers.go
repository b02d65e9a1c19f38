package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rflorenc/azure-service-dashboard/internal/models"
)

func (s *Server) ListLoads(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Loads.Snapshots())
}

func (s *Server) GetLoad(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	load := s.Loads.Get(id)
	if load == nil {
		writeError(w, http.StatusNotFound, "load not found")
		return
	}
	writeJSON(w, http.StatusOK, load.Snapshot())
}

// RunReload re-reads the settings document and returns the load record.
// A failed fetch or parse still answers 200: the dashboard falls back to
// its default sections and the record carries the error. The load is not
// cancelled if the client goes away.
func (s *Server) RunReload(w http.ResponseWriter, r *http.Request) {
	load := s.Reloader.Reload(context.WithoutCancel(r.Context()), models.TriggerAPI)
	writeJSON(w, http.StatusOK, load.Snapshot())
}
