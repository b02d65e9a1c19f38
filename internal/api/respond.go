package api

import (
	"encoding/json"
	"net/http"

	xlog "github.com/rflorenc/azure-service-dashboard/internal/log"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		l := xlog.WithComponent("api")
		l.Warn().Err(err).Str("event", "api.encode_failed").Msg("writing response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
