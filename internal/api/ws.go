package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// wsPollInterval is how often the stream checks for a new snapshot.
const wsPollInterval = 500 * time.Millisecond

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamSections pushes the section list over WebSocket on connect and
// again after every reload.
func (s *Server) StreamSections(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// Reads only serve to notice the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	var sent uint64
	ticker := time.NewTicker(wsPollInterval)
	defer ticker.Stop()

	for {
		if v := s.Sections.Version(); v != sent {
			if err := conn.WriteJSON(s.Sections.Sections()); err != nil {
				return
			}
			sent = v
		}
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
