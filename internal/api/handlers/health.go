// Package handlers contains the HTTP handlers for the REST API.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dshapiro789/NationalParkExplorer/internal/api/middleware"
	"github.com/dshapiro789/NationalParkExplorer/internal/connectivity"
	"github.com/dshapiro789/NationalParkExplorer/internal/storage"
	"github.com/dshapiro789/NationalParkExplorer/internal/websocket"
)

// HealthCheck returns a handler reporting process and database liveness.
func HealthCheck(db *storage.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			middleware.WriteError(w, http.StatusServiceUnavailable, middleware.ErrUnavailable, "Database unreachable")
			return
		}
		writeJSON(w, map[string]any{
			"status": "ok",
			"time":   time.Now().UTC(),
		})
	}
}

// Status reports connectivity and connection counts.
func Status(db *storage.DB, hub *websocket.Hub, monitor *connectivity.Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"online":            monitor.Online(),
			"websocket_clients": hub.ClientCount(),
			"database":          db.Path(),
		})
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
