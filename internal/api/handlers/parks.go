package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dshapiro789/NationalParkExplorer/internal/api/middleware"
	"github.com/dshapiro789/NationalParkExplorer/internal/catalog"
	"github.com/dshapiro789/NationalParkExplorer/internal/nps"
	"github.com/dshapiro789/NationalParkExplorer/internal/storage"
	"github.com/dshapiro789/NationalParkExplorer/internal/storage/models"
)

// ListParks returns the parks for a state, optionally filtered by activity.
func ListParks(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := r.URL.Query().Get("state")

		parks, err := svc.ParksForRegion(r.Context(), state)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to load parks")
			return
		}

		if activity := r.URL.Query().Get("activity"); activity != "" {
			filtered := []models.Park{}
			for _, p := range parks {
				if nps.MatchesActivity(p.Activities, activity) {
					filtered = append(filtered, p)
				}
			}
			parks = filtered
		}

		writeJSON(w, parks)
	}
}

// GetPark returns one park from the local store.
func GetPark(parks *storage.ParkRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		park, err := parks.GetByID(r.Context(), id)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to load park")
			return
		}
		if park == nil {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Park not found")
			return
		}
		writeJSON(w, park)
	}
}

// ListActivities lists the activity names known to the park-data API.
func ListActivities(client *nps.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activities, err := client.Activities(r.Context())
		if err != nil {
			middleware.WriteError(w, http.StatusServiceUnavailable, middleware.ErrUnavailable, "Failed to load activities")
			return
		}
		writeJSON(w, activities)
	}
}
