package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dshapiro789/NationalParkExplorer/internal/api/middleware"
	"github.com/dshapiro789/NationalParkExplorer/internal/maps"
	"github.com/dshapiro789/NationalParkExplorer/internal/storage"
	"github.com/dshapiro789/NationalParkExplorer/internal/storage/models"
)

// MapStatus lists the park's maps with their download state.
func MapStatus(svc *maps.Service, parks *storage.ParkRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		park, ok := lookupPark(w, r, parks)
		if !ok {
			return
		}

		statuses, err := svc.Status(r.Context(), *park)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to load map status")
			return
		}
		writeJSON(w, statuses)
	}
}

// DownloadMap fetches one of the park's maps for offline viewing.
func DownloadMap(svc *maps.Service, parks *storage.ParkRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		park, ok := lookupPark(w, r, parks)
		if !ok {
			return
		}

		err := svc.Download(r.Context(), *park, mux.Vars(r)["mapID"])
		switch {
		case errors.Is(err, maps.ErrOffline):
			middleware.WriteError(w, http.StatusServiceUnavailable, middleware.ErrOffline, "Map downloads require a connection")
		case errors.Is(err, maps.ErrUnknownMap):
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Park does not offer this map")
		case err != nil:
			middleware.WriteError(w, http.StatusBadGateway, middleware.ErrUnavailable, "Map could not be downloaded")
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}
}

// OpenMap serves a downloaded map's bytes.
func OpenMap(svc *maps.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)

		blob, err := svc.Open(r.Context(), vars["id"], vars["mapID"])
		if errors.Is(err, maps.ErrNotDownloaded) {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Map not downloaded")
			return
		}
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to open map")
			return
		}

		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(blob)
	}
}

// DeleteMap removes a downloaded map.
func DeleteMap(svc *maps.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)

		if err := svc.Delete(r.Context(), vars["id"], vars["mapID"]); err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to delete map")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func lookupPark(w http.ResponseWriter, r *http.Request, parks *storage.ParkRepository) (*models.Park, bool) {
	park, err := parks.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to load park")
		return nil, false
	}
	if park == nil {
		middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Park not found")
		return nil, false
	}
	return park, true
}
