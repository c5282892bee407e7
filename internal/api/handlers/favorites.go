package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dshapiro789/NationalParkExplorer/internal/api/middleware"
	"github.com/dshapiro789/NationalParkExplorer/internal/favorites"
	"github.com/dshapiro789/NationalParkExplorer/internal/storage/models"
)

// GetFavorites returns the user's favorite parks.
func GetFavorites(svc *favorites.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "user_id is required")
			return
		}

		parks, err := svc.Favorites(r.Context(), userID)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to load favorites")
			return
		}
		writeJSON(w, parks)
	}
}

// ToggleFavoriteRequest is the body for POST /favorites/toggle.
type ToggleFavoriteRequest struct {
	UserID             string      `json:"user_id"`
	Park               models.Park `json:"park"`
	CurrentlyFavorited bool        `json:"currently_favorited"`
}

// ToggleFavorite adds or removes a favorite. A failed remote write has
// already been rolled back by the service; the error is reported so the UI
// can tell the user without losing state.
func ToggleFavorite(svc *favorites.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ToggleFavoriteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}
		if req.Park.ID == "" {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "park.id is required")
			return
		}

		if err := svc.Toggle(r.Context(), req.UserID, req.Park, req.CurrentlyFavorited); err != nil {
			middleware.WriteError(w, http.StatusBadGateway, middleware.ErrUnavailable, "Favorite could not be saved")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
