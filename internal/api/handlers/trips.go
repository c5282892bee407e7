package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dshapiro789/NationalParkExplorer/internal/api/middleware"
	"github.com/dshapiro789/NationalParkExplorer/internal/storage/models"
	"github.com/dshapiro789/NationalParkExplorer/internal/trips"
)

// ListTrips returns the user's trips with items and checklists.
func ListTrips(svc *trips.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "user_id is required")
			return
		}

		list, err := svc.Trips(r.Context(), userID)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to load trips")
			return
		}
		writeJSON(w, list)
	}
}

// CreateTripRequest is the body for POST /trips.
type CreateTripRequest struct {
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// CreateTrip creates a trip and returns it.
func CreateTrip(svc *trips.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTripRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}
		if req.UserID == "" || req.Title == "" {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "user_id and title are required")
			return
		}

		trip, err := svc.CreateTrip(r.Context(), req.UserID, req.Title, req.StartDate, req.EndDate)
		if err != nil {
			middleware.WriteError(w, http.StatusBadGateway, middleware.ErrUnavailable, "Trip could not be created")
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, trip)
	}
}

// UpdateTrip updates a trip's title and dates.
func UpdateTrip(svc *trips.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var trip models.Trip
		if err := json.NewDecoder(r.Body).Decode(&trip); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}
		trip.ID = mux.Vars(r)["id"]

		if err := svc.UpdateTrip(r.Context(), trip.UserID, trip); err != nil {
			middleware.WriteError(w, http.StatusBadGateway, middleware.ErrUnavailable, "Trip could not be updated")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// DeleteTrip removes a trip.
func DeleteTrip(svc *trips.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		tripID := mux.Vars(r)["id"]

		if err := svc.DeleteTrip(r.Context(), userID, tripID); err != nil {
			middleware.WriteError(w, http.StatusBadGateway, middleware.ErrUnavailable, "Trip could not be deleted")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// AddTripItemRequest is the body for POST /trips/{id}/items.
type AddTripItemRequest struct {
	UserID string `json:"user_id"`
	Day    int    `json:"day"`
	Title  string `json:"title"`
	Notes  string `json:"notes"`
}

// AddTripItem appends an itinerary item to a trip.
func AddTripItem(svc *trips.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddTripItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		item, err := svc.AddItem(r.Context(), req.UserID, mux.Vars(r)["id"], req.Day, req.Title, req.Notes)
		if err != nil {
			middleware.WriteError(w, http.StatusBadGateway, middleware.ErrUnavailable, "Item could not be added")
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, item)
	}
}

// DeleteTripItem removes an itinerary item.
func DeleteTripItem(svc *trips.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")

		if err := svc.DeleteItem(r.Context(), userID, mux.Vars(r)["itemID"]); err != nil {
			middleware.WriteError(w, http.StatusBadGateway, middleware.ErrUnavailable, "Item could not be deleted")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// AddChecklistRequest is the body for POST /trips/{id}/checklists.
type AddChecklistRequest struct {
	UserID string `json:"user_id"`
	Label  string `json:"label"`
}

// AddChecklist appends a checklist entry to a trip.
func AddChecklist(svc *trips.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddChecklistRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		checklist, err := svc.AddChecklist(r.Context(), req.UserID, mux.Vars(r)["id"], req.Label)
		if err != nil {
			middleware.WriteError(w, http.StatusBadGateway, middleware.ErrUnavailable, "Checklist entry could not be added")
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, checklist)
	}
}

// SetChecklistDoneRequest is the body for PUT /trips/{id}/checklists/{checklistID}.
type SetChecklistDoneRequest struct {
	UserID string `json:"user_id"`
	Done   bool   `json:"done"`
}

// SetChecklistDone flips a checklist entry's done flag.
func SetChecklistDone(svc *trips.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SetChecklistDoneRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		vars := mux.Vars(r)
		if err := svc.SetChecklistDone(r.Context(), req.UserID, vars["id"], vars["checklistID"], req.Done); err != nil {
			middleware.WriteError(w, http.StatusBadGateway, middleware.ErrUnavailable, "Checklist entry could not be updated")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// DeleteChecklist removes a checklist entry.
func DeleteChecklist(svc *trips.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")

		if err := svc.DeleteChecklist(r.Context(), userID, mux.Vars(r)["checklistID"]); err != nil {
			middleware.WriteError(w, http.StatusBadGateway, middleware.ErrUnavailable, "Checklist entry could not be deleted")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
