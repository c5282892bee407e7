package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dshapiro789/NationalParkExplorer/internal/storage/models"
)

// TripStore reads and writes trips and their items and checklists, laid out as
// three relational collections keyed by user and trip ids.
type TripStore struct {
	client *Client
}

// NewTripStore creates a trip store backed by the given client.
func NewTripStore(client *Client) *TripStore {
	return &TripStore{client: client}
}

// Trips returns the user's trips with their items and checklists embedded,
// ordered by start date.
func (s *TripStore) Trips(ctx context.Context, userID string) ([]models.Trip, error) {
	query := url.Values{}
	query.Set("user_id", "eq."+userID)
	query.Set("select", "*,trip_items(*),trip_checklists(*)")
	query.Set("order", "start_date.asc")

	body, err := s.client.do(ctx, http.MethodGet, "/rest/v1/trips", query, nil, "")
	if err != nil {
		return nil, fmt.Errorf("fetching trips: %w", err)
	}

	trips := []models.Trip{}
	if err := json.Unmarshal(body, &trips); err != nil {
		return nil, fmt.Errorf("decoding trips: %w", err)
	}
	return trips, nil
}

// CreateTrip inserts a new trip row.
func (s *TripStore) CreateTrip(ctx context.Context, trip models.Trip) error {
	payload := map[string]any{
		"id":         trip.ID,
		"user_id":    trip.UserID,
		"title":      trip.Title,
		"start_date": trip.StartDate,
		"end_date":   trip.EndDate,
	}
	if _, err := s.client.do(ctx, http.MethodPost, "/rest/v1/trips", nil, payload, ""); err != nil {
		return fmt.Errorf("creating trip: %w", err)
	}
	return nil
}

// UpdateTrip updates a trip's title and dates.
func (s *TripStore) UpdateTrip(ctx context.Context, trip models.Trip) error {
	query := url.Values{}
	query.Set("id", "eq."+trip.ID)

	payload := map[string]any{
		"title":      trip.Title,
		"start_date": trip.StartDate,
		"end_date":   trip.EndDate,
	}
	if _, err := s.client.do(ctx, http.MethodPatch, "/rest/v1/trips", query, payload, ""); err != nil {
		return fmt.Errorf("updating trip: %w", err)
	}
	return nil
}

// DeleteTrip removes a trip row; the backend cascades items and checklists.
func (s *TripStore) DeleteTrip(ctx context.Context, tripID string) error {
	query := url.Values{}
	query.Set("id", "eq."+tripID)

	if _, err := s.client.do(ctx, http.MethodDelete, "/rest/v1/trips", query, nil, ""); err != nil {
		return fmt.Errorf("deleting trip: %w", err)
	}
	return nil
}

// AddItem inserts a trip itinerary item.
func (s *TripStore) AddItem(ctx context.Context, item models.TripItem) error {
	if _, err := s.client.do(ctx, http.MethodPost, "/rest/v1/trip_items", nil, item, ""); err != nil {
		return fmt.Errorf("adding trip item: %w", err)
	}
	return nil
}

// UpdateItem updates a trip itinerary item.
func (s *TripStore) UpdateItem(ctx context.Context, item models.TripItem) error {
	query := url.Values{}
	query.Set("id", "eq."+item.ID)

	if _, err := s.client.do(ctx, http.MethodPatch, "/rest/v1/trip_items", query, item, ""); err != nil {
		return fmt.Errorf("updating trip item: %w", err)
	}
	return nil
}

// DeleteItem removes a trip itinerary item.
func (s *TripStore) DeleteItem(ctx context.Context, itemID string) error {
	query := url.Values{}
	query.Set("id", "eq."+itemID)

	if _, err := s.client.do(ctx, http.MethodDelete, "/rest/v1/trip_items", query, nil, ""); err != nil {
		return fmt.Errorf("deleting trip item: %w", err)
	}
	return nil
}

// AddChecklist inserts a trip checklist entry.
func (s *TripStore) AddChecklist(ctx context.Context, checklist models.TripChecklist) error {
	if _, err := s.client.do(ctx, http.MethodPost, "/rest/v1/trip_checklists", nil, checklist, ""); err != nil {
		return fmt.Errorf("adding checklist: %w", err)
	}
	return nil
}

// UpdateChecklist updates a trip checklist entry.
func (s *TripStore) UpdateChecklist(ctx context.Context, checklist models.TripChecklist) error {
	query := url.Values{}
	query.Set("id", "eq."+checklist.ID)

	if _, err := s.client.do(ctx, http.MethodPatch, "/rest/v1/trip_checklists", query, checklist, ""); err != nil {
		return fmt.Errorf("updating checklist: %w", err)
	}
	return nil
}

// DeleteChecklist removes a trip checklist entry.
func (s *TripStore) DeleteChecklist(ctx context.Context, checklistID string) error {
	query := url.Values{}
	query.Set("id", "eq."+checklistID)

	if _, err := s.client.do(ctx, http.MethodDelete, "/rest/v1/trip_checklists", query, nil, ""); err != nil {
		return fmt.Errorf("deleting checklist: %w", err)
	}
	return nil
}
