package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dshapiro789/NationalParkExplorer/internal/storage/models"
)

// ProfileStore reads and writes the per-user profile row holding the
// favorites list. The row is an opaque read/write target keyed by user id.
type ProfileStore struct {
	client *Client
}

// NewProfileStore creates a profile store backed by the given client.
func NewProfileStore(client *Client) *ProfileStore {
	return &ProfileStore{client: client}
}

// Favorites returns the user's favorite parks. A user with no profile row or
// an empty column yields an empty list.
func (s *ProfileStore) Favorites(ctx context.Context, userID string) ([]models.Park, error) {
	query := url.Values{}
	query.Set("id", "eq."+userID)
	query.Set("select", "favorite_parks")

	body, err := s.client.do(ctx, http.MethodGet, "/rest/v1/profiles", query, nil, "")
	if err != nil {
		return nil, fmt.Errorf("fetching favorites: %w", err)
	}

	var rows []struct {
		FavoriteParks []models.Park `json:"favorite_parks"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decoding favorites: %w", err)
	}
	if len(rows) == 0 || rows[0].FavoriteParks == nil {
		return []models.Park{}, nil
	}
	return rows[0].FavoriteParks, nil
}

// UpdateFavorites replaces the user's favorites list with the given parks,
// stamping the row's updated_at.
func (s *ProfileStore) UpdateFavorites(ctx context.Context, userID string, parks []models.Park) error {
	query := url.Values{}
	query.Set("id", "eq."+userID)

	payload := map[string]any{
		"favorite_parks": parks,
		"updated_at":     time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := s.client.do(ctx, http.MethodPatch, "/rest/v1/profiles", query, payload, ""); err != nil {
		return fmt.Errorf("updating favorites: %w", err)
	}
	return nil
}

// Profile returns the user's full profile row, or nil when none exists.
func (s *ProfileStore) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	query := url.Values{}
	query.Set("id", "eq."+userID)
	query.Set("select", "*")

	body, err := s.client.do(ctx, http.MethodGet, "/rest/v1/profiles", query, nil, "")
	if err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}

	var rows []models.Profile
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
