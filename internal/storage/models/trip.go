package models

import "time"

// Trip is a user-planned visit persisted in the remote database.
type Trip struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Title      string          `json:"title"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	Items      []TripItem      `json:"trip_items,omitempty"`
	Checklists []TripChecklist `json:"trip_checklists,omitempty"`
	CreatedAt  time.Time       `json:"created_at,omitempty"`
	UpdatedAt  time.Time       `json:"updated_at,omitempty"`
}

// TripItem is a single itinerary entry belonging to a trip.
type TripItem struct {
	ID     string `json:"id"`
	TripID string `json:"trip_id"`
	Day    int    `json:"day"`
	Title  string `json:"title"`
	Notes  string `json:"notes,omitempty"`
}

// TripChecklist is a packing or preparation item belonging to a trip.
type TripChecklist struct {
	ID     string `json:"id"`
	TripID string `json:"trip_id"`
	Label  string `json:"label"`
	Done   bool   `json:"done"`
}

// Profile is the per-user row in the remote database. FavoriteParks is an
// ordered list of park snapshots with no duplicate park id.
type Profile struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	FullName      string    `json:"full_name"`
	FavoriteParks []Park    `json:"favorite_parks"`
	UpdatedAt     time.Time `json:"updated_at"`
}
