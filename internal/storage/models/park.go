// Package models contains the domain models for the application.
package models

import (
	"strings"
	"time"
)

// Park represents a national park record fetched from the park-data API.
// ID is the cache primary key and is stable across fetches.
type Park struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Activities     []Activity       `json:"activities"`
	States         string           `json:"states"` // comma-joined state codes, e.g. "WY" or "WY,MT"
	Images         []ParkImage      `json:"images"`
	URL            string           `json:"url"`
	Latitude       string           `json:"latitude"`
	Longitude      string           `json:"longitude"`
	OperatingHours []OperatingHours `json:"operatingHours"`
	EntranceFees   []EntranceFee    `json:"entranceFees"`
	EntrancePasses []EntranceFee    `json:"entrancePasses"`
	Accessibility  Accessibility    `json:"accessibility"`
	VisitorCenters []VisitorCenter  `json:"visitorCenters"`
	Trails         []Trail          `json:"trails"`
	Events         []Event          `json:"events"`
	Maps           []ParkMap        `json:"maps"`
}

// InState reports whether the park's comma-joined states field contains
// the given region code.
func (p Park) InState(code string) bool {
	for _, s := range strings.Split(p.States, ",") {
		if strings.EqualFold(strings.TrimSpace(s), code) {
			return true
		}
	}
	return false
}

// Activity is a named activity offered by a park.
type Activity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ParkImage describes one park photo.
type ParkImage struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Title   string `json:"title"`
}

// ParkMap describes a downloadable map asset offered by a park.
type ParkMap struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Type        string `json:"type"` // visitor, trail, campground, overview
	FileSize    string `json:"fileSize"`
	LastUpdated string `json:"lastUpdated"`
	Description string `json:"description,omitempty"`
}

// OperatingHours describes one set of park operating hours.
type OperatingHours struct {
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	StandardHours WeekHours        `json:"standardHours"`
	Exceptions    []HoursException `json:"exceptions"`
}

// WeekHours holds opening hours per weekday.
type WeekHours struct {
	Sunday    string `json:"sunday"`
	Monday    string `json:"monday"`
	Tuesday   string `json:"tuesday"`
	Wednesday string `json:"wednesday"`
	Thursday  string `json:"thursday"`
	Friday    string `json:"friday"`
	Saturday  string `json:"saturday"`
}

// HoursException is a dated deviation from the standard hours.
type HoursException struct {
	Name      string    `json:"name"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Hours     WeekHours `json:"hours"`
}

// EntranceFee describes a park entrance fee or pass.
type EntranceFee struct {
	Cost        string `json:"cost"`
	Description string `json:"description"`
	Title       string `json:"title"`
}

// Accessibility collects park accessibility information.
type Accessibility struct {
	WheelchairAccess   string               `json:"wheelchairAccess"`
	InternetInfo       string               `json:"internetInfo"`
	CellPhoneInfo      string               `json:"cellPhoneInfo"`
	RVInfo             string               `json:"rvInfo"`
	TrailAccessibility []TrailAccessibility `json:"trailAccessibility"`
}

// TrailAccessibility describes accessibility of a single trail.
type TrailAccessibility struct {
	TrailName             string   `json:"trailName"`
	WheelchairAccessible  bool     `json:"wheelchairAccessible"`
	AccessibilityFeatures []string `json:"accessibilityFeatures"`
	Restrictions          []string `json:"restrictions"`
}

// VisitorCenter describes a park visitor center.
type VisitorCenter struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Latitude    string `json:"latitude"`
	Longitude   string `json:"longitude"`
	URL         string `json:"url"`
}

// Trail describes a hiking trail within a park.
type Trail struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Length     float64 `json:"length"`
	Difficulty string  `json:"difficulty"`
}

// Event describes a scheduled park event.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location,omitempty"`
}

// DownloadedMap is a map asset stored for offline viewing. The (ParkID, MapID)
// pair is the composite primary key; at most one entry exists per pair.
type DownloadedMap struct {
	ParkID       string    `json:"park_id"`
	MapID        string    `json:"map_id"`
	Blob         []byte    `json:"-"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

// RegionSyncResult contains the results of revalidating one region's parks.
type RegionSyncResult struct {
	Region     string    `json:"region"`
	ParksFound int       `json:"parks_found"`
	FromCache  bool      `json:"from_cache"`
	Error      error     `json:"-"`
	SyncedAt   time.Time `json:"synced_at"`
}
