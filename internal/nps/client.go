// Package nps fetches park records from the National Park Service API.
package nps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dshapiro789/NationalParkExplorer/internal/storage/models"
)

const requestTimeout = 10 * time.Second

// activityAliases maps a user-facing interest to the activity names the park
// records actually use for it.
var activityAliases = map[string][]string{
	"hiking": {
		"Hiking",
		"Walking",
		"Day Hiking",
		"Backcountry Hiking",
		"Front-Country Hiking",
		"Trail Hiking",
		"Nature Trails",
		"Hiking - Front-Country",
		"Hiking - Backcountry",
	},
	"camping": {
		"Camping",
		"Backcountry Camping",
		"Car or Front Country Camping",
		"RV Camping",
		"Tent Camping",
		"Group Camping",
		"Primitive Camping",
	},
	"scenic": {
		"Scenic Driving",
		"Photography",
		"Scenic Views",
		"Sunset Viewing",
		"Landscape Photography",
		"Stargazing",
		"Sunrise Viewing",
		"Vista Points",
		"Overlooks",
		"Auto Touring",
		"Astronomy",
	},
}

// Client talks to the park-data API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a park-data client for the API at baseURL.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// apiPark is the wire shape of one park record.
type apiPark struct {
	ID             string                  `json:"id"`
	FullName       string                  `json:"fullName"`
	Description    string                  `json:"description"`
	Activities     []models.Activity       `json:"activities"`
	States         string                  `json:"states"`
	Images         []models.ParkImage      `json:"images"`
	URL            string                  `json:"url"`
	Latitude       string                  `json:"latitude"`
	Longitude      string                  `json:"longitude"`
	OperatingHours []models.OperatingHours `json:"operatingHours"`
	EntranceFees   []models.EntranceFee    `json:"entranceFees"`
	EntrancePasses []models.EntranceFee    `json:"entrancePasses"`
	Accessibility  struct {
		WheelchairAccess string `json:"wheelchairAccess"`
		InternetInfo     string `json:"internetInfo"`
		CellPhoneInfo    string `json:"cellPhoneInfo"`
		RVInfo           string `json:"rvInfo"`
	} `json:"accessibility"`
	VisitorCenters []models.VisitorCenter `json:"visitorCenters"`
}

// ParksByState returns the parks located entirely within the given state.
// The code is uppercased before the request; parks spanning multiple states
// are dropped so a region query never returns a park it shares with a
// neighboring region.
func (c *Client) ParksByState(ctx context.Context, state string) ([]models.Park, error) {
	state = strings.ToUpper(strings.TrimSpace(state))

	query := url.Values{}
	query.Set("stateCode", state)
	query.Set("limit", "50")

	var payload struct {
		Data []apiPark `json:"data"`
	}
	if err := c.get(ctx, "/parks", query, &payload); err != nil {
		return nil, fmt.Errorf("fetching parks for %s: %w", state, err)
	}

	parks := []models.Park{}
	for _, p := range payload.Data {
		states := strings.Split(p.States, ",")
		if len(states) != 1 || strings.TrimSpace(states[0]) != state {
			continue
		}
		parks = append(parks, mapPark(p))
	}
	return parks, nil
}

// Activities lists every activity name known to the API.
func (c *Client) Activities(ctx context.Context) ([]models.Activity, error) {
	var payload struct {
		Data []models.Activity `json:"data"`
	}
	if err := c.get(ctx, "/activities", nil, &payload); err != nil {
		return nil, fmt.Errorf("fetching activities: %w", err)
	}
	return payload.Data, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("park data request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("park data API returned %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding park data response: %w", err)
	}
	return nil
}

func mapPark(p apiPark) models.Park {
	park := models.Park{
		ID:             p.ID,
		Name:           p.FullName,
		Description:    p.Description,
		Activities:     p.Activities,
		States:         p.States,
		Images:         p.Images,
		URL:            p.URL,
		Latitude:       p.Latitude,
		Longitude:      p.Longitude,
		OperatingHours: p.OperatingHours,
		EntranceFees:   p.EntranceFees,
		EntrancePasses: p.EntrancePasses,
		Accessibility: models.Accessibility{
			WheelchairAccess:   p.Accessibility.WheelchairAccess,
			InternetInfo:       p.Accessibility.InternetInfo,
			CellPhoneInfo:      p.Accessibility.CellPhoneInfo,
			RVInfo:             p.Accessibility.RVInfo,
			TrailAccessibility: []models.TrailAccessibility{},
		},
		VisitorCenters: p.VisitorCenters,
		Trails:         []models.Trail{},
		Events:         []models.Event{},
	}
	if park.Activities == nil {
		park.Activities = []models.Activity{}
	}
	if park.Images == nil {
		park.Images = []models.ParkImage{}
	}

	// The API has no map listing endpoint, so each park gets descriptors
	// pointing at its visitor and trail pages.
	now := time.Now().UTC().Format(time.RFC3339)
	park.Maps = []models.ParkMap{
		{
			ID:          "visitor-map",
			Title:       "Visitor Guide Map",
			Type:        "visitor",
			URL:         p.URL + "/planyourvisit/maps.htm",
			FileSize:    "2.5 MB",
			LastUpdated: now,
			Description: "Complete visitor guide with points of interest and facilities",
		},
		{
			ID:          "trail-map",
			Title:       "Trail System Map",
			Type:        "trail",
			URL:         p.URL + "/planyourvisit/trails.htm",
			FileSize:    "3.8 MB",
			LastUpdated: now,
			Description: "Detailed trail map with distances and difficulty ratings",
		},
	}
	return park
}

// MatchesActivity reports whether any of the park's activities matches the
// given interest, consulting the alias table for the broad categories and
// falling back to a substring match on the interest itself.
func MatchesActivity(activities []models.Activity, interest string) bool {
	aliases, ok := activityAliases[strings.ToLower(interest)]
	if !ok {
		aliases = []string{interest}
	}
	for _, alias := range aliases {
		for _, activity := range activities {
			if strings.Contains(strings.ToLower(activity.Name), strings.ToLower(alias)) {
				return true
			}
		}
	}
	return false
}
