package nps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshapiro789/NationalParkExplorer/internal/storage/models"
)

const parksResponse = `{"data": [
	{"id": "yell", "fullName": "Yellowstone National Park", "states": "WY,MT,ID", "url": "https://www.nps.gov/yell"},
	{"id": "grte", "fullName": "Grand Teton National Park", "states": "WY", "url": "https://www.nps.gov/grte",
	 "activities": [{"id": "a1", "name": "Day Hiking"}]},
	{"id": "fobu", "fullName": "Fossil Butte National Monument", "states": "WY", "url": "https://www.nps.gov/fobu"}
]}`

func TestParksByStateFiltersAndUppercases(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/parks", r.URL.Path)
		require.Equal(t, "WY", r.URL.Query().Get("stateCode"))
		require.Equal(t, "50", r.URL.Query().Get("limit"))
		require.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		w.Write([]byte(parksResponse))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	parks, err := c.ParksByState(context.Background(), " wy ")
	require.NoError(t, err)

	// Yellowstone spans three states and is dropped.
	require.Len(t, parks, 2)
	require.Equal(t, "grte", parks[0].ID)
	require.Equal(t, "Grand Teton National Park", parks[0].Name)
	require.Equal(t, "fobu", parks[1].ID)
}

func TestParksByStateSynthesizesMapDescriptors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(parksResponse))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	parks, err := c.ParksByState(context.Background(), "WY")
	require.NoError(t, err)

	maps := parks[0].Maps
	require.Len(t, maps, 2)
	require.Equal(t, "visitor-map", maps[0].ID)
	require.Equal(t, "https://www.nps.gov/grte/planyourvisit/maps.htm", maps[0].URL)
	require.Equal(t, "trail-map", maps[1].ID)
	require.Equal(t, "https://www.nps.gov/grte/planyourvisit/trails.htm", maps[1].URL)
}

func TestParksByStateErrorOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad-key")
	_, err := c.ParksByState(context.Background(), "WY")
	require.Error(t, err)
}

func TestActivities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/activities", r.URL.Path)
		w.Write([]byte(`{"data": [{"id": "a1", "name": "Hiking"}, {"id": "a2", "name": "Camping"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	activities, err := c.Activities(context.Background())
	require.NoError(t, err)
	require.Len(t, activities, 2)
	require.Equal(t, "Hiking", activities[0].Name)
}

func TestMatchesActivity(t *testing.T) {
	activities := []models.Activity{
		{ID: "a1", Name: "Backcountry Hiking"},
		{ID: "a2", Name: "Stargazing"},
	}

	require.True(t, MatchesActivity(activities, "hiking"))
	require.True(t, MatchesActivity(activities, "scenic"))
	require.False(t, MatchesActivity(activities, "camping"))

	// Interests outside the alias table match by substring.
	require.True(t, MatchesActivity(activities, "Stargazing"))
	require.False(t, MatchesActivity(activities, "Fishing"))
}
