package maps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dshapiro789/NationalParkExplorer/internal/connectivity"
	"github.com/dshapiro789/NationalParkExplorer/internal/storage/models"
)

type memStore struct {
	maps map[string]models.DownloadedMap
}

func newMemStore() *memStore {
	return &memStore{maps: make(map[string]models.DownloadedMap)}
}

func key(parkID, mapID string) string { return parkID + "/" + mapID }

func (s *memStore) Put(ctx context.Context, parkID, mapID string, blob []byte) error {
	s.maps[key(parkID, mapID)] = models.DownloadedMap{
		ParkID: parkID, MapID: mapID, Blob: blob, DownloadedAt: time.Now(),
	}
	return nil
}

func (s *memStore) Get(ctx context.Context, parkID, mapID string) (*models.DownloadedMap, error) {
	m, ok := s.maps[key(parkID, mapID)]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (s *memStore) ListByPark(ctx context.Context, parkID string) ([]models.DownloadedMap, error) {
	out := []models.DownloadedMap{}
	for _, m := range s.maps {
		if m.ParkID == parkID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memStore) Delete(ctx context.Context, parkID, mapID string) error {
	delete(s.maps, key(parkID, mapID))
	return nil
}

func monitor(online bool) *connectivity.Monitor {
	m := connectivity.NewMonitor()
	m.SetOnline(online)
	return m
}

func parkWithMap(url string) models.Park {
	return models.Park{
		ID: "grte",
		Maps: []models.ParkMap{
			{ID: "visitor-map", Title: "Visitor Guide Map", URL: url},
			{ID: "trail-map", Title: "Trail System Map", URL: url + "/trails"},
		},
	}
}

func TestDownloadAndOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("map-bytes"))
	}))
	defer srv.Close()

	store := newMemStore()
	svc := NewService(store, monitor(true))
	park := parkWithMap(srv.URL)

	require.NoError(t, svc.Download(context.Background(), park, "visitor-map"))

	blob, err := svc.Open(context.Background(), "grte", "visitor-map")
	require.NoError(t, err)
	require.Equal(t, []byte("map-bytes"), blob)
}

func TestDownloadRejectedWhileOffline(t *testing.T) {
	svc := NewService(newMemStore(), monitor(false))

	err := svc.Download(context.Background(), parkWithMap("https://example.com"), "visitor-map")
	require.ErrorIs(t, err, ErrOffline)
}

func TestDownloadUnknownMap(t *testing.T) {
	svc := NewService(newMemStore(), monitor(true))

	err := svc.Download(context.Background(), parkWithMap("https://example.com"), "nope")
	require.ErrorIs(t, err, ErrUnknownMap)
}

func TestOpenNeverDownloaded(t *testing.T) {
	svc := NewService(newMemStore(), monitor(true))

	_, err := svc.Open(context.Background(), "grte", "visitor-map")
	require.ErrorIs(t, err, ErrNotDownloaded)
}

func TestDeleteIsIdempotent(t *testing.T) {
	svc := NewService(newMemStore(), monitor(true))

	require.NoError(t, svc.Delete(context.Background(), "grte", "visitor-map"))
	require.NoError(t, svc.Delete(context.Background(), "grte", "visitor-map"))
}

func TestStatusReportsDownloadState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("map-bytes"))
	}))
	defer srv.Close()

	store := newMemStore()
	svc := NewService(store, monitor(true))
	park := parkWithMap(srv.URL)

	require.NoError(t, svc.Download(context.Background(), park, "trail-map"))

	statuses, err := svc.Status(context.Background(), park)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	require.False(t, statuses[0].Downloaded)
	require.True(t, statuses[1].Downloaded)
	require.False(t, statuses[1].DownloadedAt.IsZero())
}
