// Package maps manages park map assets downloaded for offline viewing.
package maps

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dshapiro789/NationalParkExplorer/internal/connectivity"
	"github.com/dshapiro789/NationalParkExplorer/internal/storage/models"
)

const downloadTimeout = 30 * time.Second

var (
	// ErrOffline reports that a download was requested without connectivity.
	ErrOffline = errors.New("cannot download maps while offline")

	// ErrNotDownloaded reports that a map has not been downloaded yet.
	ErrNotDownloaded = errors.New("map not downloaded")

	// ErrUnknownMap reports a map id the park does not offer.
	ErrUnknownMap = errors.New("park does not offer this map")
)

// Store persists downloaded map blobs.
type Store interface {
	Put(ctx context.Context, parkID, mapID string, blob []byte) error
	Get(ctx context.Context, parkID, mapID string) (*models.DownloadedMap, error)
	ListByPark(ctx context.Context, parkID string) ([]models.DownloadedMap, error)
	Delete(ctx context.Context, parkID, mapID string) error
}

// MapStatus pairs a park's map descriptor with its download state.
type MapStatus struct {
	Map          models.ParkMap `json:"map"`
	Downloaded   bool           `json:"downloaded"`
	DownloadedAt time.Time      `json:"downloaded_at,omitempty"`
}

// Service downloads, opens, and deletes offline map assets.
type Service struct {
	httpClient *http.Client
	store      Store
	monitor    *connectivity.Monitor
}

// NewService creates a maps service.
func NewService(store Store, monitor *connectivity.Monitor) *Service {
	return &Service{
		httpClient: &http.Client{Timeout: downloadTimeout},
		store:      store,
		monitor:    monitor,
	}
}

// Download fetches one of the park's maps and stores it for offline use.
// Downloading requires connectivity; a repeat download replaces the stored
// copy.
func (s *Service) Download(ctx context.Context, park models.Park, mapID string) error {
	if !s.monitor.Online() {
		return ErrOffline
	}

	var target *models.ParkMap
	for i := range park.Maps {
		if park.Maps[i].ID == mapID {
			target = &park.Maps[i]
			break
		}
	}
	if target == nil {
		return ErrUnknownMap
	}

	blob, err := s.fetch(ctx, target.URL)
	s.monitor.Report(err)
	if err != nil {
		return fmt.Errorf("downloading map %s: %w", mapID, err)
	}

	if err := s.store.Put(ctx, park.ID, mapID, blob); err != nil {
		return fmt.Errorf("storing map %s: %w", mapID, err)
	}
	return nil
}

// Open returns a downloaded map's bytes, or ErrNotDownloaded.
func (s *Service) Open(ctx context.Context, parkID, mapID string) ([]byte, error) {
	m, err := s.store.Get(ctx, parkID, mapID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotDownloaded
	}
	return m.Blob, nil
}

// Delete removes a downloaded map. Deleting a map that was never
// downloaded is a no-op.
func (s *Service) Delete(ctx context.Context, parkID, mapID string) error {
	return s.store.Delete(ctx, parkID, mapID)
}

// Status reports the download state of every map the park offers.
func (s *Service) Status(ctx context.Context, park models.Park) ([]MapStatus, error) {
	downloaded, err := s.store.ListByPark(ctx, park.ID)
	if err != nil {
		return nil, err
	}

	downloadedAt := make(map[string]time.Time, len(downloaded))
	for _, m := range downloaded {
		downloadedAt[m.MapID] = m.DownloadedAt
	}

	statuses := make([]MapStatus, 0, len(park.Maps))
	for _, m := range park.Maps {
		at, ok := downloadedAt[m.ID]
		statuses = append(statuses, MapStatus{Map: m, Downloaded: ok, DownloadedAt: at})
	}
	return statuses, nil
}

func (s *Service) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("map server returned %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
