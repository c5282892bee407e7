// Package catalog serves park listings by region, fetching from the
// park-data API when online and falling back to the local store otherwise.
package catalog

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dshapiro789/NationalParkExplorer/internal/connectivity"
	"github.com/dshapiro789/NationalParkExplorer/internal/observability"
	"github.com/dshapiro789/NationalParkExplorer/internal/querycache"
	"github.com/dshapiro789/NationalParkExplorer/internal/storage/models"
)

// resultMaxAge is how long a fetched region listing is served without
// consulting the remote API again.
const resultMaxAge = 5 * time.Minute

// Gateway fetches park records from the park-data API.
type Gateway interface {
	ParksByState(ctx context.Context, state string) ([]models.Park, error)
}

// Store is the local park store the service persists to and falls back on.
type Store interface {
	PutParks(ctx context.Context, parks []models.Park) error
	GetByRegion(ctx context.Context, region string) ([]models.Park, error)
}

// Service answers region queries with fresh data when it can and cached
// data when it cannot.
type Service struct {
	gateway Gateway
	store   Store
	monitor *connectivity.Monitor
	cache   *querycache.Cache
	group   singleflight.Group

	mu         sync.Mutex
	lastServed map[string]time.Time
}

// NewService creates a catalog service.
func NewService(gateway Gateway, store Store, monitor *connectivity.Monitor, cache *querycache.Cache) *Service {
	return &Service{
		gateway:    gateway,
		store:      store,
		monitor:    monitor,
		cache:      cache,
		lastServed: make(map[string]time.Time),
	}
}

// ParksForRegion returns the parks for the given region code.
//
// An empty region yields an empty slice without touching any collaborator.
// A result fetched within the last five minutes is returned as is. Otherwise
// the service fetches while online, persisting and returning the fetched
// batch; when offline, or when the fetch fails, it serves whatever the local
// store holds. Failures on the fetch path never reach the caller; only local
// store errors do. Concurrent calls for the same region share one fetch.
func (s *Service) ParksForRegion(ctx context.Context, region string) ([]models.Park, error) {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		return []models.Park{}, nil
	}

	s.noteServed(region)

	if value, ok, fresh := s.cache.Get(cacheKey(region), resultMaxAge); ok && fresh {
		if parks, ok := value.([]models.Park); ok {
			return parks, nil
		}
	}

	v, err, _ := s.group.Do(region, func() (any, error) {
		return s.fetchOrFallback(ctx, region)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Park), nil
}

func (s *Service) fetchOrFallback(ctx context.Context, region string) ([]models.Park, error) {
	if s.monitor.Online() {
		parks, err := s.gateway.ParksByState(ctx, region)
		s.monitor.Report(err)
		if err == nil {
			observability.RemoteFetches.WithLabelValues("parks", "success").Inc()
			if err := s.store.PutParks(ctx, parks); err != nil {
				return nil, err
			}
			s.cache.Set(cacheKey(region), parks)
			return parks, nil
		}
		observability.RemoteFetches.WithLabelValues("parks", "error").Inc()
		log.Printf("Park fetch for %s failed, serving local store: %v", region, err)
	}

	observability.CacheFallbacks.Inc()
	parks, err := s.store.GetByRegion(ctx, region)
	if err != nil {
		return nil, err
	}
	s.cache.Set(cacheKey(region), parks)
	return parks, nil
}

// Revalidate refetches a region regardless of freshness, for the background
// sync job. The result notes whether the local store had to stand in.
func (s *Service) Revalidate(ctx context.Context, region string) models.RegionSyncResult {
	result := models.RegionSyncResult{Region: region, SyncedAt: time.Now().UTC()}

	parks, err := s.gateway.ParksByState(ctx, region)
	s.monitor.Report(err)
	if err != nil {
		observability.RemoteFetches.WithLabelValues("parks", "error").Inc()
		result.Error = err
		if cached, cacheErr := s.store.GetByRegion(ctx, region); cacheErr == nil {
			result.ParksFound = len(cached)
			result.FromCache = true
		}
		return result
	}

	observability.RemoteFetches.WithLabelValues("parks", "success").Inc()
	if err := s.store.PutParks(ctx, parks); err != nil {
		result.Error = err
		return result
	}
	s.cache.Set(cacheKey(region), parks)
	result.ParksFound = len(parks)
	return result
}

// RecentRegions returns the regions served within the given window, for the
// background sync job to keep warm.
func (s *Service) RecentRegions(window time.Duration) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-window)
	regions := make([]string, 0, len(s.lastServed))
	for region, at := range s.lastServed {
		if at.After(cutoff) {
			regions = append(regions, region)
		} else {
			delete(s.lastServed, region)
		}
	}
	return regions
}

func (s *Service) noteServed(region string) {
	s.mu.Lock()
	s.lastServed[region] = time.Now()
	s.mu.Unlock()
}

func cacheKey(region string) string {
	return "parks/" + region
}
