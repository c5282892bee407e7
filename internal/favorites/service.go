// Package favorites manages a user's favorite parks with optimistic
// updates against the remote profile store.
package favorites

import (
	"context"
	"fmt"
	"time"

	"github.com/dshapiro789/NationalParkExplorer/internal/observability"
	"github.com/dshapiro789/NationalParkExplorer/internal/querycache"
	"github.com/dshapiro789/NationalParkExplorer/internal/storage/models"
)

const listMaxAge = 5 * time.Minute

// ProfileStore is the remote store holding each user's favorites list.
type ProfileStore interface {
	Favorites(ctx context.Context, userID string) ([]models.Park, error)
	UpdateFavorites(ctx context.Context, userID string, parks []models.Park) error
}

// Service reads and toggles favorites.
type Service struct {
	profiles ProfileStore
	cache    *querycache.Cache
}

// NewService creates a favorites service.
func NewService(profiles ProfileStore, cache *querycache.Cache) *Service {
	return &Service{profiles: profiles, cache: cache}
}

// Favorites returns the user's favorites, serving a cached list younger
// than five minutes and fetching otherwise. A stale cached list stands in
// when the fetch fails.
func (s *Service) Favorites(ctx context.Context, userID string) ([]models.Park, error) {
	if userID == "" {
		return []models.Park{}, nil
	}

	key := cacheKey(userID)
	value, ok, fresh := s.cache.Get(key, listMaxAge)
	if ok && fresh {
		if parks, ok := value.([]models.Park); ok {
			return parks, nil
		}
	}

	parks, err := s.profiles.Favorites(ctx, userID)
	if err != nil {
		observability.RemoteFetches.WithLabelValues("favorites", "error").Inc()
		if ok {
			if cached, ok := value.([]models.Park); ok {
				return cached, nil
			}
		}
		return nil, fmt.Errorf("loading favorites: %w", err)
	}

	observability.RemoteFetches.WithLabelValues("favorites", "success").Inc()
	s.cache.Set(key, parks)
	return parks, nil
}

// Toggle adds or removes a park from the user's favorites. The cached list
// is updated optimistically before the remote write; a failed write rolls
// the list back and the error is returned for the caller to surface. With
// no signed-in user the call is a no-op.
func (s *Service) Toggle(ctx context.Context, userID string, park models.Park, currentlyFavorited bool) error {
	if userID == "" {
		return nil
	}

	err := querycache.Mutate(ctx, s.cache, cacheKey(userID),
		func(current []models.Park) []models.Park {
			return toggle(current, park, currentlyFavorited)
		},
		func(ctx context.Context, next []models.Park) error {
			return s.profiles.UpdateFavorites(ctx, userID, next)
		})
	if err != nil {
		observability.OptimisticRollbacks.Inc()
		return fmt.Errorf("updating favorites: %w", err)
	}
	return nil
}

// toggle returns the next list. Removal drops every entry with the park's
// id; addition keeps the list free of duplicates even when the caller's
// currentlyFavorited flag is out of date.
func toggle(current []models.Park, park models.Park, currentlyFavorited bool) []models.Park {
	next := make([]models.Park, 0, len(current)+1)
	for _, p := range current {
		if p.ID != park.ID {
			next = append(next, p)
		}
	}
	if !currentlyFavorited {
		next = append(next, park)
	}
	return next
}

func cacheKey(userID string) string {
	return "favorites/" + userID
}
