// Package trips manages a user's planned trips, itinerary items, and
// packing checklists stored in the remote database.
package trips

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dshapiro789/NationalParkExplorer/internal/observability"
	"github.com/dshapiro789/NationalParkExplorer/internal/querycache"
	"github.com/dshapiro789/NationalParkExplorer/internal/storage/models"
)

const listMaxAge = 5 * time.Minute

// Store is the remote collection the service persists trips to.
type Store interface {
	Trips(ctx context.Context, userID string) ([]models.Trip, error)
	CreateTrip(ctx context.Context, trip models.Trip) error
	UpdateTrip(ctx context.Context, trip models.Trip) error
	DeleteTrip(ctx context.Context, tripID string) error
	AddItem(ctx context.Context, item models.TripItem) error
	UpdateItem(ctx context.Context, item models.TripItem) error
	DeleteItem(ctx context.Context, itemID string) error
	AddChecklist(ctx context.Context, checklist models.TripChecklist) error
	UpdateChecklist(ctx context.Context, checklist models.TripChecklist) error
	DeleteChecklist(ctx context.Context, checklistID string) error
}

// Service reads and mutates trips, invalidating the user's cached list on
// every successful write so the next read refetches.
type Service struct {
	store Store
	cache *querycache.Cache
}

// NewService creates a trips service.
func NewService(store Store, cache *querycache.Cache) *Service {
	return &Service{store: store, cache: cache}
}

// Trips returns the user's trips, cached for five minutes.
func (s *Service) Trips(ctx context.Context, userID string) ([]models.Trip, error) {
	if userID == "" {
		return []models.Trip{}, nil
	}

	key := cacheKey(userID)
	value, ok, fresh := s.cache.Get(key, listMaxAge)
	if ok && fresh {
		if trips, ok := value.([]models.Trip); ok {
			return trips, nil
		}
	}

	trips, err := s.store.Trips(ctx, userID)
	if err != nil {
		observability.RemoteFetches.WithLabelValues("trips", "error").Inc()
		if ok {
			if cached, ok := value.([]models.Trip); ok {
				return cached, nil
			}
		}
		return nil, fmt.Errorf("loading trips: %w", err)
	}

	observability.RemoteFetches.WithLabelValues("trips", "success").Inc()
	s.cache.Set(key, trips)
	return trips, nil
}

// CreateTrip inserts a new trip for the user and returns it.
func (s *Service) CreateTrip(ctx context.Context, userID, title, startDate, endDate string) (*models.Trip, error) {
	trip := models.Trip{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if err := s.store.CreateTrip(ctx, trip); err != nil {
		return nil, fmt.Errorf("creating trip: %w", err)
	}
	s.cache.Invalidate(cacheKey(userID))
	return &trip, nil
}

// UpdateTrip updates a trip's title and dates.
func (s *Service) UpdateTrip(ctx context.Context, userID string, trip models.Trip) error {
	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		return fmt.Errorf("updating trip: %w", err)
	}
	s.cache.Invalidate(cacheKey(userID))
	return nil
}

// DeleteTrip removes a trip; the backend cascades its items and checklists.
func (s *Service) DeleteTrip(ctx context.Context, userID, tripID string) error {
	if err := s.store.DeleteTrip(ctx, tripID); err != nil {
		return fmt.Errorf("deleting trip: %w", err)
	}
	s.cache.Invalidate(cacheKey(userID))
	return nil
}

// AddItem appends an itinerary item to a trip and returns it.
func (s *Service) AddItem(ctx context.Context, userID, tripID string, day int, title, notes string) (*models.TripItem, error) {
	item := models.TripItem{
		ID:     uuid.NewString(),
		TripID: tripID,
		Day:    day,
		Title:  title,
		Notes:  notes,
	}
	if err := s.store.AddItem(ctx, item); err != nil {
		return nil, fmt.Errorf("adding trip item: %w", err)
	}
	s.cache.Invalidate(cacheKey(userID))
	return &item, nil
}

// UpdateItem updates an itinerary item.
func (s *Service) UpdateItem(ctx context.Context, userID string, item models.TripItem) error {
	if err := s.store.UpdateItem(ctx, item); err != nil {
		return fmt.Errorf("updating trip item: %w", err)
	}
	s.cache.Invalidate(cacheKey(userID))
	return nil
}

// DeleteItem removes an itinerary item.
func (s *Service) DeleteItem(ctx context.Context, userID, itemID string) error {
	if err := s.store.DeleteItem(ctx, itemID); err != nil {
		return fmt.Errorf("deleting trip item: %w", err)
	}
	s.cache.Invalidate(cacheKey(userID))
	return nil
}

// AddChecklist appends a checklist entry to a trip and returns it.
func (s *Service) AddChecklist(ctx context.Context, userID, tripID, label string) (*models.TripChecklist, error) {
	checklist := models.TripChecklist{
		ID:     uuid.NewString(),
		TripID: tripID,
		Label:  label,
	}
	if err := s.store.AddChecklist(ctx, checklist); err != nil {
		return nil, fmt.Errorf("adding checklist: %w", err)
	}
	s.cache.Invalidate(cacheKey(userID))
	return &checklist, nil
}

// DeleteChecklist removes a checklist entry.
func (s *Service) DeleteChecklist(ctx context.Context, userID, checklistID string) error {
	if err := s.store.DeleteChecklist(ctx, checklistID); err != nil {
		return fmt.Errorf("deleting checklist: %w", err)
	}
	s.cache.Invalidate(cacheKey(userID))
	return nil
}

// SetChecklistDone flips a checklist entry's done flag. The cached trip
// list is updated optimistically so the checkbox responds immediately;
// a failed write restores the previous state.
func (s *Service) SetChecklistDone(ctx context.Context, userID, tripID, checklistID string, done bool) error {
	err := querycache.Mutate(ctx, s.cache, cacheKey(userID),
		func(current []models.Trip) []models.Trip {
			next := make([]models.Trip, len(current))
			copy(next, current)
			for i := range next {
				if next[i].ID != tripID {
					continue
				}
				checklists := make([]models.TripChecklist, len(next[i].Checklists))
				copy(checklists, next[i].Checklists)
				for j := range checklists {
					if checklists[j].ID == checklistID {
						checklists[j].Done = done
					}
				}
				next[i].Checklists = checklists
			}
			return next
		},
		func(ctx context.Context, next []models.Trip) error {
			checklist := models.TripChecklist{ID: checklistID, TripID: tripID, Done: done}
			for _, trip := range next {
				if trip.ID != tripID {
					continue
				}
				for _, c := range trip.Checklists {
					if c.ID == checklistID {
						checklist = c
					}
				}
			}
			return s.store.UpdateChecklist(ctx, checklist)
		})
	if err != nil {
		observability.OptimisticRollbacks.Inc()
		return fmt.Errorf("updating checklist: %w", err)
	}
	return nil
}

func cacheKey(userID string) string {
	return "trips/" + userID
}
