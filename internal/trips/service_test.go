package trips

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dshapiro789/NationalParkExplorer/internal/querycache"
	"github.com/dshapiro789/NationalParkExplorer/internal/storage/models"
)

type stubStore struct {
	trips      []models.Trip
	err        error
	fetchCalls int
	checklists []models.TripChecklist
}

func (s *stubStore) Trips(ctx context.Context, userID string) ([]models.Trip, error) {
	s.fetchCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.trips, nil
}

func (s *stubStore) CreateTrip(ctx context.Context, trip models.Trip) error { return s.err }
func (s *stubStore) UpdateTrip(ctx context.Context, trip models.Trip) error { return s.err }
func (s *stubStore) DeleteTrip(ctx context.Context, tripID string) error    { return s.err }

func (s *stubStore) AddItem(ctx context.Context, item models.TripItem) error    { return s.err }
func (s *stubStore) UpdateItem(ctx context.Context, item models.TripItem) error { return s.err }
func (s *stubStore) DeleteItem(ctx context.Context, itemID string) error        { return s.err }

func (s *stubStore) AddChecklist(ctx context.Context, checklist models.TripChecklist) error {
	return s.err
}

func (s *stubStore) UpdateChecklist(ctx context.Context, checklist models.TripChecklist) error {
	if s.err != nil {
		return s.err
	}
	s.checklists = append(s.checklists, checklist)
	return nil
}

func (s *stubStore) DeleteChecklist(ctx context.Context, checklistID string) error { return s.err }

func TestTripsReadsThroughCache(t *testing.T) {
	store := &stubStore{trips: []models.Trip{{ID: "t1", Title: "Teton weekend"}}}
	svc := NewService(store, querycache.NewCache())

	first, err := svc.Trips(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, first, 1)

	_, err = svc.Trips(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, 1, store.fetchCalls)
}

func TestCreateTripInvalidatesCache(t *testing.T) {
	store := &stubStore{trips: []models.Trip{}}
	cache := querycache.NewCache()
	svc := NewService(store, cache)

	_, err := svc.Trips(context.Background(), "u1")
	require.NoError(t, err)

	trip, err := svc.CreateTrip(context.Background(), "u1", "Teton weekend", "2026-09-04", "2026-09-07")
	require.NoError(t, err)
	require.NotEmpty(t, trip.ID)

	_, ok, _ := cache.Get("trips/u1", time.Minute)
	require.False(t, ok, "successful mutations invalidate the cached list")
}

func TestFailedMutationLeavesCacheAlone(t *testing.T) {
	store := &stubStore{trips: []models.Trip{{ID: "t1"}}}
	cache := querycache.NewCache()
	svc := NewService(store, cache)

	_, err := svc.Trips(context.Background(), "u1")
	require.NoError(t, err)

	store.err = errors.New("backend down")
	require.Error(t, svc.DeleteTrip(context.Background(), "u1", "t1"))

	_, ok, fresh := cache.Get("trips/u1", time.Minute)
	require.True(t, ok)
	require.True(t, fresh)
}

func TestSetChecklistDoneIsOptimistic(t *testing.T) {
	store := &stubStore{trips: []models.Trip{{
		ID: "t1",
		Checklists: []models.TripChecklist{
			{ID: "c1", TripID: "t1", Label: "Bear spray", Done: false},
		},
	}}}
	cache := querycache.NewCache()
	svc := NewService(store, cache)

	_, err := svc.Trips(context.Background(), "u1")
	require.NoError(t, err)

	require.NoError(t, svc.SetChecklistDone(context.Background(), "u1", "t1", "c1", true))

	require.Len(t, store.checklists, 1)
	require.Equal(t, "Bear spray", store.checklists[0].Label)
	require.True(t, store.checklists[0].Done)

	value, ok, _ := cache.Get("trips/u1", time.Minute)
	require.True(t, ok)
	trips := value.([]models.Trip)
	require.True(t, trips[0].Checklists[0].Done)
}

func TestSetChecklistDoneRollsBackOnFailure(t *testing.T) {
	store := &stubStore{trips: []models.Trip{{
		ID: "t1",
		Checklists: []models.TripChecklist{
			{ID: "c1", TripID: "t1", Label: "Bear spray", Done: false},
		},
	}}}
	cache := querycache.NewCache()
	svc := NewService(store, cache)

	_, err := svc.Trips(context.Background(), "u1")
	require.NoError(t, err)

	store.err = errors.New("backend down")
	require.Error(t, svc.SetChecklistDone(context.Background(), "u1", "t1", "c1", true))

	value, _, _ := cache.Get("trips/u1", time.Minute)
	trips := value.([]models.Trip)
	require.False(t, trips[0].Checklists[0].Done)
}

func TestTripsWithoutUserReturnsEmpty(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store, querycache.NewCache())

	trips, err := svc.Trips(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, trips)
	require.Zero(t, store.fetchCalls)
}
