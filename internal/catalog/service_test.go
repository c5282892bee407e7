package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshapiro789/NationalParkExplorer/internal/connectivity"
	"github.com/dshapiro789/NationalParkExplorer/internal/querycache"
	"github.com/dshapiro789/NationalParkExplorer/internal/storage/models"
)

type stubGateway struct {
	parks []models.Park
	err   error
	calls int
}

func (g *stubGateway) ParksByState(ctx context.Context, state string) ([]models.Park, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.parks, nil
}

type stubStore struct {
	parks  map[string]models.Park
	putErr error
	getErr error
}

func newStubStore() *stubStore {
	return &stubStore{parks: make(map[string]models.Park)}
}

func (s *stubStore) PutParks(ctx context.Context, parks []models.Park) error {
	if s.putErr != nil {
		return s.putErr
	}
	for _, p := range parks {
		s.parks[p.ID] = p
	}
	return nil
}

func (s *stubStore) GetByRegion(ctx context.Context, region string) ([]models.Park, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	matches := []models.Park{}
	for _, p := range s.parks {
		if p.InState(region) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func wyomingParks() []models.Park {
	return []models.Park{
		{ID: "grte", Name: "Grand Teton National Park", States: "WY"},
		{ID: "fobu", Name: "Fossil Butte National Monument", States: "WY"},
		{ID: "deto", Name: "Devils Tower National Monument", States: "WY"},
	}
}

func newService(gateway Gateway, store Store, online bool) (*Service, *connectivity.Monitor) {
	monitor := connectivity.NewMonitor()
	monitor.SetOnline(online)
	return NewService(gateway, store, monitor, querycache.NewCache()), monitor
}

func TestOnlineFetchPersistsAndReturnsFreshBatch(t *testing.T) {
	gateway := &stubGateway{parks: wyomingParks()}
	store := newStubStore()
	svc, _ := newService(gateway, store, true)

	parks, err := svc.ParksForRegion(context.Background(), "wy")
	require.NoError(t, err)
	require.Len(t, parks, 3)
	require.Equal(t, "grte", parks[0].ID)

	// The fetched batch was persisted for later offline reads.
	require.Len(t, store.parks, 3)
}

func TestOfflineServesLocalStore(t *testing.T) {
	gateway := &stubGateway{parks: wyomingParks()}
	store := newStubStore()

	// Warm the store while online.
	svc, monitor := newService(gateway, store, true)
	_, err := svc.ParksForRegion(context.Background(), "WY")
	require.NoError(t, err)

	// Go offline with a cold result cache; the same three parks come back
	// from the store without a remote call.
	monitor.SetOnline(false)
	svc2 := NewService(gateway, store, monitor, querycache.NewCache())
	parks, err := svc2.ParksForRegion(context.Background(), "WY")
	require.NoError(t, err)
	require.Len(t, parks, 3)
	require.Equal(t, 1, gateway.calls)
}

func TestEmptyRegionReturnsEmptySliceWithoutCollaborators(t *testing.T) {
	gateway := &stubGateway{err: errors.New("must not be called")}
	svc, _ := newService(gateway, newStubStore(), true)

	parks, err := svc.ParksForRegion(context.Background(), "  ")
	require.NoError(t, err)
	require.NotNil(t, parks)
	require.Empty(t, parks)
	require.Zero(t, gateway.calls)
}

func TestFreshResultSkipsSecondFetch(t *testing.T) {
	gateway := &stubGateway{parks: wyomingParks()}
	svc, _ := newService(gateway, newStubStore(), true)

	_, err := svc.ParksForRegion(context.Background(), "WY")
	require.NoError(t, err)
	_, err = svc.ParksForRegion(context.Background(), "WY")
	require.NoError(t, err)
	require.Equal(t, 1, gateway.calls)
}

func TestFetchFailureFallsBackToStore(t *testing.T) {
	store := newStubStore()
	require.NoError(t, store.PutParks(context.Background(), wyomingParks()))

	gateway := &stubGateway{err: errors.New("upstream down")}
	svc, _ := newService(gateway, store, true)

	parks, err := svc.ParksForRegion(context.Background(), "WY")
	require.NoError(t, err, "fetch failures never reach the caller")
	require.Len(t, parks, 3)
}

func TestPersistErrorPropagates(t *testing.T) {
	store := newStubStore()
	store.putErr = errors.New("disk full")

	gateway := &stubGateway{parks: wyomingParks()}
	svc, _ := newService(gateway, store, true)

	_, err := svc.ParksForRegion(context.Background(), "WY")
	require.ErrorIs(t, err, store.putErr)
}

func TestUnknownRegionReturnsEmptyNotError(t *testing.T) {
	gateway := &stubGateway{err: errors.New("upstream down")}
	svc, _ := newService(gateway, newStubStore(), false)

	parks, err := svc.ParksForRegion(context.Background(), "ZZ")
	require.NoError(t, err)
	require.NotNil(t, parks)
	require.Empty(t, parks)
}

func TestRevalidateReportsOutcome(t *testing.T) {
	gateway := &stubGateway{parks: wyomingParks()}
	store := newStubStore()
	svc, _ := newService(gateway, store, true)

	result := svc.Revalidate(context.Background(), "WY")
	require.NoError(t, result.Error)
	require.Equal(t, 3, result.ParksFound)
	require.False(t, result.FromCache)
	require.Len(t, store.parks, 3)

	gateway.err = errors.New("upstream down")
	result = svc.Revalidate(context.Background(), "WY")
	require.Error(t, result.Error)
	require.True(t, result.FromCache)
	require.Equal(t, 3, result.ParksFound)
}

func TestRecentRegionsTracksServes(t *testing.T) {
	gateway := &stubGateway{parks: wyomingParks()}
	svc, _ := newService(gateway, newStubStore(), true)

	_, err := svc.ParksForRegion(context.Background(), "WY")
	require.NoError(t, err)
	_, err = svc.ParksForRegion(context.Background(), "mt")
	require.NoError(t, err)

	regions := svc.RecentRegions(servedWindow)
	require.ElementsMatch(t, []string{"WY", "MT"}, regions)
}
