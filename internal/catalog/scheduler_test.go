package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dshapiro789/NationalParkExplorer/internal/storage/models"
)

type stubBroadcaster struct {
	completed []models.RegionSyncResult
	failed    []string
}

func (b *stubBroadcaster) BroadcastRegionSyncCompleted(result models.RegionSyncResult) {
	b.completed = append(b.completed, result)
}

func (b *stubBroadcaster) BroadcastRegionSyncError(region string, err error) {
	b.failed = append(b.failed, region)
}

type stubPruner struct {
	cutoff time.Time
	pruned int64
}

func (p *stubPruner) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	p.cutoff = cutoff
	return p.pruned, nil
}

func TestRevalidateRecentBroadcastsResults(t *testing.T) {
	gateway := &stubGateway{parks: wyomingParks()}
	svc, monitor := newService(gateway, newStubStore(), true)

	_, err := svc.ParksForRegion(context.Background(), "WY")
	require.NoError(t, err)

	broadcaster := &stubBroadcaster{}
	sched := NewScheduler(svc, monitor, &stubPruner{}, broadcaster)

	sched.revalidateRecent()
	require.Len(t, broadcaster.completed, 1)
	require.Equal(t, "WY", broadcaster.completed[0].Region)
	require.Equal(t, 3, broadcaster.completed[0].ParksFound)

	gateway.err = errors.New("upstream down")
	sched.revalidateRecent()
	require.Equal(t, []string{"WY"}, broadcaster.failed)
}

func TestRevalidateRecentSkipsWhileOffline(t *testing.T) {
	gateway := &stubGateway{parks: wyomingParks()}
	svc, monitor := newService(gateway, newStubStore(), true)

	_, err := svc.ParksForRegion(context.Background(), "WY")
	require.NoError(t, err)
	fetched := gateway.calls

	monitor.SetOnline(false)
	broadcaster := &stubBroadcaster{}
	sched := NewScheduler(svc, monitor, &stubPruner{}, broadcaster)

	sched.revalidateRecent()
	require.Equal(t, fetched, gateway.calls)
	require.Empty(t, broadcaster.completed)
}

func TestPruneTilesUsesThirtyDayCutoff(t *testing.T) {
	svc, monitor := newService(&stubGateway{}, newStubStore(), true)
	pruner := &stubPruner{pruned: 4}
	sched := NewScheduler(svc, monitor, pruner, &stubBroadcaster{})

	sched.pruneTiles()

	want := time.Now().Add(-tileMaxAge)
	require.WithinDuration(t, want, pruner.cutoff, time.Minute)
}
