package catalog

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dshapiro789/NationalParkExplorer/internal/connectivity"
	"github.com/dshapiro789/NationalParkExplorer/internal/storage/models"
)

const (
	servedWindow = time.Hour
	tileMaxAge   = 30 * 24 * time.Hour
)

// Broadcaster receives sync outcomes for fan-out to connected clients.
type Broadcaster interface {
	BroadcastRegionSyncCompleted(result models.RegionSyncResult)
	BroadcastRegionSyncError(region string, err error)
}

// TilePruner removes cached tiles older than a cutoff.
type TilePruner interface {
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Scheduler keeps recently served regions warm and prunes old tiles.
type Scheduler struct {
	cron        *cron.Cron
	service     *Service
	monitor     *connectivity.Monitor
	tiles       TilePruner
	broadcaster Broadcaster
}

// NewScheduler creates the background sync scheduler.
func NewScheduler(service *Service, monitor *connectivity.Monitor, tiles TilePruner, broadcaster Broadcaster) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		service:     service,
		monitor:     monitor,
		tiles:       tiles,
		broadcaster: broadcaster,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@every 15m", s.revalidateRecent); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@daily", s.pruneTiles); err != nil {
		return err
	}
	s.cron.Start()
	log.Println("Background sync scheduler started")
	return nil
}

// Stop stops the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) revalidateRecent() {
	if !s.monitor.Online() {
		return
	}

	regions := s.service.RecentRegions(servedWindow)
	if len(regions) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	for _, region := range regions {
		result := s.service.Revalidate(ctx, region)
		if result.Error != nil {
			log.Printf("Region %s revalidation failed: %v", region, result.Error)
			if s.broadcaster != nil {
				s.broadcaster.BroadcastRegionSyncError(region, result.Error)
			}
			continue
		}
		log.Printf("Region %s revalidated: %d parks", region, result.ParksFound)
		if s.broadcaster != nil {
			s.broadcaster.BroadcastRegionSyncCompleted(result)
		}
	}
}

func (s *Scheduler) pruneTiles() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pruned, err := s.tiles.PruneOlderThan(ctx, time.Now().Add(-tileMaxAge))
	if err != nil {
		log.Printf("Tile prune failed: %v", err)
		return
	}
	if pruned > 0 {
		log.Printf("Pruned %d tiles older than 30 days", pruned)
	}
}
