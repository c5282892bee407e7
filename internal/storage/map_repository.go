package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dshapiro789/NationalParkExplorer/internal/storage/models"
)

// MapRepository provides data access for explicitly downloaded map assets,
// keyed by the composite (park id, map id) pair.
type MapRepository struct {
	BaseRepository
}

// NewMapRepository creates a new downloaded-map repository.
func NewMapRepository(db *DB) *MapRepository {
	return &MapRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Put stores a downloaded map asset. A second download of the same
// (park, map) pair replaces the stored blob; at most one entry exists per pair.
func (r *MapRepository) Put(ctx context.Context, parkID, mapID string, blob []byte) error {
	_, err := r.DB().ExecContext(ctx, `
		INSERT INTO downloaded_maps (park_id, map_id, blob, downloaded_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(park_id, map_id) DO UPDATE SET
			blob = excluded.blob, downloaded_at = excluded.downloaded_at
	`, parkID, mapID, blob, r.Now())
	if err != nil {
		return fmt.Errorf("storing downloaded map: %w", err)
	}
	return nil
}

// Get returns the downloaded map for the pair, or nil if it was never
// downloaded (or has been deleted).
func (r *MapRepository) Get(ctx context.Context, parkID, mapID string) (*models.DownloadedMap, error) {
	m := &models.DownloadedMap{ParkID: parkID, MapID: mapID}
	err := r.DB().QueryRowContext(ctx, `
		SELECT blob, downloaded_at FROM downloaded_maps
		WHERE park_id = ? AND map_id = ?
	`, parkID, mapID).Scan(&m.Blob, &m.DownloadedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying downloaded map: %w", err)
	}
	return m, nil
}

// ListByPark returns all downloaded maps for a park, without their blobs.
func (r *MapRepository) ListByPark(ctx context.Context, parkID string) ([]models.DownloadedMap, error) {
	rows, err := r.DB().QueryContext(ctx, `
		SELECT park_id, map_id, downloaded_at FROM downloaded_maps
		WHERE park_id = ? ORDER BY map_id
	`, parkID)
	if err != nil {
		return nil, fmt.Errorf("querying downloaded maps: %w", err)
	}
	defer rows.Close()

	var maps []models.DownloadedMap
	for rows.Next() {
		var m models.DownloadedMap
		if err := rows.Scan(&m.ParkID, &m.MapID, &m.DownloadedAt); err != nil {
			return nil, fmt.Errorf("scanning downloaded map: %w", err)
		}
		maps = append(maps, m)
	}
	return maps, rows.Err()
}

// Delete removes the downloaded map for the pair. Deleting an entry that does
// not exist is not an error.
func (r *MapRepository) Delete(ctx context.Context, parkID, mapID string) error {
	_, err := r.DB().ExecContext(ctx, `
		DELETE FROM downloaded_maps WHERE park_id = ? AND map_id = ?
	`, parkID, mapID)
	if err != nil {
		return fmt.Errorf("deleting downloaded map: %w", err)
	}
	return nil
}
