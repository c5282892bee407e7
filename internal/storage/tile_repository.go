package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// TileRepository provides best-effort data access for cached map tile blobs,
// keyed by their source URL. Absence of a tile is a normal outcome.
type TileRepository struct {
	BaseRepository
}

// NewTileRepository creates a new tile repository.
func NewTileRepository(db *DB) *TileRepository {
	return &TileRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Put stores a tile blob for the given URL, replacing any previous blob.
func (r *TileRepository) Put(ctx context.Context, url string, blob []byte) error {
	_, err := r.DB().ExecContext(ctx, `
		INSERT INTO map_tiles (url, blob, cached_at) VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET blob = excluded.blob, cached_at = excluded.cached_at
	`, url, blob, r.Now())
	if err != nil {
		return fmt.Errorf("storing tile: %w", err)
	}
	return nil
}

// Get returns the cached tile blob for the URL, or nil if none is cached.
func (r *TileRepository) Get(ctx context.Context, url string) ([]byte, error) {
	var blob []byte
	err := r.DB().QueryRowContext(ctx, `SELECT blob FROM map_tiles WHERE url = ?`, url).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying tile: %w", err)
	}
	return blob, nil
}

// PruneOlderThan deletes tiles cached before the cutoff and returns the number
// removed. The tile cache would otherwise grow without bound.
func (r *TileRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.DB().ExecContext(ctx, `DELETE FROM map_tiles WHERE cached_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning tiles: %w", err)
	}
	removed, _ := result.RowsAffected()
	return removed, nil
}

// Count returns the number of cached tiles.
func (r *TileRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM map_tiles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting tiles: %w", err)
	}
	return n, nil
}
