package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dshapiro789/NationalParkExplorer/internal/storage/models"
)

// ParkRepository provides data access for cached park records. The full record
// is stored as a JSON blob alongside the columns the queries need, so a schema
// change in the park payload never requires a table migration.
type ParkRepository struct {
	BaseRepository
}

// NewParkRepository creates a new park repository.
func NewParkRepository(db *DB) *ParkRepository {
	return &ParkRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// PutParks upserts a batch of park records inside a single transaction.
// Either every record in the batch becomes visible or none do. Records sharing
// an id with an existing entry overwrite it.
func (r *ParkRepository) PutParks(ctx context.Context, parks []models.Park) error {
	if len(parks) == 0 {
		return nil
	}

	now := r.Now()
	return r.Transaction(func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO parks (id, name, states, data, fetched_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name, states = excluded.states,
				data = excluded.data, fetched_at = excluded.fetched_at
		`)
		if err != nil {
			return fmt.Errorf("preparing park upsert: %w", err)
		}
		defer stmt.Close()

		for _, park := range parks {
			data, err := json.Marshal(park)
			if err != nil {
				return fmt.Errorf("encoding park %s: %w", park.ID, err)
			}
			if _, err := stmt.ExecContext(ctx, park.ID, park.Name, park.States, data, now); err != nil {
				return fmt.Errorf("upserting park %s: %w", park.ID, err)
			}
		}
		return nil
	})
}

// GetByRegion returns all cached parks whose states field contains the given
// region code. A region with no cached parks yields an empty slice, not an
// error; this is the offline fallback read path.
func (r *ParkRepository) GetByRegion(ctx context.Context, region string) ([]models.Park, error) {
	// The states column is a comma-joined list; wrap both sides in commas so
	// "WY" matches "WY" and "WY,MT" but never "WYX".
	rows, err := r.DB().QueryContext(ctx, `
		SELECT data FROM parks
		WHERE ',' || UPPER(states) || ',' LIKE '%,' || UPPER(?) || ',%'
		ORDER BY name
	`, region)
	if err != nil {
		return nil, fmt.Errorf("querying parks by region: %w", err)
	}
	defer rows.Close()

	return r.scanParks(rows)
}

// GetByID retrieves a single cached park, or nil if it is not cached.
func (r *ParkRepository) GetByID(ctx context.Context, id string) (*models.Park, error) {
	var data []byte
	err := r.DB().QueryRowContext(ctx, `SELECT data FROM parks WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying park: %w", err)
	}

	var park models.Park
	if err := json.Unmarshal(data, &park); err != nil {
		return nil, fmt.Errorf("decoding park %s: %w", id, err)
	}
	return &park, nil
}

// Regions returns the distinct region codes that have at least one cached park.
func (r *ParkRepository) Regions(ctx context.Context) ([]string, error) {
	rows, err := r.DB().QueryContext(ctx, `SELECT DISTINCT states FROM parks ORDER BY states`)
	if err != nil {
		return nil, fmt.Errorf("querying cached regions: %w", err)
	}
	defer rows.Close()

	var regions []string
	for rows.Next() {
		var states string
		if err := rows.Scan(&states); err != nil {
			return nil, fmt.Errorf("scanning region: %w", err)
		}
		regions = append(regions, states)
	}
	return regions, rows.Err()
}

func (r *ParkRepository) scanParks(rows *sql.Rows) ([]models.Park, error) {
	parks := []models.Park{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning park: %w", err)
		}
		var park models.Park
		if err := json.Unmarshal(data, &park); err != nil {
			return nil, fmt.Errorf("decoding park: %w", err)
		}
		parks = append(parks, park)
	}
	return parks, rows.Err()
}
