package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshapiro789/NationalParkExplorer/internal/storage/models"
)

func TestMigrationsRunOnce(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "parks.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(db))
	require.NoError(t, RunMigrations(db))

	applied, err := getAppliedMigrations(db.DB)
	require.NoError(t, err)
	require.Len(t, applied, 2)
}

// Upgrading from a version-1 store (parks and map_tiles only) must create the
// downloaded_maps collection without disturbing existing park rows.
func TestUpgradeFromVersionOnePreservesParks(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "parks.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, createMigrationsTable(db.DB))
	files, err := getMigrationFiles()
	require.NoError(t, err)
	require.Len(t, files, 2)

	// Apply only the first migration to simulate a store persisted at version 1.
	require.NoError(t, applyMigration(db.DB, files[0]))

	parkRepo := NewParkRepository(db)
	ctx := context.Background()
	require.NoError(t, parkRepo.PutParks(ctx, []models.Park{
		{ID: "p1", Name: "Yellowstone", States: "WY"},
	}))

	// Opening at the higher version applies only the missing migration.
	require.NoError(t, RunMigrations(db))

	got, err := parkRepo.GetByRegion(ctx, "WY")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Yellowstone", got[0].Name)

	// The new collection is usable.
	mapRepo := NewMapRepository(db)
	require.NoError(t, mapRepo.Put(ctx, "p1", "visitor-map", []byte("pdf")))
}
