package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshapiro789/NationalParkExplorer/internal/storage/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewDB(filepath.Join(t.TempDir(), "parks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, RunMigrations(db))
	return db
}

func park(id, name, states string) models.Park {
	return models.Park{ID: id, Name: name, States: states}
}

func parkIDs(parks []models.Park) []string {
	ids := make([]string, 0, len(parks))
	for _, p := range parks {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestPutParksRoundTripByRegion(t *testing.T) {
	db := testDB(t)
	repo := NewParkRepository(db)
	ctx := context.Background()

	batch := []models.Park{
		park("p1", "Yellowstone", "WY"),
		park("p2", "Grand Teton", "WY"),
		park("p3", "Devils Tower", "WY"),
		park("p4", "Badlands", "SD"),
	}
	require.NoError(t, repo.PutParks(ctx, batch))

	got, err := repo.GetByRegion(ctx, "WY")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"p1", "p2", "p3"}, parkIDs(got))
}

func TestPutParksIsIdempotent(t *testing.T) {
	db := testDB(t)
	repo := NewParkRepository(db)
	ctx := context.Background()

	batch := []models.Park{park("p1", "Yellowstone", "WY"), park("p2", "Grand Teton", "WY")}
	require.NoError(t, repo.PutParks(ctx, batch))
	require.NoError(t, repo.PutParks(ctx, batch))

	got, err := repo.GetByRegion(ctx, "WY")
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestPutParksOverwritesByID(t *testing.T) {
	db := testDB(t)
	repo := NewParkRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.PutParks(ctx, []models.Park{park("p1", "Old Name", "WY")}))
	require.NoError(t, repo.PutParks(ctx, []models.Park{park("p1", "New Name", "WY")}))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "New Name", got.Name)
}

func TestGetByRegionEmptyWhenNothingCached(t *testing.T) {
	db := testDB(t)
	repo := NewParkRepository(db)

	got, err := repo.GetByRegion(context.Background(), "AK")
	require.NoError(t, err)
	require.Empty(t, got)
	require.NotNil(t, got)
}

func TestGetByRegionMatchesCommaJoinedStates(t *testing.T) {
	db := testDB(t)
	repo := NewParkRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.PutParks(ctx, []models.Park{
		park("p1", "Yellowstone", "WY,MT,ID"),
		park("p2", "Glacier", "MT"),
		park("p3", "Wind Cave", "SD"),
	}))

	got, err := repo.GetByRegion(ctx, "MT")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"p1", "p2"}, parkIDs(got))

	// "WY" must not match a park whose only state begins with WY-adjacent text.
	got, err = repo.GetByRegion(ctx, "W")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestGetByIDMissingReturnsNil(t *testing.T) {
	db := testDB(t)
	repo := NewParkRepository(db)

	got, err := repo.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, got)
}
