package querycache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetReportsFreshness(t *testing.T) {
	c := NewCache()

	_, ok, _ := c.Get("parks/WY", time.Minute)
	require.False(t, ok)

	c.Set("parks/WY", []string{"yell"})
	value, ok, fresh := c.Get("parks/WY", time.Minute)
	require.True(t, ok)
	require.True(t, fresh)
	require.Equal(t, []string{"yell"}, value)
}

func TestMarkStaleKeepsValueReadable(t *testing.T) {
	c := NewCache()
	c.Set("parks/WY", 3)
	c.MarkStale("parks/WY")

	value, ok, fresh := c.Get("parks/WY", time.Minute)
	require.True(t, ok)
	require.False(t, fresh)
	require.Equal(t, 3, value)
}

func TestInvalidateRemovesEntry(t *testing.T) {
	c := NewCache()
	c.Set("trips/u1", "x")
	c.Invalidate("trips/u1")

	_, ok, _ := c.Get("trips/u1", time.Minute)
	require.False(t, ok)
}

func TestClearDropsEverything(t *testing.T) {
	c := NewCache()
	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()

	_, ok, _ := c.Get("a", time.Minute)
	require.False(t, ok)
	_, ok, _ = c.Get("b", time.Minute)
	require.False(t, ok)
}

func TestMutateCommitsOnSuccess(t *testing.T) {
	c := NewCache()
	c.Set("favorites/u1", []string{"yell"})

	err := Mutate(context.Background(), c, "favorites/u1",
		func(current []string) []string { return append(current, "grca") },
		func(ctx context.Context, next []string) error { return nil })
	require.NoError(t, err)

	value, ok, fresh := c.Get("favorites/u1", time.Minute)
	require.True(t, ok)
	require.False(t, fresh, "mutated entries must revalidate on next read")
	require.Equal(t, []string{"yell", "grca"}, value)
}

func TestMutateRestoresSnapshotOnFailure(t *testing.T) {
	c := NewCache()
	c.Set("favorites/u1", []string{"yell"})

	writeErr := errors.New("backend down")
	err := Mutate(context.Background(), c, "favorites/u1",
		func(current []string) []string { return append(current, "grca") },
		func(ctx context.Context, next []string) error {
			// The optimistic value is visible while the write is in flight.
			value, _, _ := c.Get("favorites/u1", time.Minute)
			require.Equal(t, []string{"yell", "grca"}, value)
			return writeErr
		})
	require.ErrorIs(t, err, writeErr)

	value, ok, _ := c.Get("favorites/u1", time.Minute)
	require.True(t, ok)
	require.Equal(t, []string{"yell"}, value)
}

func TestMutateRemovesEntryItCreatedOnFailure(t *testing.T) {
	c := NewCache()

	err := Mutate(context.Background(), c, "favorites/u1",
		func(current []string) []string { return append(current, "grca") },
		func(ctx context.Context, next []string) error { return errors.New("no") })
	require.Error(t, err)

	_, ok, _ := c.Get("favorites/u1", time.Minute)
	require.False(t, ok, "a key absent before the mutation stays absent after rollback")
}
