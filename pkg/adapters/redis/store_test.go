package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rockysnow7/cyoa/pkg/adapters/redis"
	"github.com/rockysnow7/cyoa/pkg/session"
	"github.com/rockysnow7/cyoa/pkg/story"
)

func newTestStore(t *testing.T, opts ...redis.Option) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return redis.NewFromClient(client, opts...), mr
}

func sampleSession(id string) *session.Session {
	return &session.Session{
		ID:        id,
		SceneName: "START",
		Env: story.Environment{
			"coins": story.Number(3),
			"name":  story.String("Bob"),
			"brave": story.Boolean(true),
		},
		LastActive: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStore_RoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSession("a")))

	got, err := store.Load(ctx, "a")
	require.NoError(t, err)

	// Kinds survive serialization: the number comes back a number, the
	// boolean a boolean.
	assert.Equal(t, sampleSession("a"), got)
}

func TestStore_LoadUnknown(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, story.ErrSessionNotFound)
}

func TestStore_DeleteRemovesIndexEntry(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSession("a")))
	require.NoError(t, store.Save(ctx, sampleSession("b")))
	require.NoError(t, store.Delete(ctx, "a"))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"b"}, ids)
}

func TestStore_TTLExpiration(t *testing.T) {
	store, mr := newTestStore(t, redis.WithTTL(time.Second))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSession("ttl")))

	mr.FastForward(2 * time.Second)

	// The key expired but the index still lists it; Load reports it gone and
	// a sweep cleans the index up.
	_, err := store.Load(ctx, "ttl")
	assert.ErrorIs(t, err, story.ErrSessionNotFound)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "ttl")

	require.NoError(t, store.Delete(ctx, "ttl"))
	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, ids, "ttl")
}

func TestStore_PrefixIsolation(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	first := redis.NewFromClient(client, redis.WithPrefix("one:"))
	second := redis.NewFromClient(client, redis.WithPrefix("two:"))
	ctx := context.Background()

	require.NoError(t, first.Save(ctx, sampleSession("a")))

	_, err = second.Load(ctx, "a")
	assert.ErrorIs(t, err, story.ErrSessionNotFound)

	ids, err := second.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
