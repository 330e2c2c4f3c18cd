package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rockysnow7/cyoa/pkg/adapters/memory"
	"github.com/rockysnow7/cyoa/pkg/session"
	"github.com/rockysnow7/cyoa/pkg/story"
)

func sampleSession(id string) *session.Session {
	return &session.Session{
		ID:         id,
		SceneName:  "START",
		Env:        story.Environment{"coins": story.Number(3)},
		LastActive: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSession("a")))

	got, err := store.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, sampleSession("a"), got)
}

func TestStore_LoadUnknown(t *testing.T) {
	store := memory.NewStore()
	_, err := store.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, story.ErrSessionNotFound)
}

func TestStore_IsolatesCallerMutations(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	s := sampleSession("a")
	require.NoError(t, store.Save(ctx, s))

	// Mutating the saved pointer must not reach the store.
	require.NoError(t, s.Env.Assign("coins", story.Number(0)))

	got, err := store.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, story.Number(3), got.Env["coins"])

	// Nor may mutating a loaded copy.
	require.NoError(t, got.Env.Assign("coins", story.Number(99)))
	again, err := store.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, story.Number(3), again.Env["coins"])
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSession("a")))
	require.NoError(t, store.Delete(ctx, "a"))
	require.NoError(t, store.Delete(ctx, "a"))

	_, err := store.Load(ctx, "a")
	assert.ErrorIs(t, err, story.ErrSessionNotFound)
}

func TestStore_List(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, store.Save(ctx, sampleSession("a")))
	require.NoError(t, store.Save(ctx, sampleSession("b")))

	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, ids)
}
