package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealfinder/backend/internal/types"
)

func resultSet(sessionID string, seq uint64, ids ...string) *types.ResultSet {
	set := &types.ResultSet{SessionID: sessionID, Seq: seq, Term: "egg"}
	for _, id := range ids {
		set.Recipes = append(set.Recipes, types.RecipeDetail{ID: id})
	}
	return set
}

func TestMemoryResultStoreCommitLatest(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryResultStore(time.Hour)

	latest, err := store.Latest(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, latest)

	seq, err := store.Begin(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), seq)

	ok, err := store.Commit(ctx, resultSet("s1", seq, "A", "B"))
	require.NoError(t, err)
	assert.True(t, ok)

	latest, err = store.Latest(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, uint64(1), latest.Seq)
	assert.Len(t, latest.Recipes, 2)

	other, err := store.Latest(ctx, "s2")
	require.NoError(t, err)
	assert.Nil(t, other, "sessions are isolated")
}

func TestMemoryResultStoreDiscardsStaleCommit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryResultStore(time.Hour)

	first, _ := store.Begin(ctx, "s1")
	second, _ := store.Begin(ctx, "s1")
	assert.Greater(t, second, first)

	ok, err := store.Commit(ctx, resultSet("s1", second, "B"))
	require.NoError(t, err)
	assert.True(t, ok)

	// The slower, older search finishes last and must not win.
	ok, err = store.Commit(ctx, resultSet("s1", first, "A"))
	require.NoError(t, err)
	assert.False(t, ok)

	latest, _ := store.Latest(ctx, "s1")
	require.NotNil(t, latest)
	assert.Equal(t, "B", latest.Recipes[0].ID)
}

func TestMemoryResultStoreKeepsSetWhenNewerSearchIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryResultStore(time.Hour)

	seq, _ := store.Begin(ctx, "s1")
	_, _ = store.Commit(ctx, resultSet("s1", seq, "A"))
	_, _ = store.Begin(ctx, "s1")

	latest, _ := store.Latest(ctx, "s1")
	require.NotNil(t, latest)
	assert.Equal(t, "A", latest.Recipes[0].ID)
}

func TestMemoryResultStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryResultStore(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	seq, _ := store.Begin(ctx, "s1")
	_, _ = store.Commit(ctx, resultSet("s1", seq, "A"))

	now = now.Add(2 * time.Minute)
	latest, err := store.Latest(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, latest)

	seq, _ = store.Begin(ctx, "s1")
	assert.Equal(t, uint64(1), seq, "expired session starts over")
}

func TestMemoryResultStoreCommitCopiesRecipes(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryResultStore(time.Hour)
	seq, _ := store.Begin(ctx, "s1")
	set := resultSet("s1", seq, "A")
	_, _ = store.Commit(ctx, set)

	set.Recipes[0].ID = "mutated"

	latest, _ := store.Latest(ctx, "s1")
	assert.Equal(t, "A", latest.Recipes[0].ID)
}
