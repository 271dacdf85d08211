package memory

import (
	"context"
	"testing"
	"time"

	"tv-keuzehulp-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(time.Hour)

	sess := store.NewSession("s1")
	sess.Reset("systeem")
	sess.Append(store.RoleUser, "55 inch")
	require.NoError(t, repo.Save(ctx, sess))

	got, ok, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sess.Messages, got.Messages)

	_, ok, err = repo.Get(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Delete(ctx, "s1"))
	_, ok, _ = repo.Get(ctx, "s1")
	assert.False(t, ok)
}

func TestSessionRepositoryStoresCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(0)

	sess := store.NewSession("s1")
	sess.Reset("systeem")
	require.NoError(t, repo.Save(ctx, sess))

	sess.Append(store.RoleUser, "niet opgeslagen")

	first, _, _ := repo.Get(ctx, "s1")
	first.Append(store.RoleUser, "ook niet")
	first.Preferences["brand"] = "LG"

	second, _, _ := repo.Get(ctx, "s1")
	assert.Len(t, second.Messages, 1)
	assert.Empty(t, second.Preferences)
}

func TestSessionRepositoryLastWriteWins(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(time.Hour)

	base := store.NewSession("s1")
	base.Reset("systeem")
	require.NoError(t, repo.Save(ctx, base))

	a, _, _ := repo.Get(ctx, "s1")
	b, _, _ := repo.Get(ctx, "s1")
	a.Append(store.RoleUser, "eerste")
	b.Append(store.RoleUser, "tweede")
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, b))

	got, _, _ := repo.Get(ctx, "s1")
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "tweede", got.Messages[1].Content)
}
