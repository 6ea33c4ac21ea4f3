package follow_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/errs"
	"github.com/tinoosan/cinerator/internal/service/follow"
	"github.com/tinoosan/cinerator/internal/storage/memory"
)

func setup(t *testing.T) (follow.Service, catalog.User, catalog.User) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	a, err := store.CreateUser(ctx, catalog.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com", Role: catalog.DefaultUserRole})
	require.NoError(t, err)
	b, err := store.CreateUser(ctx, catalog.User{ID: uuid.New(), Username: "bob", Email: "bob@example.com", Role: catalog.DefaultUserRole})
	require.NoError(t, err)
	return follow.New(store, store), a, b
}

func TestFollow_Rules(t *testing.T) {
	svc, alice, bob := setup(t)
	ctx := context.Background()

	_, err := svc.Follow(ctx, alice.ID, alice.ID)
	assert.ErrorIs(t, err, errs.ErrInvalid)

	f, err := svc.Follow(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, f.UserID)
	assert.Equal(t, alice.ID, f.FollowerID)
	assert.False(t, f.FollowedAt.IsZero())

	_, err = svc.Follow(ctx, bob.ID, alice.ID)
	assert.ErrorIs(t, err, errs.ErrConflict)

	_, err = svc.Follow(ctx, uuid.New(), alice.ID)
	assert.True(t, errs.IsNotFound(err))
}

func TestFollowersAndFollowing(t *testing.T) {
	svc, alice, bob := setup(t)
	ctx := context.Background()
	_, err := svc.Follow(ctx, bob.ID, alice.ID)
	require.NoError(t, err)

	followers, err := svc.Followers(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, "alice", followers[0].Username)

	following, err := svc.Following(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "bob", following[0].Username)

	none, err := svc.Followers(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUnfollow_NotFollowingMessage(t *testing.T) {
	svc, alice, bob := setup(t)
	ctx := context.Background()

	err := svc.Unfollow(ctx, bob.ID, alice.ID)
	require.True(t, errs.IsNotFound(err))
	assert.Contains(t, err.Error(), "User with id "+alice.ID.String()+" is currently not following user with id "+bob.ID.String()+"!")

	_, err = svc.Follow(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Unfollow(ctx, bob.ID, alice.ID))
	_, err = svc.Get(ctx, bob.ID, alice.ID)
	assert.True(t, errs.IsNotFound(err))
}
