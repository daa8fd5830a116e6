package service

import (
	"context"
	"testing"

	"pulse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowService_Follow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("creates a new subscription", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByUsernameFn = func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{ID: 2, Username: "leo"}, nil
		}
		svc := NewFollowService(userRepo, noopFollowRepo())
		outcome, author, err := svc.Follow(ctx, 1, "leo")
		require.NoError(t, err)
		assert.Equal(t, FollowCreated, outcome)
		assert.Equal(t, uint(2), author.ID)
	})

	t.Run("self-follow never reaches storage", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByUsernameFn = func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{ID: 1, Username: "me"}, nil
		}
		followRepo := noopFollowRepo()
		followRepo.followFn = func(_ context.Context, _, _ uint) (bool, error) {
			t.Fatal("follow repo must not be called for a self-follow")
			return false, nil
		}
		svc := NewFollowService(userRepo, followRepo)
		outcome, _, err := svc.Follow(ctx, 1, "me")
		require.NoError(t, err)
		assert.Equal(t, FollowSelf, outcome)
	})

	t.Run("duplicate follow reports already exists", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByUsernameFn = func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{ID: 2, Username: "leo"}, nil
		}
		followRepo := noopFollowRepo()
		followRepo.followFn = func(_ context.Context, _, _ uint) (bool, error) {
			return false, nil
		}
		svc := NewFollowService(userRepo, followRepo)
		outcome, _, err := svc.Follow(ctx, 1, "leo")
		require.NoError(t, err)
		assert.Equal(t, FollowAlreadyExists, outcome)
	})

	t.Run("unknown username propagates repo error", func(t *testing.T) {
		t.Parallel()
		repoErr := models.NewNotFoundError("user", "ghost")
		userRepo := noopUserRepo()
		userRepo.getByUsernameFn = func(_ context.Context, _ string) (*models.User, error) {
			return nil, repoErr
		}
		svc := NewFollowService(userRepo, noopFollowRepo())
		_, _, err := svc.Follow(ctx, 1, "ghost")
		assert.ErrorIs(t, err, repoErr)
	})
}

func TestFollowService_Unfollow(t *testing.T) {
	t.Parallel()

	t.Run("missing subscription is a no-op", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByUsernameFn = func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{ID: 2, Username: "leo"}, nil
		}
		followRepo := noopFollowRepo()
		followRepo.unfollowFn = func(_ context.Context, _, _ uint) (bool, error) {
			return false, nil
		}
		svc := NewFollowService(userRepo, followRepo)
		author, err := svc.Unfollow(context.Background(), 1, "leo")
		require.NoError(t, err)
		assert.Equal(t, uint(2), author.ID)
	})
}
