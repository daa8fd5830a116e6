package service

import (
	"context"

	"pulse/internal/models"
	"pulse/internal/repository"
)

// FollowOutcome describes what a follow request actually did.
type FollowOutcome int

const (
	// FollowCreated means a new subscription was stored.
	FollowCreated FollowOutcome = iota
	// FollowAlreadyExists means the subscription was already in place.
	FollowAlreadyExists
	// FollowSelf means the user tried to follow themselves.
	FollowSelf
)

// FollowService manages follow subscriptions between users.
type FollowService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// NewFollowService creates a new follow service.
func NewFollowService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *FollowService {
	return &FollowService{userRepo: userRepo, followRepo: followRepo}
}

// Follow subscribes userID to the author named by username. Self-follows
// and duplicate follows are rejected without touching storage; both are
// reported through the outcome, not as errors.
func (s *FollowService) Follow(ctx context.Context, userID uint, username string) (FollowOutcome, *models.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return 0, nil, err
	}

	if author.ID == userID {
		return FollowSelf, author, nil
	}

	created, err := s.followRepo.Follow(ctx, userID, author.ID)
	if err != nil {
		return 0, nil, models.NewInternalError(err)
	}
	if !created {
		return FollowAlreadyExists, author, nil
	}
	return FollowCreated, author, nil
}

// Unfollow removes userID's subscription to the named author. Removing a
// subscription that does not exist is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, userID uint, username string) (*models.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if _, err := s.followRepo.Unfollow(ctx, userID, author.ID); err != nil {
		return nil, models.NewInternalError(err)
	}
	return author, nil
}
