// Package service contains the application's business logic, sitting
// between the HTTP handlers and the repositories.
package service

import (
	"context"

	"pulse/internal/models"
	"pulse/internal/pagination"
	"pulse/internal/repository"
)

// FeedService assembles the four feed shapes: global, group, author, and
// followed-authors. Every shape is newest-first and paginated.
type FeedService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// NewFeedService creates a new feed service.
func NewFeedService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// AuthorFeed is the author feed page plus the profile context around it.
// Following reports whether the requesting user follows this author; it is
// always false for anonymous requests and for the author's own profile view.
// FollowingCount is how many authors this profile follows.
type AuthorFeed struct {
	Author         *models.User                  `json:"author"`
	Following      bool                          `json:"following"`
	FollowingCount int64                         `json:"following_count"`
	Page           pagination.Page[*models.Post] `json:"page"`
}

// GroupFeed is a group's feed page plus the group it belongs to.
type GroupFeed struct {
	Group *models.Group                 `json:"group"`
	Page  pagination.Page[*models.Post] `json:"page"`
}

// Global returns the requested page of all posts.
func (s *FeedService) Global(ctx context.Context, page int) (*pagination.Page[*models.Post], error) {
	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	w := pagination.Plan(int(total), page)
	posts, err := s.postRepo.List(ctx, w.Limit, w.Offset)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPage(w, posts)
	return &p, nil
}

// Group resolves the group by slug and returns the requested page of its
// posts. An unknown slug yields a NOT_FOUND error.
func (s *FeedService) Group(ctx context.Context, slug string, page int) (*GroupFeed, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	total, err := s.postRepo.CountByGroup(ctx, group.ID)
	if err != nil {
		return nil, err
	}

	w := pagination.Plan(int(total), page)
	posts, err := s.postRepo.ListByGroup(ctx, group.ID, w.Limit, w.Offset)
	if err != nil {
		return nil, err
	}

	return &GroupFeed{Group: group, Page: pagination.NewPage(w, posts)}, nil
}

// Author resolves the author by username and returns the requested page of
// their posts, plus whether requesterID (0 for anonymous) follows them.
func (s *FeedService) Author(ctx context.Context, username string, requesterID uint, page int) (*AuthorFeed, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	following := false
	if requesterID != 0 && requesterID != author.ID {
		following, err = s.followRepo.IsFollowing(ctx, requesterID, author.ID)
		if err != nil {
			return nil, err
		}
	}

	followingCount, err := s.followRepo.CountForUser(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	total, err := s.postRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	w := pagination.Plan(int(total), page)
	posts, err := s.postRepo.ListByAuthor(ctx, author.ID, w.Limit, w.Offset)
	if err != nil {
		return nil, err
	}

	return &AuthorFeed{
		Author:         author,
		Following:      following,
		FollowingCount: followingCount,
		Page:           pagination.NewPage(w, posts),
	}, nil
}

// Followed returns the requested page of posts authored by anyone the
// given user follows.
func (s *FeedService) Followed(ctx context.Context, userID uint, page int) (*pagination.Page[*models.Post], error) {
	total, err := s.postRepo.CountFollowed(ctx, userID)
	if err != nil {
		return nil, err
	}

	w := pagination.Plan(int(total), page)
	posts, err := s.postRepo.ListFollowed(ctx, userID, w.Limit, w.Offset)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPage(w, posts)
	return &p, nil
}
