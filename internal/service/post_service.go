package service

import (
	"context"
	"strings"

	"pulse/internal/models"
	"pulse/internal/repository"
)

const maxPostLength = 10000

// PostService handles post creation, editing, and retrieval.
type PostService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository, groupRepo repository.GroupRepository) *PostService {
	return &PostService{postRepo: postRepo, groupRepo: groupRepo}
}

// CreatePostInput holds the data for a new post.
type CreatePostInput struct {
	AuthorID uint
	Text     string
	GroupID  *uint
	ImageURL string
}

// UpdatePostInput holds the data for editing an existing post.
type UpdatePostInput struct {
	EditorID uint
	PostID   uint
	Text     string
	GroupID  *uint
	ImageURL string
}

func (s *PostService) validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return models.NewValidationError("post text is required")
	}
	if len(text) > maxPostLength {
		return models.NewValidationError("post text is too long")
	}
	return nil
}

// CreatePost validates the input and persists a new post. A group, when
// given, must exist.
func (s *PostService) CreatePost(ctx context.Context, input CreatePostInput) (*models.Post, error) {
	if err := s.validateText(input.Text); err != nil {
		return nil, err
	}

	if input.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *input.GroupID); err != nil {
			return nil, err
		}
	}

	post := &models.Post{
		Text:     input.Text,
		AuthorID: input.AuthorID,
		GroupID:  input.GroupID,
		ImageURL: input.ImageURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// EditPost updates a post's text, group, and image. Only the author may
// edit; anyone else gets an unauthorized error and the post is untouched.
// The publication date never changes.
func (s *PostService) EditPost(ctx context.Context, input UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, input.PostID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != input.EditorID {
		return nil, models.NewUnauthorizedError("only the author can edit this post")
	}

	if err := s.validateText(input.Text); err != nil {
		return nil, err
	}

	if input.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *input.GroupID); err != nil {
			return nil, err
		}
	}

	post.Text = input.Text
	post.GroupID = input.GroupID
	post.ImageURL = input.ImageURL
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// GetPost returns a single post by ID.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}
