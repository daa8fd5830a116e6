package service

import (
	"context"
	"strings"

	"pulse/internal/models"
	"pulse/internal/repository"
)

const maxCommentLength = 2000

// CommentService handles comment creation and listing.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// AddCommentInput holds the data for a new comment.
type AddCommentInput struct {
	AuthorID uint
	PostID   uint
	Text     string
}

// AddComment validates the input and attaches a comment to an existing
// post. A missing post yields a NOT_FOUND error.
func (s *CommentService) AddComment(ctx context.Context, input AddCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, models.NewValidationError("comment text is required")
	}
	if len(input.Text) > maxCommentLength {
		return nil, models.NewValidationError("comment text is too long")
	}

	if _, err := s.postRepo.GetByID(ctx, input.PostID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:     input.Text,
		AuthorID: input.AuthorID,
		PostID:   input.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns a post's comments, newest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}
