// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"pulse/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow relationship operations.
// A follow pair is either present or absent; both mutations are atomic at
// the storage layer, so two concurrent Follow calls for the same pair can
// never insert a duplicate row.
type FollowRepository interface {
	Follow(ctx context.Context, userID, authorID uint) (created bool, err error)
	Unfollow(ctx context.Context, userID, authorID uint) (removed bool, err error)
	IsFollowing(ctx context.Context, userID, authorID uint) (bool, error)
	CountForUser(ctx context.Context, userID uint) (int64, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow inserts the (user, author) pair if absent. The insert rides on the
// composite unique index rather than a check-then-act, so it reports
// created=false when the pair already existed.
func (r *followRepository) Follow(ctx context.Context, userID, authorID uint) (bool, error) {
	follow := models.Follow{UserID: userID, AuthorID: authorID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "author_id"}},
			DoNothing: true,
		}).
		Create(&follow)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Unfollow deletes the pair if present; absent pairs are a no-op.
func (r *followRepository) Unfollow(ctx context.Context, userID, authorID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *followRepository) IsFollowing(ctx context.Context, userID, authorID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) CountForUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
