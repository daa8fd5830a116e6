package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"pulse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedAuthor(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "pw"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestPostRepository_ListNewestFirst(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewPostRepository(db)
	author := seedAuthor(t, db, "chronological")
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Post{
			Text:      fmt.Sprintf("post %d", i),
			AuthorID:  author.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	posts, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "post 2", posts[0].Text)
	assert.Equal(t, "post 0", posts[2].Text)
}

func TestPostRepository_GetByID_CommentsCount(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewPostRepository(db)
	author := seedAuthor(t, db, "counted")
	ctx := context.Background()

	post := &models.Post{Text: "count me", AuthorID: author.ID}
	require.NoError(t, db.Create(post).Error)
	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&models.Comment{
			Text: "c", AuthorID: author.ID, PostID: post.ID,
		}).Error)
	}
	// A soft-deleted comment must not count.
	deleted := &models.Comment{Text: "gone", AuthorID: author.ID, PostID: post.ID}
	require.NoError(t, db.Create(deleted).Error)
	require.NoError(t, db.Delete(deleted).Error)

	loaded, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, loaded.CommentsCount)
	assert.Equal(t, "counted", loaded.Author.Username)
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(context.Background(), 404)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPostRepository_ListFollowed(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewPostRepository(db)
	reader := seedAuthor(t, db, "subscriber")
	followed := seedAuthor(t, db, "followed-author")
	other := seedAuthor(t, db, "other-author")
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Follow{UserID: reader.ID, AuthorID: followed.ID}).Error)
	require.NoError(t, db.Create(&models.Post{Text: "visible", AuthorID: followed.ID}).Error)
	require.NoError(t, db.Create(&models.Post{Text: "hidden", AuthorID: other.ID}).Error)
	require.NoError(t, db.Create(&models.Post{Text: "own", AuthorID: reader.ID}).Error)

	posts, err := repo.ListFollowed(ctx, reader.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "visible", posts[0].Text)

	count, err := repo.CountFollowed(ctx, reader.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestPostRepository_UpdateKeepsPublicationDate(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewPostRepository(db)
	author := seedAuthor(t, db, "editor")
	ctx := context.Background()

	published := time.Now().Add(-48 * time.Hour).Truncate(time.Second)
	post := &models.Post{Text: "first draft", AuthorID: author.ID, CreatedAt: published}
	require.NoError(t, db.Create(post).Error)

	post.Text = "final draft"
	post.CreatedAt = time.Now() // must be ignored by Update
	require.NoError(t, repo.Update(ctx, post))

	reloaded, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "final draft", reloaded.Text)
	assert.WithinDuration(t, published, reloaded.CreatedAt, time.Second)
}

func TestPostRepository_DeleteIsSoft(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewPostRepository(db)
	author := seedAuthor(t, db, "remover")
	ctx := context.Background()

	post := &models.Post{Text: "short lived", AuthorID: author.ID}
	require.NoError(t, db.Create(post).Error)
	require.NoError(t, repo.Delete(ctx, post.ID))

	_, err := repo.GetByID(ctx, post.ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	// The row itself survives for auditability.
	var raw models.Post
	require.NoError(t, db.Unscoped().First(&raw, post.ID).Error)
	assert.True(t, raw.DeletedAt.Valid)
}
