package server

import (
	"net/http"
	"testing"

	"pulse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddComment_PersistsAndRedirectsToDetail(t *testing.T) {
	t.Parallel()

	s, db := newTestServer(t)
	author := createTestUser(t, db, "poster")
	commenter := createTestUser(t, db, "commenter")
	post := createTestPost(t, db, author, "say something")

	app := newAuthedApp(commenter.ID)
	app.Post("/posts/:id/comment", s.AddComment)

	resp := postJSON(t, app, "/posts/1/comment", map[string]any{"text": "well said"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/posts/1", resp.Header.Get("Location"))

	var comment models.Comment
	require.NoError(t, db.First(&comment).Error)
	assert.Equal(t, "well said", comment.Text)
	assert.Equal(t, commenter.ID, comment.AuthorID)
	assert.Equal(t, post.ID, comment.PostID)
}

func TestAddComment_EmptyTextRejected(t *testing.T) {
	t.Parallel()

	s, db := newTestServer(t)
	author := createTestUser(t, db, "quiet")
	createTestPost(t, db, author, "no comments please")

	app := newAuthedApp(author.ID)
	app.Post("/posts/:id/comment", s.AddComment)

	resp := postJSON(t, app, "/posts/1/comment", map[string]any{"text": ""})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, countRows(t, db, &models.Comment{}))
}

func TestAddComment_MissingPostIs404(t *testing.T) {
	t.Parallel()

	s, db := newTestServer(t)
	commenter := createTestUser(t, db, "lost")

	app := newAuthedApp(commenter.ID)
	app.Post("/posts/:id/comment", s.AddComment)

	resp := postJSON(t, app, "/posts/777/comment", map[string]any{"text": "anyone here"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Zero(t, countRows(t, db, &models.Comment{}))
}
