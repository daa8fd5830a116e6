package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"pulse/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getPath(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestProfileFollow_CreatesSubscription(t *testing.T) {
	t.Parallel()

	s, db := newTestServer(t)
	follower := createTestUser(t, db, "fan")
	author := createTestUser(t, db, "star")

	app := newAuthedApp(follower.ID)
	app.Get("/profile/:username/follow", s.ProfileFollow)

	resp := getPath(t, app, "/profile/star/follow")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/follow", resp.Header.Get("Location"))

	var follow models.Follow
	require.NoError(t, db.Where("user_id = ? AND author_id = ?", follower.ID, author.ID).First(&follow).Error)
}

func TestProfileFollow_Idempotent(t *testing.T) {
	t.Parallel()

	s, db := newTestServer(t)
	follower := createTestUser(t, db, "loyal")
	createTestUser(t, db, "idol")

	app := newAuthedApp(follower.ID)
	app.Get("/profile/:username/follow", s.ProfileFollow)

	first := getPath(t, app, "/profile/idol/follow")
	first.Body.Close()
	assert.Equal(t, "/follow", first.Header.Get("Location"))

	second := getPath(t, app, "/profile/idol/follow")
	defer second.Body.Close()

	// The repeat is a no-op and bounces the follower back to their own
	// profile, not the author's.
	assert.Equal(t, http.StatusSeeOther, second.StatusCode)
	assert.Equal(t, "/profile/loyal", second.Header.Get("Location"))
	assert.EqualValues(t, 1, countRows(t, db, &models.Follow{}), "double follow must store one row")
}

func TestProfileFollow_SelfNeverStored(t *testing.T) {
	t.Parallel()

	s, db := newTestServer(t)
	user := createTestUser(t, db, "narcissus")

	app := newAuthedApp(user.ID)
	app.Get("/profile/:username/follow", s.ProfileFollow)

	resp := getPath(t, app, "/profile/narcissus/follow")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/profile/narcissus", resp.Header.Get("Location"))
	assert.Zero(t, countRows(t, db, &models.Follow{}))
}

func TestProfileFollow_UnknownAuthorIs404(t *testing.T) {
	t.Parallel()

	s, db := newTestServer(t)
	follower := createTestUser(t, db, "searcher")

	app := newAuthedApp(follower.ID)
	app.Get("/profile/:username/follow", s.ProfileFollow)

	resp := getPath(t, app, "/profile/ghost/follow")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProfileUnfollow_RemovesSubscription(t *testing.T) {
	t.Parallel()

	s, db := newTestServer(t)
	follower := createTestUser(t, db, "quitter")
	author := createTestUser(t, db, "left")
	require.NoError(t, db.Create(&models.Follow{UserID: follower.ID, AuthorID: author.ID}).Error)

	app := newAuthedApp(follower.ID)
	app.Get("/profile/:username/unfollow", s.ProfileUnfollow)

	resp := getPath(t, app, "/profile/left/unfollow")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	assert.Zero(t, countRows(t, db, &models.Follow{}))
}

func TestProfileUnfollow_WithoutPriorFollowIsNoop(t *testing.T) {
	t.Parallel()

	s, db := newTestServer(t)
	follower := createTestUser(t, db, "stranger")
	author := createTestUser(t, db, "unknown-to-them")
	other := createTestUser(t, db, "third")
	require.NoError(t, db.Create(&models.Follow{UserID: other.ID, AuthorID: author.ID}).Error)

	app := newAuthedApp(follower.ID)
	app.Get("/profile/:username/unfollow", s.ProfileUnfollow)

	resp := getPath(t, app, "/profile/unknown-to-them/unfollow")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	assert.EqualValues(t, 1, countRows(t, db, &models.Follow{}), "unrelated rows must survive")
}
