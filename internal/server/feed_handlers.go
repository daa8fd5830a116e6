package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"pulse/internal/cache"
	"pulse/internal/middleware"
	"pulse/internal/models"
	"pulse/internal/pagination"
)

const feedCacheFlag = "feed_cache"

// feedCacheEnabled reports whether the feed page cache applies to this
// request. The cache is on by default; FEATURE_FLAGS can switch it off
// ("feed_cache=off") or roll it out to a percentage of logged-in users
// ("feed_cache=25%"). Anonymous requests fall outside any rollout bucket.
func (s *Server) feedCacheEnabled(userID uint) bool {
	value, ok := s.featureFlags.Raw()[feedCacheFlag]
	if !ok {
		return true
	}
	if strings.HasSuffix(value, "%") {
		return s.featureFlags.Enabled(feedCacheFlag, userID)
	}
	return !s.featureFlags.Disabled(feedCacheFlag)
}

// Index handles GET / and serves the global feed. Page payloads are cached
// in Redis for cache.FeedTTL, so a just-deleted post can still appear here
// until the window expires or the cache is cleared explicitly.
func (s *Server) Index(c *fiber.Ctx) error {
	page := pagination.ParsePage(c.Query("page"))

	useCache := s.redis != nil && s.feedCacheEnabled(currentUserID(c))
	key := cache.FeedPageKey(page)

	if useCache {
		var cached pagination.Page[*models.Post]
		found, err := cache.GetJSON(c.Context(), key, &cached)
		if err == nil && found {
			middleware.FeedCacheHits.WithLabelValues("hit").Inc()
			return c.JSON(cached)
		}
		middleware.FeedCacheHits.WithLabelValues("miss").Inc()
	} else {
		middleware.FeedCacheHits.WithLabelValues("bypass").Inc()
	}

	feed, err := s.feedService.Global(c.Context(), page)
	if err != nil {
		return respondWithAppError(c, err)
	}

	if useCache {
		_ = cache.SetJSON(c.Context(), key, feed, cache.FeedTTL)
	}
	return c.JSON(feed)
}

// GroupFeed handles GET /group/:slug
func (s *Server) GroupFeed(c *fiber.Ctx) error {
	page := pagination.ParsePage(c.Query("page"))

	feed, err := s.feedService.Group(c.Context(), c.Params("slug"), page)
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(feed)
}

// Profile handles GET /profile/:username
func (s *Server) Profile(c *fiber.Ctx) error {
	page := pagination.ParsePage(c.Query("page"))

	feed, err := s.feedService.Author(c.Context(), c.Params("username"), currentUserID(c), page)
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(feed)
}

// FollowIndex handles GET /follow and serves posts from followed authors.
func (s *Server) FollowIndex(c *fiber.Ctx) error {
	page := pagination.ParsePage(c.Query("page"))

	feed, err := s.feedService.Followed(c.Context(), currentUserID(c), page)
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(feed)
}
