package server

import (
	"github.com/gofiber/fiber/v2"

	"pulse/internal/service"
)

// ProfileFollow handles GET /profile/:username/follow. A new subscription
// lands on the followed-authors feed; a self-follow or an existing
// subscription bounces the requester back to their own profile with
// nothing written.
func (s *Server) ProfileFollow(c *fiber.Ctx) error {
	outcome, _, err := s.followService.Follow(c.Context(), currentUserID(c), c.Params("username"))
	if err != nil {
		return respondWithAppError(c, err)
	}

	switch outcome {
	case service.FollowCreated:
		return seeOther(c, "/follow")
	default:
		requester, err := s.userRepo.GetByID(c.Context(), currentUserID(c))
		if err != nil {
			return respondWithAppError(c, err)
		}
		return seeOther(c, "/profile/"+requester.Username)
	}
}

// ProfileUnfollow handles GET /profile/:username/unfollow. Unfollowing
// someone you never followed is a no-op; either way the client lands on
// the global feed.
func (s *Server) ProfileUnfollow(c *fiber.Ctx) error {
	if _, err := s.followService.Unfollow(c.Context(), currentUserID(c), c.Params("username")); err != nil {
		return respondWithAppError(c, err)
	}
	return seeOther(c, "/")
}
