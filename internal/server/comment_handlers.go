package server

import (
	"github.com/gofiber/fiber/v2"

	"pulse/internal/models"
	"pulse/internal/service"
)

// AddComment handles POST /posts/:id/comment. A valid comment redirects
// back to the post detail; invalid input is reported as a 400 instead of
// being dropped on the floor.
func (s *Server) AddComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text" form:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if _, err := s.commentService.AddComment(c.Context(), service.AddCommentInput{
		AuthorID: currentUserID(c),
		PostID:   postID,
		Text:     req.Text,
	}); err != nil {
		return respondWithAppError(c, err)
	}

	return seeOther(c, "/posts/"+c.Params("id"))
}
