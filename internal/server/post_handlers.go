package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pulse/internal/models"
	"pulse/internal/service"
)

// postForm is the request body for creating or editing a post. It accepts
// JSON and form encodings.
type postForm struct {
	Text     string `json:"text" form:"text"`
	GroupID  *uint  `json:"group_id" form:"group_id"`
	ImageURL string `json:"image_url" form:"image_url"`
}

// groupChoice is a selectable group in the post form descriptor.
type groupChoice struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// formDescriptor tells clients how to render the post form: its fields and
// the groups a post can be filed into.
type formDescriptor struct {
	Fields []string      `json:"fields"`
	Groups []groupChoice `json:"groups"`
	IsEdit bool          `json:"is_edit"`
	Post   *models.Post  `json:"post,omitempty"`
}

func (s *Server) buildFormDescriptor(c *fiber.Ctx, isEdit bool, post *models.Post) (*formDescriptor, error) {
	groups, err := s.groupRepo.List(c.Context())
	if err != nil {
		return nil, err
	}

	choices := make([]groupChoice, 0, len(groups))
	for _, g := range groups {
		choices = append(choices, groupChoice{ID: g.ID, Title: g.Title, Slug: g.Slug})
	}
	return &formDescriptor{
		Fields: []string{"text", "group_id", "image_url"},
		Groups: choices,
		IsEdit: isEdit,
		Post:   post,
	}, nil
}

// NewPostForm handles GET /create
func (s *Server) NewPostForm(c *fiber.Ctx) error {
	form, err := s.buildFormDescriptor(c, false, nil)
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(form)
}

// CreatePost handles POST /create. On success the client is redirected to
// the author's profile, where the new post now leads the feed.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req postForm
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	userID := currentUserID(c)
	if _, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID: userID,
		Text:     req.Text,
		GroupID:  req.GroupID,
		ImageURL: req.ImageURL,
	}); err != nil {
		return respondWithAppError(c, err)
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return respondWithAppError(c, err)
	}
	return seeOther(c, "/profile/"+user.Username)
}

// EditPostForm handles GET /posts/:id/edit. A non-author asking for the
// edit form is sent to the post detail instead.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), postID)
	if err != nil {
		return respondWithAppError(c, err)
	}

	if post.AuthorID != currentUserID(c) {
		return seeOther(c, "/posts/"+c.Params("id"))
	}

	form, err := s.buildFormDescriptor(c, true, post)
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(form)
}

// EditPost handles POST /posts/:id/edit. Only the author may change a
// post; anyone else is redirected to the detail page with nothing written.
func (s *Server) EditPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req postForm
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	_, err = s.postService.EditPost(c.Context(), service.UpdatePostInput{
		EditorID: currentUserID(c),
		PostID:   postID,
		Text:     req.Text,
		GroupID:  req.GroupID,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "UNAUTHORIZED" {
			return seeOther(c, "/posts/"+c.Params("id"))
		}
		return respondWithAppError(c, err)
	}

	return seeOther(c, "/posts/"+c.Params("id"))
}

// PostDetail handles GET /posts/:id and returns the post with its comments.
func (s *Server) PostDetail(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), postID)
	if err != nil {
		return respondWithAppError(c, err)
	}

	comments, err := s.commentService.ListComments(c.Context(), postID)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"post":     post,
		"comments": comments,
	})
}
