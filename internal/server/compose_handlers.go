package server

import (
	"trendsmith/internal/models"
	"trendsmith/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Compose handles POST /api/compose
// @Summary Compose drafts
// @Description Write up to 5 draft posts in the style of the trend's locked card
// @Tags compose
// @Accept json
// @Produce json
// @Param request body object{trendId=string,count=int} true "Compose request (count defaults to 1)"
// @Success 200 {object} object{posts=[]models.Post}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Failure 502 {object} server.partialComposeResponse "error envelope plus any drafts stored before the failure"
// @Security BearerAuth
// @Router /compose [post]
func (s *Server) Compose(c *fiber.Ctx) error {
	var req struct {
		TrendID string `json:"trendId"`
		Count   *int   `json:"count"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	count := 1
	if req.Count != nil {
		count = *req.Count
	}

	posts, err := s.composeService.Compose(c.UserContext(), service.ComposeInput{TrendID: req.TrendID, Count: count})
	if err != nil {
		status := models.StatusFor(err)
		if len(posts) == 0 || status == fiber.StatusInternalServerError {
			return respondError(c, err)
		}
		return c.Status(status).JSON(partialComposeResponse{ErrorResponse: models.ErrorBody(err), Posts: posts})
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// partialComposeResponse reports a failed compose that still stored drafts.
type partialComposeResponse struct {
	models.ErrorResponse
	Posts []models.Post `json:"posts"`
}

// UpdatePost handles PUT /api/compose/:id
// @Summary Update post
// @Description Edit a post's content or set its status to draft, approved or rejected
// @Tags compose
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body service.UpdatePostInput true "Fields to change"
// @Success 200 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /compose/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	var in service.UpdatePostInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}

	post, err := s.postService.UpdatePost(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// ListQueue handles GET /api/queue
// @Summary List queue
// @Description List posts with a status, newest first
// @Tags publish
// @Produce json
// @Param status query string false "Post status" default(approved)
// @Success 200 {object} object{posts=[]models.QueuedPost}
// @Failure 400 {object} models.ErrorResponse
// @Router /queue [get]
func (s *Server) ListQueue(c *fiber.Ctx) error {
	posts, err := s.postService.ListQueue(c.UserContext(), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// Publish handles POST /api/publish/:id
// @Summary Publish post
// @Description Post an approved post to X. There is no retry; a failure leaves the post approved.
// @Tags publish
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} object{success=bool,tweetId=string,tweetUrl=string,post=models.Post}
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /publish/{id} [post]
func (s *Server) Publish(c *fiber.Ctx) error {
	post, err := s.publishService.Publish(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"tweetId":  deref(post.TweetID),
		"tweetUrl": deref(post.TweetURL),
		"post":     post,
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
