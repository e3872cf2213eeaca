package server

import (
	"trendsmith/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListTrends handles GET /api/trends
// @Summary List trends
// @Description List all trends newest first, each with its style card and dependent counts
// @Tags trends
// @Produce json
// @Success 200 {array} models.TrendDetail
// @Failure 500 {object} models.ErrorResponse
// @Router /trends [get]
func (s *Server) ListTrends(c *fiber.Ctx) error {
	trends, err := s.trendService.ListTrends(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(trends)
}

// CreateTrend handles POST /api/trends
// @Summary Create trend
// @Description Start tracking a topic with the keywords used to search for it
// @Tags trends
// @Accept json
// @Produce json
// @Param request body object{name=string,keywords=string,description=string} true "Trend"
// @Success 201 {object} models.Trend
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /trends [post]
func (s *Server) CreateTrend(c *fiber.Ctx) error {
	var req struct {
		Name        string  `json:"name"`
		Keywords    string  `json:"keywords"`
		Description *string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	trend, err := s.trendService.CreateTrend(c.UserContext(), service.CreateTrendInput{
		Name:        req.Name,
		Keywords:    req.Keywords,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(trend)
}

// GetTrend handles GET /api/trends/:id
// @Summary Get trend
// @Tags trends
// @Produce json
// @Param id path string true "Trend ID"
// @Success 200 {object} models.TrendDetail
// @Failure 404 {object} models.ErrorResponse
// @Router /trends/{id} [get]
func (s *Server) GetTrend(c *fiber.Ctx) error {
	trend, err := s.trendService.GetTrend(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(trend)
}

// DeleteTrend handles DELETE /api/trends/:id
// @Summary Delete trend
// @Description Delete a trend with its scraped posts, style card and posts
// @Tags trends
// @Produce json
// @Param id path string true "Trend ID"
// @Success 200 {object} object{success=bool}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /trends/{id} [delete]
func (s *Server) DeleteTrend(c *fiber.Ctx) error {
	if err := s.trendService.DeleteTrend(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
