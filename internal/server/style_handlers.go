package server

import (
	"trendsmith/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AnalyzeStyle handles POST /api/style/analyze
// @Summary Analyze style
// @Description Derive a new unlocked style card from the trend's top scraped posts
// @Tags style
// @Accept json
// @Produce json
// @Param request body object{trendId=string} true "Trend to analyze"
// @Success 200 {object} object{styleCard=models.StyleCard}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /style/analyze [post]
func (s *Server) AnalyzeStyle(c *fiber.Ctx) error {
	var req struct {
		TrendID string `json:"trendId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	card, err := s.styleService.AnalyzeStyle(c.UserContext(), req.TrendID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"styleCard": card})
}

// UpdateStyleCard handles PUT /api/style/:id
// @Summary Update style card
// @Description Edit style fields or lock the card. Omitted fields are left unchanged.
// @Tags style
// @Accept json
// @Produce json
// @Param id path string true "Style card ID"
// @Param request body service.UpdateStyleCardInput true "Fields to change"
// @Success 200 {object} object{styleCard=models.StyleCard}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /style/{id} [put]
func (s *Server) UpdateStyleCard(c *fiber.Ctx) error {
	var in service.UpdateStyleCardInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}

	card, err := s.styleService.UpdateStyleCard(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"styleCard": card})
}

// RegenerateStyle handles POST /api/style/:id/regenerate
// @Summary Regenerate style card
// @Description Re-run analysis for an unlocked card, keeping its ID
// @Tags style
// @Produce json
// @Param id path string true "Style card ID"
// @Success 200 {object} object{styleCard=models.StyleCard}
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /style/{id}/regenerate [post]
func (s *Server) RegenerateStyle(c *fiber.Ctx) error {
	card, err := s.styleService.RegenerateStyle(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"styleCard": card})
}
