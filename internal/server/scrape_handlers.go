package server

import (
	"trendsmith/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Scrape handles POST /api/scrape
// @Summary Scrape trend
// @Description Replace a trend's scraped posts with the top Bluesky posts matching its keywords
// @Tags scrape
// @Accept json
// @Produce json
// @Param request body object{trendId=string,hoursBack=int,limit=int} true "Scrape request (hoursBack defaults to 48, limit to 50)"
// @Success 200 {object} models.ScrapeResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /scrape [post]
func (s *Server) Scrape(c *fiber.Ctx) error {
	var req struct {
		TrendID   string `json:"trendId"`
		HoursBack *int   `json:"hoursBack"`
		Limit     *int   `json:"limit"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	in := service.ScrapeInput{
		TrendID:   req.TrendID,
		HoursBack: service.DefaultHoursBack,
		Limit:     service.DefaultScrapeLimit,
	}
	if req.HoursBack != nil {
		in.HoursBack = *req.HoursBack
	}
	if req.Limit != nil {
		in.Limit = *req.Limit
	}

	result, err := s.scrapeService.Scrape(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// ListScraped handles GET /api/scrape/:trendId
// @Summary List scraped posts
// @Description Page through a trend's scraped posts, highest engagement first
// @Tags scrape
// @Produce json
// @Param trendId path string true "Trend ID"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} object{posts=[]models.ScrapedPost}
// @Router /scrape/{trendId} [get]
func (s *Server) ListScraped(c *fiber.Ctx) error {
	page := parsePagination(c, service.DefaultScrapedLimit)

	posts, err := s.scrapeService.ListScraped(c.UserContext(), c.Params("trendId"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}
