package server

import (
	"log/slog"

	"trendsmith/internal/middleware"
	"trendsmith/internal/models"

	"github.com/gofiber/fiber/v2"
)

// requireStage rejects the request with 503 while stage is switched off.
func (s *Server) requireStage(stage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if s.flags.Enabled(stage) {
			return c.Next()
		}
		middleware.Logger.InfoContext(c.UserContext(), "stage disabled", slog.String("stage", stage), slog.String("path", c.Path()))
		return respondError(c, models.NewDisabledError(stage))
	}
}

// ListFeatures handles GET /api/features
// @Summary List pipeline switches
// @Description Report which pipeline stages are enabled (set with FEATURE_FLAGS)
// @Tags features
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /features [get]
func (s *Server) ListFeatures(c *fiber.Ctx) error {
	return c.JSON(s.flags.Snapshot())
}
