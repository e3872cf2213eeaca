package server

import (
	"log/slog"

	"trendsmith/internal/middleware"
	"trendsmith/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const (
	maxPaginationLimit = 200
)

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// respondError writes err with the status its AppError code maps to.
// Internal errors are logged and their details withheld from the client.
func respondError(c *fiber.Ctx, err error) error {
	status := models.StatusFor(err)
	if status == fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request error",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
		err = models.NewInternalError(nil)
	}
	return models.RespondWithError(c, status, err)
}

// badRequest writes a 400 validation error.
func badRequest(c *fiber.Ctx, msg string) error {
	return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError(msg))
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return models.CodeValidation
	case fiber.StatusNotFound:
		return models.CodeNotFound
	case fiber.StatusUnauthorized:
		return models.CodeUnauthorized
	case fiber.StatusUnprocessableEntity:
		return models.CodePrecondition
	}
	return models.CodeInternal
}
