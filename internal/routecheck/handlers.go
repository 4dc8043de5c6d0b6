package routecheck

import (
	"backend-hikeroutes/internal/db"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultHistoryLimit = 24
	maxHistoryLimit     = 168
)

// RegisterRoutes mounts the check history under a /routes group.
func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/:id/checks", func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", defaultHistoryLimit)
		if limit <= 0 || limit > maxHistoryLimit {
			limit = defaultHistoryLimit
		}
		routeID := c.Params("id")
		exists, err := svc.RouteExists(c.Context(), routeID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if !exists {
			return fiber.NewError(fiber.StatusNotFound, db.ErrRouteNotFound.Error())
		}
		checks, err := svc.History(c.Context(), routeID, limit)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(checks)
	})
}
