package analysis

import (
	"errors"

	"backend-hikeroutes/internal/auth"
	"backend-hikeroutes/internal/route"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the detail view under a /routes group. optionalAuth
// should populate the user when a token is present without requiring one.
func RegisterRoutes(r fiber.Router, svc *Service, optionalAuth fiber.Handler) {
	r.Get("/:id", optionalAuth, func(c *fiber.Ctx) error {
		detail, err := svc.Detail(c.Context(), c.Params("id"), auth.UserID(c))
		if err != nil {
			if errors.Is(err, route.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(detail)
	})
}
