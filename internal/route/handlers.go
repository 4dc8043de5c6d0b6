package route

import (
	"errors"

	"backend-hikeroutes/internal/auth"
	"backend-hikeroutes/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts catalog endpoints under a /routes group. The detail
// view is mounted separately because it pulls in the scoring core.
func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		page, err := svc.List(c.Context(), Filter{
			Difficulty: c.Query("difficulty"),
			Search:     c.Query("search"),
			Order:      c.Query("order", OrderNewest),
			Page:       ParsePage(c.Query("page")),
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(page)
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req RouteRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		route, err := svc.Create(c.Context(), auth.UserID(c), req)
		if err != nil {
			return mapError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(route)
	})

	r.Put("/:id", authMiddleware, func(c *fiber.Ctx) error {
		var req RouteRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		route, err := svc.Update(c.Context(), c.Params("id"), auth.UserID(c), req)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(route)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id"), auth.UserID(c)); err != nil {
			return mapError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/:id/favorite", authMiddleware, func(c *fiber.Ctx) error {
		favorited, err := svc.ToggleFavorite(c.Context(), c.Params("id"), auth.UserID(c))
		if err != nil {
			return mapError(err)
		}
		return c.JSON(fiber.Map{"favorited": favorited})
	})
}

func RecommendationsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		routes, err := svc.Recommendations(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"routes": routes})
	}
}

func StatsHandler(svc *Service, points, reviews Counter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.Stats(c.Context(), points, reviews)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(stats)
	}
}

func mapError(err error) error {
	var fields validation.Errors
	switch {
	case errors.As(err, &fields):
		return fields
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
