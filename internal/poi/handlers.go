package poi

import (
	"errors"
	"strconv"

	"backend-hikeroutes/internal/auth"
	"backend-hikeroutes/internal/shared/geo"
	"backend-hikeroutes/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const defaultRadiusKm = 5

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req CreatePointRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		p, err := svc.Create(c.Context(), req)
		if err != nil {
			var fields validation.Errors
			if errors.As(err, &fields) {
				return fields
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	})

	r.Get("/nearby", func(c *fiber.Ctx) error {
		lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
		lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
		origin := geo.Point{Lat: lat, Lon: lon}
		if errLat != nil || errLon != nil || !origin.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "lat and lon required")
		}
		radius, err := strconv.ParseFloat(c.Query("radius_km"), 64)
		if err != nil || radius <= 0 {
			radius = defaultRadiusKm
		}
		points, err := svc.Nearby(c.Context(), origin, radius)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(points)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		p, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(p)
	})

	r.Post("/:id/routes/:routeID", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Attach(c.Context(), c.Params("id"), c.Params("routeID"), auth.UserID(c)); err != nil {
			return mapError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Delete("/:id/routes/:routeID", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Detach(c.Context(), c.Params("id"), c.Params("routeID"), auth.UserID(c)); err != nil {
			return mapError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// RegisterRouteRoutes mounts the point listing under a /routes group.
func RegisterRouteRoutes(r fiber.Router, svc *Service) {
	r.Get("/:id/points", func(c *fiber.Ctx) error {
		routeID := c.Params("id")
		exists, err := svc.RouteExists(c.Context(), routeID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if !exists {
			return fiber.NewError(fiber.StatusNotFound, ErrRouteNotFound.Error())
		}
		points, err := svc.ListByRoute(c.Context(), routeID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(points)
	})
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrRouteNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
