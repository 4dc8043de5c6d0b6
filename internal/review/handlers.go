package review

import (
	"errors"

	"backend-hikeroutes/internal/auth"
	"backend-hikeroutes/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts review endpoints under a /routes group.
func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/:id/reviews", func(c *fiber.Ctx) error {
		routeID := c.Params("id")
		exists, err := svc.RouteExists(c.Context(), routeID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if !exists {
			return fiber.NewError(fiber.StatusNotFound, ErrRouteNotFound.Error())
		}
		reviews, err := svc.ListByRoute(c.Context(), routeID, c.QueryInt("limit", 0))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{
			"reviews":        reviews,
			"count":          len(reviews),
			"average_rating": AverageRating(reviews),
		})
	})

	r.Post("/:id/reviews", authMiddleware, func(c *fiber.Ctx) error {
		var req CreateReviewRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		review, err := svc.Create(c.Context(), c.Params("id"), auth.UserID(c), req)
		if err != nil {
			var fields validation.Errors
			switch {
			case errors.As(err, &fields):
				return fields
			case errors.Is(err, ErrDuplicateReview):
				return validation.Field("route", err.Error())
			case errors.Is(err, ErrRouteNotFound):
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			case errors.Is(err, ErrUserNotFound):
				return fiber.NewError(fiber.StatusUnauthorized, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(review)
	})
}
