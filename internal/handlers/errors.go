package handlers

import (
	"errors"

	"saveup/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondError translates a service error into the HTTP status the checkout
// taxonomy prescribes. Expired and AlreadyConsumed get distinct statuses so a
// client can tell "your PIX timed out" from "this was already paid".
func respondError(c *fiber.Ctx, err error) error {
	var validationErr *models.ValidationError
	var providerErr *models.PaymentProviderError

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	case errors.Is(err, models.ErrReservationNotFound),
		errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrCustomerNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Not found",
			"error":   err.Error(),
		})
	case errors.Is(err, models.ErrReservationExpired):
		return c.Status(fiber.StatusGone).JSON(fiber.Map{
			"message": "Reservation expired",
			"error":   err.Error(),
		})
	case errors.Is(err, models.ErrReservationConsumed):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Reservation already consumed",
			"error":   err.Error(),
		})
	case errors.Is(err, models.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Insufficient stock",
			"error":   err.Error(),
		})
	case errors.Is(err, models.ErrInvalidTransition):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Invalid status transition",
			"error":   err.Error(),
		})
	case errors.As(err, &providerErr):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Payment provider unavailable, try again",
			"error":   err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal error",
			"error":   err.Error(),
		})
	}
}
