package handlers

import (
	"fmt"
	"log"

	"saveup/internal/models"
	"saveup/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ReservationHandler handles HTTP requests for PIX checkout reservations.
type ReservationHandler struct {
	service  *services.ReservationService
	validate *validator.Validate
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(service *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the reservation routes with the Fiber app.
func (h *ReservationHandler) RegisterRoutes(router fiber.Router) {
	checkoutRoutes := router.Group("/checkout")
	checkoutRoutes.Post("/reservations", h.HandleCreateReservation)
	checkoutRoutes.Get("/reservations/:tempId", h.HandleGetReservation)
}

// CreateReservationRequest is the checkout request body.
type CreateReservationRequest struct {
	Customer services.CustomerInfo `json:"customer" validate:"required"`
	Cart     []models.CartLine     `json:"cart" validate:"required,min=1,dive"`
}

// HandleCreateReservation validates the cart and creates a PIX reservation.
func (h *ReservationHandler) HandleCreateReservation(c *fiber.Ctx) error {
	var req CreateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing reservation request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	reservation, err := h.service.CreateReservation(c.Context(), req.Cart, req.Customer)
	if err != nil {
		log.Printf("Error creating reservation: %v", err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(reservation)
}

// HandleGetReservation returns the reservation for the given tempId so the
// client can re-display the PIX code and its deadline.
func (h *ReservationHandler) HandleGetReservation(c *fiber.Ctx) error {
	tempID := c.Params("tempId")
	reservation, err := h.service.GetReservation(tempID)
	if err != nil {
		log.Printf("Error getting reservation %s: %v", tempID, err)
		return respondError(c, err)
	}
	return c.JSON(reservation)
}
