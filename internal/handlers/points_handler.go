package handlers

import (
	"log"

	"saveup/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PointsHandler serves customer eco-points balances and history.
type PointsHandler struct {
	service *services.EcoPointsService
}

// NewPointsHandler creates a new PointsHandler.
func NewPointsHandler(service *services.EcoPointsService) *PointsHandler {
	return &PointsHandler{
		service: service,
	}
}

// RegisterRoutes registers the eco-points routes with the Fiber app.
func (h *PointsHandler) RegisterRoutes(router fiber.Router) {
	customerRoutes := router.Group("/customers")
	customerRoutes.Get("/eco-points", h.HandleGetBalance)
	customerRoutes.Get("/eco-points/history", h.HandleGetHistory)
}

// HandleGetBalance returns the ledger-derived balance for ?contact=email-or-phone.
func (h *PointsHandler) HandleGetBalance(c *fiber.Ctx) error {
	contact := c.Query("contact")
	if contact == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "contact query parameter is required",
		})
	}

	total, err := h.service.Balance(contact)
	if err != nil {
		log.Printf("Error getting eco points balance for %s: %v", contact, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"customer_identifier": contact,
		"eco_points":          total,
	})
}

// HandleGetHistory returns the ledger entries for ?contact=email-or-phone.
func (h *PointsHandler) HandleGetHistory(c *fiber.Ctx) error {
	contact := c.Query("contact")
	if contact == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "contact query parameter is required",
		})
	}

	actions, err := h.service.History(contact)
	if err != nil {
		log.Printf("Error getting eco points history for %s: %v", contact, err)
		return respondError(c, err)
	}
	return c.JSON(actions)
}
