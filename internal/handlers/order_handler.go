package handlers

import (
	"fmt"
	"log"

	"saveup/internal/models"
	"saveup/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/from-reservation", h.HandleCreateFromReservation)
	orderRoutes.Post("/", h.HandleCreateDirect)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Get("/", h.HandleGetOrders)
}

// RegisterStaffRoutes registers the routes that require a staff JWT.
func (h *OrderHandler) RegisterStaffRoutes(router fiber.Router) {
	router.Patch("/orders/:id/status", h.HandleTransitionStatus)
}

// CreateFromReservationRequest confirms a paid PIX reservation.
type CreateFromReservationRequest struct {
	TempID            string `json:"temp_id" validate:"required"`
	FulfillmentMethod string `json:"fulfillment_method" validate:"required"`
	DeliveryAddress   string `json:"delivery_address"`
}

// HandleCreateFromReservation materializes an order from a consumed reservation.
func (h *OrderHandler) HandleCreateFromReservation(c *fiber.Ctx) error {
	var req CreateFromReservationRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	method, err := models.ParseFulfillmentMethod(req.FulfillmentMethod)
	if err != nil {
		return respondError(c, err)
	}
	if method == models.FulfillmentDelivery && req.DeliveryAddress == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Delivery orders require a delivery address",
		})
	}

	order, err := h.service.CreateOrderFromReservation(req.TempID, method, req.DeliveryAddress)
	if err != nil {
		log.Printf("Error creating order from reservation %s: %v", req.TempID, err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// CreateDirectOrderRequest places an order without a prior PIX reservation.
type CreateDirectOrderRequest struct {
	Customer          services.CustomerInfo `json:"customer" validate:"required"`
	Items             []models.CartLine     `json:"items" validate:"required,min=1,dive"`
	FulfillmentMethod string                `json:"fulfillment_method" validate:"required"`
	DeliveryAddress   string                `json:"delivery_address"`
}

// HandleCreateDirect creates an order through the non-PIX flow.
func (h *OrderHandler) HandleCreateDirect(c *fiber.Ctx) error {
	var req CreateDirectOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing request body: %v", err)
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

	method, err := models.ParseFulfillmentMethod(req.FulfillmentMethod)
	if err != nil {
		return respondError(c, err)
	}
	if method == models.FulfillmentDelivery && req.DeliveryAddress == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Delivery orders require a delivery address",
		})
	}

	order, err := h.service.CreateOrderDirect(req.Customer, req.Items, method, req.DeliveryAddress)
	if err != nil {
		log.Printf("Error creating direct order: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrderByID(orderID)
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleGetOrders lists the orders for a customer contact (?contact=email-or-phone).
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	contact := c.Query("contact")
	orders, err := h.service.GetOrdersByCustomer(contact)
	if err != nil {
		log.Printf("Error getting orders for contact %s: %v", contact, err)
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// TransitionStatusRequest asks for a status change on an order.
type TransitionStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleTransitionStatus moves an order through its lifecycle. Staff only;
// the acting username comes from the JWT claims.
func (h *OrderHandler) HandleTransitionStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var req TransitionStatusRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing request body for status update: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}
	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order status update.",
		})
	}

	actor := "system"
	if username, ok := c.Locals("username").(string); ok && username != "" {
		actor = username
	}

	order, err := h.service.TransitionStatus(orderID, models.OrderStatus(req.Status), actor)
	if err != nil {
		log.Printf("Error updating order status for order %s: %v", orderID, err)
		return respondError(c, err)
	}
	return c.JSON(order)
}
