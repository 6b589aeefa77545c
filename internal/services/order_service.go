package services

import (
	"encoding/json"
	"fmt"
	"log"

	"saveup/internal/models"
	"saveup/internal/repositories"

	"github.com/google/uuid"
)

// OrderService drives the durable order lifecycle: materializing orders from
// consumed reservations (PIX flow) or direct requests, enforcing the status
// state machine, and triggering eco-points crediting.
type OrderService struct {
	orderRepo    repositories.OrderRepository
	productRepo  repositories.ProductRepository
	reservations *ReservationService
	ecoPoints    *EcoPointsService
	publisher    EventPublisher
	notifier     NotificationSink
}

// NewOrderService creates a new OrderService. publisher and notifier may be
// nil; both are best-effort side channels.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	reservations *ReservationService,
	ecoPoints *EcoPointsService,
	publisher EventPublisher,
	notifier NotificationSink,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		reservations: reservations,
		ecoPoints:    ecoPoints,
		publisher:    publisher,
		notifier:     notifier,
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// GetOrdersByCustomer retrieves the orders placed under a contact (email or
// phone, whichever was supplied at checkout).
func (s *OrderService) GetOrdersByCustomer(contact string) ([]models.Order, error) {
	if contact == "" {
		return nil, models.NewValidationError("contact", "customer contact is required")
	}
	return s.orderRepo.GetByCustomerContact(contact)
}

// CreateOrderFromReservation consumes a PIX reservation and materializes the
// durable Order with its items. Prices come from the reservation's cart
// snapshot, taken when the PIX code was issued. The PIX payment was confirmed
// externally before this call, so eco points are credited immediately. The
// order commit is durable before this function returns success.
func (s *OrderService) CreateOrderFromReservation(tempID string, fulfillmentMethod models.FulfillmentMethod, deliveryAddress string) (*models.Order, error) {
	reservation, err := s.reservations.ConsumeReservation(tempID)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(reservation.Cart))
	for _, line := range reservation.Cart {
		items = append(items, models.OrderItem{
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
			PriceAtTime: line.UnitPriceAtAdd,
		})
	}

	order := &models.Order{
		ID:                uuid.New().String(),
		CustomerName:      reservation.CustomerName,
		CustomerContact:   reservation.CustomerContact,
		FulfillmentMethod: fulfillmentMethod,
		DeliveryAddress:   deliveryAddress,
		Status:            models.StatusPending,
		TotalAmount:       reservation.TotalAmount,
		Items:             items,
	}

	if err := s.persistOrder(order); err != nil {
		return nil, err
	}

	// Paid via PIX already, so the rescue points are earned now.
	if points, err := s.ecoPoints.CreditOrder(order); err != nil {
		log.Printf("Warning: failed to credit eco points for order %s: %v", order.ID, err)
	} else if points > 0 {
		log.Printf("Credited %d eco points to %s for order %s", points, order.CustomerContact, order.ID)
	}

	s.publishEvent("order.created", order)
	s.notify(order.CustomerContact, fmt.Sprintf("Order %s received, awaiting store confirmation", order.ID))
	return order, nil
}

// CreateOrderDirect persists an order without a prior reservation (non-PIX
// flows such as pay-on-pickup). Prices are snapshotted from the current
// catalog. Nothing is paid yet, so eco points are NOT credited here; they are
// credited when the order reaches confirmed.
func (s *OrderService) CreateOrderDirect(customer CustomerInfo, lines []models.CartLine, fulfillmentMethod models.FulfillmentMethod, deliveryAddress string) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, models.NewValidationError("items", "order must contain at least one item")
	}
	if customer.Contact == "" {
		return nil, models.NewValidationError("contact", "customer contact is required")
	}

	var total float64
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, models.NewValidationError("quantity", fmt.Sprintf("quantity for product %s must be positive", line.ProductID))
		}
		product, err := s.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, models.NewValidationError("product_id", fmt.Sprintf("product %s not found", line.ProductID))
		}
		if product.ExpiresAt.IsZero() {
			return nil, models.NewValidationError("expiration_date", fmt.Sprintf("product %s has no expiration date", line.ProductID))
		}
		if product.Stock < line.Quantity {
			return nil, fmt.Errorf("product %s (requested %d, available %d): %w",
				product.Name, line.Quantity, product.Stock, models.ErrInsufficientStock)
		}
		items = append(items, models.OrderItem{
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
			PriceAtTime: product.Price,
		})
		total += product.Price * float64(line.Quantity)
	}

	order := &models.Order{
		ID:                uuid.New().String(),
		CustomerName:      customer.Name,
		CustomerContact:   customer.Contact,
		FulfillmentMethod: fulfillmentMethod,
		DeliveryAddress:   deliveryAddress,
		Status:            models.StatusPending,
		TotalAmount:       total,
		Items:             items,
	}

	if err := s.persistOrder(order); err != nil {
		return nil, err
	}

	s.publishEvent("order.created", order)
	s.notify(order.CustomerContact, fmt.Sprintf("Order %s received, awaiting store confirmation", order.ID))
	return order, nil
}

// persistOrder decrements stock for each line, then durably commits the
// order with its items.
func (s *OrderService) persistOrder(order *models.Order) error {
	for i, item := range order.Items {
		if err := s.productRepo.DecrementStock(item.ProductID, item.Quantity); err != nil {
			// Roll back the decrements already applied for earlier lines.
			for j := 0; j < i; j++ {
				s.restock(order.Items[j])
			}
			return err
		}
	}
	if err := s.orderRepo.Create(order); err != nil {
		for _, item := range order.Items {
			s.restock(item)
		}
		return fmt.Errorf("failed to create order in repository: %w", err)
	}
	return nil
}

func (s *OrderService) restock(item models.OrderItem) {
	product, err := s.productRepo.GetByID(item.ProductID)
	if err != nil {
		log.Printf("Warning: failed to restock product %s: %v", item.ProductID, err)
		return
	}
	product.Stock += item.Quantity
	if err := s.productRepo.Update(product); err != nil {
		log.Printf("Warning: failed to restock product %s: %v", item.ProductID, err)
	}
}

// TransitionStatus moves an order to newStatus on behalf of actor (a staff
// username, or "system"). Disallowed transitions fail with
// models.ErrInvalidTransition and leave the status unchanged. Entering
// confirmed credits eco points if the order has none yet. Entering cancelled
// never claws back already-credited points: the product was still rescued
// from expiry, which is deliberate policy.
func (s *OrderService) TransitionStatus(orderID string, newStatus models.OrderStatus, actor string) (*models.Order, error) {
	if !models.IsValidStatus(string(newStatus)) {
		return nil, models.NewValidationError("status", fmt.Sprintf("unknown status %q", newStatus))
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	if !models.CanTransition(order.FulfillmentMethod, order.Status, newStatus) {
		return nil, fmt.Errorf("order %s (%s): %s -> %s: %w",
			orderID, order.FulfillmentMethod, order.Status, newStatus, models.ErrInvalidTransition)
	}

	if err := s.orderRepo.UpdateStatus(orderID, newStatus); err != nil {
		return nil, err
	}
	order.Status = newStatus

	switch newStatus {
	case models.StatusConfirmed:
		if points, err := s.ecoPoints.CreditOrder(order); err != nil {
			log.Printf("Warning: failed to credit eco points for order %s: %v", order.ID, err)
		} else if points > 0 {
			log.Printf("Credited %d eco points to %s for order %s", points, order.CustomerContact, order.ID)
		}
	case models.StatusCancelled:
		// Return the units to the shelf. Credited points stay credited.
		for _, item := range order.Items {
			s.restock(item)
		}
	}

	log.Printf("Order %s moved to %s by %s", orderID, newStatus, actor)
	s.publishEvent("order.status_changed", order)
	s.notify(order.CustomerContact, fmt.Sprintf("Order %s is now %s", order.ID, newStatus))
	return order, nil
}

// publishEvent emits an order event to the broker. Best effort.
func (s *OrderService) publishEvent(routingKey string, order *models.Order) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"order_id": order.ID,
		"contact":  order.CustomerContact,
		"status":   order.Status,
		"total":    order.TotalAmount,
	})
	if err != nil {
		log.Printf("Failed to marshal order event: %v", err)
		return
	}
	if err := s.publisher.Publish("order", routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", routingKey, order.ID, err)
	}
}

// notify delivers a customer notification. Failures are logged, never
// propagated into the order operation.
func (s *OrderService) notify(contact, event string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(contact, event); err != nil {
		log.Printf("Warning: failed to notify %s: %v", contact, err)
	}
}
