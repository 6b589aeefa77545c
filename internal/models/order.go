package models

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusShipped   OrderStatus = "shipped" // delivery orders only
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// FulfillmentMethod determines how the customer receives the order, and which
// states appear in the status machine (delivery adds "shipped").
type FulfillmentMethod string

const (
	FulfillmentPickup   FulfillmentMethod = "pickup"
	FulfillmentDelivery FulfillmentMethod = "delivery"
)

// ParseFulfillmentMethod validates a raw fulfillment method string.
func ParseFulfillmentMethod(raw string) (FulfillmentMethod, error) {
	switch FulfillmentMethod(raw) {
	case FulfillmentPickup:
		return FulfillmentPickup, nil
	case FulfillmentDelivery:
		return FulfillmentDelivery, nil
	default:
		return "", NewValidationError("fulfillment_method", "must be 'pickup' or 'delivery'")
	}
}

// pickupFlow and deliveryFlow map each status to its single forward successor.
// Transitions are forward-only, one step at a time; the escape to cancelled is
// handled separately in CanTransition.
var pickupFlow = map[OrderStatus]OrderStatus{
	StatusPending:   StatusConfirmed,
	StatusConfirmed: StatusPreparing,
	StatusPreparing: StatusReady,
	StatusReady:     StatusCompleted,
}

var deliveryFlow = map[OrderStatus]OrderStatus{
	StatusPending:   StatusConfirmed,
	StatusConfirmed: StatusPreparing,
	StatusPreparing: StatusReady,
	StatusReady:     StatusShipped,
	StatusShipped:   StatusCompleted,
}

// IsTerminal reports whether no further transitions are permitted.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsValidStatus reports whether raw names a known order status.
func IsValidStatus(raw string) bool {
	switch OrderStatus(raw) {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady,
		StatusShipped, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order using the given fulfillment method
// may move from current to target. Terminal states absorb; any non-terminal
// state may be cancelled; otherwise only the immediate forward successor is
// allowed (pickup orders never see "shipped").
func CanTransition(method FulfillmentMethod, current, target OrderStatus) bool {
	if current.IsTerminal() {
		return false
	}
	if target == StatusCancelled {
		return true
	}
	flow := pickupFlow
	if method == FulfillmentDelivery {
		flow = deliveryFlow
	}
	return flow[current] == target
}

// OrderItem is a single line within an order. PriceAtTime is snapshotted at
// order creation and never recalculated: historical orders keep their value
// even if the product's current price changes later.
type OrderItem struct {
	ID          uint    `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID     string  `json:"-" gorm:"index;type:varchar(36)"`
	ProductID   string  `json:"product_id" gorm:"type:varchar(36)"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	PriceAtTime float64 `json:"price_at_time"`
}

// Order is the durable record of a purchase. Immutable after creation except
// for Status and the delivery metadata.
type Order struct {
	ID                string            `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerName      string            `json:"customer_name"`
	CustomerContact   string            `json:"customer_contact" gorm:"index"` // email or phone
	FulfillmentMethod FulfillmentMethod `json:"fulfillment_method" gorm:"type:varchar(16)"`
	DeliveryAddress   string            `json:"delivery_address,omitempty"`
	Status            OrderStatus       `json:"status" gorm:"type:varchar(16)"`
	TotalAmount       float64           `json:"total_amount"`
	Items             []OrderItem       `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}
