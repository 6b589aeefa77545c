package models

import "time"

// CartLine is a single entry of a client-session cart. Carts are ephemeral and
// owned by the client; the server only sees them at checkout.
type CartLine struct {
	ProductID      string  `json:"product_id" validate:"required"`
	Quantity       int     `json:"quantity" validate:"required,gt=0"`
	UnitPriceAtAdd float64 `json:"unit_price_at_add"`
}

// ReservationState tracks the one-way life of a PendingPayment:
// Active -> Consumed, or Active -> expired (derived from the clock). There is
// no way back to Active.
type ReservationState int

const (
	ReservationActive ReservationState = iota
	ReservationConsumed
)

// PendingPayment is a short-lived checkout reservation: a cart snapshot tied
// to a generated PIX code and an expiry timestamp, created before any order
// row exists. It lives only in memory until it expires or is consumed by
// order creation; losing it on restart is acceptable, losing an Order is not.
type PendingPayment struct {
	TempID          string           `json:"temp_id"`
	Cart            []CartLine       `json:"cart"`
	TotalAmount     float64          `json:"total_amount"`
	PixCode         string           `json:"pix_code"`
	PixProviderRef  string           `json:"pix_provider_ref"`
	PixExpiresAt    time.Time        `json:"pix_expires_at"`
	CustomerName    string           `json:"customer_name"`
	CustomerContact string           `json:"customer_contact"`
	State           ReservationState `json:"-"`
	CreatedAt       time.Time        `json:"created_at"`
}
