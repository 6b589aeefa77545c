package models

import "time"

// Eco action types recorded in the ledger.
const (
	EcoActionOrderRescue = "order_rescue" // points earned by purchasing near-expiry items
	EcoActionAdjustment  = "adjustment"   // manual staff correction
)

// EcoAction is an append-only ledger entry crediting eco points to a customer.
// Entries are never mutated or deleted; a customer's balance is the sum of
// PointsEarned over their entries. The cached total on the Customer row is a
// read optimization and is reconciled to the ledger, never the other way.
type EcoAction struct {
	ID                 string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerIdentifier string    `json:"customer_identifier" gorm:"index"`
	ActionType         string    `json:"action_type" gorm:"type:varchar(32)"`
	PointsEarned       int       `json:"points_earned"`
	OrderID            string    `json:"order_id,omitempty" gorm:"index;type:varchar(36)"`
	CreatedAt          time.Time `json:"created_at"`
}
