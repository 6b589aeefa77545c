package repositories

import (
	"saveup/internal/models"
)

// EcoActionRepository defines the interface for the append-only eco-points
// ledger. There is deliberately no update or delete: entries are immutable
// and a customer's balance is always derived by summing them.
type EcoActionRepository interface {
	Append(action *models.EcoAction) error
	ListByCustomer(customerIdentifier string) ([]models.EcoAction, error)
	SumByCustomer(customerIdentifier string) (int, error)
	// ExistsForOrder reports whether the order already has a ledger entry,
	// used to keep crediting idempotent per order.
	ExistsForOrder(orderID string) (bool, error)
}
