package repositories

import (
	"saveup/internal/models"
)

// CustomerRepository defines the interface for customer identity data access.
type CustomerRepository interface {
	Create(customer *models.Customer) error
	GetByID(id string) (*models.Customer, error)
	// FindByContact matches a customer whose email OR phone equals contact.
	FindByContact(contact string) (*models.Customer, error)
	// UpdatePointsCache overwrites the cached eco-points total. The ledger
	// sum is authoritative; the cache is only ever reconciled towards it.
	UpdatePointsCache(id string, points int) error
}
