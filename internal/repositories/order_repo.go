package repositories

import (
	"saveup/internal/models"
)

// OrderRepository defines the interface for order data access. Create must
// commit the order together with its items durably before returning: the
// order row is the single durable commit point of checkout.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	// GetByCustomerContact matches orders whose customer contact equals the
	// supplied email or phone.
	GetByCustomerContact(contact string) ([]models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id string, status models.OrderStatus) error
}
