package repositories

import (
	"saveup/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	// DecrementStock atomically reduces the stock of a product by quantity.
	// Fails with models.ErrInsufficientStock if fewer units remain.
	DecrementStock(id string, quantity int) error
}
