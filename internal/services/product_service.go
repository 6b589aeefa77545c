package services

import (
	"saveup/internal/models"
	"saveup/internal/repositories"
)

// ProductService handles business logic related to the near-expiry catalog.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CheckAvailability reports whether the requested quantity of a product is in
// stock right now.
func (s *ProductService) CheckAvailability(id string, quantity int) (bool, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return false, err
	}
	return product.Stock >= quantity, nil
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if product.ExpiresAt.IsZero() {
		return models.NewValidationError("expires_at", "expiration date is required")
	}
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}
