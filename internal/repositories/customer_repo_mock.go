package repositories

import (
	"fmt"
	"sync"

	"saveup/internal/models"

	"github.com/google/uuid"
)

// MockCustomerRepository is an in-memory implementation of CustomerRepository.
type MockCustomerRepository struct {
	customers map[string]models.Customer
	mu        sync.RWMutex
}

// NewMockCustomerRepository creates a new instance of MockCustomerRepository.
func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{
		customers: make(map[string]models.Customer),
	}
}

// Create adds a new customer.
func (r *MockCustomerRepository) Create(customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	r.customers[customer.ID] = *customer
	return nil
}

// GetByID returns a customer by ID.
func (r *MockCustomerRepository) GetByID(id string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[id]
	if !ok {
		return nil, fmt.Errorf("customer %s: %w", id, models.ErrCustomerNotFound)
	}
	return &customer, nil
}

// FindByContact matches on email OR phone.
func (r *MockCustomerRepository) FindByContact(contact string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.customers {
		if (c.Email != "" && c.Email == contact) || (c.Phone != "" && c.Phone == contact) {
			copied := c
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("contact %s: %w", contact, models.ErrCustomerNotFound)
}

// UpdatePointsCache overwrites the cached running total.
func (r *MockCustomerRepository) UpdatePointsCache(id string, points int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	customer, ok := r.customers[id]
	if !ok {
		return fmt.Errorf("customer %s: %w", id, models.ErrCustomerNotFound)
	}
	customer.EcoPointsCache = points
	r.customers[id] = customer
	return nil
}
