package repositories

import (
	"fmt"
	"sync"
	"time"

	"saveup/internal/models"

	"github.com/google/uuid"
)

// MockEcoActionRepository is an in-memory implementation of EcoActionRepository.
type MockEcoActionRepository struct {
	actions []models.EcoAction
	mu      sync.RWMutex
}

// NewMockEcoActionRepository creates a new instance of MockEcoActionRepository.
func NewMockEcoActionRepository() *MockEcoActionRepository {
	return &MockEcoActionRepository{}
}

// Append adds a new ledger entry.
func (r *MockEcoActionRepository) Append(action *models.EcoAction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if action.ID == "" {
		action.ID = uuid.New().String()
	}
	if action.CreatedAt.IsZero() {
		action.CreatedAt = time.Now()
	}
	r.actions = append(r.actions, *action)
	return nil
}

// ListByCustomer returns all entries for a customer.
func (r *MockEcoActionRepository) ListByCustomer(customerIdentifier string) ([]models.EcoAction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.EcoAction
	for _, a := range r.actions {
		if a.CustomerIdentifier == customerIdentifier {
			out = append(out, a)
		}
	}
	return out, nil
}

// SumByCustomer returns the total points for a customer.
func (r *MockEcoActionRepository) SumByCustomer(customerIdentifier string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, a := range r.actions {
		if a.CustomerIdentifier == customerIdentifier {
			total += a.PointsEarned
		}
	}
	return total, nil
}

// ExistsForOrder reports whether an entry references the order.
func (r *MockEcoActionRepository) ExistsForOrder(orderID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if orderID == "" {
		return false, fmt.Errorf("order ID is required")
	}
	for _, a := range r.actions {
		if a.OrderID == orderID {
			return true, nil
		}
	}
	return false, nil
}
