package repositories

import (
	"fmt"
	"time"

	"saveup/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMEcoActionRepository is a GORM implementation of EcoActionRepository.
type GORMEcoActionRepository struct {
	db *gorm.DB
}

// NewGORMEcoActionRepository creates a new instance of GORMEcoActionRepository.
func NewGORMEcoActionRepository(db *gorm.DB) *GORMEcoActionRepository {
	return &GORMEcoActionRepository{
		db: db,
	}
}

// Append inserts a new ledger entry.
func (r *GORMEcoActionRepository) Append(action *models.EcoAction) error {
	if action.ID == "" {
		action.ID = uuid.New().String()
	}
	if action.CreatedAt.IsZero() {
		action.CreatedAt = time.Now()
	}
	if err := r.db.Create(action).Error; err != nil {
		return fmt.Errorf("failed to append eco action: %w", err)
	}
	return nil
}

// ListByCustomer retrieves all ledger entries for a customer, newest first.
func (r *GORMEcoActionRepository) ListByCustomer(customerIdentifier string) ([]models.EcoAction, error) {
	var actions []models.EcoAction
	if err := r.db.Where("customer_identifier = ?", customerIdentifier).
		Order("created_at DESC").Find(&actions).Error; err != nil {
		return nil, fmt.Errorf("failed to list eco actions for %s: %w", customerIdentifier, err)
	}
	return actions, nil
}

// SumByCustomer returns the authoritative points balance for a customer.
func (r *GORMEcoActionRepository) SumByCustomer(customerIdentifier string) (int, error) {
	var total int64
	err := r.db.Model(&models.EcoAction{}).
		Where("customer_identifier = ?", customerIdentifier).
		Select("COALESCE(SUM(points_earned), 0)").Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum eco actions for %s: %w", customerIdentifier, err)
	}
	return int(total), nil
}

// ExistsForOrder reports whether an entry already references the order.
func (r *GORMEcoActionRepository) ExistsForOrder(orderID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.EcoAction{}).Where("order_id = ?", orderID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check eco actions for order %s: %w", orderID, err)
	}
	return count > 0, nil
}
