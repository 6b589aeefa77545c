package repositories

import (
	"fmt"

	"saveup/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCustomerRepository is a GORM implementation of CustomerRepository.
type GORMCustomerRepository struct {
	db *gorm.DB
}

// NewGORMCustomerRepository creates a new instance of GORMCustomerRepository.
func NewGORMCustomerRepository(db *gorm.DB) *GORMCustomerRepository {
	return &GORMCustomerRepository{
		db: db,
	}
}

// Create creates a new customer in the database.
func (r *GORMCustomerRepository) Create(customer *models.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	if err := r.db.Create(customer).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// GetByID retrieves a customer by their ID.
func (r *GORMCustomerRepository) GetByID(id string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("customer %s: %w", id, models.ErrCustomerNotFound)
		}
		return nil, fmt.Errorf("failed to get customer by ID %s: %w", id, err)
	}
	return &customer, nil
}

// FindByContact matches on email OR phone, whichever the caller supplied.
func (r *GORMCustomerRepository) FindByContact(contact string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, "email = ? OR phone = ?", contact, contact).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("contact %s: %w", contact, models.ErrCustomerNotFound)
		}
		return nil, fmt.Errorf("failed to find customer by contact %s: %w", contact, err)
	}
	return &customer, nil
}

// UpdatePointsCache overwrites the cached running total.
func (r *GORMCustomerRepository) UpdatePointsCache(id string, points int) error {
	res := r.db.Model(&models.Customer{}).Where("id = ?", id).
		UpdateColumn("eco_points_cache", points)
	if res.Error != nil {
		return fmt.Errorf("failed to update points cache for customer %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("customer %s: %w", id, models.ErrCustomerNotFound)
	}
	return nil
}
