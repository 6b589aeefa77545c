package repositories

import "saveup/internal/models"

// StaffRepository defines the interface for staff account data access.
type StaffRepository interface {
	Create(staff *models.StaffUser) error
	GetByUsername(username string) (*models.StaffUser, error)
	GetByEmail(email string) (*models.StaffUser, error)
	GetByID(id string) (*models.StaffUser, error)
}
