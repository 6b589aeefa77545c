package models

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a near-expiration item listed by a supermarket.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" validate:"required,min=3,max=100"`
	Description string    `json:"description" validate:"omitempty,max=500"`
	Category    Category  `json:"category" gorm:"type:varchar(32)"`
	Price       float64   `json:"price" validate:"required,gt=0"` // Discounted price, not the original shelf price
	Stock       int       `json:"stock" validate:"gte=0"`
	ExpiresAt   time.Time `json:"expires_at" validate:"required"`
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
