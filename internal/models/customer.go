package models

import "gorm.io/gorm"

// Customer is a consumer identity. Lookup matches on email OR phone, whichever
// the caller supplies. EcoPointsCache is a cached running total of the eco
// ledger; the ledger sum stays authoritative.
type Customer struct {
	ID             string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name           string `json:"name" validate:"required,min=2,max=100"`
	Email          string `json:"email" gorm:"index;type:varchar(255)" validate:"omitempty,email"`
	Phone          string `json:"phone" gorm:"index;type:varchar(32)"`
	EcoPointsCache int    `json:"eco_points_cache"`
	gorm.Model
}
