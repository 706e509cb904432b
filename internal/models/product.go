package models

import "time"

// Product represents a catalog product. Price is stored in the currency's
// minor unit so totals stay integral.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(250);not null"`
	Price       int       `json:"price" gorm:"not null"`
	Image       string    `json:"image" gorm:"type:varchar(250);not null"`
	Description string    `json:"description" gorm:"type:varchar(250);not null"`
	Type        string    `json:"type" gorm:"type:varchar(250);not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
