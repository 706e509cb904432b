package repositories

import (
	"storefront/internal/models"
)

// ProductRepository defines the interface for product data access.
// Products are append-only: the catalog has no update or delete.
type ProductRepository interface {
	GetAllOrderedByName() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
}
