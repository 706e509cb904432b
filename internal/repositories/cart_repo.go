package repositories

import (
	"storefront/internal/models"
)

// CartRepository defines the interface for cart-line data access. Every
// operation is scoped to the owning user, so one user's requests can never
// touch another user's lines.
type CartRepository interface {
	GetAllForUser(userID uint) ([]models.CartItem, error)
	GetForUser(userID, id uint) (*models.CartItem, error)
	Create(item *models.CartItem) error
	UpdateQuantity(userID, id uint, quantity int) error
	Delete(userID, id uint) error
	CountForUser(userID uint) (int64, error)
}
