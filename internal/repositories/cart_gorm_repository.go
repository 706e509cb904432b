package repositories

import (
	"fmt"
	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetAllForUser retrieves a user's cart lines ordered by product ID, with the
// product association loaded for subtotal computation.
func (r *GORMCartRepository) GetAllForUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("product_id asc").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list cart for user %d: %w", userID, err)
	}
	return items, nil
}

// GetForUser retrieves one cart line, but only if it belongs to the user.
func (r *GORMCartRepository) GetForUser(userID, id uint) (*models.CartItem, error) {
	var item models.CartItem
	err := translate(r.db.Preload("Product").
		First(&item, "id = ? AND user_id = ?", id, userID).Error)
	if err != nil {
		return nil, fmt.Errorf("cart item %d for user %d: %w", id, userID, err)
	}
	return &item, nil
}

// Create inserts a new cart line. A violation of the (user_id, product_id)
// unique index surfaces as ErrDuplicateKey.
func (r *GORMCartRepository) Create(item *models.CartItem) error {
	// Omit the association: the product already exists and must not be
	// upserted alongside the line.
	if err := translate(r.db.Omit("Product").Create(item).Error); err != nil {
		return fmt.Errorf("create cart item: %w", err)
	}
	return nil
}

// UpdateQuantity sets the quantity of an owned cart line.
func (r *GORMCartRepository) UpdateQuantity(userID, id uint, quantity int) error {
	res := r.db.Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("update cart item %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		// GORM does not report ErrRecordNotFound for updates, so we check
		// RowsAffected ourselves.
		return fmt.Errorf("cart item %d for user %d: %w", id, userID, ErrNotFound)
	}
	return nil
}

// Delete removes an owned cart line.
func (r *GORMCartRepository) Delete(userID, id uint) error {
	res := r.db.Delete(&models.CartItem{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return fmt.Errorf("delete cart item %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %d for user %d: %w", id, userID, ErrNotFound)
	}
	return nil
}

// CountForUser returns the number of lines in a user's cart.
func (r *GORMCartRepository) CountForUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.CartItem{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count cart for user %d: %w", userID, err)
	}
	return count, nil
}
