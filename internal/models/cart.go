package models

import "time"

// CartItem is one line of a user's cart: a product and a quantity. The
// composite unique index guarantees a product appears at most once per user,
// even under concurrent adds; the duplicate-key error from the store is the
// authoritative conflict signal.
type CartItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_cart_user_product"`
	ProductID uint      `json:"product_id" gorm:"not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1;check:quantity >= 1"`
	Product   Product   `json:"product" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subtotal is the line's contribution to the cart total.
func (ci *CartItem) Subtotal() int {
	return ci.Quantity * ci.Product.Price
}

// CartSummary is the cart view returned by listing and checkout.
type CartSummary struct {
	Items []CartItem `json:"items"`
	Count int        `json:"count"`
	Total int        `json:"total"`
}
