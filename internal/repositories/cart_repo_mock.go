package repositories

import (
	"fmt"
	"sort"
	"sync"

	"storefront/internal/models"
)

// MockCartRepository is an in-memory implementation of CartRepository. It
// enforces the same (user_id, product_id) uniqueness the GORM index provides,
// and hydrates the Product association from an optional product repository so
// subtotals work the way a Preload would.
type MockCartRepository struct {
	items    map[uint]models.CartItem
	nextID   uint
	products ProductRepository
	mu       sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
// products may be nil when tests do not need hydrated associations.
func NewMockCartRepository(products ProductRepository) *MockCartRepository {
	return &MockCartRepository{
		items:    make(map[uint]models.CartItem),
		nextID:   1,
		products: products,
	}
}

func (r *MockCartRepository) hydrate(item *models.CartItem) {
	if r.products == nil {
		return
	}
	if product, err := r.products.GetByID(item.ProductID); err == nil {
		item.Product = *product
	}
}

// GetAllForUser returns a user's cart lines ordered by product ID.
func (r *MockCartRepository) GetAllForUser(userID uint) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	itemList := make([]models.CartItem, 0)
	for _, item := range r.items {
		if item.UserID != userID {
			continue
		}
		r.hydrate(&item)
		itemList = append(itemList, item)
	}
	sort.Slice(itemList, func(i, j int) bool {
		return itemList[i].ProductID < itemList[j].ProductID
	})
	return itemList, nil
}

// GetForUser returns one cart line if it belongs to the user.
func (r *MockCartRepository) GetForUser(userID, id uint) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return nil, fmt.Errorf("cart item %d for user %d: %w", id, userID, ErrNotFound)
	}
	r.hydrate(&item)
	return &item, nil
}

// Create adds a new cart line, rejecting a duplicate (user, product) pair.
func (r *MockCartRepository) Create(item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.UserID == item.UserID && existing.ProductID == item.ProductID {
			return fmt.Errorf("create cart item: %w", ErrDuplicateKey)
		}
	}
	if item.ID == 0 {
		item.ID = r.nextID
	}
	if item.ID >= r.nextID {
		r.nextID = item.ID + 1
	}
	r.hydrate(item)
	r.items[item.ID] = *item
	return nil
}

// UpdateQuantity sets the quantity of an owned cart line.
func (r *MockCartRepository) UpdateQuantity(userID, id uint, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return fmt.Errorf("cart item %d for user %d: %w", id, userID, ErrNotFound)
	}
	item.Quantity = quantity
	r.items[id] = item
	return nil
}

// Delete removes an owned cart line.
func (r *MockCartRepository) Delete(userID, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return fmt.Errorf("cart item %d for user %d: %w", id, userID, ErrNotFound)
	}
	delete(r.items, id)
	return nil
}

// CountForUser returns the number of lines in a user's cart.
func (r *MockCartRepository) CountForUser(userID uint) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, item := range r.items {
		if item.UserID == userID {
			count++
		}
	}
	return count, nil
}
