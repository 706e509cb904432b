package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/rabbitmq"
)

// CheckoutPublisher publishes checkout events to a message broker.
type CheckoutPublisher interface {
	PublishCheckoutCompleted(event rabbitmq.CheckoutEvent) error
}

// CartService handles business logic for the cart workflow: add, update,
// remove, list, and total. Every operation is scoped to the owning user.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	publisher   CheckoutPublisher // nil when event publishing is disabled
}

// NewCartService creates a new CartService. publisher may be nil.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository, publisher CheckoutPublisher) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// AddToCart puts a product into the user's cart with quantity 1. The product
// must exist, and a product can appear at most once per cart: the store's
// unique index is the authoritative guard, so two concurrent adds cannot both
// insert.
func (s *CartService) AddToCart(userID, productID uint) (*models.CartItem, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to look up product %d: %w", productID, err)
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: product.ID,
		Quantity:  1,
		Product:   *product,
	}
	if err := s.cartRepo.Create(item); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrAlreadyInCart
		}
		return nil, fmt.Errorf("failed to add product %d to cart: %w", productID, err)
	}
	return item, nil
}

// UpdateQuantity sets the quantity of an owned cart line. Requests below 1
// are clamped to 1; there is no upper bound.
func (s *CartService) UpdateQuantity(userID, itemID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}
	if err := s.cartRepo.UpdateQuantity(userID, itemID, quantity); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to update cart item %d: %w", itemID, err)
	}
	return s.cartRepo.GetForUser(userID, itemID)
}

// Remove deletes an owned cart line.
func (s *CartService) Remove(userID, itemID uint) error {
	if err := s.cartRepo.Delete(userID, itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("failed to remove cart item %d: %w", itemID, err)
	}
	return nil
}

// ListCart returns the user's cart lines ordered by product ID, products
// loaded.
func (s *CartService) ListCart(userID uint) ([]models.CartItem, error) {
	return s.cartRepo.GetAllForUser(userID)
}

// CountLines returns the number of lines in the user's cart, for the badge on
// the product listing.
func (s *CartService) CountLines(userID uint) (int64, error) {
	return s.cartRepo.CountForUser(userID)
}

// Total sums quantity × price over the given lines. The sum is commutative,
// so the listing order never changes the result; an empty cart totals zero.
// Both the cart view and checkout go through here so the two can never
// diverge.
func (s *CartService) Total(items []models.CartItem) int {
	total := 0
	for i := range items {
		total += items[i].Subtotal()
	}
	return total
}

// Checkout totals the user's cart and, when a broker is configured, publishes
// a checkout event. There is no payment integration.
func (s *CartService) Checkout(userID uint) (*models.CartSummary, error) {
	items, err := s.cartRepo.GetAllForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart for checkout: %w", err)
	}

	summary := &models.CartSummary{
		Items: items,
		Count: len(items),
		Total: s.Total(items),
	}

	if s.publisher != nil && summary.Count > 0 {
		event := rabbitmq.CheckoutEvent{
			UserID:    userID,
			LineCount: summary.Count,
			Total:     summary.Total,
			Timestamp: time.Now(),
		}
		if err := s.publisher.PublishCheckoutCompleted(event); err != nil {
			// Event delivery is best-effort; checkout itself already succeeded.
			log.Printf("Warning: failed to publish checkout event for user %d: %v", userID, err)
		}
	}
	return summary, nil
}
