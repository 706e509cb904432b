package services_test

import (
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCheckoutPublisher is a mock implementation of services.CheckoutPublisher
type MockCheckoutPublisher struct {
	mock.Mock
}

func (m *MockCheckoutPublisher) PublishCheckoutCompleted(event rabbitmq.CheckoutEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func newCartFixture(t *testing.T) (*services.CartService, *repositories.MockCartRepository, *repositories.MockProductRepository) {
	t.Helper()
	productRepo := repositories.NewMockProductRepository()
	cartRepo := repositories.NewMockCartRepository(productRepo)
	return services.NewCartService(cartRepo, productRepo, nil), cartRepo, productRepo
}

func seedProduct(t *testing.T, repo *repositories.MockProductRepository, name string, price int) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, Price: price, Image: name + ".png", Description: name, Type: "grocery"}
	assert.NoError(t, repo.Create(product))
	return product
}

func TestCartService_AddToCart(t *testing.T) {
	service, _, productRepo := newCartFixture(t)
	product := seedProduct(t, productRepo, "Apples", 300)

	item, err := service.AddToCart(2, product.ID)
	assert.NoError(t, err)
	assert.Equal(t, uint(2), item.UserID)
	assert.Equal(t, product.ID, item.ProductID)
	assert.Equal(t, 1, item.Quantity)

	// Unknown product
	_, err = service.AddToCart(2, 999)
	assert.ErrorIs(t, err, services.ErrProductNotFound)
}

func TestCartService_AddToCartTwiceConflicts(t *testing.T) {
	service, _, productRepo := newCartFixture(t)
	product := seedProduct(t, productRepo, "Apples", 300)

	_, err := service.AddToCart(2, product.ID)
	assert.NoError(t, err)

	// The second add hits the (user, product) unique constraint: no new line.
	_, err = service.AddToCart(2, product.ID)
	assert.ErrorIs(t, err, services.ErrAlreadyInCart)

	items, err := service.ListCart(2)
	assert.NoError(t, err)
	assert.Len(t, items, 1)

	// A different user's cart is unaffected by the constraint.
	_, err = service.AddToCart(3, product.ID)
	assert.NoError(t, err)
}

func TestCartService_RemoveThenAddYieldsFreshLine(t *testing.T) {
	service, _, productRepo := newCartFixture(t)
	product := seedProduct(t, productRepo, "Apples", 300)

	first, err := service.AddToCart(2, product.ID)
	assert.NoError(t, err)
	_, err = service.UpdateQuantity(2, first.ID, 5)
	assert.NoError(t, err)

	assert.NoError(t, service.Remove(2, first.ID))

	second, err := service.AddToCart(2, product.ID)
	assert.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 1, second.Quantity) // No residual quantity

	// Removing an absent line fails cleanly.
	assert.ErrorIs(t, service.Remove(2, first.ID), services.ErrItemNotFound)
}

func TestCartService_UpdateQuantityClampsToOne(t *testing.T) {
	service, _, productRepo := newCartFixture(t)
	product := seedProduct(t, productRepo, "Apples", 300)

	item, err := service.AddToCart(2, product.ID)
	assert.NoError(t, err)

	for _, requested := range []int{0, -1, -100} {
		updated, err := service.UpdateQuantity(2, item.ID, requested)
		assert.NoError(t, err)
		assert.Equal(t, 1, updated.Quantity, "requested=%d", requested)
	}

	updated, err := service.UpdateQuantity(2, item.ID, 7)
	assert.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)

	// Absent line
	_, err = service.UpdateQuantity(2, 999, 3)
	assert.ErrorIs(t, err, services.ErrItemNotFound)
}

func TestCartService_OperationsAreOwnerScoped(t *testing.T) {
	service, _, productRepo := newCartFixture(t)
	product := seedProduct(t, productRepo, "Apples", 300)

	item, err := service.AddToCart(2, product.ID)
	assert.NoError(t, err)

	// Another user cannot see, update, or remove the line.
	_, err = service.UpdateQuantity(3, item.ID, 5)
	assert.ErrorIs(t, err, services.ErrItemNotFound)
	assert.ErrorIs(t, service.Remove(3, item.ID), services.ErrItemNotFound)

	items, err := service.ListCart(3)
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartService_Total(t *testing.T) {
	service, _, _ := newCartFixture(t)

	// Empty cart totals zero.
	assert.Equal(t, 0, service.Total(nil))

	items := []models.CartItem{
		{Quantity: 2, Product: models.Product{Price: 10}},
		{Quantity: 1, Product: models.Product{Price: 5}},
	}
	assert.Equal(t, 25, service.Total(items))

	// The sum is commutative: reordering lines never changes the total.
	reversed := []models.CartItem{items[1], items[0]}
	assert.Equal(t, service.Total(items), service.Total(reversed))
}

func TestCartService_ListCartOrderedByProduct(t *testing.T) {
	service, _, productRepo := newCartFixture(t)
	bananas := seedProduct(t, productRepo, "Bananas", 150)
	apples := seedProduct(t, productRepo, "Apples", 300)

	// Insert in reverse product order.
	_, err := service.AddToCart(2, apples.ID)
	assert.NoError(t, err)
	_, err = service.AddToCart(2, bananas.ID)
	assert.NoError(t, err)

	items, err := service.ListCart(2)
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Less(t, items[0].ProductID, items[1].ProductID)

	count, err := service.CountLines(2)
	assert.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestCartService_Checkout(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	cartRepo := repositories.NewMockCartRepository(productRepo)
	publisher := new(MockCheckoutPublisher)
	service := services.NewCartService(cartRepo, productRepo, publisher)

	apples := seedProduct(t, productRepo, "Apples", 10)
	pears := seedProduct(t, productRepo, "Pears", 5)

	item, err := service.AddToCart(2, apples.ID)
	assert.NoError(t, err)
	_, err = service.UpdateQuantity(2, item.ID, 2)
	assert.NoError(t, err)
	_, err = service.AddToCart(2, pears.ID)
	assert.NoError(t, err)

	publisher.On("PublishCheckoutCompleted", mock.MatchedBy(func(event rabbitmq.CheckoutEvent) bool {
		return event.UserID == 2 && event.LineCount == 2 && event.Total == 25
	})).Return(nil).Once()

	summary, err := service.Checkout(2)
	assert.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, 25, summary.Total)
	publisher.AssertExpectations(t)
}

func TestCartService_CheckoutEmptyCart(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	cartRepo := repositories.NewMockCartRepository(productRepo)
	publisher := new(MockCheckoutPublisher)
	service := services.NewCartService(cartRepo, productRepo, publisher)

	summary, err := service.Checkout(2)
	assert.NoError(t, err)
	assert.Equal(t, 0, summary.Count)
	assert.Equal(t, 0, summary.Total)
	// No event for an empty cart.
	publisher.AssertNotCalled(t, "PublishCheckoutCompleted", mock.Anything)
}
