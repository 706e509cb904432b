package handlers

import (
	"errors"
	"log"

	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// CartHandler handles the cart workflow routes.
type CartHandler struct {
	cartService *services.CartService
	store       *session.Store
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService, store *session.Store) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		store:       store,
	}
}

// RegisterRoutes registers the cart routes. Every route requires a logged-in
// session; anonymous requests are redirected to the login page.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	authed := router.Group("", middleware.RequireAuth())
	authed.Get("/my_cart", h.HandleViewCart)
	authed.Get("/add_to_cart/:product_id", h.HandleAddToCart)
	authed.Post("/add_to_cart/:product_id", h.HandleAddToCart)
	authed.Get("/delete_from_cart/:cart_id", h.HandleDeleteFromCart)
	authed.Get("/update_cart/:cart_id", h.HandleViewCart)
	authed.Post("/update_cart/:cart_id", h.HandleUpdateCart)
	authed.Get("/checkout", h.HandleCheckout)
}

// UpdateCartRequest represents the quantity form on the cart page.
type UpdateCartRequest struct {
	Quantity int `json:"quantity" form:"quantity"`
}

// HandleViewCart serves the cart page data: the user's lines, ordered by
// product, with the shared total.
func (h *CartHandler) HandleViewCart(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	items, err := h.cartService.ListCart(user.ID)
	if err != nil {
		log.Printf("Error listing cart for user %d: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve cart",
		})
	}

	return c.JSON(fiber.Map{
		"cart_items": items,
		"cart_count": len(items),
		"total_sum":  h.cartService.Total(items),
		"logged_in":  true,
		"flash":      popFlash(h.store, c),
	})
}

// HandleAddToCart puts a product into the user's cart and sends them back to
// the storefront with a flash message either way.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	productID, err := c.ParamsInt("product_id")
	if err != nil || productID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product id",
		})
	}

	_, err = h.cartService.AddToCart(user.ID, uint(productID))
	switch {
	case err == nil:
		setFlash(h.store, c, "Product has been added to your cart!")
		return c.Redirect("/", fiber.StatusSeeOther)
	case errors.Is(err, services.ErrAlreadyInCart):
		setFlash(h.store, c, "Product already exists in your cart!")
		return c.Redirect("/", fiber.StatusSeeOther)
	case errors.Is(err, services.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found",
		})
	default:
		log.Printf("Error adding product %d to cart for user %d: %v", productID, user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add product to cart",
		})
	}
}

// HandleUpdateCart sets a line's quantity (clamped to at least 1) and sends
// the user back to the cart.
func (h *CartHandler) HandleUpdateCart(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	cartID, err := c.ParamsInt("cart_id")
	if err != nil || cartID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid cart item id",
		})
	}

	var req UpdateCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if _, err := h.cartService.UpdateQuantity(user.ID, uint(cartID), req.Quantity); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cart item not found",
			})
		}
		log.Printf("Error updating cart item %d for user %d: %v", cartID, user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart item",
		})
	}
	return c.Redirect("/my_cart", fiber.StatusSeeOther)
}

// HandleDeleteFromCart removes a line and sends the user back to the cart.
func (h *CartHandler) HandleDeleteFromCart(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	cartID, err := c.ParamsInt("cart_id")
	if err != nil || cartID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid cart item id",
		})
	}

	if err := h.cartService.Remove(user.ID, uint(cartID)); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cart item not found",
			})
		}
		log.Printf("Error deleting cart item %d for user %d: %v", cartID, user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete cart item",
		})
	}
	return c.Redirect("/my_cart", fiber.StatusSeeOther)
}

// HandleCheckout totals the cart. There is no payment gateway; when a broker
// is configured the service publishes a checkout event.
func (h *CartHandler) HandleCheckout(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	summary, err := h.cartService.Checkout(user.ID)
	if err != nil {
		log.Printf("Error during checkout for user %d: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not check out",
		})
	}
	return c.JSON(summary)
}
