package handlers

import (
	"log"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// ProductHandler handles the storefront page and catalog writes.
type ProductHandler struct {
	productService *services.ProductService
	cartService    *services.CartService
	store          *session.Store
	validate       *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *services.ProductService, cartService *services.CartService, store *session.Store) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		cartService:    cartService,
		store:          store,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the catalog routes. Product creation sits behind
// the admin gate.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleHome)
	router.Get("/add_product", middleware.RequireAdmin(), h.HandleAddProductPage)
	router.Post("/add_product", middleware.RequireAdmin(), h.HandleAddProduct)
}

// ProductRequest represents the add-product form.
type ProductRequest struct {
	Name        string `json:"name" form:"name" validate:"required,max=250"`
	Price       int    `json:"price" form:"price" validate:"required,gt=0"`
	Image       string `json:"image" form:"image" validate:"required,max=250"`
	Description string `json:"description" form:"description" validate:"required,max=250"`
	Type        string `json:"type" form:"type" validate:"required,max=250"`
}

// HandleHome serves the storefront page data: the catalog ordered by name and
// the cart badge for the current session.
func (h *ProductHandler) HandleHome(c *fiber.Ctx) error {
	products, err := h.productService.ListProducts()
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
		})
	}

	var cartCount int64
	user := middleware.CurrentUser(c)
	if user != nil {
		if cartCount, err = h.cartService.CountLines(user.ID); err != nil {
			log.Printf("Error counting cart lines for user %d: %v", user.ID, err)
			cartCount = 0
		}
	}

	return c.JSON(fiber.Map{
		"products":   products,
		"cart_count": cartCount,
		"logged_in":  user != nil,
		"flash":      popFlash(h.store, c),
	})
}

// HandleAddProductPage serves the add-product page data. Rendering is
// external.
func (h *ProductHandler) HandleAddProductPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"flash": popFlash(h.store, c),
	})
}

// HandleAddProduct creates a product. The admin gate has already run.
func (h *ProductHandler) HandleAddProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	product := &models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Image:       req.Image,
		Description: req.Description,
		Type:        req.Type,
	}
	if err := h.productService.CreateProduct(product); err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
		})
	}

	setFlash(h.store, c, "Product has been added successfully!")
	return c.Status(fiber.StatusCreated).JSON(product)
}
