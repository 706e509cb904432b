package handlers

import (
	"errors"
	"fmt"
	"log"

	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// AuthHandler handles signup, login, and logout.
type AuthHandler struct {
	authService *services.AuthService
	store       *session.Store
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, store *session.Store) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		store:       store,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/signup", h.HandleSignupPage)
	router.Post("/signup", h.HandleSignup)
	router.Get("/login", h.HandleLoginPage)
	router.Post("/login", h.HandleLogin)
	router.Get("/logout", h.HandleLogout)
}

// SignupRequest represents the signup form.
type SignupRequest struct {
	FirstName       string `json:"first_name" form:"first_name" validate:"required,max=250"`
	LastName        string `json:"last_name" form:"last_name" validate:"required,max=250"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"required"`
}

// LoginRequest represents the login form.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// HandleSignupPage serves the signup page data. Rendering is external.
func (h *AuthHandler) HandleSignupPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"flash":     popFlash(h.store, c),
		"logged_in": middleware.CurrentUser(c) != nil,
	})
}

// HandleSignup creates an account and logs the new user in. A password
// mismatch blocks account creation outright.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing signup request body: %v", err)
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

	user, err := h.authService.Register(req.FirstName, req.LastName, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPasswordMismatch):
			setFlash(h.store, c, "Your passwords do not match. Please try again")
			return c.Redirect("/signup", fiber.StatusSeeOther)
		case errors.Is(err, services.ErrDuplicateEmail):
			setFlash(h.store, c, "This email is already registered. Please log in")
			return c.Redirect("/signup", fiber.StatusSeeOther)
		default:
			log.Printf("Error registering user: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not register user",
			})
		}
	}

	if err := h.establishSession(c, user.ID); err != nil {
		log.Printf("Error establishing session after signup: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not establish session",
		})
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleLoginPage serves the login page data. Rendering is external.
func (h *AuthHandler) HandleLoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"flash":     popFlash(h.store, c),
		"logged_in": middleware.CurrentUser(c) != nil,
	})
}

// HandleLogin authenticates the user and establishes a session.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
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

	user, err := h.authService.Authenticate(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownEmail):
			setFlash(h.store, c, "This email has not been registered. Please try again")
			return c.Redirect("/login", fiber.StatusSeeOther)
		case errors.Is(err, services.ErrInvalidPassword):
			setFlash(h.store, c, "You have entered the wrong password. Please try again")
			return c.Redirect("/login", fiber.StatusSeeOther)
		default:
			log.Printf("Error during login for %s: %v", req.Email, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not log in",
			})
		}
	}

	if err := h.establishSession(c, user.ID); err != nil {
		log.Printf("Error establishing session after login: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not establish session",
		})
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleLogout destroys the session's identity association.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err == nil {
		if err := sess.Destroy(); err != nil {
			log.Printf("Error destroying session: %v", err)
		}
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// establishSession regenerates the session and binds it to the user ID, so a
// pre-login session ID is never carried into an authenticated one.
func (h *AuthHandler) establishSession(c *fiber.Ctx, userID uint) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if err := sess.Regenerate(); err != nil {
		return fmt.Errorf("regenerate session: %w", err)
	}
	sess.Set(middleware.SessionUserKey, userID)
	if err := sess.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// validationMessages flattens validator errors into a field → message map.
func validationMessages(err error) map[string]string {
	messages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			messages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return messages
}
