package middleware

import (
	"log"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Locals key under which the resolved user is stored for the request.
const currentUserKey = "current_user"

// Session key under which the logged-in user's ID is stored.
const SessionUserKey = "user_id"

// LoadUser resolves the session's identity on every request and stores it in
// the request locals. It fails open: a missing session, a stale user ID, or a
// lookup error all leave the request anonymous rather than failing it.
func LoadUser(store *session.Store, authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			log.Printf("Failed to load session: %v", err)
			return c.Next()
		}

		userID, ok := sess.Get(SessionUserKey).(uint)
		if !ok {
			return c.Next()
		}

		user, err := authService.ResolveUser(userID)
		if err != nil {
			// The session refers to a user that no longer resolves. Treat the
			// request as anonymous.
			return c.Next()
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// RequireAuth redirects anonymous requests to the login page.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// RequireAdmin rejects any request whose identity is not an admin with a 403.
// Anonymous requests get the same rejection, not a login redirect.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if !user.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Forbidden",
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the user resolved by LoadUser, or nil for anonymous
// requests.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserKey).(*models.User)
	return user
}
