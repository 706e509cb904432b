package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const flashKey = "flash"

// setFlash stores a one-shot message in the session; the next rendered page
// picks it up and clears it.
func setFlash(store *session.Store, c *fiber.Ctx, message string) {
	sess, err := store.Get(c)
	if err != nil {
		log.Printf("Failed to get session for flash: %v", err)
		return
	}
	sess.Set(flashKey, message)
	if err := sess.Save(); err != nil {
		log.Printf("Failed to save flash: %v", err)
	}
}

// popFlash returns the pending flash message, if any, and clears it.
func popFlash(store *session.Store, c *fiber.Ctx) string {
	sess, err := store.Get(c)
	if err != nil {
		return ""
	}
	message, ok := sess.Get(flashKey).(string)
	if !ok {
		return ""
	}
	sess.Delete(flashKey)
	if err := sess.Save(); err != nil {
		log.Printf("Failed to clear flash: %v", err)
	}
	return message
}
