package middleware

import (
	"crypto/subtle"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/Newsroom/internal/pkg/usercontext"
)

// AdminKeyMiddleware authenticates admin requests carrying the shared admin key
// in X-Admin-Key or a bearer Authorization header. The author recorded on
// writes comes from X-Author-ID.
func AdminKeyMiddleware(adminKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if adminKey == "" {
			log.Print("admin middleware: ADMIN_API_KEY is not set, rejecting request")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Admin API not configured"})
		}

		key := extractAdminKey(c)
		if key == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing admin key"})
		}
		if subtle.ConstantTimeCompare([]byte(key), []byte(adminKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid admin key"})
		}

		authorID := strings.TrimSpace(c.Get("X-Author-ID"))
		if authorID == "" {
			authorID = usercontext.DefaultAuthorID
		}
		usercontext.Set(c, usercontext.UserContext{AuthorID: authorID, IsAdmin: true})

		return c.Next()
	}
}

func extractAdminKey(c *fiber.Ctx) string {
	key := strings.TrimSpace(c.Get("X-Admin-Key"))
	if key != "" {
		return key
	}
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
