package usercontext

import "github.com/gofiber/fiber/v2"

const localsKey = "USER_CONTEXT"

// DefaultAuthorID is used when an admin request names no author
const DefaultAuthorID = "admin"

// UserContext represents the admin identity of a request
type UserContext struct {
	AuthorID string `json:"author_id"`
	IsAdmin  bool   `json:"is_admin"`
}

// Set stores the user context on the fiber context
func Set(c *fiber.Ctx, uc UserContext) {
	c.Locals(localsKey, uc)
}

// GetUserContext retrieves the user context from fiber context
// Returns an anonymous context if none is set
func GetUserContext(c *fiber.Ctx) UserContext {
	if uc, ok := c.Locals(localsKey).(UserContext); ok {
		return uc
	}
	return UserContext{}
}

// IsAdmin checks if the current request passed admin authentication
func IsAdmin(c *fiber.Ctx) bool {
	return GetUserContext(c).IsAdmin
}

// GetAuthorID returns the author recorded on writes
func GetAuthorID(c *fiber.Ctx) string {
	if id := GetUserContext(c).AuthorID; id != "" {
		return id
	}
	return DefaultAuthorID
}
