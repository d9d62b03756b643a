package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ProxyAllowedHeaders are the request headers browsers may send to the LLM proxies
var ProxyAllowedHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}

// ProxyCORS allows every origin on the proxy endpoints. Preflight requests are
// answered with 200 and an empty body; every other response carries the
// same headers, including error responses.
func ProxyCORS() fiber.Handler {
	allowHeaders := strings.Join(ProxyAllowedHeaders, ", ")
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		c.Set(fiber.HeaderAccessControlAllowHeaders, allowHeaders)

		if c.Method() == fiber.MethodOptions {
			c.Set(fiber.HeaderAccessControlAllowMethods, "POST, OPTIONS")
			return c.SendStatus(fiber.StatusOK)
		}
		return c.Next()
	}
}
