package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/ManuelReschke/Newsroom/app/controllers"
	"github.com/ManuelReschke/Newsroom/internal/pkg/middleware"
)

// ProxyRouter installs the LLM proxy endpoints under /functions/v1
type ProxyRouter struct {
	deps Dependencies
}

func (p ProxyRouter) InstallRouter(app *fiber.App) {
	proxy := controllers.NewProxyController(p.deps.Generator, p.deps.Chatbot)

	// CORS runs first so preflights and limiter rejections carry the headers
	fn := app.Group("/functions/v1", middleware.ProxyCORS(), limiter.New(limiter.Config{
		Max:        limitOr(p.deps.ProxyRateLimit, defaultProxyRateLimit),
		Expiration: time.Minute,
		Storage:    p.deps.LimiterStorage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "proxy:" + c.IP()
		},
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many requests"})
		},
	}))
	fn.Post("/generate-news", proxy.HandleGenerateNews)
	fn.Post("/news-chatbot", proxy.HandleNewsChatbot)
}

func NewProxyRouter(deps Dependencies) *ProxyRouter {
	return &ProxyRouter{deps: deps}
}
