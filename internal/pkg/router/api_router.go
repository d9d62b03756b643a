package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/ManuelReschke/Newsroom/app/controllers"
	"github.com/ManuelReschke/Newsroom/internal/pkg/middleware"
)

type ApiRouter struct {
	deps Dependencies
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Admin-Key, X-Author-ID",
	}), limiter.New(limiter.Config{
		Max:     limitOr(h.deps.APIRateLimit, defaultAPIRateLimit),
		Storage: h.deps.LimiterStorage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "api:" + c.IP()
		},
		Next: func(c *fiber.Ctx) bool {
			// long-lived streams are not counted against the window
			return c.Path() == "/api/v1/articles/changes"
		},
	}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1")
	h.registerPublicRoutes(v1)
	h.registerAdminRoutes(v1)
}

func (h ApiRouter) registerPublicRoutes(v1 fiber.Router) {
	articles := controllers.NewArticleController(h.deps.Repos.Article, h.deps.Views)
	ads := controllers.NewAdController(h.deps.Repos.Advertisement, h.deps.Ads)
	stream := controllers.NewRealtimeController(h.deps.Stream, h.deps.Changes)

	v1.Get("/categories", articles.HandleCategories)
	v1.Get("/articles", articles.HandleListArticles)
	v1.Get("/articles/featured", articles.HandleFeaturedArticles)
	v1.Get("/articles/trending", articles.HandleTrendingArticles)
	v1.Get("/articles/changes", stream.HandleArticleChanges)
	v1.Get("/articles/:id", articles.HandleGetArticle)
	v1.Get("/ads", ads.HandleActiveAds)
	v1.Post("/ads/:id/click", ads.HandleAdClick)
}

func (h ApiRouter) registerAdminRoutes(v1 fiber.Router) {
	articles := controllers.NewAdminArticleController(h.deps.Repos.Article, h.deps.Changes, h.deps.Stats)
	ads := controllers.NewAdminAdController(h.deps.Repos.Advertisement, h.deps.Stats)

	admin := v1.Group("/admin", middleware.AdminKeyMiddleware(h.deps.AdminKey))
	admin.Get("/stats", controllers.HandleAdminStats(h.deps.Stats))

	admin.Get("/articles", articles.HandleListArticles)
	admin.Post("/articles", articles.HandleCreateArticle)
	admin.Get("/articles/:id", articles.HandleGetArticle)
	admin.Put("/articles/:id", articles.HandleUpdateArticle)
	admin.Delete("/articles/:id", articles.HandleDeleteArticle)

	admin.Get("/ads", ads.HandleListAds)
	admin.Post("/ads", ads.HandleCreateAd)
	admin.Delete("/ads/:id", ads.HandleDeleteAd)
}

func NewApiRouter(deps Dependencies) *ApiRouter {
	return &ApiRouter{deps: deps}
}
