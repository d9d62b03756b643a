package router

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/Newsroom/app/controllers"
	"github.com/ManuelReschke/Newsroom/app/repository"
)

type Router interface {
	InstallRouter(app *fiber.App)
}

// Dependencies are the handles every route group is built from
type Dependencies struct {
	// Stream bounds the lifetime of open server-sent event streams
	Stream context.Context

	Repos     *repository.Repositories
	Generator controllers.DraftGenerator
	Chatbot   controllers.ChatAnswerer
	Views     controllers.ViewRecorder
	Ads       controllers.AdTracker
	Changes   interface {
		controllers.ChangePublisher
		controllers.ChangeSubscriber
	}
	Stats controllers.StatsProvider

	AdminKey string

	// LimiterStorage backs the rate limiters; nil keeps counters in memory
	LimiterStorage fiber.Storage
	// requests per minute and client IP; zero picks the default
	APIRateLimit   int
	ProxyRateLimit int
}

const (
	defaultAPIRateLimit   = 120
	defaultProxyRateLimit = 20
)

func limitOr(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func InstallRouter(app *fiber.App, deps Dependencies) {
	setup(app, NewProxyRouter(deps), NewApiRouter(deps))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
