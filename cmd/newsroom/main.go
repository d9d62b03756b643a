package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/ManuelReschke/Newsroom/app/repository"
	"github.com/ManuelReschke/Newsroom/internal/pkg/cache"
	"github.com/ManuelReschke/Newsroom/internal/pkg/config"
	"github.com/ManuelReschke/Newsroom/internal/pkg/database"
	"github.com/ManuelReschke/Newsroom/internal/pkg/env"
	"github.com/ManuelReschke/Newsroom/internal/pkg/gateway"
	"github.com/ManuelReschke/Newsroom/internal/pkg/metrics/counter"
	"github.com/ManuelReschke/Newsroom/internal/pkg/newsai"
	"github.com/ManuelReschke/Newsroom/internal/pkg/realtime"
	"github.com/ManuelReschke/Newsroom/internal/pkg/router"
	"github.com/ManuelReschke/Newsroom/internal/pkg/statistics"
)

func main() {
	env.SetupEnvFile()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, background, err := NewApplication(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	if err := app.Listen(fmt.Sprintf("%s:%s", cfg.App.Host, cfg.App.Port)); err != nil {
		log.Printf("Server stopped: %v", err)
	}

	// wait for the final counter flush
	stop()
	<-background
}

// NewApplication wires the service. The returned channel closes once the
// background workers have stopped after ctx is cancelled.
func NewApplication(ctx context.Context, cfg config.Config) (*fiber.App, <-chan struct{}, error) {
	db, err := database.SetupDatabase(cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	rdb := cache.SetupCache(cfg.Cache)

	if !cfg.Gateway.APIKeyConfigured() {
		log.Println("Warning: AI_GATEWAY_API_KEY is not set, AI endpoints will answer with a configuration error")
	}

	repos := repository.NewRepositories(db)
	gw := gateway.NewClient(cfg.Gateway)
	ctr := counter.New(rdb, db)
	hub := realtime.NewHub(rdb)

	background := make(chan struct{})
	go func() {
		defer close(background)
		ctr.Run(ctx, cfg.Counter.FlushInterval)
	}()

	basePath := findBasePath()

	app := fiber.New(fiber.Config{
		BodyLimit:         1 << 20,
		EnablePrintRoutes: env.IsDev(),
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	if cfg.App.MetricsPassword != "" {
		app.Get("/metrics", basicauth.New(basicauth.Config{
			Users: map[string]string{
				cfg.App.MetricsUser: cfg.App.MetricsPassword,
			},
		}), monitor.New())
	}

	// SWAGGER / OPENAPI
	openAPICfg := swagger.Config{
		BasePath: "/docs/api/",
		FilePath: basePath + "public/docs/v1/openapi.yml",
		Path:     "v1",
	}
	app.Use(swagger.New(openAPICfg))

	// ROUTER
	router.InstallRouter(app, router.Dependencies{
		Stream:         ctx,
		Repos:          repos,
		Generator:      newsai.NewGenerator(gw),
		Chatbot:        newsai.NewChatbot(gw, repos.Article),
		Views:          ctr,
		Ads:            ctr,
		Changes:        hub,
		Stats:          statistics.NewService(cache.New(rdb), repos),
		AdminKey:       cfg.Admin.APIKey,
		LimiterStorage: limiterStorage(rdb, cfg.Cache),
		APIRateLimit:   cfg.App.APIRateLimit,
		ProxyRateLimit: cfg.App.ProxyRateLimit,
	})

	return app, background, nil
}

// limiterStorage shares rate limits across instances when the cache is up
func limiterStorage(rdb *redis.Client, cfg config.CacheConfig) fiber.Storage {
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Printf("Warning: rate limits are kept in memory: %v", err)
		return nil
	}
	return cache.NewFiberStorage(cfg, cache.LimiterDatabase)
}

func findBasePath() string {
	// Define possible base paths
	basePaths := []string{
		"./",        // Current directory
		"../../",    // From cmd/newsroom to project root
		"../../../", // Fallback
	}

	for _, path := range basePaths {
		if _, err := os.Stat(path + "public/docs"); !os.IsNotExist(err) {
			return path
		}
	}

	panic("Could not find project root directory")
}
