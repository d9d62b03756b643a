package cache

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	redisstorage "github.com/gofiber/storage/redis"

	"github.com/ManuelReschke/Newsroom/internal/pkg/config"
)

// LimiterDatabase separates rate limiter keys from the cache (DB 0)
const LimiterDatabase = 1

// NewFiberStorage returns fiber middleware storage on a logical database of
// the cache server. It panics when the server is unreachable, so callers
// ping first.
func NewFiberStorage(cfg config.CacheConfig, database int) fiber.Storage {
	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		port = 6379
	}
	return redisstorage.New(redisstorage.Config{
		Host:     cfg.Host,
		Port:     port,
		Password: cfg.Password,
		Database: database,
		Reset:    false,
	})
}
