package controllers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/Newsroom/internal/pkg/statistics"
)

// StatsProvider serves dashboard statistics
type StatsProvider interface {
	Get(ctx context.Context) (*statistics.DashboardStats, error)
	StatsInvalidator
}

var _ StatsProvider = (*statistics.Service)(nil)

// HandleAdminStats returns the handler for GET /api/v1/admin/stats
func HandleAdminStats(stats StatsProvider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := stats.Get(c.UserContext())
		if err != nil {
			fiberlog.Errorf("Error loading dashboard statistics: %v", err)
			return jsonError(c, fiber.StatusInternalServerError, "Failed to load statistics")
		}
		return c.JSON(s)
	}
}
