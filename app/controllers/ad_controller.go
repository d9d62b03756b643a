package controllers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/Newsroom/app/models"
	"github.com/ManuelReschke/Newsroom/app/repository"
)

// AdTracker counts ad impressions and clicks
type AdTracker interface {
	AddAdImpressions(ctx context.Context, adIDs ...string) error
	AddAdClick(ctx context.Context, adID string) error
}

// AdController serves active advertisements to readers
type AdController struct {
	ads     repository.AdvertisementRepository
	tracker AdTracker
}

func NewAdController(ads repository.AdvertisementRepository, tracker AdTracker) *AdController {
	return &AdController{ads: ads, tracker: tracker}
}

// publicAd is the reader-facing view of an ad, without its counters
type publicAd struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	LinkURL     string           `json:"link_url"`
	Placement   models.Placement `json:"placement"`
}

// HandleActiveAds handles GET /api/v1/ads?placement= and records one impression per ad
func (ac *AdController) HandleActiveAds(c *fiber.Ctx) error {
	var placement models.Placement
	if raw := c.Query("placement"); raw != "" {
		placement = models.Placement(raw)
		if !placement.IsValid() {
			return jsonError(c, fiber.StatusBadRequest, "Unknown placement")
		}
	}

	ads, err := ac.ads.ListActive(placement)
	if err != nil {
		fiberlog.Errorf("Error listing active ads: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch ads")
	}

	out := make([]publicAd, 0, len(ads))
	ids := make([]string, 0, len(ads))
	for _, ad := range ads {
		out = append(out, publicAd{
			ID:          ad.ID,
			Title:       ad.Title,
			Description: ad.Description,
			LinkURL:     ad.LinkURL,
			Placement:   ad.Placement,
		})
		ids = append(ids, ad.ID)
	}

	if err := ac.tracker.AddAdImpressions(c.UserContext(), ids...); err != nil {
		fiberlog.Warnf("Error recording ad impressions: %v", err)
	}

	return c.JSON(fiber.Map{"ads": out})
}

// HandleAdClick handles POST /api/v1/ads/:id/click
func (ac *AdController) HandleAdClick(c *fiber.Ctx) error {
	ad, err := ac.ads.GetByID(c.Params("id"))
	if err != nil {
		if isNotFound(err) {
			return jsonError(c, fiber.StatusNotFound, "Ad not found")
		}
		fiberlog.Errorf("Error loading ad %s: %v", c.Params("id"), err)
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch ad")
	}
	if !ad.Active {
		return jsonError(c, fiber.StatusNotFound, "Ad not found")
	}

	if err := ac.tracker.AddAdClick(c.UserContext(), ad.ID); err != nil {
		fiberlog.Warnf("Error recording click for ad %s: %v", ad.ID, err)
	}

	return c.JSON(fiber.Map{"link_url": ad.LinkURL})
}
