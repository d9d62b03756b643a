package controllers

import (

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/Newsroom/app/models"
	"github.com/ManuelReschke/Newsroom/app/repository"
)

// AdminAdController handles advertisement management for the admin API
type AdminAdController struct {
	ads   repository.AdvertisementRepository
	stats StatsInvalidator
}

func NewAdminAdController(ads repository.AdvertisementRepository, stats StatsInvalidator) *AdminAdController {
	return &AdminAdController{ads: ads, stats: stats}
}

// adminAd is an ad with its derived click-through rate
type adminAd struct {
	models.Advertisement
	CTR *float64 `json:"ctr"`
}

func toAdminAd(ad models.Advertisement) adminAd {
	return adminAd{Advertisement: ad, CTR: ad.CTR()}
}

// HandleListAds handles GET /api/v1/admin/ads
func (aac *AdminAdController) HandleListAds(c *fiber.Ctx) error {
	ads, err := aac.ads.List()
	if err != nil {
		fiberlog.Errorf("Error listing ads: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch ads")
	}

	out := make([]adminAd, 0, len(ads))
	for _, ad := range ads {
		out = append(out, toAdminAd(ad))
	}
	return c.JSON(fiber.Map{"ads": out})
}

// HandleCreateAd handles POST /api/v1/admin/ads
func (aac *AdminAdController) HandleCreateAd(c *fiber.Ctx) error {
	var input models.AdvertisementInput
	if err := c.BodyParser(&input); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	input.Normalize()
	if err := input.Validate(); err != nil {
		return validationError(c, err)
	}

	ad := input.ToModel()
	if err := aac.ads.Create(ad); err != nil {
		fiberlog.Errorf("Error creating ad: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "Failed to create ad")
	}

	aac.stats.Invalidate(c.UserContext())
	return c.Status(fiber.StatusCreated).JSON(toAdminAd(*ad))
}

// HandleDeleteAd handles DELETE /api/v1/admin/ads/:id
func (aac *AdminAdController) HandleDeleteAd(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := aac.ads.GetByID(id); err != nil {
		if isNotFound(err) {
			return jsonError(c, fiber.StatusNotFound, "Ad not found")
		}
		fiberlog.Errorf("Error loading ad %s: %v", id, err)
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch ad")
	}

	if err := aac.ads.Delete(id); err != nil {
		fiberlog.Errorf("Error deleting ad %s: %v", id, err)
		return jsonError(c, fiber.StatusInternalServerError, "Failed to delete ad")
	}

	aac.stats.Invalidate(c.UserContext())
	return c.SendStatus(fiber.StatusNoContent)
}
