package repository

import (
	"github.com/ManuelReschke/Newsroom/app/models"
	"gorm.io/gorm"
)

type advertisementRepository struct {
	db *gorm.DB
}

// NewAdvertisementRepository creates a new advertisement repository instance
func NewAdvertisementRepository(db *gorm.DB) AdvertisementRepository {
	return &advertisementRepository{db: db}
}

func (r *advertisementRepository) Create(ad *models.Advertisement) error {
	return r.db.Create(ad).Error
}

func (r *advertisementRepository) GetByID(id string) (*models.Advertisement, error) {
	var ad models.Advertisement
	err := r.db.Where("id = ?", id).First(&ad).Error
	if err != nil {
		return nil, err
	}
	return &ad, nil
}

// List retrieves all advertisements, newest first
func (r *advertisementRepository) List() ([]models.Advertisement, error) {
	var ads []models.Advertisement
	err := r.db.Order("created_at DESC").Find(&ads).Error
	return ads, err
}

// ListActive retrieves active advertisements. An empty placement matches all placements.
func (r *advertisementRepository) ListActive(placement models.Placement) ([]models.Advertisement, error) {
	query := r.db.Where("active = ?", true)
	if placement != "" {
		query = query.Where("placement = ?", placement)
	}
	var ads []models.Advertisement
	err := query.Order("created_at DESC").Find(&ads).Error
	return ads, err
}

func (r *advertisementRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Advertisement{}).Error
}

func (r *advertisementRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Advertisement{}).Where("active = ?", true).Count(&count).Error
	return count, err
}
