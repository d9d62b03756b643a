package repository

import (
	"fmt"

	"github.com/ManuelReschke/Newsroom/app/models"
	"gorm.io/gorm"
)

const maxListLimit = 100

// articleRepository implements the ArticleRepository interface
type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new article repository instance
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// Create creates a new article in the database
func (r *articleRepository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

// GetByID retrieves an article by its ID regardless of its published state
func (r *articleRepository) GetByID(id string) (*models.Article, error) {
	var article models.Article
	err := r.db.Where("id = ?", id).First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// GetPublishedByID retrieves a published article by its ID
func (r *articleRepository) GetPublishedByID(id string) (*models.Article, error) {
	var article models.Article
	err := r.db.Where("id = ? AND published = ?", id, true).First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// List retrieves articles matching the filter, newest first
func (r *articleRepository) List(filter ArticleFilter) ([]models.Article, error) {
	query := r.db.Model(&models.Article{})
	if filter.PublishedOnly {
		query = query.Where("published = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.FeaturedOnly {
		query = query.Where("featured = ?", true)
	}
	if filter.TrendingOnly {
		query = query.Where("trending = ?", true)
	}

	limit := filter.Limit
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	query = query.Order("created_at DESC").Limit(limit)
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var articles []models.Article
	if err := query.Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// Update updates an existing article in the database
func (r *articleRepository) Update(article *models.Article) error {
	return r.db.Save(article).Error
}

// Delete removes an article by its ID
func (r *articleRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Article{}).Error
}

// Count returns the total number of articles
func (r *articleRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Article{}).Count(&count).Error
	return count, err
}

// CountPublished returns the number of published articles
func (r *articleRepository) CountPublished() (int64, error) {
	var count int64
	err := r.db.Model(&models.Article{}).Where("published = ?", true).Count(&count).Error
	return count, err
}

// SumViews returns the total view count over all articles
func (r *articleRepository) SumViews() (int64, error) {
	var total int64
	err := r.db.Model(&models.Article{}).Select("COALESCE(SUM(view_count), 0)").Scan(&total).Error
	return total, err
}
