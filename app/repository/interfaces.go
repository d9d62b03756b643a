package repository

import (
	"github.com/ManuelReschke/Newsroom/app/models"
	"gorm.io/gorm"
)

// ArticleFilter narrows an article listing. Results are always ordered
// newest first.
type ArticleFilter struct {
	PublishedOnly bool
	Category      models.Category
	FeaturedOnly  bool
	TrendingOnly  bool
	Limit         int
	Offset        int
}

// ArticleRepository defines the interface for article-related operations
type ArticleRepository interface {
	Create(article *models.Article) error
	GetByID(id string) (*models.Article, error)
	GetPublishedByID(id string) (*models.Article, error)
	List(filter ArticleFilter) ([]models.Article, error)
	Update(article *models.Article) error
	Delete(id string) error
	Count() (int64, error)
	CountPublished() (int64, error)
	SumViews() (int64, error)
}

// AdvertisementRepository defines the interface for advertisement-related operations
type AdvertisementRepository interface {
	Create(ad *models.Advertisement) error
	GetByID(id string) (*models.Advertisement, error)
	List() ([]models.Advertisement, error)
	ListActive(placement models.Placement) ([]models.Advertisement, error)
	Delete(id string) error
	CountActive() (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Article       ArticleRepository
	Advertisement AdvertisementRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Article:       NewArticleRepository(db),
		Advertisement: NewAdvertisementRepository(db),
	}
}
