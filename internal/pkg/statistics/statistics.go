package statistics

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/ManuelReschke/Newsroom/app/repository"
	"github.com/ManuelReschke/Newsroom/internal/pkg/cache"
)

const (
	CacheKeyDashboard = "statistics:dashboard"
	CacheExpiration   = 5 * time.Minute
)

// DashboardStats holds the numbers shown on the admin dashboard
type DashboardStats struct {
	TotalArticles     int64 `json:"total_articles"`
	PublishedArticles int64 `json:"published_articles"`
	ActiveAds         int64 `json:"active_ads"`
	TotalViews        int64 `json:"total_views"`
}

type Service struct {
	cache *cache.Cache
	repos *repository.Repositories
	ttl   time.Duration
}

func NewService(c *cache.Cache, repos *repository.Repositories) *Service {
	return &Service{cache: c, repos: repos, ttl: CacheExpiration}
}

// Get returns the dashboard statistics from cache, computing them on a miss.
// Cache failures fall through to the database.
func (s *Service) Get(ctx context.Context) (*DashboardStats, error) {
	if raw, err := s.cache.Get(ctx, CacheKeyDashboard); err == nil {
		var stats DashboardStats
		if jerr := json.Unmarshal([]byte(raw), &stats); jerr == nil {
			return &stats, nil
		}
	} else if !cache.IsMiss(err) {
		log.Printf("Error reading statistics cache: %v", err)
	}

	stats, err := s.compute()
	if err != nil {
		return nil, err
	}

	payload, _ := json.Marshal(stats)
	if err := s.cache.Set(ctx, CacheKeyDashboard, payload, s.ttl); err != nil {
		log.Printf("Error caching statistics: %v", err)
	}
	return stats, nil
}

// Invalidate drops the cached statistics so the next Get recomputes them
func (s *Service) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, CacheKeyDashboard); err != nil {
		log.Printf("Error invalidating statistics cache: %v", err)
	}
}

func (s *Service) compute() (*DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.TotalArticles, err = s.repos.Article.Count(); err != nil {
		return nil, err
	}
	if stats.PublishedArticles, err = s.repos.Article.CountPublished(); err != nil {
		return nil, err
	}
	if stats.ActiveAds, err = s.repos.Advertisement.CountActive(); err != nil {
		return nil, err
	}
	if stats.TotalViews, err = s.repos.Article.SumViews(); err != nil {
		return nil, err
	}
	return &stats, nil
}
