package controllers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/Newsroom/app/models"
	"github.com/ManuelReschke/Newsroom/app/repository"
	"github.com/ManuelReschke/Newsroom/internal/pkg/content"
)

// ViewRecorder counts article reads
type ViewRecorder interface {
	AddArticleView(ctx context.Context, articleID string) error
}

// ArticleController serves the public reader API for articles
type ArticleController struct {
	articles repository.ArticleRepository
	views    ViewRecorder
}

func NewArticleController(articles repository.ArticleRepository, views ViewRecorder) *ArticleController {
	return &ArticleController{articles: articles, views: views}
}

// articleDetail is an article with its rendered body
type articleDetail struct {
	models.Article
	ContentHTML string `json:"content_html"`
}

// HandleListArticles handles GET /api/v1/articles
func (ac *ArticleController) HandleListArticles(c *fiber.Ctx) error {
	filter := repository.ArticleFilter{PublishedOnly: true}

	if raw := c.Query("category"); raw != "" {
		category, ok := models.ParseCategory(raw)
		if !ok {
			return jsonError(c, fiber.StatusBadRequest, "Unknown category")
		}
		filter.Category = category
	}

	var err error
	if filter.Limit, err = queryInt(c, "limit", defaultPageSize, maxPageSize); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if filter.Offset, err = queryInt(c, "offset", 0, 0); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	return ac.list(c, filter)
}

// HandleFeaturedArticles handles GET /api/v1/articles/featured
func (ac *ArticleController) HandleFeaturedArticles(c *fiber.Ctx) error {
	limit, err := queryInt(c, "limit", defaultHighlightMax, maxPageSize)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return ac.list(c, repository.ArticleFilter{PublishedOnly: true, FeaturedOnly: true, Limit: limit})
}

// HandleTrendingArticles handles GET /api/v1/articles/trending
func (ac *ArticleController) HandleTrendingArticles(c *fiber.Ctx) error {
	limit, err := queryInt(c, "limit", defaultHighlightMax, maxPageSize)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return ac.list(c, repository.ArticleFilter{PublishedOnly: true, TrendingOnly: true, Limit: limit})
}

func (ac *ArticleController) list(c *fiber.Ctx, filter repository.ArticleFilter) error {
	articles, err := ac.articles.List(filter)
	if err != nil {
		fiberlog.Errorf("Error listing articles: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch articles")
	}
	if articles == nil {
		articles = []models.Article{}
	}
	return c.JSON(fiber.Map{"articles": articles})
}

// HandleGetArticle handles GET /api/v1/articles/:id and records one view
func (ac *ArticleController) HandleGetArticle(c *fiber.Ctx) error {
	article, err := ac.articles.GetPublishedByID(c.Params("id"))
	if err != nil {
		if isNotFound(err) {
			return jsonError(c, fiber.StatusNotFound, "Article not found")
		}
		fiberlog.Errorf("Error loading article %s: %v", c.Params("id"), err)
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch article")
	}

	html, err := content.RenderMarkdown(article.Content)
	if err != nil {
		fiberlog.Warnf("Error rendering article %s: %v", article.ID, err)
	}

	if err := ac.views.AddArticleView(c.UserContext(), article.ID); err != nil {
		fiberlog.Warnf("Error recording view for article %s: %v", article.ID, err)
	}

	return c.JSON(articleDetail{Article: *article, ContentHTML: html})
}

// HandleCategories handles GET /api/v1/categories
func (ac *ArticleController) HandleCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": models.CategoryValues()})
}
