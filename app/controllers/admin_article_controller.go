package controllers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/Newsroom/app/models"
	"github.com/ManuelReschke/Newsroom/app/repository"
	"github.com/ManuelReschke/Newsroom/internal/pkg/realtime"
	"github.com/ManuelReschke/Newsroom/internal/pkg/usercontext"
)

// ChangePublisher broadcasts article change events
type ChangePublisher interface {
	Publish(ctx context.Context, event realtime.ArticleEvent) error
}

// StatsInvalidator drops cached dashboard statistics after a write
type StatsInvalidator interface {
	Invalidate(ctx context.Context)
}

// AdminArticleController handles article management for the admin API
type AdminArticleController struct {
	articles  repository.ArticleRepository
	publisher ChangePublisher
	stats     StatsInvalidator
}

func NewAdminArticleController(articles repository.ArticleRepository, publisher ChangePublisher, stats StatsInvalidator) *AdminArticleController {
	return &AdminArticleController{articles: articles, publisher: publisher, stats: stats}
}

// HandleListArticles handles GET /api/v1/admin/articles, drafts included
func (aac *AdminArticleController) HandleListArticles(c *fiber.Ctx) error {
	limit, err := queryInt(c, "limit", maxPageSize, maxPageSize)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	offset, err := queryInt(c, "offset", 0, 0)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	articles, err := aac.articles.List(repository.ArticleFilter{Limit: limit, Offset: offset})
	if err != nil {
		fiberlog.Errorf("Error listing articles: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch articles")
	}
	if articles == nil {
		articles = []models.Article{}
	}
	return c.JSON(fiber.Map{"articles": articles})
}

// HandleGetArticle handles GET /api/v1/admin/articles/:id
func (aac *AdminArticleController) HandleGetArticle(c *fiber.Ctx) error {
	article, err := aac.articles.GetByID(c.Params("id"))
	if err != nil {
		if isNotFound(err) {
			return jsonError(c, fiber.StatusNotFound, "Article not found")
		}
		fiberlog.Errorf("Error loading article %s: %v", c.Params("id"), err)
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch article")
	}
	return c.JSON(article)
}

// HandleCreateArticle handles POST /api/v1/admin/articles
func (aac *AdminArticleController) HandleCreateArticle(c *fiber.Ctx) error {
	input, err := bindArticleInput(c)
	if err != nil {
		return bindError(c, err)
	}

	article := &models.Article{}
	input.Apply(article, usercontext.GetAuthorID(c))
	if err := aac.articles.Create(article); err != nil {
		fiberlog.Errorf("Error creating article: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "Failed to create article")
	}

	aac.changed(c, realtime.EventInsert, article.ID)
	return c.Status(fiber.StatusCreated).JSON(article)
}

// HandleUpdateArticle handles PUT /api/v1/admin/articles/:id
func (aac *AdminArticleController) HandleUpdateArticle(c *fiber.Ctx) error {
	article, err := aac.articles.GetByID(c.Params("id"))
	if err != nil {
		if isNotFound(err) {
			return jsonError(c, fiber.StatusNotFound, "Article not found")
		}
		fiberlog.Errorf("Error loading article %s: %v", c.Params("id"), err)
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch article")
	}

	input, err := bindArticleInput(c)
	if err != nil {
		return bindError(c, err)
	}

	input.Apply(article, usercontext.GetAuthorID(c))
	if err := aac.articles.Update(article); err != nil {
		fiberlog.Errorf("Error updating article %s: %v", article.ID, err)
		return jsonError(c, fiber.StatusInternalServerError, "Failed to update article")
	}

	aac.changed(c, realtime.EventUpdate, article.ID)
	return c.JSON(article)
}

// HandleDeleteArticle handles DELETE /api/v1/admin/articles/:id
func (aac *AdminArticleController) HandleDeleteArticle(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := aac.articles.GetByID(id); err != nil {
		if isNotFound(err) {
			return jsonError(c, fiber.StatusNotFound, "Article not found")
		}
		fiberlog.Errorf("Error loading article %s: %v", id, err)
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch article")
	}

	if err := aac.articles.Delete(id); err != nil {
		fiberlog.Errorf("Error deleting article %s: %v", id, err)
		return jsonError(c, fiber.StatusInternalServerError, "Failed to delete article")
	}

	aac.changed(c, realtime.EventDelete, id)
	return c.SendStatus(fiber.StatusNoContent)
}

// bindArticleInput decodes, normalizes and validates the editor form
func bindArticleInput(c *fiber.Ctx) (*models.ArticleInput, error) {
	var input models.ArticleInput
	if err := c.BodyParser(&input); err != nil {
		return nil, errInvalidBody
	}
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return &input, nil
}

func (aac *AdminArticleController) changed(c *fiber.Ctx, typ realtime.EventType, id string) {
	if err := aac.publisher.Publish(c.UserContext(), realtime.ArticleEvent{Type: typ, ArticleID: id}); err != nil {
		fiberlog.Warnf("Error publishing %s event for article %s: %v", typ, id, err)
	}
	aac.stats.Invalidate(c.UserContext())
}
