package controllers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/Newsroom/app/models"
	"github.com/ManuelReschke/Newsroom/internal/pkg/realtime"
)

func validArticleForm() map[string]any {
	return map[string]any{
		"title":            "County budgets approved",
		"excerpt":          "All forty-seven counties have had their budgets signed off.",
		"content":          strings.Repeat("The controller of budget released the figures on Monday. ", 3),
		"category":         "Politics",
		"source_url":       "",
		"source_reference": "Treasury statement",
		"published":        true,
	}
}

func TestAdminRequiresKey(t *testing.T) {
	env := newTestEnv(t)

	for _, route := range [][2]string{
		{fiber.MethodGet, "/api/v1/admin/articles"},
		{fiber.MethodPost, "/api/v1/admin/articles"},
		{fiber.MethodGet, "/api/v1/admin/ads"},
		{fiber.MethodGet, "/api/v1/admin/stats"},
	} {
		status, _ := env.do(t, route[0], route[1], nil, nil)
		assert.Equal(t, fiber.StatusUnauthorized, status, route[1])

		status, _ = env.do(t, route[0], route[1], nil, map[string]string{"X-Admin-Key": "wrong"})
		assert.Equal(t, fiber.StatusUnauthorized, status, route[1])
	}
}

func TestAdminCreateArticle(t *testing.T) {
	env := newTestEnv(t)

	headers := adminHeaders()
	headers["X-Author-ID"] = "editor-42"
	status, body := env.do(t, fiber.MethodPost, "/api/v1/admin/articles", validArticleForm(), headers)
	require.Equal(t, fiber.StatusCreated, status, "body: %v", body)

	assert.Equal(t, "politics", body["category"])
	assert.Equal(t, "editor-42", body["author_id"])
	assert.Nil(t, body["source_url"])
	assert.Equal(t, "Treasury statement", body["source_reference"])
	assert.Equal(t, float64(0), body["view_count"])

	status, body = env.do(t, fiber.MethodGet, "/api/v1/articles/"+body["id"].(string), nil, nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestAdminArticleValidation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(form map[string]any)
		field string
	}{
		{"short title", func(f map[string]any) { f["title"] = "Too short" }, "title"},
		{"long title", func(f map[string]any) { f["title"] = strings.Repeat("t", 201) }, "title"},
		{"short excerpt", func(f map[string]any) { f["excerpt"] = "tiny" }, "excerpt"},
		{"short content", func(f map[string]any) { f["content"] = "not enough" }, "content"},
		{"bad category", func(f map[string]any) { f["category"] = "weather" }, "category"},
		{"bad source url", func(f map[string]any) { f["source_url"] = "not a url" }, "source_url"},
		{"long source reference", func(f map[string]any) { f["source_reference"] = strings.Repeat("r", 201) }, "source_reference"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			form := validArticleForm()
			tt.edit(form)

			status, body := env.do(t, fiber.MethodPost, "/api/v1/admin/articles", form, adminHeaders())
			require.Equal(t, fiber.StatusBadRequest, status)
			fields, ok := body["fields"].(map[string]any)
			require.True(t, ok, "fields missing in %v", body)
			assert.Contains(t, fields, tt.field)

			var count int64
			require.NoError(t, env.db.Model(&models.Article{}).Count(&count).Error)
			assert.Zero(t, count)
		})
	}

	t.Run("malformed body", func(t *testing.T) {
		env := newTestEnv(t)
		status, body := env.do(t, fiber.MethodPost, "/api/v1/admin/articles", "{", adminHeaders())
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "Invalid request body", body["error"])
	})
}

func TestAdminArticleLifecycleEvents(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := env.hub.Subscribe(ctx)
	require.NoError(t, err)
	defer sub.Close()

	next := func() realtime.ArticleEvent {
		select {
		case ev := <-sub.Events:
			return ev
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for article event")
			return realtime.ArticleEvent{}
		}
	}

	status, created := env.do(t, fiber.MethodPost, "/api/v1/admin/articles", validArticleForm(), adminHeaders())
	require.Equal(t, fiber.StatusCreated, status)
	id := created["id"].(string)
	assert.Equal(t, realtime.ArticleEvent{Type: realtime.EventInsert, ArticleID: id}, withoutTime(next()))

	form := validArticleForm()
	form["title"] = "County budgets approved after delay"
	form["published"] = false
	status, updated := env.do(t, fiber.MethodPut, "/api/v1/admin/articles/"+id, form, adminHeaders())
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "County budgets approved after delay", updated["title"])
	assert.Equal(t, false, updated["published"])
	assert.Equal(t, realtime.ArticleEvent{Type: realtime.EventUpdate, ArticleID: id}, withoutTime(next()))

	status, _ = env.do(t, fiber.MethodDelete, "/api/v1/admin/articles/"+id, nil, adminHeaders())
	require.Equal(t, fiber.StatusNoContent, status)
	assert.Equal(t, realtime.ArticleEvent{Type: realtime.EventDelete, ArticleID: id}, withoutTime(next()))

	status, _ = env.do(t, fiber.MethodGet, "/api/v1/admin/articles/"+id, nil, adminHeaders())
	assert.Equal(t, fiber.StatusNotFound, status)
	status, _ = env.do(t, fiber.MethodDelete, "/api/v1/admin/articles/"+id, nil, adminHeaders())
	assert.Equal(t, fiber.StatusNotFound, status)
	status, _ = env.do(t, fiber.MethodPut, "/api/v1/admin/articles/"+id, validArticleForm(), adminHeaders())
	assert.Equal(t, fiber.StatusNotFound, status)
}

func withoutTime(ev realtime.ArticleEvent) realtime.ArticleEvent {
	ev.At = time.Time{}
	return ev
}

func TestAdminListIncludesDrafts(t *testing.T) {
	env := newTestEnv(t)
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	env.seedArticle(t, models.Article{Title: "published", Published: true, CreatedAt: base})
	env.seedArticle(t, models.Article{Title: "draft", CreatedAt: base.Add(time.Minute)})

	status, body := env.do(t, fiber.MethodGet, "/api/v1/admin/articles", nil, adminHeaders())
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []string{"draft", "published"}, articleTitles(t, body))
}

func TestAdminAds(t *testing.T) {
	env := newTestEnv(t)

	status, created := env.do(t, fiber.MethodPost, "/api/v1/admin/ads", map[string]any{
		"title":       "Safari deals",
		"description": "Maasai Mara packages",
		"link_url":    "https://safari.example",
		"placement":   "Banner",
	}, adminHeaders())
	require.Equal(t, fiber.StatusCreated, status, "body: %v", created)
	assert.Equal(t, "banner", created["placement"])
	assert.Equal(t, true, created["active"])
	assert.Nil(t, created["ctr"])

	id := created["id"].(string)
	require.NoError(t, env.db.Model(&models.Advertisement{}).Where("id = ?", id).
		Updates(map[string]any{"impressions": 200, "clicks": 5}).Error)

	status, body := env.do(t, fiber.MethodGet, "/api/v1/admin/ads", nil, adminHeaders())
	require.Equal(t, fiber.StatusOK, status)
	ads := body["ads"].([]any)
	require.Len(t, ads, 1)
	assert.InDelta(t, 0.025, ads[0].(map[string]any)["ctr"], 1e-9)

	status, body = env.do(t, fiber.MethodPost, "/api/v1/admin/ads", map[string]any{"title": "No link"}, adminHeaders())
	require.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["fields"], "link_url")

	status, _ = env.do(t, fiber.MethodDelete, "/api/v1/admin/ads/"+id, nil, adminHeaders())
	assert.Equal(t, fiber.StatusNoContent, status)
	status, _ = env.do(t, fiber.MethodDelete, "/api/v1/admin/ads/"+id, nil, adminHeaders())
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestAdminStats(t *testing.T) {
	env := newTestEnv(t)
	env.seedArticle(t, models.Article{Title: "one", Published: true, ViewCount: 12})
	env.seedArticle(t, models.Article{Title: "two", ViewCount: 3})
	env.seedAd(t, models.Advertisement{Title: "ad", Active: true})

	status, body := env.do(t, fiber.MethodGet, "/api/v1/admin/stats", nil, adminHeaders())
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, map[string]any{
		"total_articles":     float64(2),
		"published_articles": float64(1),
		"active_ads":         float64(1),
		"total_views":        float64(15),
	}, body)

	// writes through the admin API drop the cached numbers
	status, _ = env.do(t, fiber.MethodPost, "/api/v1/admin/articles", validArticleForm(), adminHeaders())
	require.Equal(t, fiber.StatusCreated, status)
	_, body = env.do(t, fiber.MethodGet, "/api/v1/admin/stats", nil, adminHeaders())
	assert.Equal(t, float64(3), body["total_articles"])
}
