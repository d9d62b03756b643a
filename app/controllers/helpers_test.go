package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ManuelReschke/Newsroom/app/models"
	"github.com/ManuelReschke/Newsroom/app/repository"
	"github.com/ManuelReschke/Newsroom/internal/pkg/cache"
	"github.com/ManuelReschke/Newsroom/internal/pkg/config"
	"github.com/ManuelReschke/Newsroom/internal/pkg/gateway"
	"github.com/ManuelReschke/Newsroom/internal/pkg/metrics/counter"
	"github.com/ManuelReschke/Newsroom/internal/pkg/middleware"
	"github.com/ManuelReschke/Newsroom/internal/pkg/newsai"
	"github.com/ManuelReschke/Newsroom/internal/pkg/realtime"
	"github.com/ManuelReschke/Newsroom/internal/pkg/statistics"
	"github.com/ManuelReschke/Newsroom/internal/pkg/testdb"
)

const testAdminKey = "test-admin-key"

// stubGateway answers chat completions with a fixed status and body
type stubGateway struct {
	mu     sync.Mutex
	calls  int
	status int
	body   string
}

func (sg *stubGateway) Respond(status int, body string) {
	sg.mu.Lock()
	defer sg.mu.Unlock()
	sg.status, sg.body = status, body
}

func (sg *stubGateway) Calls() int {
	sg.mu.Lock()
	defer sg.mu.Unlock()
	return sg.calls
}

func newStubGateway(t *testing.T, apiKey string) (*stubGateway, *gateway.Client) {
	t.Helper()
	sg := &stubGateway{status: http.StatusOK, body: `{"choices":[]}`}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sg.mu.Lock()
		sg.calls++
		status, body := sg.status, sg.body
		sg.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	return sg, gateway.NewClient(config.GatewayConfig{
		BaseURL: srv.URL,
		APIKey:  apiKey,
		Model:   "test-model",
		Timeout: 5 * time.Second,
	})
}

type testEnv struct {
	app     *fiber.App
	db      *gorm.DB
	repos   *repository.Repositories
	mr      *miniredis.Miniredis
	counter *counter.Counter
	hub     *realtime.Hub
	gw      *stubGateway
	cancel  context.CancelFunc
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithKey(t, "test-key")
}

// newTestEnvWithKey wires every controller the way the router does
func newTestEnvWithKey(t *testing.T, gatewayKey string) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	db := testdb.Open(t)
	repos := repository.NewRepositories(db)
	gw, client := newStubGateway(t, gatewayKey)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	env := &testEnv{
		db:      db,
		repos:   repos,
		mr:      mr,
		counter: counter.New(rdb, db),
		hub:     realtime.NewHub(rdb),
		gw:      gw,
		cancel:  cancel,
	}
	stats := statistics.NewService(cache.New(rdb), repos)

	app := fiber.New()

	proxy := NewProxyController(newsai.NewGenerator(client), newsai.NewChatbot(client, repos.Article))
	fn := app.Group("/functions/v1", middleware.ProxyCORS())
	fn.Post("/generate-news", proxy.HandleGenerateNews)
	fn.Post("/news-chatbot", proxy.HandleNewsChatbot)

	articles := NewArticleController(repos.Article, env.counter)
	ads := NewAdController(repos.Advertisement, env.counter)
	stream := NewRealtimeController(ctx, env.hub)

	api := app.Group("/api/v1")
	api.Get("/categories", articles.HandleCategories)
	api.Get("/articles", articles.HandleListArticles)
	api.Get("/articles/featured", articles.HandleFeaturedArticles)
	api.Get("/articles/trending", articles.HandleTrendingArticles)
	api.Get("/articles/changes", stream.HandleArticleChanges)
	api.Get("/articles/:id", articles.HandleGetArticle)
	api.Get("/ads", ads.HandleActiveAds)
	api.Post("/ads/:id/click", ads.HandleAdClick)

	adminArticles := NewAdminArticleController(repos.Article, env.hub, stats)
	adminAds := NewAdminAdController(repos.Advertisement, stats)

	admin := api.Group("/admin", middleware.AdminKeyMiddleware(testAdminKey))
	admin.Get("/stats", HandleAdminStats(stats))
	admin.Get("/articles", adminArticles.HandleListArticles)
	admin.Post("/articles", adminArticles.HandleCreateArticle)
	admin.Get("/articles/:id", adminArticles.HandleGetArticle)
	admin.Put("/articles/:id", adminArticles.HandleUpdateArticle)
	admin.Delete("/articles/:id", adminArticles.HandleDeleteArticle)
	admin.Get("/ads", adminAds.HandleListAds)
	admin.Post("/ads", adminAds.HandleCreateAd)
	admin.Delete("/ads/:id", adminAds.HandleDeleteAd)

	env.app = app
	return env
}

// do sends a request and decodes a JSON object response, if any
func (env *testEnv) do(t *testing.T, method, path string, body any, headers map[string]string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return resp.StatusCode, out
}

func adminHeaders() map[string]string {
	return map[string]string{"X-Admin-Key": testAdminKey}
}

func (env *testEnv) seedArticle(t *testing.T, a models.Article) *models.Article {
	t.Helper()
	if a.Excerpt == "" {
		a.Excerpt = "An excerpt long enough to pass validation."
	}
	if a.Content == "" {
		a.Content = strings.Repeat("Body text. ", 12)
	}
	if a.Category == "" {
		a.Category = models.CategoryPolitics
	}
	require.NoError(t, env.db.Create(&a).Error)
	return &a
}

func (env *testEnv) seedAd(t *testing.T, ad models.Advertisement) *models.Advertisement {
	t.Helper()
	if ad.LinkURL == "" {
		ad.LinkURL = "https://sponsor.example/landing"
	}
	if ad.Placement == "" {
		ad.Placement = models.PlacementSidebar
	}
	require.NoError(t, env.db.Create(&ad).Error)
	return &ad
}

// toolCall builds a gateway response carrying one extract_news_article call
func toolCall(arguments string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []any{map[string]any{
			"message": map[string]any{
				"role": "assistant",
				"tool_calls": []any{map[string]any{
					"id":   "call_1",
					"type": "function",
					"function": map[string]any{
						"name":      "extract_news_article",
						"arguments": arguments,
					},
				}},
			},
		}},
	})
	return string(b)
}

func chatReply(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []any{map[string]any{
			"message": map[string]any{"role": "assistant", "content": content},
		}},
	})
	return string(b)
}
