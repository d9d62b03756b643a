package controllers

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/Newsroom/internal/pkg/newsai"
)

// DraftGenerator turns social media text into an article draft
type DraftGenerator interface {
	Generate(ctx context.Context, tweetContent string) (*newsai.Draft, error)
}

// ChatAnswerer answers a reader question grounded in published articles
type ChatAnswerer interface {
	Answer(ctx context.Context, message, category string) (string, error)
}

var (
	_ DraftGenerator = (*newsai.Generator)(nil)
	_ ChatAnswerer   = (*newsai.Chatbot)(nil)
)

// ProxyController serves the two LLM proxy endpoints
type ProxyController struct {
	generator DraftGenerator
	chatbot   ChatAnswerer
}

func NewProxyController(generator DraftGenerator, chatbot ChatAnswerer) *ProxyController {
	return &ProxyController{generator: generator, chatbot: chatbot}
}

type generateRequest struct {
	TweetContent string `json:"tweetContent"`
}

type chatRequest struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

// HandleGenerateNews handles POST /functions/v1/generate-news
func (pc *ProxyController) HandleGenerateNews(c *fiber.Ctx) error {
	var req generateRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid JSON body")
	}

	draft, err := pc.generator.Generate(c.UserContext(), req.TweetContent)
	if err != nil {
		return proxyError(c, "generate-news", err)
	}

	return c.JSON(fiber.Map{"success": true, "article": draft})
}

// HandleNewsChatbot handles POST /functions/v1/news-chatbot
func (pc *ProxyController) HandleNewsChatbot(c *fiber.Ctx) error {
	var req chatRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid JSON body")
	}

	answer, err := pc.chatbot.Answer(c.UserContext(), req.Message, req.Category)
	if err != nil {
		return proxyError(c, "news-chatbot", err)
	}

	return c.JSON(fiber.Map{"response": answer})
}

func proxyError(c *fiber.Ctx, endpoint string, err error) error {
	kind := newsai.KindOf(err)
	fiberlog.Errorf("%s failed (%s): %v", endpoint, kind, err)
	return jsonError(c, kind.Status(), newsai.PublicMessage(err))
}
