package newsai

import (
	"context"
	"errors"
	"strings"

	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/Newsroom/app/models"
	"github.com/ManuelReschke/Newsroom/app/repository"
	"github.com/ManuelReschke/Newsroom/internal/pkg/gateway"
)

const (
	chatContextLimit     = 20
	contentSnippetLength = 500
	chatTemperature      = 0.7
)

const (
	msgMessageRequired = "Message is required"
	msgUnknownCategory = "Unknown category"
	msgFetchFailed     = "Failed to fetch articles"
	msgChatFailed      = "Failed to get a response from the AI service"
)

// ArticleLister is the read side of the content store used for grounding.
type ArticleLister interface {
	List(filter repository.ArticleFilter) ([]models.Article, error)
}

// Chatbot answers reader questions from recently published articles only.
// Every call is grounded independently; no conversation state is kept.
type Chatbot struct {
	gw    Completer
	store ArticleLister
}

func NewChatbot(gw Completer, store ArticleLister) *Chatbot {
	return &Chatbot{gw: gw, store: store}
}

// ContextFilter is the store query used to ground an answer.
func ContextFilter(category models.Category) repository.ArticleFilter {
	return repository.ArticleFilter{
		PublishedOnly: true,
		Category:      category,
		Limit:         chatContextLimit,
	}
}

// Answer returns the assistant's free-text reply. category may be empty.
func (c *Chatbot) Answer(ctx context.Context, message, category string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", newError(ValidationError, msgMessageRequired, nil)
	}

	var cat models.Category
	if strings.TrimSpace(category) != "" {
		parsed, ok := models.ParseCategory(category)
		if !ok {
			return "", newError(ValidationError, msgUnknownCategory, nil)
		}
		cat = parsed
	}

	if !c.gw.Configured() {
		fiberlog.Warn("news-chatbot: AI gateway API key not configured")
		return "", newError(ConfigurationError, msgNotConfigured, gateway.ErrNotConfigured)
	}

	articles, err := c.store.List(ContextFilter(cat))
	if err != nil {
		fiberlog.Errorf("news-chatbot: error fetching articles: %v", err)
		return "", newError(UpstreamError, msgFetchFailed, err)
	}

	temp := chatTemperature
	resp, err := c.gw.ChatCompletion(ctx, gateway.ChatRequest{
		Messages: []gateway.Message{
			{Role: "system", Content: chatSystemPrompt(articles)},
			{Role: "user", Content: message},
		},
		Temperature: &temp,
	})
	if err != nil {
		fiberlog.Errorf("news-chatbot: AI gateway error: %v", err)
		if errors.Is(err, gateway.ErrNotConfigured) {
			return "", newError(ConfigurationError, msgNotConfigured, err)
		}
		return "", newError(UpstreamError, msgChatFailed, err)
	}

	msg, ok := resp.FirstMessage()
	if !ok {
		fiberlog.Warn("news-chatbot: AI gateway returned no choices")
		return "", newError(UpstreamError, msgChatFailed, errors.New("response has no choices"))
	}
	return msg.Content, nil
}
