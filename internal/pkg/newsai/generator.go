// Package newsai implements the two LLM-backed proxies: tweet-to-article
// generation and the article-grounded chat assistant.
package newsai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/Newsroom/internal/pkg/gateway"
)

// Completer is the slice of the gateway client the proxies need.
type Completer interface {
	Configured() bool
	ChatCompletion(ctx context.Context, req gateway.ChatRequest) (*gateway.ChatResponse, error)
}

var _ Completer = (*gateway.Client)(nil)

const (
	msgTweetRequired    = "Tweet content is required"
	msgNotConfigured    = "AI service not configured"
	msgRateLimited      = "Rate limit exceeded. Please try again in a moment."
	msgQuotaExhausted   = "AI credits exhausted. Please top up your workspace credits."
	msgGenerateFailed   = "Failed to generate article"
	msgExtractionFailed = "Failed to extract article data"
)

// Generator turns raw social posts into article drafts. It keeps no state
// between calls and never persists anything.
type Generator struct {
	gw Completer
}

func NewGenerator(gw Completer) *Generator {
	return &Generator{gw: gw}
}

// Generate validates the post, makes one gateway call and returns the
// schema-checked draft. Output for identical input is not repeatable.
func (g *Generator) Generate(ctx context.Context, tweetContent string) (*Draft, error) {
	tweet := strings.TrimSpace(tweetContent)
	if tweet == "" {
		return nil, newError(ValidationError, msgTweetRequired, nil)
	}
	if !g.gw.Configured() {
		fiberlog.Warn("generate-news: AI gateway API key not configured")
		return nil, newError(ConfigurationError, msgNotConfigured, gateway.ErrNotConfigured)
	}

	fiberlog.Info("generate-news: generating article from tweet content")
	resp, err := g.gw.ChatCompletion(ctx, gateway.ChatRequest{
		Messages: []gateway.Message{
			{Role: "system", Content: editorSystemPrompt},
			{Role: "user", Content: editorUserPrompt(tweet)},
		},
		Tools:      []gateway.Tool{extractTool()},
		ToolChoice: gateway.ForceFunction(extractFunctionName),
	})
	if err != nil {
		return nil, classifyGenerateError(err)
	}

	draft, err := extractDraft(resp)
	if err != nil {
		fiberlog.Errorf("generate-news: extraction failed: %v", err)
		return nil, newError(ExtractionError, msgExtractionFailed, err)
	}

	fiberlog.Infof("generate-news: generated article %q", draft.Title)
	return draft, nil
}

func classifyGenerateError(err error) error {
	var statusErr *gateway.StatusError
	if errors.As(err, &statusErr) {
		fiberlog.Errorf("generate-news: AI gateway error: %d %s", statusErr.StatusCode, statusErr.Body)
		switch statusErr.StatusCode {
		case http.StatusTooManyRequests:
			return newError(RateLimited, msgRateLimited, err)
		case http.StatusPaymentRequired:
			return newError(QuotaExhausted, msgQuotaExhausted, err)
		}
		return newError(UpstreamError, msgGenerateFailed, err)
	}
	if errors.Is(err, gateway.ErrNotConfigured) {
		return newError(ConfigurationError, msgNotConfigured, err)
	}
	if errors.Is(err, gateway.ErrMalformedResponse) {
		fiberlog.Errorf("generate-news: extraction failed: %v", err)
		return newError(ExtractionError, msgExtractionFailed, err)
	}
	fiberlog.Errorf("generate-news: AI gateway request failed: %v", err)
	return newError(UpstreamError, msgGenerateFailed, err)
}

func extractDraft(resp *gateway.ChatResponse) (*Draft, error) {
	msg, ok := resp.FirstMessage()
	if !ok {
		return nil, errors.New("response has no choices")
	}
	if len(msg.ToolCalls) == 0 {
		return nil, errors.New("response has no tool call")
	}
	call := msg.ToolCalls[0]
	if call.Function.Name != "" && call.Function.Name != extractFunctionName {
		return nil, errors.New("unexpected function " + call.Function.Name)
	}
	return decodeDraft(call.Function.Arguments)
}
