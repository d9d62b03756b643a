package newsai

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ManuelReschke/Newsroom/internal/pkg/config"
	"github.com/ManuelReschke/Newsroom/internal/pkg/gateway"
)

// fakeGateway is an httptest-backed LLM gateway that records what it receives.
type fakeGateway struct {
	mu       sync.Mutex
	calls    int
	status   int
	body     string
	requests []gateway.ChatRequest
}

func newFakeGateway(t *testing.T, status int, body string) (*fakeGateway, *gateway.Client) {
	t.Helper()
	fg := &fakeGateway{status: status, body: body}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req gateway.ChatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		fg.mu.Lock()
		fg.calls++
		fg.requests = append(fg.requests, req)
		status, body := fg.status, fg.body
		fg.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client := gateway.NewClient(config.GatewayConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Model:   "test-model",
		Timeout: 5 * time.Second,
	})
	return fg, client
}

func (fg *fakeGateway) Calls() int {
	fg.mu.Lock()
	defer fg.mu.Unlock()
	return fg.calls
}

func (fg *fakeGateway) LastRequest() gateway.ChatRequest {
	fg.mu.Lock()
	defer fg.mu.Unlock()
	if len(fg.requests) == 0 {
		return gateway.ChatRequest{}
	}
	return fg.requests[len(fg.requests)-1]
}

func (fg *fakeGateway) Respond(status int, body string) {
	fg.mu.Lock()
	defer fg.mu.Unlock()
	fg.status, fg.body = status, body
}

// toolCallResponse wraps tool arguments the way the gateway returns them.
func toolCallResponse(arguments string) string {
	resp := map[string]any{
		"choices": []any{
			map[string]any{
				"message": map[string]any{
					"role": "assistant",
					"tool_calls": []any{
						map[string]any{
							"id":   "call_1",
							"type": "function",
							"function": map[string]any{
								"name":      extractFunctionName,
								"arguments": arguments,
							},
						},
					},
				},
			},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func contentResponse(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []any{
			map[string]any{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	return string(b)
}
