package controllers

import (
	"bufio"
	"context"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/Newsroom/internal/pkg/realtime"
)

func TestArticleChangesStream(t *testing.T) {
	env := newTestEnv(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = env.app.Listener(ln) }()
	t.Cleanup(func() {
		env.cancel()
		_ = env.app.ShutdownWithTimeout(2 * time.Second)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+ln.Addr().String()+"/api/v1/articles/changes", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readLine := func() string {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		return strings.TrimRight(line, "\n")
	}

	// the greeting is written once the subscription is live
	assert.Equal(t, ": connected", readLine())
	assert.Equal(t, "", readLine())

	require.NoError(t, env.hub.Publish(context.Background(), realtime.ArticleEvent{Type: realtime.EventUpdate, ArticleID: "a-1"}))

	assert.Equal(t, "event: UPDATE", readLine())
	data := readLine()
	assert.True(t, strings.HasPrefix(data, "data: "), data)
	assert.Contains(t, data, `"type":"UPDATE"`)
	assert.Contains(t, data, `"article_id":"a-1"`)
}
