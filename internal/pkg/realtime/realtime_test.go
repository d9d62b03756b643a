package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHub(t *testing.T) (*Hub, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewHub(redis.NewClient(&redis.Options{Addr: mr.Addr()})), mr
}

func TestPublishSubscribeRoundTrip(t *testing.T) {
	hub, _ := newHub(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := hub.Subscribe(ctx)
	require.NoError(t, err)
	defer sub.Close()

	for _, typ := range []EventType{EventInsert, EventUpdate, EventDelete} {
		require.NoError(t, hub.Publish(ctx, ArticleEvent{Type: typ, ArticleID: "a-1"}))
	}

	for _, want := range []EventType{EventInsert, EventUpdate, EventDelete} {
		select {
		case ev := <-sub.Events:
			assert.Equal(t, want, ev.Type)
			assert.Equal(t, "a-1", ev.ArticleID)
			assert.False(t, ev.At.IsZero())
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %s event", want)
		}
	}
}

func TestMalformedPayloadIsSkipped(t *testing.T) {
	hub, mr := newHub(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := hub.Subscribe(ctx)
	require.NoError(t, err)
	defer sub.Close()

	mr.Publish(ArticlesChannel, "not json")
	require.NoError(t, hub.Publish(ctx, ArticleEvent{Type: EventDelete, ArticleID: "a-2"}))

	select {
	case ev := <-sub.Events:
		assert.Equal(t, EventDelete, ev.Type)
		assert.Equal(t, "a-2", ev.ArticleID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestSubscriptionEndsWithContext(t *testing.T) {
	hub, _ := newHub(t)
	ctx, cancel := context.WithCancel(context.Background())

	sub, err := hub.Subscribe(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-sub.Events:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("events channel was not closed")
	}
}
