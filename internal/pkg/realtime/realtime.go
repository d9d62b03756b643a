package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
)

// ArticlesChannel is the pub/sub channel carrying article change events
const ArticlesChannel = "articles-changes"

type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// ArticleEvent describes one change to the articles table
type ArticleEvent struct {
	Type      EventType `json:"type"`
	ArticleID string    `json:"article_id"`
	At        time.Time `json:"at"`
}

// Hub publishes and fans out article change events over Redis pub/sub, so
// every server instance sees every change.
type Hub struct {
	rdb *redis.Client
}

func NewHub(rdb *redis.Client) *Hub {
	return &Hub{rdb: rdb}
}

// Publish sends an event to all subscribers
func (h *Hub) Publish(ctx context.Context, event ArticleEvent) error {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return h.rdb.Publish(ctx, ArticlesChannel, payload).Err()
}

// Subscription delivers events until Close is called or its context ends
type Subscription struct {
	Events <-chan ArticleEvent
	pubsub *redis.PubSub
}

func (s *Subscription) Close() error {
	return s.pubsub.Close()
}

// Subscribe returns once the subscription is confirmed by the server
func (h *Hub) Subscribe(ctx context.Context) (*Subscription, error) {
	pubsub := h.rdb.Subscribe(ctx, ArticlesChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", ArticlesChannel, err)
	}

	events := make(chan ArticleEvent, 16)
	go func() {
		defer close(events)
		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				pubsub.Close()
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var event ArticleEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					fiberlog.Warnf("Ignoring malformed article event: %v", err)
					continue
				}
				select {
				case events <- event:
				case <-ctx.Done():
					pubsub.Close()
					return
				}
			}
		}
	}()

	return &Subscription{Events: events, pubsub: pubsub}, nil
}
