package controllers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/valyala/fasthttp"

	"github.com/ManuelReschke/Newsroom/internal/pkg/realtime"
)

const sseHeartbeat = 15 * time.Second

// ChangeSubscriber opens a stream of article change events
type ChangeSubscriber interface {
	Subscribe(ctx context.Context) (*realtime.Subscription, error)
}

var _ ChangeSubscriber = (*realtime.Hub)(nil)

// RealtimeController streams article changes as server-sent events
type RealtimeController struct {
	base context.Context
	hub  ChangeSubscriber
}

// NewRealtimeController ties open streams to base; cancelling it ends them all.
func NewRealtimeController(base context.Context, hub ChangeSubscriber) *RealtimeController {
	return &RealtimeController{base: base, hub: hub}
}

// HandleArticleChanges handles GET /api/v1/articles/changes
func (rc *RealtimeController) HandleArticleChanges(c *fiber.Ctx) error {
	ctx, cancel := context.WithCancel(rc.base)
	sub, err := rc.hub.Subscribe(ctx)
	if err != nil {
		cancel()
		fiberlog.Errorf("Error subscribing to article changes: %v", err)
		return jsonError(c, fiber.StatusServiceUnavailable, "Realtime updates unavailable")
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		defer sub.Close()

		fmt.Fprint(w, ": connected\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		heartbeat := time.NewTicker(sseHeartbeat)
		defer heartbeat.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-heartbeat.C:
				fmt.Fprint(w, ": ping\n\n")
			case event, ok := <-sub.Events:
				if !ok {
					return
				}
				payload, err := json.Marshal(event)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, payload)
			}
			// a failed flush means the client went away
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))

	return nil
}
