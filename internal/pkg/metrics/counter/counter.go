package counter

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	articleViewsKey  = "article:counters:views"
	adImpressionsKey = "ad:counters:impressions"
	adClicksKey      = "ad:counters:clicks"
)

// Counter buffers hot counters in Redis and periodically applies them to
// the SQL tables in one batched UPDATE per column.
type Counter struct {
	rdb *redis.Client
	db  *gorm.DB
}

func New(rdb *redis.Client, db *gorm.DB) *Counter {
	return &Counter{rdb: rdb, db: db}
}

// AddArticleView increments the pending view counter for an article
func (c *Counter) AddArticleView(ctx context.Context, articleID string) error {
	return c.rdb.HIncrBy(ctx, articleViewsKey, articleID, 1).Err()
}

// AddAdImpressions increments the pending impression counter of every given ad
func (c *Counter) AddAdImpressions(ctx context.Context, adIDs ...string) error {
	if len(adIDs) == 0 {
		return nil
	}
	_, err := c.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		for _, id := range adIDs {
			p.HIncrBy(ctx, adImpressionsKey, id, 1)
		}
		return nil
	})
	return err
}

// AddAdClick increments the pending click counter for an ad
func (c *Counter) AddAdClick(ctx context.Context, adID string) error {
	return c.rdb.HIncrBy(ctx, adClicksKey, adID, 1).Err()
}

// FlushAll applies all pending counters to the database
func (c *Counter) FlushAll(ctx context.Context) error {
	if err := c.flushHashToTable(ctx, articleViewsKey, "articles", "view_count"); err != nil {
		return err
	}
	if err := c.flushHashToTable(ctx, adImpressionsKey, "advertisements", "impressions"); err != nil {
		return err
	}
	return c.flushHashToTable(ctx, adClicksKey, "advertisements", "clicks")
}

// Run flushes on every tick until ctx is done, then flushes one last time.
func (c *Counter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.FlushAll(ctx); err != nil {
				fiberlog.Errorf("counter flush failed: %v", err)
			}
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := c.FlushAll(flushCtx); err != nil {
				fiberlog.Errorf("final counter flush failed: %v", err)
			}
			cancel()
			return
		}
	}
}

// flushHashToTable drains a Redis hash and applies batched increments.
// RENAME to a temporary key drains atomically without losing in-flight increments.
func (c *Counter) flushHashToTable(ctx context.Context, redisKey, table, column string) error {
	tmpKey := fmt.Sprintf("%s:tmp:%d", redisKey, time.Now().UnixNano())
	if err := c.rdb.Rename(ctx, redisKey, tmpKey).Err(); err != nil {
		// If key does not exist, nothing to flush
		if strings.Contains(strings.ToLower(err.Error()), "no such key") || err == redis.Nil {
			return nil
		}
		return err
	}

	// Ensure cleanup of tmpKey even if later steps fail
	defer c.rdb.Del(ctx, tmpKey)

	data, err := c.rdb.HGetAll(ctx, tmpKey).Result()
	if err != nil {
		return err
	}

	type pair struct {
		id  string
		inc int64
	}
	pairs := make([]pair, 0, len(data))
	for k, v := range data {
		if _, perr := uuid.Parse(k); perr != nil {
			continue
		}
		inc, ierr := strconv.ParseInt(v, 10, 64)
		if ierr != nil || inc == 0 {
			continue
		}
		pairs = append(pairs, pair{id: k, inc: inc})
	}
	if len(pairs) == 0 {
		return nil
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].id < pairs[j].id })

	// UPDATE <table> SET <column> = <column> + CASE id WHEN ? THEN ? ... END WHERE id IN ( ... )
	var builder strings.Builder
	args := make([]interface{}, 0, len(pairs)*3)
	builder.WriteString("UPDATE ")
	builder.WriteString(table)
	builder.WriteString(" SET ")
	builder.WriteString(column)
	builder.WriteString(" = ")
	builder.WriteString(column)
	builder.WriteString(" + CASE id")
	for _, p := range pairs {
		builder.WriteString(" WHEN ? THEN ?")
		args = append(args, p.id, p.inc)
	}
	builder.WriteString(" END WHERE id IN (")
	for i, p := range pairs {
		if i > 0 {
			builder.WriteString(",")
		}
		builder.WriteString("?")
		args = append(args, p.id)
	}
	builder.WriteString(")")

	if err := c.db.WithContext(ctx).Exec(builder.String(), args...).Error; err != nil {
		// put the drained increments back so the next tick retries them
		pipe := c.rdb.Pipeline()
		for _, p := range pairs {
			pipe.HIncrBy(ctx, redisKey, p.id, p.inc)
		}
		if _, rerr := pipe.Exec(ctx); rerr != nil {
			fiberlog.Errorf("restoring %s after failed flush: %v", redisKey, rerr)
		}
		return err
	}
	return nil
}
