package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/samber/mo"

	"github.com/Nixie-Tech-LLC/planner/internal/calendar"
)

const defaultPrefix = "planner:window"

// WindowCache stores merged calendar windows. Keys embed a version counter;
// Invalidate bumps the counter so every earlier window becomes unreachable
// and expires on its own TTL.
//
// Cache failures are logged and treated as misses.
type WindowCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewWindowCache(client *redis.Client, ttl time.Duration) *WindowCache {
	return &WindowCache{client: client, ttl: ttl, prefix: defaultPrefix}
}

func (c *WindowCache) versionKey() string {
	return c.prefix + ":version"
}

// Version returns the current window generation, or -1 when it cannot be
// read.
func (c *WindowCache) Version(ctx context.Context) int64 {
	v, err := c.client.Get(ctx, c.versionKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0
	}
	if err != nil {
		log.Error().Err(err).Msg("window cache: read version")
		return -1
	}
	return v
}

func (c *WindowCache) key(version int64, from, to time.Time) string {
	return fmt.Sprintf("%s:%d:%s:%s", c.prefix, version,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
}

func (c *WindowCache) Get(ctx context.Context, version int64, from, to time.Time) mo.Option[[]calendar.Occurrence] {
	if version < 0 {
		return mo.None[[]calendar.Occurrence]()
	}

	raw, err := c.client.Get(ctx, c.key(version, from, to)).Bytes()
	if errors.Is(err, redis.Nil) {
		return mo.None[[]calendar.Occurrence]()
	}
	if err != nil {
		log.Error().Err(err).Msg("window cache: get")
		return mo.None[[]calendar.Occurrence]()
	}

	var out []calendar.Occurrence
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Error().Err(err).Msg("window cache: decode")
		return mo.None[[]calendar.Occurrence]()
	}
	return mo.Some(out)
}

// Set stores a window under the version it was computed at. If the cache was
// invalidated since, the entry is written under a stale key and only waits
// out its TTL.
func (c *WindowCache) Set(ctx context.Context, version int64, from, to time.Time, occurrences []calendar.Occurrence) {
	if version < 0 {
		return
	}

	raw, err := json.Marshal(occurrences)
	if err != nil {
		log.Error().Err(err).Msg("window cache: encode")
		return
	}

	if err := c.client.Set(ctx, c.key(version, from, to), raw, c.ttl).Err(); err != nil {
		log.Error().Err(err).Msg("window cache: set")
	}
}

func (c *WindowCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, c.versionKey()).Err(); err != nil {
		log.Error().Err(err).Msg("window cache: bump version")
	}
}
