package question

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultCacheTTL    = 5 * time.Minute
	defaultCachePrefix = "quiz"
)

// Cache stores the rendered quiz payload in Redis.
//
// Entries are keyed by a generation number. Invalidate bumps the generation,
// so a payload computed from data read before a commit lands under the old
// key and is never served again.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

var _ QuizCache = (*Cache)(nil)

func NewCache(client *redis.Client, ttl time.Duration, prefix string) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if prefix == "" {
		prefix = defaultCachePrefix
	}
	return &Cache{client: client, ttl: ttl, prefix: prefix}
}

func (c *Cache) versionKey() string {
	return c.prefix + ":version"
}

func (c *Cache) payloadKey(version int64) string {
	return c.prefix + ":payload:" + strconv.FormatInt(version, 10)
}

// Version returns the current generation, zero when none was ever written.
func (c *Cache) Version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, c.versionKey()).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return v, nil
}

// Get returns the cached payload for version, or nil on a miss.
func (c *Cache) Get(ctx context.Context, version int64) ([]Item, error) {
	data, err := c.client.Get(ctx, c.payloadKey(version)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	items := []Item{}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Cache) Set(ctx context.Context, version int64, items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.payloadKey(version), data, c.ttl).Err()
}

// Invalidate moves readers to a fresh generation.
func (c *Cache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, c.versionKey()).Err()
}

// Evict drops the payload of the current generation. Used when Invalidate
// cannot bump the generation.
func (c *Cache) Evict(ctx context.Context) error {
	version, err := c.Version(ctx)
	if err != nil {
		return err
	}
	return c.client.Del(ctx, c.payloadKey(version)).Err()
}
