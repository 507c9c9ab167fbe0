package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs
const (
	TTLSubject   = 10 * time.Minute // curriculum reference data, changes rarely
	TTLTopic     = 5 * time.Minute  // published topic detail
	TTLTopicList = 1 * time.Minute  // published topic listings
	TTLDefault   = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixSubject   = "subject:"
	PrefixTopic     = "topic:"
	PrefixTopicList = "topics:"
)

// Service is the Redis cache interface for published content.
// All operations degrade to no-ops when Redis is unavailable.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Published topic detail cache, keyed by chapter id + topic slug
	GetTopic(ctx context.Context, chapterID uint64, topicSlug string) ([]byte, error)
	SetTopic(ctx context.Context, chapterID uint64, topicSlug string, data interface{}) error

	// Published topic list cache, keyed per chapter
	GetTopicList(ctx context.Context, chapterID uint64) ([]byte, error)
	SetTopicList(ctx context.Context, chapterID uint64, data interface{}) error

	// InvalidateChapter drops the list cache and every topic detail
	// cached under the chapter
	InvalidateChapter(ctx context.Context, chapterID uint64) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a new cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) Exists(ctx context.Context, key string) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	n, err := c.client.Exists(ctx, key).Result()
	return n > 0, err
}

func (c *redisCache) topicKey(chapterID uint64, topicSlug string) string {
	return PrefixTopic + strconv.FormatUint(chapterID, 10) + ":" + topicSlug
}

func (c *redisCache) GetTopic(ctx context.Context, chapterID uint64, topicSlug string) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.topicKey(chapterID, topicSlug)).Bytes()
}

func (c *redisCache) SetTopic(ctx context.Context, chapterID uint64, topicSlug string, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.topicKey(chapterID, topicSlug), jsonData, TTLTopic).Err()
}

func (c *redisCache) topicListKey(chapterID uint64) string {
	return PrefixTopicList + strconv.FormatUint(chapterID, 10)
}

func (c *redisCache) GetTopicList(ctx context.Context, chapterID uint64) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.topicListKey(chapterID)).Bytes()
}

func (c *redisCache) SetTopicList(ctx context.Context, chapterID uint64, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.topicListKey(chapterID), jsonData, TTLTopicList).Err()
}

func (c *redisCache) InvalidateChapter(ctx context.Context, chapterID uint64) error {
	if c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, c.topicListKey(chapterID)).Err(); err != nil {
		return err
	}
	return c.deleteByPattern(ctx, PrefixTopic+strconv.FormatUint(chapterID, 10)+":*")
}

// deleteByPattern scans and deletes keys matching a pattern
func (c *redisCache) deleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
