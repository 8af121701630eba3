package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// OpenJobsKey holds the cached open-jobs listing snapshot. Writers to the
// jobs table delete it so the next read repopulates from the database.
const OpenJobsKey = "jobs:open"

// Store is the subset of cache operations handlers depend on.
type Store interface {
	SetJSON(key string, value any, expiration time.Duration) error
	GetJSON(key string, dst any) (bool, error)
	Delete(key string) error
}

type Cache struct {
	client *redis.Client
	ctx    context.Context
}

func New(redisAddr string, db int) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr: redisAddr,
		DB:   db,
	})

	return &Cache{
		client: client,
		ctx:    context.Background(),
	}
}

// Set stores a key-value pair with an expiration time
func (c *Cache) Set(key string, value string, expiration time.Duration) error {
	return c.client.Set(c.ctx, key, value, expiration).Err()
}

// Get retrieves a value by key
func (c *Cache) Get(key string) (string, error) {
	return c.client.Get(c.ctx, key).Result()
}

// SetJSON marshals value and stores it under key with an expiration time
func (c *Cache) SetJSON(key string, value any, expiration time.Duration) error {
	js, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(c.ctx, key, js, expiration).Err()
}

// GetJSON unmarshals the cached value into dst. The boolean reports
// whether the key was present.
func (c *Cache) GetJSON(key string, dst any) (bool, error) {
	js, err := c.client.Get(c.ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(js, dst); err != nil {
		return false, err
	}

	return true, nil
}

// Delete removes a key from the cache
func (c *Cache) Delete(key string) error {
	return c.client.Del(c.ctx, key).Err()
}

// Exists checks if a key exists in cache
func (c *Cache) Exists(key string) (bool, error) {
	count, err := c.client.Exists(c.ctx, key).Result()
	return count > 0, err
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}
