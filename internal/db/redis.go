// internal/db/redis.go
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisDB struct {
	Client *redis.Client
}

func NewRedisDB(redisURL string) (*RedisDB, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Println("[Redis] ✅ Connected to Redis")
	return &RedisDB{Client: client}, nil
}

func (r *RedisDB) Close() {
	if r.Client != nil {
		r.Client.Close()
		log.Println("[Redis] Connection closed")
	}
}

// PublishJSON encodes value and publishes it on channel.
func (r *RedisDB) PublishJSON(ctx context.Context, channel string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.Client.Publish(ctx, channel, data).Err()
}

// Subscribe returns a subscription on channel. Callers close it.
func (r *RedisDB) Subscribe(ctx context.Context, channel string) *redis.PubSub {
	return r.Client.Subscribe(ctx, channel)
}
