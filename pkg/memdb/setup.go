package memdb

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	URL      string `json:"url" yaml:"url"`
	Password string `json:"password" yaml:"password"`
	// DraftTTL is a duration string like "7d" or "48h".
	DraftTTL string `json:"draft_ttl" yaml:"draft_ttl"`
}

const DEFAULT_REDIS_URL = "redis://localhost:6379/0"

// NewRedisClient connects and pings. The password, when set, overrides the one in the URL.
func NewRedisClient(conf RedisConfig) (*redis.Client, error) {
	url := conf.URL
	if url == "" {
		url = DEFAULT_REDIS_URL
	}
	redisClientOptions, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	if conf.Password != "" {
		redisClientOptions.Password = conf.Password
	}

	client := redis.NewClient(redisClientOptions)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
