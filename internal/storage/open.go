package storage

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"

	"hotelindigo/internal/database"
)

// Open picks the backend from the URL scheme: "memory", redis:// and
// rediss:// for Redis, anything else is handed to database.Connect.
func Open(ctx context.Context, url, namespace string) (Store, error) {
	switch {
	case url == "memory":
		log.Println("Using in-memory client storage (not durable)")
		return NewMemoryStore(), nil

	case strings.HasPrefix(url, "redis://"), strings.HasPrefix(url, "rediss://"):
		opts, err := redis.ParseURL(url)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		log.Printf("Using Redis client storage: addr=%s namespace=%s", opts.Addr, namespace)
		return NewRedisStore(client, namespace), nil

	default:
		db, err := database.Connect(url)
		if err != nil {
			return nil, err
		}
		return NewGormStore(db, namespace)
	}
}
