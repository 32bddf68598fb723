package testutil

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go/modules/redis"
)

// RedisContainer wraps a testcontainers Redis instance.
type RedisContainer struct {
	Container *redis.RedisContainer
	Client    *goredis.Client
}

// NewRedisContainer starts a Redis container for testing and registers its
// termination with t.Cleanup.
func NewRedisContainer(ctx context.Context, t *testing.T) *RedisContainer {
	t.Helper()

	container, err := redis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get redis connection string: %v", err)
	}

	opts, err := goredis.ParseURL(uri)
	if err != nil {
		t.Fatalf("failed to parse redis URL %q: %v", uri, err)
	}
	client := goredis.NewClient(opts)

	rc := &RedisContainer{Container: container, Client: client}
	t.Cleanup(func() {
		_ = client.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("warning: failed to terminate redis container: %v", err)
		}
	})
	return rc
}
