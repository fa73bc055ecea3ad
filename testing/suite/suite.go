// Package suite runs repository tests against a throwaway redis container.
package suite

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe/internal/repository/storage"
)

const (
	// containerLifetime is in seconds; docker kills the container after it even if cleanup never runs.
	containerLifetime = 120
	startupTimeout    = 2 * time.Minute

	redisPort       = "6379/tcp"
	redisImage      = "redis"
	defaultRedisTag = "alpine"
	redisTagEnv     = "TEST_REDIS_TAG"
)

// Suite holds a connected, empty redis. Tests using it are skipped when no Docker daemon is reachable.
type Suite struct {
	*testing.T

	Storage *redis.Client
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	t.Cleanup(cancel)

	pool := newPool(t)
	resource := startRedis(t, pool)
	redisStorage := connect(ctx, t, pool, resource)

	if err := redisStorage.Connection.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush database: %v", err)
	}

	return ctx, &Suite{
		T:       t,
		Storage: redisStorage.Connection,
	}
}

func newPool(t *testing.T) *dockertest.Pool {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker daemon is not reachable: %v", err)
	}

	pool.MaxWait = startupTimeout

	return pool
}

func startRedis(t *testing.T, pool *dockertest.Pool) *dockertest.Resource {
	t.Helper()

	tag := os.Getenv(redisTagEnv)
	if tag == "" {
		tag = defaultRedisTag
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        tag,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start redis %s: %v", tag, err)
	}

	// never returns error
	_ = resource.Expire(containerLifetime)

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Errorf("could not purge redis container: %v", err)
		}
	})

	return resource
}

// connect - retries until redis inside the container accepts connections.
func connect(ctx context.Context, t *testing.T, pool *dockertest.Pool, resource *dockertest.Resource) *storage.RedisStorage {
	t.Helper()

	addr := resource.GetHostPort(redisPort)

	var redisStorage *storage.RedisStorage
	err := pool.Retry(func() error {
		var err error
		redisStorage, err = storage.NewRedisStorage(ctx, storage.RedisOptions{Addr: addr})
		return err
	})
	if err != nil {
		t.Fatalf("could not connect to redis at %s: %v", addr, err)
	}

	t.Cleanup(func() {
		if err := redisStorage.Close(); err != nil {
			t.Logf("could not close redis: %v", err)
		}
	})

	return redisStorage
}
