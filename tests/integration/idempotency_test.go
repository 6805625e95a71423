package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/smbc/backend/internal/infrastructure/cache"
	"github.com/smbc/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) config.RedisConfig {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "Failed to start Redis container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return config.RedisConfig{Enabled: true, Host: host, Port: port.Int(), IdempotencyTTL: time.Minute}
}

func TestRedisIdempotencyStore(t *testing.T) {
	cfg := startRedis(t)
	ctx := context.Background()

	store, err := cache.NewRedisIdempotencyStore(ctx, cfg)
	require.NoError(t, err)
	defer store.Close()

	key := fmt.Sprintf("user|/api/v1/carenderia/transactions|%d", time.Now().UnixNano())

	ok, err := store.Claim(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Claim(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "a held key cannot be claimed twice")

	require.NoError(t, store.Release(ctx, key))
	ok, err = store.Claim(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "a released key can be claimed again")
}

func TestRedisIdempotencyKeyExpires(t *testing.T) {
	cfg := startRedis(t)
	ctx := context.Background()

	store, err := cache.NewRedisIdempotencyStore(ctx, cfg)
	require.NoError(t, err)
	defer store.Close()

	ok, err := store.Claim(ctx, "short-lived", 50*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Eventually(t, func() bool {
		ok, err := store.Claim(ctx, "short-lived", time.Minute)
		return err == nil && ok
	}, 5*time.Second, 20*time.Millisecond)
}

func TestIdempotencyFactoryFallsBackWithoutRedis(t *testing.T) {
	store := cache.NewIdempotencyStore(context.Background(), config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}, nil)
	defer store.Close()
	_, isMemory := store.(*cache.InMemoryIdempotencyStore)
	assert.True(t, isMemory)
}
