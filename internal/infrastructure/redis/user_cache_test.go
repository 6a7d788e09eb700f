package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/oksasatya/skillswap-api/internal/application"
)

// TestMain starts Redis in a container when GO_TEST_INTEGRATION is set and
// REDIS_TEST_ADDR does not already point at a server.
func TestMain(m *testing.M) {
	if os.Getenv("GO_TEST_INTEGRATION") == "" || os.Getenv("REDIS_TEST_ADDR") != "" {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	rc, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start redis testcontainer: %v\n", err)
		os.Exit(1)
	}
	host, err := rc.Host(ctx)
	if err != nil {
		_ = rc.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}
	port, err := rc.MappedPort(ctx, "6379/tcp")
	if err != nil {
		_ = rc.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get mapped port: %v\n", err)
		os.Exit(1)
	}
	_ = os.Setenv("REDIS_TEST_ADDR", host+":"+port.Port())

	code := m.Run()

	_ = rc.Terminate(context.Background())
	os.Exit(code)
}

func mustNewCache(t *testing.T, ttl time.Duration) (*UserCache, *goredis.Client) {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set; skipping Redis integration test")
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, rdb.FlushDB(ctx).Err())
	t.Cleanup(func() { _ = rdb.Close() })
	return NewUserCache(rdb, ttl), rdb
}

func TestUserCache_RoundTrip(t *testing.T) {
	c, _ := mustNewCache(t, time.Minute)
	ctx := context.Background()

	alice := application.PublicUser{ID: "a", Email: "alice@example.com", Name: "Alice",
		Profile: application.PublicProfile{Bio: "hi"}, CreatedAt: "2025-01-01T00:00:00.000Z", UpdatedAt: "2025-01-01T00:00:00.000Z"}
	bob := application.PublicUser{ID: "b", Email: "bob@example.com", Name: "Bob"}

	require.NoError(t, c.SetMany(ctx, []application.PublicUser{alice, bob}))

	got, err := c.GetMany(ctx, []string{"a", "b", "missing"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, alice, got["a"])
	require.Equal(t, bob, got["b"])

	require.NoError(t, c.Invalidate(ctx, "a"))
	got, err = c.GetMany(ctx, []string{"a", "b"})
	require.NoError(t, err)
	require.NotContains(t, got, "a")
	require.Contains(t, got, "b")
}

func TestUserCache_TTLAndCorruptEntries(t *testing.T) {
	c, rdb := mustNewCache(t, 30*time.Second)
	ctx := context.Background()

	require.NoError(t, c.SetMany(ctx, []application.PublicUser{{ID: "x", Name: "X"}}))
	ttl, err := rdb.TTL(ctx, key("x")).Result()
	require.NoError(t, err)
	require.Greater(t, ttl, time.Duration(0))
	require.LessOrEqual(t, ttl, 30*time.Second)

	require.NoError(t, rdb.Set(ctx, key("bad"), "{not json", 0).Err())
	got, err := c.GetMany(ctx, []string{"x", "bad"})
	require.NoError(t, err)
	require.Contains(t, got, "x")
	require.NotContains(t, got, "bad")
}

func TestUserCache_Empty(t *testing.T) {
	c := NewUserCache(nil, time.Minute)
	got, err := c.GetMany(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, got)
	require.NoError(t, c.SetMany(context.Background(), nil))
}

func TestKey(t *testing.T) {
	require.Equal(t, "skillswap:user:abc", key("abc"))
}
