package postgres

import (
	"context"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/oksasatya/skillswap-api/internal/domain/repository"
	"github.com/oksasatya/skillswap-api/internal/infrastructure/storetest"
)

const migrationsDir = "../../../db/migrations"

// TestMain starts PostgreSQL in a container once per package when
// GO_TEST_INTEGRATION is set. POSTGRES_TEST_DSN may point at an existing server instead.
func TestMain(m *testing.M) {
	if os.Getenv("GO_TEST_INTEGRATION") == "" || os.Getenv("POSTGRES_TEST_DSN") != "" {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "skillswap_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start postgres testcontainer: %v\n", err)
		os.Exit(1)
	}

	host, err := pgC.Host(ctx)
	if err != nil {
		_ = pgC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}
	port, err := pgC.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = pgC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get mapped port: %v\n", err)
		os.Exit(1)
	}
	_ = os.Setenv("POSTGRES_TEST_DSN", fmt.Sprintf("postgres://postgres:postgres@%s:%s/skillswap_test?sslmode=disable", host, port.Port()))

	code := m.Run()

	_ = pgC.Terminate(context.Background())
	os.Exit(code)
}

// mustNewStore migrates the schema and truncates all tables before handing out a store.
func mustNewStore(t *testing.T) repository.Store {
	t.Helper()

	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set; skipping PostgreSQL integration test")
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	if err := RunMigrations(dsn, migrationsDir, logger); err != nil {
		t.Fatalf("migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := NewPool(ctx, dsn, PoolOptions{MaxConns: 10, MinConns: 1, MaxConnLife: time.Hour})
	if err != nil {
		t.Fatalf("cannot connect to PostgreSQL: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE request_messages, swap_requests, users`); err != nil {
		pool.Close()
		t.Fatalf("truncate: %v", err)
	}
	t.Cleanup(pool.Close)

	return Repositories(pool)
}

func TestPostgresStore_Contract(t *testing.T) {
	storetest.Run(t, storetest.Backend{
		New:       mustNewStore,
		UnknownID: uuid.NewString(),
	})
}
