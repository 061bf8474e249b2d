package db

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

// TestConnectPostgres checks DSN handling and, when DATABASE_URL is set,
// a real connection plus schema bootstrap.
func TestConnectPostgres(t *testing.T) {
	t.Run("missing DATABASE_URL", func(t *testing.T) {
		_, err := ConnectPostgres(context.Background(), "")
		if !errors.Is(err, ErrMissingDSN) {
			t.Fatalf("expected ErrMissingDSN, got %v", err)
		}
	})

	t.Run("malformed DATABASE_URL", func(t *testing.T) {
		_, err := ConnectPostgres(context.Background(), "postgres://%zz")
		if err == nil {
			t.Fatal("expected parse error")
		}
	})

	t.Run("valid DATABASE_URL should connect", func(t *testing.T) {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			t.Skip("DATABASE_URL not set, skipping integration test")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pool, err := ConnectPostgres(ctx, dsn)
		if err != nil {
			t.Fatalf("connect: %v", err)
		}
		defer pool.Close()

		// schema bootstrap must be re-runnable
		if err := initSchema(ctx, pool); err != nil {
			t.Fatalf("second initSchema: %v", err)
		}
	})
}
