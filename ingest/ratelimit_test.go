package ingest_test

import (
	"context"
	"testing"
	"time"

	"github.com/meronimo/terraformgpt/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("first request is immediate", func(t *testing.T) {
		t.Parallel()

		limiter := ingest.NewDomainLimiter(1)

		start := time.Now()
		err := limiter.Wait(context.Background(), "registry.terraform.io")
		require.NoError(t, err)

		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("throttles repeated requests to the same domain", func(t *testing.T) {
		t.Parallel()

		limiter := ingest.NewDomainLimiter(20)

		start := time.Now()
		for range 3 {
			require.NoError(t, limiter.Wait(context.Background(), "registry.terraform.io"))
		}

		// At 20 rps the second and third request wait ~50ms each.
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("domains throttle independently", func(t *testing.T) {
		t.Parallel()

		limiter := ingest.NewDomainLimiter(1)

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "a.example.com"))
		require.NoError(t, limiter.Wait(context.Background(), "b.example.com"))

		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("returns when the context is canceled", func(t *testing.T) {
		t.Parallel()

		limiter := ingest.NewDomainLimiter(0.001)
		require.NoError(t, limiter.Wait(context.Background(), "slow.example.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		err := limiter.Wait(ctx, "slow.example.com")
		assert.Error(t, err)
	})
}
