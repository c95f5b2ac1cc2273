package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/meronimo/terraformgpt"
	"github.com/meronimo/terraformgpt/mock"
	tgslog "github.com/meronimo/terraformgpt/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("logs discovery with count and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *terraformgpt.URLFilter) ([]string, error) {
				return []string{"https://example.com/docs/resources/storage_account"}, nil
			},
		}

		svc := tgslog.NewLoggingSitemapService(inner, logger)
		urls, err := svc.DiscoverURLs(context.Background(), "https://example.com/docs", nil)

		require.NoError(t, err)
		assert.Len(t, urls, 1)
		output := buf.String()
		assert.Contains(t, output, "sitemap discovery")
		assert.Contains(t, output, "count=1")
		assert.Contains(t, output, "duration=")
	})
}
