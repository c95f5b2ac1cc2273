package gemini_test

import (
	"context"
	"testing"

	"github.com/meronimo/terraformgpt"
	"github.com/meronimo/terraformgpt/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	// Use a real model name that the tokenizer supports
	tc, err := gemini.NewTokenCounter("gemini-2.0-flash")
	require.NoError(t, err)

	var _ terraformgpt.TokenCounter = tc

	t.Run("counts tokens in text", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "The name of the storage account.")

		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("empty string returns zero", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("longer text returns more tokens", func(t *testing.T) {
		t.Parallel()

		shortCount, err := tc.CountTokens(context.Background(), "name")
		require.NoError(t, err)

		longCount, err := tc.CountTokens(context.Background(),
			"The name of the storage account. Changing this forces a new resource to be created.")
		require.NoError(t, err)

		assert.Greater(t, longCount, shortCount)
	})
}
