package goquery_test

import (
	"testing"

	"github.com/meronimo/terraformgpt"
	"github.com/meronimo/terraformgpt/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	extractor := goquery.NewExtractor()

	t.Run("extracts article content and strips chrome", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>azurerm_storage_account | Registry</title></head><body>
			<nav><a href="/">Home</a></nav>
			<article class="markdown">
				<h1>azurerm_storage_account</h1>
				<nav class="toc"><a href="#name">name</a></nav>
				<h2>Argument Reference</h2>
				<ul><li><code>name</code> - (Required) The name.</li></ul>
			</article>
			<footer>footer text</footer>
		</body></html>`

		result, err := extractor.Extract(html)
		require.NoError(t, err)

		assert.Equal(t, "azurerm_storage_account", result.Title)
		assert.Contains(t, result.ContentHTML, "Argument Reference")
		assert.Contains(t, result.ContentHTML, "<code>name</code>")
		assert.NotContains(t, result.ContentHTML, "toc", "nav inside content should be removed")
		assert.NotContains(t, result.ContentHTML, "footer text")
	})

	t.Run("falls back to main element", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main><h2>Argument Reference</h2><p>content</p></main></body></html>`

		result, err := extractor.Extract(html)
		require.NoError(t, err)

		assert.Contains(t, result.ContentHTML, "Argument Reference")
	})

	t.Run("falls back to page title when content has no heading", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>storage_account docs</title></head><body><main><p>content</p></main></body></html>`

		result, err := extractor.Extract(html)
		require.NoError(t, err)

		assert.Equal(t, "storage_account docs", result.Title)
	})

	t.Run("returns EINVALID for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := extractor.Extract("  ")
		require.Error(t, err)
		assert.Equal(t, terraformgpt.EINVALID, terraformgpt.ErrorCode(err))
	})

	t.Run("returns EINVALID when no content container exists", func(t *testing.T) {
		t.Parallel()

		_, err := extractor.Extract("<html><body><div>nothing semantic</div></body></html>")
		require.Error(t, err)
		assert.Equal(t, terraformgpt.EINVALID, terraformgpt.ErrorCode(err))
	})
}
