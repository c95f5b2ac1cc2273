package bloom_test

import (
	"testing"

	"github.com/meronimo/terraformgpt/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("https://registry.terraform.io/docs/resources/storage_account"))

	f.Add("https://registry.terraform.io/docs/resources/storage_account")

	assert.True(t, f.Test("https://registry.terraform.io/docs/resources/storage_account"))
	assert.False(t, f.Test("https://registry.terraform.io/docs/resources/key_vault"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	for _, key := range []string{"a", "b", "c"} {
		f.Add(key)
	}

	count := f.EstimatedCount()
	assert.InDelta(t, 3, float64(count), 1)
}
