package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/meronimo/terraformgpt"
	main "github.com/meronimo/terraformgpt/cmd/terraformgpt"
	"github.com/meronimo/terraformgpt/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes the stored resource", func(t *testing.T) {
		t.Parallel()

		var deletedID string
		resources := &mock.ResourceService{
			FindResourcesFn: func(_ context.Context, _ terraformgpt.ResourceFilter) ([]*terraformgpt.Resource, error) {
				return []*terraformgpt.Resource{storedStorageAccount()}, nil
			},
			DeleteResourceFn: func(_ context.Context, id string) error {
				deletedID = id
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Resources: resources,
		}

		cmd := &main.DeleteCmd{Resource: "azurerm_storage_account", Version: "4.52.0", Force: true}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "res-123", deletedID)
		assert.Contains(t, stdout.String(), "Deleted azurerm_storage_account version 4.52.0")
	})

	t.Run("requires force to confirm", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
		}

		cmd := &main.DeleteCmd{Resource: "azurerm_storage_account", Version: "4.52.0"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, terraformgpt.EINVALID, terraformgpt.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("reports missing resources", func(t *testing.T) {
		t.Parallel()

		resources := &mock.ResourceService{
			FindResourcesFn: func(_ context.Context, _ terraformgpt.ResourceFilter) ([]*terraformgpt.Resource, error) {
				return nil, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    &bytes.Buffer{},
			Resources: resources,
		}

		cmd := &main.DeleteCmd{Resource: "azurerm_storage_account", Version: "4.52.0", Force: true}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, terraformgpt.ENOTFOUND, terraformgpt.ErrorCode(err))
	})
}
