package sqlite_test

import (
	"context"
	"testing"

	"github.com/meronimo/terraformgpt"
	"github.com/meronimo/terraformgpt/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func testResource(name, version string) *terraformgpt.Resource {
	return &terraformgpt.Resource{
		Provider: "azurerm",
		Name:     name,
		Version:  version,
		DocURL:   "https://registry.terraform.io/providers/hashicorp/azurerm/" + version + "/docs/resources/" + name,
	}
}

func TestResourceService_CreateResource(t *testing.T) {
	t.Parallel()

	t.Run("creates resource with generated ID and timestamps", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewResourceService(db)
		ctx := context.Background()

		res := testResource("azurerm_storage_account", "4.52.0")

		err := svc.CreateResource(ctx, res)
		require.NoError(t, err)

		assert.NotEmpty(t, res.ID, "ID should be generated")
		assert.False(t, res.CreatedAt.IsZero(), "CreatedAt should be set")
		assert.False(t, res.UpdatedAt.IsZero(), "UpdatedAt should be set")
	})

	t.Run("returns error for invalid resource", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewResourceService(db)
		ctx := context.Background()

		res := &terraformgpt.Resource{} // missing required fields

		err := svc.CreateResource(ctx, res)
		require.Error(t, err)
		assert.Equal(t, terraformgpt.EINVALID, terraformgpt.ErrorCode(err))
	})

	t.Run("returns ECONFLICT for duplicate provider/name/version", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewResourceService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateResource(ctx, testResource("azurerm_storage_account", "4.52.0")))

		err := svc.CreateResource(ctx, testResource("azurerm_storage_account", "4.52.0"))
		require.Error(t, err)
		assert.Equal(t, terraformgpt.ECONFLICT, terraformgpt.ErrorCode(err))
	})

	t.Run("allows same resource at different version", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewResourceService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateResource(ctx, testResource("azurerm_storage_account", "4.51.0")))
		require.NoError(t, svc.CreateResource(ctx, testResource("azurerm_storage_account", "4.52.0")))
	})
}

func TestResourceService_FindResourceByID(t *testing.T) {
	t.Parallel()

	t.Run("returns resource when found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewResourceService(db)
		ctx := context.Background()

		res := testResource("azurerm_storage_account", "4.52.0")
		require.NoError(t, svc.CreateResource(ctx, res))

		found, err := svc.FindResourceByID(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, res.ID, found.ID)
		assert.Equal(t, res.Provider, found.Provider)
		assert.Equal(t, res.Name, found.Name)
		assert.Equal(t, res.Version, found.Version)
		assert.Equal(t, res.DocURL, found.DocURL)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewResourceService(db)
		ctx := context.Background()

		_, err := svc.FindResourceByID(ctx, "nonexistent-id")
		require.Error(t, err)
		assert.Equal(t, terraformgpt.ENOTFOUND, terraformgpt.ErrorCode(err))
	})
}

func TestResourceService_FindResources(t *testing.T) {
	t.Parallel()

	t.Run("filters by name and version", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewResourceService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateResource(ctx, testResource("azurerm_storage_account", "4.51.0")))
		require.NoError(t, svc.CreateResource(ctx, testResource("azurerm_storage_account", "4.52.0")))
		require.NoError(t, svc.CreateResource(ctx, testResource("azurerm_key_vault", "4.52.0")))

		name := "azurerm_storage_account"
		version := "4.52.0"
		resources, err := svc.FindResources(ctx, terraformgpt.ResourceFilter{Name: &name, Version: &version})
		require.NoError(t, err)
		require.Len(t, resources, 1)
		assert.Equal(t, "azurerm_storage_account", resources[0].Name)
		assert.Equal(t, "4.52.0", resources[0].Version)
	})

	t.Run("filters by provider", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewResourceService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateResource(ctx, testResource("azurerm_storage_account", "4.52.0")))
		aws := &terraformgpt.Resource{Provider: "aws", Name: "aws_s3_bucket", Version: "5.0.0"}
		require.NoError(t, svc.CreateResource(ctx, aws))

		provider := "aws"
		resources, err := svc.FindResources(ctx, terraformgpt.ResourceFilter{Provider: &provider})
		require.NoError(t, err)
		require.Len(t, resources, 1)
		assert.Equal(t, "aws_s3_bucket", resources[0].Name)
	})

	t.Run("sorts versions newest first within a name", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewResourceService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateResource(ctx, testResource("azurerm_storage_account", "4.51.0")))
		require.NoError(t, svc.CreateResource(ctx, testResource("azurerm_storage_account", "4.52.0")))

		name := "azurerm_storage_account"
		resources, err := svc.FindResources(ctx, terraformgpt.ResourceFilter{Name: &name})
		require.NoError(t, err)
		require.Len(t, resources, 2)
		assert.Equal(t, "4.52.0", resources[0].Version)
	})

	t.Run("orders versions semantically, not lexicographically", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewResourceService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateResource(ctx, testResource("azurerm_storage_account", "9.0.0")))
		require.NoError(t, svc.CreateResource(ctx, testResource("azurerm_storage_account", "10.0.0")))
		require.NoError(t, svc.CreateResource(ctx, testResource("azurerm_storage_account", "9.1.0")))

		name := "azurerm_storage_account"
		resources, err := svc.FindResources(ctx, terraformgpt.ResourceFilter{Name: &name})
		require.NoError(t, err)
		require.Len(t, resources, 3)

		versions := []string{resources[0].Version, resources[1].Version, resources[2].Version}
		assert.Equal(t, []string{"10.0.0", "9.1.0", "9.0.0"}, versions)
	})

	t.Run("respects limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewResourceService(db)
		ctx := context.Background()

		for _, name := range []string{"azurerm_a", "azurerm_b", "azurerm_c"} {
			require.NoError(t, svc.CreateResource(ctx, testResource(name, "4.52.0")))
		}

		resources, err := svc.FindResources(ctx, terraformgpt.ResourceFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, resources, 2)
		assert.Equal(t, "azurerm_b", resources[0].Name)
	})
}

func TestResourceService_UpdateResource(t *testing.T) {
	t.Parallel()

	t.Run("updates doc URL and content hash", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewResourceService(db)
		ctx := context.Background()

		res := testResource("azurerm_storage_account", "4.52.0")
		require.NoError(t, svc.CreateResource(ctx, res))

		docURL := "https://example.com/docs/storage_account"
		hash := "deadbeefdeadbeef"
		updated, err := svc.UpdateResource(ctx, res.ID, terraformgpt.ResourceUpdate{
			DocURL:      &docURL,
			ContentHash: &hash,
		})
		require.NoError(t, err)
		assert.Equal(t, docURL, updated.DocURL)
		assert.Equal(t, hash, updated.ContentHash)

		found, err := svc.FindResourceByID(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, docURL, found.DocURL)
	})

	t.Run("returns ENOTFOUND for missing resource", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewResourceService(db)
		ctx := context.Background()

		_, err := svc.UpdateResource(ctx, "nonexistent-id", terraformgpt.ResourceUpdate{})
		require.Error(t, err)
		assert.Equal(t, terraformgpt.ENOTFOUND, terraformgpt.ErrorCode(err))
	})
}

func TestResourceService_DeleteResource(t *testing.T) {
	t.Parallel()

	t.Run("deletes resource and cascades to attributes", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		resources := sqlite.NewResourceService(db)
		attributes := sqlite.NewAttributeService(db)
		ctx := context.Background()

		res := testResource("azurerm_storage_account", "4.52.0")
		require.NoError(t, resources.CreateResource(ctx, res))
		require.NoError(t, attributes.CreateAttribute(ctx, &terraformgpt.Attribute{
			ResourceID: res.ID,
			Name:       "name",
		}))

		require.NoError(t, resources.DeleteResource(ctx, res.ID))

		attrs, err := attributes.FindAttributes(ctx, terraformgpt.AttributeFilter{ResourceID: &res.ID})
		require.NoError(t, err)
		assert.Empty(t, attrs)
	})

	t.Run("returns ENOTFOUND for missing resource", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewResourceService(db)
		ctx := context.Background()

		err := svc.DeleteResource(ctx, "nonexistent-id")
		require.Error(t, err)
		assert.Equal(t, terraformgpt.ENOTFOUND, terraformgpt.ErrorCode(err))
	})
}
