package sqlite_test

import (
	"context"
	"testing"

	"github.com/meronimo/terraformgpt"
	"github.com/meronimo/terraformgpt/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestResource(t *testing.T, db *sqlite.DB) *terraformgpt.Resource {
	t.Helper()
	res := testResource("azurerm_storage_account", "4.52.0")
	require.NoError(t, sqlite.NewResourceService(db).CreateResource(context.Background(), res))
	return res
}

func TestAttributeService_CreateAttribute(t *testing.T) {
	t.Parallel()

	t.Run("creates attribute with generated ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewAttributeService(db)
		ctx := context.Background()
		res := createTestResource(t, db)

		attr := &terraformgpt.Attribute{
			ResourceID:   res.ID,
			Name:         "name",
			Description:  "The name of the storage account.",
			Required:     true,
			Type:         "string",
			VersionAdded: "4.0.0",
			DocAnchor:    "#name",
		}

		err := svc.CreateAttribute(ctx, attr)
		require.NoError(t, err)
		assert.NotEmpty(t, attr.ID)
	})

	t.Run("returns error for invalid attribute", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewAttributeService(db)
		ctx := context.Background()

		err := svc.CreateAttribute(ctx, &terraformgpt.Attribute{})
		require.Error(t, err)
		assert.Equal(t, terraformgpt.EINVALID, terraformgpt.ErrorCode(err))
	})
}

func TestAttributeService_CreateAttributes(t *testing.T) {
	t.Parallel()

	t.Run("creates all attributes in one transaction", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewAttributeService(db)
		ctx := context.Background()
		res := createTestResource(t, db)

		attrs := []*terraformgpt.Attribute{
			{ResourceID: res.ID, Name: "name", Required: true, Position: 0},
			{ResourceID: res.ID, Name: "resource_group_name", Required: true, Position: 1},
			{ResourceID: res.ID, Name: "tags", Position: 2},
		}

		require.NoError(t, svc.CreateAttributes(ctx, attrs))

		for _, attr := range attrs {
			assert.NotEmpty(t, attr.ID)
		}

		found, err := svc.FindAttributes(ctx, terraformgpt.AttributeFilter{ResourceID: &res.ID})
		require.NoError(t, err)
		assert.Len(t, found, 3)
	})

	t.Run("rejects batch containing an invalid attribute", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewAttributeService(db)
		ctx := context.Background()
		res := createTestResource(t, db)

		attrs := []*terraformgpt.Attribute{
			{ResourceID: res.ID, Name: "name"},
			{ResourceID: res.ID}, // missing name
		}

		err := svc.CreateAttributes(ctx, attrs)
		require.Error(t, err)
		assert.Equal(t, terraformgpt.EINVALID, terraformgpt.ErrorCode(err))

		found, err := svc.FindAttributes(ctx, terraformgpt.AttributeFilter{ResourceID: &res.ID})
		require.NoError(t, err)
		assert.Empty(t, found, "no attributes should be written when the batch fails")
	})
}

func TestAttributeService_FindAttributes(t *testing.T) {
	t.Parallel()

	t.Run("sorts by position by default", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewAttributeService(db)
		ctx := context.Background()
		res := createTestResource(t, db)

		require.NoError(t, svc.CreateAttributes(ctx, []*terraformgpt.Attribute{
			{ResourceID: res.ID, Name: "tags", Position: 2},
			{ResourceID: res.ID, Name: "name", Position: 0},
			{ResourceID: res.ID, Name: "location", Position: 1},
		}))

		attrs, err := svc.FindAttributes(ctx, terraformgpt.AttributeFilter{ResourceID: &res.ID})
		require.NoError(t, err)
		require.Len(t, attrs, 3)
		assert.Equal(t, "name", attrs[0].Name)
		assert.Equal(t, "location", attrs[1].Name)
		assert.Equal(t, "tags", attrs[2].Name)
	})

	t.Run("sorts by name when requested", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewAttributeService(db)
		ctx := context.Background()
		res := createTestResource(t, db)

		require.NoError(t, svc.CreateAttributes(ctx, []*terraformgpt.Attribute{
			{ResourceID: res.ID, Name: "tags", Position: 0},
			{ResourceID: res.ID, Name: "location", Position: 1},
		}))

		attrs, err := svc.FindAttributes(ctx, terraformgpt.AttributeFilter{
			ResourceID: &res.ID,
			SortBy:     terraformgpt.SortByName,
		})
		require.NoError(t, err)
		require.Len(t, attrs, 2)
		assert.Equal(t, "location", attrs[0].Name)
	})

	t.Run("filters by required", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewAttributeService(db)
		ctx := context.Background()
		res := createTestResource(t, db)

		require.NoError(t, svc.CreateAttributes(ctx, []*terraformgpt.Attribute{
			{ResourceID: res.ID, Name: "name", Required: true},
			{ResourceID: res.ID, Name: "tags"},
		}))

		required := true
		attrs, err := svc.FindAttributes(ctx, terraformgpt.AttributeFilter{
			ResourceID: &res.ID,
			Required:   &required,
		})
		require.NoError(t, err)
		require.Len(t, attrs, 1)
		assert.Equal(t, "name", attrs[0].Name)
		assert.True(t, attrs[0].Required)
	})
}

func TestAttributeService_FindAttributeByID(t *testing.T) {
	t.Parallel()

	t.Run("returns attribute when found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewAttributeService(db)
		ctx := context.Background()
		res := createTestResource(t, db)

		attr := &terraformgpt.Attribute{
			ResourceID:     res.ID,
			Name:           "account_kind",
			Description:    "Defines the kind of account.",
			Type:           "string",
			VersionAdded:   "4.0.0",
			VersionRemoved: "",
			DocAnchor:      "#account_kind",
		}
		require.NoError(t, svc.CreateAttribute(ctx, attr))

		found, err := svc.FindAttributeByID(ctx, attr.ID)
		require.NoError(t, err)
		assert.Equal(t, attr.Name, found.Name)
		assert.Equal(t, attr.Description, found.Description)
		assert.Equal(t, attr.DocAnchor, found.DocAnchor)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewAttributeService(db)
		ctx := context.Background()

		_, err := svc.FindAttributeByID(ctx, "nonexistent-id")
		require.Error(t, err)
		assert.Equal(t, terraformgpt.ENOTFOUND, terraformgpt.ErrorCode(err))
	})
}

func TestAttributeService_DeleteAttributesByResource(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewAttributeService(db)
	ctx := context.Background()
	res := createTestResource(t, db)

	require.NoError(t, svc.CreateAttributes(ctx, []*terraformgpt.Attribute{
		{ResourceID: res.ID, Name: "name"},
		{ResourceID: res.ID, Name: "tags"},
	}))

	require.NoError(t, svc.DeleteAttributesByResource(ctx, res.ID))

	attrs, err := svc.FindAttributes(ctx, terraformgpt.AttributeFilter{ResourceID: &res.ID})
	require.NoError(t, err)
	assert.Empty(t, attrs)
}
