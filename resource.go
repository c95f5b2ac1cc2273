package terraformgpt

import (
	"context"
	"strings"
	"time"
)

// Resource represents the documentation for a provider resource type at a
// specific provider version (e.g. azurerm_storage_account at 4.52.0).
type Resource struct {
	ID          string    `json:"id"`
	Provider    string    `json:"provider"`
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	DocURL      string    `json:"docUrl"`
	ContentHash string    `json:"contentHash"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate returns an error if the resource contains invalid fields.
func (r *Resource) Validate() error {
	if r.Provider == "" {
		return Errorf(EINVALID, "resource provider required")
	}
	if r.Name == "" {
		return Errorf(EINVALID, "resource name required")
	}
	if r.Version == "" {
		return Errorf(EINVALID, "resource version required")
	}
	if !ValidVersion(r.Version) {
		return Errorf(EINVALID, "invalid provider version %q", r.Version)
	}
	return nil
}

// SplitResourceName splits a fully-qualified resource name into its provider
// prefix and bare name (e.g. "azurerm_storage_account" -> "azurerm",
// "storage_account"). Names without a prefix return an empty provider.
func SplitResourceName(name string) (provider, bare string) {
	i := strings.Index(name, "_")
	if i <= 0 {
		return "", name
	}
	return name[:i], name[i+1:]
}

// ResourceService represents a service for managing stored resources.
type ResourceService interface {
	// CreateResource creates a new resource.
	// Returns ECONFLICT if the (provider, name, version) triple already exists.
	CreateResource(ctx context.Context, resource *Resource) error

	// FindResourceByID retrieves a resource by ID.
	// Returns ENOTFOUND if resource does not exist.
	FindResourceByID(ctx context.Context, id string) (*Resource, error)

	// FindResources retrieves resources matching the filter.
	FindResources(ctx context.Context, filter ResourceFilter) ([]*Resource, error)

	// UpdateResource updates an existing resource.
	// Returns ENOTFOUND if resource does not exist.
	UpdateResource(ctx context.Context, id string, upd ResourceUpdate) (*Resource, error)

	// DeleteResource permanently removes a resource and all associated attributes.
	// Returns ENOTFOUND if resource does not exist.
	DeleteResource(ctx context.Context, id string) error
}

// ResourceFilter represents a filter for FindResources.
type ResourceFilter struct {
	ID       *string `json:"id"`
	Provider *string `json:"provider"`
	Name     *string `json:"name"`
	Version  *string `json:"version"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ResourceUpdate represents fields that can be updated on a resource.
type ResourceUpdate struct {
	DocURL      *string `json:"docUrl"`
	ContentHash *string `json:"contentHash"`
}
