package terraformgpt

import "context"

// Attribute represents a single documented attribute of a resource, such as
// an argument from the doc's argument reference or an exported read-only
// attribute.
type Attribute struct {
	ID             string `json:"id"`
	ResourceID     string `json:"resourceId"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Required       bool   `json:"required"`
	Type           string `json:"type"`
	VersionAdded   string `json:"versionAdded"`
	VersionRemoved string `json:"versionRemoved"`
	DocAnchor      string `json:"docAnchor"`
	Position       int    `json:"position"`
}

// Validate returns an error if the attribute contains invalid fields.
func (a *Attribute) Validate() error {
	if a.ResourceID == "" {
		return Errorf(EINVALID, "attribute resource ID required")
	}
	if a.Name == "" {
		return Errorf(EINVALID, "attribute name required")
	}
	return nil
}

// SortOrder represents the sort order for attribute queries.
type SortOrder string

// SortOrder constants for AttributeFilter.
const (
	SortByPosition SortOrder = "position"
	SortByName     SortOrder = "name"
)

// AttributeService represents a service for managing stored attributes.
type AttributeService interface {
	// CreateAttribute creates a new attribute.
	CreateAttribute(ctx context.Context, attr *Attribute) error

	// CreateAttributes creates multiple attributes in a single transaction.
	// Either all attributes are created or none are.
	CreateAttributes(ctx context.Context, attrs []*Attribute) error

	// FindAttributeByID retrieves an attribute by ID.
	// Returns ENOTFOUND if attribute does not exist.
	FindAttributeByID(ctx context.Context, id string) (*Attribute, error)

	// FindAttributes retrieves attributes matching the filter.
	FindAttributes(ctx context.Context, filter AttributeFilter) ([]*Attribute, error)

	// DeleteAttributesByResource removes all attributes for a resource.
	DeleteAttributesByResource(ctx context.Context, resourceID string) error
}

// AttributeFilter represents a filter for FindAttributes.
type AttributeFilter struct {
	ID         *string `json:"id"`
	ResourceID *string `json:"resourceId"`
	Name       *string `json:"name"`
	Required   *bool   `json:"required"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy SortOrder `json:"sortBy"`
}
