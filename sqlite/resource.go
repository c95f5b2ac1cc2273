package sqlite

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meronimo/terraformgpt"
)

// Compile-time interface verification.
var _ terraformgpt.ResourceService = (*ResourceService)(nil)

// ResourceService implements terraformgpt.ResourceService using SQLite.
type ResourceService struct {
	db *DB
}

// NewResourceService creates a new ResourceService.
func NewResourceService(db *DB) *ResourceService {
	return &ResourceService{db: db}
}

// CreateResource creates a new resource.
func (s *ResourceService) CreateResource(ctx context.Context, resource *terraformgpt.Resource) error {
	if err := resource.Validate(); err != nil {
		return err
	}

	// The (provider, name, version) triple is the user-facing identity;
	// surface duplicates as a conflict rather than a driver error.
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM resources WHERE provider = ? AND name = ? AND version = ?
	`, resource.Provider, resource.Name, resource.Version).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return terraformgpt.Errorf(terraformgpt.ECONFLICT,
			"resource %q version %q already ingested", resource.Name, resource.Version)
	}

	resource.ID = uuid.New().String()
	now := time.Now().UTC()
	resource.CreatedAt = now
	resource.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO resources (id, provider, name, version, doc_url, content_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, resource.ID, resource.Provider, resource.Name, resource.Version, resource.DocURL,
		resource.ContentHash, resource.CreatedAt.Format(time.RFC3339), resource.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindResourceByID retrieves a resource by ID.
func (s *ResourceService) FindResourceByID(ctx context.Context, id string) (*terraformgpt.Resource, error) {
	var resource terraformgpt.Resource
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, provider, name, version, doc_url, content_hash, created_at, updated_at
		FROM resources
		WHERE id = ?
	`, id).Scan(&resource.ID, &resource.Provider, &resource.Name, &resource.Version,
		&resource.DocURL, &resource.ContentHash, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, terraformgpt.Errorf(terraformgpt.ENOTFOUND, "resource not found")
	}
	if err != nil {
		return nil, err
	}

	if resource.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if resource.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &resource, nil
}

// FindResources retrieves resources matching the filter.
func (s *ResourceService) FindResources(ctx context.Context, filter terraformgpt.ResourceFilter) ([]*terraformgpt.Resource, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, provider, name, version, doc_url, content_hash, created_at, updated_at FROM resources WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Provider != nil {
		query.WriteString(" AND provider = ?")
		args = append(args, *filter.Provider)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if filter.Version != nil {
		query.WriteString(" AND version = ?")
		args = append(args, *filter.Version)
	}

	query.WriteString(" ORDER BY provider ASC, name ASC, version DESC")

	appendLimitOffset(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []*terraformgpt.Resource
	for rows.Next() {
		var resource terraformgpt.Resource
		var createdAt, updatedAt string

		if err := rows.Scan(&resource.ID, &resource.Provider, &resource.Name, &resource.Version,
			&resource.DocURL, &resource.ContentHash, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		if resource.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if resource.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at"); err != nil {
			return nil, err
		}

		resources = append(resources, &resource)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// SQLite compares version strings lexicographically, which puts 9.x
	// above 10.x. Re-sort scanned rows by semantic version.
	sort.SliceStable(resources, func(a, b int) bool {
		ra, rb := resources[a], resources[b]
		if ra.Provider != rb.Provider {
			return ra.Provider < rb.Provider
		}
		if ra.Name != rb.Name {
			return ra.Name < rb.Name
		}
		return terraformgpt.NewerVersion(ra.Version, rb.Version)
	})

	return resources, nil
}

// UpdateResource updates an existing resource.
func (s *ResourceService) UpdateResource(ctx context.Context, id string, upd terraformgpt.ResourceUpdate) (*terraformgpt.Resource, error) {
	// First check if resource exists
	resource, err := s.FindResourceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Apply updates
	if upd.DocURL != nil {
		resource.DocURL = *upd.DocURL
	}
	if upd.ContentHash != nil {
		resource.ContentHash = *upd.ContentHash
	}

	// Validate before persisting
	if err := resource.Validate(); err != nil {
		return nil, err
	}

	resource.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE resources
		SET doc_url = ?, content_hash = ?, updated_at = ?
		WHERE id = ?
	`, resource.DocURL, resource.ContentHash, resource.UpdatedAt.Format(time.RFC3339), id)

	if err != nil {
		return nil, err
	}

	return resource, nil
}

// DeleteResource permanently removes a resource.
// Attributes are removed by the foreign key cascade.
func (s *ResourceService) DeleteResource(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM resources WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return terraformgpt.Errorf(terraformgpt.ENOTFOUND, "resource not found")
	}

	return nil
}
