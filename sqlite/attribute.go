package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/meronimo/terraformgpt"
)

// Compile-time interface verification.
var _ terraformgpt.AttributeService = (*AttributeService)(nil)

// AttributeService implements terraformgpt.AttributeService using SQLite.
type AttributeService struct {
	db *DB
}

// NewAttributeService creates a new AttributeService.
func NewAttributeService(db *DB) *AttributeService {
	return &AttributeService{db: db}
}

// CreateAttribute creates a new attribute.
func (s *AttributeService) CreateAttribute(ctx context.Context, attr *terraformgpt.Attribute) error {
	if err := attr.Validate(); err != nil {
		return err
	}

	attr.ID = uuid.New().String()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attributes (id, resource_id, name, description, required, attr_type, version_added, version_removed, doc_anchor, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, attr.ID, attr.ResourceID, attr.Name, attr.Description, boolToInt(attr.Required),
		attr.Type, attr.VersionAdded, attr.VersionRemoved, attr.DocAnchor, attr.Position)

	return err
}

// CreateAttributes creates multiple attributes in a single transaction.
func (s *AttributeService) CreateAttributes(ctx context.Context, attrs []*terraformgpt.Attribute) error {
	for _, attr := range attrs {
		if err := attr.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO attributes (id, resource_id, name, description, required, attr_type, version_added, version_removed, doc_anchor, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, attr := range attrs {
		attr.ID = uuid.New().String()
		if _, err := stmt.ExecContext(ctx, attr.ID, attr.ResourceID, attr.Name, attr.Description,
			boolToInt(attr.Required), attr.Type, attr.VersionAdded, attr.VersionRemoved,
			attr.DocAnchor, attr.Position); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindAttributeByID retrieves an attribute by ID.
func (s *AttributeService) FindAttributeByID(ctx context.Context, id string) (*terraformgpt.Attribute, error) {
	var attr terraformgpt.Attribute
	var required int

	err := s.db.QueryRowContext(ctx, `
		SELECT id, resource_id, name, description, required, attr_type, version_added, version_removed, doc_anchor, position
		FROM attributes
		WHERE id = ?
	`, id).Scan(&attr.ID, &attr.ResourceID, &attr.Name, &attr.Description, &required,
		&attr.Type, &attr.VersionAdded, &attr.VersionRemoved, &attr.DocAnchor, &attr.Position)

	if err == sql.ErrNoRows {
		return nil, terraformgpt.Errorf(terraformgpt.ENOTFOUND, "attribute not found")
	}
	if err != nil {
		return nil, err
	}

	attr.Required = required != 0

	return &attr, nil
}

// FindAttributes retrieves attributes matching the filter.
func (s *AttributeService) FindAttributes(ctx context.Context, filter terraformgpt.AttributeFilter) ([]*terraformgpt.Attribute, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, resource_id, name, description, required, attr_type, version_added, version_removed, doc_anchor, position FROM attributes WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.ResourceID != nil {
		query.WriteString(" AND resource_id = ?")
		args = append(args, *filter.ResourceID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if filter.Required != nil {
		query.WriteString(" AND required = ?")
		args = append(args, boolToInt(*filter.Required))
	}

	switch filter.SortBy {
	case terraformgpt.SortByName:
		query.WriteString(" ORDER BY name ASC")
	default:
		query.WriteString(" ORDER BY position ASC")
	}

	appendLimitOffset(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attrs []*terraformgpt.Attribute
	for rows.Next() {
		var attr terraformgpt.Attribute
		var required int

		if err := rows.Scan(&attr.ID, &attr.ResourceID, &attr.Name, &attr.Description, &required,
			&attr.Type, &attr.VersionAdded, &attr.VersionRemoved, &attr.DocAnchor, &attr.Position); err != nil {
			return nil, err
		}

		attr.Required = required != 0

		attrs = append(attrs, &attr)
	}

	return attrs, rows.Err()
}

// DeleteAttributesByResource removes all attributes for a resource.
func (s *AttributeService) DeleteAttributesByResource(ctx context.Context, resourceID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM attributes WHERE resource_id = ?", resourceID)
	return err
}

// boolToInt converts a bool to the 0/1 form SQLite stores.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
