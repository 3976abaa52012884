package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/jacentio/warehouse/store"
)

// categoryEntity maps a category onto the store.
type categoryEntity struct {
	table string
	id    string
	name  string
}

func (e categoryEntity) TableName() string  { return e.table }
func (e categoryEntity) EntityRef() string  { return EntityTypeCategory + "#" + e.id }
func (e categoryEntity) EntityType() string { return EntityTypeCategory }
func (e categoryEntity) GetKey() store.PK {
	return store.PK{"id": &types.AttributeValueMemberS{Value: e.id}}
}
func (e categoryEntity) UniqueFields() map[string]string {
	return map[string]string{attrName: e.name}
}

// CategoryRepository stores categories in DynamoDB.
type CategoryRepository struct {
	store  *store.Store
	tables Tables
	parts  PartStore
	logger *slog.Logger
}

var _ CategoryStore = (*CategoryRepository)(nil)

// NewCategoryRepository creates a CategoryRepository. parts is consulted
// before deleting categories.
func NewCategoryRepository(s *store.Store, tables Tables, parts PartStore, logger *slog.Logger) *CategoryRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryRepository{
		store:  s,
		tables: tables,
		parts:  parts,
		logger: logger,
	}
}

func (r *CategoryRepository) entity(id, name string) categoryEntity {
	return categoryEntity{table: r.tables.Categories, id: id, name: name}
}

// Create inserts a new category. A duplicate name fails with ErrNameConflict.
func (r *CategoryRepository) Create(ctx context.Context, in CategoryInput) (*Category, error) {
	c := Category{
		ID:         uuid.NewString(),
		Name:       in.Name,
		ParentName: normalizeParent(in.ParentName),
	}

	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return nil, fmt.Errorf("marshal category: %w", err)
	}

	if err := r.store.Create(ctx, r.entity(c.ID, c.Name), item); err != nil {
		if errors.Is(err, store.ErrDuplicateValue) {
			return nil, ErrNameConflict
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	return decodeCategory(item)
}

// GetByID returns the category with the given id.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*Category, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, &InvalidIDError{Kind: "category"}
	}

	item, err := r.store.Get(ctx, r.tables.Categories, r.entity(id, "").GetKey())
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Kind: "category", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return decodeCategory(item.Raw)
}

// GetByName returns the category with the given name.
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*Category, error) {
	item, err := r.store.GetByUnique(ctx, EntityTypeCategory, attrName, name)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("category %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get category by name: %w", err)
	}
	return decodeCategory(item.Raw)
}

// ListAll returns every category ordered by name.
func (r *CategoryRepository) ListAll(ctx context.Context) ([]Category, error) {
	items, err := r.store.Scan(ctx, store.ScanInput{TableName: r.tables.Categories})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories := make([]Category, 0, len(items))
	for _, item := range items {
		c, err := decodeCategory(item.Raw)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

// Update applies patch to current.
func (r *CategoryRepository) Update(ctx context.Context, current *Category, patch CategoryUpdate) (*Category, error) {
	merged := *current
	item := map[string]types.AttributeValue{}

	if patch.Name.Value != nil {
		merged.Name = *patch.Name.Value
		item[attrName] = &types.AttributeValueMemberS{Value: merged.Name}
	}
	if patch.ParentName.Set {
		merged.ParentName = normalizeParent(patch.ParentName.Value)
		av, err := attributevalue.Marshal(merged.ParentName)
		if err != nil {
			return nil, fmt.Errorf("marshal parent_name: %w", err)
		}
		item[attrParentName] = av
	}
	if len(item) == 0 {
		return current, nil
	}

	err := r.store.Update(ctx, r.entity(merged.ID, merged.Name), item, current.Version)
	switch {
	case errors.Is(err, store.ErrDuplicateValue):
		return nil, ErrNameConflict
	case errors.Is(err, store.ErrConcurrentModification):
		return nil, ErrConflict
	case errors.Is(err, store.ErrNotFound):
		return nil, &NotFoundError{Kind: "category", ID: current.ID}
	case err != nil:
		return nil, fmt.Errorf("update category: %w", err)
	}

	return r.GetByID(ctx, current.ID)
}

// Delete removes the named category and its descendants, deepest first, so
// that a partial failure never leaves a child whose parent is gone.
func (r *CategoryRepository) Delete(ctx context.Context, name string) (bool, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return false, err
	}

	names := append([]string{name}, DescendantNames(all, name)...)

	assigned, err := r.parts.AnyInCategories(ctx, names)
	if err != nil {
		return false, fmt.Errorf("check assigned parts: %w", err)
	}
	if assigned {
		return false, ErrHasAssignedParts
	}

	byName := make(map[string]Category, len(all))
	for _, c := range all {
		byName[c.Name] = c
	}

	var result *multierror.Error
	deleted := 0
	for i := len(names) - 1; i >= 0; i-- {
		c, ok := byName[names[i]]
		if !ok {
			continue
		}
		removed, err := r.store.Delete(ctx, r.tables.Categories, r.entity(c.ID, c.Name).GetKey())
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("delete category %q: %w", c.Name, err))
			continue
		}
		if removed {
			deleted++
		}
	}

	if deleted > 0 {
		r.logger.Info("deleted categories", "category", name, "count", deleted)
	}
	return deleted > 0, result.ErrorOrNil()
}

// ListDescendantNames returns the names of all transitive children of name.
func (r *CategoryRepository) ListDescendantNames(ctx context.Context, name string) ([]string, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return DescendantNames(all, name), nil
}

// IsBaseCategory reports whether the named category has no parent.
func (r *CategoryRepository) IsBaseCategory(ctx context.Context, name string) (bool, error) {
	c, err := r.GetByName(ctx, name)
	if err != nil {
		return false, err
	}
	return c.IsBase(), nil
}

// HasPartsAssigned reports whether any part is assigned directly to name.
func (r *CategoryRepository) HasPartsAssigned(ctx context.Context, name string) (bool, error) {
	return r.parts.AnyInCategories(ctx, []string{name})
}

// RenameParentReferences re-points the children of oldName at newName.
func (r *CategoryRepository) RenameParentReferences(ctx context.Context, oldName, newName string) error {
	n, err := r.store.RenameReferences(ctx, r.tables.ChildrenByParent(), oldName, newName)
	if err != nil {
		return fmt.Errorf("rename parent references: %w", err)
	}
	if n > 0 {
		r.logger.Debug("renamed parent references", "from", oldName, "to", newName, "count", n)
	}
	return nil
}

func decodeCategory(raw map[string]types.AttributeValue) (*Category, error) {
	var c Category
	if err := attributevalue.UnmarshalMap(raw, &c); err != nil {
		return nil, fmt.Errorf("decode category: %w", err)
	}
	return &c, nil
}
