package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/jacentio/warehouse/store"
)

// partEntity maps a part onto the store.
type partEntity struct {
	table  string
	id     string
	serial string
}

func (e partEntity) TableName() string  { return e.table }
func (e partEntity) EntityRef() string  { return EntityTypePart + "#" + e.id }
func (e partEntity) EntityType() string { return EntityTypePart }
func (e partEntity) GetKey() store.PK {
	return store.PK{"id": &types.AttributeValueMemberS{Value: e.id}}
}
func (e partEntity) UniqueFields() map[string]string {
	return map[string]string{attrSerialNumber: e.serial}
}

// PartRepository stores parts in DynamoDB.
type PartRepository struct {
	store  *store.Store
	tables Tables
	logger *slog.Logger
}

var _ PartStore = (*PartRepository)(nil)

// NewPartRepository creates a PartRepository.
func NewPartRepository(s *store.Store, tables Tables, logger *slog.Logger) *PartRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PartRepository{
		store:  s,
		tables: tables,
		logger: logger,
	}
}

func (r *PartRepository) entity(id, serial string) partEntity {
	return partEntity{table: r.tables.Parts, id: id, serial: serial}
}

// Create inserts a new part. A duplicate serial number fails with
// ErrSerialConflict.
func (r *PartRepository) Create(ctx context.Context, in PartInput) (*Part, error) {
	if in.Category == nil {
		return nil, ErrMissingCategory
	}
	if in.Location == nil {
		return nil, ErrLocationRequired
	}

	p := Part{
		ID:           uuid.NewString(),
		SerialNumber: in.SerialNumber,
		Name:         in.Name,
		Description:  in.Description,
		Category:     *in.Category,
		Quantity:     in.Quantity,
		Price:        in.Price,
		Location:     *in.Location,
	}

	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return nil, fmt.Errorf("marshal part: %w", err)
	}
	item[attrNameLower] = &types.AttributeValueMemberS{Value: strings.ToLower(p.Name)}
	item[attrDescriptionLower] = &types.AttributeValueMemberS{Value: strings.ToLower(p.Description)}

	if err := r.store.Create(ctx, r.entity(p.ID, p.SerialNumber), item); err != nil {
		if errors.Is(err, store.ErrDuplicateValue) {
			return nil, ErrSerialConflict
		}
		return nil, fmt.Errorf("create part: %w", err)
	}

	return decodePart(item)
}

// GetByID returns the part with the given id.
func (r *PartRepository) GetByID(ctx context.Context, id string) (*Part, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, &InvalidIDError{Kind: "part"}
	}

	item, err := r.store.Get(ctx, r.tables.Parts, r.entity(id, "").GetKey())
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Kind: "part", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get part: %w", err)
	}
	return decodePart(item.Raw)
}

// Update applies patch to current.
func (r *PartRepository) Update(ctx context.Context, current *Part, patch PartUpdate) (*Part, error) {
	merged := *current
	item := map[string]types.AttributeValue{}

	if v := patch.SerialNumber.Value; v != nil {
		merged.SerialNumber = *v
		item[attrSerialNumber] = &types.AttributeValueMemberS{Value: *v}
	}
	if v := patch.Name.Value; v != nil {
		item[attrName] = &types.AttributeValueMemberS{Value: *v}
		item[attrNameLower] = &types.AttributeValueMemberS{Value: strings.ToLower(*v)}
	}
	if v := patch.Description.Value; v != nil {
		item["description"] = &types.AttributeValueMemberS{Value: *v}
		item[attrDescriptionLower] = &types.AttributeValueMemberS{Value: strings.ToLower(*v)}
	}
	if v := patch.Category.Value; v != nil {
		item[attrCategory] = &types.AttributeValueMemberS{Value: *v}
	}
	if v := patch.Quantity.Value; v != nil {
		item["quantity"] = intAttr(*v)
	}
	if v := patch.Price.Value; v != nil {
		item["price"] = floatAttr(*v)
	}
	if v := patch.Location.Value; v != nil {
		av, err := attributevalue.Marshal(*v)
		if err != nil {
			return nil, fmt.Errorf("marshal location: %w", err)
		}
		item["location"] = av
	}
	if len(item) == 0 {
		return current, nil
	}

	err := r.store.Update(ctx, r.entity(merged.ID, merged.SerialNumber), item, current.Version)
	switch {
	case errors.Is(err, store.ErrDuplicateValue):
		return nil, ErrSerialConflict
	case errors.Is(err, store.ErrConcurrentModification):
		return nil, ErrConflict
	case errors.Is(err, store.ErrNotFound):
		return nil, &NotFoundError{Kind: "part", ID: current.ID}
	case err != nil:
		return nil, fmt.Errorf("update part: %w", err)
	}

	return r.GetByID(ctx, current.ID)
}

// Delete removes the part with the given id and reports whether it existed.
func (r *PartRepository) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, &InvalidIDError{Kind: "part"}
	}

	deleted, err := r.store.Delete(ctx, r.tables.Parts, r.entity(id, "").GetKey())
	if err != nil {
		return false, fmt.Errorf("delete part: %w", err)
	}
	return deleted, nil
}

// Search returns the parts matching q ordered by serial number.
func (r *PartRepository) Search(ctx context.Context, q PartQuery) ([]Part, error) {
	items, err := r.store.Scan(ctx, store.ScanInput{
		TableName: r.tables.Parts,
		Filter:    q.Filter(),
	})
	if err != nil {
		return nil, fmt.Errorf("search parts: %w", err)
	}

	parts := make([]Part, 0, len(items))
	for _, item := range items {
		p, err := decodePart(item.Raw)
		if err != nil {
			return nil, err
		}
		parts = append(parts, *p)
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].SerialNumber < parts[j].SerialNumber })
	return parts, nil
}

// RenameCategoryReferences moves every part of oldName to newName.
func (r *PartRepository) RenameCategoryReferences(ctx context.Context, oldName, newName string) error {
	n, err := r.store.RenameReferences(ctx, r.tables.PartsByCategory(), oldName, newName)
	if err != nil {
		return fmt.Errorf("rename category references: %w", err)
	}
	if n > 0 {
		r.logger.Debug("renamed part categories", "from", oldName, "to", newName, "count", n)
	}
	return nil
}

// AnyInCategories reports whether any part is assigned to one of names.
func (r *PartRepository) AnyInCategories(ctx context.Context, names []string) (bool, error) {
	return r.store.HasReferences(ctx, r.tables.PartsByCategory(), names)
}

func decodePart(raw map[string]types.AttributeValue) (*Part, error) {
	var p Part
	if err := attributevalue.UnmarshalMap(raw, &p); err != nil {
		return nil, fmt.Errorf("decode part: %w", err)
	}
	return &p, nil
}
