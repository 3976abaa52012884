package catalog

import "context"

// CategoryStore persists categories.
type CategoryStore interface {
	Create(ctx context.Context, in CategoryInput) (*Category, error)
	GetByID(ctx context.Context, id string) (*Category, error)
	GetByName(ctx context.Context, name string) (*Category, error)
	ListAll(ctx context.Context) ([]Category, error)
	// Update applies the keys present in patch to current, failing with
	// ErrConflict when current is stale.
	Update(ctx context.Context, current *Category, patch CategoryUpdate) (*Category, error)
	// Delete removes the named category and all its descendants unless any
	// of them has parts assigned. It reports whether anything was removed.
	Delete(ctx context.Context, name string) (bool, error)
	ListDescendantNames(ctx context.Context, name string) ([]string, error)
	IsBaseCategory(ctx context.Context, name string) (bool, error)
	HasPartsAssigned(ctx context.Context, name string) (bool, error)
	RenameParentReferences(ctx context.Context, oldName, newName string) error
}

// PartStore persists parts.
type PartStore interface {
	Create(ctx context.Context, in PartInput) (*Part, error)
	GetByID(ctx context.Context, id string) (*Part, error)
	// Update applies the keys present in patch to current, failing with
	// ErrConflict when current is stale.
	Update(ctx context.Context, current *Part, patch PartUpdate) (*Part, error)
	Delete(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, q PartQuery) ([]Part, error)
	RenameCategoryReferences(ctx context.Context, oldName, newName string) error
	AnyInCategories(ctx context.Context, names []string) (bool, error)
}
