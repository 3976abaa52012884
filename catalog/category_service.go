package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// CategoryService enforces the category tree rules on top of the stores.
type CategoryService struct {
	categories CategoryStore
	parts      PartStore
	logger     *slog.Logger
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(categories CategoryStore, parts PartStore, logger *slog.Logger) *CategoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryService{
		categories: categories,
		parts:      parts,
		logger:     logger,
	}
}

// AddCategory creates a category under an existing parent, or a base
// category when no parent is given.
func (s *CategoryService) AddCategory(ctx context.Context, in CategoryInput) (*Category, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	in.ParentName = normalizeParent(in.ParentName)
	if in.ParentName != nil {
		if *in.ParentName == in.Name {
			return nil, ErrSelfParent
		}
		if err := s.requireParent(ctx, *in.ParentName); err != nil {
			return nil, err
		}
	}

	c, err := s.categories.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.logger.Info("category created", "categoryID", c.ID, "name", c.Name)
	return c, nil
}

// GetCategory returns the category with the given id.
func (s *CategoryService) GetCategory(ctx context.Context, id string) (*Category, error) {
	return s.categories.GetByID(ctx, id)
}

// ListCategories returns every category.
func (s *CategoryService) ListCategories(ctx context.Context) ([]Category, error) {
	return s.categories.ListAll(ctx)
}

// EditCategory applies a partial update. Moving a category is checked
// against the tree rules; a rename is propagated to parts and child
// categories before returning.
func (s *CategoryService) EditCategory(ctx context.Context, id string, patch CategoryUpdate) (*Category, error) {
	existing, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return existing, nil
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	newName := existing.Name
	if patch.Name.Value != nil {
		newName = *patch.Name.Value
	}

	if patch.ParentName.Set {
		if err := s.checkNewParent(ctx, existing, newName, normalizeParent(patch.ParentName.Value)); err != nil {
			return nil, err
		}
	} else if existing.ParentName != nil && *existing.ParentName == newName {
		return nil, ErrSelfParent
	}

	updated, err := s.categories.Update(ctx, existing, patch)
	if err != nil {
		return nil, err
	}

	if newName != existing.Name {
		if err := s.parts.RenameCategoryReferences(ctx, existing.Name, newName); err != nil {
			return nil, fmt.Errorf("cascade rename to parts: %w", err)
		}
		if err := s.categories.RenameParentReferences(ctx, existing.Name, newName); err != nil {
			return nil, fmt.Errorf("cascade rename to subcategories: %w", err)
		}
		s.logger.Info("category renamed", "categoryID", id, "from", existing.Name, "to", newName)
	}

	return updated, nil
}

// checkNewParent validates moving existing (renamed to newName) under parent.
// A nil parent turns the category into a base category.
func (s *CategoryService) checkNewParent(ctx context.Context, existing *Category, newName string, parent *string) error {
	if parent == nil {
		hasParts, err := s.categories.HasPartsAssigned(ctx, existing.Name)
		if err != nil {
			return err
		}
		if hasParts {
			return ErrCannotBaseWithParts
		}
		return nil
	}

	if err := s.requireParent(ctx, *parent); err != nil {
		return err
	}
	if *parent == existing.Name || *parent == newName {
		return ErrSelfParent
	}

	descendants, err := s.categories.ListDescendantNames(ctx, existing.Name)
	if err != nil {
		return err
	}
	if slices.Contains(descendants, *parent) {
		return ErrCyclicParent
	}
	return nil
}

func (s *CategoryService) requireParent(ctx context.Context, name string) error {
	_, err := s.categories.GetByName(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return &UnknownParentError{Name: name}
	}
	return err
}

// RemoveCategory deletes a category with all its descendants.
func (s *CategoryService) RemoveCategory(ctx context.Context, id string) error {
	existing, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := s.categories.Delete(ctx, existing.Name)
	if err != nil {
		return err
	}
	if !deleted {
		return &DeleteFailedError{Kind: "category", ID: id}
	}

	s.logger.Info("category deleted", "categoryID", id, "name", existing.Name)
	return nil
}
