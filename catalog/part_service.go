package catalog

import (
	"context"
	"errors"
	"log/slog"
)

// PartService enforces the part assignment rules on top of the stores.
type PartService struct {
	parts      PartStore
	categories CategoryStore
	logger     *slog.Logger
}

// NewPartService creates a PartService.
func NewPartService(parts PartStore, categories CategoryStore, logger *slog.Logger) *PartService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PartService{
		parts:      parts,
		categories: categories,
		logger:     logger,
	}
}

// AddPart creates a part assigned to an existing non-base category.
func (s *PartService) AddPart(ctx context.Context, in PartInput) (*Part, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, in.Category); err != nil {
		return nil, err
	}

	p, err := s.parts.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.logger.Info("part created", "partID", p.ID, "serialNumber", p.SerialNumber, "category", p.Category)
	return p, nil
}

// GetPart returns the part with the given id.
func (s *PartService) GetPart(ctx context.Context, id string) (*Part, error) {
	return s.parts.GetByID(ctx, id)
}

// EditPart applies a partial update, re-checking the category when it changes.
func (s *PartService) EditPart(ctx context.Context, id string, patch PartUpdate) (*Part, error) {
	existing, err := s.parts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return existing, nil
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.Category.Set {
		if err := s.checkCategory(ctx, patch.Category.Value); err != nil {
			return nil, err
		}
	}
	if patch.Location.IsNull() {
		return nil, ErrLocationRequired
	}

	return s.parts.Update(ctx, existing, patch)
}

// RemovePart deletes the part with the given id.
func (s *PartService) RemovePart(ctx context.Context, id string) error {
	if _, err := s.parts.GetByID(ctx, id); err != nil {
		return err
	}

	deleted, err := s.parts.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return &DeleteFailedError{Kind: "part", ID: id}
	}

	s.logger.Info("part deleted", "partID", id)
	return nil
}

// SearchParts returns the parts matching q.
func (s *PartService) SearchParts(ctx context.Context, q PartQuery) ([]Part, error) {
	return s.parts.Search(ctx, q)
}

// checkCategory verifies that name refers to an existing non-base category.
func (s *PartService) checkCategory(ctx context.Context, name *string) error {
	if name == nil || *name == "" {
		return ErrMissingCategory
	}

	base, err := s.categories.IsBaseCategory(ctx, *name)
	if errors.Is(err, ErrNotFound) {
		return ErrUnknownCategory
	}
	if err != nil {
		return err
	}
	if base {
		return ErrBaseCategoryAssignment
	}
	return nil
}
