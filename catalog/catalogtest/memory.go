// Package catalogtest provides in-memory catalog stores for tests.
package catalogtest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jacentio/warehouse/catalog"
)

// Store holds categories and parts in memory. Its Categories and Parts
// views share state the way the DynamoDB repositories share tables.
type Store struct {
	mu         sync.Mutex
	categories map[string]catalog.Category
	parts      map[string]catalog.Part
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		categories: make(map[string]catalog.Category),
		parts:      make(map[string]catalog.Part),
	}
}

// Categories returns the category store view.
func (s *Store) Categories() *Categories {
	return &Categories{s: s}
}

// Parts returns the part store view.
func (s *Store) Parts() *Parts {
	return &Parts{s: s}
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Categories implements catalog.CategoryStore.
type Categories struct {
	s *Store
}

var _ catalog.CategoryStore = (*Categories)(nil)

func (c *Categories) byName(name string) (catalog.Category, bool) {
	for _, cat := range c.s.categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return catalog.Category{}, false
}

func (c *Categories) all() []catalog.Category {
	out := make([]catalog.Category, 0, len(c.s.categories))
	for _, cat := range c.s.categories {
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (c *Categories) Create(_ context.Context, in catalog.CategoryInput) (*catalog.Category, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if _, ok := c.byName(in.Name); ok {
		return nil, catalog.ErrNameConflict
	}

	ts := now()
	cat := catalog.Category{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Version:   1,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if in.ParentName != nil && strings.TrimSpace(*in.ParentName) != "" {
		parent := *in.ParentName
		cat.ParentName = &parent
	}
	c.s.categories[cat.ID] = cat
	return &cat, nil
}

func (c *Categories) GetByID(_ context.Context, id string) (*catalog.Category, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, &catalog.InvalidIDError{Kind: "category"}
	}

	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	cat, ok := c.s.categories[id]
	if !ok {
		return nil, &catalog.NotFoundError{Kind: "category", ID: id}
	}
	return &cat, nil
}

func (c *Categories) GetByName(_ context.Context, name string) (*catalog.Category, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	cat, ok := c.byName(name)
	if !ok {
		return nil, fmt.Errorf("category %q: %w", name, catalog.ErrNotFound)
	}
	return &cat, nil
}

func (c *Categories) ListAll(_ context.Context) ([]catalog.Category, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	return c.all(), nil
}

func (c *Categories) Update(_ context.Context, current *catalog.Category, patch catalog.CategoryUpdate) (*catalog.Category, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	stored, ok := c.s.categories[current.ID]
	if !ok {
		return nil, &catalog.NotFoundError{Kind: "category", ID: current.ID}
	}
	if stored.Version != current.Version {
		return nil, catalog.ErrConflict
	}
	if patch.Name.Value == nil && !patch.ParentName.Set {
		return &stored, nil
	}

	if v := patch.Name.Value; v != nil {
		if other, ok := c.byName(*v); ok && other.ID != stored.ID {
			return nil, catalog.ErrNameConflict
		}
		stored.Name = *v
	}
	if patch.ParentName.Set {
		stored.ParentName = nil
		if v := patch.ParentName.Value; v != nil && strings.TrimSpace(*v) != "" {
			parent := *v
			stored.ParentName = &parent
		}
	}
	stored.Version++
	stored.UpdatedAt = now()
	c.s.categories[stored.ID] = stored
	return &stored, nil
}

func (c *Categories) Delete(_ context.Context, name string) (bool, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	names := append([]string{name}, catalog.DescendantNames(c.all(), name)...)
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	for _, p := range c.s.parts {
		if set[p.Category] {
			return false, catalog.ErrHasAssignedParts
		}
	}

	deleted := false
	for id, cat := range c.s.categories {
		if set[cat.Name] {
			delete(c.s.categories, id)
			deleted = true
		}
	}
	return deleted, nil
}

func (c *Categories) ListDescendantNames(_ context.Context, name string) ([]string, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	return catalog.DescendantNames(c.all(), name), nil
}

func (c *Categories) IsBaseCategory(_ context.Context, name string) (bool, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	cat, ok := c.byName(name)
	if !ok {
		return false, fmt.Errorf("category %q: %w", name, catalog.ErrNotFound)
	}
	return cat.IsBase(), nil
}

func (c *Categories) HasPartsAssigned(_ context.Context, name string) (bool, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	for _, p := range c.s.parts {
		if p.Category == name {
			return true, nil
		}
	}
	return false, nil
}

func (c *Categories) RenameParentReferences(_ context.Context, oldName, newName string) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	for id, cat := range c.s.categories {
		if cat.ParentName != nil && *cat.ParentName == oldName {
			parent := newName
			cat.ParentName = &parent
			cat.Version++
			c.s.categories[id] = cat
		}
	}
	return nil
}

// Parts implements catalog.PartStore.
type Parts struct {
	s *Store
}

var _ catalog.PartStore = (*Parts)(nil)

func (p *Parts) serialTaken(serial, exceptID string) bool {
	for _, part := range p.s.parts {
		if part.SerialNumber == serial && part.ID != exceptID {
			return true
		}
	}
	return false
}

func (p *Parts) Create(_ context.Context, in catalog.PartInput) (*catalog.Part, error) {
	if in.Category == nil {
		return nil, catalog.ErrMissingCategory
	}
	if in.Location == nil {
		return nil, catalog.ErrLocationRequired
	}

	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	if p.serialTaken(in.SerialNumber, "") {
		return nil, catalog.ErrSerialConflict
	}

	ts := now()
	part := catalog.Part{
		ID:           uuid.NewString(),
		SerialNumber: in.SerialNumber,
		Name:         in.Name,
		Description:  in.Description,
		Category:     *in.Category,
		Quantity:     in.Quantity,
		Price:        in.Price,
		Location:     *in.Location,
		Version:      1,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	p.s.parts[part.ID] = part
	return &part, nil
}

func (p *Parts) GetByID(_ context.Context, id string) (*catalog.Part, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, &catalog.InvalidIDError{Kind: "part"}
	}

	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	part, ok := p.s.parts[id]
	if !ok {
		return nil, &catalog.NotFoundError{Kind: "part", ID: id}
	}
	return &part, nil
}

func (p *Parts) Update(_ context.Context, current *catalog.Part, patch catalog.PartUpdate) (*catalog.Part, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	stored, ok := p.s.parts[current.ID]
	if !ok {
		return nil, &catalog.NotFoundError{Kind: "part", ID: current.ID}
	}
	if stored.Version != current.Version {
		return nil, catalog.ErrConflict
	}

	changed := false
	if v := patch.SerialNumber.Value; v != nil {
		if p.serialTaken(*v, stored.ID) {
			return nil, catalog.ErrSerialConflict
		}
		stored.SerialNumber, changed = *v, true
	}
	if v := patch.Name.Value; v != nil {
		stored.Name, changed = *v, true
	}
	if v := patch.Description.Value; v != nil {
		stored.Description, changed = *v, true
	}
	if v := patch.Category.Value; v != nil {
		stored.Category, changed = *v, true
	}
	if v := patch.Quantity.Value; v != nil {
		stored.Quantity, changed = *v, true
	}
	if v := patch.Price.Value; v != nil {
		stored.Price, changed = *v, true
	}
	if v := patch.Location.Value; v != nil {
		stored.Location, changed = *v, true
	}
	if !changed {
		return &stored, nil
	}

	stored.Version++
	stored.UpdatedAt = now()
	p.s.parts[stored.ID] = stored
	return &stored, nil
}

func (p *Parts) Delete(_ context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, &catalog.InvalidIDError{Kind: "part"}
	}

	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	if _, ok := p.s.parts[id]; !ok {
		return false, nil
	}
	delete(p.s.parts, id)
	return true, nil
}

func (p *Parts) Search(_ context.Context, q catalog.PartQuery) ([]catalog.Part, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	out := []catalog.Part{}
	for _, part := range p.s.parts {
		if q.Matches(part) {
			out = append(out, part)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SerialNumber < out[j].SerialNumber })
	return out, nil
}

func (p *Parts) RenameCategoryReferences(_ context.Context, oldName, newName string) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	for id, part := range p.s.parts {
		if part.Category == oldName {
			part.Category = newName
			part.Version++
			p.s.parts[id] = part
		}
	}
	return nil
}

func (p *Parts) AnyInCategories(_ context.Context, names []string) (bool, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	for _, part := range p.s.parts {
		if set[part.Category] {
			return true, nil
		}
	}
	return false, nil
}
