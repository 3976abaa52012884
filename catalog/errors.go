package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a category or part doesn't exist.
	ErrNotFound = errors.New("catalog: not found")

	// ErrInvalidID is returned for identifiers that are not valid document ids.
	ErrInvalidID = errors.New("catalog: invalid id")

	// ErrConflict is returned when a document changed between read and write.
	ErrConflict = errors.New("catalog: document was modified concurrently")

	// ErrDeleteFailed is returned when a document could not be deleted.
	ErrDeleteFailed = errors.New("catalog: delete failed")
)

// Category rule violations.
var (
	ErrNameConflict        = errors.New("catalog: category name already exists")
	ErrUnknownParent       = errors.New("catalog: parent category not found")
	ErrSelfParent          = errors.New("catalog: category cannot be its own parent")
	ErrCyclicParent        = errors.New("catalog: category cannot become a subcategory of its own subcategory")
	ErrCannotBaseWithParts = errors.New("catalog: category with parts assigned cannot become a base category")
	ErrHasAssignedParts    = errors.New("catalog: category or one of its subcategories has parts assigned")
)

// Part rule violations.
var (
	ErrSerialConflict         = errors.New("catalog: part serial number already exists")
	ErrMissingCategory        = errors.New("catalog: part category is required")
	ErrUnknownCategory        = errors.New("catalog: part category not found")
	ErrBaseCategoryAssignment = errors.New("catalog: part cannot be assigned to a base category")
	ErrLocationRequired       = errors.New("catalog: part location is required")
)

// Search parameter errors.
var (
	ErrUnknownSearchParam = errors.New("catalog: unknown search parameter")
	ErrInvalidSearchParam = errors.New("catalog: invalid search parameter")
)

// IsInvalidInput reports whether err is a rule violation caused by the
// request rather than by the state of the store.
func IsInvalidInput(err error) bool {
	for _, target := range []error{
		ErrInvalidID,
		ErrNameConflict,
		ErrSerialConflict,
		ErrUnknownParent,
		ErrSelfParent,
		ErrCyclicParent,
		ErrCannotBaseWithParts,
		ErrHasAssignedParts,
		ErrMissingCategory,
		ErrUnknownCategory,
		ErrBaseCategoryAssignment,
		ErrLocationRequired,
		ErrUnknownSearchParam,
		ErrInvalidSearchParam,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// NotFoundError names the missing document. It matches ErrNotFound.
type NotFoundError struct {
	Kind string // "category" or "part"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("catalog: %s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InvalidIDError names the kind of document whose id was malformed.
// It matches ErrInvalidID.
type InvalidIDError struct {
	Kind string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("catalog: invalid %s id", e.Kind)
}

func (e *InvalidIDError) Unwrap() error { return ErrInvalidID }

// UnknownParentError names the missing parent category. It matches
// ErrUnknownParent.
type UnknownParentError struct {
	Name string
}

func (e *UnknownParentError) Error() string {
	return fmt.Sprintf("catalog: parent category %q not found", e.Name)
}

func (e *UnknownParentError) Unwrap() error { return ErrUnknownParent }

// DeleteFailedError names the document that could not be deleted. It
// matches ErrDeleteFailed.
type DeleteFailedError struct {
	Kind string
	ID   string
}

func (e *DeleteFailedError) Error() string {
	return fmt.Sprintf("catalog: delete %s %s: nothing removed", e.Kind, e.ID)
}

func (e *DeleteFailedError) Unwrap() error { return ErrDeleteFailed }
