package catalog

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Category is a node of the category tree. A category without a parent is a
// base category.
type Category struct {
	ID         string  `json:"id" dynamodbav:"id"`
	Name       string  `json:"name" dynamodbav:"name"`
	ParentName *string `json:"parent_name" dynamodbav:"parent_name"`
	Version    int64   `json:"version" dynamodbav:"version"`
	CreatedAt  string  `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt  string  `json:"updated_at" dynamodbav:"updated_at"`
}

// IsBase reports whether c has no parent.
func (c Category) IsBase() bool {
	return c.ParentName == nil
}

// CategoryInput is the body of a create request.
type CategoryInput struct {
	Name       string  `json:"name"`
	ParentName *string `json:"parent_name"`
}

// Validate checks field constraints.
func (in CategoryInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 200)),
	)
}

// CategoryUpdate is the body of a partial update. Only keys present in the
// request are applied.
type CategoryUpdate struct {
	Name       Field[string] `json:"name"`
	ParentName Field[string] `json:"parent_name"`
}

// Validate checks field constraints. A present parent_name may be null.
func (u CategoryUpdate) Validate() error {
	return validation.Errors{
		"name": validateField(u.Name, validation.Required, validation.Length(1, 200)),
	}.Filter()
}

// Empty reports whether the update carries no keys.
func (u CategoryUpdate) Empty() bool {
	return !u.Name.Set && !u.ParentName.Set
}

// normalizeParent maps an empty parent name to none.
func normalizeParent(name *string) *string {
	if name == nil || strings.TrimSpace(*name) == "" {
		return nil
	}
	return name
}

var errNull = validation.NewError("validation_not_null", "cannot be null")

// validateField validates a present field. Absent fields pass; null fails.
func validateField[T any](f Field[T], rules ...validation.Rule) error {
	if !f.Set {
		return nil
	}
	if f.Value == nil {
		return errNull
	}
	return validation.Validate(*f.Value, rules...)
}
