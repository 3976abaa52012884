package catalog

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Location is the physical storage place of a part.
type Location struct {
	Room     string `json:"room" dynamodbav:"room"`
	Bookcase string `json:"bookcase" dynamodbav:"bookcase"`
	Shelf    int    `json:"shelf" dynamodbav:"shelf"`
	Cuvette  int    `json:"cuvette" dynamodbav:"cuvette"`
	Column   int    `json:"column" dynamodbav:"column"`
	Row      int    `json:"row" dynamodbav:"row"`
}

// Validate checks field constraints.
func (l Location) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Room, validation.Required),
		validation.Field(&l.Bookcase, validation.Required),
		validation.Field(&l.Shelf, validation.Min(0)),
		validation.Field(&l.Cuvette, validation.Min(0)),
		validation.Field(&l.Column, validation.Min(0)),
		validation.Field(&l.Row, validation.Min(0)),
	)
}

// Part is a stocked item assigned to a non-base category by name.
type Part struct {
	ID           string   `json:"id" dynamodbav:"id"`
	SerialNumber string   `json:"serial_number" dynamodbav:"serial_number"`
	Name         string   `json:"name" dynamodbav:"name"`
	Description  string   `json:"description" dynamodbav:"description"`
	Category     string   `json:"category" dynamodbav:"category"`
	Quantity     int      `json:"quantity" dynamodbav:"quantity"`
	Price        float64  `json:"price" dynamodbav:"price"`
	Location     Location `json:"location" dynamodbav:"location"`
	Version      int64    `json:"version" dynamodbav:"version"`
	CreatedAt    string   `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt    string   `json:"updated_at" dynamodbav:"updated_at"`
}

// PartInput is the body of a create request.
type PartInput struct {
	SerialNumber string    `json:"serial_number"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Category     *string   `json:"category"`
	Quantity     int       `json:"quantity"`
	Price        float64   `json:"price"`
	Location     *Location `json:"location"`
}

// Validate checks field constraints. Category rules are checked by PartService.
func (in PartInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.SerialNumber, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.Quantity, validation.Min(0)),
		validation.Field(&in.Price, validation.Min(0.0)),
		validation.Field(&in.Location, validation.Required),
	)
}

// PartUpdate is the body of a partial update. Only keys present in the
// request are applied.
type PartUpdate struct {
	SerialNumber Field[string]   `json:"serial_number"`
	Name         Field[string]   `json:"name"`
	Description  Field[string]   `json:"description"`
	Category     Field[string]   `json:"category"`
	Quantity     Field[int]      `json:"quantity"`
	Price        Field[float64]  `json:"price"`
	Location     Field[Location] `json:"location"`
}

// Validate checks field constraints. Null category and location are
// reported by PartService with their own errors.
func (u PartUpdate) Validate() error {
	errs := validation.Errors{
		"serial_number": validateField(u.SerialNumber, validation.Required, validation.Length(1, 100)),
		"name":          validateField(u.Name),
		"description":   validateField(u.Description),
		"quantity":      validateField(u.Quantity, validation.Min(0)),
		"price":         validateField(u.Price, validation.Min(0.0)),
	}
	if u.Location.Value != nil {
		errs["location"] = u.Location.Value.Validate()
	}
	return errs.Filter()
}

// Empty reports whether the update carries no keys.
func (u PartUpdate) Empty() bool {
	return !u.SerialNumber.Set && !u.Name.Set && !u.Description.Set &&
		!u.Category.Set && !u.Quantity.Set && !u.Price.Set && !u.Location.Set
}
