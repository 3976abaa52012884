package catalog

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jacentio/warehouse/store"
)

// PartQuery is a conjunction of part constraints. Nil fields are
// unconstrained.
type PartQuery struct {
	SerialNumber *string
	Name         *string
	Description  *string
	Category     *string
	MinQuantity  *int
	MaxQuantity  *int
	MinPrice     *float64
	MaxPrice     *float64
	Room         *string
	Bookcase     *string
	Shelf        *int
	Cuvette      *int
	Column       *int
	Row          *int
}

// searchParams lists the recognized query parameters.
var searchParams = map[string]struct{}{
	"serial_number": {}, "name": {}, "description": {}, "category": {},
	"min_quantity": {}, "max_quantity": {}, "min_price": {}, "max_price": {},
	"room": {}, "bookcase": {}, "shelf": {}, "cuvette": {}, "column": {}, "row": {},
}

// ParseSearchQuery builds a PartQuery from URL query parameters. Unknown
// parameters fail with ErrUnknownSearchParam; malformed numbers fail with
// validation errors keyed by parameter.
func ParseSearchQuery(values url.Values) (PartQuery, error) {
	var unknown []string
	for key := range values {
		if _, ok := searchParams[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return PartQuery{}, fmt.Errorf("%w: %s", ErrUnknownSearchParam, strings.Join(unknown, ", "))
	}

	var q PartQuery
	errs := validation.Errors{}

	str := func(key string) *string {
		if !values.Has(key) {
			return nil
		}
		v := values.Get(key)
		return &v
	}
	integer := func(key string) *int {
		if !values.Has(key) {
			return nil
		}
		n, err := strconv.Atoi(values.Get(key))
		if err != nil {
			errs[key] = validation.NewError("validation_is_int", "must be an integer")
			return nil
		}
		return &n
	}
	number := func(key string) *float64 {
		if !values.Has(key) {
			return nil
		}
		f, err := strconv.ParseFloat(values.Get(key), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			errs[key] = validation.NewError("validation_is_float", "must be a number")
			return nil
		}
		return &f
	}

	q.SerialNumber = str("serial_number")
	q.Name = str("name")
	q.Description = str("description")
	q.Category = str("category")
	q.MinQuantity = integer("min_quantity")
	q.MaxQuantity = integer("max_quantity")
	q.MinPrice = number("min_price")
	q.MaxPrice = number("max_price")
	q.Room = str("room")
	q.Bookcase = str("bookcase")
	q.Shelf = integer("shelf")
	q.Cuvette = integer("cuvette")
	q.Column = integer("column")
	q.Row = integer("row")

	if err := errs.Filter(); err != nil {
		return PartQuery{}, fmt.Errorf("%w: %w", ErrInvalidSearchParam, err)
	}
	return q, nil
}

// Filter translates q into a store filter. Text constraints match the
// lowercase shadow attributes so that matching is case-insensitive.
func (q PartQuery) Filter() *store.Filter {
	f := store.NewFilter()

	if q.SerialNumber != nil {
		f.Equal("serial_number", stringAttr(*q.SerialNumber))
	}
	if q.Name != nil && *q.Name != "" {
		f.Contains(attrNameLower, stringAttr(strings.ToLower(*q.Name)))
	}
	if q.Description != nil && *q.Description != "" {
		f.Contains(attrDescriptionLower, stringAttr(strings.ToLower(*q.Description)))
	}
	if q.Category != nil {
		f.Equal("category", stringAttr(*q.Category))
	}

	switch {
	case q.MinQuantity != nil && q.MaxQuantity != nil && *q.MinQuantity <= *q.MaxQuantity:
		f.Between("quantity", intAttr(*q.MinQuantity), intAttr(*q.MaxQuantity))
	default:
		// An inverted range keeps both clauses and matches nothing.
		if q.MinQuantity != nil {
			f.AtLeast("quantity", intAttr(*q.MinQuantity))
		}
		if q.MaxQuantity != nil {
			f.AtMost("quantity", intAttr(*q.MaxQuantity))
		}
	}

	switch {
	case q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice <= *q.MaxPrice:
		f.Between("price", floatAttr(*q.MinPrice), floatAttr(*q.MaxPrice))
	default:
		if q.MinPrice != nil {
			f.AtLeast("price", floatAttr(*q.MinPrice))
		}
		if q.MaxPrice != nil {
			f.AtMost("price", floatAttr(*q.MaxPrice))
		}
	}

	if q.Room != nil {
		f.Equal("location.room", stringAttr(*q.Room))
	}
	if q.Bookcase != nil {
		f.Equal("location.bookcase", stringAttr(*q.Bookcase))
	}
	if q.Shelf != nil {
		f.Equal("location.shelf", intAttr(*q.Shelf))
	}
	if q.Cuvette != nil {
		f.Equal("location.cuvette", intAttr(*q.Cuvette))
	}
	if q.Column != nil {
		f.Equal("location.column", intAttr(*q.Column))
	}
	if q.Row != nil {
		f.Equal("location.row", intAttr(*q.Row))
	}

	return f
}

// Matches reports whether p satisfies q.
func (q PartQuery) Matches(p Part) bool {
	switch {
	case q.SerialNumber != nil && p.SerialNumber != *q.SerialNumber,
		q.Name != nil && !containsFold(p.Name, *q.Name),
		q.Description != nil && !containsFold(p.Description, *q.Description),
		q.Category != nil && p.Category != *q.Category,
		q.MinQuantity != nil && p.Quantity < *q.MinQuantity,
		q.MaxQuantity != nil && p.Quantity > *q.MaxQuantity,
		q.MinPrice != nil && p.Price < *q.MinPrice,
		q.MaxPrice != nil && p.Price > *q.MaxPrice,
		q.Room != nil && p.Location.Room != *q.Room,
		q.Bookcase != nil && p.Location.Bookcase != *q.Bookcase,
		q.Shelf != nil && p.Location.Shelf != *q.Shelf,
		q.Cuvette != nil && p.Location.Cuvette != *q.Cuvette,
		q.Column != nil && p.Location.Column != *q.Column,
		q.Row != nil && p.Location.Row != *q.Row:
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func stringAttr(v string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: v}
}

func intAttr(v int) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.Itoa(v)}
}

func floatAttr(v float64) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.FormatFloat(v, 'f', -1, 64)}
}
