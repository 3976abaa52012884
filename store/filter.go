package store

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Filter accumulates conditions joined with AND into a DynamoDB filter
// expression. Attribute paths may address nested map members with dots
// (e.g., "location.room").
type Filter struct {
	clauses []string
	names   map[string]string
	values  map[string]types.AttributeValue
	aliases map[string]string
}

// NewFilter returns an empty filter.
func NewFilter() *Filter {
	return &Filter{
		names:   make(map[string]string),
		values:  make(map[string]types.AttributeValue),
		aliases: make(map[string]string),
	}
}

// Equal requires path = v.
func (f *Filter) Equal(path string, v types.AttributeValue) *Filter {
	return f.add(fmt.Sprintf("%s = %s", f.path(path), f.value(v)))
}

// Contains requires the string at path to contain v.
func (f *Filter) Contains(path string, v types.AttributeValue) *Filter {
	return f.add(fmt.Sprintf("contains(%s, %s)", f.path(path), f.value(v)))
}

// Between requires lo <= path <= hi.
func (f *Filter) Between(path string, lo, hi types.AttributeValue) *Filter {
	return f.add(fmt.Sprintf("%s BETWEEN %s AND %s", f.path(path), f.value(lo), f.value(hi)))
}

// AtLeast requires path >= v.
func (f *Filter) AtLeast(path string, v types.AttributeValue) *Filter {
	return f.add(fmt.Sprintf("%s >= %s", f.path(path), f.value(v)))
}

// AtMost requires path <= v.
func (f *Filter) AtMost(path string, v types.AttributeValue) *Filter {
	return f.add(fmt.Sprintf("%s <= %s", f.path(path), f.value(v)))
}

// In requires path to equal one of vs. DynamoDB accepts at most 100 operands.
func (f *Filter) In(path string, vs ...types.AttributeValue) *Filter {
	if len(vs) == 0 {
		return f
	}
	placeholders := make([]string, len(vs))
	for i, v := range vs {
		placeholders[i] = f.value(v)
	}
	return f.add(fmt.Sprintf("%s IN (%s)", f.path(path), strings.Join(placeholders, ", ")))
}

// Empty reports whether the filter has no conditions.
func (f *Filter) Empty() bool {
	return f == nil || len(f.clauses) == 0
}

// Expression returns the filter expression.
func (f *Filter) Expression() string {
	if f.Empty() {
		return ""
	}
	return strings.Join(f.clauses, " AND ")
}

// Names returns the expression attribute names.
func (f *Filter) Names() map[string]string {
	if f.Empty() {
		return nil
	}
	return f.names
}

// Values returns the expression attribute values.
func (f *Filter) Values() map[string]types.AttributeValue {
	if f.Empty() {
		return nil
	}
	return f.values
}

func (f *Filter) add(clause string) *Filter {
	f.clauses = append(f.clauses, clause)
	return f
}

func (f *Filter) path(path string) string {
	segments := strings.Split(path, ".")
	for i, segment := range segments {
		alias, ok := f.aliases[segment]
		if !ok {
			alias = fmt.Sprintf("#f%d", len(f.aliases))
			f.aliases[segment] = alias
			f.names[alias] = segment
		}
		segments[i] = alias
	}
	return strings.Join(segments, ".")
}

func (f *Filter) value(v types.AttributeValue) string {
	placeholder := fmt.Sprintf(":f%d", len(f.values))
	f.values[placeholder] = v
	return placeholder
}
