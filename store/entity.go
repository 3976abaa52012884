package store

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// PK represents a DynamoDB primary key.
type PK map[string]types.AttributeValue

// Entity is the base interface for all storable types.
type Entity interface {
	// TableName returns the DynamoDB table name for this entity type.
	TableName() string

	// GetKey returns the primary key for this entity.
	GetKey() PK

	// EntityRef returns the type-qualified reference (e.g., "category#uuid").
	EntityRef() string

	// EntityType returns the entity type name (e.g., "category").
	EntityType() string
}

// UniqueFielder is implemented by entities with unique field constraints.
type UniqueFielder interface {
	// UniqueFields returns field name to value mappings for fields
	// that must be unique among all entities of the same type.
	UniqueFields() map[string]string
}

// Item represents a retrieved DynamoDB item with common fields.
type Item struct {
	// Raw is the raw DynamoDB item.
	Raw map[string]types.AttributeValue

	// Version is the optimistic lock version.
	Version int64

	// CreatedAt is the ISO 8601 creation timestamp.
	CreatedAt string

	// UpdatedAt is the ISO 8601 last update timestamp.
	UpdatedAt string

	// EntityRef is the type-qualified entity reference.
	EntityRef string

	// UniquePKs are the partition keys of the entity's unique constraint records.
	UniquePKs []string
}

// QueryInput defines parameters for querying entities.
type QueryInput struct {
	// TableName is the DynamoDB table to query.
	TableName string

	// IndexName is the optional GSI/LSI to query.
	IndexName string

	// KeyConditionExpression is the DynamoDB key condition.
	KeyConditionExpression string

	// ExpressionAttributeNames maps expression attribute name placeholders.
	ExpressionAttributeNames map[string]string

	// ExpressionAttributeValues maps expression attribute value placeholders.
	ExpressionAttributeValues map[string]types.AttributeValue
}

// ScanInput defines parameters for scanning a table.
type ScanInput struct {
	// TableName is the DynamoDB table to scan.
	TableName string

	// Filter restricts the returned items. A nil or empty filter returns everything.
	Filter *Filter
}
