package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/warehouse/store"
)

// Entity types as recorded in unique constraints and references.
const (
	EntityTypeCategory = "category"
	EntityTypePart     = "part"
)

// Attribute names shared by the repositories, search and table definitions.
const (
	attrName             = "name"
	attrParentName       = "parent_name"
	attrSerialNumber     = "serial_number"
	attrCategory         = "category"
	attrNameLower        = "name_lc"
	attrDescriptionLower = "description_lc"

	// PartsCategoryIndex is the parts GSI keyed by category name.
	PartsCategoryIndex = "category-index"
)

// Tables names the DynamoDB tables backing the catalog.
type Tables struct {
	Categories string
	Parts      string
	Unique     string
}

// DefaultTables returns the default table names.
func DefaultTables() Tables {
	return Tables{
		Categories: "categories",
		Parts:      "parts",
		Unique:     store.DefaultConfig().UniqueTable,
	}
}

// PartsByCategory is the reference from parts to their category name.
func (t Tables) PartsByCategory() store.Reference {
	return store.Reference{
		SourceType:  EntityTypeCategory,
		SourceField: attrName,
		TargetTable: t.Parts,
		TargetAttr:  attrCategory,
		TargetIndex: PartsCategoryIndex,
	}
}

// ChildrenByParent is the reference from categories to their parent name.
// parent_name is null on base categories, so it cannot key an index.
func (t Tables) ChildrenByParent() store.Reference {
	return store.Reference{
		SourceType:  EntityTypeCategory,
		SourceField: attrName,
		TargetTable: t.Categories,
		TargetAttr:  attrParentName,
	}
}

// NewRegistry registers every denormalized category name.
func NewRegistry(t Tables) *store.Registry {
	r := store.NewRegistry()
	r.Register(t.PartsByCategory())
	r.Register(t.ChildrenByParent())
	return r
}

// TableDefinitions returns the definitions of all catalog tables. The
// categories table streams old and new images for the reconciler.
func TableDefinitions(t Tables) []*dynamodb.CreateTableInput {
	categories := store.EntityTableDefinition(t.Categories)
	categories.StreamSpecification = &types.StreamSpecification{
		StreamEnabled:  aws.Bool(true),
		StreamViewType: types.StreamViewTypeNewAndOldImages,
	}

	parts := store.EntityTableDefinition(t.Parts)
	parts.AttributeDefinitions = append(parts.AttributeDefinitions, types.AttributeDefinition{
		AttributeName: aws.String(attrCategory),
		AttributeType: types.ScalarAttributeTypeS,
	})
	parts.GlobalSecondaryIndexes = []types.GlobalSecondaryIndex{{
		IndexName: aws.String(PartsCategoryIndex),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(attrCategory), KeyType: types.KeyTypeHash},
		},
		Projection: &types.Projection{ProjectionType: types.ProjectionTypeKeysOnly},
	}}

	return []*dynamodb.CreateTableInput{
		store.UniqueTableDefinition(t.Unique),
		categories,
		parts,
	}
}

// EnsureTables creates any missing catalog table.
func EnsureTables(ctx context.Context, s *store.Store, t Tables, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	for _, def := range TableDefinitions(t) {
		created, err := s.EnsureTable(ctx, def)
		if err != nil {
			return fmt.Errorf("ensure tables: %w", err)
		}
		if created {
			logger.Info("created table", "table", aws.ToString(def.TableName))
		}
	}
	return nil
}
