package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/warehouse/store"
)

// --- Test Entity Types ---

// Bin is an entity without unique fields.
type Bin struct {
	ID string
}

func (b Bin) TableName() string  { return "bins" }
func (b Bin) EntityRef() string  { return "bin#" + b.ID }
func (b Bin) EntityType() string { return "bin" }
func (b Bin) GetKey() store.PK {
	return store.PK{
		"id": &types.AttributeValueMemberS{Value: b.ID},
	}
}

// Label is an entity with a unique code.
type Label struct {
	ID   string
	Code string
}

func (l Label) TableName() string  { return "labels" }
func (l Label) EntityRef() string  { return "label#" + l.ID }
func (l Label) EntityType() string { return "label" }
func (l Label) GetKey() store.PK {
	return store.PK{
		"id": &types.AttributeValueMemberS{Value: l.ID},
	}
}

func (l Label) UniqueFields() map[string]string {
	return map[string]string{"code": l.Code}
}

// --- Unit Tests ---

func TestDefaultConfig(t *testing.T) {
	cfg := store.DefaultConfig()

	if cfg.UniqueTable != "warehouse_unique_constraints" {
		t.Errorf("expected UniqueTable 'warehouse_unique_constraints', got %q", cfg.UniqueTable)
	}
	if cfg.ScanSegments != 1 {
		t.Errorf("expected ScanSegments 1, got %d", cfg.ScanSegments)
	}
}

func TestEntityInterfaces(t *testing.T) {
	var _ store.Entity = Bin{}
	var _ store.Entity = Label{}
	var _ store.UniqueFielder = Label{}

	if _, ok := any(Bin{}).(store.UniqueFielder); ok {
		t.Error("Bin should not implement UniqueFielder")
	}

	l := Label{ID: "l1", Code: "A-01"}
	if l.EntityRef() != "label#l1" {
		t.Errorf("expected EntityRef 'label#l1', got %q", l.EntityRef())
	}
	if l.UniqueFields()["code"] != "A-01" {
		t.Errorf("expected unique code 'A-01', got %q", l.UniqueFields()["code"])
	}
}

func TestNewStore(t *testing.T) {
	s := store.New(nil, store.Config{})
	if s == nil {
		t.Fatal("expected non-nil Store")
	}
	if s.Registry() != nil {
		t.Error("expected nil registry")
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name             string
		input            store.Config
		expectedUnique   string
		expectedSegments int
	}{
		{"empty config", store.Config{}, "warehouse_unique_constraints", 1},
		{"negative segments", store.Config{ScanSegments: -4}, "warehouse_unique_constraints", 1},
		{"too many segments", store.Config{ScanSegments: 1000}, "warehouse_unique_constraints", 64},
		{"custom values", store.Config{UniqueTable: "uniq", ScanSegments: 8}, "uniq", 8},
		{"max segments", store.Config{ScanSegments: 64}, "warehouse_unique_constraints", 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := store.New(nil, tt.input).Config()
			if cfg.UniqueTable != tt.expectedUnique {
				t.Errorf("expected UniqueTable %q, got %q", tt.expectedUnique, cfg.UniqueTable)
			}
			if cfg.ScanSegments != tt.expectedSegments {
				t.Errorf("expected ScanSegments %d, got %d", tt.expectedSegments, cfg.ScanSegments)
			}
		})
	}
}

func TestNewWithRegistry(t *testing.T) {
	registry := store.NewRegistry()
	s := store.NewWithRegistry(nil, store.DefaultConfig(), registry)

	if s.Registry() != registry {
		t.Error("expected registry to be set")
	}
}

func TestErrors_Distinct(t *testing.T) {
	errs := []error{
		store.ErrNotFound,
		store.ErrAlreadyExists,
		store.ErrConcurrentModification,
		store.ErrDuplicateValue,
		store.ErrInvalidReference,
	}

	seen := make(map[string]bool)
	for _, err := range errs {
		if err == nil {
			t.Fatal("expected non-nil error")
		}
		if seen[err.Error()] {
			t.Errorf("duplicate error message %q", err.Error())
		}
		seen[err.Error()] = true
	}
}

func TestErrors_ErrorsIs(t *testing.T) {
	wrapped := fmt.Errorf("get category: %w", store.ErrNotFound)

	if !errors.Is(wrapped, store.ErrNotFound) {
		t.Error("expected wrapped error to match ErrNotFound")
	}
	if errors.Is(wrapped, store.ErrDuplicateValue) {
		t.Error("expected wrapped error not to match ErrDuplicateValue")
	}
}

func TestTableDefinitions(t *testing.T) {
	unique := store.UniqueTableDefinition("uniq")
	if len(unique.KeySchema) != 2 {
		t.Errorf("expected pk/sk key schema, got %d elements", len(unique.KeySchema))
	}
	if unique.BillingMode != types.BillingModePayPerRequest {
		t.Errorf("expected on-demand billing, got %s", unique.BillingMode)
	}

	entity := store.EntityTableDefinition("bins")
	if len(entity.KeySchema) != 1 || *entity.KeySchema[0].AttributeName != "id" {
		t.Error("expected entity table keyed by id")
	}
}

func ExampleStore_Create() {
	var client store.Client // e.g. dynamodb.NewFromConfig(cfg)
	s := store.New(client, store.DefaultConfig())

	label := Label{ID: "l1", Code: "A-01"}
	item := map[string]types.AttributeValue{
		"id":   &types.AttributeValueMemberS{Value: label.ID},
		"code": &types.AttributeValueMemberS{Value: label.Code},
	}

	if err := s.Create(context.Background(), label, item); errors.Is(err, store.ErrDuplicateValue) {
		fmt.Println("code already taken")
	}
}

func ExampleStore_RenameReferences() {
	var client store.Client
	s := store.New(client, store.DefaultConfig())

	ref := store.Reference{
		SourceType:  "category",
		SourceField: "name",
		TargetTable: "parts",
		TargetAttr:  "category",
	}

	n, err := s.RenameReferences(context.Background(), ref, "Resistors", "Passive resistors")
	if err == nil {
		fmt.Printf("renamed %d parts\n", n)
	}
}
