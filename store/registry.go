package store

// Reference describes a denormalized value: documents in TargetTable copy
// the SourceField of a SourceType entity into TargetAttr.
type Reference struct {
	// SourceType is the referenced entity type (e.g., "category").
	SourceType string

	// SourceField is the referenced field of the source entity (e.g., "name").
	SourceField string

	// TargetTable is the DynamoDB table holding the referencing documents (e.g., "parts").
	TargetTable string

	// TargetAttr is the attribute holding the copied value (e.g., "category").
	TargetAttr string

	// TargetIndex is an optional GSI keyed by TargetAttr. Without it,
	// references are located with a consistent scan.
	TargetIndex string

	// KeyAttr is the hash key attribute of TargetTable. Default: "id"
	KeyAttr string
}

func (r Reference) keyAttr() string {
	if r.KeyAttr == "" {
		return "id"
	}
	return r.KeyAttr
}

// Registry holds all known references for rename cascades.
type Registry struct {
	bySource map[string][]Reference
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		bySource: make(map[string][]Reference),
	}
}

// Register adds a reference to the registry.
func (r *Registry) Register(ref Reference) {
	r.bySource[ref.SourceType] = append(r.bySource[ref.SourceType], ref)
}

// ReferencesTo returns all references to a given source type.
func (r *Registry) ReferencesTo(sourceType string) []Reference {
	return r.bySource[sourceType]
}

// IsReferenced returns true if the source type has any registered references.
func (r *Registry) IsReferenced(sourceType string) bool {
	return len(r.bySource[sourceType]) > 0
}
