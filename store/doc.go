// Package store provides a DynamoDB document layer with unique constraints,
// optimistic locking and maintenance of denormalized references.
//
// # Entity Interfaces
//
// All entities must implement the [Entity] interface:
//
//	type Entity interface {
//	    TableName() string
//	    GetKey() PK
//	    EntityRef() string
//	    EntityType() string
//	}
//
// Entities with unique constraints implement [UniqueFielder]:
//
//	type UniqueFielder interface {
//	    UniqueFields() map[string]string
//	}
//
// Each unique value is claimed by a record in the unique constraints table,
// written in the same transaction as the entity. Uniqueness is scoped by
// entity type, so two categories cannot share a name while a part and a
// category can. [Store.GetByUnique] resolves an entity through its constraint
// record with strongly consistent reads.
//
// # References
//
// A [Reference] registered in a [Registry] records that documents in one
// table copy a field of another entity type, e.g. parts copy the name of
// their category. [Store.RenameReferences] rewrites such copies after a
// rename and [Store.HasReferences] checks whether any copy remains.
//
// # Configuration
//
// Use [DefaultConfig] for small datasets (sequential scans).
// Increase ScanSegments to read large tables in parallel:
//
//	cfg := store.DefaultConfig()
//	cfg.ScanSegments = 8
//
// # Errors
//
// The package defines domain-specific errors:
//
//   - [ErrNotFound] - entity doesn't exist
//   - [ErrAlreadyExists] - entity with ID already exists
//   - [ErrConcurrentModification] - optimistic lock failed
//   - [ErrDuplicateValue] - unique constraint violated
//   - [ErrInvalidReference] - reference has no target
package store
