// Package stream provides DynamoDB Streams handlers that keep denormalized
// references consistent.
package stream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/warehouse/store"
)

// Handler reconciles references to the documents of one entity table.
type Handler struct {
	store      *store.Store
	entityType string
	table      string
	logger     *slog.Logger
}

// NewHandler creates a handler for the stream of table, whose documents
// are of entityType.
func NewHandler(s *store.Store, entityType, table string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:      s,
		entityType: entityType,
		table:      table,
		logger:     logger,
	}
}

// HandleEvents processes a batch of stream records. It is designed to be
// used as an AWS Lambda handler. A failed record fails the batch so the
// stream retries it.
func (h *Handler) HandleEvents(ctx context.Context, event events.DynamoDBEvent) error {
	for _, record := range event.Records {
		if err := h.processRecord(ctx, record); err != nil {
			h.logger.Error("failed to process record",
				"eventID", record.EventID,
				"error", err,
			)
			return err
		}
	}
	return nil
}

func (h *Handler) processRecord(ctx context.Context, record events.DynamoDBEventRecord) error {
	if h.store == nil || h.store.Registry() == nil || !h.store.Registry().IsReferenced(h.entityType) {
		return nil
	}

	switch events.DynamoDBOperationType(record.EventName) {
	case events.DynamoDBOperationTypeModify:
		return h.repairRenames(ctx, record)
	case events.DynamoDBOperationTypeRemove:
		return h.detectOrphans(ctx, record)
	}
	return nil
}

// repairRenames re-runs the rename cascade of every reference whose source
// field changed. Documents already renamed are skipped by the store.
func (h *Handler) repairRenames(ctx context.Context, record events.DynamoDBEventRecord) error {
	refs := h.store.Registry().ReferencesTo(h.entityType)

	var current *store.Item
	for _, ref := range refs {
		oldValue := getStringAttr(record.Change.OldImage, ref.SourceField)
		newValue := getStringAttr(record.Change.NewImage, ref.SourceField)
		if oldValue == "" || newValue == "" || oldValue == newValue {
			continue
		}

		// A later change supersedes this record and will be replayed itself.
		if current == nil {
			item, err := h.store.Get(ctx, h.table, ConvertStreamKey(record.Change.Keys))
			if errors.Is(err, store.ErrNotFound) {
				h.logger.Debug("skipping rename of removed document", "eventID", record.EventID)
				return nil
			}
			if err != nil {
				return fmt.Errorf("read current document: %w", err)
			}
			current = item
		}
		if attrString(current.Raw[ref.SourceField]) != newValue {
			h.logger.Debug("skipping superseded rename",
				"eventID", record.EventID,
				"field", ref.SourceField,
			)
			continue
		}

		renamed, err := h.store.RenameReferences(ctx, ref, oldValue, newValue)
		if err != nil {
			return fmt.Errorf("repair %s.%s: %w", ref.TargetTable, ref.TargetAttr, err)
		}
		if renamed > 0 {
			h.logger.Warn("repaired stale references",
				"table", ref.TargetTable,
				"attribute", ref.TargetAttr,
				"from", oldValue,
				"to", newValue,
				"count", renamed,
			)
		}
	}
	return nil
}

// detectOrphans logs documents still referencing a removed document.
func (h *Handler) detectOrphans(ctx context.Context, record events.DynamoDBEventRecord) error {
	for _, ref := range h.store.Registry().ReferencesTo(h.entityType) {
		value := getStringAttr(record.Change.OldImage, ref.SourceField)
		if value == "" {
			continue
		}

		found, err := h.store.HasReferences(ctx, ref, []string{value})
		if err != nil {
			return fmt.Errorf("check %s.%s: %w", ref.TargetTable, ref.TargetAttr, err)
		}
		if found {
			h.logger.Warn("orphaned references",
				"table", ref.TargetTable,
				"attribute", ref.TargetAttr,
				"value", value,
			)
		}
	}
	return nil
}

// getStringAttr extracts a string attribute from a DynamoDB stream image.
func getStringAttr(image map[string]events.DynamoDBAttributeValue, key string) string {
	if v, ok := image[key]; ok && v.DataType() == events.DataTypeString {
		return v.String()
	}
	return ""
}

func attrString(av types.AttributeValue) string {
	if s, ok := av.(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

// ConvertStreamKey converts a DynamoDB stream key to a store.PK.
func ConvertStreamKey(streamKey map[string]events.DynamoDBAttributeValue) store.PK {
	result := make(store.PK)
	for k, v := range streamKey {
		switch v.DataType() {
		case events.DataTypeString:
			result[k] = &types.AttributeValueMemberS{Value: v.String()}
		case events.DataTypeNumber:
			result[k] = &types.AttributeValueMemberN{Value: v.Number()}
		case events.DataTypeBinary:
			result[k] = &types.AttributeValueMemberB{Value: v.Binary()}
		}
	}
	return result
}
