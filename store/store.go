package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/warehouse/internal/shard"
)

// Client is the subset of the DynamoDB API used by Store.
// *dynamodb.Client satisfies it.
type Client interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

var _ Client = (*dynamodb.Client)(nil)

const constraintSK = "CONSTRAINT"

// Store provides DynamoDB document operations with unique constraints,
// optimistic locking and reference maintenance.
type Store struct {
	client   Client
	config   Config
	registry *Registry
}

// New creates a new Store instance.
func New(client Client, config Config) *Store {
	config.validate()
	return &Store{
		client: client,
		config: config,
	}
}

// NewWithRegistry creates a new Store instance with a reference registry.
func NewWithRegistry(client Client, config Config, registry *Registry) *Store {
	s := New(client, config)
	s.registry = registry
	return s
}

// Registry returns the reference registry, or nil if not set.
func (s *Store) Registry() *Registry {
	return s.registry
}

// Config returns the validated store configuration.
func (s *Store) Config() Config {
	return s.config
}

// Create creates a new entity together with its unique constraints.
func (s *Store) Create(ctx context.Context, entity Entity, item map[string]types.AttributeValue) error {
	items := []types.TransactWriteItem{}
	nowISO := time.Now().UTC().Format(time.RFC3339)

	// 1. Set managed fields
	item["entity_ref"] = &types.AttributeValueMemberS{Value: entity.EntityRef()}
	item["version"] = &types.AttributeValueMemberN{Value: "1"}
	item["created_at"] = &types.AttributeValueMemberS{Value: nowISO}
	item["updated_at"] = &types.AttributeValueMemberS{Value: nowISO}

	// 2. Handle unique constraints
	var uniquePKs []string
	if uf, ok := entity.(UniqueFielder); ok {
		fields := uf.UniqueFields()
		for _, field := range sortedKeys(fields) {
			value := fields[field]
			constraintPK := shard.UniqueConstraintPK(entity.EntityType(), field, value)
			uniquePKs = append(uniquePKs, constraintPK)

			items = append(items, types.TransactWriteItem{
				Put: &types.Put{
					TableName:           aws.String(s.config.UniqueTable),
					Item:                s.constraintItem(entity, constraintPK, field, value),
					ConditionExpression: aws.String("attribute_not_exists(pk)"),
				},
			})
		}
	}

	// Store unique PKs on entity for delete cleanup
	if len(uniquePKs) > 0 {
		uniquePKsAttr, err := attributevalue.MarshalList(uniquePKs)
		if err != nil {
			return fmt.Errorf("marshal unique pks: %w", err)
		}
		item["_unique_pks"] = &types.AttributeValueMemberL{Value: uniquePKsAttr}
	}

	// 3. Add the entity put
	entityPutIndex := len(items)
	items = append(items, types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(entity.TableName()),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(id)"),
		},
	})

	// 4. Execute transaction
	_, err := s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})

	return s.mapCreateTransactionError(err, entityPutIndex)
}

// Get retrieves an entity by key with a strongly consistent read.
func (s *Store) Get(ctx context.Context, table string, key PK) (*Item, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(table),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if result.Item == nil {
		return nil, ErrNotFound
	}

	return s.unmarshalItem(result.Item), nil
}

// GetByUnique retrieves the entity of entityType whose unique field has value.
// The lookup goes through the constraint record, so it is strongly consistent.
func (s *Store) GetByUnique(ctx context.Context, entityType, field, value string) (*Item, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.config.UniqueTable),
		Key:            constraintKey(shard.UniqueConstraintPK(entityType, field, value)),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if result.Item == nil {
		return nil, ErrNotFound
	}

	table, ok := result.Item["entity_table"].(*types.AttributeValueMemberS)
	if !ok {
		return nil, fmt.Errorf("constraint %s/%s=%q has no entity table", entityType, field, value)
	}
	key, ok := result.Item["entity_key"].(*types.AttributeValueMemberM)
	if !ok {
		return nil, fmt.Errorf("constraint %s/%s=%q has no entity key", entityType, field, value)
	}

	return s.Get(ctx, table.Value, key.Value)
}

// Query queries entities, paginating through all results.
func (s *Store) Query(ctx context.Context, input QueryInput) ([]*Item, error) {
	queryInput := &dynamodb.QueryInput{
		TableName:                 aws.String(input.TableName),
		KeyConditionExpression:    aws.String(input.KeyConditionExpression),
		ExpressionAttributeNames:  input.ExpressionAttributeNames,
		ExpressionAttributeValues: input.ExpressionAttributeValues,
	}

	if input.IndexName != "" {
		queryInput.IndexName = aws.String(input.IndexName)
	} else {
		queryInput.ConsistentRead = aws.Bool(true)
	}

	var items []*Item
	paginator := dynamodb.NewQueryPaginator(s.client, queryInput)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			items = append(items, s.unmarshalItem(raw))
		}
	}

	return items, nil
}

// Scan reads every item of a table matching the filter with strongly
// consistent reads. With Config.ScanSegments > 1 the segments are read in
// parallel.
func (s *Store) Scan(ctx context.Context, input ScanInput) ([]*Item, error) {
	segments := s.config.ScanSegments

	// Fast path for a sequential scan (default)
	if segments <= 1 {
		return s.scanSegment(ctx, s.scanInput(input), nil)
	}

	// Parallel segment fan-out. The first failing segment cancels the rest.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var mu sync.Mutex
	var all []*Item
	var wg sync.WaitGroup
	errs := make(chan error, segments)

	for segment := 0; segment < segments; segment++ {
		wg.Add(1)
		go func(segment int) {
			defer wg.Done()

			scanInput := s.scanInput(input)
			scanInput.Segment = aws.Int32(int32(segment))
			scanInput.TotalSegments = aws.Int32(int32(segments))

			items, err := s.scanSegment(ctx, scanInput, nil)
			if err != nil {
				errs <- fmt.Errorf("segment %02x: %w", segment, err)
				cancel()
				return
			}

			mu.Lock()
			all = append(all, items...)
			mu.Unlock()
		}(segment)
	}

	go func() {
		wg.Wait()
		close(errs)
	}()

	for err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return all, nil
}

func (s *Store) scanInput(input ScanInput) *dynamodb.ScanInput {
	scanInput := &dynamodb.ScanInput{
		TableName:      aws.String(input.TableName),
		ConsistentRead: aws.Bool(true),
	}
	if !input.Filter.Empty() {
		scanInput.FilterExpression = aws.String(input.Filter.Expression())
		scanInput.ExpressionAttributeNames = input.Filter.Names()
		scanInput.ExpressionAttributeValues = input.Filter.Values()
	}
	return scanInput
}

// scanSegment paginates one scan. A non-nil stop ends the scan early once it
// returns true for the items read so far.
func (s *Store) scanSegment(ctx context.Context, input *dynamodb.ScanInput, stop func([]*Item) bool) ([]*Item, error) {
	var items []*Item
	paginator := dynamodb.NewScanPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			items = append(items, s.unmarshalItem(raw))
		}
		if stop != nil && stop(items) {
			break
		}
	}
	return items, nil
}

// Update updates an entity with optimistic locking.
// If the entity implements UniqueFielder and unique fields change,
// old constraints are deleted and new ones created transactionally.
func (s *Store) Update(ctx context.Context, entity Entity, item map[string]types.AttributeValue, expectedVersion int64) error {
	if uf, ok := entity.(UniqueFielder); ok {
		return s.updateWithUniqueConstraints(ctx, entity, item, expectedVersion, uf)
	}

	// Fast path: simple update without unique constraint handling
	return s.updateSimple(ctx, entity, item, expectedVersion)
}

// updateSimple performs a basic update without unique constraint handling.
func (s *Store) updateSimple(ctx context.Context, entity Entity, item map[string]types.AttributeValue, expectedVersion int64) error {
	setClauses, exprNames, exprValues := buildSetClauses(item, expectedVersion)

	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(entity.TableName()),
		Key:                       entity.GetKey(),
		UpdateExpression:          aws.String("SET " + strings.Join(setClauses, ", ")),
		ConditionExpression:       aws.String(versionCondition),
		ExpressionAttributeNames:  exprNames,
		ExpressionAttributeValues: exprValues,
	})

	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrConcurrentModification
		}
		return err
	}
	return nil
}

// updateWithUniqueConstraints handles updates where unique fields may have changed.
func (s *Store) updateWithUniqueConstraints(ctx context.Context, entity Entity, item map[string]types.AttributeValue, expectedVersion int64, uf UniqueFielder) error {
	// Fetch current entity to get old unique field values
	current, err := s.Get(ctx, entity.TableName(), entity.GetKey())
	if err != nil {
		return err
	}
	if current.Version != expectedVersion {
		return ErrConcurrentModification
	}

	entityType := entity.EntityType()
	newUniques := uf.UniqueFields()

	// Extract old unique values from current item
	oldUniques := make(map[string]string)
	for field := range newUniques {
		if v, ok := current.Raw[field].(*types.AttributeValueMemberS); ok {
			oldUniques[field] = v.Value
		}
	}

	// Check if any unique fields changed
	var changedFields []string
	for _, field := range sortedKeys(newUniques) {
		if oldValue, ok := oldUniques[field]; !ok || oldValue != newUniques[field] {
			changedFields = append(changedFields, field)
		}
	}

	// If no unique fields changed, use simple update
	if len(changedFields) == 0 {
		return s.updateSimple(ctx, entity, item, expectedVersion)
	}

	items := []types.TransactWriteItem{}

	// Compute all new unique PKs (including unchanged ones for _unique_pks update)
	var newUniquePKs []string
	for _, field := range sortedKeys(newUniques) {
		newUniquePKs = append(newUniquePKs, shard.UniqueConstraintPK(entityType, field, newUniques[field]))
	}

	// For each changed field: delete old constraint, create new constraint
	for _, field := range changedFields {
		oldValue := oldUniques[field]
		newValue := newUniques[field]

		if oldValue != "" {
			items = append(items, types.TransactWriteItem{
				Delete: &types.Delete{
					TableName: aws.String(s.config.UniqueTable),
					Key:       constraintKey(shard.UniqueConstraintPK(entityType, field, oldValue)),
				},
			})
		}

		newPK := shard.UniqueConstraintPK(entityType, field, newValue)
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName: aws.String(s.config.UniqueTable),
				Item:      s.constraintItem(entity, newPK, field, newValue),
				// Fails if another entity already has this unique value
				ConditionExpression: aws.String("attribute_not_exists(pk)"),
			},
		})
	}

	setClauses, exprNames, exprValues := buildSetClauses(item, expectedVersion)

	uniquePKsAttr, err := attributevalue.MarshalList(newUniquePKs)
	if err != nil {
		return fmt.Errorf("marshal unique pks: %w", err)
	}
	exprNames["#unique_pks"] = "_unique_pks"
	exprValues[":unique_pks"] = &types.AttributeValueMemberL{Value: uniquePKsAttr}
	setClauses = append(setClauses, "#unique_pks = :unique_pks")

	entityUpdateIndex := len(items)
	items = append(items, types.TransactWriteItem{
		Update: &types.Update{
			TableName:                 aws.String(entity.TableName()),
			Key:                       entity.GetKey(),
			UpdateExpression:          aws.String("SET " + strings.Join(setClauses, ", ")),
			ConditionExpression:       aws.String(versionCondition),
			ExpressionAttributeNames:  exprNames,
			ExpressionAttributeValues: exprValues,
		},
	})

	_, err = s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})

	return s.mapUpdateTransactionError(err, entityUpdateIndex)
}

// Delete removes an entity and its unique constraint records in one
// transaction. It reports false when there was nothing to delete or the
// entity changed between the read and the delete.
func (s *Store) Delete(ctx context.Context, table string, key PK) (bool, error) {
	current, err := s.Get(ctx, table, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	items := []types.TransactWriteItem{{
		Delete: &types.Delete{
			TableName:           aws.String(table),
			Key:                 key,
			ConditionExpression: aws.String("#version = :version"),
			ExpressionAttributeNames: map[string]string{
				"#version": "version",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":version": &types.AttributeValueMemberN{Value: strconv.FormatInt(current.Version, 10)},
			},
		},
	}}
	for _, pk := range current.UniquePKs {
		items = append(items, types.TransactWriteItem{
			Delete: &types.Delete{
				TableName: aws.String(s.config.UniqueTable),
				Key:       constraintKey(pk),
			},
		})
	}

	_, err = s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		if isConditionFailure(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// RenameReferences rewrites TargetAttr from oldValue to newValue on every
// document referencing oldValue through ref. Each document is updated
// conditionally, so running it twice is harmless. It returns the number of
// documents rewritten.
func (s *Store) RenameReferences(ctx context.Context, ref Reference, oldValue, newValue string) (int, error) {
	if ref.TargetTable == "" || ref.TargetAttr == "" {
		return 0, ErrInvalidReference
	}
	if oldValue == newValue {
		return 0, nil
	}

	items, err := s.findReferences(ctx, ref, oldValue)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	renamed := 0
	for _, item := range items {
		keyValue, ok := item.Raw[ref.keyAttr()]
		if !ok {
			continue
		}

		_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName:           aws.String(ref.TargetTable),
			Key:                 PK{ref.keyAttr(): keyValue},
			UpdateExpression:    aws.String("SET #ref = :new, #updated_at = :updated_at, #version = #version + :one"),
			ConditionExpression: aws.String("#ref = :old"),
			ExpressionAttributeNames: map[string]string{
				"#ref":        ref.TargetAttr,
				"#updated_at": "updated_at",
				"#version":    "version",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":new":        &types.AttributeValueMemberS{Value: newValue},
				":old":        &types.AttributeValueMemberS{Value: oldValue},
				":updated_at": &types.AttributeValueMemberS{Value: now},
				":one":        &types.AttributeValueMemberN{Value: "1"},
			},
		})

		// Ignore condition failure - already renamed or re-pointed
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			continue
		}
		if err != nil {
			return renamed, fmt.Errorf("rename %s.%s: %w", ref.TargetTable, ref.TargetAttr, err)
		}
		renamed++
	}

	return renamed, nil
}

func (s *Store) findReferences(ctx context.Context, ref Reference, value string) ([]*Item, error) {
	if ref.TargetIndex != "" {
		return s.Query(ctx, QueryInput{
			TableName:              ref.TargetTable,
			IndexName:              ref.TargetIndex,
			KeyConditionExpression: "#ref = :value",
			ExpressionAttributeNames: map[string]string{
				"#ref": ref.TargetAttr,
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":value": &types.AttributeValueMemberS{Value: value},
			},
		})
	}

	return s.Scan(ctx, ScanInput{
		TableName: ref.TargetTable,
		Filter:    NewFilter().Equal(ref.TargetAttr, &types.AttributeValueMemberS{Value: value}),
	})
}

// maxInOperands is the DynamoDB limit on IN operands.
const maxInOperands = 100

// HasReferences reports whether any document references one of values
// through ref. It always scans with strongly consistent reads so that a
// guard checked before a delete sees every committed write.
func (s *Store) HasReferences(ctx context.Context, ref Reference, values []string) (bool, error) {
	if ref.TargetTable == "" || ref.TargetAttr == "" {
		return false, ErrInvalidReference
	}

	for start := 0; start < len(values); start += maxInOperands {
		end := min(start+maxInOperands, len(values))

		operands := make([]types.AttributeValue, 0, end-start)
		for _, v := range values[start:end] {
			operands = append(operands, &types.AttributeValueMemberS{Value: v})
		}

		input := s.scanInput(ScanInput{
			TableName: ref.TargetTable,
			Filter:    NewFilter().In(ref.TargetAttr, operands...),
		})
		input.ProjectionExpression = aws.String("#pk")
		input.ExpressionAttributeNames["#pk"] = ref.keyAttr()

		items, err := s.scanSegment(ctx, input, func(items []*Item) bool { return len(items) > 0 })
		if err != nil {
			return false, err
		}
		if len(items) > 0 {
			return true, nil
		}
	}

	return false, nil
}

// versionCondition guards updates with the optimistic lock.
const versionCondition = "attribute_exists(id) AND #version = :expected_version"

// buildSetClauses builds the SET clauses for item plus the managed
// updated_at and version fields. Managed attributes in item are skipped.
func buildSetClauses(item map[string]types.AttributeValue, expectedVersion int64) ([]string, map[string]string, map[string]types.AttributeValue) {
	now := time.Now().UTC().Format(time.RFC3339)

	var setClauses []string
	exprNames := map[string]string{
		"#updated_at": "updated_at",
		"#version":    "version",
	}
	exprValues := map[string]types.AttributeValue{
		":updated_at":       &types.AttributeValueMemberS{Value: now},
		":one":              &types.AttributeValueMemberN{Value: "1"},
		":expected_version": &types.AttributeValueMemberN{Value: strconv.FormatInt(expectedVersion, 10)},
	}

	i := 0
	for _, k := range sortedKeys(item) {
		if isManaged(k) {
			continue
		}
		nameKey := fmt.Sprintf("#attr%d", i)
		valueKey := fmt.Sprintf(":val%d", i)
		exprNames[nameKey] = k
		exprValues[valueKey] = item[k]
		setClauses = append(setClauses, fmt.Sprintf("%s = %s", nameKey, valueKey))
		i++
	}

	setClauses = append(setClauses, "#updated_at = :updated_at", "#version = #version + :one")
	return setClauses, exprNames, exprValues
}

func isManaged(attr string) bool {
	switch attr {
	case "id", "entity_ref", "version", "created_at", "updated_at", "_unique_pks":
		return true
	}
	return false
}

// constraintItem builds a unique constraint record pointing back at entity.
func (s *Store) constraintItem(entity Entity, pk, field, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk":           &types.AttributeValueMemberS{Value: pk},
		"sk":           &types.AttributeValueMemberS{Value: constraintSK},
		"entity_type":  &types.AttributeValueMemberS{Value: entity.EntityType()},
		"field_name":   &types.AttributeValueMemberS{Value: field},
		"field_value":  &types.AttributeValueMemberS{Value: value},
		"entity_ref":   &types.AttributeValueMemberS{Value: entity.EntityRef()},
		"entity_table": &types.AttributeValueMemberS{Value: entity.TableName()},
		"entity_key":   &types.AttributeValueMemberM{Value: entity.GetKey()},
	}
}

func constraintKey(pk string) PK {
	return PK{
		"pk": &types.AttributeValueMemberS{Value: pk},
		"sk": &types.AttributeValueMemberS{Value: constraintSK},
	}
}

// mapCreateTransactionError maps DynamoDB transaction errors for Create operations.
// entityPutIndex is the index of the entity put item.
func (s *Store) mapCreateTransactionError(err error, entityPutIndex int) error {
	if err == nil {
		return nil
	}

	var txErr *types.TransactionCanceledException
	if errors.As(err, &txErr) {
		for i, reason := range txErr.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				if i == entityPutIndex {
					return ErrAlreadyExists
				}
				// Must be a unique constraint
				return ErrDuplicateValue
			}
		}
	}

	return err
}

// mapUpdateTransactionError maps DynamoDB transaction errors for Update operations.
// entityUpdateIndex is the index of the entity update item.
func (s *Store) mapUpdateTransactionError(err error, entityUpdateIndex int) error {
	if err == nil {
		return nil
	}

	var txErr *types.TransactionCanceledException
	if errors.As(err, &txErr) {
		for i, reason := range txErr.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				if i == entityUpdateIndex {
					return ErrConcurrentModification
				}
				return ErrDuplicateValue
			}
		}
	}

	return err
}

// isConditionFailure reports whether err is a failed condition, either on a
// single-item write or inside a cancelled transaction.
func isConditionFailure(err error) bool {
	var condErr *types.ConditionalCheckFailedException
	if errors.As(err, &condErr) {
		return true
	}
	var txErr *types.TransactionCanceledException
	if errors.As(err, &txErr) {
		for _, reason := range txErr.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				return true
			}
		}
	}
	return false
}

// unmarshalItem converts a DynamoDB item to an Item struct.
func (s *Store) unmarshalItem(raw map[string]types.AttributeValue) *Item {
	item := &Item{Raw: raw}

	if v, ok := raw["version"].(*types.AttributeValueMemberN); ok {
		item.Version, _ = strconv.ParseInt(v.Value, 10, 64)
	}
	if v, ok := raw["created_at"].(*types.AttributeValueMemberS); ok {
		item.CreatedAt = v.Value
	}
	if v, ok := raw["updated_at"].(*types.AttributeValueMemberS); ok {
		item.UpdatedAt = v.Value
	}
	if v, ok := raw["entity_ref"].(*types.AttributeValueMemberS); ok {
		item.EntityRef = v.Value
	}
	if v, ok := raw["_unique_pks"].(*types.AttributeValueMemberL); ok {
		for _, pk := range v.Value {
			if str, ok := pk.(*types.AttributeValueMemberS); ok {
				item.UniquePKs = append(item.UniquePKs, str.Value)
			}
		}
	}

	return item
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
