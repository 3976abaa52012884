package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// tableActiveTimeout bounds the wait for a newly created table.
const tableActiveTimeout = 2 * time.Minute

// EnsureTable creates the table described by input unless it already exists,
// then waits until it is active. It reports whether the table was created.
func (s *Store) EnsureTable(ctx context.Context, input *dynamodb.CreateTableInput) (bool, error) {
	name := aws.ToString(input.TableName)

	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: input.TableName,
	})
	if err == nil {
		return false, nil
	}
	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return false, fmt.Errorf("describe table %s: %w", name, err)
	}

	if _, err := s.client.CreateTable(ctx, input); err != nil {
		// Lost a creation race with another process
		var inUse *types.ResourceInUseException
		if !errors.As(err, &inUse) {
			return false, fmt.Errorf("create table %s: %w", name, err)
		}
	}

	waiter := dynamodb.NewTableExistsWaiter(s.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: input.TableName}, tableActiveTimeout); err != nil {
		return false, fmt.Errorf("wait for table %s: %w", name, err)
	}

	return true, nil
}

// UniqueTableDefinition returns the definition of the unique constraints table.
func UniqueTableDefinition(name string) *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName: aws.String(name),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("pk"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("sk"), KeyType: types.KeyTypeRange},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("pk"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("sk"), AttributeType: types.ScalarAttributeTypeS},
		},
		BillingMode: types.BillingModePayPerRequest,
	}
}

// EntityTableDefinition returns the definition of an entity table keyed by a
// string "id" attribute.
func EntityTableDefinition(name string) *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName: aws.String(name),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
		},
		BillingMode: types.BillingModePayPerRequest,
	}
}
