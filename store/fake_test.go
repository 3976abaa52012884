package store

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeClient records requests and answers them with the configured funcs.
// Unset funcs return empty outputs.
type fakeClient struct {
	mu sync.Mutex

	getItem    func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	updateItem func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error)
	query      func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error)
	scan       func(*dynamodb.ScanInput) (*dynamodb.ScanOutput, error)
	scanCtx    func(context.Context, *dynamodb.ScanInput) (*dynamodb.ScanOutput, error)
	transact   func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error)
	describe   func(*dynamodb.DescribeTableInput) (*dynamodb.DescribeTableOutput, error)
	create     func(*dynamodb.CreateTableInput) (*dynamodb.CreateTableOutput, error)

	gets      []*dynamodb.GetItemInput
	updates   []*dynamodb.UpdateItemInput
	queries   []*dynamodb.QueryInput
	scans     []*dynamodb.ScanInput
	transacts []*dynamodb.TransactWriteItemsInput
	creates   []*dynamodb.CreateTableInput
}

var _ Client = (*fakeClient)(nil)

func (f *fakeClient) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	f.gets = append(f.gets, in)
	f.mu.Unlock()
	if f.getItem == nil {
		return &dynamodb.GetItemOutput{}, nil
	}
	return f.getItem(in)
}

func (f *fakeClient) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	f.updates = append(f.updates, in)
	f.mu.Unlock()
	if f.updateItem == nil {
		return &dynamodb.UpdateItemOutput{}, nil
	}
	return f.updateItem(in)
}

func (f *fakeClient) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	f.queries = append(f.queries, in)
	f.mu.Unlock()
	if f.query == nil {
		return &dynamodb.QueryOutput{}, nil
	}
	return f.query(in)
}

func (f *fakeClient) Scan(ctx context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	f.scans = append(f.scans, in)
	f.mu.Unlock()
	if f.scanCtx != nil {
		return f.scanCtx(ctx, in)
	}
	if f.scan == nil {
		return &dynamodb.ScanOutput{}, nil
	}
	return f.scan(in)
}

func (f *fakeClient) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.mu.Lock()
	f.transacts = append(f.transacts, in)
	f.mu.Unlock()
	if f.transact == nil {
		return &dynamodb.TransactWriteItemsOutput{}, nil
	}
	return f.transact(in)
}

func (f *fakeClient) DescribeTable(_ context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if f.describe == nil {
		return &dynamodb.DescribeTableOutput{}, nil
	}
	return f.describe(in)
}

func (f *fakeClient) CreateTable(_ context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	f.mu.Lock()
	f.creates = append(f.creates, in)
	f.mu.Unlock()
	if f.create == nil {
		return &dynamodb.CreateTableOutput{}, nil
	}
	return f.create(in)
}

// widget is a test entity with a unique name.
type widget struct {
	ID   string
	Name string
}

func (w widget) TableName() string  { return "widgets" }
func (w widget) EntityRef() string  { return "widget#" + w.ID }
func (w widget) EntityType() string { return "widget" }
func (w widget) GetKey() PK {
	return PK{"id": &types.AttributeValueMemberS{Value: w.ID}}
}
func (w widget) UniqueFields() map[string]string {
	return map[string]string{"name": w.Name}
}

// note is a test entity without unique fields.
type note struct {
	ID string
}

func (n note) TableName() string  { return "notes" }
func (n note) EntityRef() string  { return "note#" + n.ID }
func (n note) EntityType() string { return "note" }
func (n note) GetKey() PK {
	return PK{"id": &types.AttributeValueMemberS{Value: n.ID}}
}

func str(v string) *types.AttributeValueMemberS {
	return &types.AttributeValueMemberS{Value: v}
}

func num(v string) *types.AttributeValueMemberN {
	return &types.AttributeValueMemberN{Value: v}
}

func canceled(codes ...string) error {
	reasons := make([]types.CancellationReason, len(codes))
	for i, code := range codes {
		c := code
		reasons[i] = types.CancellationReason{Code: &c}
	}
	return &types.TransactionCanceledException{CancellationReasons: reasons}
}
