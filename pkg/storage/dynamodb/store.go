package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/tazdani/wallet-platform/pkg/events"
	"github.com/tazdani/wallet-platform/pkg/money"
	"github.com/tazdani/wallet-platform/pkg/storage"
)

// DynamoDBAPI is the subset of the DynamoDB client the store uses. Narrowed
// so tests can mock the client.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Tables names every DynamoDB table the store reads or writes.
type Tables struct {
	Wallets      string
	Transactions string
	Ledger       string
	Profiles     string
	Agents       string
	Merchants    string
	PaymentLinks string
	Idempotency  string
	Connections  string
}

// Store implements the Storage interface using AWS DynamoDB. All
// balance-changing operations go through TransactWriteItems so the debit,
// credit, transaction record and ledger rows commit or fail together.
type Store struct {
	Client DynamoDBAPI
	Events events.Publisher
	Fees   money.FeeSchedule
	Tables Tables
}

// New creates a new Store.
func New(client DynamoDBAPI, publisher events.Publisher, fees money.FeeSchedule, tables Tables) *Store {
	return &Store{
		Client: client,
		Events: publisher,
		Fees:   fees,
		Tables: tables,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)
