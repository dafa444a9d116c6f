package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/tazdani/wallet-platform/pkg/models"
	"github.com/tazdani/wallet-platform/pkg/money"
	"github.com/tazdani/wallet-platform/pkg/pin"
	"github.com/tazdani/wallet-platform/pkg/storage"
	"github.com/tazdani/wallet-platform/pkg/storage/dynamodb/mocks"
)

func testTables() Tables {
	return Tables{
		Wallets:      "wallets",
		Transactions: "transactions",
		Ledger:       "ledger",
		Profiles:     "profiles",
		Agents:       "agents",
		Merchants:    "merchants",
		PaymentLinks: "payment_links",
		Idempotency:  "idempotency",
		Connections:  "connections",
	}
}

func TestTransfer(t *testing.T) {
	pinHash, err := pin.Hash("123456")
	assert.NoError(t, err)

	sender := &models.Wallet{Id: "w1", OwnerType: models.OwnerCustomer, OwnerId: "p1", Balance: 100_000, Currency: "LYD", IsActive: true, Version: 1}
	receiver := &models.Wallet{Id: "w2", OwnerType: models.OwnerCustomer, OwnerId: "p2", Balance: 5_000, Currency: "LYD", IsActive: true, Version: 3}
	profile := &models.Profile{Id: "p1", Type: models.OwnerCustomer, WalletId: "w1", PinHash: pinHash, WalletStatus: models.WalletStatusActive}

	params := storage.TransferParams{
		SenderWalletId:   "w1",
		ReceiverWalletId: "w2",
		Amount:           10_000,
		Pin:              "123456",
	}

	fees := money.FeeSchedule{TransferBps: 100}

	mockParties := func(mockClient *mocks.DynamoDBAPI) {
		senderAV, _ := attributevalue.MarshalMap(sender)
		receiverAV, _ := attributevalue.MarshalMap(receiver)
		profileAV, _ := attributevalue.MarshalMap(profile)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: senderAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: receiverAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: profileAV}, nil)
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Fees: fees, Tables: testTables()}

		mockParties(mockClient)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		result, err := store.Transfer(context.Background(), params)

		assert.NoError(t, err)
		assert.Equal(t, models.TypeTransfer, result.Transaction.Type)
		assert.Equal(t, int64(10_000), result.Transaction.Amount)
		assert.Equal(t, int64(100), result.Transaction.Fee)
		assert.Equal(t, int64(89_900), result.SenderBalanceAfter)
		assert.Equal(t, int64(15_000), result.ReceiverBalanceAfter)
		assert.False(t, result.Replayed)
		assert.Contains(t, result.Transaction.Reference, "TRF")
		mockClient.AssertExpectations(t)
	})

	t.Run("Invalid Pin", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Fees: fees, Tables: testTables()}

		mockParties(mockClient)

		badPin := params
		badPin.Pin = "654321"
		_, err := store.Transfer(context.Background(), badPin)

		assert.ErrorIs(t, err, storage.ErrInvalidPin)
		mockClient.AssertNotCalled(t, "TransactWriteItems", mock.Anything, mock.Anything)
	})

	t.Run("Pin Not Set", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Fees: fees, Tables: testTables()}

		senderAV, _ := attributevalue.MarshalMap(sender)
		receiverAV, _ := attributevalue.MarshalMap(receiver)
		noPin := &models.Profile{Id: "p1", WalletId: "w1", WalletStatus: models.WalletStatusActive}
		profileAV, _ := attributevalue.MarshalMap(noPin)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: senderAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: receiverAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: profileAV}, nil)

		_, err := store.Transfer(context.Background(), params)

		assert.ErrorIs(t, err, storage.ErrPinNotSet)
	})

	t.Run("Insufficient Funds Pre-Check", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Fees: fees, Tables: testTables()}

		poor := &models.Wallet{Id: "w1", OwnerId: "p1", Balance: 5_000, Currency: "LYD", IsActive: true, Version: 1}
		poorAV, _ := attributevalue.MarshalMap(poor)
		receiverAV, _ := attributevalue.MarshalMap(receiver)
		profileAV, _ := attributevalue.MarshalMap(profile)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: poorAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: receiverAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: profileAV}, nil)

		_, err := store.Transfer(context.Background(), params)

		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)
		mockClient.AssertNotCalled(t, "TransactWriteItems", mock.Anything, mock.Anything)
	})

	t.Run("Insufficient Funds At Commit", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Fees: fees, Tables: testTables()}

		mockParties(mockClient)
		cancelled := &types.TransactionCanceledException{
			CancellationReasons: []types.CancellationReason{
				{Code: aws.String("ConditionalCheckFailed")},
				{Code: aws.String("None")},
			},
		}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(nil, cancelled)

		_, err := store.Transfer(context.Background(), params)

		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)
		mockClient.AssertExpectations(t)
	})

	t.Run("Receiver Inactive", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Fees: fees, Tables: testTables()}

		senderAV, _ := attributevalue.MarshalMap(sender)
		frozen := &models.Wallet{Id: "w2", Balance: 5_000, IsActive: false, Version: 1}
		frozenAV, _ := attributevalue.MarshalMap(frozen)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: senderAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: frozenAV}, nil)

		_, err := store.Transfer(context.Background(), params)

		assert.ErrorIs(t, err, storage.ErrWalletInactive)
	})

	t.Run("Limit Exceeded", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Fees: fees, Tables: testTables()}

		capped := &models.Wallet{Id: "w1", OwnerId: "p1", Balance: 100_000, DailyLimit: 5_000, Currency: "LYD", IsActive: true, Version: 1}
		cappedAV, _ := attributevalue.MarshalMap(capped)
		receiverAV, _ := attributevalue.MarshalMap(receiver)
		profileAV, _ := attributevalue.MarshalMap(profile)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: cappedAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: receiverAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: profileAV}, nil)

		_, err := store.Transfer(context.Background(), params)

		assert.ErrorIs(t, err, storage.ErrLimitExceeded)
	})

	t.Run("Sender Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Fees: fees, Tables: testTables()}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		_, err := store.Transfer(context.Background(), params)

		assert.ErrorIs(t, err, storage.ErrWalletNotFound)
	})

	t.Run("Commit Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Fees: fees, Tables: testTables()}

		mockParties(mockClient)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(nil, errors.New("throttled"))

		_, err := store.Transfer(context.Background(), params)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to commit transfer")
	})
}

func TestTransferIdempotentReplay(t *testing.T) {
	mockClient := new(mocks.DynamoDBAPI)
	store := &Store{Client: mockClient, Tables: testTables()}

	record := idempotencyRecord{
		KeyId:                "key-1",
		TransactionId:        "tx-1",
		SenderBalanceAfter:   89_900,
		ReceiverBalanceAfter: 15_000,
	}
	recordAV, _ := attributevalue.MarshalMap(record)
	original := &models.Transaction{Id: "tx-1", Type: models.TypeTransfer, Amount: 10_000, Status: models.StatusCompleted}
	originalAV, _ := attributevalue.MarshalMap(original)

	mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: recordAV}, nil)
	mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: originalAV}, nil)

	result, err := store.Transfer(context.Background(), storage.TransferParams{
		SenderWalletId:   "w1",
		ReceiverWalletId: "w2",
		Amount:           10_000,
		Pin:              "123456",
		IdempotencyKey:   "key-1",
	})

	assert.NoError(t, err)
	assert.True(t, result.Replayed)
	assert.Equal(t, "tx-1", result.Transaction.Id)
	assert.Equal(t, int64(89_900), result.SenderBalanceAfter)
	assert.Equal(t, int64(15_000), result.ReceiverBalanceAfter)
	// No money moved on replay.
	mockClient.AssertNotCalled(t, "TransactWriteItems", mock.Anything, mock.Anything)
	mockClient.AssertExpectations(t)
}
