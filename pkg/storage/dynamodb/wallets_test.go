package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/tazdani/wallet-platform/pkg/models"
	"github.com/tazdani/wallet-platform/pkg/storage"
	"github.com/tazdani/wallet-platform/pkg/storage/dynamodb/mocks"
)

func TestGetWallet(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables()}

		wallet := &models.Wallet{Id: "w1", OwnerType: models.OwnerCustomer, Balance: 100, IsActive: true, Version: 1}
		walletAV, _ := attributevalue.MarshalMap(wallet)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: walletAV}, nil)

		got, err := store.GetWallet(context.Background(), "w1")

		assert.NoError(t, err)
		assert.Equal(t, wallet.Id, got.Id)
		assert.Equal(t, wallet.Balance, got.Balance)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables()}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		_, err := store.GetWallet(context.Background(), "missing")

		assert.ErrorIs(t, err, storage.ErrWalletNotFound)
	})

	t.Run("Client Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables()}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(nil, errors.New("throttled"))

		_, err := store.GetWallet(context.Background(), "w1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get wallet")
	})
}

func TestGetWalletByOwner(t *testing.T) {
	mockClient := new(mocks.DynamoDBAPI)
	store := &Store{Client: mockClient, Tables: testTables()}

	wallet := &models.Wallet{Id: "w1", OwnerType: models.OwnerMerchant, OwnerId: "m1", Balance: 100}
	walletAV, _ := attributevalue.MarshalMap(wallet)
	mockClient.On("Query", mock.Anything, mock.Anything).Once().Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{walletAV}}, nil)

	got, err := store.GetWalletByOwner(context.Background(), models.OwnerMerchant, "m1")

	assert.NoError(t, err)
	assert.Equal(t, "w1", got.Id)
	mockClient.AssertExpectations(t)
}

func TestCreateWallet(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables()}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.PutItemOutput{}, nil)

		wallet, err := store.CreateWallet(context.Background(), &models.Wallet{OwnerType: models.OwnerCustomer, OwnerId: "p1", Currency: "LYD"})

		assert.NoError(t, err)
		assert.NotEmpty(t, wallet.Id)
		mockClient.AssertExpectations(t)
	})

	t.Run("Already Exists", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables()}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Once().Return(nil, &types.ConditionalCheckFailedException{})

		_, err := store.CreateWallet(context.Background(), &models.Wallet{Id: "w1", OwnerType: models.OwnerCustomer})

		assert.ErrorIs(t, err, storage.ErrWalletExists)
	})
}
