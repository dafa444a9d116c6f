package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/tazdani/wallet-platform/pkg/models"
	"github.com/tazdani/wallet-platform/pkg/storage"
)

const ownerIdIndex = "owner_id-index"

// GetWallet retrieves a wallet from DynamoDB by its id.
func (s *Store) GetWallet(ctx context.Context, walletID string) (*models.Wallet, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": walletID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wallet id: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Wallets),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("wallet %s: %w", walletID, storage.ErrWalletNotFound)
	}

	var wallet models.Wallet
	if err := attributevalue.UnmarshalMap(result.Item, &wallet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet: %w", err)
	}

	return &wallet, nil
}

// GetWalletByOwner retrieves the wallet belonging to an actor via the
// owner-id index.
func (s *Store) GetWalletByOwner(ctx context.Context, ownerType models.OwnerType, ownerID string) (*models.Wallet, error) {
	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Wallets),
		IndexName:              aws.String(ownerIdIndex),
		KeyConditionExpression: aws.String("owner_id = :owner_id"),
		FilterExpression:       aws.String("owner_type = :owner_type"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":owner_id":   &types.AttributeValueMemberS{Value: ownerID},
			":owner_type": &types.AttributeValueMemberS{Value: string(ownerType)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet by owner: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, fmt.Errorf("wallet for %s %s: %w", ownerType, ownerID, storage.ErrWalletNotFound)
	}

	var wallet models.Wallet
	if err := attributevalue.UnmarshalMap(result.Items[0], &wallet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet: %w", err)
	}

	return &wallet, nil
}

// CreateWallet creates a new wallet record in DynamoDB.
func (s *Store) CreateWallet(ctx context.Context, wallet *models.Wallet) (*models.Wallet, error) {
	if wallet.Id == "" {
		wallet.Id = uuid.New().String()
	}
	now := time.Now()
	wallet.CreatedAt = now
	wallet.LastActivity = now
	if wallet.Version == 0 {
		wallet.Version = 1
	}
	if wallet.Currency == "" {
		wallet.Currency = models.DefaultCurrency
	}

	walletAV, err := attributevalue.MarshalMap(wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wallet: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Wallets),
		Item:                walletAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"), // Prevent overwriting existing wallets.
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("wallet %s: %w", wallet.Id, storage.ErrWalletExists)
		}
		return nil, fmt.Errorf("failed to create wallet in DynamoDB: %w", err)
	}

	return wallet, nil
}

// DeleteWallet deletes a wallet record from DynamoDB.
func (s *Store) DeleteWallet(ctx context.Context, walletID string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"id": walletID})
	if err != nil {
		return fmt.Errorf("failed to marshal wallet id for deletion: %w", err)
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.Tables.Wallets),
		Key:                 key,
		ConditionExpression: aws.String("attribute_exists(id)"), // Ensure the wallet exists before deleting.
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return fmt.Errorf("wallet %s: %w", walletID, storage.ErrWalletNotFound)
		}
		return fmt.Errorf("failed to delete wallet from DynamoDB: %w", err)
	}

	return nil
}

// ListWallets retrieves all wallets from DynamoDB.
func (s *Store) ListWallets(ctx context.Context) ([]models.Wallet, error) {
	result, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.Tables.Wallets),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan wallets table: %w", err)
	}

	var wallets []models.Wallet
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &wallets); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallets: %w", err)
	}

	return wallets, nil
}
