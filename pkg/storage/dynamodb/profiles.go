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

// GetProfile retrieves a profile by its id.
func (s *Store) GetProfile(ctx context.Context, profileID string) (*models.Profile, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Profiles),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: profileID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("profile %s: %w", profileID, storage.ErrProfileNotFound)
	}

	profile := &models.Profile{}
	if err := attributevalue.UnmarshalMap(out.Item, profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return profile, nil
}

// CreateProfile creates the profile and its wallet in one TransactWriteItems
// call, so every actor has a wallet from signup onward.
func (s *Store) CreateProfile(ctx context.Context, profile *models.Profile, wallet *models.Wallet) (*models.Profile, error) {
	now := time.Now().UTC()
	if profile.Id == "" {
		profile.Id = uuid.New().String()
	}
	if wallet.Id == "" {
		wallet.Id = uuid.New().String()
	}
	wallet.OwnerId = profile.Id
	profile.WalletId = wallet.Id
	profile.WalletStatus = models.WalletStatusActive
	profile.CreatedAt = now
	wallet.CreatedAt = now
	wallet.LastActivity = now

	profileAV, err := attributevalue.MarshalMap(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	walletAV, err := attributevalue.MarshalMap(wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wallet: %w", err)
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(s.Tables.Profiles),
					Item:                profileAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(s.Tables.Wallets),
					Item:                walletAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	})
	if err != nil {
		if len(conditionFailureIndexes(err)) > 0 {
			return nil, fmt.Errorf("profile %s: %w", profile.Id, storage.ErrWalletExists)
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return profile, nil
}

// SetPin stores a new bcrypt PIN hash on the profile.
func (s *Store) SetPin(ctx context.Context, profileID, pinHash string) error {
	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.Tables.Profiles),
		Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: profileID}},
		UpdateExpression:    aws.String("SET pin_hash = :hash"),
		ConditionExpression: aws.String("attribute_exists(id)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":hash": &types.AttributeValueMemberS{Value: pinHash},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("profile %s: %w", profileID, storage.ErrProfileNotFound)
		}
		return fmt.Errorf("failed to set pin: %w", err)
	}
	return nil
}
