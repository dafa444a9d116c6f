package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/tazdani/wallet-platform/pkg/models"
	"github.com/tazdani/wallet-platform/pkg/storage"
)

// GetMerchant retrieves a merchant by its id.
func (s *Store) GetMerchant(ctx context.Context, merchantID string) (*models.Merchant, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Merchants),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: merchantID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get merchant: %w", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("merchant %s: %w", merchantID, storage.ErrMerchantNotFound)
	}

	merchant := &models.Merchant{}
	if err := attributevalue.UnmarshalMap(out.Item, merchant); err != nil {
		return nil, fmt.Errorf("failed to unmarshal merchant: %w", err)
	}
	return merchant, nil
}

// ListActiveMerchants retrieves all active merchants, for proximity search.
func (s *Store) ListActiveMerchants(ctx context.Context) ([]models.Merchant, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(s.Tables.Merchants),
		FilterExpression: aws.String("#status = :active"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":active": &types.AttributeValueMemberS{Value: models.AgentStatusActive},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan merchants: %w", err)
	}

	merchants := []models.Merchant{}
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &merchants); err != nil {
		return nil, fmt.Errorf("failed to unmarshal merchants: %w", err)
	}
	return merchants, nil
}
