package dynamodb

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/tazdani/wallet-platform/pkg/models"
	"github.com/tazdani/wallet-platform/pkg/storage"
)

const (
	senderWalletIndex   = "sender_wallet_id-index"
	receiverWalletIndex = "receiver_wallet_id-index"
)

// GetTransaction retrieves a transaction by its id.
func (s *Store) GetTransaction(ctx context.Context, txID string) (*models.Transaction, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Transactions),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: txID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("transaction %s: %w", txID, storage.ErrTransactionNotFound)
	}

	tx := &models.Transaction{}
	if err := attributevalue.UnmarshalMap(out.Item, tx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
	}
	return tx, nil
}

// ListTransactionsByWallet retrieves all transactions in which the wallet was
// the sender or the receiver, newest first. The two GSI queries are merged
// in memory; a transaction appears once even when a wallet somehow pays
// itself.
func (s *Store) ListTransactionsByWallet(ctx context.Context, walletID string) ([]models.Transaction, error) {
	sent, err := s.queryTransactionsByIndex(ctx, senderWalletIndex, "sender_wallet_id", walletID)
	if err != nil {
		return nil, err
	}
	received, err := s.queryTransactionsByIndex(ctx, receiverWalletIndex, "receiver_wallet_id", walletID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(sent))
	merged := make([]models.Transaction, 0, len(sent)+len(received))
	for _, tx := range sent {
		seen[tx.Id] = true
		merged = append(merged, tx)
	}
	for _, tx := range received {
		if !seen[tx.Id] {
			merged = append(merged, tx)
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	return merged, nil
}

func (s *Store) queryTransactionsByIndex(ctx context.Context, index, keyAttr, walletID string) ([]models.Transaction, error) {
	out, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Transactions),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String(fmt.Sprintf("%s = :wallet_id", keyAttr)),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":wallet_id": &types.AttributeValueMemberS{Value: walletID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by %s: %w", keyAttr, err)
	}

	transactions := []models.Transaction{}
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &transactions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transactions: %w", err)
	}
	return transactions, nil
}
