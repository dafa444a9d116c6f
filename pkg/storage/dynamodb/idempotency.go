package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/tazdani/wallet-platform/pkg/storage"
)

// idempotencyTTL bounds how long a replayed key returns the original result.
const idempotencyTTL = 24 * time.Hour

// idempotencyRecord pins a client key to the movement it first produced.
// The record is written inside the same TransactWriteItems as the movement,
// so a key either maps to a committed transaction or to nothing.
type idempotencyRecord struct {
	KeyId                string `dynamodbav:"key_id"`
	TransactionId        string `dynamodbav:"transaction_id"`
	SenderBalanceAfter   int64  `dynamodbav:"sender_balance_after"`
	ReceiverBalanceAfter int64  `dynamodbav:"receiver_balance_after"`
	Ttl                  int64  `dynamodbav:"ttl"`
}

// lookupIdempotencyKey returns the original movement result for a previously
// seen key, or nil when the key is unseen (or blank).
func (s *Store) lookupIdempotencyKey(ctx context.Context, key string) (*storage.MovementResult, error) {
	if key == "" {
		return nil, nil
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Idempotency),
		Key: map[string]types.AttributeValue{
			"key_id": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get idempotency record: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	record := &idempotencyRecord{}
	if err := attributevalue.UnmarshalMap(out.Item, record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal idempotency record: %w", err)
	}

	tx, err := s.GetTransaction(ctx, record.TransactionId)
	if err != nil {
		return nil, fmt.Errorf("failed to load original transaction for replayed key: %w", err)
	}

	return &storage.MovementResult{
		Transaction:          tx,
		SenderBalanceAfter:   record.SenderBalanceAfter,
		ReceiverBalanceAfter: record.ReceiverBalanceAfter,
		Replayed:             true,
	}, nil
}

// idempotencyItem builds the dedup write for a movement's transaction. Key
// may be blank, in which case no item is produced.
func (s *Store) idempotencyItem(key, transactionId string, senderAfter, receiverAfter int64, now time.Time) (*types.TransactWriteItem, error) {
	if key == "" {
		return nil, nil
	}

	record := idempotencyRecord{
		KeyId:                key,
		TransactionId:        transactionId,
		SenderBalanceAfter:   senderAfter,
		ReceiverBalanceAfter: receiverAfter,
		Ttl:                  now.Add(idempotencyTTL).Unix(),
	}
	recordAV, err := attributevalue.MarshalMap(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal idempotency record: %w", err)
	}

	return &types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(s.Tables.Idempotency),
			Item:                recordAV,
			ConditionExpression: aws.String("attribute_not_exists(key_id)"),
		},
	}, nil
}
