package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/tazdani/wallet-platform/pkg/events"
	"github.com/tazdani/wallet-platform/pkg/models"
	"github.com/tazdani/wallet-platform/pkg/pin"
	"github.com/tazdani/wallet-platform/pkg/storage"
)

// Shared building blocks for the four movement operations. Each movement
// assembles a single TransactWriteItems call from these pieces.

// movementReference builds the human-facing reference, e.g. "TRF1735689600000".
func movementReference(prefix string, now time.Time) string {
	return fmt.Sprintf("%s%d", prefix, now.UnixMilli())
}

// verifySenderAuthorization loads the wallet's owning profile and checks the
// PIN against its stored hash plus the profile-level wallet status. A PIN
// failure mutates nothing: it happens before any write is assembled.
func (s *Store) verifySenderAuthorization(ctx context.Context, wallet *models.Wallet, plainPin string) error {
	profile, err := s.GetProfile(ctx, wallet.OwnerId)
	if err != nil {
		return err
	}

	if profile.PinHash == "" {
		return storage.ErrPinNotSet
	}
	if !pin.Check(plainPin, profile.PinHash) {
		return storage.ErrInvalidPin
	}
	if profile.WalletStatus != models.WalletStatusActive {
		return storage.ErrWalletInactive
	}

	return nil
}

// debitWalletItem builds the sender-side update: balance down, version up,
// activity refreshed. The condition re-checks funds, the optimistic-lock
// version and the active flag at commit time, so a stale client-side read
// can never overdraw.
func (s *Store) debitWalletItem(wallet *models.Wallet, amount int64, now time.Time) (types.TransactWriteItem, error) {
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return types.TransactWriteItem{}, fmt.Errorf("failed to marshal activity timestamp: %w", err)
	}

	return types.TransactWriteItem{
		Update: &types.Update{
			TableName:           aws.String(s.Tables.Wallets),
			Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: wallet.Id}},
			UpdateExpression:    aws.String("SET balance = balance - :amount, version = version + :inc, last_activity = :now"),
			ConditionExpression: aws.String("balance >= :amount AND version = :version AND is_active = :active"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":amount":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", amount)},
				":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", wallet.Version)},
				":inc":     &types.AttributeValueMemberN{Value: "1"},
				":active":  &types.AttributeValueMemberBOOL{Value: true},
				":now":     nowAV,
			},
		},
	}, nil
}

// creditWalletItem builds the receiver-side update.
func (s *Store) creditWalletItem(wallet *models.Wallet, amount int64, now time.Time) (types.TransactWriteItem, error) {
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return types.TransactWriteItem{}, fmt.Errorf("failed to marshal activity timestamp: %w", err)
	}

	return types.TransactWriteItem{
		Update: &types.Update{
			TableName:           aws.String(s.Tables.Wallets),
			Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: wallet.Id}},
			UpdateExpression:    aws.String("SET balance = balance + :amount, version = version + :inc, last_activity = :now"),
			ConditionExpression: aws.String("version = :version"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":amount":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", amount)},
				":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", wallet.Version)},
				":inc":     &types.AttributeValueMemberN{Value: "1"},
				":now":     nowAV,
			},
		},
	}, nil
}

// putTransactionItem builds the transaction-record write.
func (s *Store) putTransactionItem(tx *models.Transaction) (types.TransactWriteItem, error) {
	txAV, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return types.TransactWriteItem{}, fmt.Errorf("failed to marshal transaction: %w", err)
	}

	return types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(s.Tables.Transactions),
			Item:                txAV,
			ConditionExpression: aws.String("attribute_not_exists(id)"),
		},
	}, nil
}

// ledgerItems builds the double-entry rows for a movement: one debit against
// the paying account, one credit to the receiving account, and a fee credit
// to the platform fee account when a fee applies.
func (s *Store) ledgerItems(tx *models.Transaction, debitAccount, creditAccount string, now time.Time) ([]types.TransactWriteItem, error) {
	entries := []models.LedgerEntry{
		{
			EntryId:       uuid.New().String(),
			TransactionId: tx.Id,
			AccountId:     debitAccount,
			Debit:         tx.Amount + tx.Fee,
			Description:   fmt.Sprintf("%s %s", tx.Type, tx.Reference),
			Timestamp:     now,
		},
		{
			EntryId:       uuid.New().String(),
			TransactionId: tx.Id,
			AccountId:     creditAccount,
			Credit:        tx.Amount,
			Description:   fmt.Sprintf("%s %s", tx.Type, tx.Reference),
			Timestamp:     now,
		},
	}
	if tx.Fee > 0 {
		entries = append(entries, models.LedgerEntry{
			EntryId:       uuid.New().String(),
			TransactionId: tx.Id,
			AccountId:     models.FeeAccountId,
			Credit:        tx.Fee,
			Description:   fmt.Sprintf("fee %s", tx.Reference),
			Timestamp:     now,
		})
	}

	items := make([]types.TransactWriteItem, 0, len(entries))
	for _, entry := range entries {
		entryAV, err := attributevalue.MarshalMap(entry)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal ledger entry: %w", err)
		}
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName:           aws.String(s.Tables.Ledger),
				Item:                entryAV,
				ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
			},
		})
	}

	return items, nil
}

// conditionFailureIndexes returns the TransactItems indexes whose condition
// checks failed, or nil when the error is not a cancelled transaction.
// Callers map indexes back to the items they assembled.
func conditionFailureIndexes(err error) []int {
	var txc *types.TransactionCanceledException
	if !errors.As(err, &txc) {
		return nil
	}

	var failed []int
	for i, reason := range txc.CancellationReasons {
		if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
			failed = append(failed, i)
		}
	}
	return failed
}

// publishEvent emits the post-commit transaction event. A publish failure is
// logged, never propagated: the movement has already committed.
func (s *Store) publishEvent(ctx context.Context, result *storage.MovementResult) {
	if s.Events == nil {
		return
	}

	ev := &events.TransactionEvent{
		Transaction:          result.Transaction,
		SenderBalanceAfter:   result.SenderBalanceAfter,
		ReceiverBalanceAfter: result.ReceiverBalanceAfter,
	}
	if err := s.Events.PublishTransactionEvent(ctx, ev); err != nil {
		log.Printf("CRITICAL: transaction %s committed but failed to publish event: %v", result.Transaction.Id, err)
	}
}

// checkSenderPreconditions runs the shared pre-write gate for a debiting
// wallet: active flag, PIN, per-operation limit, funds. Order matters: an
// authorization failure must be reported before a funds failure so a bad
// PIN never leaks balance information.
func (s *Store) checkSenderPreconditions(ctx context.Context, sender *models.Wallet, plainPin string, total int64) error {
	if !sender.IsActive {
		return storage.ErrWalletInactive
	}
	if err := s.verifySenderAuthorization(ctx, sender, plainPin); err != nil {
		return err
	}
	if sender.DailyLimit > 0 && total > sender.DailyLimit {
		return storage.ErrLimitExceeded
	}
	if sender.Balance < total {
		return storage.ErrInsufficientFunds
	}
	return nil
}
