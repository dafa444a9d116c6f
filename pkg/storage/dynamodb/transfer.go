package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/tazdani/wallet-platform/pkg/models"
	"github.com/tazdani/wallet-platform/pkg/storage"
)

// Transfer moves funds between two wallets in one TransactWriteItems call:
// sender debit, receiver credit, transaction record, ledger rows and the
// idempotency record all commit or none do.
func (s *Store) Transfer(ctx context.Context, params storage.TransferParams) (*storage.MovementResult, error) {
	if replay, err := s.lookupIdempotencyKey(ctx, params.IdempotencyKey); err != nil {
		return nil, err
	} else if replay != nil {
		return replay, nil
	}

	sender, err := s.GetWallet(ctx, params.SenderWalletId)
	if err != nil {
		return nil, err
	}
	receiver, err := s.GetWallet(ctx, params.ReceiverWalletId)
	if err != nil {
		return nil, err
	}
	if !receiver.IsActive {
		return nil, storage.ErrWalletInactive
	}

	fee := s.Fees.TransferFee(params.Amount)
	total := params.Amount + fee
	if err := s.checkSenderPreconditions(ctx, sender, params.Pin, total); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tx := &models.Transaction{
		Id:               uuid.New().String(),
		Type:             models.TypeTransfer,
		Amount:           params.Amount,
		Fee:              fee,
		Currency:         sender.Currency,
		SenderWalletId:   sender.Id,
		ReceiverWalletId: receiver.Id,
		Status:           models.StatusCompleted,
		Reference:        movementReference("TRF", now),
		CreatedAt:        now,
	}
	if params.Note != "" {
		tx.Metadata = map[string]string{"note": params.Note}
	}

	debit, err := s.debitWalletItem(sender, total, now)
	if err != nil {
		return nil, err
	}
	credit, err := s.creditWalletItem(receiver, params.Amount, now)
	if err != nil {
		return nil, err
	}
	txItem, err := s.putTransactionItem(tx)
	if err != nil {
		return nil, err
	}
	ledger, err := s.ledgerItems(tx, sender.Id, receiver.Id, now)
	if err != nil {
		return nil, err
	}

	senderAfter := sender.Balance - total
	receiverAfter := receiver.Balance + params.Amount

	items := []types.TransactWriteItem{debit, credit, txItem}
	items = append(items, ledger...)
	dedup, err := s.idempotencyItem(params.IdempotencyKey, tx.Id, senderAfter, receiverAfter, now)
	if err != nil {
		return nil, err
	}
	if dedup != nil {
		items = append(items, *dedup)
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		for _, idx := range conditionFailureIndexes(err) {
			if idx == 0 {
				// The debit condition re-checks both funds and version; a
				// concurrent write bumping the version surfaces the same way.
				return nil, storage.ErrInsufficientFunds
			}
		}
		return nil, fmt.Errorf("failed to commit transfer: %w", err)
	}

	result := &storage.MovementResult{
		Transaction:          tx,
		SenderBalanceAfter:   senderAfter,
		ReceiverBalanceAfter: receiverAfter,
	}
	s.publishEvent(ctx, result)
	return result, nil
}
