package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/tazdani/wallet-platform/pkg/models"
	"github.com/tazdani/wallet-platform/pkg/pin"
	"github.com/tazdani/wallet-platform/pkg/storage"
)

// Pay moves funds from a customer wallet to a merchant wallet. When a
// payment link is supplied the link fixes the amount and the merchant, and
// the link flips to used inside the same atomic write that moves the money,
// so a link can never be paid twice.
func (s *Store) Pay(ctx context.Context, params storage.PaymentParams) (*storage.MovementResult, error) {
	if replay, err := s.lookupIdempotencyKey(ctx, params.IdempotencyKey); err != nil {
		return nil, err
	} else if replay != nil {
		return replay, nil
	}

	now := time.Now().UTC()
	amount := params.Amount
	merchantWalletId := params.MerchantWalletId

	var link *models.PaymentLink
	if params.PaymentLinkId != "" {
		var err error
		link, err = s.getPaymentLink(ctx, params.PaymentLinkId)
		if err != nil {
			return nil, err
		}
		if link.Expired(now) {
			// Lazy expiry: flip the record now so later reads agree.
			if err := s.ExpirePaymentLink(ctx, link.Id); err != nil {
				return nil, err
			}
			return nil, storage.ErrLinkExpired
		}
		if link.Status != models.LinkActive {
			return nil, storage.ErrLinkNotActive
		}
		if link.Pin != "" && !pin.Check(params.LinkPin, link.Pin) {
			return nil, storage.ErrInvalidLinkPin
		}

		amount = link.Amount
		merchant, err := s.GetMerchant(ctx, link.MerchantId)
		if err != nil {
			return nil, err
		}
		merchantWalletId = merchant.WalletId
	}

	sender, err := s.GetWallet(ctx, params.SenderWalletId)
	if err != nil {
		return nil, err
	}
	receiver, err := s.GetWallet(ctx, merchantWalletId)
	if err != nil {
		return nil, err
	}
	if !receiver.IsActive {
		return nil, storage.ErrWalletInactive
	}

	fee := s.Fees.PaymentFee(amount)
	total := amount + fee
	if err := s.checkSenderPreconditions(ctx, sender, params.Pin, total); err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		Id:               uuid.New().String(),
		Type:             models.TypePayment,
		Amount:           amount,
		Fee:              fee,
		Currency:         sender.Currency,
		SenderWalletId:   sender.Id,
		ReceiverWalletId: receiver.Id,
		Status:           models.StatusCompleted,
		Reference:        movementReference("PAY", now),
		CreatedAt:        now,
	}
	if link != nil {
		tx.PaymentLinkId = link.Id
	}

	debit, err := s.debitWalletItem(sender, total, now)
	if err != nil {
		return nil, err
	}
	credit, err := s.creditWalletItem(receiver, amount, now)
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
	receiverAfter := receiver.Balance + amount

	items := []types.TransactWriteItem{debit, credit, txItem}
	items = append(items, ledger...)

	linkItemIdx := -1
	if link != nil {
		linkItemIdx = len(items)
		items = append(items, types.TransactWriteItem{
			Update: &types.Update{
				TableName:           aws.String(s.Tables.PaymentLinks),
				Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: link.Id}},
				UpdateExpression:    aws.String("SET #status = :used"),
				ConditionExpression: aws.String("#status = :active"),
				ExpressionAttributeNames: map[string]string{
					"#status": "status",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":used":   &types.AttributeValueMemberS{Value: string(models.LinkUsed)},
					":active": &types.AttributeValueMemberS{Value: string(models.LinkActive)},
				},
			},
		})
	}

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
			switch idx {
			case 0:
				return nil, storage.ErrInsufficientFunds
			case linkItemIdx:
				return nil, storage.ErrLinkNotActive
			}
		}
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	result := &storage.MovementResult{
		Transaction:          tx,
		SenderBalanceAfter:   senderAfter,
		ReceiverBalanceAfter: receiverAfter,
	}
	s.publishEvent(ctx, result)
	return result, nil
}
