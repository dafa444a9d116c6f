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
	"github.com/tazdani/wallet-platform/pkg/storage"
)

// Deposit credits a customer wallet with cash handed to an agent. The wallet
// credit and the agent's cash-balance increment commit atomically with the
// transaction record, so the books and the cash drawer never diverge.
func (s *Store) Deposit(ctx context.Context, params storage.CashParams) (*storage.MovementResult, error) {
	if replay, err := s.lookupIdempotencyKey(ctx, params.IdempotencyKey); err != nil {
		return nil, err
	} else if replay != nil {
		return replay, nil
	}

	wallet, agent, err := s.loadCashParties(ctx, params)
	if err != nil {
		return nil, err
	}
	if !wallet.IsActive {
		return nil, storage.ErrWalletInactive
	}
	if err := s.verifySenderAuthorization(ctx, wallet, params.Pin); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tx := s.cashTransaction(models.TypeDeposit, "DEP", wallet, agent, params.Amount, now)

	credit, err := s.creditWalletItem(wallet, params.Amount, now)
	if err != nil {
		return nil, err
	}
	txItem, err := s.putTransactionItem(tx)
	if err != nil {
		return nil, err
	}
	ledger, err := s.ledgerItems(tx, agent.Id, wallet.Id, now)
	if err != nil {
		return nil, err
	}

	balanceAfter := wallet.Balance + params.Amount

	items := []types.TransactWriteItem{credit, s.agentCashItem(agent, params.Amount, false)}
	items = append(items, txItem)
	items = append(items, ledger...)
	dedup, err := s.idempotencyItem(params.IdempotencyKey, tx.Id, balanceAfter, balanceAfter, now)
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
		return nil, fmt.Errorf("failed to commit deposit: %w", err)
	}

	result := &storage.MovementResult{
		Transaction:          tx,
		SenderBalanceAfter:   balanceAfter,
		ReceiverBalanceAfter: balanceAfter,
	}
	s.publishEvent(ctx, result)
	return result, nil
}

// Withdraw debits a customer wallet for cash handed out by an agent. The
// agent's cash balance decrements in the same write, conditioned on the
// drawer actually holding enough cash.
func (s *Store) Withdraw(ctx context.Context, params storage.CashParams) (*storage.MovementResult, error) {
	if replay, err := s.lookupIdempotencyKey(ctx, params.IdempotencyKey); err != nil {
		return nil, err
	} else if replay != nil {
		return replay, nil
	}

	wallet, agent, err := s.loadCashParties(ctx, params)
	if err != nil {
		return nil, err
	}
	if err := s.checkSenderPreconditions(ctx, wallet, params.Pin, params.Amount); err != nil {
		return nil, err
	}
	if agent.CashBalance < params.Amount {
		return nil, storage.ErrAgentInsufficientCash
	}

	now := time.Now().UTC()
	tx := s.cashTransaction(models.TypeWithdrawal, "WDR", wallet, agent, params.Amount, now)

	debit, err := s.debitWalletItem(wallet, params.Amount, now)
	if err != nil {
		return nil, err
	}
	txItem, err := s.putTransactionItem(tx)
	if err != nil {
		return nil, err
	}
	ledger, err := s.ledgerItems(tx, wallet.Id, agent.Id, now)
	if err != nil {
		return nil, err
	}

	balanceAfter := wallet.Balance - params.Amount

	items := []types.TransactWriteItem{debit, s.agentCashItem(agent, params.Amount, true)}
	items = append(items, txItem)
	items = append(items, ledger...)
	dedup, err := s.idempotencyItem(params.IdempotencyKey, tx.Id, balanceAfter, balanceAfter, now)
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
			case 1:
				return nil, storage.ErrAgentInsufficientCash
			}
		}
		return nil, fmt.Errorf("failed to commit withdrawal: %w", err)
	}

	result := &storage.MovementResult{
		Transaction:          tx,
		SenderBalanceAfter:   balanceAfter,
		ReceiverBalanceAfter: balanceAfter,
	}
	s.publishEvent(ctx, result)
	return result, nil
}

// loadCashParties fetches the customer wallet and an active agent for a cash
// movement.
func (s *Store) loadCashParties(ctx context.Context, params storage.CashParams) (*models.Wallet, *models.Agent, error) {
	wallet, err := s.GetWallet(ctx, params.CustomerWalletId)
	if err != nil {
		return nil, nil, err
	}
	agent, err := s.GetAgent(ctx, params.AgentId)
	if err != nil {
		return nil, nil, err
	}
	if agent.Status != models.AgentStatusActive {
		return nil, nil, storage.ErrAgentInactive
	}
	return wallet, agent, nil
}

// cashTransaction builds the transaction record for a cash movement. Cash
// movements carry no fee.
func (s *Store) cashTransaction(txType models.TransactionType, refPrefix string, wallet *models.Wallet, agent *models.Agent, amount int64, now time.Time) *models.Transaction {
	tx := &models.Transaction{
		Id:        uuid.New().String(),
		Type:      txType,
		Amount:    amount,
		Currency:  wallet.Currency,
		AgentId:   agent.Id,
		Status:    models.StatusCompleted,
		Reference: movementReference(refPrefix, now),
		CreatedAt: now,
	}
	if txType == models.TypeDeposit {
		tx.ReceiverWalletId = wallet.Id
	} else {
		tx.SenderWalletId = wallet.Id
	}
	return tx
}

// agentCashItem builds the agent cash-drawer update. Withdrawals condition
// on the drawer holding enough cash at commit time.
func (s *Store) agentCashItem(agent *models.Agent, amount int64, debit bool) types.TransactWriteItem {
	update := &types.Update{
		TableName: aws.String(s.Tables.Agents),
		Key:       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: agent.Id}},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":amount": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", amount)},
			":active": &types.AttributeValueMemberS{Value: models.AgentStatusActive},
		},
	}
	if debit {
		update.UpdateExpression = aws.String("SET cash_balance = cash_balance - :amount")
		update.ConditionExpression = aws.String("cash_balance >= :amount AND #status = :active")
	} else {
		update.UpdateExpression = aws.String("SET cash_balance = cash_balance + :amount")
		update.ConditionExpression = aws.String("#status = :active")
	}
	update.ExpressionAttributeNames = map[string]string{"#status": "status"}

	return types.TransactWriteItem{Update: update}
}
