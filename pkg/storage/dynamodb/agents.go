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

// GetAgent retrieves an agent by its id.
func (s *Store) GetAgent(ctx context.Context, agentID string) (*models.Agent, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Agents),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: agentID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("agent %s: %w", agentID, storage.ErrAgentNotFound)
	}

	agent := &models.Agent{}
	if err := attributevalue.UnmarshalMap(out.Item, agent); err != nil {
		return nil, fmt.Errorf("failed to unmarshal agent: %w", err)
	}
	return agent, nil
}

// ListActiveAgents retrieves all active agents, for proximity search.
func (s *Store) ListActiveAgents(ctx context.Context) ([]models.Agent, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(s.Tables.Agents),
		FilterExpression: aws.String("#status = :active"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":active": &types.AttributeValueMemberS{Value: models.AgentStatusActive},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan agents: %w", err)
	}

	agents := []models.Agent{}
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &agents); err != nil {
		return nil, fmt.Errorf("failed to unmarshal agents: %w", err)
	}
	return agents, nil
}

// SyncAgentWallet sets the agent's wallet balance to its cash balance and
// returns the synced balance. An agent without a wallet gets one created
// here, bound to the agent in the same atomic write.
func (s *Store) SyncAgentWallet(ctx context.Context, agentID string) (int64, error) {
	agent, err := s.GetAgent(ctx, agentID)
	if err != nil {
		return 0, err
	}
	if agent.Status != models.AgentStatusActive {
		return 0, storage.ErrAgentInactive
	}

	if agent.WalletId == "" {
		return agent.CashBalance, s.createSyncedAgentWallet(ctx, agent)
	}

	wallet, err := s.GetWallet(ctx, agent.WalletId)
	if err != nil {
		return 0, err
	}

	nowAV, err := attributevalue.Marshal(time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to marshal activity timestamp: %w", err)
	}

	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.Tables.Wallets),
		Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: wallet.Id}},
		UpdateExpression:    aws.String("SET balance = :balance, version = version + :inc, last_activity = :now"),
		ConditionExpression: aws.String("version = :version"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":balance": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", agent.CashBalance)},
			":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", wallet.Version)},
			":inc":     &types.AttributeValueMemberN{Value: "1"},
			":now":     nowAV,
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return 0, fmt.Errorf("wallet %s: %w", wallet.Id, storage.ErrStaleWallet)
		}
		return 0, fmt.Errorf("failed to sync agent wallet: %w", err)
	}

	return agent.CashBalance, nil
}

// createSyncedAgentWallet writes a fresh wallet seeded with the agent's cash
// balance and binds it to the agent.
func (s *Store) createSyncedAgentWallet(ctx context.Context, agent *models.Agent) error {
	now := time.Now().UTC()
	wallet := &models.Wallet{
		Id:           uuid.New().String(),
		OwnerType:    models.OwnerAgent,
		OwnerId:      agent.Id,
		Balance:      agent.CashBalance,
		Currency:     models.DefaultCurrency,
		IsActive:     true,
		Version:      1,
		LastActivity: now,
		CreatedAt:    now,
	}
	walletAV, err := attributevalue.MarshalMap(wallet)
	if err != nil {
		return fmt.Errorf("failed to marshal wallet: %w", err)
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(s.Tables.Wallets),
					Item:                walletAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
			{
				Update: &types.Update{
					TableName:           aws.String(s.Tables.Agents),
					Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: agent.Id}},
					UpdateExpression:    aws.String("SET wallet_id = :wallet_id"),
					ConditionExpression: aws.String("attribute_not_exists(wallet_id)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":wallet_id": &types.AttributeValueMemberS{Value: wallet.Id},
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create agent wallet: %w", err)
	}
	return nil
}
