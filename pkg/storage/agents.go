package storage

import (
	"context"

	"github.com/tazdani/wallet-platform/pkg/models"
)

// AgentStore defines the interface for cash agents.
type AgentStore interface {
	// GetAgent retrieves an agent by its id.
	GetAgent(ctx context.Context, agentID string) (*models.Agent, error)

	// ListActiveAgents retrieves all active agents, for proximity search.
	ListActiveAgents(ctx context.Context) ([]models.Agent, error)

	// SyncAgentWallet sets the agent's wallet balance to its cash balance
	// and returns the synced balance, creating the wallet if the agent does
	// not have one yet. Deposits and withdrawals move the cash drawer only;
	// this is the reconciliation step.
	SyncAgentWallet(ctx context.Context, agentID string) (int64, error)
}

// MerchantStore defines the interface for merchants.
type MerchantStore interface {
	// GetMerchant retrieves a merchant by its id.
	GetMerchant(ctx context.Context, merchantID string) (*models.Merchant, error)

	// ListActiveMerchants retrieves all active merchants, for proximity search.
	ListActiveMerchants(ctx context.Context) ([]models.Merchant, error)
}
