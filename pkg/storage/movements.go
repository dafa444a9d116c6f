package storage

import (
	"context"

	"github.com/tazdani/wallet-platform/pkg/models"
)

// TransferParams describes a wallet-to-wallet transfer attempt. Pin has
// already been shape-checked by the caller; the store verifies it against
// the sender profile's hash.
type TransferParams struct {
	SenderWalletId   string
	ReceiverWalletId string
	Amount           int64
	Pin              string
	Note             string

	// IdempotencyKey, when non-empty, dedupes retries: a replay within the
	// dedup window returns the originally created transaction instead of
	// moving money twice.
	IdempotencyKey string
}

// PaymentParams describes a customer-to-merchant payment, optionally
// consuming a payment link.
type PaymentParams struct {
	SenderWalletId   string
	MerchantWalletId string
	Amount           int64
	Pin              string
	PaymentLinkId    string

	// LinkPin is the claim code for a PIN-protected link. It gates access
	// to the link only; the sender's wallet PIN is always verified too.
	LinkPin        string
	IdempotencyKey string
}

// CashParams describes an agent-mediated cash deposit or withdrawal against
// a customer wallet.
type CashParams struct {
	CustomerWalletId string
	AgentId          string
	Amount           int64
	Pin              string
	IdempotencyKey   string
}

// MovementResult is returned by every successful movement. The balances are
// computed server-side from the authoritative pre-movement reads; clients
// must never supply them.
type MovementResult struct {
	Transaction          *models.Transaction
	SenderBalanceAfter   int64
	ReceiverBalanceAfter int64

	// Replayed is true when an idempotency key matched a previous movement
	// and no new money was moved.
	Replayed bool
}

// MovementStore defines the balance-changing operations. Each call performs
// its debit, credit, transaction record, ledger rows and any link/dedup
// writes in one atomic storage transaction: there is no observable state in
// which the debit applied but the credit or record did not.
type MovementStore interface {
	// Transfer moves funds between two wallets (P2P).
	Transfer(ctx context.Context, params TransferParams) (*MovementResult, error)

	// Pay moves funds from a customer wallet to a merchant wallet,
	// consuming the payment link when one is supplied.
	Pay(ctx context.Context, params PaymentParams) (*MovementResult, error)

	// Deposit credits a customer wallet with cash handed to an agent and
	// increments the agent's cash balance.
	Deposit(ctx context.Context, params CashParams) (*MovementResult, error)

	// Withdraw debits a customer wallet for cash handed out by an agent and
	// decrements the agent's cash balance.
	Withdraw(ctx context.Context, params CashParams) (*MovementResult, error)
}
