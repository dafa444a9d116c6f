package storage

import (
	"context"

	"github.com/tazdani/wallet-platform/pkg/models"
)

// TransactionReader defines the interface for reading transaction history.
// Transactions are immutable after creation; there is no update path.
type TransactionReader interface {
	// GetTransaction retrieves a transaction by its id.
	GetTransaction(ctx context.Context, txID string) (*models.Transaction, error)

	// ListTransactionsByWallet retrieves all transactions in which the
	// wallet was the sender or the receiver, newest first.
	ListTransactionsByWallet(ctx context.Context, walletID string) ([]models.Transaction, error)
}
