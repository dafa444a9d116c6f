package storage

import (
	"context"

	"github.com/tazdani/wallet-platform/pkg/models"
)

// LedgerReader defines the interface for reading the double-entry ledger.
// Every movement writes a debit row, a credit row and, when a fee applies,
// a fee row; this reads them back newest first.
type LedgerReader interface {
	// ListLedgerEntries retrieves the most recent ledger entries.
	ListLedgerEntries(ctx context.Context, limit int32) ([]models.LedgerEntry, error)
}
