package events

import (
	"context"

	"github.com/tazdani/wallet-platform/pkg/models"
)

// TransactionEvent is emitted after a movement commits. Balances are the
// server-computed values from the committed write.
type TransactionEvent struct {
	Transaction          *models.Transaction `json:"transaction"`
	SenderBalanceAfter   int64               `json:"sender_balance_after"`
	ReceiverBalanceAfter int64               `json:"receiver_balance_after"`
}

// Publisher defines the interface for emitting transaction events to the
// notification pipeline. Publishing happens after the storage commit; a
// publish failure never rolls the movement back.
type Publisher interface {
	PublishTransactionEvent(ctx context.Context, ev *TransactionEvent) error
}
