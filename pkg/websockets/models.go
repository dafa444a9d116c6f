package websockets

// MessageType identifies what a pushed frame carries.
type MessageType string

const (
	// MessageTypeWalletUpdate carries a post-movement balance change.
	MessageTypeWalletUpdate MessageType = "walletUpdate"
)

// Message is the envelope for every frame pushed to clients.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// WalletUpdatePayload is the payload for a walletUpdate message. Change is
// negative for the debited wallet and positive for the credited one.
type WalletUpdatePayload struct {
	WalletId      string `json:"wallet_id"`
	TransactionId string `json:"transaction_id"`
	Change        int64  `json:"change"`
	NewBalance    int64  `json:"new_balance"`
}

// NewWalletUpdate wraps a wallet-update payload in a typed Message.
func NewWalletUpdate(walletID, transactionID string, change, newBalance int64) Message {
	return Message{
		Type: MessageTypeWalletUpdate,
		Payload: WalletUpdatePayload{
			WalletId:      walletID,
			TransactionId: transactionID,
			Change:        change,
			NewBalance:    newBalance,
		},
	}
}
