// Package api defines the wire types for the HTTP surface. Handlers decode
// into these and map them to the domain models in pkg/models; the two sets
// evolve independently.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Wallet is the API representation of a wallet.
type Wallet struct {
	Id           string    `json:"id"`
	OwnerType    string    `json:"owner_type"`
	OwnerId      string    `json:"owner_id"`
	Balance      int64     `json:"balance"`
	Currency     string    `json:"currency"`
	DailyLimit   int64     `json:"daily_limit"`
	MonthlyLimit int64     `json:"monthly_limit"`
	IsActive     bool      `json:"is_active"`
	Version      int64     `json:"version"`
	LastActivity time.Time `json:"last_activity"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewWallet is the request body for creating a wallet.
type NewWallet struct {
	OwnerType    string `json:"owner_type"`
	OwnerId      string `json:"owner_id"`
	DailyLimit   *int64 `json:"daily_limit,omitempty"`
	MonthlyLimit *int64 `json:"monthly_limit,omitempty"`
}

// BalanceSnapshot is the cached balance read returned by the balance endpoint.
type BalanceSnapshot struct {
	WalletId      string    `json:"wallet_id"`
	Balance       int64     `json:"balance"`
	Currency      string    `json:"currency"`
	LastFetchedAt time.Time `json:"last_fetched_at"`
}

// Transaction is the API representation of a transaction record.
type Transaction struct {
	Id               string            `json:"id"`
	Type             string            `json:"type"`
	Amount           int64             `json:"amount"`
	Fee              int64             `json:"fee"`
	Currency         string            `json:"currency"`
	SenderWalletId   string            `json:"sender_wallet_id"`
	ReceiverWalletId string            `json:"receiver_wallet_id"`
	AgentId          string            `json:"agent_id,omitempty"`
	PaymentLinkId    string            `json:"payment_link_id,omitempty"`
	Status           string            `json:"status"`
	Reference        string            `json:"reference"`
	Metadata         map[string]string `json:"metadata,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

// NewTransfer is the request body for a wallet-to-wallet transfer.
type NewTransfer struct {
	SenderWalletId   string `json:"sender_wallet_id"`
	ReceiverWalletId string `json:"receiver_wallet_id"`
	Amount           int64  `json:"amount"`
	Pin              string `json:"pin"`
	Note             string `json:"note,omitempty"`
}

// NewPayment is the request body for a customer-to-merchant payment.
type NewPayment struct {
	SenderWalletId   string `json:"sender_wallet_id"`
	MerchantWalletId string `json:"merchant_wallet_id"`
	Amount           int64  `json:"amount"`
	Pin              string `json:"pin"`
	PaymentLinkId    string `json:"payment_link_id,omitempty"`
	LinkPin          string `json:"link_pin,omitempty"`
}

// NewCashMovement is the request body for an agent deposit or withdrawal.
type NewCashMovement struct {
	CustomerWalletId string `json:"customer_wallet_id"`
	AgentId          string `json:"agent_id"`
	Amount           int64  `json:"amount"`
	Pin              string `json:"pin"`
}

// MovementResult is the response for every successful movement. Balances are
// server-computed.
type MovementResult struct {
	Transaction          *Transaction `json:"transaction"`
	SenderBalanceAfter   int64        `json:"sender_balance_after"`
	ReceiverBalanceAfter int64        `json:"receiver_balance_after"`
	Replayed             bool         `json:"replayed,omitempty"`
}

// LedgerEntry is the API representation of a double-entry ledger row.
type LedgerEntry struct {
	EntryId       string    `json:"entry_id"`
	TransactionId string    `json:"transaction_id"`
	AccountId     string    `json:"account_id"`
	Debit         *int64    `json:"debit,omitempty"`
	Credit        *int64    `json:"credit,omitempty"`
	Description   string    `json:"description"`
	Timestamp     time.Time `json:"timestamp"`
}

// PaymentLink is the API representation of a merchant payment link. The PIN
// gate, when set, is never serialized back out.
type PaymentLink struct {
	Id           string     `json:"id"`
	LinkId       string     `json:"link_id"`
	MerchantId   string     `json:"merchant_id"`
	Amount       int64      `json:"amount"`
	Currency     string     `json:"currency"`
	Description  string     `json:"description,omitempty"`
	Status       string     `json:"status"`
	PinProtected bool       `json:"pin_protected"`
	Expiry       *time.Time `json:"expiry,omitempty"`
	ShareUrl     string     `json:"share_url,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewPaymentLink is the request body for creating a payment link.
type NewPaymentLink struct {
	MerchantId  string     `json:"merchant_id"`
	Amount      int64      `json:"amount"`
	Description string     `json:"description,omitempty"`
	Pin         string     `json:"pin,omitempty"`
	Expiry      *time.Time `json:"expiry,omitempty"`
}

// PayLinkRequest is the request body for paying a payment link.
type PayLinkRequest struct {
	SenderWalletId string `json:"sender_wallet_id"`
	Pin            string `json:"pin"`
	LinkPin        string `json:"link_pin,omitempty"`
}

// NewProfile is the request body for actor signup. The wallet is created in
// the same write as the profile.
type NewProfile struct {
	Type        string               `json:"type"`
	DisplayName string               `json:"display_name"`
	Phone       string               `json:"phone,omitempty"`
	Email       *openapi_types.Email `json:"email,omitempty"`
	Pin         string               `json:"pin,omitempty"`
}

// Profile is the API representation of an actor profile. The PIN hash never
// leaves the storage layer.
type Profile struct {
	Id           string    `json:"id"`
	Type         string    `json:"type"`
	DisplayName  string    `json:"display_name"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	WalletId     string    `json:"wallet_id"`
	WalletStatus string    `json:"wallet_status"`
	CreatedAt    time.Time `json:"created_at"`
}

// SetPinRequest is the request body for setting or changing a wallet PIN.
type SetPinRequest struct {
	Pin string `json:"pin"`
}

// NearbyEntry is one agent or merchant returned by a proximity search,
// sorted ascending by distance.
type NearbyEntry struct {
	Id         string  `json:"id"`
	Name       string  `json:"name"`
	Address    string  `json:"address,omitempty"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DistanceKm float64 `json:"distance_km"`
}

// SyncWalletResponse is returned by the agent wallet sync operation.
type SyncWalletResponse struct {
	Success bool  `json:"success"`
	Balance int64 `json:"balance"`
}
