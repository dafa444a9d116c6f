package models

import (
	"time"
)

// All monetary amounts are int64 dirhams (1/1000 LYD). See pkg/money.

// DefaultCurrency is the only currency the platform currently moves.
const DefaultCurrency = "LYD"

// OwnerType identifies which actor a wallet belongs to. A wallet has exactly one owner.
type OwnerType string

const (
	OwnerCustomer OwnerType = "customer"
	OwnerMerchant OwnerType = "merchant"
	OwnerAgent    OwnerType = "agent"
	OwnerCaptain  OwnerType = "captain"
	OwnerEmployer OwnerType = "employer"
)

// Valid reports whether the owner type is one of the known actor types.
func (t OwnerType) Valid() bool {
	switch t {
	case OwnerCustomer, OwnerMerchant, OwnerAgent, OwnerCaptain, OwnerEmployer:
		return true
	}
	return false
}

// TransactionType defines the kind of money movement a transaction records.
type TransactionType string

const (
	TypeDeposit    TransactionType = "deposit"
	TypeWithdrawal TransactionType = "withdrawal"
	TypeTransfer   TransactionType = "transfer"
	TypePayment    TransactionType = "payment"
)

// TransactionStatus defines the possible states of a transaction.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

// PaymentLinkStatus defines the lifecycle of a merchant payment link.
type PaymentLinkStatus string

const (
	LinkActive  PaymentLinkStatus = "active"
	LinkUsed    PaymentLinkStatus = "used"
	LinkExpired PaymentLinkStatus = "expired"
)

// Wallet is the balance-holding account for a single actor.
// The balance is only ever mutated by the movement operations (transfer,
// payment, deposit, withdrawal); wallets are never hard-deleted in production
// flows. Version is bumped on every write for optimistic locking.
type Wallet struct {
	Id           string    `json:"id" dynamodbav:"id"`
	OwnerType    OwnerType `json:"owner_type" dynamodbav:"owner_type"`
	OwnerId      string    `json:"owner_id" dynamodbav:"owner_id"`
	Balance      int64     `json:"balance" dynamodbav:"balance"`
	Currency     string    `json:"currency" dynamodbav:"currency"`
	DailyLimit   int64     `json:"daily_limit" dynamodbav:"daily_limit"`
	MonthlyLimit int64     `json:"monthly_limit" dynamodbav:"monthly_limit"`
	IsActive     bool      `json:"is_active" dynamodbav:"is_active"`
	Version      int64     `json:"version" dynamodbav:"version"`
	LastActivity time.Time `json:"last_activity" dynamodbav:"last_activity"`
	CreatedAt    time.Time `json:"created_at" dynamodbav:"created_at"`
}

// Transaction is the immutable record of one money-movement attempt.
// Exactly one is written per successful movement, in the same atomic write
// that moves the balances, so a completed transaction always reflects a
// completed movement.
type Transaction struct {
	Id               string            `dynamodbav:"id"`
	Type             TransactionType   `dynamodbav:"type"`
	Amount           int64             `dynamodbav:"amount"`
	Fee              int64             `dynamodbav:"fee"`
	Currency         string            `dynamodbav:"currency"`
	SenderWalletId   string            `dynamodbav:"sender_wallet_id"`
	ReceiverWalletId string            `dynamodbav:"receiver_wallet_id"`
	AgentId          string            `dynamodbav:"agent_id,omitempty"`
	PaymentLinkId    string            `dynamodbav:"payment_link_id,omitempty"`
	Status           TransactionStatus `dynamodbav:"status"`
	Reference        string            `dynamodbav:"reference"`
	Metadata         map[string]string `dynamodbav:"metadata,omitempty"`
	CreatedAt        time.Time         `dynamodbav:"created_at"`
}

// LedgerEntry is a single row in the double-entry ledger. Every movement
// writes one debit and one credit entry (plus a fee credit when a fee
// applies) in the same transaction that moves the balances.
type LedgerEntry struct {
	EntryId       string    `dynamodbav:"entry_id"`
	TransactionId string    `dynamodbav:"transaction_id"`
	AccountId     string    `dynamodbav:"account_id"`
	Debit         int64     `dynamodbav:"debit,omitempty"`
	Credit        int64     `dynamodbav:"credit,omitempty"`
	Description   string    `dynamodbav:"description"`
	Timestamp     time.Time `dynamodbav:"timestamp"`
}

// FeeAccountId is the internal account credited with movement fees in the ledger.
const FeeAccountId = "platform-fees"

// PaymentLink is a merchant-generated, shareable reference entitling a payer
// to move a fixed amount to the merchant's wallet. Consumed at most once:
// paying it flips status active -> used inside the payment's atomic write.
type PaymentLink struct {
	Id          string            `dynamodbav:"id"`
	LinkId      string            `dynamodbav:"link_id"`
	MerchantId  string            `dynamodbav:"merchant_id"`
	Amount      int64             `dynamodbav:"amount"`
	Currency    string            `dynamodbav:"currency"`
	Description string            `dynamodbav:"description,omitempty"`
	Pin         string            `dynamodbav:"pin,omitempty"`
	Status      PaymentLinkStatus `dynamodbav:"status"`
	Expiry      *time.Time        `dynamodbav:"expiry,omitempty"`
	CreatedAt   time.Time         `dynamodbav:"created_at"`
}

// Expired reports whether the link's expiry timestamp has passed.
// Links without an expiry never expire by time.
func (l *PaymentLink) Expired(now time.Time) bool {
	return l.Expiry != nil && l.Expiry.Before(now)
}

// Profile is the identity record for an actor. It owns exactly one wallet,
// created in the same write as the profile at signup. The wallet PIN hash
// lives here, not on the wallet: the sender's owning profile is the
// authority for authorizing movements.
type Profile struct {
	Id           string    `dynamodbav:"id"`
	Type         OwnerType `dynamodbav:"type"`
	DisplayName  string    `dynamodbav:"display_name"`
	Phone        string    `dynamodbav:"phone,omitempty"`
	Email        string    `dynamodbav:"email,omitempty"`
	WalletId     string    `dynamodbav:"wallet_id"`
	PinHash      string    `dynamodbav:"pin_hash,omitempty"`
	WalletStatus string    `dynamodbav:"wallet_status"`
	CreatedAt    time.Time `dynamodbav:"created_at"`
}

// WalletStatusActive is the profile-level wallet status required for any movement.
const WalletStatusActive = "active"

// Location is a geographic point with an optional human-readable address.
type Location struct {
	Latitude  float64 `json:"latitude" dynamodbav:"latitude"`
	Longitude float64 `json:"longitude" dynamodbav:"longitude"`
	Address   string  `json:"address,omitempty" dynamodbav:"address,omitempty"`
}

// Agent is a cash-in/cash-out point. Its cash balance tracks physical cash
// on hand; its wallet balance is kept in sync with it after every deposit
// and withdrawal.
type Agent struct {
	Id          string    `dynamodbav:"id"`
	Name        string    `dynamodbav:"name"`
	Status      string    `dynamodbav:"status"`
	CashBalance int64     `dynamodbav:"cash_balance"`
	WalletId    string    `dynamodbav:"wallet_id,omitempty"`
	Location    *Location `dynamodbav:"location,omitempty"`
	CreatedAt   time.Time `dynamodbav:"created_at"`
}

// AgentStatusActive is the agent status required for cash movements.
const AgentStatusActive = "active"

// Merchant is a payment-accepting business with its own wallet. The slug is
// used to compose shareable payment-link URLs.
type Merchant struct {
	Id        string    `dynamodbav:"id"`
	Name      string    `dynamodbav:"name"`
	Slug      string    `dynamodbav:"slug"`
	Status    string    `dynamodbav:"status"`
	WalletId  string    `dynamodbav:"wallet_id"`
	Location  *Location `dynamodbav:"location,omitempty"`
	CreatedAt time.Time `dynamodbav:"created_at"`
}
