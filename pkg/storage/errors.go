package storage

import "errors"

// Sentinel errors for the taxonomy handlers map to HTTP statuses.
// Storage implementations wrap these with context; callers match with errors.Is.

// ErrInsufficientFunds is returned when the sender's live balance cannot cover
// the amount plus fee. The server-side check is authoritative; any cached
// balance a client saw is advisory only.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInvalidPin is returned when the provided PIN does not match the sender
// profile's stored hash. No balance is mutated.
var ErrInvalidPin = errors.New("invalid pin")

// ErrPinNotSet is returned when the sender profile has no wallet PIN configured.
var ErrPinNotSet = errors.New("wallet pin is not set")

// ErrWalletNotFound is returned when a referenced wallet does not exist.
var ErrWalletNotFound = errors.New("wallet not found")

// ErrProfileNotFound is returned when a wallet has no owning profile record.
var ErrProfileNotFound = errors.New("profile not found")

// ErrWalletInactive is returned when the sender's wallet or profile wallet
// status is not active.
var ErrWalletInactive = errors.New("wallet is not active")

// ErrLimitExceeded is returned when a movement exceeds the sender wallet's
// configured daily limit.
var ErrLimitExceeded = errors.New("amount exceeds wallet limit")

// ErrAgentNotFound is returned when a referenced cash agent does not exist.
var ErrAgentNotFound = errors.New("agent not found")

// ErrAgentInactive is returned when the cash agent is not in active status.
var ErrAgentInactive = errors.New("agent is not active")

// ErrAgentInsufficientCash is returned when a withdrawal exceeds the agent's
// cash on hand.
var ErrAgentInsufficientCash = errors.New("agent does not have sufficient cash balance")

// ErrLinkNotFound is returned when a payment link does not exist.
var ErrLinkNotFound = errors.New("payment link not found")

// ErrLinkNotActive is returned when a payment link has already been used or
// manually deactivated. The link status flips inside the payment's atomic
// write, so a second payment attempt always fails here server-side.
var ErrLinkNotActive = errors.New("payment link is no longer active")

// ErrInvalidLinkPin is returned when a PIN-protected payment link is paid
// with a wrong or missing link PIN.
var ErrInvalidLinkPin = errors.New("invalid payment link pin")

// ErrLinkExpired is returned when a payment link's expiry timestamp has passed.
var ErrLinkExpired = errors.New("payment link has expired")

// ErrTransactionNotFound is returned when a transaction id is unknown.
var ErrTransactionNotFound = errors.New("transaction not found")

// ErrMerchantNotFound is returned when a referenced merchant does not exist.
var ErrMerchantNotFound = errors.New("merchant not found")

// ErrWalletExists is returned when creating a wallet for an owner that
// already has one.
var ErrWalletExists = errors.New("wallet already exists")

// ErrStaleWallet is returned when an optimistic-lock version check fails
// because a concurrent write moved the wallet first.
var ErrStaleWallet = errors.New("wallet was modified concurrently")
