package storage

// ApiStore defines the complete set of operations needed by the HTTP API.
// Components should depend on the more granular interfaces (MovementStore,
// WalletStore, etc.) instead of this one.
type ApiStore interface {
	WalletStore
	MovementStore
	TransactionReader
	PaymentLinkStore
	ProfileStore
	AgentStore
	MerchantStore
	LedgerReader
}

// Storage defines the root interface for the entire data layer, including
// the connection tracking used by the push path.
type Storage interface {
	ApiStore
	ConnectionStore
}
