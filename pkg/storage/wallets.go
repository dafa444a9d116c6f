package storage

import (
	"context"

	"github.com/tazdani/wallet-platform/pkg/models"
)

// WalletStore defines the interface for managing wallets.
type WalletStore interface {
	// GetWallet retrieves a wallet by its id.
	GetWallet(ctx context.Context, walletID string) (*models.Wallet, error)

	// GetWalletByOwner retrieves the wallet belonging to an actor, for the
	// public balance lookup.
	GetWalletByOwner(ctx context.Context, ownerType models.OwnerType, ownerID string) (*models.Wallet, error)

	// CreateWallet creates a new wallet. Fails with ErrWalletExists when the
	// wallet id is already taken.
	CreateWallet(ctx context.Context, wallet *models.Wallet) (*models.Wallet, error)

	// DeleteWallet removes a wallet. Only used by operational tooling; the
	// production flows never hard-delete.
	DeleteWallet(ctx context.Context, walletID string) error

	// ListWallets retrieves all wallets.
	ListWallets(ctx context.Context) ([]models.Wallet, error)
}
