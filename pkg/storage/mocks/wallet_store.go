package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tazdani/wallet-platform/pkg/models"
)

// WalletStore is a mock implementation of storage.WalletStore.
type WalletStore struct {
	mock.Mock
}

func (_m *WalletStore) GetWallet(ctx context.Context, walletID string) (*models.Wallet, error) {
	ret := _m.Called(ctx, walletID)

	var r0 *models.Wallet
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Wallet)
	}
	return r0, ret.Error(1)
}

func (_m *WalletStore) GetWalletByOwner(ctx context.Context, ownerType models.OwnerType, ownerID string) (*models.Wallet, error) {
	ret := _m.Called(ctx, ownerType, ownerID)

	var r0 *models.Wallet
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Wallet)
	}
	return r0, ret.Error(1)
}

func (_m *WalletStore) CreateWallet(ctx context.Context, wallet *models.Wallet) (*models.Wallet, error) {
	ret := _m.Called(ctx, wallet)

	var r0 *models.Wallet
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Wallet)
	}
	return r0, ret.Error(1)
}

func (_m *WalletStore) DeleteWallet(ctx context.Context, walletID string) error {
	ret := _m.Called(ctx, walletID)
	return ret.Error(0)
}

func (_m *WalletStore) ListWallets(ctx context.Context) ([]models.Wallet, error) {
	ret := _m.Called(ctx)

	var r0 []models.Wallet
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Wallet)
	}
	return r0, ret.Error(1)
}
