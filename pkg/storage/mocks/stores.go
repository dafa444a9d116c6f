package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tazdani/wallet-platform/pkg/models"
)

// TransactionReader is a mock implementation of storage.TransactionReader.
type TransactionReader struct {
	mock.Mock
}

func (_m *TransactionReader) GetTransaction(ctx context.Context, txID string) (*models.Transaction, error) {
	ret := _m.Called(ctx, txID)

	var r0 *models.Transaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Transaction)
	}
	return r0, ret.Error(1)
}

func (_m *TransactionReader) ListTransactionsByWallet(ctx context.Context, walletID string) ([]models.Transaction, error) {
	ret := _m.Called(ctx, walletID)

	var r0 []models.Transaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Transaction)
	}
	return r0, ret.Error(1)
}

// PaymentLinkStore is a mock implementation of storage.PaymentLinkStore.
type PaymentLinkStore struct {
	mock.Mock
}

func (_m *PaymentLinkStore) CreatePaymentLink(ctx context.Context, link *models.PaymentLink) (*models.PaymentLink, error) {
	ret := _m.Called(ctx, link)

	var r0 *models.PaymentLink
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.PaymentLink)
	}
	return r0, ret.Error(1)
}

func (_m *PaymentLinkStore) GetPaymentLinkByLinkId(ctx context.Context, linkID string) (*models.PaymentLink, error) {
	ret := _m.Called(ctx, linkID)

	var r0 *models.PaymentLink
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.PaymentLink)
	}
	return r0, ret.Error(1)
}

func (_m *PaymentLinkStore) ListOverdueActiveLinks(ctx context.Context, cutoff time.Time) ([]models.PaymentLink, error) {
	ret := _m.Called(ctx, cutoff)

	var r0 []models.PaymentLink
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.PaymentLink)
	}
	return r0, ret.Error(1)
}

func (_m *PaymentLinkStore) ExpirePaymentLink(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

// ProfileStore is a mock implementation of storage.ProfileStore.
type ProfileStore struct {
	mock.Mock
}

func (_m *ProfileStore) GetProfile(ctx context.Context, profileID string) (*models.Profile, error) {
	ret := _m.Called(ctx, profileID)

	var r0 *models.Profile
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Profile)
	}
	return r0, ret.Error(1)
}

func (_m *ProfileStore) CreateProfile(ctx context.Context, profile *models.Profile, wallet *models.Wallet) (*models.Profile, error) {
	ret := _m.Called(ctx, profile, wallet)

	var r0 *models.Profile
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Profile)
	}
	return r0, ret.Error(1)
}

func (_m *ProfileStore) SetPin(ctx context.Context, profileID, pinHash string) error {
	ret := _m.Called(ctx, profileID, pinHash)
	return ret.Error(0)
}

// AgentStore is a mock implementation of storage.AgentStore.
type AgentStore struct {
	mock.Mock
}

func (_m *AgentStore) GetAgent(ctx context.Context, agentID string) (*models.Agent, error) {
	ret := _m.Called(ctx, agentID)

	var r0 *models.Agent
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Agent)
	}
	return r0, ret.Error(1)
}

func (_m *AgentStore) ListActiveAgents(ctx context.Context) ([]models.Agent, error) {
	ret := _m.Called(ctx)

	var r0 []models.Agent
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Agent)
	}
	return r0, ret.Error(1)
}

func (_m *AgentStore) SyncAgentWallet(ctx context.Context, agentID string) (int64, error) {
	ret := _m.Called(ctx, agentID)
	return ret.Get(0).(int64), ret.Error(1)
}

// MerchantStore is a mock implementation of storage.MerchantStore.
type MerchantStore struct {
	mock.Mock
}

func (_m *MerchantStore) GetMerchant(ctx context.Context, merchantID string) (*models.Merchant, error) {
	ret := _m.Called(ctx, merchantID)

	var r0 *models.Merchant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Merchant)
	}
	return r0, ret.Error(1)
}

func (_m *MerchantStore) ListActiveMerchants(ctx context.Context) ([]models.Merchant, error) {
	ret := _m.Called(ctx)

	var r0 []models.Merchant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Merchant)
	}
	return r0, ret.Error(1)
}

// LedgerReader is a mock implementation of storage.LedgerReader.
type LedgerReader struct {
	mock.Mock
}

func (_m *LedgerReader) ListLedgerEntries(ctx context.Context, limit int32) ([]models.LedgerEntry, error) {
	ret := _m.Called(ctx, limit)

	var r0 []models.LedgerEntry
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.LedgerEntry)
	}
	return r0, ret.Error(1)
}
