package wallets_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/tazdani/wallet-platform/pkg/api"
	"github.com/tazdani/wallet-platform/pkg/balance"
	"github.com/tazdani/wallet-platform/pkg/handlers/wallets"
	"github.com/tazdani/wallet-platform/pkg/models"
	"github.com/tazdani/wallet-platform/pkg/storage"
	"github.com/tazdani/wallet-platform/pkg/storage/mocks"
)

func TestCreateWallet(t *testing.T) {
	expectedWallet := &models.Wallet{Id: "w1", OwnerType: models.OwnerCustomer, OwnerId: "p1", Balance: 0, IsActive: true, Version: 1}

	t.Run("Success", func(t *testing.T) {
		mockStore := new(mocks.WalletStore)
		mockStore.On("CreateWallet", mock.Anything, mock.Anything).Return(expectedWallet, nil)

		h := wallets.NewWalletsHandler(mockStore, nil)

		body, _ := json.Marshal(api.NewWallet{OwnerType: "customer", OwnerId: "p1"})
		req := httptest.NewRequest(http.MethodPost, "/wallets", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.CreateWallet(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockStore.AssertExpectations(t)
	})

	t.Run("Unknown Owner Type", func(t *testing.T) {
		mockStore := new(mocks.WalletStore)
		h := wallets.NewWalletsHandler(mockStore, nil)

		body, _ := json.Marshal(api.NewWallet{OwnerType: "alien", OwnerId: "p1"})
		req := httptest.NewRequest(http.MethodPost, "/wallets", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.CreateWallet(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStore.AssertNotCalled(t, "CreateWallet", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate", func(t *testing.T) {
		mockStore := new(mocks.WalletStore)
		mockStore.On("CreateWallet", mock.Anything, mock.Anything).Return(nil, storage.ErrWalletExists)

		h := wallets.NewWalletsHandler(mockStore, nil)

		body, _ := json.Marshal(api.NewWallet{OwnerType: "customer", OwnerId: "p1"})
		req := httptest.NewRequest(http.MethodPost, "/wallets", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.CreateWallet(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestGetBalance(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStore := new(mocks.WalletStore)
		wallet := &models.Wallet{Id: "w1", Balance: 42_000, Currency: "LYD", IsActive: true, Version: 1}
		mockStore.On("GetWallet", mock.Anything, "w1").Once().Return(wallet, nil)

		cache := balance.New(mockStore, time.Minute)
		defer cache.Close()
		h := wallets.NewWalletsHandler(mockStore, cache)

		req := httptest.NewRequest(http.MethodGet, "/wallets/w1/balance", nil)
		rr := httptest.NewRecorder()

		h.GetBalance(rr, req, "w1")

		assert.Equal(t, http.StatusOK, rr.Code)
		var snapshot api.BalanceSnapshot
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snapshot))
		assert.Equal(t, int64(42_000), snapshot.Balance)
		assert.Equal(t, "LYD", snapshot.Currency)

		// Second read within the TTL is served from the cache.
		rr2 := httptest.NewRecorder()
		h.GetBalance(rr2, req, "w1")
		assert.Equal(t, http.StatusOK, rr2.Code)
		mockStore.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockStore := new(mocks.WalletStore)
		mockStore.On("GetWallet", mock.Anything, "missing").Return(nil, storage.ErrWalletNotFound)

		cache := balance.New(mockStore, time.Minute)
		defer cache.Close()
		h := wallets.NewWalletsHandler(mockStore, cache)

		req := httptest.NewRequest(http.MethodGet, "/wallets/missing/balance", nil)
		rr := httptest.NewRecorder()

		h.GetBalance(rr, req, "missing")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestGetWalletByOwner(t *testing.T) {
	mockStore := new(mocks.WalletStore)
	wallet := &models.Wallet{Id: "w1", OwnerType: models.OwnerMerchant, OwnerId: "m1"}
	mockStore.On("GetWalletByOwner", mock.Anything, models.OwnerMerchant, "m1").Return(wallet, nil)

	h := wallets.NewWalletsHandler(mockStore, nil)

	req := httptest.NewRequest(http.MethodGet, "/owners/merchant/m1/wallet", nil)
	rr := httptest.NewRecorder()

	h.GetWalletByOwner(rr, req, "merchant", "m1")

	assert.Equal(t, http.StatusOK, rr.Code)
	mockStore.AssertExpectations(t)
}

func TestListWallets(t *testing.T) {
	mockStore := new(mocks.WalletStore)
	mockStore.On("ListWallets", mock.Anything).Return([]models.Wallet{}, nil)

	h := wallets.NewWalletsHandler(mockStore, nil)

	req := httptest.NewRequest(http.MethodGet, "/wallets", nil)
	rr := httptest.NewRecorder()

	h.ListWallets(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockStore.AssertExpectations(t)
}

func TestDeleteWallet(t *testing.T) {
	mockStore := new(mocks.WalletStore)
	mockStore.On("DeleteWallet", mock.Anything, "w1").Return(nil)

	h := wallets.NewWalletsHandler(mockStore, nil)

	req := httptest.NewRequest(http.MethodDelete, "/wallets/w1", nil)
	rr := httptest.NewRecorder()

	h.DeleteWallet(rr, req, "w1")

	assert.Equal(t, http.StatusNoContent, rr.Code)
	mockStore.AssertExpectations(t)
}
