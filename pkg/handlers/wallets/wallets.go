package wallets

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/tazdani/wallet-platform/pkg/api"
	"github.com/tazdani/wallet-platform/pkg/balance"
	"github.com/tazdani/wallet-platform/pkg/mapping"
	"github.com/tazdani/wallet-platform/pkg/models"
	"github.com/tazdani/wallet-platform/pkg/storage"
)

// WalletsHandler holds the dependencies for wallet-related handlers.
type WalletsHandler struct {
	Store storage.WalletStore
	Cache *balance.Cache
}

// NewWalletsHandler creates a new WalletsHandler.
func NewWalletsHandler(store storage.WalletStore, cache *balance.Cache) *WalletsHandler {
	return &WalletsHandler{Store: store, Cache: cache}
}

// CreateWallet handles the logic for creating a new wallet.
func (h *WalletsHandler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	var newWallet api.NewWallet
	if err := json.NewDecoder(r.Body).Decode(&newWallet); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if !models.OwnerType(newWallet.OwnerType).Valid() {
		http.Error(w, fmt.Sprintf("Unknown owner type %q", newWallet.OwnerType), http.StatusBadRequest)
		return
	}

	createdWallet, err := h.Store.CreateWallet(r.Context(), mapping.ToDomainNewWallet(&newWallet))
	if err != nil {
		if errors.Is(err, storage.ErrWalletExists) {
			http.Error(w, "Wallet already exists", http.StatusConflict)
		} else {
			http.Error(w, fmt.Sprintf("Failed to create wallet: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(mapping.ToApiWallet(createdWallet)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetWalletById handles the logic for retrieving a wallet.
func (h *WalletsHandler) GetWalletById(w http.ResponseWriter, r *http.Request, walletId string) {
	domainWallet, err := h.Store.GetWallet(r.Context(), walletId)
	if err != nil {
		if errors.Is(err, storage.ErrWalletNotFound) {
			http.Error(w, "Wallet not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve wallet: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiWallet(domainWallet)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetBalance handles the cached balance read. Snapshots may lag a movement
// by up to the cache TTL; movements themselves always re-read storage.
func (h *WalletsHandler) GetBalance(w http.ResponseWriter, r *http.Request, walletId string) {
	snapshot, err := h.Cache.Read(r.Context(), walletId)
	if err != nil {
		if errors.Is(err, storage.ErrWalletNotFound) {
			http.Error(w, "Wallet not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to read balance: %v", err), http.StatusInternalServerError)
		}
		return
	}

	resp := api.BalanceSnapshot{
		WalletId:      snapshot.WalletId,
		Balance:       snapshot.Balance,
		Currency:      snapshot.Currency,
		LastFetchedAt: snapshot.LastFetchedAt,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetWalletByOwner handles the owner-scoped wallet lookup, e.g. a merchant
// front-end resolving its own wallet.
func (h *WalletsHandler) GetWalletByOwner(w http.ResponseWriter, r *http.Request, ownerType, ownerId string) {
	if !models.OwnerType(ownerType).Valid() {
		http.Error(w, fmt.Sprintf("Unknown owner type %q", ownerType), http.StatusBadRequest)
		return
	}

	domainWallet, err := h.Store.GetWalletByOwner(r.Context(), models.OwnerType(ownerType), ownerId)
	if err != nil {
		if errors.Is(err, storage.ErrWalletNotFound) {
			http.Error(w, "Wallet not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve wallet: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiWallet(domainWallet)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListWallets handles the logic for retrieving all wallets.
func (h *WalletsHandler) ListWallets(w http.ResponseWriter, r *http.Request) {
	domainWallets, err := h.Store.ListWallets(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve wallets: %v", err), http.StatusInternalServerError)
		return
	}

	sort.Slice(domainWallets, func(i, j int) bool {
		return domainWallets[i].CreatedAt.After(domainWallets[j].CreatedAt)
	})

	apiWallets := make([]*api.Wallet, len(domainWallets))
	for i, wallet := range domainWallets {
		apiWallets[i] = mapping.ToApiWallet(&wallet)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiWallets); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// DeleteWallet handles the logic for deleting a wallet. Production flows
// deactivate instead; this exists for test environments.
func (h *WalletsHandler) DeleteWallet(w http.ResponseWriter, r *http.Request, walletId string) {
	if err := h.Store.DeleteWallet(r.Context(), walletId); err != nil {
		if errors.Is(err, storage.ErrWalletNotFound) {
			http.Error(w, "Wallet not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to delete wallet: %v", err), http.StatusInternalServerError)
		}
		return
	}
	if h.Cache != nil {
		h.Cache.Invalidate(walletId)
	}

	w.WriteHeader(http.StatusNoContent)
}
