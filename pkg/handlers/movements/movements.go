// Package movements exposes the four balance-changing operations over HTTP:
// transfers, payments, deposits and withdrawals. Validation that needs no
// storage access happens here; everything that must hold at commit time is
// enforced by the store's atomic write.
package movements

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tazdani/wallet-platform/pkg/api"
	"github.com/tazdani/wallet-platform/pkg/balance"
	"github.com/tazdani/wallet-platform/pkg/mapping"
	"github.com/tazdani/wallet-platform/pkg/metrics"
	"github.com/tazdani/wallet-platform/pkg/models"
	"github.com/tazdani/wallet-platform/pkg/money"
	"github.com/tazdani/wallet-platform/pkg/pin"
	"github.com/tazdani/wallet-platform/pkg/storage"
)

// IdempotencyKeyHeader carries the client-generated dedup key. Optional:
// requests without it are processed exactly as sent, every time.
const IdempotencyKeyHeader = "Idempotency-Key"

// MovementsHandler holds the dependencies for movement-related handlers.
type MovementsHandler struct {
	Store storage.MovementStore
	Cache *balance.Cache
}

// NewMovementsHandler creates a new MovementsHandler.
func NewMovementsHandler(store storage.MovementStore, cache *balance.Cache) *MovementsHandler {
	return &MovementsHandler{Store: store, Cache: cache}
}

// CreateTransfer handles POST /transfers.
func (h *MovementsHandler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	var req api.NewTransfer
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if !h.validMovement(w, req.Amount, req.Pin) {
		return
	}
	if !h.requireIds(w, req.SenderWalletId, req.ReceiverWalletId) {
		return
	}

	result, err := h.Store.Transfer(r.Context(), storage.TransferParams{
		SenderWalletId:   req.SenderWalletId,
		ReceiverWalletId: req.ReceiverWalletId,
		Amount:           req.Amount,
		Pin:              req.Pin,
		Note:             req.Note,
		IdempotencyKey:   r.Header.Get(IdempotencyKeyHeader),
	})
	h.respond(w, models.TypeTransfer, result, err)
}

// CreatePayment handles POST /payments.
func (h *MovementsHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req api.NewPayment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	// A link payment takes its amount and merchant from the link, so only
	// direct payments validate the caller-supplied amount and receiver.
	if req.PaymentLinkId == "" {
		if !h.validMovement(w, req.Amount, req.Pin) {
			return
		}
		if !h.requireIds(w, req.SenderWalletId, req.MerchantWalletId) {
			return
		}
	} else if !h.validPin(w, req.Pin) {
		return
	} else if !h.requireIds(w, req.SenderWalletId) {
		return
	}

	result, err := h.Store.Pay(r.Context(), storage.PaymentParams{
		SenderWalletId:   req.SenderWalletId,
		MerchantWalletId: req.MerchantWalletId,
		Amount:           req.Amount,
		Pin:              req.Pin,
		PaymentLinkId:    req.PaymentLinkId,
		LinkPin:          req.LinkPin,
		IdempotencyKey:   r.Header.Get(IdempotencyKeyHeader),
	})
	h.respond(w, models.TypePayment, result, err)
}

// CreateDeposit handles POST /deposits.
func (h *MovementsHandler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	h.cashMovement(w, r, models.TypeDeposit, h.Store.Deposit)
}

// CreateWithdrawal handles POST /withdrawals.
func (h *MovementsHandler) CreateWithdrawal(w http.ResponseWriter, r *http.Request) {
	h.cashMovement(w, r, models.TypeWithdrawal, h.Store.Withdraw)
}

// ExecutePayment runs a payment assembled by another handler (the
// payment-link pay endpoint) through the same validation, metrics, cache
// invalidation and error mapping as CreatePayment.
func (h *MovementsHandler) ExecutePayment(w http.ResponseWriter, r *http.Request, params storage.PaymentParams) {
	if !h.validPin(w, params.Pin) {
		return
	}
	result, err := h.Store.Pay(r.Context(), params)
	h.respond(w, models.TypePayment, result, err)
}

func (h *MovementsHandler) cashMovement(w http.ResponseWriter, r *http.Request, txType models.TransactionType, op func(context.Context, storage.CashParams) (*storage.MovementResult, error)) {
	var req api.NewCashMovement
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if !h.validMovement(w, req.Amount, req.Pin) {
		return
	}
	if !h.requireIds(w, req.CustomerWalletId, req.AgentId) {
		return
	}

	result, err := op(r.Context(), storage.CashParams{
		CustomerWalletId: req.CustomerWalletId,
		AgentId:          req.AgentId,
		Amount:           req.Amount,
		Pin:              req.Pin,
		IdempotencyKey:   r.Header.Get(IdempotencyKeyHeader),
	})
	h.respond(w, txType, result, err)
}

func (h *MovementsHandler) validMovement(w http.ResponseWriter, amount int64, plainPin string) bool {
	if err := money.ValidateAmount(amount); err != nil {
		http.Error(w, fmt.Sprintf("Invalid amount: %v", err), http.StatusBadRequest)
		return false
	}
	return h.validPin(w, plainPin)
}

// requireIds rejects a movement naming an empty wallet or agent id before
// any storage call; an empty id would otherwise surface as a storage error.
func (h *MovementsHandler) requireIds(w http.ResponseWriter, ids ...string) bool {
	for _, id := range ids {
		if id == "" {
			http.Error(w, "Missing wallet or agent id", http.StatusBadRequest)
			return false
		}
	}
	return true
}

func (h *MovementsHandler) validPin(w http.ResponseWriter, plainPin string) bool {
	if err := pin.Validate(plainPin); err != nil {
		http.Error(w, fmt.Sprintf("Invalid pin: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}

// respond maps a movement outcome to HTTP, records metrics and drops any
// stale cached balances for the affected wallets.
func (h *MovementsHandler) respond(w http.ResponseWriter, txType models.TransactionType, result *storage.MovementResult, err error) {
	if err != nil {
		metrics.MovementsProcessed.WithLabelValues(string(txType), movementOutcome(err)).Inc()
		writeMovementError(w, err)
		return
	}

	// A replay moved no money: it must not count as a new completed
	// movement or re-observe the amount.
	if result.Replayed {
		metrics.MovementsProcessed.WithLabelValues(string(txType), metrics.OutcomeReplayed).Inc()
	} else {
		metrics.MovementsProcessed.WithLabelValues(string(txType), metrics.OutcomeCompleted).Inc()
		metrics.MovementAmount.WithLabelValues(string(txType)).Observe(float64(result.Transaction.Amount))

		if h.Cache != nil {
			h.Cache.Invalidate(result.Transaction.SenderWalletId)
			h.Cache.Invalidate(result.Transaction.ReceiverWalletId)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(mapping.ToApiMovementResult(result)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

func movementOutcome(err error) string {
	switch {
	case errors.Is(err, storage.ErrInsufficientFunds),
		errors.Is(err, storage.ErrAgentInsufficientCash),
		errors.Is(err, storage.ErrLimitExceeded),
		errors.Is(err, storage.ErrInvalidPin),
		errors.Is(err, storage.ErrPinNotSet),
		errors.Is(err, storage.ErrInvalidLinkPin),
		errors.Is(err, storage.ErrWalletInactive),
		errors.Is(err, storage.ErrAgentInactive),
		errors.Is(err, storage.ErrLinkNotActive),
		errors.Is(err, storage.ErrLinkExpired):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}

func writeMovementError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrInvalidPin), errors.Is(err, storage.ErrPinNotSet):
		http.Error(w, "Invalid or missing PIN", http.StatusUnauthorized)
	case errors.Is(err, storage.ErrInvalidLinkPin):
		http.Error(w, "Invalid payment link PIN", http.StatusUnauthorized)
	case errors.Is(err, storage.ErrInsufficientFunds):
		http.Error(w, "Insufficient funds", http.StatusUnprocessableEntity)
	case errors.Is(err, storage.ErrAgentInsufficientCash):
		http.Error(w, "Agent has insufficient cash", http.StatusUnprocessableEntity)
	case errors.Is(err, storage.ErrLimitExceeded):
		http.Error(w, "Wallet limit exceeded", http.StatusUnprocessableEntity)
	case errors.Is(err, storage.ErrWalletNotFound),
		errors.Is(err, storage.ErrProfileNotFound),
		errors.Is(err, storage.ErrAgentNotFound),
		errors.Is(err, storage.ErrMerchantNotFound),
		errors.Is(err, storage.ErrLinkNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrWalletInactive), errors.Is(err, storage.ErrAgentInactive):
		http.Error(w, "Party is not active", http.StatusConflict)
	case errors.Is(err, storage.ErrLinkNotActive):
		http.Error(w, "Payment link is no longer active", http.StatusConflict)
	case errors.Is(err, storage.ErrLinkExpired):
		http.Error(w, "Payment link has expired", http.StatusConflict)
	default:
		http.Error(w, fmt.Sprintf("Failed to process movement: %v", err), http.StatusInternalServerError)
	}
}
