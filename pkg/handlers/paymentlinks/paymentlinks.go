// Package paymentlinks exposes merchant payment links: creation, the public
// link view a payer loads before paying, and the pay operation itself.
package paymentlinks

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tazdani/wallet-platform/pkg/api"
	"github.com/tazdani/wallet-platform/pkg/mapping"
	"github.com/tazdani/wallet-platform/pkg/money"
	"github.com/tazdani/wallet-platform/pkg/pin"
	"github.com/tazdani/wallet-platform/pkg/storage"
)

// PaymentLinksHandler holds the dependencies for payment-link handlers.
type PaymentLinksHandler struct {
	Links     storage.PaymentLinkStore
	Merchants storage.MerchantStore

	// FrontendBaseURL is the base for shareable link URLs,
	// e.g. https://pay.example.com.
	FrontendBaseURL string

	// Pay runs the actual movement when a link is paid.
	Pay func(w http.ResponseWriter, r *http.Request, params storage.PaymentParams)
}

// NewPaymentLinksHandler creates a new PaymentLinksHandler.
func NewPaymentLinksHandler(links storage.PaymentLinkStore, merchants storage.MerchantStore, frontendBaseURL string, pay func(http.ResponseWriter, *http.Request, storage.PaymentParams)) *PaymentLinksHandler {
	return &PaymentLinksHandler{Links: links, Merchants: merchants, FrontendBaseURL: frontendBaseURL, Pay: pay}
}

// CreatePaymentLink handles POST /payment-links.
func (h *PaymentLinksHandler) CreatePaymentLink(w http.ResponseWriter, r *http.Request) {
	var req api.NewPaymentLink
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if err := money.ValidateAmount(req.Amount); err != nil {
		http.Error(w, fmt.Sprintf("Invalid amount: %v", err), http.StatusBadRequest)
		return
	}
	if req.Pin != "" {
		hashed, err := pin.Hash(req.Pin)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid link pin: %v", err), http.StatusBadRequest)
			return
		}
		req.Pin = hashed
	}

	merchant, err := h.Merchants.GetMerchant(r.Context(), req.MerchantId)
	if err != nil {
		if errors.Is(err, storage.ErrMerchantNotFound) {
			http.Error(w, "Merchant not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve merchant: %v", err), http.StatusInternalServerError)
		}
		return
	}

	link, err := h.Links.CreatePaymentLink(r.Context(), mapping.ToDomainNewPaymentLink(&req))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create payment link: %v", err), http.StatusInternalServerError)
		return
	}

	apiLink := mapping.ToApiPaymentLink(link)
	apiLink.ShareUrl = fmt.Sprintf("%s/%s/%s", h.FrontendBaseURL, merchant.Slug, link.LinkId)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiLink); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetPaymentLink handles the public GET by slug. An expired link is still
// returned, with its expired status, so the payer sees why it cannot be paid.
func (h *PaymentLinksHandler) GetPaymentLink(w http.ResponseWriter, r *http.Request, linkId string) {
	link, err := h.Links.GetPaymentLinkByLinkId(r.Context(), linkId)
	if err != nil && !errors.Is(err, storage.ErrLinkExpired) {
		if errors.Is(err, storage.ErrLinkNotFound) {
			http.Error(w, "Payment link not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve payment link: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiPaymentLink(link)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// PayPaymentLink handles POST /payment-links/{linkId}/pay. The link fixes
// the amount and the merchant; the payer supplies their wallet and PIN, plus
// the link's claim code when the link is PIN-protected.
func (h *PaymentLinksHandler) PayPaymentLink(w http.ResponseWriter, r *http.Request, linkId string) {
	var req api.PayLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	link, err := h.Links.GetPaymentLinkByLinkId(r.Context(), linkId)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrLinkNotFound):
			http.Error(w, "Payment link not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrLinkExpired):
			http.Error(w, "Payment link has expired", http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to retrieve payment link: %v", err), http.StatusInternalServerError)
		}
		return
	}

	h.Pay(w, r, storage.PaymentParams{
		SenderWalletId: req.SenderWalletId,
		Pin:            req.Pin,
		PaymentLinkId:  link.Id,
		LinkPin:        req.LinkPin,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
	})
}
