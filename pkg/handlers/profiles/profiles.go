// Package profiles handles actor signup and PIN management. Signup creates
// the profile and its wallet together, so no actor ever exists without a
// wallet to move money through.
package profiles

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tazdani/wallet-platform/pkg/api"
	"github.com/tazdani/wallet-platform/pkg/mapping"
	"github.com/tazdani/wallet-platform/pkg/models"
	"github.com/tazdani/wallet-platform/pkg/pin"
	"github.com/tazdani/wallet-platform/pkg/storage"
)

// ProfilesHandler holds the dependencies for profile-related handlers.
type ProfilesHandler struct {
	Store storage.ProfileStore
}

// NewProfilesHandler creates a new ProfilesHandler.
func NewProfilesHandler(store storage.ProfileStore) *ProfilesHandler {
	return &ProfilesHandler{Store: store}
}

// CreateProfile handles POST /profiles.
func (h *ProfilesHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req api.NewProfile
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if !models.OwnerType(req.Type).Valid() {
		http.Error(w, fmt.Sprintf("Unknown profile type %q", req.Type), http.StatusBadRequest)
		return
	}

	profile := mapping.ToDomainNewProfile(&req)
	if req.Pin != "" {
		hash, err := pin.Hash(req.Pin)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid pin: %v", err), http.StatusBadRequest)
			return
		}
		profile.PinHash = hash
	}

	wallet := &models.Wallet{
		OwnerType: models.OwnerType(req.Type),
		Currency:  models.DefaultCurrency,
		IsActive:  true,
		Version:   1,
	}
	created, err := h.Store.CreateProfile(r.Context(), profile, wallet)
	if err != nil {
		if errors.Is(err, storage.ErrWalletExists) {
			http.Error(w, "Profile already exists", http.StatusConflict)
		} else {
			http.Error(w, fmt.Sprintf("Failed to create profile: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(mapping.ToApiProfile(created)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetProfile handles GET /profiles/{profileId}.
func (h *ProfilesHandler) GetProfile(w http.ResponseWriter, r *http.Request, profileId string) {
	profile, err := h.Store.GetProfile(r.Context(), profileId)
	if err != nil {
		if errors.Is(err, storage.ErrProfileNotFound) {
			http.Error(w, "Profile not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve profile: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiProfile(profile)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// SetPin handles PUT /profiles/{profileId}/pin.
func (h *ProfilesHandler) SetPin(w http.ResponseWriter, r *http.Request, profileId string) {
	var req api.SetPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	hash, err := pin.Hash(req.Pin)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid pin: %v", err), http.StatusBadRequest)
		return
	}

	if err := h.Store.SetPin(r.Context(), profileId, hash); err != nil {
		if errors.Is(err, storage.ErrProfileNotFound) {
			http.Error(w, "Profile not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to set pin: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
