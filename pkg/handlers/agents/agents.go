package agents

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tazdani/wallet-platform/pkg/api"
	"github.com/tazdani/wallet-platform/pkg/storage"
)

// AgentsHandler holds the dependencies for agent-related handlers.
type AgentsHandler struct {
	Store storage.AgentStore
}

// NewAgentsHandler creates a new AgentsHandler.
func NewAgentsHandler(store storage.AgentStore) *AgentsHandler {
	return &AgentsHandler{Store: store}
}

// SyncWallet handles POST /agents/{agentId}/sync-wallet: reconciles the
// agent's wallet balance to the cash in its drawer.
func (h *AgentsHandler) SyncWallet(w http.ResponseWriter, r *http.Request, agentId string) {
	balance, err := h.Store.SyncAgentWallet(r.Context(), agentId)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAgentNotFound):
			http.Error(w, "Agent not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrAgentInactive):
			http.Error(w, "Agent is not active", http.StatusConflict)
		case errors.Is(err, storage.ErrStaleWallet):
			http.Error(w, "Wallet changed concurrently, retry", http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to sync agent wallet: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(api.SyncWalletResponse{Success: true, Balance: balance}); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
