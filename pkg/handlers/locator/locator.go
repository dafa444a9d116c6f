// Package locator answers "what can take my money near me": proximity
// search over active agents and merchants using great-circle distance.
package locator

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/tazdani/wallet-platform/pkg/api"
	"github.com/tazdani/wallet-platform/pkg/geo"
	"github.com/tazdani/wallet-platform/pkg/models"
	"github.com/tazdani/wallet-platform/pkg/storage"
)

// DefaultRadiusKm applies when the caller does not pass a radius.
const DefaultRadiusKm = 10.0

// LocatorHandler holds the dependencies for proximity-search handlers.
type LocatorHandler struct {
	Agents    storage.AgentStore
	Merchants storage.MerchantStore
}

// NewLocatorHandler creates a new LocatorHandler.
func NewLocatorHandler(agents storage.AgentStore, merchants storage.MerchantStore) *LocatorHandler {
	return &LocatorHandler{Agents: agents, Merchants: merchants}
}

// NearbyAgents handles GET /agents/nearby.
func (h *LocatorHandler) NearbyAgents(w http.ResponseWriter, r *http.Request) {
	origin, radius, ok := parseQuery(w, r)
	if !ok {
		return
	}

	agents, err := h.Agents.ListActiveAgents(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve agents: %v", err), http.StatusInternalServerError)
		return
	}

	candidates := make([]geo.Candidate, 0, len(agents))
	for _, agent := range agents {
		if c, ok := toCandidate(agent.Id, agent.Name, agent.Location); ok {
			candidates = append(candidates, c)
		}
	}
	writeMatches(w, geo.WithinRadius(origin, candidates, radius))
}

// NearbyMerchants handles GET /merchants/nearby.
func (h *LocatorHandler) NearbyMerchants(w http.ResponseWriter, r *http.Request) {
	origin, radius, ok := parseQuery(w, r)
	if !ok {
		return
	}

	merchants, err := h.Merchants.ListActiveMerchants(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve merchants: %v", err), http.StatusInternalServerError)
		return
	}

	candidates := make([]geo.Candidate, 0, len(merchants))
	for _, merchant := range merchants {
		if c, ok := toCandidate(merchant.Id, merchant.Name, merchant.Location); ok {
			candidates = append(candidates, c)
		}
	}
	writeMatches(w, geo.WithinRadius(origin, candidates, radius))
}

// toCandidate skips entries with no recorded location.
func toCandidate(id, name string, loc *models.Location) (geo.Candidate, bool) {
	if loc == nil {
		return geo.Candidate{}, false
	}
	return geo.Candidate{
		Id:      id,
		Name:    name,
		Address: loc.Address,
		Point:   geo.Point{Latitude: loc.Latitude, Longitude: loc.Longitude},
	}, true
}

func parseQuery(w http.ResponseWriter, r *http.Request) (geo.Point, float64, bool) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("latitude"), 64)
	if err != nil {
		http.Error(w, "Invalid or missing latitude", http.StatusBadRequest)
		return geo.Point{}, 0, false
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("longitude"), 64)
	if err != nil {
		http.Error(w, "Invalid or missing longitude", http.StatusBadRequest)
		return geo.Point{}, 0, false
	}

	radius := DefaultRadiusKm
	if raw := r.URL.Query().Get("radius_km"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil || radius <= 0 {
			http.Error(w, fmt.Sprintf("Invalid radius %q", raw), http.StatusBadRequest)
			return geo.Point{}, 0, false
		}
	}

	return geo.Point{Latitude: lat, Longitude: lon}, radius, true
}

func writeMatches(w http.ResponseWriter, matches []geo.Match) {
	entries := make([]api.NearbyEntry, len(matches))
	for i, m := range matches {
		entries[i] = api.NearbyEntry{
			Id:         m.Id,
			Name:       m.Name,
			Address:    m.Address,
			Latitude:   m.Point.Latitude,
			Longitude:  m.Point.Longitude,
			DistanceKm: m.DistanceKm,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
