package locator_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/tazdani/wallet-platform/pkg/api"
	"github.com/tazdani/wallet-platform/pkg/handlers/locator"
	"github.com/tazdani/wallet-platform/pkg/models"
	"github.com/tazdani/wallet-platform/pkg/storage/mocks"
)

// Central Tripoli.
const (
	originLat = 32.8872
	originLon = 13.1913
)

func TestNearbyAgents(t *testing.T) {
	t.Run("Sorted By Distance Within Radius", func(t *testing.T) {
		mockAgents := new(mocks.AgentStore)
		mockMerchants := new(mocks.MerchantStore)
		mockAgents.On("ListActiveAgents", mock.Anything).Return([]models.Agent{
			{Id: "far", Name: "Benghazi Kiosk", Status: "active", Location: &models.Location{Latitude: 32.1167, Longitude: 20.0667}},
			{Id: "near", Name: "Medina Kiosk", Status: "active", Location: &models.Location{Latitude: 32.8900, Longitude: 13.1800}},
			{Id: "nolocation", Name: "Phone Only", Status: "active"},
		}, nil)

		h := locator.NewLocatorHandler(mockAgents, mockMerchants)

		req := httptest.NewRequest(http.MethodGet, "/agents/nearby?latitude=32.8872&longitude=13.1913", nil)
		rr := httptest.NewRecorder()

		h.NearbyAgents(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var entries []api.NearbyEntry
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
		// Benghazi is hundreds of km away and the unlocated agent is skipped.
		assert.Len(t, entries, 1)
		assert.Equal(t, "near", entries[0].Id)
		assert.Greater(t, entries[0].DistanceKm, 0.0)
		assert.LessOrEqual(t, entries[0].DistanceKm, locator.DefaultRadiusKm)
	})

	t.Run("Custom Radius", func(t *testing.T) {
		mockAgents := new(mocks.AgentStore)
		mockMerchants := new(mocks.MerchantStore)
		mockAgents.On("ListActiveAgents", mock.Anything).Return([]models.Agent{
			{Id: "far", Name: "Benghazi Kiosk", Status: "active", Location: &models.Location{Latitude: 32.1167, Longitude: 20.0667}},
		}, nil)

		h := locator.NewLocatorHandler(mockAgents, mockMerchants)

		req := httptest.NewRequest(http.MethodGet, "/agents/nearby?latitude=32.8872&longitude=13.1913&radius_km=1000", nil)
		rr := httptest.NewRecorder()

		h.NearbyAgents(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var entries []api.NearbyEntry
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
		assert.Len(t, entries, 1)
	})

	t.Run("Missing Coordinates", func(t *testing.T) {
		mockAgents := new(mocks.AgentStore)
		mockMerchants := new(mocks.MerchantStore)

		h := locator.NewLocatorHandler(mockAgents, mockMerchants)

		req := httptest.NewRequest(http.MethodGet, "/agents/nearby", nil)
		rr := httptest.NewRecorder()

		h.NearbyAgents(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockAgents.AssertNotCalled(t, "ListActiveAgents", mock.Anything)
	})
}

func TestNearbyMerchants(t *testing.T) {
	mockAgents := new(mocks.AgentStore)
	mockMerchants := new(mocks.MerchantStore)
	mockMerchants.On("ListActiveMerchants", mock.Anything).Return([]models.Merchant{
		{Id: "m1", Name: "Coffee", Slug: "coffee", Status: "active", Location: &models.Location{Latitude: originLat, Longitude: originLon, Address: "Rashid St"}},
	}, nil)

	h := locator.NewLocatorHandler(mockAgents, mockMerchants)

	req := httptest.NewRequest(http.MethodGet, "/merchants/nearby?latitude=32.8872&longitude=13.1913", nil)
	rr := httptest.NewRecorder()

	h.NearbyMerchants(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var entries []api.NearbyEntry
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	assert.Len(t, entries, 1)
	assert.Equal(t, "Rashid St", entries[0].Address)
	assert.Equal(t, 0.0, entries[0].DistanceKm)
}
