package profiles_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/tazdani/wallet-platform/pkg/api"
	"github.com/tazdani/wallet-platform/pkg/handlers/profiles"
	"github.com/tazdani/wallet-platform/pkg/models"
	"github.com/tazdani/wallet-platform/pkg/storage"
	"github.com/tazdani/wallet-platform/pkg/storage/mocks"
)

func TestCreateProfile(t *testing.T) {
	t.Run("Success With Pin", func(t *testing.T) {
		mockStore := new(mocks.ProfileStore)
		created := &models.Profile{Id: "p1", Type: models.OwnerCustomer, DisplayName: "Amal", WalletId: "w1", WalletStatus: models.WalletStatusActive}
		mockStore.On("CreateProfile", mock.Anything, mock.MatchedBy(func(p *models.Profile) bool {
			// The PIN is stored hashed, never in the clear.
			return p.PinHash != "" && p.PinHash != "123456"
		}), mock.Anything).Return(created, nil)

		h := profiles.NewProfilesHandler(mockStore)

		body, _ := json.Marshal(api.NewProfile{Type: "customer", DisplayName: "Amal", Pin: "123456"})
		req := httptest.NewRequest(http.MethodPost, "/profiles", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.CreateProfile(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var resp api.Profile
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "w1", resp.WalletId)
		mockStore.AssertExpectations(t)
	})

	t.Run("Unknown Type", func(t *testing.T) {
		mockStore := new(mocks.ProfileStore)
		h := profiles.NewProfilesHandler(mockStore)

		body, _ := json.Marshal(api.NewProfile{Type: "robot", DisplayName: "Amal"})
		req := httptest.NewRequest(http.MethodPost, "/profiles", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.CreateProfile(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStore.AssertNotCalled(t, "CreateProfile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Malformed Pin", func(t *testing.T) {
		mockStore := new(mocks.ProfileStore)
		h := profiles.NewProfilesHandler(mockStore)

		body, _ := json.Marshal(api.NewProfile{Type: "customer", DisplayName: "Amal", Pin: "12"})
		req := httptest.NewRequest(http.MethodPost, "/profiles", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.CreateProfile(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestSetPin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStore := new(mocks.ProfileStore)
		mockStore.On("SetPin", mock.Anything, "p1", mock.MatchedBy(func(hash string) bool {
			return hash != "" && hash != "123456"
		})).Return(nil)

		h := profiles.NewProfilesHandler(mockStore)

		body, _ := json.Marshal(api.SetPinRequest{Pin: "123456"})
		req := httptest.NewRequest(http.MethodPut, "/profiles/p1/pin", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.SetPin(rr, req, "p1")

		assert.Equal(t, http.StatusNoContent, rr.Code)
		mockStore.AssertExpectations(t)
	})

	t.Run("Profile Not Found", func(t *testing.T) {
		mockStore := new(mocks.ProfileStore)
		mockStore.On("SetPin", mock.Anything, "ghost", mock.Anything).Return(storage.ErrProfileNotFound)

		h := profiles.NewProfilesHandler(mockStore)

		body, _ := json.Marshal(api.SetPinRequest{Pin: "123456"})
		req := httptest.NewRequest(http.MethodPut, "/profiles/ghost/pin", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.SetPin(rr, req, "ghost")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
