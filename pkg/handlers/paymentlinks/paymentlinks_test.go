package paymentlinks_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/tazdani/wallet-platform/pkg/api"
	"github.com/tazdani/wallet-platform/pkg/handlers/paymentlinks"
	"github.com/tazdani/wallet-platform/pkg/models"
	"github.com/tazdani/wallet-platform/pkg/pin"
	"github.com/tazdani/wallet-platform/pkg/storage"
	"github.com/tazdani/wallet-platform/pkg/storage/mocks"
)

func noopPay(w http.ResponseWriter, r *http.Request, params storage.PaymentParams) {
	w.WriteHeader(http.StatusCreated)
}

func TestCreatePaymentLink(t *testing.T) {
	merchant := &models.Merchant{Id: "m1", Name: "Coffee", Slug: "coffee", Status: "active", WalletId: "w9"}

	t.Run("Success", func(t *testing.T) {
		mockLinks := new(mocks.PaymentLinkStore)
		mockMerchants := new(mocks.MerchantStore)
		mockMerchants.On("GetMerchant", mock.Anything, "m1").Return(merchant, nil)
		created := &models.PaymentLink{Id: "pl1", LinkId: "abcd1234", MerchantId: "m1", Amount: 7_500, Status: models.LinkActive}
		mockLinks.On("CreatePaymentLink", mock.Anything, mock.Anything).Return(created, nil)

		h := paymentlinks.NewPaymentLinksHandler(mockLinks, mockMerchants, "https://pay.tazdani.ly", noopPay)

		body, _ := json.Marshal(api.NewPaymentLink{MerchantId: "m1", Amount: 7_500})
		req := httptest.NewRequest(http.MethodPost, "/payment-links", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.CreatePaymentLink(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var resp api.PaymentLink
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "https://pay.tazdani.ly/coffee/abcd1234", resp.ShareUrl)
		mockLinks.AssertExpectations(t)
		mockMerchants.AssertExpectations(t)
	})

	t.Run("Hashes Link Pin", func(t *testing.T) {
		mockLinks := new(mocks.PaymentLinkStore)
		mockMerchants := new(mocks.MerchantStore)
		mockMerchants.On("GetMerchant", mock.Anything, "m1").Return(merchant, nil)
		created := &models.PaymentLink{Id: "pl1", LinkId: "abcd1234", MerchantId: "m1", Amount: 7_500, Status: models.LinkActive, Pin: "$2a$10$hash"}
		mockLinks.On("CreatePaymentLink", mock.Anything, mock.MatchedBy(func(link *models.PaymentLink) bool {
			return link.Pin != "654321" && pin.Check("654321", link.Pin)
		})).Return(created, nil)

		h := paymentlinks.NewPaymentLinksHandler(mockLinks, mockMerchants, "https://pay.tazdani.ly", noopPay)

		body, _ := json.Marshal(api.NewPaymentLink{MerchantId: "m1", Amount: 7_500, Pin: "654321"})
		req := httptest.NewRequest(http.MethodPost, "/payment-links", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.CreatePaymentLink(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var resp api.PaymentLink
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.PinProtected)
		mockLinks.AssertExpectations(t)
	})

	t.Run("Merchant Not Found", func(t *testing.T) {
		mockLinks := new(mocks.PaymentLinkStore)
		mockMerchants := new(mocks.MerchantStore)
		mockMerchants.On("GetMerchant", mock.Anything, "ghost").Return(nil, storage.ErrMerchantNotFound)

		h := paymentlinks.NewPaymentLinksHandler(mockLinks, mockMerchants, "https://pay.tazdani.ly", noopPay)

		body, _ := json.Marshal(api.NewPaymentLink{MerchantId: "ghost", Amount: 7_500})
		req := httptest.NewRequest(http.MethodPost, "/payment-links", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.CreatePaymentLink(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockLinks.AssertNotCalled(t, "CreatePaymentLink", mock.Anything, mock.Anything)
	})

	t.Run("Invalid Amount", func(t *testing.T) {
		mockLinks := new(mocks.PaymentLinkStore)
		mockMerchants := new(mocks.MerchantStore)

		h := paymentlinks.NewPaymentLinksHandler(mockLinks, mockMerchants, "https://pay.tazdani.ly", noopPay)

		body, _ := json.Marshal(api.NewPaymentLink{MerchantId: "m1", Amount: 0})
		req := httptest.NewRequest(http.MethodPost, "/payment-links", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.CreatePaymentLink(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetPaymentLink(t *testing.T) {
	t.Run("Expired Link Still Rendered", func(t *testing.T) {
		mockLinks := new(mocks.PaymentLinkStore)
		mockMerchants := new(mocks.MerchantStore)
		expired := &models.PaymentLink{Id: "pl1", LinkId: "abcd1234", Status: models.LinkExpired}
		mockLinks.On("GetPaymentLinkByLinkId", mock.Anything, "abcd1234").Return(expired, storage.ErrLinkExpired)

		h := paymentlinks.NewPaymentLinksHandler(mockLinks, mockMerchants, "https://pay.tazdani.ly", noopPay)

		req := httptest.NewRequest(http.MethodGet, "/payment-links/abcd1234", nil)
		rr := httptest.NewRecorder()

		h.GetPaymentLink(rr, req, "abcd1234")

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp api.PaymentLink
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, string(models.LinkExpired), resp.Status)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockLinks := new(mocks.PaymentLinkStore)
		mockMerchants := new(mocks.MerchantStore)
		mockLinks.On("GetPaymentLinkByLinkId", mock.Anything, "ghost").Return(nil, storage.ErrLinkNotFound)

		h := paymentlinks.NewPaymentLinksHandler(mockLinks, mockMerchants, "https://pay.tazdani.ly", noopPay)

		req := httptest.NewRequest(http.MethodGet, "/payment-links/ghost", nil)
		rr := httptest.NewRecorder()

		h.GetPaymentLink(rr, req, "ghost")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestPayPaymentLink(t *testing.T) {
	t.Run("Resolves Link And Delegates", func(t *testing.T) {
		mockLinks := new(mocks.PaymentLinkStore)
		mockMerchants := new(mocks.MerchantStore)
		link := &models.PaymentLink{Id: "pl1", LinkId: "abcd1234", MerchantId: "m1", Amount: 7_500, Status: models.LinkActive}
		mockLinks.On("GetPaymentLinkByLinkId", mock.Anything, "abcd1234").Return(link, nil)

		var got storage.PaymentParams
		pay := func(w http.ResponseWriter, r *http.Request, params storage.PaymentParams) {
			got = params
			w.WriteHeader(http.StatusCreated)
		}
		h := paymentlinks.NewPaymentLinksHandler(mockLinks, mockMerchants, "https://pay.tazdani.ly", pay)

		body, _ := json.Marshal(api.PayLinkRequest{SenderWalletId: "w1", Pin: "123456", LinkPin: "654321"})
		req := httptest.NewRequest(http.MethodPost, "/payment-links/abcd1234/pay", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.PayPaymentLink(rr, req, "abcd1234")

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "pl1", got.PaymentLinkId)
		assert.Equal(t, "w1", got.SenderWalletId)
		assert.Equal(t, "654321", got.LinkPin)
	})

	t.Run("Expired Link Conflicts", func(t *testing.T) {
		mockLinks := new(mocks.PaymentLinkStore)
		mockMerchants := new(mocks.MerchantStore)
		expired := &models.PaymentLink{Id: "pl1", Status: models.LinkExpired}
		mockLinks.On("GetPaymentLinkByLinkId", mock.Anything, "abcd1234").Return(expired, storage.ErrLinkExpired)

		h := paymentlinks.NewPaymentLinksHandler(mockLinks, mockMerchants, "https://pay.tazdani.ly", noopPay)

		body, _ := json.Marshal(api.PayLinkRequest{SenderWalletId: "w1", Pin: "123456"})
		req := httptest.NewRequest(http.MethodPost, "/payment-links/abcd1234/pay", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.PayPaymentLink(rr, req, "abcd1234")

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}
