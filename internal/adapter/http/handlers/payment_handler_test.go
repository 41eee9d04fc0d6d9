package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Lee196444/Text2toss-app/internal/adapter/http/handlers/mocks"
	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/Lee196444/Text2toss-app/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func newPaymentRouter(h *PaymentHandler) *gin.Engine {
	r := gin.New()
	r.POST("/v1/payments/create-checkout-session", h.CreateCheckoutSession)
	r.GET("/v1/payments/status/:session_id", h.GetPaymentStatus)
	r.POST("/v1/webhook/mercadopago", h.MercadoPagoWebhook)
	return r
}

func TestPaymentHandler_CreateCheckoutSession(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("origin header fallback", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().CreateCheckoutSession(gomock.Any(), "b-1", "https://shop.example.com").
			Return(entities.PaymentTransaction{ID: "s-1", CheckoutURL: "https://mp.example/checkout", Amount: decimal.RequireFromString("75"), Currency: "USD"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/create-checkout-session", bytes.NewBufferString(`{"booking_id":"b-1"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Origin", "https://shop.example.com")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if w.Code != http.StatusOK || body["url"] != "https://mp.example/checkout" || body["session_id"] != "s-1" {
			t.Fatalf("unexpected response %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("quote not payable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().CreateCheckoutSession(gomock.Any(), "b-1", "").Return(entities.PaymentTransaction{}, usecase.ErrQuoteNotPayable)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/create-checkout-session", bytes.NewBufferString(`{"booking_id":"b-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("provider unauthorized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().CreateCheckoutSession(gomock.Any(), "b-1", "").Return(entities.PaymentTransaction{}, usecase.ErrPaymentGatewayUnauthorized)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/create-checkout-session", bytes.NewBufferString(`{"booking_id":"b-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_GetPaymentStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIPaymentUseCase(ctrl)
	r := newPaymentRouter(NewPaymentHandler(uc))

	uc.EXPECT().GetStatus(gomock.Any(), "s-1").Return(entities.PaymentTransaction{ID: "s-1", Status: entities.PaymentStatusPaid, ProviderStatus: "approved"}, nil)
	uc.EXPECT().GetStatus(gomock.Any(), "nope").Return(entities.PaymentTransaction{}, usecase.ErrPaymentNotFound)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/payments/status/s-1", nil))
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["payment_status"] != "paid" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/payments/status/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestPaymentHandler_MercadoPagoWebhook(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("payment notification", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().HandleProviderNotification(gomock.Any(), "123").
			Return(entities.PaymentTransaction{ID: "s-1", Status: entities.PaymentStatusPaid}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/webhook/mercadopago", bytes.NewBufferString(`{"type":"payment","action":"payment.updated","data":{"id":"123"}}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("ipn query with empty body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().HandleProviderNotification(gomock.Any(), "789").Return(entities.PaymentTransaction{}, usecase.ErrPaymentNotFound)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/webhook/mercadopago?topic=payment&id=789", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("unknown payments are acknowledged, got %d", w.Code)
		}
	})

	t.Run("other topics ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		r := newPaymentRouter(NewPaymentHandler(mocks.NewMockIPaymentUseCase(ctrl)))

		req := httptest.NewRequest(http.MethodPost, "/v1/webhook/mercadopago", bytes.NewBufferString(`{"type":"merchant_order","data":{"id":1}}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte("ignored")) {
			t.Fatalf("unexpected response %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		r := newPaymentRouter(NewPaymentHandler(mocks.NewMockIPaymentUseCase(ctrl)))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/webhook/mercadopago", bytes.NewBufferString("{")))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}
