package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/Lee196444/Text2toss-app/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/shopspring/decimal"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")
var ErrInvalidProviderPaymentID = errors.New("invalid provider payment id")

// mockPaymentPrefix marks payment ids minted in mock mode; the rest of the id is
// the external reference of the checkout it settles.
const mockPaymentPrefix = "mock-"

type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type paymentGetter interface {
	Get(ctx context.Context, id int) (*payment.Response, error)
}

// MercadoPagoGateway opens hosted checkouts (preferences) and reads back payments.
type MercadoPagoGateway struct {
	preferences preferenceCreator
	payments    paymentGetter
	mockMode    bool
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string, mock bool) (*MercadoPagoGateway, error) {
	if mock {
		log.Printf("[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true}, nil
	}

	if accessToken == "" {
		log.Printf("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{
		preferences: preference.NewClient(cfg),
		payments:    payment.NewClient(cfg),
	}, nil
}

func (g *MercadoPagoGateway) CreateCheckoutSession(ctx context.Context, req interfaces.CheckoutRequest) (interfaces.CheckoutSession, error) {
	if g != nil && g.mockMode {
		return mockCheckoutSession(req)
	}
	if g == nil || g.preferences == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return interfaces.CheckoutSession{}, ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[payment][gateway] checkout start reference=%s amount=%s", req.Reference, req.Amount)

	resp, err := g.preferences.Create(ctx, toPreferenceRequest(req))
	if err != nil {
		log.Printf("[payment][gateway] sdk preference create failed err=%v", err)
		return interfaces.CheckoutSession{}, err
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[payment][gateway] response marshal failed err=%v", err)
		return interfaces.CheckoutSession{}, err
	}
	url := resp.InitPoint
	if url == "" {
		url = resp.SandboxInitPoint
	}
	log.Printf("[payment][gateway] checkout success reference=%s preference_id=%s", req.Reference, resp.ID)
	return interfaces.CheckoutSession{PreferenceID: resp.ID, URL: url, Raw: raw}, nil
}

func (g *MercadoPagoGateway) GetPayment(ctx context.Context, providerPaymentID string) (interfaces.ProviderPayment, error) {
	providerPaymentID = strings.TrimSpace(providerPaymentID)
	if g != nil && g.mockMode {
		return mockPayment(providerPaymentID)
	}
	if g == nil || g.payments == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return interfaces.ProviderPayment{}, ErrMercadoPagoGatewayNotConfigured
	}

	id, err := strconv.Atoi(providerPaymentID)
	if err != nil {
		return interfaces.ProviderPayment{}, fmt.Errorf("%w: %q", ErrInvalidProviderPaymentID, providerPaymentID)
	}
	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		log.Printf("[payment][gateway] sdk payment get failed provider_payment_id=%d err=%v", id, err)
		return interfaces.ProviderPayment{}, err
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return interfaces.ProviderPayment{}, err
	}
	log.Printf("[payment][gateway] payment fetched provider_payment_id=%d provider_status=%s", resp.ID, resp.Status)
	return interfaces.ProviderPayment{
		ID:                strconv.Itoa(resp.ID),
		Status:            resp.Status,
		ExternalReference: resp.ExternalReference,
		Amount:            decimal.NewFromFloat(resp.TransactionAmount),
		Raw:               raw,
	}, nil
}

func toPreferenceRequest(req interfaces.CheckoutRequest) preference.Request {
	amount, _ := req.Amount.Round(2).Float64()
	out := preference.Request{
		Items: []preference.ItemRequest{{
			ID:          req.Reference,
			Title:       req.Title,
			Description: req.Description,
			CurrencyID:  req.Currency,
			Quantity:    1,
			UnitPrice:   amount,
		}},
		BackURLs: &preference.BackURLsRequest{
			Success: req.SuccessURL,
			Pending: req.PendingURL,
			Failure: req.FailureURL,
		},
		ExternalReference: req.Reference,
		NotificationURL:   req.NotificationURL,
		Metadata:          req.Metadata,
	}
	if req.SuccessURL != "" {
		out.AutoReturn = "approved"
	}
	return out
}

func mockCheckoutSession(req interfaces.CheckoutRequest) (interfaces.CheckoutSession, error) {
	log.Printf("[payment][gateway] mock checkout start reference=%s", req.Reference)
	prefID := "mock-pref-" + strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
	url := req.SuccessURL
	if url == "" {
		url = "https://mercadopago.test/checkout/" + prefID
	}

	raw, err := json.Marshal(map[string]any{
		"id":                 prefID,
		"init_point":         url,
		"external_reference": req.Reference,
		"mock_payment_id":    mockPaymentPrefix + req.Reference,
		"date_created":       time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		log.Printf("[payment][gateway] mock response marshal failed err=%v", err)
		return interfaces.CheckoutSession{}, err
	}
	log.Printf("[payment][gateway] mock checkout success preference_id=%s", prefID)
	return interfaces.CheckoutSession{PreferenceID: prefID, URL: url, Raw: raw}, nil
}

func mockPayment(providerPaymentID string) (interfaces.ProviderPayment, error) {
	ref, ok := strings.CutPrefix(providerPaymentID, mockPaymentPrefix)
	if !ok || ref == "" {
		return interfaces.ProviderPayment{}, fmt.Errorf("%w: %q", ErrInvalidProviderPaymentID, providerPaymentID)
	}
	raw, err := json.Marshal(map[string]any{
		"id":                 providerPaymentID,
		"status":             "approved",
		"status_detail":      "accredited",
		"external_reference": ref,
		"date_approved":      time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return interfaces.ProviderPayment{}, err
	}
	log.Printf("[payment][gateway] mock payment approved provider_payment_id=%s", providerPaymentID)
	return interfaces.ProviderPayment{
		ID:                providerPaymentID,
		Status:            "approved",
		ExternalReference: ref,
		Raw:               raw,
	}, nil
}
