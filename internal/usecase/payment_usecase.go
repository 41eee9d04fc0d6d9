package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/Lee196444/Text2toss-app/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidPaymentInput        = errors.New("invalid payment input")
	ErrPaymentNotFound            = errors.New("payment not found")
	ErrQuoteNotPayable            = errors.New("quote is not approved for payment")
	ErrBookingNotPayable          = errors.New("booking is not payable")
	ErrPaymentGatewayBadRequest   = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized = errors.New("payment gateway unauthorized")
)

// PaymentSettings are the checkout values that come from configuration.
type PaymentSettings struct {
	Currency        string
	PublicBaseURL   string
	NotificationURL string
	BusinessName    string
}

// IPaymentUseCase collects money for booked quotes through the payment gateway.
//
// Payment is refused unless the quote is auto_approved or approved and the booking
// is not waiting on the customer or cancelled. The amount always comes from the
// stored quote's effective price.
type IPaymentUseCase interface {
	CreateCheckoutSession(ctx context.Context, bookingID, originURL string) (entities.PaymentTransaction, error)
	GetStatus(ctx context.Context, sessionID string) (entities.PaymentTransaction, error)
	HandleProviderNotification(ctx context.Context, providerPaymentID string) (entities.PaymentTransaction, error)
	ListByBookingID(ctx context.Context, bookingID string) ([]entities.PaymentTransaction, error)
}

type PaymentUseCase struct {
	repo     interfaces.IPaymentRepository
	quotes   interfaces.IQuoteRepository
	bookings interfaces.IBookingRepository
	gateway  interfaces.IPaymentGateway
	settings PaymentSettings
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IPaymentRepository, quotes interfaces.IQuoteRepository, bookings interfaces.IBookingRepository, gateway interfaces.IPaymentGateway, settings PaymentSettings) *PaymentUseCase {
	if settings.Currency == "" {
		settings.Currency = "USD"
	}
	return &PaymentUseCase{repo: repo, quotes: quotes, bookings: bookings, gateway: gateway, settings: settings}
}

func (u *PaymentUseCase) CreateCheckoutSession(ctx context.Context, bookingID, originURL string) (entities.PaymentTransaction, error) {
	log.Printf("[payment][usecase] checkout start raw_booking_id=%q", bookingID)
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return entities.PaymentTransaction{}, fmt.Errorf("%w: booking_id is required", ErrInvalidPaymentInput)
	}
	if u.gateway == nil {
		return entities.PaymentTransaction{}, errors.New("payment gateway not configured")
	}

	b, err := u.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return entities.PaymentTransaction{}, err
	}
	if b.ID == "" {
		return entities.PaymentTransaction{}, ErrBookingNotFound
	}
	if b.Status == entities.BookingStatusPendingCustomerApproval || b.Status == entities.BookingStatusCancelled {
		log.Printf("[payment][usecase] booking not payable booking_id=%s status=%s", b.ID, b.Status)
		return entities.PaymentTransaction{}, fmt.Errorf("%w: status is %s", ErrBookingNotPayable, b.Status)
	}

	q, err := u.quotes.GetByID(ctx, b.QuoteID)
	if err != nil {
		return entities.PaymentTransaction{}, err
	}
	if q.ID == "" {
		return entities.PaymentTransaction{}, ErrQuoteNotFound
	}
	if !q.ApprovalStatus.Payable() {
		log.Printf("[payment][usecase] quote not payable quote_id=%s status=%s", q.ID, q.ApprovalStatus)
		return entities.PaymentTransaction{}, fmt.Errorf("%w: status is %s", ErrQuoteNotPayable, q.ApprovalStatus)
	}
	amount := q.EffectivePrice()
	if !amount.IsPositive() {
		return entities.PaymentTransaction{}, fmt.Errorf("%w: amount must be positive", ErrQuoteNotPayable)
	}

	sessionID := uuid.NewString()
	base := strings.TrimRight(strings.TrimSpace(originURL), "/")
	if base == "" {
		base = strings.TrimRight(u.settings.PublicBaseURL, "/")
	}
	req := interfaces.CheckoutRequest{
		Reference:       sessionID,
		Title:           fmt.Sprintf("%s junk removal", u.messagesBusiness()),
		Description:     fmt.Sprintf("Pickup %s %s", b.PickupDate.Format("2006-01-02"), b.PickupTime),
		Amount:          amount,
		Currency:        u.settings.Currency,
		SuccessURL:      base + "/payment-success?session_id=" + sessionID,
		FailureURL:      base + "/payment-cancelled?session_id=" + sessionID,
		PendingURL:      base + "/payment-success?session_id=" + sessionID,
		NotificationURL: u.settings.NotificationURL,
		Metadata: map[string]any{
			"quote_id":   q.ID,
			"booking_id": b.ID,
			"session_id": sessionID,
		},
	}

	log.Printf("[payment][usecase] calling payment gateway booking_id=%s amount=%s", b.ID, amount)
	session, err := u.gateway.CreateCheckoutSession(ctx, req)
	if err != nil {
		log.Printf("[payment][usecase] payment gateway failed booking_id=%s err=%v", b.ID, err)
		if isGatewayUnauthorized(err) {
			return entities.PaymentTransaction{}, ErrPaymentGatewayUnauthorized
		}
		if isGatewayBadRequest(err) {
			return entities.PaymentTransaction{}, ErrPaymentGatewayBadRequest
		}
		return entities.PaymentTransaction{}, err
	}

	ts := time.Now().UTC()
	tx := entities.PaymentTransaction{
		ID:              sessionID,
		QuoteID:         q.ID,
		BookingID:       b.ID,
		Amount:          amount,
		Currency:        u.settings.Currency,
		Status:          entities.PaymentStatusInitiated,
		CheckoutURL:     session.URL,
		PreferenceID:    session.PreferenceID,
		ProviderPayload: session.Raw,
		CreatedAt:       ts,
		UpdatedAt:       ts,
	}
	created, err := u.repo.Create(ctx, tx)
	if err != nil {
		log.Printf("[payment][usecase] payment repository create failed booking_id=%s session_id=%s err=%v", b.ID, sessionID, err)
		return entities.PaymentTransaction{}, err
	}
	log.Printf("[payment][usecase] checkout success booking_id=%s session_id=%s preference_id=%s", b.ID, created.ID, created.PreferenceID)
	return created, nil
}

func (u *PaymentUseCase) messagesBusiness() string {
	return Messages{BusinessName: u.settings.BusinessName}.business()
}

// GetStatus returns the transaction, refreshing it from the provider while it is
// still open and a provider payment is known.
func (u *PaymentUseCase) GetStatus(ctx context.Context, sessionID string) (entities.PaymentTransaction, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return entities.PaymentTransaction{}, fmt.Errorf("%w: session_id is required", ErrInvalidPaymentInput)
	}
	tx, err := u.repo.GetByID(ctx, sessionID)
	if err != nil {
		return entities.PaymentTransaction{}, err
	}
	if tx.ID == "" {
		return entities.PaymentTransaction{}, ErrPaymentNotFound
	}
	if tx.Status != entities.PaymentStatusInitiated || tx.ProviderPaymentID == "" || u.gateway == nil {
		return tx, nil
	}

	pp, err := u.gateway.GetPayment(ctx, tx.ProviderPaymentID)
	if err != nil {
		log.Printf("[payment][usecase] status refresh failed session_id=%s err=%v", tx.ID, err)
		return tx, nil
	}
	return u.applyProviderPayment(ctx, tx, pp)
}

// HandleProviderNotification reconciles a provider payment with our transaction
// through its external reference.
func (u *PaymentUseCase) HandleProviderNotification(ctx context.Context, providerPaymentID string) (entities.PaymentTransaction, error) {
	providerPaymentID = strings.TrimSpace(providerPaymentID)
	if providerPaymentID == "" {
		return entities.PaymentTransaction{}, fmt.Errorf("%w: payment id is required", ErrInvalidPaymentInput)
	}
	if u.gateway == nil {
		return entities.PaymentTransaction{}, errors.New("payment gateway not configured")
	}
	pp, err := u.gateway.GetPayment(ctx, providerPaymentID)
	if err != nil {
		log.Printf("[payment][usecase] webhook lookup failed provider_payment_id=%s err=%v", providerPaymentID, err)
		return entities.PaymentTransaction{}, err
	}
	tx, err := u.repo.GetByID(ctx, pp.ExternalReference)
	if err != nil {
		return entities.PaymentTransaction{}, err
	}
	if tx.ID == "" {
		log.Printf("[payment][usecase] webhook for unknown reference=%q provider_payment_id=%s", pp.ExternalReference, providerPaymentID)
		return entities.PaymentTransaction{}, ErrPaymentNotFound
	}
	return u.applyProviderPayment(ctx, tx, pp)
}

func (u *PaymentUseCase) applyProviderPayment(ctx context.Context, tx entities.PaymentTransaction, pp interfaces.ProviderPayment) (entities.PaymentTransaction, error) {
	status := entities.PaymentStatusFromProvider(pp.Status)
	if tx.Status == entities.PaymentStatusPaid {
		return tx, nil
	}
	if status == tx.Status && pp.ID == tx.ProviderPaymentID && pp.Status == tx.ProviderStatus {
		return tx, nil
	}
	updated, err := u.repo.UpdateProviderStatus(ctx, tx.ID, interfaces.PaymentUpdate{
		Status:            status,
		ProviderPaymentID: pp.ID,
		ProviderStatus:    pp.Status,
		ProviderPayload:   pp.Raw,
	})
	if err != nil {
		log.Printf("[payment][usecase] status update failed session_id=%s err=%v", tx.ID, err)
		return entities.PaymentTransaction{}, err
	}
	if updated.ID == "" {
		return entities.PaymentTransaction{}, ErrPaymentNotFound
	}
	log.Printf("[payment][usecase] status updated session_id=%s status=%s provider_status=%s", updated.ID, updated.Status, updated.ProviderStatus)
	return updated, nil
}

func (u *PaymentUseCase) ListByBookingID(ctx context.Context, bookingID string) ([]entities.PaymentTransaction, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return nil, fmt.Errorf("%w: booking_id is required", ErrInvalidPaymentInput)
	}
	return u.repo.ListByBookingID(ctx, bookingID)
}

func isGatewayBadRequest(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}
