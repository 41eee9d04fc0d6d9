package usecase

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/Lee196444/Text2toss-app/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

var ErrApprovalTokenNotFound = errors.New("approval token not found or already used")

const approvalTokenBytes = 32

// PriceApprovalView is what the customer sees on the approval page.
type PriceApprovalView struct {
	BookingID     string
	OriginalPrice decimal.Decimal
	AdjustedPrice decimal.Decimal
	PriceIncrease decimal.Decimal
	Reason        string
	PickupDate    time.Time
	PickupTime    string
	Address       string
	BusinessName  string
}

// ICustomerApprovalUseCase runs the customer side of an admin price change.
type ICustomerApprovalUseCase interface {
	BeginPriceApproval(ctx context.Context, bookingID string, original, adjusted decimal.Decimal, reason string) (entities.Booking, error)
	GetByToken(ctx context.Context, token string) (PriceApprovalView, error)
	Resolve(ctx context.Context, token string, approved bool, notes string) (entities.Booking, error)
}

type CustomerApprovalUseCase struct {
	repo     interfaces.IBookingRepository
	notify   notificationSender
	messages Messages
	newToken func() (string, error)
}

var _ ICustomerApprovalUseCase = (*CustomerApprovalUseCase)(nil)

func NewCustomerApprovalUseCase(repo interfaces.IBookingRepository, notifier interfaces.INotifier, messages Messages) *CustomerApprovalUseCase {
	return &CustomerApprovalUseCase{
		repo:     repo,
		notify:   newNotificationSender(notifier),
		messages: messages,
		newToken: newApprovalToken,
	}
}

// newApprovalToken returns 32 random bytes, URL-safe base64 without padding.
func newApprovalToken() (string, error) {
	buf := make([]byte, approvalTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// BeginPriceApproval moves a scheduled booking into pending_customer_approval and
// texts the customer a single-use link.
func (u *CustomerApprovalUseCase) BeginPriceApproval(ctx context.Context, bookingID string, original, adjusted decimal.Decimal, reason string) (entities.Booking, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return entities.Booking{}, ErrInvalidBookingID
	}
	token, err := u.newToken()
	if err != nil {
		return entities.Booking{}, fmt.Errorf("generate approval token: %w", err)
	}

	req := entities.PriceApprovalRequest{
		Token:         token,
		OriginalPrice: original,
		AdjustedPrice: adjusted,
		Reason:        strings.TrimSpace(reason),
	}
	b, err := u.repo.BeginPriceApproval(ctx, bookingID, req, time.Now().UTC())
	if err != nil {
		log.Printf("[customer-approval][usecase] begin failed booking_id=%s err=%v", bookingID, err)
		return entities.Booking{}, err
	}
	if b.ID == "" {
		current, err := u.repo.GetByID(ctx, bookingID)
		if err != nil {
			return entities.Booking{}, err
		}
		if current.ID == "" {
			return entities.Booking{}, ErrBookingNotFound
		}
		log.Printf("[customer-approval][usecase] begin rejected booking_id=%s status=%s", bookingID, current.Status)
		return entities.Booking{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, entities.BookingStatusPendingCustomerApproval)
	}
	log.Printf("[customer-approval][usecase] approval requested booking_id=%s original=%s adjusted=%s", b.ID, original, adjusted)

	u.notify.send(ctx, "customer-approval", b.Phone, u.messages.priceApprovalRequested(b, original, adjusted), "")
	return b, nil
}

func (u *CustomerApprovalUseCase) GetByToken(ctx context.Context, token string) (PriceApprovalView, error) {
	b, err := u.lookup(ctx, token)
	if err != nil {
		return PriceApprovalView{}, err
	}
	view := PriceApprovalView{
		BookingID:    b.ID,
		Reason:       b.PriceAdjustmentReason,
		PickupDate:   b.PickupDate,
		PickupTime:   b.PickupTime,
		Address:      b.Address,
		BusinessName: u.messages.business(),
	}
	if b.OriginalPrice != nil {
		view.OriginalPrice = *b.OriginalPrice
	}
	if b.AdjustedPrice != nil {
		view.AdjustedPrice = *b.AdjustedPrice
	}
	view.PriceIncrease = view.AdjustedPrice.Sub(view.OriginalPrice)
	return view, nil
}

// Resolve consumes the token. Approving restores the booking to scheduled at the new
// price; declining cancels it and frees the slot. A token works exactly once.
func (u *CustomerApprovalUseCase) Resolve(ctx context.Context, token string, approved bool, notes string) (entities.Booking, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.Booking{}, ErrApprovalTokenNotFound
	}
	d := entities.CustomerDecision{
		Approved:    approved,
		Notes:       strings.TrimSpace(notes),
		RespondedAt: time.Now().UTC(),
	}
	b, err := u.repo.ResolvePriceApproval(ctx, token, d)
	if err != nil {
		log.Printf("[customer-approval][usecase] resolve failed err=%v", err)
		return entities.Booking{}, err
	}
	if b.ID == "" {
		log.Printf("[customer-approval][usecase] resolve rejected: token unknown or consumed")
		return entities.Booking{}, ErrApprovalTokenNotFound
	}
	log.Printf("[customer-approval][usecase] resolved booking_id=%s approved=%t status=%s", b.ID, approved, b.Status)

	u.notify.send(ctx, "customer-approval", b.Phone, u.messages.priceApprovalResolved(b), "")
	return b, nil
}

func (u *CustomerApprovalUseCase) lookup(ctx context.Context, token string) (entities.Booking, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.Booking{}, ErrApprovalTokenNotFound
	}
	b, err := u.repo.GetByApprovalToken(ctx, token)
	if err != nil {
		return entities.Booking{}, err
	}
	if b.ID == "" || b.Status != entities.BookingStatusPendingCustomerApproval {
		return entities.Booking{}, ErrApprovalTokenNotFound
	}
	return b, nil
}
