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

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAction        = errors.New("invalid approval action")
	ErrInvalidApprovedPrice = errors.New("approved price must be greater than zero")
	ErrQuoteNotPending      = errors.New("quote is not pending approval")
	ErrCascadeIncomplete    = errors.New("price change not propagated to every booking")
)

type ApprovalAction string

const (
	ActionApprove ApprovalAction = "approve"
	ActionReject  ApprovalAction = "reject"
)

// DefaultPriceChangeEpsilon is the largest price difference treated as "unchanged".
var DefaultPriceChangeEpsilon = decimal.RequireFromString("0.01")

// DecideCommand is an admin's decision on a pending quote.
type DecideCommand struct {
	Action        ApprovalAction
	AdminNotes    string
	ApprovedPrice *decimal.Decimal
	Actor         string
}

// DecisionResult carries the updated quote and the bookings that now wait on the customer.
// CascadeErr wraps ErrCascadeIncomplete when the decision was recorded but some
// bookings could not be moved to customer approval.
type DecisionResult struct {
	Quote            entities.Quote
	PendingCustomer  []entities.Booking
	FailedBookingIDs []string
	CascadeErr       error
}

// IApprovalUseCase applies admin decisions to quotes awaiting approval.
type IApprovalUseCase interface {
	Decide(ctx context.Context, quoteID string, cmd DecideCommand) (DecisionResult, error)
}

type ApprovalUseCase struct {
	quotes   interfaces.IQuoteRepository
	bookings interfaces.IBookingRepository
	customer ICustomerApprovalUseCase
	epsilon  decimal.Decimal
}

var _ IApprovalUseCase = (*ApprovalUseCase)(nil)

func NewApprovalUseCase(quotes interfaces.IQuoteRepository, bookings interfaces.IBookingRepository, customer ICustomerApprovalUseCase, epsilon decimal.Decimal) *ApprovalUseCase {
	if !epsilon.IsPositive() {
		epsilon = DefaultPriceChangeEpsilon
	}
	return &ApprovalUseCase{quotes: quotes, bookings: bookings, customer: customer, epsilon: epsilon}
}

func (u *ApprovalUseCase) Decide(ctx context.Context, quoteID string, cmd DecideCommand) (DecisionResult, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return DecisionResult{}, ErrInvalidQuoteID
	}

	var target entities.ApprovalStatus
	switch ApprovalAction(strings.ToLower(strings.TrimSpace(string(cmd.Action)))) {
	case ActionApprove:
		target = entities.ApprovalStatusApproved
	case ActionReject:
		target = entities.ApprovalStatusRejected
	default:
		return DecisionResult{}, fmt.Errorf("%w: %q", ErrInvalidAction, cmd.Action)
	}
	if cmd.ApprovedPrice != nil && !cmd.ApprovedPrice.IsPositive() {
		return DecisionResult{}, ErrInvalidApprovedPrice
	}

	q, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return DecisionResult{}, err
	}
	if q.ID == "" {
		return DecisionResult{}, ErrQuoteNotFound
	}
	if !q.ApprovalStatus.CanTransitionTo(target) {
		log.Printf("[approval][usecase] decision rejected quote_id=%s status=%s target=%s", quoteID, q.ApprovalStatus, target)
		return DecisionResult{}, fmt.Errorf("%w: status is %s", ErrQuoteNotPending, q.ApprovalStatus)
	}

	decision := entities.ApprovalDecision{
		Status:     target,
		AdminNotes: strings.TrimSpace(cmd.AdminNotes),
		ApprovedBy: strings.TrimSpace(cmd.Actor),
		ApprovedAt: time.Now().UTC(),
	}
	if decision.ApprovedBy == "" {
		decision.ApprovedBy = "admin"
	}
	if target == entities.ApprovalStatusApproved {
		if cmd.ApprovedPrice == nil && !q.Classified() {
			return DecisionResult{}, fmt.Errorf("%w: unclassified quotes need an explicit price", ErrInvalidApprovedPrice)
		}
		if cmd.ApprovedPrice != nil {
			p := cmd.ApprovedPrice.Round(2)
			decision.ApprovedPrice = &p
		}
	}

	updated, err := u.quotes.RecordDecision(ctx, quoteID, decision)
	if err != nil {
		log.Printf("[approval][usecase] record decision failed quote_id=%s err=%v", quoteID, err)
		return DecisionResult{}, err
	}
	if updated.ID == "" {
		log.Printf("[approval][usecase] decision lost race quote_id=%s", quoteID)
		return DecisionResult{}, fmt.Errorf("%w: already decided", ErrQuoteNotPending)
	}
	log.Printf("[approval][usecase] decision recorded quote_id=%s status=%s by=%s effective_price=%s", updated.ID, updated.ApprovalStatus, updated.ApprovedBy, updated.EffectivePrice())

	result := DecisionResult{Quote: updated}
	if target == entities.ApprovalStatusApproved && decision.ApprovedPrice != nil &&
		decision.ApprovedPrice.Sub(q.TotalPrice).Abs().GreaterThan(u.epsilon) {
		result.PendingCustomer, result.FailedBookingIDs, result.CascadeErr = u.cascade(ctx, updated, q.TotalPrice, *decision.ApprovedPrice)
	}
	return result, nil
}

// cascade asks every scheduled booking of the quote to accept the new price. The
// decision is already committed, so failures are reported through the returned
// error instead of undoing it.
func (u *ApprovalUseCase) cascade(ctx context.Context, q entities.Quote, original, adjusted decimal.Decimal) ([]entities.Booking, []string, error) {
	bookings, err := u.bookings.ListByQuoteID(ctx, q.ID)
	if err != nil {
		log.Printf("[approval][usecase] cascade lookup failed quote_id=%s err=%v", q.ID, err)
		return nil, nil, fmt.Errorf("%w: listing bookings: %w", ErrCascadeIncomplete, err)
	}

	reason := q.AdminNotes
	if reason == "" {
		reason = "Price adjusted after review of your items."
	}

	var moved []entities.Booking
	var failed []string
	for _, b := range bookings {
		if b.Status != entities.BookingStatusScheduled {
			continue
		}
		pending, err := u.customer.BeginPriceApproval(ctx, b.ID, original, adjusted, reason)
		if err != nil {
			log.Printf("[approval][usecase] cascade failed quote_id=%s booking_id=%s err=%v", q.ID, b.ID, err)
			failed = append(failed, b.ID)
			continue
		}
		moved = append(moved, pending)
	}
	log.Printf("[approval][usecase] cascade done quote_id=%s moved=%d failed=%d", q.ID, len(moved), len(failed))
	if len(failed) > 0 {
		return moved, failed, fmt.Errorf("%w: %d booking(s) failed", ErrCascadeIncomplete, len(failed))
	}
	return moved, failed, nil
}
