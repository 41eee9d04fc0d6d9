package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestApprovalStatus_CanTransitionTo(t *testing.T) {
	all := []ApprovalStatus{ApprovalStatusAutoApproved, ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected}
	for _, from := range all {
		for _, to := range all {
			want := from == ApprovalStatusPending && (to == ApprovalStatusApproved || to == ApprovalStatusRejected)
			if got := from.CanTransitionTo(to); got != want {
				t.Fatalf("%s -> %s: expected %v, got %v", from, to, want, got)
			}
		}
	}
}

func TestApprovalStatus_Payable(t *testing.T) {
	if !ApprovalStatusAutoApproved.Payable() || !ApprovalStatusApproved.Payable() {
		t.Fatalf("auto_approved and approved must be payable")
	}
	if ApprovalStatusPending.Payable() || ApprovalStatusRejected.Payable() {
		t.Fatalf("pending and rejected must not be payable")
	}
}

func TestBookingStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingStatusScheduled, BookingStatusInProgress, true},
		{BookingStatusInProgress, BookingStatusCompleted, true},
		{BookingStatusScheduled, BookingStatusCompleted, false},
		{BookingStatusCompleted, BookingStatusCancelled, false},
		{BookingStatusCancelled, BookingStatusScheduled, false},
		{BookingStatusPendingCustomerApproval, BookingStatusScheduled, true},
		{BookingStatusPendingCustomerApproval, BookingStatusInProgress, false},
		{BookingStatusInProgress, BookingStatusCancelled, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestBookingStatus_HoldsSlot(t *testing.T) {
	if !BookingStatusPendingCustomerApproval.HoldsSlot() {
		t.Fatalf("pending customer approval keeps its slot")
	}
	if BookingStatusCancelled.HoldsSlot() || BookingStatusCompleted.HoldsSlot() {
		t.Fatalf("terminal bookings release their slot")
	}
}

func TestQuote_EffectivePrice(t *testing.T) {
	q := Quote{TotalPrice: decimal.NewFromInt(170)}
	if !q.EffectivePrice().Equal(decimal.NewFromInt(170)) {
		t.Fatalf("expected total price")
	}
	approved := decimal.NewFromInt(220)
	q.ApprovedPrice = &approved
	if !q.EffectivePrice().Equal(approved) {
		t.Fatalf("expected approved price")
	}
}

func TestPaymentStatusFromProvider(t *testing.T) {
	if PaymentStatusFromProvider("approved") != PaymentStatusPaid {
		t.Fatalf("approved should map to paid")
	}
	if PaymentStatusFromProvider("rejected") != PaymentStatusFailed {
		t.Fatalf("rejected should map to failed")
	}
	if PaymentStatusFromProvider("in_process") != PaymentStatusInitiated {
		t.Fatalf("in_process should stay initiated")
	}
}

func TestParseItemSize(t *testing.T) {
	if s, ok := ParseItemSize(" Large "); !ok || s != ItemSizeLarge {
		t.Fatalf("expected large, got %q %v", s, ok)
	}
	if _, ok := ParseItemSize("xl"); ok {
		t.Fatalf("xl should be rejected")
	}
}
