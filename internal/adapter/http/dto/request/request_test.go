package request

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/Lee196444/Text2toss-app/internal/usecase"
)

func TestCreateQuoteRequest_ToItems(t *testing.T) {
	r := CreateQuoteRequest{Items: []QuoteItemRequest{{Name: "Sofa", Quantity: 1, Size: " Large "}}}
	items := r.ToItems()
	if len(items) != 1 || items[0].Size != entities.ItemSizeLarge {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestApprovalDecisionRequest_ToCommand(t *testing.T) {
	t.Run("number price", func(t *testing.T) {
		var r ApprovalDecisionRequest
		if err := json.Unmarshal([]byte(`{"action":" Approve ","approved_price":217.5}`), &r); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		cmd, err := r.ToCommand("admin")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cmd.Action != usecase.ActionApprove || cmd.ApprovedPrice == nil || cmd.ApprovedPrice.String() != "217.5" || cmd.Actor != "admin" {
			t.Fatalf("unexpected command: %+v", cmd)
		}
	})

	t.Run("string price", func(t *testing.T) {
		r := ApprovalDecisionRequest{Action: "approve", ApprovedPrice: "99.90"}
		cmd, err := r.ToCommand("admin")
		if err != nil || cmd.ApprovedPrice.String() != "99.9" {
			t.Fatalf("unexpected command %+v err=%v", cmd, err)
		}
	})

	t.Run("no price", func(t *testing.T) {
		r := ApprovalDecisionRequest{Action: "reject"}
		cmd, err := r.ToCommand("admin")
		if err != nil || cmd.ApprovedPrice != nil {
			t.Fatalf("unexpected command %+v err=%v", cmd, err)
		}
	})

	t.Run("bad price", func(t *testing.T) {
		for _, v := range []any{"abc", true} {
			r := ApprovalDecisionRequest{Action: "approve", ApprovedPrice: v}
			if _, err := r.ToCommand("admin"); !errors.Is(err, ErrInvalidApprovedPrice) {
				t.Fatalf("expected ErrInvalidApprovedPrice for %v, got %v", v, err)
			}
		}
	})
}

func TestCreateBookingRequest_ToCommand(t *testing.T) {
	r := CreateBookingRequest{QuoteID: " q-1 ", PickupDate: "2025-03-03", PickupTime: "08:00-10:00"}
	cmd, err := r.ToCommand()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.QuoteID != "q-1" || cmd.PickupDate.Weekday().String() != "Monday" {
		t.Fatalf("unexpected command: %+v", cmd)
	}

	r.PickupDate = "03/03/2025"
	if _, err := r.ToCommand(); !errors.Is(err, usecase.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestMercadoPagoNotification_ResolvePaymentID(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		query map[string]string
		want  string
	}{
		{"numeric data id", `{"type":"payment","data":{"id":123}}`, nil, "123"},
		{"string data id", `{"type":"payment","data":{"id":"456"}}`, nil, "456"},
		{"query ipn", `{}`, map[string]string{"topic": "payment", "id": "789"}, "789"},
		{"query data.id", `{}`, map[string]string{"type": "payment", "data.id": "42"}, "42"},
		{"merchant order ignored", `{"type":"merchant_order","data":{"id":1}}`, nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n MercadoPagoNotification
			if err := json.Unmarshal([]byte(tt.body), &n); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := n.ResolvePaymentID(tt.query); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
