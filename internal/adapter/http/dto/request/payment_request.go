package request

import (
	"encoding/json"
	"strings"
)

type CheckoutSessionRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
	OriginURL string `json:"origin_url"`
}

type CustomerApprovalRequest struct {
	Approved      *bool  `json:"approved" binding:"required"`
	CustomerNotes string `json:"customer_notes"`
}

// MercadoPagoNotification is the webhook body. Older IPN calls carry the id only in
// the query string (?topic=payment&id=...), newer ones in data.id.
type MercadoPagoNotification struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID json.RawMessage `json:"id"`
	} `json:"data"`
}

// ResolvePaymentID returns the provider payment id, or "" when the notification is
// not about a payment.
func (n MercadoPagoNotification) ResolvePaymentID(query map[string]string) string {
	topic := strings.TrimSpace(n.Type)
	if topic == "" {
		topic = strings.TrimSpace(query["type"])
	}
	if topic == "" {
		topic = strings.TrimSpace(query["topic"])
	}
	if topic != "" && topic != "payment" {
		return ""
	}

	if id := rawID(n.Data.ID); id != "" {
		return id
	}
	if id := strings.TrimSpace(query["data.id"]); id != "" {
		return id
	}
	return strings.TrimSpace(query["id"])
}

// rawID accepts both "123" and 123.
func rawID(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return strings.TrimSpace(str)
	}
	return s
}
