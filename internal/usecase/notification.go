package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/Lee196444/Text2toss-app/internal/domain/schedule"
	"github.com/Lee196444/Text2toss-app/internal/usecase/interfaces"
	"github.com/Lee196444/Text2toss-app/pkg/phone"

	"github.com/shopspring/decimal"
)

const defaultNotifyTimeout = 10 * time.Second

// Messages holds what customer-facing texts need to know about the business.
type Messages struct {
	BusinessName  string
	PublicBaseURL string
}

func (m Messages) business() string {
	if strings.TrimSpace(m.BusinessName) == "" {
		return "Text2toss"
	}
	return m.BusinessName
}

// ApprovalLink is the page where a customer accepts or declines a new price.
func (m Messages) ApprovalLink(token string) string {
	return strings.TrimRight(m.PublicBaseURL, "/") + "/customer-approval/" + token
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// bookingConfirmed only states a firm total once the quote is payable; quotes
// still under review may be repriced by an admin.
func (m Messages) bookingConfirmed(b entities.Booking, q entities.Quote) string {
	var price string
	switch {
	case q.ApprovalStatus.Payable():
		price = "Total " + money(q.EffectivePrice()) + "."
	case q.Classified() && q.EffectivePrice().IsPositive():
		price = "Estimated total " + money(q.EffectivePrice()) + ", final price after review."
	default:
		price = "We will text you the price after review."
	}
	return fmt.Sprintf("%s: your junk pickup is booked for %s, %s at %s. %s Booking ref %s.",
		m.business(), schedule.FormatDate(b.PickupDate), b.PickupTime, b.Address, price, shortRef(b.ID))
}

func (m Messages) statusChanged(b entities.Booking) string {
	switch b.Status {
	case entities.BookingStatusInProgress:
		return fmt.Sprintf("%s: our crew is on the way to %s for your %s pickup.", m.business(), b.Address, b.PickupTime)
	case entities.BookingStatusCompleted:
		return fmt.Sprintf("%s: your pickup is complete. Thanks for choosing us!", m.business())
	case entities.BookingStatusCancelled:
		return fmt.Sprintf("%s: your pickup on %s has been cancelled.", m.business(), schedule.FormatDate(b.PickupDate))
	}
	return ""
}

func (m Messages) priceApprovalRequested(b entities.Booking, original, adjusted decimal.Decimal) string {
	return fmt.Sprintf("%s: the price for your %s pickup changed from %s to %s. Please approve or decline here: %s",
		m.business(), schedule.FormatDate(b.PickupDate), money(original), money(adjusted), m.ApprovalLink(b.CustomerApprovalToken))
}

func (m Messages) priceApprovalResolved(b entities.Booking) string {
	if b.Status == entities.BookingStatusScheduled {
		return fmt.Sprintf("%s: thanks, your pickup on %s at %s is confirmed.", m.business(), schedule.FormatDate(b.PickupDate), b.PickupTime)
	}
	return fmt.Sprintf("%s: your booking was cancelled with no charges.", m.business())
}

func (m Messages) completionNotice(b entities.Booking) string {
	msg := fmt.Sprintf("%s: your junk removal at %s is complete.", m.business(), b.Address)
	if b.CompletionNote != "" {
		msg += " " + b.CompletionNote
	}
	return msg
}

func shortRef(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}

// notificationSender delivers texts after the state change has been committed.
// Failures are logged and never returned to the caller.
type notificationSender struct {
	notifier interfaces.INotifier
	timeout  time.Duration
}

func newNotificationSender(n interfaces.INotifier) notificationSender {
	return notificationSender{notifier: n, timeout: defaultNotifyTimeout}
}

func (s notificationSender) send(ctx context.Context, component, phone, body, mediaURL string) bool {
	if s.notifier == nil || strings.TrimSpace(phone) == "" || body == "" {
		log.Printf("[%s][notify] skipped phone_set=%t notifier_set=%t", component, strings.TrimSpace(phone) != "", s.notifier != nil)
		return false
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	res, err := s.notifier.Send(ctx, interfaces.Notification{To: phone, Body: body, MediaURL: mediaURL})
	if err != nil {
		log.Printf("[%s][notify] send failed to=%s err=%v", component, maskPhone(phone), err)
		return false
	}
	log.Printf("[%s][notify] sent to=%s id=%s status=%s", component, maskPhone(phone), res.ID, res.Status)
	return true
}

func maskPhone(p string) string {
	return phone.Mask(p)
}
