package response

import (
	"time"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/Lee196444/Text2toss-app/internal/domain/schedule"
	"github.com/Lee196444/Text2toss-app/internal/usecase"
)

type BookingResponse struct {
	ID                  string `json:"id"`
	QuoteID             string `json:"quote_id"`
	PickupDate          string `json:"pickup_date"`
	PickupTime          string `json:"pickup_time"`
	Address             string `json:"address"`
	Phone               string `json:"phone"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
	Status              string `json:"status"`

	RequiresCustomerApproval bool       `json:"requires_customer_approval"`
	OriginalPrice            *float64   `json:"original_price,omitempty"`
	AdjustedPrice            *float64   `json:"adjusted_price,omitempty"`
	PriceAdjustmentReason    string     `json:"price_adjustment_reason,omitempty"`
	CustomerNotes            string     `json:"customer_notes,omitempty"`
	CustomerRespondedAt      *time.Time `json:"customer_responded_at,omitempty"`

	CompletionNote     string     `json:"completion_note,omitempty"`
	CompletionPhotoURL string     `json:"completion_photo_url,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromBooking never exposes the customer approval token; it only travels by SMS.
func FromBooking(b entities.Booking) BookingResponse {
	return BookingResponse{
		ID:                       b.ID,
		QuoteID:                  b.QuoteID,
		PickupDate:               schedule.FormatDate(b.PickupDate),
		PickupTime:               b.PickupTime,
		Address:                  b.Address,
		Phone:                    b.Phone,
		SpecialInstructions:      b.SpecialInstructions,
		Status:                   string(b.Status),
		RequiresCustomerApproval: b.RequiresCustomerApproval,
		OriginalPrice:            floatPtr(b.OriginalPrice),
		AdjustedPrice:            floatPtr(b.AdjustedPrice),
		PriceAdjustmentReason:    b.PriceAdjustmentReason,
		CustomerNotes:            b.CustomerNotes,
		CustomerRespondedAt:      b.CustomerRespondedAt,
		CompletionNote:           b.CompletionNote,
		CompletionPhotoURL:       b.CompletionPhotoURL,
		CompletedAt:              b.CompletedAt,
		CreatedAt:                b.CreatedAt,
		UpdatedAt:                b.UpdatedAt,
	}
}

func FromBookings(bs []entities.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, FromBooking(b))
	}
	return out
}

type AvailabilityResponse struct {
	Date           string   `json:"date"`
	AvailableCount int      `json:"available_count"`
	TotalSlots     int      `json:"total_slots"`
	BookedSlots    []string `json:"booked_slots"`
	AvailableSlots []string `json:"available_slots"`
	IsRestricted   bool     `json:"is_restricted"`
	Status         string   `json:"status"`
}

func FromAvailability(d entities.AvailabilityDay) AvailabilityResponse {
	booked, available := d.BookedSlots, d.AvailableSlots
	if booked == nil {
		booked = []string{}
	}
	if available == nil {
		available = []string{}
	}
	return AvailabilityResponse{
		Date:           schedule.FormatDate(d.Date),
		AvailableCount: d.AvailableCount,
		TotalSlots:     d.TotalSlots,
		BookedSlots:    booked,
		AvailableSlots: available,
		IsRestricted:   d.IsRestricted,
		Status:         string(d.Status),
	}
}

// FromAvailabilityRange keys the days by date, the shape calendar widgets expect.
func FromAvailabilityRange(days []entities.AvailabilityDay) map[string]AvailabilityResponse {
	out := make(map[string]AvailabilityResponse, len(days))
	for _, d := range days {
		out[schedule.FormatDate(d.Date)] = FromAvailability(d)
	}
	return out
}

type DayScheduleResponse struct {
	Date         string               `json:"date"`
	Bookings     []BookingResponse    `json:"bookings"`
	Availability AvailabilityResponse `json:"availability"`
}

func FromDaySchedule(d usecase.DaySchedule) DayScheduleResponse {
	return DayScheduleResponse{
		Date:         schedule.FormatDate(d.Date),
		Bookings:     FromBookings(d.Bookings),
		Availability: FromAvailability(d.Availability),
	}
}

type WeekScheduleResponse struct {
	WeekStart string                `json:"week_start"`
	WeekEnd   string                `json:"week_end"`
	Days      []DayScheduleResponse `json:"days"`
}

func FromWeekSchedule(w usecase.WeekSchedule) WeekScheduleResponse {
	days := make([]DayScheduleResponse, 0, len(w.Days))
	for _, d := range w.Days {
		days = append(days, FromDaySchedule(d))
	}
	return WeekScheduleResponse{
		WeekStart: schedule.FormatDate(w.WeekStart),
		WeekEnd:   schedule.FormatDate(w.WeekEnd),
		Days:      days,
	}
}

func FromCalendarData(data map[string][]entities.Booking) map[string][]BookingResponse {
	out := make(map[string][]BookingResponse, len(data))
	for day, bs := range data {
		out[day] = FromBookings(bs)
	}
	return out
}

type PriceApprovalResponse struct {
	BookingID     string  `json:"booking_id"`
	OriginalPrice float64 `json:"original_price"`
	AdjustedPrice float64 `json:"adjusted_price"`
	PriceIncrease float64 `json:"price_increase"`
	Reason        string  `json:"reason"`
	PickupDate    string  `json:"pickup_date"`
	PickupTime    string  `json:"pickup_time"`
	Address       string  `json:"address"`
	BusinessName  string  `json:"business_name"`
}

func FromPriceApprovalView(v usecase.PriceApprovalView) PriceApprovalResponse {
	return PriceApprovalResponse{
		BookingID:     v.BookingID,
		OriginalPrice: v.OriginalPrice.InexactFloat64(),
		AdjustedPrice: v.AdjustedPrice.InexactFloat64(),
		PriceIncrease: v.PriceIncrease.InexactFloat64(),
		Reason:        v.Reason,
		PickupDate:    schedule.FormatDate(v.PickupDate),
		PickupTime:    v.PickupTime,
		Address:       v.Address,
		BusinessName:  v.BusinessName,
	}
}
