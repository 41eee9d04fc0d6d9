package request

import (
	"strings"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/Lee196444/Text2toss-app/internal/domain/schedule"
	"github.com/Lee196444/Text2toss-app/internal/usecase"
)

type CreateBookingRequest struct {
	QuoteID             string `json:"quote_id" binding:"required"`
	PickupDate          string `json:"pickup_date" binding:"required"`
	PickupTime          string `json:"pickup_time" binding:"required"`
	Address             string `json:"address" binding:"required"`
	Phone               string `json:"phone" binding:"required"`
	SpecialInstructions string `json:"special_instructions"`
}

// ToCommand parses pickup_date as YYYY-MM-DD; a bad date is reported as usecase.ErrInvalidDate.
func (r CreateBookingRequest) ToCommand() (usecase.CreateBookingCommand, error) {
	date, err := schedule.ParseDate(r.PickupDate)
	if err != nil {
		return usecase.CreateBookingCommand{}, usecase.ErrInvalidDate
	}
	return usecase.CreateBookingCommand{
		QuoteID:             strings.TrimSpace(r.QuoteID),
		PickupDate:          date,
		PickupTime:          strings.TrimSpace(r.PickupTime),
		Address:             r.Address,
		Phone:               r.Phone,
		SpecialInstructions: r.SpecialInstructions,
	}, nil
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r UpdateBookingStatusRequest) ToStatus() entities.BookingStatus {
	return entities.BookingStatus(strings.ToLower(strings.TrimSpace(r.Status)))
}

type CompleteBookingRequest struct {
	CompletionNote     string `json:"completion_note"`
	CompletionPhotoURL string `json:"completion_photo_url"`
}
