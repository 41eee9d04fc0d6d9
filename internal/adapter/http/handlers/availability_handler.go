package handlers

import (
	"net/http"

	"github.com/Lee196444/Text2toss-app/internal/adapter/http/dto/response"
	"github.com/Lee196444/Text2toss-app/internal/domain/schedule"
	"github.com/Lee196444/Text2toss-app/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	scheduler usecase.ISchedulerUseCase
}

func NewAvailabilityHandler(scheduler usecase.ISchedulerUseCase) *AvailabilityHandler {
	return &AvailabilityHandler{scheduler: scheduler}
}

//	@Summary	Free and booked slots for a day
//	@Tags		availability
//	@Produce	json
//	@Param		date	path		string	true	"YYYY-MM-DD"
//	@Success	200		{object}	response.AvailabilityResponse
//	@Failure	400		{object}	pkg.HTTPError
//	@Router		/availability/{date} [get]
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	date, err := schedule.ParseDate(c.Param("date"))
	if err != nil {
		writeAppError(c, errMissingDate)
		return
	}
	day, err := h.scheduler.Availability(c.Request.Context(), date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromAvailability(day))
}

//	@Summary	Availability for every day in a range, keyed by date
//	@Tags		availability
//	@Produce	json
//	@Param		start_date	query		string	true	"YYYY-MM-DD"
//	@Param		end_date	query		string	true	"YYYY-MM-DD"
//	@Success	200			{object}	map[string]response.AvailabilityResponse
//	@Failure	400			{object}	pkg.HTTPError
//	@Router		/availability-range [get]
func (h *AvailabilityHandler) GetAvailabilityRange(c *gin.Context) {
	start, end, ok := dateRange(c)
	if !ok {
		return
	}
	days, err := h.scheduler.AvailabilityRange(c.Request.Context(), start, end)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromAvailabilityRange(days))
}
