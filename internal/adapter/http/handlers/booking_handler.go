package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Lee196444/Text2toss-app/internal/adapter/http/dto/request"
	"github.com/Lee196444/Text2toss-app/internal/adapter/http/dto/response"
	"github.com/Lee196444/Text2toss-app/internal/domain/schedule"
	"github.com/Lee196444/Text2toss-app/internal/usecase"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	usecase usecase.IBookingUseCase
	now     func() time.Time
}

func NewBookingHandler(uc usecase.IBookingUseCase) *BookingHandler {
	return &BookingHandler{usecase: uc, now: time.Now}
}

//	@Summary	Book a pickup slot
//	@Tags		bookings
//	@Accept		json
//	@Produce	json
//	@Param		booking	body		request.CreateBookingRequest	true	"Pickup details"
//	@Success	201		{object}	response.BookingResponse
//	@Failure	400		{object}	pkg.HTTPError
//	@Failure	409		{object}	pkg.HTTPError
//	@Router		/bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var payload request.CreateBookingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}
	cmd, err := payload.ToCommand()
	if err != nil {
		writeError(c, err)
		return
	}

	booking, err := h.usecase.CreateBooking(c.Request.Context(), cmd)
	if err != nil {
		log.Printf("[booking][handler] create failed quote_id=%s date=%s slot=%s err=%v",
			cmd.QuoteID, schedule.FormatDate(cmd.PickupDate), cmd.PickupTime, err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromBooking(booking))
}

//	@Summary	Get a booking
//	@Tags		bookings
//	@Produce	json
//	@Param		booking_id	path		string	true	"Booking ID"
//	@Success	200			{object}	response.BookingResponse
//	@Failure	404			{object}	pkg.HTTPError
//	@Router		/bookings/{booking_id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.usecase.GetByID(c.Request.Context(), c.Param("booking_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromBooking(booking))
}

//	@Summary	Move a booking to in_progress, completed or cancelled
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		booking_id	path		string								true	"Booking ID"
//	@Param		status		body		request.UpdateBookingStatusRequest	true	"Target status"
//	@Success	200			{object}	response.BookingResponse
//	@Failure	400			{object}	pkg.HTTPError
//	@Router		/admin/bookings/{booking_id} [patch]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("booking_id")
	var payload request.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}

	booking, err := h.usecase.UpdateStatus(c.Request.Context(), id, payload.ToStatus())
	if err != nil {
		log.Printf("[booking][handler] status update failed booking_id=%s to=%s err=%v", id, payload.ToStatus(), err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromBooking(booking))
}

//	@Summary	Record pickup completion
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		booking_id	path		string							true	"Booking ID"
//	@Param		completion	body		request.CompleteBookingRequest	true	"Completion note and photo"
//	@Success	200			{object}	response.BookingResponse
//	@Router		/admin/bookings/{booking_id}/completion [post]
func (h *BookingHandler) Complete(c *gin.Context) {
	id := c.Param("booking_id")
	var payload request.CompleteBookingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}

	booking, err := h.usecase.Complete(c.Request.Context(), id, strings.TrimSpace(payload.CompletionNote), strings.TrimSpace(payload.CompletionPhotoURL))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromBooking(booking))
}

//	@Summary	Text the customer the completion note
//	@Tags		admin
//	@Produce	json
//	@Param		booking_id	path		string	true	"Booking ID"
//	@Success	200			{object}	response.BookingResponse
//	@Failure	502			{object}	pkg.HTTPError
//	@Router		/admin/bookings/{booking_id}/notify-customer [post]
func (h *BookingHandler) NotifyCustomer(c *gin.Context) {
	id := c.Param("booking_id")
	booking, err := h.usecase.NotifyCustomer(c.Request.Context(), id)
	if err != nil {
		log.Printf("[booking][handler] notify failed booking_id=%s err=%v", id, err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromBooking(booking))
}

//	@Summary	Bookings and availability for one day
//	@Tags		admin
//	@Produce	json
//	@Param		date	query		string	false	"YYYY-MM-DD, defaults to today"
//	@Success	200		{object}	response.DayScheduleResponse
//	@Router		/admin/daily-schedule [get]
func (h *BookingHandler) DailySchedule(c *gin.Context) {
	date, ok := h.queryDate(c, "date")
	if !ok {
		return
	}
	day, err := h.usecase.DailySchedule(c.Request.Context(), date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromDaySchedule(day))
}

//	@Summary	Monday-to-Sunday schedule
//	@Tags		admin
//	@Produce	json
//	@Param		start_date	query		string	false	"Any day of the week, defaults to today"
//	@Success	200			{object}	response.WeekScheduleResponse
//	@Router		/admin/weekly-schedule [get]
func (h *BookingHandler) WeeklySchedule(c *gin.Context) {
	date, ok := h.queryDate(c, "start_date")
	if !ok {
		return
	}
	week, err := h.usecase.WeeklySchedule(c.Request.Context(), date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromWeekSchedule(week))
}

//	@Summary	Bookings grouped by date
//	@Tags		admin
//	@Produce	json
//	@Param		start_date	query	string	true	"YYYY-MM-DD"
//	@Param		end_date	query	string	true	"YYYY-MM-DD"
//	@Success	200			{object}	map[string][]response.BookingResponse
//	@Router		/admin/calendar-data [get]
func (h *BookingHandler) CalendarData(c *gin.Context) {
	start, end, ok := dateRange(c)
	if !ok {
		return
	}
	data, err := h.usecase.CalendarData(c.Request.Context(), start, end)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromCalendarData(data))
}

// queryDate reads an optional date parameter; absent means today.
func (h *BookingHandler) queryDate(c *gin.Context, key string) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return schedule.Civil(h.now()), true
	}
	date, err := schedule.ParseDate(raw)
	if err != nil {
		writeAppError(c, errMissingDate)
		return time.Time{}, false
	}
	return date, true
}

func dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := schedule.ParseDate(c.Query("start_date"))
	if err != nil {
		writeAppError(c, errMissingDate.WithDetails(map[string]any{"param": "start_date"}))
		return time.Time{}, time.Time{}, false
	}
	end, err := schedule.ParseDate(c.Query("end_date"))
	if err != nil {
		writeAppError(c, errMissingDate.WithDetails(map[string]any{"param": "end_date"}))
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
