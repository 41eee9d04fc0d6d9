package handlers

import (
	"log"
	"net/http"

	"github.com/Lee196444/Text2toss-app/internal/adapter/http/dto/request"
	"github.com/Lee196444/Text2toss-app/internal/adapter/http/dto/response"
	"github.com/Lee196444/Text2toss-app/internal/usecase"

	"github.com/gin-gonic/gin"
)

// CustomerApprovalHandler serves the link texted to customers when an admin
// changes the price of a booked pickup.
type CustomerApprovalHandler struct {
	usecase usecase.ICustomerApprovalUseCase
}

func NewCustomerApprovalHandler(uc usecase.ICustomerApprovalUseCase) *CustomerApprovalHandler {
	return &CustomerApprovalHandler{usecase: uc}
}

//	@Summary	Show a pending price change
//	@Tags		customer-approval
//	@Produce	json
//	@Param		token	path		string	true	"Approval token"
//	@Success	200		{object}	response.PriceApprovalResponse
//	@Failure	404		{object}	pkg.HTTPError
//	@Router		/customer-approval/{token} [get]
func (h *CustomerApprovalHandler) GetApproval(c *gin.Context) {
	view, err := h.usecase.GetByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPriceApprovalView(view))
}

//	@Summary	Accept or decline a price change
//	@Tags		customer-approval
//	@Accept		json
//	@Produce	json
//	@Param		token		path		string							true	"Approval token"
//	@Param		response	body		request.CustomerApprovalRequest	true	"Customer answer"
//	@Success	200			{object}	response.BookingResponse
//	@Failure	404			{object}	pkg.HTTPError
//	@Router		/customer-approval/{token} [post]
func (h *CustomerApprovalHandler) Respond(c *gin.Context) {
	var payload request.CustomerApprovalRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}

	booking, err := h.usecase.Resolve(c.Request.Context(), c.Param("token"), *payload.Approved, payload.CustomerNotes)
	if err != nil {
		writeError(c, err)
		return
	}
	log.Printf("[customer-approval][handler] resolved booking_id=%s approved=%t status=%s", booking.ID, *payload.Approved, booking.Status)
	c.JSON(http.StatusOK, response.FromBooking(booking))
}
