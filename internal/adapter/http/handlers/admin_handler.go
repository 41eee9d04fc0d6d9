package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/Lee196444/Text2toss-app/internal/adapter/http/dto/request"
	"github.com/Lee196444/Text2toss-app/internal/adapter/http/dto/response"
	"github.com/Lee196444/Text2toss-app/internal/usecase"

	"github.com/gin-gonic/gin"
)

const (
	AdminUserHeader  = "X-Admin-User"
	defaultAdminUser = "admin"
)

// AdminHandler serves the quote review queue.
type AdminHandler struct {
	quotes   usecase.IQuoteUseCase
	approval usecase.IApprovalUseCase
}

func NewAdminHandler(quotes usecase.IQuoteUseCase, approval usecase.IApprovalUseCase) *AdminHandler {
	return &AdminHandler{quotes: quotes, approval: approval}
}

//	@Summary	List quotes waiting for review
//	@Tags		admin
//	@Produce	json
//	@Success	200	{array}	response.QuoteResponse
//	@Router		/admin/pending-quotes [get]
func (h *AdminHandler) ListPendingQuotes(c *gin.Context) {
	quotes, err := h.quotes.ListPending(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuotes(quotes))
}

//	@Summary	Count quotes per approval status
//	@Tags		admin
//	@Produce	json
//	@Success	200	{object}	response.ApprovalStatsResponse
//	@Router		/admin/quote-approval-stats [get]
func (h *AdminHandler) ApprovalStats(c *gin.Context) {
	stats, err := h.quotes.ApprovalStats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromApprovalStats(stats))
}

// DecideQuote approves or rejects a pending quote. An approved price that
// differs from the computed one starts a customer price approval on every
// scheduled booking of the quote.
//
//	@Summary	Approve or reject a quote
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		quote_id	path		string							true	"Quote ID"
//	@Param		decision	body		request.ApprovalDecisionRequest	true	"Decision"
//	@Success	200			{object}	response.DecisionResponse
//	@Failure	400			{object}	pkg.HTTPError
//	@Failure	404			{object}	pkg.HTTPError
//	@Router		/admin/quotes/{quote_id}/approve [post]
func (h *AdminHandler) DecideQuote(c *gin.Context) {
	quoteID := c.Param("quote_id")
	var payload request.ApprovalDecisionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}
	cmd, err := payload.ToCommand(adminActor(c))
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := h.approval.Decide(c.Request.Context(), quoteID, cmd)
	if err != nil {
		log.Printf("[approval][handler] decide failed quote_id=%s action=%s err=%v", quoteID, cmd.Action, err)
		writeError(c, err)
		return
	}
	log.Printf("[approval][handler] decided quote_id=%s status=%s pending_customer=%d failed=%d",
		quoteID, result.Quote.ApprovalStatus, len(result.PendingCustomer), len(result.FailedBookingIDs))
	if result.CascadeErr != nil {
		log.Printf("[approval][handler] decision recorded with warning quote_id=%s err=%v", quoteID, result.CascadeErr)
	}
	c.JSON(http.StatusOK, response.FromDecision(result))
}

func adminActor(c *gin.Context) string {
	if actor := strings.TrimSpace(c.GetHeader(AdminUserHeader)); actor != "" {
		return actor
	}
	return defaultAdminUser
}
