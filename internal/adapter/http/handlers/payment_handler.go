package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Lee196444/Text2toss-app/internal/adapter/http/dto/request"
	"github.com/Lee196444/Text2toss-app/internal/adapter/http/dto/response"
	"github.com/Lee196444/Text2toss-app/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

//	@Summary	Open a MercadoPago checkout for a booking
//	@Tags		payments
//	@Accept		json
//	@Produce	json
//	@Param		checkout	body		request.CheckoutSessionRequest	true	"Booking to pay"
//	@Success	200			{object}	response.CheckoutSessionResponse
//	@Failure	400			{object}	pkg.HTTPError
//	@Failure	404			{object}	pkg.HTTPError
//	@Router		/payments/create-checkout-session [post]
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	var payload request.CheckoutSessionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}
	origin := strings.TrimSpace(payload.OriginURL)
	if origin == "" {
		origin = c.GetHeader("Origin")
	}

	log.Printf("[payment][handler] checkout start booking_id=%s", payload.BookingID)
	tx, err := h.usecase.CreateCheckoutSession(c.Request.Context(), payload.BookingID, origin)
	if err != nil {
		log.Printf("[payment][handler] checkout failed booking_id=%s err=%v", payload.BookingID, err)
		writeError(c, err)
		return
	}
	log.Printf("[payment][handler] checkout success booking_id=%s session_id=%s", payload.BookingID, tx.ID)
	c.JSON(http.StatusOK, response.FromCheckoutSession(tx))
}

//	@Summary	Poll a checkout session
//	@Tags		payments
//	@Produce	json
//	@Param		session_id	path		string	true	"Session ID"
//	@Success	200			{object}	response.PaymentStatusResponse
//	@Failure	404			{object}	pkg.HTTPError
//	@Router		/payments/status/{session_id} [get]
func (h *PaymentHandler) GetPaymentStatus(c *gin.Context) {
	tx, err := h.usecase.GetStatus(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentStatus(tx))
}

// MercadoPagoWebhook acknowledges every notification it cannot act on so the
// provider stops retrying; only lookup failures on our side are reported as errors.
//
//	@Summary	MercadoPago payment notification
//	@Tags		payments
//	@Accept		json
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/webhook/mercadopago [post]
func (h *PaymentHandler) MercadoPagoWebhook(c *gin.Context) {
	notification, err := readNotification(c)
	if err != nil {
		log.Printf("[payment][webhook] invalid payload err=%v", err)
		writeAppError(c, errInvalidPayload)
		return
	}

	query := map[string]string{
		"type":    c.Query("type"),
		"topic":   c.Query("topic"),
		"id":      c.Query("id"),
		"data.id": c.Query("data.id"),
	}
	paymentID := notification.ResolvePaymentID(query)
	if paymentID == "" {
		log.Printf("[payment][webhook] ignored type=%s action=%s", notification.Type, notification.Action)
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	tx, err := h.usecase.HandleProviderNotification(c.Request.Context(), paymentID)
	if err != nil {
		if errors.Is(err, usecase.ErrPaymentNotFound) {
			log.Printf("[payment][webhook] unknown payment provider_payment_id=%s", paymentID)
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}
		log.Printf("[payment][webhook] failed provider_payment_id=%s err=%v", paymentID, err)
		writeError(c, err)
		return
	}
	log.Printf("[payment][webhook] processed provider_payment_id=%s session_id=%s status=%s", paymentID, tx.ID, tx.Status)
	c.JSON(http.StatusOK, gin.H{"status": "processed", "session_id": tx.ID, "payment_status": string(tx.Status)})
}

// readNotification tolerates an empty body; IPN calls put everything in the query.
func readNotification(c *gin.Context) (request.MercadoPagoNotification, error) {
	var n request.MercadoPagoNotification
	raw, err := c.GetRawData()
	if err != nil {
		return n, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return n, nil
	}
	if err := json.Unmarshal(raw, &n); err != nil {
		return n, err
	}
	return n, nil
}
