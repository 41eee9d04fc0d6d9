package handlers

import (
	"errors"
	"net/http"

	"github.com/Lee196444/Text2toss-app/internal/adapter/http/dto/request"
	"github.com/Lee196444/Text2toss-app/internal/usecase"
	"github.com/Lee196444/Text2toss-app/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidPayload = pkg.NewDomainErrorSimple("VALIDATION_ERROR", "Invalid request payload", http.StatusBadRequest)
	errMissingDate    = pkg.NewDomainErrorSimple("VALIDATION_ERROR", "Invalid or missing date, expected YYYY-MM-DD", http.StatusBadRequest)
)

func mapError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidItems),
		errors.Is(err, usecase.ErrInvalidImage),
		errors.Is(err, usecase.ErrInvalidQuoteID),
		errors.Is(err, usecase.ErrInvalidBookingID),
		errors.Is(err, usecase.ErrInvalidBookingInput),
		errors.Is(err, usecase.ErrInvalidDate),
		errors.Is(err, usecase.ErrInvalidDateRange),
		errors.Is(err, usecase.ErrInvalidSlot),
		errors.Is(err, usecase.ErrInvalidAction),
		errors.Is(err, usecase.ErrInvalidApprovedPrice),
		errors.Is(err, usecase.ErrInvalidPaymentInput),
		errors.Is(err, request.ErrInvalidApprovedPrice):
		return pkg.NewDomainErrorSimple("VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrBookingNotFound):
		return pkg.NewDomainErrorSimple("NOT_FOUND", "Booking not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrApprovalTokenNotFound):
		return pkg.NewDomainErrorSimple("NOT_FOUND", "Approval request not found or already used", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrSlotTaken):
		return pkg.NewDomainErrorSimple("CONFLICT", "Time slot already booked", http.StatusConflict)
	case errors.Is(err, usecase.ErrRestrictedDay):
		return pkg.NewDomainErrorSimple("RESTRICTED_DAY", "Pickups are only available Monday to Thursday", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteNotPending),
		errors.Is(err, usecase.ErrQuoteRejected),
		errors.Is(err, usecase.ErrQuoteNotPayable),
		errors.Is(err, usecase.ErrBookingNotPayable),
		errors.Is(err, usecase.ErrBookingNotCompleted):
		return pkg.NewDomainErrorSimple("INVALID_STATE", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("VALIDATION_ERROR", "Payment provider rejected the request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusBadGateway)
	case errors.Is(err, usecase.ErrNotificationFailed):
		return pkg.NewDomainError("BAD_GATEWAY", "Notification could not be delivered", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func writeError(c *gin.Context, err error) {
	appErr := mapError(err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func writeAppError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
