package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/backhomebarber/booking-api/internal/httperr"
	"github.com/backhomebarber/booking-api/internal/middleware"
)

// statusForCode mapeia código de negócio para status HTTP.
func statusForCode(code string) int {
	switch code {
	case "shop_not_found", "barber_not_found", "service_not_found", "appointment_not_found":
		return http.StatusNotFound

	case "slot_conflict", "invalid_state":
		return http.StatusConflict

	case "invalid_date_or_time", "unsupported_method", "invalid_payment_status", "invalid_amount":
		return http.StatusBadRequest

	case "too_soon", "outside_working_hours", "missing_payment_reference":
		return http.StatusUnprocessableEntity

	case "payment_failed", "card_declined", "capture_failed",
		"timeout", "user_cancelled", "user_declined", "provider_unavailable":
		return http.StatusPaymentRequired
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	if code, ok := httperr.BusinessCode(err); ok {
		httperr.Write(c, statusForCode(code), code, err.Error())
		return
	}
	httperr.Internal(c, "internal_error", "unexpected error")
}

func currentUserID(c *gin.Context) uint {
	return c.GetUint(middleware.ContextUserID)
}
