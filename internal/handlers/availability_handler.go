package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/backhomebarber/booking-api/internal/domain/appointment"
	"github.com/backhomebarber/booking-api/internal/httperr"
	"github.com/backhomebarber/booking-api/internal/usecase/booking"
)

type AvailabilityHandler struct {
	getAvailability *booking.GetAvailability
}

func NewAvailabilityHandler(getAvailability *booking.GetAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{getAvailability: getAvailability}
}

// GetSlots trata GET /api/shops/:slug/availability?barber_id=&date=
func (h *AvailabilityHandler) GetSlots(c *gin.Context) {
	slug := c.Param("slug")

	barberID, err := strconv.ParseUint(c.Query("barber_id"), 10, 32)
	if err != nil || barberID == 0 {
		httperr.BadRequest(c, "invalid_barber_id", "barber_id must be a positive integer")
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD")
		return
	}

	slots, err := h.getAvailability.Execute(c.Request.Context(), domain.AvailabilityInput{
		ShopSlug: slug,
		BarberID: uint(barberID),
		Date:     date,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  c.Query("date"),
		"slots": slots,
	})
}
