package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/backhomebarber/booking-api/internal/dto"
	"github.com/backhomebarber/booking-api/internal/httperr"
	"github.com/backhomebarber/booking-api/internal/httpresp"
	"github.com/backhomebarber/booking-api/internal/models"
	"github.com/backhomebarber/booking-api/internal/payment"
	"github.com/backhomebarber/booking-api/internal/usecase/booking"
)

type AppointmentHandler struct {
	book          *booking.Book
	cancel        *booking.CancelAppointment
	complete      *booking.CompleteAppointment
	updatePayment *booking.UpdatePayment
	list          *booking.ListUserAppointments
	orchestrator  *payment.Orchestrator
}

func NewAppointmentHandler(
	book *booking.Book,
	cancel *booking.CancelAppointment,
	complete *booking.CompleteAppointment,
	updatePayment *booking.UpdatePayment,
	list *booking.ListUserAppointments,
	orchestrator *payment.Orchestrator,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:          book,
		cancel:        cancel,
		complete:      complete,
		updatePayment: updatePayment,
		list:          list,
		orchestrator:  orchestrator,
	}
}

// ======================================================
// CREATE
// ======================================================

type createAppointmentRequest struct {
	ShopID    uint   `json:"shopId" binding:"required"`
	BarberID  uint   `json:"barberId" binding:"required"`
	ServiceID uint   `json:"serviceId" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Method    string `json:"method" binding:"required"`
	Notes     string `json:"notes"`
}

type bookResult struct {
	ap  *models.Appointment
	err error
}

// Create trata POST /api/appointments.
//
// Fluxos eletrônicos respondem 202 com a sessão de pagamento assim
// que o provedor inicia; a reserva continua em segundo plano até os
// sinais do app resolverem a tentativa. Dinheiro e falhas antes do
// initiate resolvem na hora (201/4xx).
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	userID := currentUserID(c)

	sessionCh := make(chan *payment.Session, 1)
	resultCh := make(chan bookResult, 1)

	// dinheiro resolve na hora, não tem sessão para devolver
	var onSession func(*payment.Session)
	if payment.Method(req.Method) != payment.MethodCash {
		onSession = func(s *payment.Session) { sessionCh <- s }
	}

	// O commit do pagamento sobrevive ao request HTTP.
	ctx := context.WithoutCancel(c.Request.Context())

	go func() {
		ap, err := h.book.Execute(ctx, booking.BookInput{
			UserID:    userID,
			ShopID:    req.ShopID,
			BarberID:  req.BarberID,
			ServiceID: req.ServiceID,
			Date:      req.Date,
			Time:      req.Time,
			Method:    payment.Method(req.Method),
			Notes:     req.Notes,
			OnSession: onSession,
		})
		resultCh <- bookResult{ap: ap, err: err}
	}()

	select {
	case s := <-sessionCh:
		httpresp.Accepted(c, gin.H{"session": s})

	case res := <-resultCh:
		if res.err != nil {
			code, ok := httperr.BusinessCode(res.err)
			if !ok {
				writeError(c, res.err)
				return
			}
			if res.ap != nil {
				// pagamento falhou, agendamento fica pendente/retentável
				c.JSON(statusForCode(code), gin.H{
					"error_code":  code,
					"appointment": dto.FromAppointment(res.ap),
				})
				return
			}
			httperr.Write(c, statusForCode(code), code, res.err.Error())
			return
		}
		httpresp.Created(c, dto.FromAppointment(res.ap))
	}
}

// ======================================================
// LIST / GET
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	aps, err := h.list.Execute(c.Request.Context(), currentUserID(c), false)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, dto.FromAppointments(aps))
}

// Upcoming devolve só o que ainda vai acontecer (sem cancelados,
// concluídos ou no-show).
func (h *AppointmentHandler) Upcoming(c *gin.Context) {
	aps, err := h.list.Execute(c.Request.Context(), currentUserID(c), true)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, dto.FromAppointments(aps))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.list.Get(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := gin.H{"appointment": dto.FromAppointment(ap)}

	// sessão de pagamento ainda pendente, se houver
	if s, ok := h.orchestrator.SessionFor(ap.ID); ok {
		resp["session"] = s
	}

	c.JSON(http.StatusOK, resp)
}

// ======================================================
// CANCEL / COMPLETE
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(ap))
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(ap))
}

// ======================================================
// PAYMENT WRITE-BACK
// ======================================================

type updatePaymentRequest struct {
	PaymentStatus string `json:"paymentStatus" binding:"required"`
	PaymentMethod string `json:"paymentMethod"`
	PaymentID     string `json:"paymentId"`
}

func (h *AppointmentHandler) UpdatePayment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req updatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	ap, err := h.updatePayment.Execute(c.Request.Context(), booking.UpdatePaymentInput{
		UserID:        currentUserID(c),
		AppointmentID: id,
		PaymentStatus: req.PaymentStatus,
		PaymentMethod: req.PaymentMethod,
		PaymentID:     req.PaymentID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(ap))
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}
