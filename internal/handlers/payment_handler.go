package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/backhomebarber/booking-api/internal/httperr"
	"github.com/backhomebarber/booking-api/internal/payment"
)

// PaymentHandler recebe os sinais do app que resolvem uma tentativa
// de pagamento pendente: navegação da webview (PayPal), atestado
// sim/não (Cash App), resultado do SDK de cartão (Stripe) e o
// cancelamento explícito.
type PaymentHandler struct {
	orchestrator *payment.Orchestrator
}

func NewPaymentHandler(orchestrator *payment.Orchestrator) *PaymentHandler {
	return &PaymentHandler{orchestrator: orchestrator}
}

type navigationRequest struct {
	URL string `json:"url" binding:"required"`
}

// Navigation trata POST /api/payments/:session/navigation.
func (h *PaymentHandler) Navigation(c *gin.Context) {
	var req navigationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	h.deliver(c, payment.Signal{
		Kind: payment.SignalNavigation,
		URL:  req.URL,
	})
}

type attestationRequest struct {
	Confirmed *bool `json:"confirmed" binding:"required"`
}

// Attestation trata POST /api/payments/:session/attestation.
func (h *PaymentHandler) Attestation(c *gin.Context) {
	var req attestationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	h.deliver(c, payment.Signal{
		Kind:      payment.SignalAttestation,
		Confirmed: *req.Confirmed,
	})
}

type cardResultRequest struct {
	Succeeded bool   `json:"succeeded"`
	Reference string `json:"reference"`
	Reason    string `json:"reason"`
}

// CardResult trata POST /api/payments/:session/card-result.
func (h *PaymentHandler) CardResult(c *gin.Context) {
	var req cardResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	h.deliver(c, payment.Signal{
		Kind:      payment.SignalCardResult,
		Succeeded: req.Succeeded,
		Reference: req.Reference,
		Reason:    req.Reason,
	})
}

// Cancel trata POST /api/payments/:session/cancel.
func (h *PaymentHandler) Cancel(c *gin.Context) {
	sessionID := c.Param("session")

	if !h.orchestrator.CancelAttempt(sessionID) {
		httperr.NotFound(c, "session_not_found", "no pending payment session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

func (h *PaymentHandler) deliver(c *gin.Context, sig payment.Signal) {
	sessionID := c.Param("session")

	delivered := h.orchestrator.Signal(sessionID, sig)
	if !delivered {
		// sessão desconhecida ou já resolvida: sinal ignorado
		httperr.NotFound(c, "session_not_found", "no pending payment session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"delivered": true})
}
