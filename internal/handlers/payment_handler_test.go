package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backhomebarber/booking-api/internal/payment"
)

// cashAppForTest usa o provedor real com o opener de compartilhamento:
// o fluxo todo resolve por sinais HTTP, sem UI.
func cashAppForTest() payment.Provider {
	return payment.NewCashAppProvider(payment.ShareLinkOpener{}, "$tag", time.Minute, zerolog.Nop())
}

func newPaymentRouter(o *payment.Orchestrator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPaymentHandler(o)

	r := gin.New()
	r.POST("/api/payments/:session/attestation", h.Attestation)
	r.POST("/api/payments/:session/cancel", h.Cancel)
	return r
}

func runAttempt(t *testing.T, o *payment.Orchestrator) (*payment.Session, chan error) {
	t.Helper()

	sessionCh := make(chan *payment.Session, 1)
	done := make(chan error, 1)

	go func() {
		_, err := o.Run(context.Background(), payment.Request{
			Method:        payment.MethodCashApp,
			Amount:        25,
			AppointmentID: 7,
			OnSession:     func(s *payment.Session) { sessionCh <- s },
		})
		done <- err
	}()

	select {
	case s := <-sessionCh:
		return s, done
	case <-time.After(time.Second):
		t.Fatal("session never delivered")
		return nil, nil
	}
}

func TestPaymentAttestationEndpoint(t *testing.T) {
	o := payment.NewOrchestrator(zerolog.Nop(), cashAppForTest())
	r := newPaymentRouter(o)

	s, done := runAttempt(t, o)

	req := httptest.NewRequest(http.MethodPost, "/api/payments/"+s.ID+"/attestation",
		strings.NewReader(`{"confirmed":true}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, <-done)

	// sessão resolvida: o mesmo sinal de novo é 404
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/payments/"+s.ID+"/attestation",
		strings.NewReader(`{"confirmed":true}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaymentCancelEndpoint(t *testing.T) {
	o := payment.NewOrchestrator(zerolog.Nop(), cashAppForTest())
	r := newPaymentRouter(o)

	s, done := runAttempt(t, o)

	req := httptest.NewRequest(http.MethodPost, "/api/payments/"+s.ID+"/cancel", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.ErrorIs(t, <-done, payment.ErrUserCancelled)
}

func TestPaymentSignalUnknownSession(t *testing.T) {
	o := payment.NewOrchestrator(zerolog.Nop(), cashAppForTest())
	r := newPaymentRouter(o)

	req := httptest.NewRequest(http.MethodPost, "/api/payments/nope/attestation",
		strings.NewReader(`{"confirmed":true}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
