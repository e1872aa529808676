package payment

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ===============================
// Provider contract
// ===============================

type Method string

const (
	MethodStripe  Method = "stripe"
	MethodPayPal  Method = "paypal"
	MethodCashApp Method = "cashapp"
	MethodCash    Method = "cash"
)

func ValidMethod(m Method) bool {
	switch m {
	case MethodStripe, MethodPayPal, MethodCashApp, MethodCash:
		return true
	}
	return false
}

// Provider é a capacidade comum dos provedores de pagamento.
// Cada variante absorve a ambiguidade do seu próprio fluxo; quem
// chama nunca lida com detalhes de webview, deep link ou SDK.
type Provider interface {
	Method() Method

	// Initiate abre o fluxo do provedor e devolve a sessão do tentativa.
	Initiate(ctx context.Context, amount float64, appointmentID uint) (*Session, error)

	// AwaitCompletion resolve quando o fluxo termina, pelo mecanismo
	// próprio do provedor. Nunca bloqueia para sempre: cada variante
	// tem seu próprio timeout.
	AwaitCompletion(ctx context.Context, s *Session) (Outcome, error)

	// Cancel aborta a sessão (best-effort, idempotente).
	Cancel(s *Session)
}

// Outcome é o resultado final de uma tentativa de pagamento.
// Nunca é persistido direto: vira o commit do Appointment.
type Outcome struct {
	Success           bool   `json:"success"`
	ProviderReference string `json:"provider_reference,omitempty"`
	FailureReason     string `json:"failure_reason,omitempty"`

	// PendingSettlement: pagamento em dinheiro, acerto presencial.
	PendingSettlement bool `json:"pending_settlement,omitempty"`
}

// ===============================
// Signals
// ===============================

type SignalKind string

const (
	// Navegação observada na webview do fluxo hospedado (PayPal).
	SignalNavigation SignalKind = "navigation"

	// Resposta sim/não do usuário após voltar do Cash App.
	SignalAttestation SignalKind = "attestation"

	// Resultado da confirmação de cartão do SDK no app (Stripe).
	SignalCardResult SignalKind = "card_result"

	// Cancelamento explícito do usuário.
	SignalCancel SignalKind = "cancel"
)

type Signal struct {
	Kind SignalKind `json:"kind"`

	URL       string `json:"url,omitempty"`
	Confirmed bool   `json:"confirmed,omitempty"`
	Succeeded bool   `json:"succeeded,omitempty"`
	Reference string `json:"reference,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// ===============================
// Session
// ===============================

// Session é o handle efêmero de uma tentativa de pagamento,
// devolvido por Initiate e consumido por AwaitCompletion.
type Session struct {
	ID            string  `json:"id"`
	AppointmentID uint    `json:"appointment_id"`
	Method        Method  `json:"method"`
	Amount        float64 `json:"amount"`

	// Referência do provedor (payment intent / order id), se já existir.
	Reference string `json:"reference,omitempty"`

	ClientSecret string `json:"client_secret,omitempty"`
	ApprovalURL  string `json:"approval_url,omitempty"`
	DeepLink     string `json:"deep_link,omitempty"`
	LinkShared   bool   `json:"link_shared,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	mu       sync.Mutex
	resolved bool
	signals  chan Signal
}

func NewSession(method Method, appointmentID uint, amount float64) *Session {
	return &Session{
		ID:            uuid.NewString(),
		AppointmentID: appointmentID,
		Method:        method,
		Amount:        amount,
		CreatedAt:     time.Now(),
		signals:       make(chan Signal, 8),
	}
}

// Deliver entrega um sinal externo à sessão. Depois que a tentativa
// resolve, qualquer sinal repetido é ignorado (navegação duplicada
// da webview, toque duplo no alerta de confirmação).
func (s *Session) Deliver(sig Signal) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.resolved {
		return false
	}

	select {
	case s.signals <- sig:
		return true
	default:
		return false
	}
}

func (s *Session) Resolved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolved
}

// resolve marca a sessão como terminada. Retorna false se já estava.
func (s *Session) resolve() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.resolved {
		return false
	}
	s.resolved = true
	return true
}
