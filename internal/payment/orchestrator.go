package payment

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// ===============================
// Orchestrator state machine
// ===============================

type State string

const (
	StateIdle             State = "idle"
	StateInitiating       State = "initiating"
	StateAwaitingProvider State = "awaiting_provider"
	StateSucceeded        State = "succeeded"
	StateFailed           State = "failed"
	StateCancelled        State = "cancelled"
)

type Request struct {
	Method        Method
	Amount        float64
	AppointmentID uint

	// OnSession é chamado quando a tentativa entra em
	// awaiting_provider, com a sessão para devolver ao app.
	OnSession func(*Session)
}

type attempt struct {
	session  *Session
	provider Provider
	state    State
}

// Orchestrator conduz uma tentativa de pagamento do início ao fim e
// garante no máximo uma tentativa pendente por agendamento.
type Orchestrator struct {
	providers map[Method]Provider
	log       zerolog.Logger

	mu            sync.Mutex
	bySession     map[string]*attempt
	byAppointment map[uint]*attempt
}

func NewOrchestrator(log zerolog.Logger, providers ...Provider) *Orchestrator {
	o := &Orchestrator{
		providers:     make(map[Method]Provider, len(providers)),
		log:           log,
		bySession:     make(map[string]*attempt),
		byAppointment: make(map[uint]*attempt),
	}
	for _, p := range providers {
		o.providers[p.Method()] = p
	}
	return o
}

// Run executa idle → initiating → awaiting_provider → terminal.
// Bloqueia até a tentativa resolver (cada provedor tem timeout
// próprio, nunca trava para sempre).
func (o *Orchestrator) Run(ctx context.Context, req Request) (Outcome, error) {
	provider, ok := o.providers[req.Method]
	if !ok {
		return Outcome{FailureReason: "unsupported_method"}, ErrUnsupportedMethod
	}

	// Valor inválido falha antes de qualquer chamada externa.
	if req.Amount <= 0 {
		return Outcome{FailureReason: ReasonInvalidAmount}, ErrInvalidAmount
	}

	// Uma tentativa nova cancela a anterior do mesmo agendamento.
	o.cancelPrior(req.AppointmentID)

	o.transition(req.AppointmentID, "", StateIdle, StateInitiating)

	session, err := provider.Initiate(ctx, req.Amount, req.AppointmentID)
	if err != nil {
		o.transition(req.AppointmentID, "", StateInitiating, StateFailed)
		return Outcome{FailureReason: failureReasonFor(err)}, err
	}

	at := &attempt{session: session, provider: provider, state: StateAwaitingProvider}
	o.register(at)
	defer o.unregister(at)

	o.transition(req.AppointmentID, session.ID, StateInitiating, StateAwaitingProvider)

	if req.OnSession != nil {
		req.OnSession(session)
	}

	outcome, err := provider.AwaitCompletion(ctx, session)

	final := StateFailed
	switch {
	case outcome.Success || outcome.PendingSettlement:
		final = StateSucceeded
	case errors.Is(err, ErrUserCancelled):
		final = StateCancelled
	}

	o.setState(at, final)
	o.transition(req.AppointmentID, session.ID, StateAwaitingProvider, final)

	return outcome, err
}

// Signal roteia um sinal externo para a sessão. Sessão já resolvida
// ignora o sinal (entrega idempotente).
func (o *Orchestrator) Signal(sessionID string, sig Signal) bool {
	o.mu.Lock()
	at, ok := o.bySession[sessionID]
	o.mu.Unlock()

	if !ok {
		return false
	}
	return at.session.Deliver(sig)
}

// CancelAttempt aborta a tentativa pendente da sessão. Chamadas em
// sessões já terminadas são no-op.
func (o *Orchestrator) CancelAttempt(sessionID string) bool {
	o.mu.Lock()
	at, ok := o.bySession[sessionID]
	o.mu.Unlock()

	if !ok {
		return false
	}

	at.session.Deliver(Signal{Kind: SignalCancel})
	return true
}

// SessionFor devolve a sessão pendente de um agendamento, se houver.
func (o *Orchestrator) SessionFor(appointmentID uint) (*Session, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	at, ok := o.byAppointment[appointmentID]
	if !ok {
		return nil, false
	}
	return at.session, true
}

func (o *Orchestrator) cancelPrior(appointmentID uint) {
	o.mu.Lock()
	prior, ok := o.byAppointment[appointmentID]
	o.mu.Unlock()

	if !ok || prior.session.Resolved() {
		return
	}

	o.log.Warn().
		Str("session", prior.session.ID).
		Uint("appointment", appointmentID).
		Msg("cancelling prior payment attempt")

	prior.session.Deliver(Signal{Kind: SignalCancel})
	prior.provider.Cancel(prior.session)
}

func (o *Orchestrator) register(at *attempt) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.bySession[at.session.ID] = at
	o.byAppointment[at.session.AppointmentID] = at
}

func (o *Orchestrator) unregister(at *attempt) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.bySession, at.session.ID)
	if cur, ok := o.byAppointment[at.session.AppointmentID]; ok && cur == at {
		delete(o.byAppointment, at.session.AppointmentID)
	}
}

func (o *Orchestrator) setState(at *attempt, s State) {
	o.mu.Lock()
	defer o.mu.Unlock()
	at.state = s
}

func (o *Orchestrator) transition(appointmentID uint, sessionID string, from, to State) {
	o.log.Info().
		Uint("appointment", appointmentID).
		Str("session", sessionID).
		Str("from", string(from)).
		Str("to", string(to)).
		Msg("payment transition")
}

func failureReasonFor(err error) string {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return ReasonInvalidAmount
	case errors.Is(err, ErrProviderUnavailable):
		return ReasonUnavailable
	case errors.Is(err, ErrTimeout):
		return ReasonTimeout
	case errors.Is(err, ErrUserCancelled):
		return ReasonUserCancelled
	case errors.Is(err, ErrUserDeclined):
		return ReasonUserDeclined
	}
	return "provider_error"
}
