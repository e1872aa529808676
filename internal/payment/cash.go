package payment

import (
	"context"

	"github.com/rs/zerolog"
)

// ===============================
// Cash (acerto presencial)
// ===============================

// CashProvider não tem fluxo eletrônico: o pagamento acontece na
// barbearia e a equipe confirma depois.
type CashProvider struct {
	log zerolog.Logger
}

func NewCashProvider(log zerolog.Logger) *CashProvider {
	return &CashProvider{log: log}
}

func (p *CashProvider) Method() Method { return MethodCash }

func (p *CashProvider) Initiate(ctx context.Context, amount float64, appointmentID uint) (*Session, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return NewSession(MethodCash, appointmentID, amount), nil
}

// AwaitCompletion resolve na hora: aguardando acerto presencial.
func (p *CashProvider) AwaitCompletion(ctx context.Context, s *Session) (Outcome, error) {
	defer s.resolve()
	return Outcome{PendingSettlement: true}, nil
}

func (p *CashProvider) Cancel(s *Session) {
	if s == nil {
		return
	}
	s.resolve()
}
