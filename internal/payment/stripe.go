package payment

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// ===============================
// Stripe (captura direta de cartão)
// ===============================

const DefaultStripeTimeout = 2 * time.Minute

// stripeAPI isola as chamadas do SDK para teste.
type stripeAPI interface {
	NewIntent(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	GetIntent(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// liveStripeAPI usa a key global configurada no main (stripe.Key).
type liveStripeAPI struct{}

func (liveStripeAPI) NewIntent(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return paymentintent.New(params)
}

func (liveStripeAPI) GetIntent(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return paymentintent.Get(id, params)
}

type StripeProvider struct {
	api      stripeAPI
	currency string
	timeout  time.Duration
	log      zerolog.Logger
}

func NewStripeProvider(currency string, timeout time.Duration, log zerolog.Logger) *StripeProvider {
	if currency == "" {
		currency = "usd"
	}
	if timeout <= 0 {
		timeout = DefaultStripeTimeout
	}
	return &StripeProvider{
		api:      liveStripeAPI{},
		currency: currency,
		timeout:  timeout,
		log:      log,
	}
}

func (p *StripeProvider) Method() Method { return MethodStripe }

// Initiate cria o payment intent; o client secret volta na sessão
// para o app abrir a tela de cartão.
func (p *StripeProvider) Initiate(ctx context.Context, amount float64, appointmentID uint) (*Session, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(int64(math.Round(amount * 100))),
		Currency:           stripe.String(p.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	params.AddMetadata("appointment_id", strconv.FormatUint(uint64(appointmentID), 10))

	intent, err := p.api.NewIntent(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	s := NewSession(MethodStripe, appointmentID, amount)
	s.Reference = intent.ID
	s.ClientSecret = intent.ClientSecret

	p.log.Info().
		Str("session", s.ID).
		Str("intent", intent.ID).
		Uint("appointment", appointmentID).
		Msg("stripe payment intent created")

	return s, nil
}

// AwaitCompletion espera o resultado da confirmação do SDK no app
// (uma única ida e volta) e valida o intent na Stripe: o status do
// intent é a palavra final, não o que o app reportou.
func (p *StripeProvider) AwaitCompletion(ctx context.Context, s *Session) (Outcome, error) {
	defer s.resolve()

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	for {
		select {
		case sig := <-s.signals:
			switch sig.Kind {
			case SignalCancel:
				return Outcome{FailureReason: ReasonUserCancelled}, ErrUserCancelled

			case SignalCardResult:
				if !sig.Succeeded {
					reason := sig.Reason
					if reason == "" {
						reason = ReasonCardDeclined
					}
					return Outcome{FailureReason: reason}, fmt.Errorf("stripe confirmation failed: %s", reason)
				}
				return p.verify(s)
			}

		case <-timer.C:
			return Outcome{FailureReason: ReasonTimeout}, ErrTimeout

		case <-ctx.Done():
			return Outcome{FailureReason: ReasonUserCancelled}, ErrUserCancelled
		}
	}
}

func (p *StripeProvider) verify(s *Session) (Outcome, error) {
	intent, err := p.api.GetIntent(s.Reference, nil)
	if err != nil {
		return Outcome{FailureReason: ReasonUnavailable}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded, stripe.PaymentIntentStatusRequiresCapture:
		return Outcome{Success: true, ProviderReference: intent.ID}, nil
	}

	p.log.Warn().
		Str("intent", intent.ID).
		Str("status", string(intent.Status)).
		Msg("stripe intent not settled")

	return Outcome{FailureReason: ReasonCardDeclined}, fmt.Errorf("stripe intent status %s", intent.Status)
}

func (p *StripeProvider) Cancel(s *Session) {
	if s == nil {
		return
	}
	s.Deliver(Signal{Kind: SignalCancel})
	s.resolve()
}
