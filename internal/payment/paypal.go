package payment

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/plutov/paypal/v4"
	"github.com/rs/zerolog"
)

// ===============================
// PayPal (hosted redirect)
// ===============================

const DefaultPayPalTimeout = 10 * time.Minute

// paypalAPI isola o client do plutov/paypal para teste.
type paypalAPI interface {
	CreateOrder(
		ctx context.Context,
		intent string,
		purchaseUnits []paypal.PurchaseUnitRequest,
		payer *paypal.PaymentSource,
		appContext *paypal.ApplicationContext,
	) (*paypal.Order, error)

	CaptureOrder(
		ctx context.Context,
		orderID string,
		captureOrderRequest paypal.CaptureOrderRequest,
	) (*paypal.CaptureOrderResponse, error)
}

type PayPalProvider struct {
	api       paypalAPI
	currency  string
	returnURL string
	cancelURL string
	timeout   time.Duration
	log       zerolog.Logger
}

type PayPalConfig struct {
	Currency  string
	ReturnURL string
	CancelURL string
	Timeout   time.Duration
}

// NewPayPalProvider aceita api nil quando as credenciais não estão
// configuradas; Initiate então falha com ProviderUnavailable.
func NewPayPalProvider(api paypalAPI, cfg PayPalConfig, log zerolog.Logger) *PayPalProvider {
	p := &PayPalProvider{
		api:       api,
		currency:  cfg.Currency,
		returnURL: cfg.ReturnURL,
		cancelURL: cfg.CancelURL,
		timeout:   cfg.Timeout,
		log:       log,
	}
	if p.currency == "" {
		p.currency = "USD"
	}
	if p.timeout <= 0 {
		p.timeout = DefaultPayPalTimeout
	}
	return p
}

func (p *PayPalProvider) Method() Method { return MethodPayPal }

func (p *PayPalProvider) Initiate(ctx context.Context, amount float64, appointmentID uint) (*Session, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if p.api == nil {
		return nil, fmt.Errorf("%w: paypal client not configured", ErrProviderUnavailable)
	}

	units := []paypal.PurchaseUnitRequest{{
		ReferenceID: "appointment-" + strconv.FormatUint(uint64(appointmentID), 10),
		Amount: &paypal.PurchaseUnitAmount{
			Currency: p.currency,
			Value:    formatAmount(amount),
		},
	}}

	order, err := p.api.CreateOrder(ctx, paypal.OrderIntentCapture, units, nil, &paypal.ApplicationContext{
		ReturnURL: p.returnURL,
		CancelURL: p.cancelURL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	s := NewSession(MethodPayPal, appointmentID, amount)
	s.Reference = order.ID
	for _, link := range order.Links {
		if link.Rel == "approve" {
			s.ApprovalURL = link.Href
		}
	}

	p.log.Info().
		Str("session", s.ID).
		Str("order", order.ID).
		Uint("appointment", appointmentID).
		Msg("paypal order created")

	return s, nil
}

// AwaitCompletion consome eventos de navegação da webview. Só as URLs
// de sucesso/cancelamento do contrato de redirect encerram o fluxo.
func (p *PayPalProvider) AwaitCompletion(ctx context.Context, s *Session) (Outcome, error) {
	defer s.resolve()

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	for {
		select {
		case sig := <-s.signals:
			switch sig.Kind {
			case SignalCancel:
				return Outcome{FailureReason: ReasonUserCancelled}, ErrUserCancelled

			case SignalNavigation:
				res := ClassifyRedirectURL(sig.URL)
				switch res.Kind {
				case RedirectSuccess:
					return p.capture(ctx, s, res)
				case RedirectCancel:
					return Outcome{FailureReason: ReasonUserCancelled}, ErrUserCancelled
				}
				// redirect intermediário: segue ouvindo
			}

		case <-timer.C:
			return Outcome{FailureReason: ReasonTimeout}, ErrTimeout

		case <-ctx.Done():
			return Outcome{FailureReason: ReasonUserCancelled}, ErrUserCancelled
		}
	}
}

func (p *PayPalProvider) capture(ctx context.Context, s *Session, res RedirectResult) (Outcome, error) {
	orderID := res.OrderID
	if orderID == "" {
		orderID = s.Reference
	}

	if _, err := p.api.CaptureOrder(ctx, orderID, paypal.CaptureOrderRequest{}); err != nil {
		p.log.Error().Err(err).Str("order", orderID).Msg("paypal capture failed")
		return Outcome{FailureReason: ReasonCaptureFailed}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	return Outcome{Success: true, ProviderReference: orderID}, nil
}

func (p *PayPalProvider) Cancel(s *Session) {
	if s == nil {
		return
	}
	s.Deliver(Signal{Kind: SignalCancel})
	s.resolve()
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
