package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/plutov/paypal/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayPalAPI struct {
	createErr  error
	captureErr error

	capturedOrders []string
	lastUnits      []paypal.PurchaseUnitRequest
	lastAppCtx     *paypal.ApplicationContext
}

func (f *fakePayPalAPI) CreateOrder(
	ctx context.Context,
	intent string,
	purchaseUnits []paypal.PurchaseUnitRequest,
	payer *paypal.PaymentSource,
	appContext *paypal.ApplicationContext,
) (*paypal.Order, error) {
	f.lastUnits = purchaseUnits
	f.lastAppCtx = appContext
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &paypal.Order{
		ID: "ORDER-1",
		Links: []paypal.Link{
			{Rel: "self", Href: "https://api.sandbox.paypal.com/v2/checkout/orders/ORDER-1"},
			{Rel: "approve", Href: "https://www.sandbox.paypal.com/checkoutnow?token=ORDER-1"},
		},
	}, nil
}

func (f *fakePayPalAPI) CaptureOrder(
	ctx context.Context,
	orderID string,
	captureOrderRequest paypal.CaptureOrderRequest,
) (*paypal.CaptureOrderResponse, error) {
	f.capturedOrders = append(f.capturedOrders, orderID)
	if f.captureErr != nil {
		return nil, f.captureErr
	}
	return &paypal.CaptureOrderResponse{ID: orderID}, nil
}

func newPayPalForTest(api paypalAPI) *PayPalProvider {
	return NewPayPalProvider(api, PayPalConfig{
		Currency:  "USD",
		ReturnURL: "https://api.backhomebarber.com/payment-success",
		CancelURL: "https://api.backhomebarber.com/payment-cancel",
		Timeout:   time.Minute,
	}, zerolog.Nop())
}

func TestPayPalInitiate(t *testing.T) {
	api := &fakePayPalAPI{}
	p := newPayPalForTest(api)

	s, err := p.Initiate(context.Background(), 37.5, 42)

	require.NoError(t, err)
	assert.Equal(t, "ORDER-1", s.Reference)
	assert.Equal(t, "https://www.sandbox.paypal.com/checkoutnow?token=ORDER-1", s.ApprovalURL)

	require.Len(t, api.lastUnits, 1)
	assert.Equal(t, "37.50", api.lastUnits[0].Amount.Value)
	assert.Equal(t, "USD", api.lastUnits[0].Amount.Currency)
	require.NotNil(t, api.lastAppCtx)
	assert.Equal(t, "https://api.backhomebarber.com/payment-success", api.lastAppCtx.ReturnURL)
}

func TestPayPalInitiate_Errors(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		p := newPayPalForTest(nil)
		_, err := p.Initiate(context.Background(), 25, 42)
		assert.ErrorIs(t, err, ErrProviderUnavailable)
	})

	t.Run("invalid amount", func(t *testing.T) {
		p := newPayPalForTest(&fakePayPalAPI{})
		_, err := p.Initiate(context.Background(), -1, 42)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("order creation fails", func(t *testing.T) {
		p := newPayPalForTest(&fakePayPalAPI{createErr: errors.New("api down")})
		_, err := p.Initiate(context.Background(), 25, 42)
		assert.ErrorIs(t, err, ErrProviderUnavailable)
	})
}

func TestPayPalAwaitCompletion(t *testing.T) {
	start := func(t *testing.T, api *fakePayPalAPI) (*PayPalProvider, *Session) {
		p := newPayPalForTest(api)
		s, err := p.Initiate(context.Background(), 25, 42)
		require.NoError(t, err)
		return p, s
	}

	t.Run("success redirect captures the order", func(t *testing.T) {
		api := &fakePayPalAPI{}
		p, s := start(t, api)

		// redirects intermediários não encerram o fluxo
		s.Deliver(Signal{Kind: SignalNavigation, URL: "https://www.sandbox.paypal.com/signin"})
		s.Deliver(Signal{Kind: SignalNavigation, URL: "https://www.sandbox.paypal.com/checkoutnow?token=ORDER-1"})
		s.Deliver(Signal{Kind: SignalNavigation, URL: "https://api.backhomebarber.com/payment-success?orderId=ORDER-9"})

		outcome, err := p.AwaitCompletion(context.Background(), s)

		require.NoError(t, err)
		assert.True(t, outcome.Success)
		assert.Equal(t, "ORDER-9", outcome.ProviderReference)
		assert.Equal(t, []string{"ORDER-9"}, api.capturedOrders)

		// navegação tardia na mesma sessão é ignorada
		assert.False(t, s.Deliver(Signal{Kind: SignalNavigation, URL: "https://api.backhomebarber.com/payment-cancel"}))
	})

	t.Run("success without orderId captures the session order", func(t *testing.T) {
		api := &fakePayPalAPI{}
		p, s := start(t, api)

		s.Deliver(Signal{Kind: SignalNavigation, URL: "https://api.backhomebarber.com/payment-success"})

		outcome, err := p.AwaitCompletion(context.Background(), s)

		require.NoError(t, err)
		assert.Equal(t, "ORDER-1", outcome.ProviderReference)
	})

	t.Run("cancel redirect", func(t *testing.T) {
		api := &fakePayPalAPI{}
		p, s := start(t, api)

		s.Deliver(Signal{Kind: SignalNavigation, URL: "https://api.backhomebarber.com/payment-cancel"})

		outcome, err := p.AwaitCompletion(context.Background(), s)

		assert.ErrorIs(t, err, ErrUserCancelled)
		assert.Empty(t, api.capturedOrders)
		assert.Equal(t, ReasonUserCancelled, outcome.FailureReason)
	})

	t.Run("capture failure", func(t *testing.T) {
		api := &fakePayPalAPI{captureErr: errors.New("capture down")}
		p, s := start(t, api)

		s.Deliver(Signal{Kind: SignalNavigation, URL: "https://api.backhomebarber.com/payment-success?orderId=ORDER-1"})

		outcome, err := p.AwaitCompletion(context.Background(), s)

		require.Error(t, err)
		assert.False(t, outcome.Success)
		assert.Equal(t, ReasonCaptureFailed, outcome.FailureReason)
	})

	t.Run("timeout", func(t *testing.T) {
		p := NewPayPalProvider(&fakePayPalAPI{}, PayPalConfig{Timeout: 20 * time.Millisecond}, zerolog.Nop())
		s, err := p.Initiate(context.Background(), 25, 42)
		require.NoError(t, err)

		_, err = p.AwaitCompletion(context.Background(), s)
		assert.ErrorIs(t, err, ErrTimeout)
	})
}
