package payment

import "errors"

// Taxonomia de erros de pagamento. Os handlers mapeiam para
// códigos de negócio do httperr.
var (
	ErrInvalidAmount       = errors.New("invalid payment amount")
	ErrProviderUnavailable = errors.New("payment provider unavailable")
	ErrTimeout             = errors.New("payment attempt timed out")
	ErrUserCancelled       = errors.New("payment cancelled by user")
	ErrUserDeclined        = errors.New("payment not confirmed by user")
	ErrUnsupportedMethod   = errors.New("unsupported payment method")
)

// Motivos carregados no Outcome.FailureReason.
const (
	ReasonInvalidAmount = "invalid_amount"
	ReasonUnavailable   = "provider_unavailable"
	ReasonTimeout       = "timeout"
	ReasonUserCancelled = "user_cancelled"
	ReasonUserDeclined  = "user_declined"
	ReasonCardDeclined  = "card_declined"
	ReasonCaptureFailed = "capture_failed"
)

// BusinessCode traduz o erro para o código HTTP de negócio.
func BusinessCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrProviderUnavailable):
		return "provider_unavailable"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrUserCancelled):
		return "user_cancelled"
	case errors.Is(err, ErrUserDeclined):
		return "user_declined"
	case errors.Is(err, ErrUnsupportedMethod):
		return "unsupported_method"
	}
	return "payment_failed"
}
