package appointment

import (
	"time"

	"github.com/backhomebarber/booking-api/internal/httperr"
	"github.com/backhomebarber/booking-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Confirm(ap *models.Appointment, now time.Time) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	return nil
}

// Complete exige pagamento efetuado, exceto dinheiro aguardando acerto presencial.
func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	paid := ap.PaymentStatus == string(PaymentPaid)
	cashPending := ap.PaymentStatus == string(PaymentPending) &&
		ap.PaymentMethod != nil && *ap.PaymentMethod == "cash"

	if !paid && !cashPending {
		return httperr.ErrBusiness("payment_required")
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// ===============================
// Payment sub-state
// ===============================

// ApplyPaymentSuccess registra um pagamento confirmado pelo provedor.
// paymentStatus=paid sempre com método e referência preenchidos.
func ApplyPaymentSuccess(ap *models.Appointment, method string, reference string) error {
	if IsTerminal(Status(ap.Status)) {
		return httperr.ErrBusiness("invalid_state")
	}
	if method == "" || reference == "" {
		return httperr.ErrBusiness("missing_payment_reference")
	}

	ap.PaymentStatus = string(PaymentPaid)
	ap.PaymentMethod = &method
	ap.PaymentID = &reference
	return nil
}

func ApplyPaymentFailure(ap *models.Appointment, method string) error {
	if IsTerminal(Status(ap.Status)) {
		return httperr.ErrBusiness("invalid_state")
	}

	ap.PaymentStatus = string(PaymentFailed)
	if method != "" {
		ap.PaymentMethod = &method
	}
	return nil
}

// ApplyPaymentPending marca pagamento aguardando acerto (dinheiro na barbearia).
func ApplyPaymentPending(ap *models.Appointment, method string) error {
	if IsTerminal(Status(ap.Status)) {
		return httperr.ErrBusiness("invalid_state")
	}

	ap.PaymentStatus = string(PaymentPending)
	if method != "" {
		ap.PaymentMethod = &method
	}
	return nil
}
