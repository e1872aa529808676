package booking

import (
	"context"

	"github.com/backhomebarber/booking-api/internal/audit"
	domain "github.com/backhomebarber/booking-api/internal/domain/appointment"
	"github.com/backhomebarber/booking-api/internal/httperr"
	"github.com/backhomebarber/booking-api/internal/models"
	"github.com/backhomebarber/booking-api/internal/payment"
	"github.com/backhomebarber/booking-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type UpdatePaymentInput struct {
	UserID        uint
	AppointmentID uint

	PaymentStatus string
	PaymentMethod string
	PaymentID     string
}

// ======================================================
// USE CASE
// ======================================================

// UpdatePayment é o write-back de status de pagamento
// (PUT /api/appointments/:id/payment).
type UpdatePayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdatePayment(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *UpdatePayment {
	return &UpdatePayment{
		repo:  repo,
		audit: auditDispatcher,
	}
}

func (uc *UpdatePayment) Execute(ctx context.Context, in UpdatePaymentInput) (*models.Appointment, error) {

	if !domain.ValidPaymentStatus(domain.PaymentStatus(in.PaymentStatus)) {
		return nil, httperr.ErrBusiness("invalid_payment_status")
	}
	if in.PaymentMethod != "" && !payment.ValidMethod(payment.Method(in.PaymentMethod)) {
		return nil, httperr.ErrBusiness("unsupported_method")
	}

	ap, err := uc.repo.GetAppointmentForUser(ctx, in.AppointmentID, in.UserID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if domain.IsTerminal(domain.Status(ap.Status)) {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	switch domain.PaymentStatus(in.PaymentStatus) {
	case domain.PaymentPaid:
		// paid sem método+referência nunca é aceito
		if err := domain.ApplyPaymentSuccess(ap, in.PaymentMethod, in.PaymentID); err != nil {
			return nil, err
		}
		if ap.Status == string(domain.StatusPending) {
			tz := ""
			if ap.Shop != nil {
				tz = ap.Shop.Timezone
			}
			if err := domain.Confirm(ap, timezone.NowIn(tz)); err != nil {
				return nil, err
			}
		}

	case domain.PaymentFailed:
		if err := domain.ApplyPaymentFailure(ap, in.PaymentMethod); err != nil {
			return nil, err
		}

	case domain.PaymentPending:
		if err := domain.ApplyPaymentPending(ap, in.PaymentMethod); err != nil {
			return nil, err
		}

	case domain.PaymentRefunded:
		if ap.PaymentStatus != string(domain.PaymentPaid) {
			return nil, httperr.ErrBusiness("invalid_state")
		}
		ap.PaymentStatus = string(domain.PaymentRefunded)

	case domain.PaymentUnpaid:
		ap.PaymentStatus = string(domain.PaymentUnpaid)
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, httperr.ErrBusiness("server_rejected")
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   ap.ShopID,
		UserID:   &in.UserID,
		Action:   "payment_status_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"payment_status": in.PaymentStatus,
			"payment_method": in.PaymentMethod,
		},
	})

	return ap, nil
}
