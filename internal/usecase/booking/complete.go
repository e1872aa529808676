package booking

import (
	"context"

	"github.com/backhomebarber/booking-api/internal/audit"
	domain "github.com/backhomebarber/booking-api/internal/domain/appointment"
	"github.com/backhomebarber/booking-api/internal/httperr"
	"github.com/backhomebarber/booking-api/internal/models"
	"github.com/backhomebarber/booking-api/internal/timezone"
)

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteAppointment(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: auditDispatcher,
	}
}

// Execute conclui um atendimento. Exige pagamento efetuado ou
// dinheiro aguardando acerto presencial.
func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	staffUserID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	tz := ""
	if ap.Shop != nil {
		tz = ap.Shop.Timezone
	}
	now := timezone.NowIn(tz)

	if err := domain.Complete(ap, now); err != nil {
		return nil, err
	}

	// acerto em dinheiro na hora da conclusão
	if ap.PaymentStatus == string(domain.PaymentPending) &&
		ap.PaymentMethod != nil && *ap.PaymentMethod == "cash" {
		ref := "cash-settled"
		ap.PaymentStatus = string(domain.PaymentPaid)
		ap.PaymentID = &ref
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   ap.ShopID,
		UserID:   &staffUserID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
