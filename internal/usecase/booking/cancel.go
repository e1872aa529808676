package booking

import (
	"context"

	"github.com/backhomebarber/booking-api/internal/audit"
	"github.com/backhomebarber/booking-api/internal/cache"
	domain "github.com/backhomebarber/booking-api/internal/domain/appointment"
	"github.com/backhomebarber/booking-api/internal/httperr"
	"github.com/backhomebarber/booking-api/internal/models"
	"github.com/backhomebarber/booking-api/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	cache *cache.Availability
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	availability *cache.Availability,
	auditDispatcher *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		cache: availability,
		audit: auditDispatcher,
	}
}

// Execute cancela a partir de pending/confirmed. Cancelado é
// terminal; reembolso de valor já capturado é operação separada.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForUser(ctx, appointmentID, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	tz := ""
	if ap.Shop != nil {
		tz = ap.Shop.Timezone
	}
	now := timezone.NowIn(tz)

	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, ap.BarberID, ap.Date.Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		ShopID:   ap.ShopID,
		UserID:   &userID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
