package booking

import (
	"context"

	domain "github.com/backhomebarber/booking-api/internal/domain/appointment"
	"github.com/backhomebarber/booking-api/internal/httperr"
	"github.com/backhomebarber/booking-api/internal/models"
	"github.com/backhomebarber/booking-api/internal/timezone"
)

type ListUserAppointments struct {
	repo domain.Repository
}

func NewListUserAppointments(repo domain.Repository) *ListUserAppointments {
	return &ListUserAppointments{repo: repo}
}

func (uc *ListUserAppointments) Execute(
	ctx context.Context,
	userID uint,
	upcomingOnly bool,
) ([]models.Appointment, error) {

	if upcomingOnly {
		now := timezone.Now()
		return uc.repo.ListUpcomingForUser(ctx, userID, now)
	}

	return uc.repo.ListAppointmentsForUser(ctx, userID)
}

// Get devolve um agendamento do próprio usuário.
func (uc *ListUserAppointments) Get(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForUser(ctx, appointmentID, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return ap, nil
}
