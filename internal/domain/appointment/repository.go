package appointment

import (
	"context"
	"time"

	"github.com/backhomebarber/booking-api/internal/models"
)

type Repository interface {
	// -------- Shop --------
	GetShopByID(
		ctx context.Context,
		id uint,
	) (*models.Shop, error)

	GetShopBySlug(
		ctx context.Context,
		slug string,
	) (*models.Shop, error)

	// -------- Barber --------
	GetBarber(
		ctx context.Context,
		shopID uint,
		barberID uint,
	) (*models.Barber, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		shopID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointmentIfFree(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	GetAppointmentForUser(
		ctx context.Context,
		appointmentID uint,
		userID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability / listing --------
	ListAppointmentsForDay(
		ctx context.Context,
		barberID uint,
		date time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Appointment, error)

	ListUpcomingForUser(
		ctx context.Context,
		userID uint,
		from time.Time,
	) ([]models.Appointment, error)
}
