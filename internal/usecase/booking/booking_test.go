package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/backhomebarber/booking-api/internal/audit"
	"github.com/backhomebarber/booking-api/internal/cache"
	domain "github.com/backhomebarber/booking-api/internal/domain/appointment"
	"github.com/backhomebarber/booking-api/internal/httperr"
	"github.com/backhomebarber/booking-api/internal/models"
	"github.com/backhomebarber/booking-api/internal/payment"
)

// fakeRepo é um Repository em memória para os testes de caso de uso.
type fakeRepo struct {
	shops    map[uint]*models.Shop
	barbers  map[uint]*models.Barber
	services map[uint]*models.Service

	nextID       uint
	appointments map[uint]*models.Appointment

	updateErr error
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		shops:        make(map[uint]*models.Shop),
		barbers:      make(map[uint]*models.Barber),
		services:     make(map[uint]*models.Service),
		appointments: make(map[uint]*models.Appointment),
		nextID:       1,
	}
}

func (r *fakeRepo) GetShopByID(ctx context.Context, id uint) (*models.Shop, error) {
	if shop, ok := r.shops[id]; ok {
		return shop, nil
	}
	return nil, httperr.ErrBusiness("shop_not_found")
}

func (r *fakeRepo) GetShopBySlug(ctx context.Context, slug string) (*models.Shop, error) {
	for _, shop := range r.shops {
		if shop.Slug == slug {
			return shop, nil
		}
	}
	return nil, httperr.ErrBusiness("shop_not_found")
}

func (r *fakeRepo) GetBarber(ctx context.Context, shopID, barberID uint) (*models.Barber, error) {
	if b, ok := r.barbers[barberID]; ok {
		return b, nil
	}
	return nil, httperr.ErrBusiness("barber_not_found")
}

func (r *fakeRepo) GetService(ctx context.Context, shopID, serviceID uint) (*models.Service, error) {
	if s, ok := r.services[serviceID]; ok {
		return s, nil
	}
	return nil, httperr.ErrBusiness("service_not_found")
}

func (r *fakeRepo) CreateAppointmentIfFree(ctx context.Context, ap *models.Appointment) error {
	for _, existing := range r.appointments {
		if existing.BarberID == ap.BarberID &&
			existing.Date.Equal(ap.Date) &&
			existing.Time == ap.Time &&
			existing.Status != string(domain.StatusCancelled) {
			return httperr.ErrBusiness("slot_conflict")
		}
	}

	ap.ID = r.nextID
	r.nextID++
	r.appointments[ap.ID] = ap
	return nil
}

func (r *fakeRepo) GetAppointment(ctx context.Context, appointmentID uint) (*models.Appointment, error) {
	if ap, ok := r.appointments[appointmentID]; ok {
		return ap, nil
	}
	return nil, httperr.ErrBusiness("appointment_not_found")
}

func (r *fakeRepo) GetAppointmentForUser(ctx context.Context, appointmentID, userID uint) (*models.Appointment, error) {
	ap, ok := r.appointments[appointmentID]
	if !ok || ap.UserID != userID {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return ap, nil
}

func (r *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.appointments[ap.ID] = ap
	return nil
}

func (r *fakeRepo) ListAppointmentsForDay(ctx context.Context, barberID uint, date time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.BarberID == barberID && ap.Date.Equal(date) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAppointmentsForUser(ctx context.Context, userID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.UserID == userID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListUpcomingForUser(ctx context.Context, userID uint, from time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.UserID == userID && !ap.Date.Before(from) &&
			ap.Status != string(domain.StatusCancelled) &&
			ap.Status != string(domain.StatusCompleted) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

// ======================================================
// FIXTURE
// ======================================================

func seedRepo() *fakeRepo {
	repo := newFakeRepo()

	repo.shops[1] = &models.Shop{
		ID:              1,
		Name:            "Back Home Barber",
		Slug:            "back-home-barber",
		Timezone:        "America/New_York",
		OpenTime:        "09:00",
		CloseTime:       "18:00",
		SlotIntervalMin: 30,
		Cashtag:         "$BackHomeBarber",
	}
	repo.barbers[2] = &models.Barber{ID: 2, Name: "Marcus", Active: true}
	repo.services[3] = &models.Service{ID: 3, Name: "Haircut", Price: 35, Currency: "USD", Active: true}

	return repo
}

func nopAudit() *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(nil), zerolog.Nop())
}

func nopCache() *cache.Availability {
	return cache.NewAvailability(nil, 0, zerolog.Nop())
}

// futureDate devolve uma data segura (amanhã + offset) no formato da API.
func futureDate(days int) string {
	return time.Now().AddDate(0, 0, 1+days).Format("2006-01-02")
}

func newBookForTest(repo domain.Repository, providers ...payment.Provider) *Book {
	orch := payment.NewOrchestrator(zerolog.Nop(), providers...)
	return NewBook(repo, orch, nopCache(), nopAudit(), zerolog.Nop())
}
