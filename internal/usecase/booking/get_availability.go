package booking

import (
	"context"
	"time"

	"github.com/backhomebarber/booking-api/internal/cache"
	domain "github.com/backhomebarber/booking-api/internal/domain/appointment"
	"github.com/backhomebarber/booking-api/internal/httperr"
	"github.com/backhomebarber/booking-api/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	cache *cache.Availability
}

func NewGetAvailability(repo domain.Repository, availability *cache.Availability) *GetAvailability {
	return &GetAvailability{repo: repo, cache: availability}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	shop, err := uc.repo.GetShopBySlug(ctx, in.ShopSlug)
	if err != nil {
		return nil, httperr.ErrBusiness("shop_not_found")
	}

	if _, err := uc.repo.GetBarber(ctx, shop.ID, in.BarberID); err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	dateStr := in.Date.Format("2006-01-02")
	if slots, ok := uc.cache.Get(ctx, in.BarberID, dateStr); ok {
		return slots, nil
	}

	loc := timezone.Location(shop.Timezone)
	day := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, loc)

	appointments, err := uc.repo.ListAppointmentsForDay(ctx, in.BarberID, day)
	if err != nil {
		return nil, err
	}

	slots := domain.ResolveSlots(domain.HoursFromShop(shop), appointments)
	uc.cache.Set(ctx, in.BarberID, dateStr, slots)

	return slots, nil
}
