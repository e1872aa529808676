package appointment

import (
	"time"

	"github.com/backhomebarber/booking-api/internal/models"
)

type ShopHours struct {
	Open     string
	Close    string
	Interval time.Duration
}

const DefaultSlotInterval = 30 * time.Minute

type TimeSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type AvailabilityInput struct {
	ShopSlug string
	BarberID uint
	Date     time.Time
}

// ResolveSlots gera os horários do dia entre abertura e fechamento.
// Um slot fica indisponível quando já existe agendamento não cancelado
// no mesmo horário. Função pura: quem chama fornece os agendamentos.
func ResolveSlots(hours ShopHours, existing []models.Appointment) []TimeSlot {
	dayOpen, errOpen := time.Parse("15:04", hours.Open)
	dayClose, errClose := time.Parse("15:04", hours.Close)
	if errOpen != nil || errClose != nil || !dayOpen.Before(dayClose) {
		return []TimeSlot{}
	}

	interval := hours.Interval
	if interval <= 0 {
		interval = DefaultSlotInterval
	}

	taken := make(map[string]bool, len(existing))
	for _, ap := range existing {
		if ap.Status == string(StatusCancelled) {
			continue
		}
		taken[ap.Time] = true
	}

	slots := []TimeSlot{}
	for cur := dayOpen; cur.Add(interval).Before(dayClose) || cur.Add(interval).Equal(dayClose); cur = cur.Add(interval) {
		hm := cur.Format("15:04")
		slots = append(slots, TimeSlot{
			Time:      hm,
			Available: !taken[hm],
		})
	}

	return slots
}

// SlotWithinHours verifica se um horário é um slot válido do expediente
// (dentro da janela e alinhado ao intervalo).
func SlotWithinHours(hours ShopHours, hm string) bool {
	for _, slot := range ResolveSlots(hours, nil) {
		if slot.Time == hm {
			return true
		}
	}
	return false
}

// HoursFromShop monta a janela de expediente a partir do cadastro da barbearia.
func HoursFromShop(shop *models.Shop) ShopHours {
	hours := ShopHours{
		Open:     shop.OpenTime,
		Close:    shop.CloseTime,
		Interval: time.Duration(shop.SlotIntervalMin) * time.Minute,
	}
	if hours.Open == "" {
		hours.Open = "09:00"
	}
	if hours.Close == "" {
		hours.Close = "18:00"
	}
	return hours
}
