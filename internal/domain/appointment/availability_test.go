package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backhomebarber/booking-api/internal/models"
)

func standardHours() ShopHours {
	return ShopHours{Open: "09:00", Close: "18:00", Interval: 30 * time.Minute}
}

func TestResolveSlots_FullDay(t *testing.T) {
	slots := ResolveSlots(standardHours(), nil)

	require.Len(t, slots, 18)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "17:30", slots[len(slots)-1].Time)

	for _, s := range slots {
		assert.True(t, s.Available, "slot %s should be free on an empty day", s.Time)
	}
}

func TestResolveSlots_BookedSlotUnavailable(t *testing.T) {
	existing := []models.Appointment{
		{Time: "10:00", Status: "confirmed"},
	}

	slots := ResolveSlots(standardHours(), existing)
	require.Len(t, slots, 18)

	for _, s := range slots {
		if s.Time == "10:00" {
			assert.False(t, s.Available)
		} else {
			assert.True(t, s.Available, "slot %s", s.Time)
		}
	}
}

func TestResolveSlots_CancelledFreesSlot(t *testing.T) {
	existing := []models.Appointment{
		{Time: "10:00", Status: "cancelled"},
		{Time: "11:00", Status: "pending"},
	}

	slots := ResolveSlots(standardHours(), existing)

	byTime := make(map[string]bool, len(slots))
	for _, s := range slots {
		byTime[s.Time] = s.Available
	}

	assert.True(t, byTime["10:00"], "cancelled appointment should not block the slot")
	assert.False(t, byTime["11:00"])
}

func TestResolveSlots_CustomInterval(t *testing.T) {
	hours := ShopHours{Open: "09:00", Close: "12:00", Interval: time.Hour}

	slots := ResolveSlots(hours, nil)

	require.Len(t, slots, 3)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "11:00", slots[2].Time)
}

func TestResolveSlots_InvalidWindow(t *testing.T) {
	assert.Empty(t, ResolveSlots(ShopHours{Open: "18:00", Close: "09:00"}, nil))
	assert.Empty(t, ResolveSlots(ShopHours{Open: "bogus", Close: "18:00"}, nil))
}

func TestSlotWithinHours(t *testing.T) {
	hours := standardHours()

	assert.True(t, SlotWithinHours(hours, "09:00"))
	assert.True(t, SlotWithinHours(hours, "17:30"))

	// fechamento não é slot de início
	assert.False(t, SlotWithinHours(hours, "18:00"))

	// fora da grade do intervalo
	assert.False(t, SlotWithinHours(hours, "09:15"))
	assert.False(t, SlotWithinHours(hours, "08:30"))
}

func TestHoursFromShop_Defaults(t *testing.T) {
	hours := HoursFromShop(&models.Shop{})

	assert.Equal(t, "09:00", hours.Open)
	assert.Equal(t, "18:00", hours.Close)

	slots := ResolveSlots(hours, nil)
	require.Len(t, slots, 18)
}
