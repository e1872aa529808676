package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	domain "github.com/backhomebarber/booking-api/internal/domain/appointment"
)

const DefaultAvailabilityTTL = 30 * time.Second

// Availability guarda a grade de horários por barbeiro+dia no Redis.
// Invalidada a cada agendamento criado ou cancelado.
type Availability struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// NewAvailability aceita rdb nil (cache desligado).
func NewAvailability(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *Availability {
	if ttl <= 0 {
		ttl = DefaultAvailabilityTTL
	}
	return &Availability{rdb: rdb, ttl: ttl, log: log}
}

func key(barberID uint, date string) string {
	return fmt.Sprintf("availability:%d:%s", barberID, date)
}

func (c *Availability) Get(ctx context.Context, barberID uint, date string) ([]domain.TimeSlot, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key(barberID, date)).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("availability cache read failed")
		}
		return nil, false
	}

	var slots []domain.TimeSlot
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *Availability) Set(ctx context.Context, barberID uint, date string, slots []domain.TimeSlot) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, key(barberID, date), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("availability cache write failed")
	}
}

func (c *Availability) Invalidate(ctx context.Context, barberID uint, date string) {
	if c == nil || c.rdb == nil {
		return
	}

	if err := c.rdb.Del(ctx, key(barberID, date)).Err(); err != nil {
		c.log.Warn().Err(err).Msg("availability cache invalidation failed")
	}
}
