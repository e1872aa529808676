package models

import "time"

type Shop struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Slug    string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	Timezone string `gorm:"size:50" json:"timezone"`

	OpenTime        string `gorm:"size:5;default:'09:00'" json:"open_time"`
	CloseTime       string `gorm:"size:5;default:'18:00'" json:"close_time"`
	SlotIntervalMin int    `gorm:"default:30" json:"slot_interval_min"`

	// Cashtag do Cash App da barbearia, com ou sem "$" inicial.
	Cashtag string `gorm:"size:25" json:"cashtag"`

	MinAdvanceMinutes int `gorm:"default:120" json:"min_advance_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
