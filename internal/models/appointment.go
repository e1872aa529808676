package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	ShopID *uint `json:"shop_id"`
	Shop   *Shop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"shop"`

	BarberID uint   `json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Date time.Time `gorm:"type:date" json:"date"`
	Time string    `gorm:"size:5" json:"time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	PaymentStatus   string  `gorm:"size:20;default:'unpaid'" json:"payment_status"`
	PaymentMethod   *string `gorm:"size:20" json:"payment_method"`
	PaymentID       *string `gorm:"size:100" json:"payment_id"`
	PaymentAmount   float64 `json:"payment_amount"`
	PaymentCurrency string  `gorm:"size:3;default:'USD'" json:"payment_currency"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
