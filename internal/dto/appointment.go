package dto

import (
	"github.com/backhomebarber/booking-api/internal/models"
)

type AppointmentResponse struct {
	ID            uint    `json:"id"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	PaymentMethod *string `json:"paymentMethod,omitempty"`
	PaymentID     *string `json:"paymentId,omitempty"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	BarberName    string  `json:"barberName,omitempty"`
	ServiceName   string  `json:"serviceName,omitempty"`
}

func FromAppointment(ap *models.Appointment) AppointmentResponse {
	resp := AppointmentResponse{
		ID:            ap.ID,
		Date:          ap.Date.Format("2006-01-02"),
		Time:          ap.Time,
		Status:        ap.Status,
		PaymentStatus: ap.PaymentStatus,
		PaymentMethod: ap.PaymentMethod,
		PaymentID:     ap.PaymentID,
		Amount:        ap.PaymentAmount,
		Currency:      ap.PaymentCurrency,
	}
	resp.BarberName = ap.Barber.Name
	resp.ServiceName = ap.Service.Name
	return resp
}

func FromAppointments(aps []models.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(aps))
	for i := range aps {
		out = append(out, FromAppointment(&aps[i]))
	}
	return out
}
