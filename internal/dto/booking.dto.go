package dto

import (
	"time"

	domain "github.com/barberlink/booking-api/internal/domain/booking"
)

type BookingDTO struct {
	ID         uint `json:"id"`
	BarberID   uint `json:"barber_id"`
	CustomerID uint `json:"customer_id"`
	ServiceID  uint `json:"service_id"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status             string `json:"status"`
	Notes              string `json:"notes,omitempty"`
	CancellationReason string `json:"cancellation_reason,omitempty"`

	Version int64 `json:"version"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromBooking(b *domain.Booking) BookingDTO {
	return BookingDTO{
		ID:                 b.ID(),
		BarberID:           b.ProviderID(),
		CustomerID:         b.CustomerID(),
		ServiceID:          b.ServiceID(),
		StartTime:          b.Slot().Start(),
		EndTime:            b.Slot().End(),
		Status:             string(b.Status()),
		Notes:              b.Notes(),
		CancellationReason: b.CancellationReason(),
		Version:            b.Version(),
		CancelledAt:        b.CancelledAt(),
		CompletedAt:        b.CompletedAt(),
		CreatedAt:          b.CreatedAt(),
		UpdatedAt:          b.UpdatedAt(),
	}
}

func FromBookings(list []*domain.Booking) []BookingDTO {
	out := make([]BookingDTO, 0, len(list))
	for _, b := range list {
		out = append(out, FromBooking(b))
	}
	return out
}

type AvailableSlotDTO struct {
	BarberID uint      `json:"barber_id"`
	Start    string    `json:"start"`
	End      string    `json:"end"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

func FromAvailableSlots(list []domain.AvailableSlot) []AvailableSlotDTO {
	out := make([]AvailableSlotDTO, 0, len(list))
	for _, s := range list {
		out = append(out, AvailableSlotDTO{
			BarberID: s.ProviderID,
			Start:    s.Slot.Start().Format("15:04"),
			End:      s.Slot.End().Format("15:04"),
			StartsAt: s.Slot.Start(),
			EndsAt:   s.Slot.End(),
		})
	}
	return out
}
