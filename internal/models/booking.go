package models

import "time"

// Booking is the persisted appointment row. The composite index on
// (barber_id, start_time, end_time, status) keeps the conflict query
// cheap; version backs the optimistic-concurrency save.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint       `json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	BarberID uint   `gorm:"index:idx_booking_conflict,priority:1" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	CustomerID uint     `gorm:"index" json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	StartTime time.Time `gorm:"index:idx_booking_conflict,priority:2" json:"start_time"`
	EndTime   time.Time `gorm:"index:idx_booking_conflict,priority:3" json:"end_time"`

	Status string `gorm:"size:20;default:'pending';index:idx_booking_conflict,priority:4" json:"status"`

	PaymentJSON        string `gorm:"type:text" json:"payment_json"`
	Notes              string `gorm:"size:500" json:"notes"`
	CancellationReason string `gorm:"size:500" json:"cancellation_reason"`

	Version int64 `gorm:"not null;default:0" json:"version"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
