package models

import "time"

// WorkingHours is one weekday row of a barber's weekly template.
// Start/End use the "HH:MM" format in the shop's timezone.
type WorkingHours struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index:idx_working_hours_barber_day,unique" json:"barber_id"`

	Weekday int `gorm:"index:idx_working_hours_barber_day,unique" json:"weekday"`

	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Active    bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
