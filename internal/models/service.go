package models

import (
	"strings"
	"time"
)

const (
	MinServiceDurationMin = 1
	MaxServiceDurationMin = 480
)

type Service struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `json:"barbershop_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`
	Active      bool    `gorm:"default:true" json:"active"`

	// RequiredSkills is a comma-separated list of skill tags a barber
	// must hold to perform this service.
	RequiredSkills string `gorm:"size:255" json:"required_skills"`

	Category string `gorm:"size:50" json:"category"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) RequiredSkillList() []string {
	var out []string
	for _, skill := range strings.Split(s.RequiredSkills, ",") {
		skill = strings.TrimSpace(strings.ToLower(skill))
		if skill != "" {
			out = append(out, skill)
		}
	}
	return out
}

func (s *Service) HasValidDuration() bool {
	return s.DurationMin >= MinServiceDurationMin && s.DurationMin <= MaxServiceDurationMin
}
