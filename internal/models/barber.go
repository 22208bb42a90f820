package models

import (
	"strings"
	"time"
)

// Barber is a login user of the shop and the provider whose calendar
// availability queries run against.
type Barber struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	BarbershopID uint       `json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barbershop"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'owner'" json:"role"`

	// Skills is a comma-separated list of skill tags matched against
	// Service.RequiredSkills when picking providers for a service.
	Skills string `gorm:"size:255" json:"skills"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SkillSet parses the Skills column into a lookup set.
func (b *Barber) SkillSet() map[string]bool {
	return parseSkills(b.Skills)
}

// HasSkills reports whether the barber holds every required skill.
func (b *Barber) HasSkills(required []string) bool {
	have := b.SkillSet()
	for _, skill := range required {
		if !have[skill] {
			return false
		}
	}
	return true
}

func parseSkills(raw string) map[string]bool {
	set := make(map[string]bool)
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(strings.ToLower(s))
		if s != "" {
			set[s] = true
		}
	}
	return set
}
