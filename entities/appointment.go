package entities

import (
	"time"

	"gorm.io/gorm"
)

// AppointmentType is a bookable service with a fixed duration
type AppointmentType struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	TenantID uint `gorm:"not null;index" json:"tenant_id"`

	Name            string `gorm:"type:varchar(150);not null" json:"name"`
	Description     string `gorm:"type:text" json:"description,omitempty"`
	DurationMinutes int    `gorm:"not null" json:"duration_minutes"`
	PriceCents      int64  `gorm:"not null;default:0" json:"price_cents"`
	Active          bool   `gorm:"not null;default:true" json:"active"`
}

// AppointmentTypeResponse is the outward-facing shape of an appointment type
type AppointmentTypeResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	DurationMinutes int    `json:"duration_minutes"`
	PriceCents      int64  `json:"price_cents"`
	Active          bool   `json:"active"`
}

// ToResponse converts the entity to its response shape
func (a *AppointmentType) ToResponse() AppointmentTypeResponse {
	return AppointmentTypeResponse{
		ID:              a.ID,
		Name:            a.Name,
		Description:     a.Description,
		DurationMinutes: a.DurationMinutes,
		PriceCents:      a.PriceCents,
		Active:          a.Active,
	}
}
