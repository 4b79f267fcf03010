package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scheduling status values
const (
	SchedulingStatusConfirmed = "confirmed"
	SchedulingStatusCancelled = "cancelled"
)

// Scheduling is a committed booking of a worker by a client. Worker, date,
// start time and the appointment set are immutable after commit; duration
// and end time are derived from the appointment set and written in the same
// insert.
type Scheduling struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Reference is the externally visible identifier
	Reference string `gorm:"type:varchar(36);uniqueIndex;not null" json:"reference"`

	TenantID uint `gorm:"not null;index" json:"tenant_id"`
	WorkerID uint `gorm:"not null;index" json:"worker_id"`
	ClientID uint `gorm:"not null;index" json:"client_id"`

	// Date is the calendar day of the booking; the time portion is zero.
	Date time.Time `gorm:"type:date;not null;index" json:"date"`

	// StartMinute/EndMinute are minutes of day, [0, 1440). All interval
	// arithmetic runs on these; HH:MM appears only at the API boundary.
	StartMinute     int `gorm:"not null" json:"start_minute"`
	EndMinute       int `gorm:"not null" json:"end_minute"`
	DurationMinutes int `gorm:"not null" json:"duration_minutes"`

	Status string `gorm:"type:varchar(20);not null;default:'confirmed';index" json:"status"`
	Notes  string `gorm:"type:text" json:"notes,omitempty"`

	AppointmentTypes []AppointmentType `gorm:"many2many:scheduling_appointment_types;" json:"appointment_types,omitempty"`
}

// BeforeCreate assigns the public reference
func (s *Scheduling) BeforeCreate(tx *gorm.DB) error {
	if s.Reference == "" {
		s.Reference = uuid.NewString()
	}
	return nil
}

// SchedulingResponse is the outward-facing shape of a committed scheduling
type SchedulingResponse struct {
	ID               uint                      `json:"id"`
	Reference        string                    `json:"reference"`
	WorkerID         uint                      `json:"worker_id"`
	ClientID         uint                      `json:"client_id"`
	Date             string                    `json:"date" example:"24/11/2025"`
	StartTime        string                    `json:"start_time" example:"09:00"`
	EndTime          string                    `json:"end_time" example:"09:30"`
	DurationMinutes  int                       `json:"duration_minutes"`
	Status           string                    `json:"status"`
	Notes            string                    `json:"notes,omitempty"`
	AppointmentTypes []AppointmentTypeResponse `json:"appointment_types,omitempty"`
	CreatedAt        time.Time                 `json:"created_at"`
}

// ToResponse converts the entity to its response shape. Times serialize as
// HH:MM and the date as DD/MM/YYYY, matching the booking front end.
func (s *Scheduling) ToResponse() SchedulingResponse {
	resp := SchedulingResponse{
		ID:              s.ID,
		Reference:       s.Reference,
		WorkerID:        s.WorkerID,
		ClientID:        s.ClientID,
		Date:            s.Date.Format("02/01/2006"),
		StartTime:       formatMinuteOfDay(s.StartMinute),
		EndTime:         formatMinuteOfDay(s.EndMinute),
		DurationMinutes: s.DurationMinutes,
		Status:          s.Status,
		Notes:           s.Notes,
		CreatedAt:       s.CreatedAt,
	}
	for _, at := range s.AppointmentTypes {
		resp.AppointmentTypes = append(resp.AppointmentTypes, at.ToResponse())
	}
	return resp
}

func formatMinuteOfDay(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
