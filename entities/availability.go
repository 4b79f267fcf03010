package entities

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// TimeRange represents a time range with start and end times
type TimeRange struct {
	Start string `json:"start" example:"09:00"` // HH:MM format
	End   string `json:"end" example:"12:00"`   // HH:MM format
}

// WeekdayRanges is an ordered list of availability ranges for one weekday,
// stored as JSONB. A worker has at most two ranges per day.
type WeekdayRanges []TimeRange

// Value implements the driver.Valuer interface
func (w WeekdayRanges) Value() (driver.Value, error) {
	if w == nil {
		return json.Marshal([]TimeRange{})
	}
	return json.Marshal(w)
}

// Scan implements the sql.Scanner interface
func (w *WeekdayRanges) Scan(value interface{}) error {
	if value == nil {
		*w = []TimeRange{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, w)
}

// WorkerAvailability holds a worker's weekly availability pattern, one row
// per worker. Each weekday carries an ordered list of half-open
// [start, end) ranges in local wall-clock HH:MM.
type WorkerAvailability struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	TenantID uint `gorm:"not null;index" json:"tenant_id"`
	WorkerID uint `gorm:"not null;uniqueIndex" json:"worker_id"`

	Monday    WeekdayRanges `gorm:"type:jsonb" json:"monday,omitempty"`
	Tuesday   WeekdayRanges `gorm:"type:jsonb" json:"tuesday,omitempty"`
	Wednesday WeekdayRanges `gorm:"type:jsonb" json:"wednesday,omitempty"`
	Thursday  WeekdayRanges `gorm:"type:jsonb" json:"thursday,omitempty"`
	Friday    WeekdayRanges `gorm:"type:jsonb" json:"friday,omitempty"`
	Saturday  WeekdayRanges `gorm:"type:jsonb" json:"saturday,omitempty"`
	Sunday    WeekdayRanges `gorm:"type:jsonb" json:"sunday,omitempty"`
}

// DayRanges returns the ranges for a weekday ordinal (Monday=0 .. Sunday=6).
// Out-of-range ordinals yield nil.
func (a *WorkerAvailability) DayRanges(weekday int) WeekdayRanges {
	days := [7]WeekdayRanges{
		a.Monday,
		a.Tuesday,
		a.Wednesday,
		a.Thursday,
		a.Friday,
		a.Saturday,
		a.Sunday,
	}
	if weekday < 0 || weekday > 6 {
		return nil
	}
	return days[weekday]
}

// SchedulingConfig holds per-tenant scheduling policy. One row per tenant.
type SchedulingConfig struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	TenantID uint `gorm:"not null;uniqueIndex" json:"tenant_id"`

	// OverlapToleranceMinutes extends the closing edge of each availability
	// window at slot-generation time. A booking may finish up to this many
	// minutes after the nominal window end, but may never start before the
	// nominal window start.
	OverlapToleranceMinutes int `gorm:"not null;default:0" json:"overlap_tolerance_minutes"`
}

// Worker is the bookable resource. Belongs to exactly one tenant.
type Worker struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	TenantID uint   `gorm:"not null;index" json:"tenant_id"`
	Name     string `gorm:"type:varchar(150);not null" json:"name"`
	Active   bool   `gorm:"not null;default:true" json:"active"`
}
