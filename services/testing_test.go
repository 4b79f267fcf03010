package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/unburdy/scheduling-module/entities"
)

// setupTestDB creates an in-memory SQLite database with the module schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every session on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&entities.Worker{},
		&entities.AppointmentType{},
		&entities.WorkerAvailability{},
		&entities.SchedulingConfig{},
		&entities.Scheduling{},
	)
	require.NoError(t, err)

	return db
}

// fixedClock returns a clock frozen at the given instant
func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// seedAppointmentType inserts an appointment type and returns its id
func seedAppointmentType(t *testing.T, db *gorm.DB, tenantID uint, name string, duration int) uint {
	t.Helper()

	appointmentType := entities.AppointmentType{
		TenantID:        tenantID,
		Name:            name,
		DurationMinutes: duration,
		Active:          true,
	}
	require.NoError(t, db.Create(&appointmentType).Error)
	return appointmentType.ID
}

// seedWeekdayAvailability gives a worker the same ranges on every weekday
func seedWeekdayAvailability(t *testing.T, db *gorm.DB, tenantID, workerID uint, ranges ...entities.TimeRange) {
	t.Helper()

	availability := entities.WorkerAvailability{
		TenantID:  tenantID,
		WorkerID:  workerID,
		Monday:    ranges,
		Tuesday:   ranges,
		Wednesday: ranges,
		Thursday:  ranges,
		Friday:    ranges,
		Saturday:  ranges,
		Sunday:    ranges,
	}
	require.NoError(t, db.Create(&availability).Error)
}

// seedTolerance sets the tenant overlap tolerance
func seedTolerance(t *testing.T, db *gorm.DB, tenantID uint, minutes int) {
	t.Helper()

	config := entities.SchedulingConfig{
		TenantID:                tenantID,
		OverlapToleranceMinutes: minutes,
	}
	require.NoError(t, db.Create(&config).Error)
}
