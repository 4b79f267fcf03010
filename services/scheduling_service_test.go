package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/unburdy/scheduling-module/entities"
	"github.com/unburdy/scheduling-module/pkg/lock"
)

func newSchedulingService(t *testing.T, db *gorm.DB, now time.Time) *SchedulingService {
	t.Helper()

	availableTime := newAvailableTimeService(t, db, now)
	locks := lock.NewLocalManager(lock.Options{
		OwnershipTTL:    5 * time.Second,
		AcquireDeadline: 5 * time.Second,
	})
	return NewSchedulingService(db, locks, availableTime)
}

func TestCreate_CommitsWithDerivedFields(t *testing.T) {
	db := setupTestDB(t)
	clock := time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)
	service := newSchedulingService(t, db, clock)

	cut := seedAppointmentType(t, db, testTenant, "Cut", 30)
	color := seedAppointmentType(t, db, testTenant, "Color", 60)
	seedWeekdayAvailability(t, db, testTenant, 1, entities.TimeRange{Start: "09:00", End: "12:00"})

	scheduling, err := service.Create(context.Background(), testTenant, entities.CreateSchedulingRequest{
		WorkerID:       1,
		ClientID:       9,
		AppointmentIDs: []uint{cut, color},
		Date:           "24/11/2025",
		StartTime:      "09:00",
		Notes:          "first visit",
	})
	require.NoError(t, err)
	require.NotNil(t, scheduling)

	// Duration and end time derive from the appointment set.
	assert.Equal(t, 90, scheduling.DurationMinutes)
	assert.Equal(t, 540, scheduling.StartMinute)
	assert.Equal(t, 630, scheduling.EndMinute)
	assert.Equal(t, entities.SchedulingStatusConfirmed, scheduling.Status)
	assert.NotEmpty(t, scheduling.Reference)

	// The row on disk carries the same derived fields.
	var stored entities.Scheduling
	require.NoError(t, db.Preload("AppointmentTypes").First(&stored, scheduling.ID).Error)
	assert.Equal(t, 90, stored.DurationMinutes)
	assert.Equal(t, stored.StartMinute+stored.DurationMinutes, stored.EndMinute)
	assert.Len(t, stored.AppointmentTypes, 2)

	resp := stored.ToResponse()
	assert.Equal(t, "24/11/2025", resp.Date)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, "10:30", resp.EndTime)
}

func TestCreate_AcceptsISODate(t *testing.T) {
	db := setupTestDB(t)
	clock := time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)
	service := newSchedulingService(t, db, clock)

	appointmentID := seedAppointmentType(t, db, testTenant, "Consultation", 30)
	seedWeekdayAvailability(t, db, testTenant, 1, entities.TimeRange{Start: "09:00", End: "12:00"})

	scheduling, err := service.Create(context.Background(), testTenant, entities.CreateSchedulingRequest{
		WorkerID:       1,
		ClientID:       9,
		AppointmentIDs: []uint{appointmentID},
		Date:           "2025-11-24",
		StartTime:      "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 600, scheduling.StartMinute)
}

func TestCreate_InvalidInput(t *testing.T) {
	db := setupTestDB(t)
	clock := time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)
	service := newSchedulingService(t, db, clock)

	appointmentID := seedAppointmentType(t, db, testTenant, "Consultation", 30)
	seedWeekdayAvailability(t, db, testTenant, 1, entities.TimeRange{Start: "09:00", End: "12:00"})

	base := entities.CreateSchedulingRequest{
		WorkerID:       1,
		ClientID:       9,
		AppointmentIDs: []uint{appointmentID},
		Date:           "24/11/2025",
		StartTime:      "09:00",
	}

	t.Run("empty appointment set", func(t *testing.T) {
		req := base
		req.AppointmentIDs = nil
		_, err := service.Create(context.Background(), testTenant, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("malformed date", func(t *testing.T) {
		req := base
		req.Date = "24-11-2025"
		_, err := service.Create(context.Background(), testTenant, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("malformed start time", func(t *testing.T) {
		req := base
		req.StartTime = "quarter past nine"
		_, err := service.Create(context.Background(), testTenant, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCreate_SlotUnavailable(t *testing.T) {
	db := setupTestDB(t)
	clock := time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)
	service := newSchedulingService(t, db, clock)

	appointmentID := seedAppointmentType(t, db, testTenant, "Consultation", 30)
	seedWeekdayAvailability(t, db, testTenant, 1, entities.TimeRange{Start: "09:00", End: "12:00"})

	// 09:30 is inside the window but is not a generated slot.
	_, err := service.Create(context.Background(), testTenant, entities.CreateSchedulingRequest{
		WorkerID:       1,
		ClientID:       9,
		AppointmentIDs: []uint{appointmentID},
		Date:           "24/11/2025",
		StartTime:      "09:30",
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	var count int64
	require.NoError(t, db.Model(&entities.Scheduling{}).Count(&count).Error)
	assert.Zero(t, count, "no partial scheduling may be visible")
}

func TestCreate_SecondBookingOnTakenSlotFails(t *testing.T) {
	db := setupTestDB(t)
	clock := time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)
	service := newSchedulingService(t, db, clock)

	appointmentID := seedAppointmentType(t, db, testTenant, "Consultation", 30)
	seedWeekdayAvailability(t, db, testTenant, 1, entities.TimeRange{Start: "09:00", End: "12:00"})

	req := entities.CreateSchedulingRequest{
		WorkerID:       1,
		ClientID:       9,
		AppointmentIDs: []uint{appointmentID},
		Date:           "24/11/2025",
		StartTime:      "09:00",
	}

	_, err := service.Create(context.Background(), testTenant, req)
	require.NoError(t, err)

	req.ClientID = 10
	_, err = service.Create(context.Background(), testTenant, req)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestCreate_UnknownAppointmentType(t *testing.T) {
	db := setupTestDB(t)
	clock := time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)
	service := newSchedulingService(t, db, clock)

	seedWeekdayAvailability(t, db, testTenant, 1, entities.TimeRange{Start: "09:00", End: "12:00"})

	_, err := service.Create(context.Background(), testTenant, entities.CreateSchedulingRequest{
		WorkerID:       1,
		ClientID:       9,
		AppointmentIDs: []uint{12345},
		Date:           "24/11/2025",
		StartTime:      "09:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	var count int64
	require.NoError(t, db.Model(&entities.Scheduling{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreate_RaceOnSameSlot(t *testing.T) {
	db := setupTestDB(t)
	clock := time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)
	service := newSchedulingService(t, db, clock)

	appointmentID := seedAppointmentType(t, db, testTenant, "Consultation", 30)
	seedWeekdayAvailability(t, db, testTenant, 1, entities.TimeRange{Start: "09:00", End: "12:00"})

	req := entities.CreateSchedulingRequest{
		WorkerID:       1,
		ClientID:       9,
		AppointmentIDs: []uint{appointmentID},
		Date:           "24/11/2025",
		StartTime:      "09:00",
	}

	var wg sync.WaitGroup
	results := make([]error, 2)

	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := req
			r.ClientID = uint(100 + i)
			_, results[i] = service.Create(context.Background(), testTenant, r)
		}(i)
	}
	wg.Wait()

	// Exactly one writer wins; the loser sees the winner's booking when it
	// re-runs slot generation inside the lock.
	succeeded, unavailable := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrSlotUnavailable):
			unavailable++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, unavailable)

	var count int64
	require.NoError(t, db.Model(&entities.Scheduling{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreate_DifferentWorkersDoNotContend(t *testing.T) {
	db := setupTestDB(t)
	clock := time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)
	service := newSchedulingService(t, db, clock)

	appointmentID := seedAppointmentType(t, db, testTenant, "Consultation", 30)
	seedWeekdayAvailability(t, db, testTenant, 1, entities.TimeRange{Start: "09:00", End: "12:00"})
	seedWeekdayAvailability(t, db, testTenant, 2, entities.TimeRange{Start: "09:00", End: "12:00"})

	var wg sync.WaitGroup
	results := make([]error, 2)

	for i, workerID := range []uint{1, 2} {
		wg.Add(1)
		go func(i int, workerID uint) {
			defer wg.Done()
			_, results[i] = service.Create(context.Background(), testTenant, entities.CreateSchedulingRequest{
				WorkerID:       workerID,
				ClientID:       9,
				AppointmentIDs: []uint{appointmentID},
				Date:           "24/11/2025",
				StartTime:      "09:00",
			})
		}(i, workerID)
	}
	wg.Wait()

	assert.NoError(t, results[0])
	assert.NoError(t, results[1])
}

func TestCancel_FreesTheSlot(t *testing.T) {
	db := setupTestDB(t)
	clock := time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)
	service := newSchedulingService(t, db, clock)

	appointmentID := seedAppointmentType(t, db, testTenant, "Consultation", 30)
	seedWeekdayAvailability(t, db, testTenant, 1, entities.TimeRange{Start: "09:00", End: "12:00"})

	req := entities.CreateSchedulingRequest{
		WorkerID:       1,
		ClientID:       9,
		AppointmentIDs: []uint{appointmentID},
		Date:           "24/11/2025",
		StartTime:      "09:00",
	}

	scheduling, err := service.Create(context.Background(), testTenant, req)
	require.NoError(t, err)

	_, err = service.Create(context.Background(), testTenant, req)
	require.ErrorIs(t, err, ErrSlotUnavailable)

	_, err = service.Cancel(testTenant, scheduling.ID)
	require.NoError(t, err)

	rebooked, err := service.Create(context.Background(), testTenant, req)
	require.NoError(t, err)
	assert.Equal(t, 540, rebooked.StartMinute)
}

func TestList_OrdersByStart(t *testing.T) {
	db := setupTestDB(t)
	clock := time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)
	service := newSchedulingService(t, db, clock)

	appointmentID := seedAppointmentType(t, db, testTenant, "Consultation", 30)
	seedWeekdayAvailability(t, db, testTenant, 1, entities.TimeRange{Start: "09:00", End: "12:00"})

	for _, start := range []string{"11:00", "09:00", "10:00"} {
		_, err := service.Create(context.Background(), testTenant, entities.CreateSchedulingRequest{
			WorkerID:       1,
			ClientID:       9,
			AppointmentIDs: []uint{appointmentID},
			Date:           "24/11/2025",
			StartTime:      start,
		})
		require.NoError(t, err)
	}

	schedulings, err := service.List(testTenant, 1, futureMonday)
	require.NoError(t, err)
	require.Len(t, schedulings, 3)
	assert.Equal(t, 540, schedulings[0].StartMinute)
	assert.Equal(t, 600, schedulings[1].StartMinute)
	assert.Equal(t, 660, schedulings[2].StartMinute)
}
