package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unburdy/scheduling-module/entities"
)

func TestResolveDay_MissingAvailabilityIsEmpty(t *testing.T) {
	db := setupTestDB(t)
	service := NewAvailabilityService(db)

	windows, err := service.ResolveDay(42, time.Date(2025, 11, 24, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, windows)
}

func TestResolveDay_SelectsWeekday(t *testing.T) {
	db := setupTestDB(t)
	service := NewAvailabilityService(db)

	availability := entities.WorkerAvailability{
		TenantID: 1,
		WorkerID: 1,
		Monday: entities.WeekdayRanges{
			{Start: "09:00", End: "12:00"},
			{Start: "14:00", End: "17:00"},
		},
		Tuesday: entities.WeekdayRanges{
			{Start: "10:00", End: "16:00"},
		},
	}
	require.NoError(t, db.Create(&availability).Error)

	monday := time.Date(2025, 11, 24, 0, 0, 0, 0, time.UTC) // a Monday
	windows, err := service.ResolveDay(1, monday)
	require.NoError(t, err)
	assert.Equal(t, []Interval{
		{Start: 540, End: 720},
		{Start: 840, End: 1020},
	}, windows)

	wednesday := monday.AddDate(0, 0, 2)
	windows, err = service.ResolveDay(1, wednesday)
	require.NoError(t, err)
	assert.Empty(t, windows, "no ranges configured for Wednesday")
}

func TestResolveDay_DropsMalformedRanges(t *testing.T) {
	db := setupTestDB(t)
	service := NewAvailabilityService(db)

	availability := entities.WorkerAvailability{
		TenantID: 1,
		WorkerID: 1,
		Monday: entities.WeekdayRanges{
			{Start: "bogus", End: "12:00"},
			{Start: "15:00", End: "14:00"}, // inverted
			{Start: "09:00", End: "10:00"},
		},
	}
	require.NoError(t, db.Create(&availability).Error)

	windows, err := service.ResolveDay(1, time.Date(2025, 11, 24, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []Interval{{Start: 540, End: 600}}, windows)
}

func TestUpsert_CreatesAndUpdates(t *testing.T) {
	db := setupTestDB(t)
	service := NewAvailabilityService(db)

	created, err := service.Upsert(1, 7, entities.UpsertAvailabilityRequest{
		Monday: []entities.TimeRange{{Start: "09:00", End: "12:00"}},
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	updated, err := service.Upsert(1, 7, entities.UpsertAvailabilityRequest{
		Monday: []entities.TimeRange{
			{Start: "08:00", End: "11:00"},
			{Start: "13:00", End: "18:00"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID, "upsert must not duplicate the row")

	var count int64
	require.NoError(t, db.Model(&entities.WorkerAvailability{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpsert_RejectsInvalidRanges(t *testing.T) {
	db := setupTestDB(t)
	service := NewAvailabilityService(db)

	tests := []struct {
		name   string
		ranges []entities.TimeRange
	}{
		{"inverted range", []entities.TimeRange{{Start: "12:00", End: "09:00"}}},
		{"second range starts before first ends", []entities.TimeRange{
			{Start: "09:00", End: "12:00"},
			{Start: "11:00", End: "14:00"},
		}},
		{"second range touches first", []entities.TimeRange{
			{Start: "09:00", End: "12:00"},
			{Start: "12:00", End: "14:00"},
		}},
		{"three ranges", []entities.TimeRange{
			{Start: "08:00", End: "09:00"},
			{Start: "10:00", End: "11:00"},
			{Start: "12:00", End: "13:00"},
		}},
		{"garbage time", []entities.TimeRange{{Start: "zz:zz", End: "10:00"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Upsert(1, 7, entities.UpsertAvailabilityRequest{Monday: tt.ranges})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
