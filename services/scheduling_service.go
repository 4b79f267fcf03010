package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/unburdy/scheduling-module/entities"
	"github.com/unburdy/scheduling-module/pkg/lock"
)

// SchedulingService commits bookings. All writes for one worker are
// serialized through the distributed worker lock: availability is recomputed
// and validated inside the locked region, and the insert happens in the same
// region, so no other writer can interleave between check and commit.
type SchedulingService struct {
	db            *gorm.DB
	locks         lock.Manager
	availableTime *AvailableTimeService
}

// NewSchedulingService creates a new scheduling service
func NewSchedulingService(db *gorm.DB, locks lock.Manager, availableTime *AvailableTimeService) *SchedulingService {
	return &SchedulingService{
		db:            db,
		locks:         locks,
		availableTime: availableTime,
	}
}

// Create commits a booking. The date accepts DD/MM/YYYY or YYYY-MM-DD, the
// start time HH:MM. Returns ErrInvalidInput for malformed input or unknown
// references, ErrSlotUnavailable when the start is not a generated slot at
// commit time, and ErrLockUnavailable when the worker lock cannot be
// acquired before the deadline.
func (s *SchedulingService) Create(ctx context.Context, tenantID uint, req entities.CreateSchedulingRequest) (*entities.Scheduling, error) {
	if len(req.AppointmentIDs) == 0 {
		return nil, fmt.Errorf("%w: appointment set is empty", ErrInvalidInput)
	}

	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	startMinute, err := ParseClock(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var scheduling *entities.Scheduling
	lockErr := s.locks.WithLock(ctx, lock.WorkerKey(req.WorkerID), func() error {
		scheduling, err = s.commitLocked(tenantID, req, date, startMinute)
		return err
	})
	if lockErr != nil {
		if errors.Is(lockErr, lock.ErrNotAcquired) {
			return nil, fmt.Errorf("%w: worker %d", ErrLockUnavailable, req.WorkerID)
		}
		return nil, lockErr
	}

	return scheduling, nil
}

// commitLocked runs the check-and-insert sequence. Caller holds the worker
// lock.
func (s *SchedulingService) commitLocked(tenantID uint, req entities.CreateSchedulingRequest, date time.Time, startMinute int) (*entities.Scheduling, error) {
	var appointmentTypes []entities.AppointmentType
	if err := s.db.Where("id IN ? AND tenant_id = ?", req.AppointmentIDs, tenantID).Find(&appointmentTypes).Error; err != nil {
		return nil, fmt.Errorf("failed to load appointment types: %w", err)
	}
	if len(appointmentTypes) != len(req.AppointmentIDs) {
		return nil, fmt.Errorf("%w: unknown appointment type in set", ErrInvalidInput)
	}

	slots, err := s.availableTime.GenerateSlots(req.WorkerID, date, req.AppointmentIDs, tenantID)
	if err != nil {
		return nil, err
	}

	valid := false
	for _, slot := range slots {
		if slot.Start == startMinute {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("%w: %s on %s", ErrSlotUnavailable, FormatClock(startMinute), date.Format("02/01/2006"))
	}

	// Duration and end time are derived from the appointment set before the
	// insert so the row is written complete in one statement.
	totalDuration := 0
	for _, at := range appointmentTypes {
		totalDuration += at.DurationMinutes
	}

	var scheduling entities.Scheduling
	err = s.db.Transaction(func(tx *gorm.DB) error {
		scheduling = entities.Scheduling{
			TenantID:         tenantID,
			WorkerID:         req.WorkerID,
			ClientID:         req.ClientID,
			Date:             date,
			StartMinute:      startMinute,
			EndMinute:        startMinute + totalDuration,
			DurationMinutes:  totalDuration,
			Status:           entities.SchedulingStatusConfirmed,
			Notes:            req.Notes,
			AppointmentTypes: appointmentTypes,
		}

		if err := tx.Create(&scheduling).Error; err != nil {
			return fmt.Errorf("failed to create scheduling: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &scheduling, nil
}

// List returns a worker's schedulings for a date, in start order
func (s *SchedulingService) List(tenantID, workerID uint, date time.Time) ([]entities.Scheduling, error) {
	var schedulings []entities.Scheduling
	err := s.db.Preload("AppointmentTypes").
		Where("worker_id = ? AND tenant_id = ? AND date = ?", workerID, tenantID, date).
		Order("start_minute").
		Find(&schedulings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list schedulings: %w", err)
	}
	return schedulings, nil
}

// Get retrieves one scheduling by id
func (s *SchedulingService) Get(tenantID, id uint) (*entities.Scheduling, error) {
	var scheduling entities.Scheduling
	err := s.db.Preload("AppointmentTypes").
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&scheduling).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: scheduling %d not found", ErrInvalidInput, id)
		}
		return nil, fmt.Errorf("failed to retrieve scheduling: %w", err)
	}
	return &scheduling, nil
}

// Cancel marks a scheduling cancelled, releasing its time for new bookings
func (s *SchedulingService) Cancel(tenantID, id uint) (*entities.Scheduling, error) {
	scheduling, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}
	if scheduling.Status == entities.SchedulingStatusCancelled {
		return scheduling, nil
	}

	scheduling.Status = entities.SchedulingStatusCancelled
	if err := s.db.Model(scheduling).Update("status", entities.SchedulingStatusCancelled).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel scheduling: %w", err)
	}
	return scheduling, nil
}
