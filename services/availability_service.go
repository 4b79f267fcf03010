package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/unburdy/scheduling-module/entities"
)

// AvailabilityService resolves and manages worker weekly availability
type AvailabilityService struct {
	db *gorm.DB
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{db: db}
}

// ResolveDay returns the worker's raw availability windows for a date, in
// start order, as minute intervals. A worker without availability resolves
// to an empty day; malformed stored ranges are dropped.
func (s *AvailabilityService) ResolveDay(workerID uint, date time.Time) ([]Interval, error) {
	var availability entities.WorkerAvailability
	err := s.db.Where("worker_id = ?", workerID).First(&availability).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load worker availability: %w", err)
	}

	ranges := availability.DayRanges(WeekdayOrdinal(date.Weekday()))

	var windows []Interval
	for _, r := range ranges {
		start, err := ParseClock(r.Start)
		if err != nil {
			continue
		}
		end, err := ParseClock(r.End)
		if err != nil {
			continue
		}
		if start >= end {
			continue
		}
		windows = append(windows, Interval{Start: start, End: end})
	}

	SortIntervals(windows)
	return windows, nil
}

// Get returns the stored weekly availability for a worker, or nil when the
// worker has none.
func (s *AvailabilityService) Get(tenantID, workerID uint) (*entities.WorkerAvailability, error) {
	var availability entities.WorkerAvailability
	err := s.db.Where("worker_id = ? AND tenant_id = ?", workerID, tenantID).First(&availability).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load worker availability: %w", err)
	}
	return &availability, nil
}

// Upsert replaces a worker's weekly availability. Each day carries at most
// two ordered [start, end) ranges; days violating the ordering invariant are
// rejected with ErrInvalidInput.
func (s *AvailabilityService) Upsert(tenantID, workerID uint, req entities.UpsertAvailabilityRequest) (*entities.WorkerAvailability, error) {
	days := map[string][]entities.TimeRange{
		"monday":    req.Monday,
		"tuesday":   req.Tuesday,
		"wednesday": req.Wednesday,
		"thursday":  req.Thursday,
		"friday":    req.Friday,
		"saturday":  req.Saturday,
		"sunday":    req.Sunday,
	}
	for name, ranges := range days {
		if err := validateDayRanges(ranges); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, name, err)
		}
	}

	availability := entities.WorkerAvailability{
		TenantID:  tenantID,
		WorkerID:  workerID,
		Monday:    req.Monday,
		Tuesday:   req.Tuesday,
		Wednesday: req.Wednesday,
		Thursday:  req.Thursday,
		Friday:    req.Friday,
		Saturday:  req.Saturday,
		Sunday:    req.Sunday,
	}

	var existing entities.WorkerAvailability
	err := s.db.Where("worker_id = ? AND tenant_id = ?", workerID, tenantID).First(&existing).Error
	switch {
	case err == nil:
		availability.ID = existing.ID
		availability.CreatedAt = existing.CreatedAt
		if err := s.db.Save(&availability).Error; err != nil {
			return nil, fmt.Errorf("failed to update worker availability: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.db.Create(&availability).Error; err != nil {
			return nil, fmt.Errorf("failed to create worker availability: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to load worker availability: %w", err)
	}

	return &availability, nil
}

// validateDayRanges enforces the per-day invariants: at most two ranges,
// start < end inside each, and the first range strictly before the second.
func validateDayRanges(ranges []entities.TimeRange) error {
	if len(ranges) > 2 {
		return fmt.Errorf("at most two ranges per day, got %d", len(ranges))
	}

	previousEnd := -1
	first := true
	for _, r := range ranges {
		start, err := ParseClock(r.Start)
		if err != nil {
			return err
		}
		end, err := ParseClock(r.End)
		if err != nil {
			return err
		}
		if start >= end {
			return fmt.Errorf("range %s-%s is empty", r.Start, r.End)
		}
		if !first && start <= previousEnd {
			return fmt.Errorf("range %s-%s must start strictly after the previous range ends", r.Start, r.End)
		}
		previousEnd = end
		first = false
	}
	return nil
}
