package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/unburdy/scheduling-module/entities"
)

// minimumNoticeMinutes is how far ahead of "now" the first slot of the
// current day must start.
const minimumNoticeMinutes = 10

// AvailableTimeService computes the bookable slots for a worker on a date.
// Read-only callers use it directly; the scheduling committer re-runs it
// under the worker lock as the authoritative check.
type AvailableTimeService struct {
	db           *gorm.DB
	availability *AvailabilityService
	now          func() time.Time
}

// NewAvailableTimeService creates a new available time service
func NewAvailableTimeService(db *gorm.DB, availability *AvailabilityService) *AvailableTimeService {
	return &AvailableTimeService{
		db:           db,
		availability: availability,
		now:          time.Now,
	}
}

// SetClock overrides the wall clock. Intended for tests.
func (s *AvailableTimeService) SetClock(now func() time.Time) {
	s.now = now
}

// GenerateSlots computes the ordered candidate slots for the worker, date
// and appointment set. An unknown worker, an empty appointment set or a day
// without availability all yield an empty result, not an error.
func (s *AvailableTimeService) GenerateSlots(workerID uint, date time.Time, appointmentIDs []uint, tenantID uint) ([]Interval, error) {
	totalDuration, err := s.totalDuration(appointmentIDs, tenantID)
	if err != nil {
		return nil, err
	}
	if totalDuration <= 0 {
		return nil, nil
	}

	raw, err := s.availability.ResolveDay(workerID, date)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	now := s.now()

	busy, err := s.busyIntervals(workerID, tenantID, date, now)
	if err != nil {
		return nil, err
	}

	free := SubtractIntervals(raw, busy)

	tolerance, err := s.overlapTolerance(tenantID)
	if err != nil {
		return nil, err
	}

	// The earliest admissible start only binds on the current day; future
	// and past dates start at the window opening.
	earliest := 0
	if SameDate(date, now) {
		earliest = now.Hour()*60 + now.Minute() + minimumNoticeMinutes
	}

	var slots []Interval
	for _, window := range free {
		// Tolerance extends only the closing edge: a booking may finish up
		// to tolerance minutes past the nominal end, never start before the
		// nominal start.
		tolerated := Interval{Start: window.Start, End: window.End + tolerance}
		slots = append(slots, SlotsWithin(tolerated, totalDuration, earliest)...)
	}
	return slots, nil
}

// GenerateTimeRanges is the outward-facing form of GenerateSlots: an ordered
// mapping of 1-based positions to HH:MM slot ranges.
func (s *AvailableTimeService) GenerateTimeRanges(workerID uint, date time.Time, appointmentIDs []uint, tenantID uint) (map[string]entities.SlotRange, error) {
	slots, err := s.GenerateSlots(workerID, date, appointmentIDs, tenantID)
	if err != nil {
		return nil, err
	}

	ranges := make(map[string]entities.SlotRange, len(slots))
	for i, slot := range slots {
		ranges[strconv.Itoa(i+1)] = entities.SlotRange{
			Start: FormatClock(slot.Start),
			End:   FormatClock(slot.End),
		}
	}
	return ranges, nil
}

// busyIntervals projects the worker's non-cancelled schedulings for the date
// into busy minute intervals. Schedulings already finished by "now" on the
// current day are dropped so new bookings can use the freed time; past dates
// carry no busy time at all.
func (s *AvailableTimeService) busyIntervals(workerID, tenantID uint, date, now time.Time) ([]Interval, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, date.Location())
	if date.Before(today) {
		return nil, nil
	}

	var schedulings []entities.Scheduling
	err := s.db.
		Where("worker_id = ? AND tenant_id = ? AND date = ? AND status <> ?",
			workerID, tenantID, date, entities.SchedulingStatusCancelled).
		Find(&schedulings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing schedulings: %w", err)
	}

	nowMinute := now.Hour()*60 + now.Minute()
	isToday := SameDate(date, now)

	var busy []Interval
	for _, scheduling := range schedulings {
		if isToday && scheduling.EndMinute <= nowMinute {
			continue
		}
		busy = append(busy, Interval{Start: scheduling.StartMinute, End: scheduling.EndMinute})
	}

	SortIntervals(busy)
	return busy, nil
}

// totalDuration sums the durations of the requested appointment types for
// the tenant. Unknown ids simply contribute nothing here; existence is
// enforced by the committer.
func (s *AvailableTimeService) totalDuration(appointmentIDs []uint, tenantID uint) (int, error) {
	if len(appointmentIDs) == 0 {
		return 0, nil
	}

	var total int64
	err := s.db.Model(&entities.AppointmentType{}).
		Where("id IN ? AND tenant_id = ?", appointmentIDs, tenantID).
		Select("COALESCE(SUM(duration_minutes), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum appointment durations: %w", err)
	}
	return int(total), nil
}

// overlapTolerance loads the tenant's overlap tolerance, defaulting to zero
// when the tenant has no scheduling config.
func (s *AvailableTimeService) overlapTolerance(tenantID uint) (int, error) {
	var config entities.SchedulingConfig
	err := s.db.Where("tenant_id = ?", tenantID).First(&config).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to load scheduling config: %w", err)
	}
	if config.OverlapToleranceMinutes < 0 {
		return 0, nil
	}
	return config.OverlapToleranceMinutes, nil
}
