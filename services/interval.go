package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// minutesPerDay bounds every interval: 0 <= Start < End <= 1440.
const minutesPerDay = 24 * 60

// Interval is a half-open range [Start, End) in minutes of day.
// Invariant: 0 <= Start < End <= 1440.
type Interval struct {
	Start int
	End   int
}

// Contains reports whether the minute m lies inside the interval
func (i Interval) Contains(m int) bool {
	return m >= i.Start && m < i.End
}

// Overlaps reports whether two half-open intervals intersect
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// ParseClock parses an HH:MM wall-clock string into minutes of day.
// "24:00" is accepted as the closing edge of a day.
func ParseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", value)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", value)
	}

	if hour == 24 && minute == 0 {
		return minutesPerDay, nil
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time %q", value)
	}

	return hour*60 + minute, nil
}

// FormatClock renders minutes of day as HH:MM
func FormatClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseDate parses a calendar date in DD/MM/YYYY or YYYY-MM-DD form. The
// result is truncated to midnight UTC; the engine treats dates as naive
// calendar days.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// WeekdayOrdinal maps a time.Weekday to the Monday=0 .. Sunday=6 ordinal
// used by the weekly availability table.
func WeekdayOrdinal(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// SameDate reports whether two timestamps fall on the same calendar day
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// SortIntervals orders intervals by start, then by end
func SortIntervals(xs []Interval) {
	sort.Slice(xs, func(i, j int) bool {
		if xs[i].Start != xs[j].Start {
			return xs[i].Start < xs[j].Start
		}
		return xs[i].End < xs[j].End
	})
}

// MergeAdjacent merges touching or overlapping intervals into minimal form,
// preserving start order. The input is not modified.
func MergeAdjacent(xs []Interval) []Interval {
	if len(xs) == 0 {
		return nil
	}

	sorted := make([]Interval, len(xs))
	copy(sorted, xs)
	SortIntervals(sorted)

	merged := []Interval{sorted[0]}
	for _, next := range sorted[1:] {
		last := &merged[len(merged)-1]
		if last.End >= next.Start {
			if next.End > last.End {
				last.End = next.End
			}
			continue
		}
		merged = append(merged, next)
	}
	return merged
}

// SubtractIntervals removes every busy interval from the ordered free list.
// Busy intervals outside any free interval are ignored; partial overlaps trim
// the free interval; a busy interval covering a free interval eliminates it.
func SubtractIntervals(free, busy []Interval) []Interval {
	if len(free) == 0 {
		return nil
	}
	if len(busy) == 0 {
		result := make([]Interval, len(free))
		copy(result, free)
		return result
	}

	blocked := MergeAdjacent(busy)

	var result []Interval
	for _, f := range free {
		remaining := f
		for _, b := range blocked {
			if !remaining.Overlaps(b) {
				continue
			}
			if b.Start > remaining.Start {
				result = append(result, Interval{Start: remaining.Start, End: b.Start})
			}
			if b.End >= remaining.End {
				remaining.Start = remaining.End // fully consumed
				break
			}
			remaining.Start = b.End
		}
		if remaining.Start < remaining.End {
			result = append(result, remaining)
		}
	}
	return result
}

// SlotsWithin enumerates bookable slots of the given duration inside a free
// window. The first slot starts at the earliest admissible minute; every
// following slot is anchored on the next whole hour strictly after that
// start, stepping one hour at a time. A window the duration does not fit
// into yields nothing.
func SlotsWithin(window Interval, duration, earliest int) []Interval {
	if duration <= 0 {
		return nil
	}

	start := window.Start
	if earliest > start {
		start = earliest
	}
	if start+duration > window.End {
		return nil
	}

	slots := []Interval{{Start: start, End: start + duration}}

	// Next whole hour strictly after the first start.
	anchor := (start/60 + 1) * 60
	for anchor+duration <= window.End {
		slots = append(slots, Interval{Start: anchor, End: anchor + duration})
		anchor += 60
	}
	return slots
}
