package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// parseClock converts "HH:MM" to minutes from midnight.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed clock value %q", s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed clock value %q", s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed clock value %q", s)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return hours*60 + minutes, nil
}

// formatClock converts minutes from midnight back to "HH:MM".
func formatClock(m int) string {
	m %= minutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

var fallbackWeekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
}

// AvailableDates enumerates the bookable calendar dates within the lookahead
// window starting at from. With no weekday or explicit-date signal but a
// working-hours signal present, Monday through Friday are assumed. With no
// signal at all the result is empty, which callers surface as "no
// availability".
func AvailableDates(s Schedule, from time.Time, days int) []string {
	if days <= 0 {
		days = DefaultLookaheadDays
	}
	if days > MaxLookaheadDays {
		days = MaxLookaheadDays
	}

	weekdays := s.Weekdays
	if len(weekdays) == 0 && len(s.Dates) == 0 {
		if !s.HasHours() {
			return nil
		}
		weekdays = make(map[time.Weekday]struct{}, len(fallbackWeekdays))
		for _, wd := range fallbackWeekdays {
			weekdays[wd] = struct{}{}
		}
	}

	var dates []string
	for i := 0; i < days; i++ {
		day := from.AddDate(0, 0, i)
		dateStr := day.Format(DateLayout)
		if _, ok := weekdays[day.Weekday()]; ok {
			dates = append(dates, dateStr)
			continue
		}
		if _, ok := s.Dates[dateStr]; ok {
			dates = append(dates, dateStr)
		}
	}
	return dates
}

// DateAvailable reports whether the schedule opens the given date at all,
// applying the same weekday, explicit-date, and Monday-to-Friday fallback
// rules as AvailableDates.
func DateAvailable(s Schedule, date string) bool {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	if _, ok := s.Dates[day.Format(DateLayout)]; ok {
		return true
	}

	weekdays := s.Weekdays
	if len(weekdays) == 0 && len(s.Dates) == 0 {
		if !s.HasHours() {
			return false
		}
		for _, wd := range fallbackWeekdays {
			if wd == day.Weekday() {
				return true
			}
		}
		return false
	}
	_, ok := weekdays[day.Weekday()]
	return ok
}

// SlotsFor returns the bookable slot start times for a chosen date. A
// per-day slot list takes precedence; otherwise the working-hours range is
// expanded in fixed increments, wrapping past midnight when end <= start.
func SlotsFor(s Schedule, date string, increment time.Duration) []string {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return nil
	}

	if len(s.PerDay) > 0 {
		slots := append([]string(nil), s.PerDay[day.Weekday()]...)
		sort.Strings(slots)
		return slots
	}
	if s.Hours == nil {
		return nil
	}
	return expandRange(*s.Hours, increment)
}

// expandRange walks the range in fixed increments. A slot is emitted only
// while the slot itself still fits strictly inside the range, so a
// 10:00-18:00 range with 60-minute increments ends at 16:00.
func expandRange(r Range, increment time.Duration) []string {
	start, err := parseClock(r.Start)
	if err != nil {
		return nil
	}
	end, err := parseClock(r.End)
	if err != nil {
		return nil
	}
	if end <= start {
		end += minutesPerDay // overnight span
	}

	step := int(increment.Minutes())
	if step <= 0 {
		step = int(DefaultIncrement.Minutes())
	}

	var slots []string
	for t := start; t+step < end; t += step {
		slots = append(slots, formatClock(t))
	}
	return slots
}

// SlotLabel renders a slot start time as the user-facing label, e.g.
// "10:00 - 11:00" for a 60-minute increment.
func SlotLabel(start string, increment time.Duration) string {
	m, err := parseClock(start)
	if err != nil {
		return start
	}
	step := int(increment.Minutes())
	if step <= 0 {
		step = int(DefaultIncrement.Minutes())
	}
	return fmt.Sprintf("%s - %s", formatClock(m), formatClock(m+step))
}
