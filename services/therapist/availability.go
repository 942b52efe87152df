package therapist

import (
	"fmt"
	"time"

	"mendwell/services/schedule"
)

// AvailableDates returns the bookable dates for a therapist within the
// lookahead window, as "2006-01-02" strings.
func (s *DefaultTherapistService) AvailableDates(therapistID string, from time.Time, days int) ([]string, error) {
	therapist, err := s.GetTherapistByID(therapistID)
	if err != nil {
		return nil, err
	}
	resolved := schedule.Resolve(therapist.Schedule)
	return schedule.AvailableDates(resolved, from, days), nil
}

// AvailableSlots returns the bookable start times ("15:04") for a therapist
// on a given date.
func (s *DefaultTherapistService) AvailableSlots(therapistID, date string) ([]string, error) {
	if _, err := time.Parse(schedule.DateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	therapist, err := s.GetTherapistByID(therapistID)
	if err != nil {
		return nil, err
	}
	resolved := schedule.Resolve(therapist.Schedule)
	return schedule.SlotsFor(resolved, date, schedule.DefaultIncrement), nil
}
