package booking

import (
	"fmt"
	"strings"
	"time"

	"mendwell/services/schedule"
)

// ComposeStartTime combines a selected date ("2024-06-10") and a slot label
// ("10:00 - 11:00") into the session's start timestamp in the server's local
// timezone. Only the start half of the label is significant.
func ComposeStartTime(date, slotLabel string) (time.Time, error) {
	start := slotLabel
	if idx := strings.Index(slotLabel, "-"); idx >= 0 {
		start = slotLabel[:idx]
	}
	start = strings.TrimSpace(start)

	startAt, err := time.ParseInLocation(schedule.DateLayout+" 15:04", date+" "+start, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/slot %q %q: %w", date, slotLabel, err)
	}
	return startAt, nil
}
