package schedule

import (
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestExpandRange(t *testing.T) {
	cases := []struct {
		name      string
		rng       Range
		increment time.Duration
		expected  []string
	}{
		{
			name:      "standard business hours",
			rng:       Range{Start: "10:00", End: "18:00"},
			increment: 60 * time.Minute,
			expected:  []string{"10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00"},
		},
		{
			name:      "half hour increments",
			rng:       Range{Start: "09:00", End: "11:00"},
			increment: 30 * time.Minute,
			expected:  []string{"09:00", "09:30", "10:00"},
		},
		{
			name:      "overnight wraps past midnight",
			rng:       Range{Start: "22:00", End: "02:00"},
			increment: 60 * time.Minute,
			expected:  []string{"22:00", "23:00", "00:00"},
		},
		{
			name:      "equal start and end treated as full day",
			rng:       Range{Start: "08:00", End: "08:00"},
			increment: 6 * time.Hour,
			expected:  []string{"08:00", "14:00", "20:00"},
		},
		{
			name:      "malformed start yields nothing",
			rng:       Range{Start: "whenever", End: "18:00"},
			increment: 60 * time.Minute,
			expected:  nil,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := expandRange(c.rng, c.increment)
			if !reflect.DeepEqual(got, c.expected) {
				t.Fatalf("expected %v, got %v", c.expected, got)
			}
		})
	}
}

func TestExpandRangeNeverEmitsEndOrInvalidHours(t *testing.T) {
	slots := expandRange(Range{Start: "10:00", End: "18:00"}, 60*time.Minute)
	for _, s := range slots {
		if s == "18:00" {
			t.Fatalf("slot list contains the range end: %v", slots)
		}
	}

	overnight := expandRange(Range{Start: "22:00", End: "02:00"}, 60*time.Minute)
	if len(overnight) == 0 {
		t.Fatal("expected overnight range to produce slots")
	}
	for _, s := range overnight {
		hour, err := strconv.Atoi(strings.SplitN(s, ":", 2)[0])
		if err != nil {
			t.Fatalf("malformed slot %q", s)
		}
		if hour < 0 || hour > 23 {
			t.Fatalf("slot %q outside 00-23 hour range", s)
		}
	}
}

func TestDateAvailable(t *testing.T) {
	monday := Schedule{
		Weekdays: map[time.Weekday]struct{}{time.Monday: {}},
	}
	withDate := Schedule{
		Weekdays: map[time.Weekday]struct{}{time.Monday: {}},
		Dates:    map[string]struct{}{"2024-06-13": {}},
	}
	hoursOnly := Schedule{Hours: &Range{Start: "10:00", End: "18:00"}}

	cases := []struct {
		name     string
		schedule Schedule
		date     string
		expected bool
	}{
		{"listed weekday", monday, "2024-06-10", true},
		{"unlisted weekday", monday, "2024-06-11", false}, // a Tuesday
		{"explicit date off-weekday", withDate, "2024-06-13", true},
		{"hours-only weekday fallback", hoursOnly, "2024-06-11", true},
		{"hours-only excludes weekend", hoursOnly, "2024-06-15", false},
		{"no signal at all", Schedule{}, "2024-06-10", false},
		{"malformed date", monday, "someday", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := DateAvailable(c.schedule, c.date); got != c.expected {
				t.Fatalf("DateAvailable(%q): expected %v, got %v", c.date, c.expected, got)
			}
		})
	}
}

func TestSlotsForPrefersPerDayList(t *testing.T) {
	s := Schedule{
		PerDay: map[time.Weekday][]string{
			time.Monday: {"14:00", "10:00"},
		},
		Hours: &Range{Start: "08:00", End: "20:00"},
	}

	// 2024-06-10 is a Monday.
	got := SlotsFor(s, "2024-06-10", 60*time.Minute)
	expected := []string{"10:00", "14:00"}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected per-day slots %v, got %v", expected, got)
	}

	// Tuesday has no per-day entry and must not fall through to the range.
	if got := SlotsFor(s, "2024-06-11", 60*time.Minute); len(got) != 0 {
		t.Fatalf("expected no slots for unlisted weekday, got %v", got)
	}
}

func TestSlotsForMalformedDate(t *testing.T) {
	s := Schedule{Hours: &Range{Start: "10:00", End: "12:00"}}
	if got := SlotsFor(s, "not-a-date", 60*time.Minute); got != nil {
		t.Fatalf("expected nil for malformed date, got %v", got)
	}
}

func TestSlotLabel(t *testing.T) {
	cases := []struct {
		start    string
		expected string
	}{
		{start: "10:00", expected: "10:00 - 11:00"},
		{start: "23:00", expected: "23:00 - 00:00"},
	}
	for _, c := range cases {
		if got := SlotLabel(c.start, 60*time.Minute); got != c.expected {
			t.Fatalf("SlotLabel(%q): expected %q, got %q", c.start, c.expected, got)
		}
	}
}
