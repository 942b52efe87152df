package schedule

import (
	"testing"
	"time"

	"mendwell/models"

	"go.mongodb.org/mongo-driver/bson"
)

func TestParseWeekday(t *testing.T) {
	cases := []struct {
		input    string
		expected time.Weekday
		ok       bool
	}{
		{input: "Monday", expected: time.Monday, ok: true},
		{input: "monday", expected: time.Monday, ok: true},
		{input: "  Tue ", expected: time.Tuesday, ok: true},
		{input: "SAT", expected: time.Saturday, ok: true},
		{input: "2024-06-10", ok: false},
		{input: "someday", ok: false},
		{input: "", ok: false},
	}
	for _, c := range cases {
		wd, ok := ParseWeekday(c.input)
		if ok != c.ok {
			t.Fatalf("ParseWeekday(%q): expected ok=%v, got %v", c.input, c.ok, ok)
		}
		if ok && wd != c.expected {
			t.Fatalf("ParseWeekday(%q): expected %v, got %v", c.input, c.expected, wd)
		}
	}
}

func TestResolveSkipsMalformedWorkingDays(t *testing.T) {
	raw := models.RawSchedule{
		WorkingDays: []string{"2024-06-10", "garbage", "32nd of Nevember", "", "Friday"},
	}
	s := Resolve(raw)

	if _, ok := s.Dates["2024-06-10"]; !ok {
		t.Fatal("explicit date was dropped")
	}
	if _, ok := s.Weekdays[time.Friday]; !ok {
		t.Fatal("weekday name in workingDays was dropped")
	}
	if len(s.Dates) != 1 || len(s.Weekdays) != 1 {
		t.Fatalf("malformed entries leaked into the schedule: %+v", s)
	}
}

func TestResolveWorkingHoursShapes(t *testing.T) {
	cases := []struct {
		name      string
		value     any
		wantRange bool
		wantDays  int
	}{
		{
			name:      "range map",
			value:     map[string]any{"start": "10:00", "end": "18:00"},
			wantRange: true,
		},
		{
			name:      "range as JSON text",
			value:     `{"start":"10:00","end":"18:00"}`,
			wantRange: true,
		},
		{
			name:     "per-day map",
			value:    map[string]any{"monday": []any{"10:00", "11:00"}, "friday": []any{"09:00"}},
			wantDays: 2,
		},
		{
			name:     "per-day map as JSON text",
			value:    `{"tuesday":["13:00"]}`,
			wantDays: 1,
		},
		{
			name:  "broken JSON text degrades to empty",
			value: `{"start":`,
		},
		{
			name:  "unsupported shape degrades to empty",
			value: 42,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := Resolve(models.RawSchedule{WorkingHours: c.value})
			if c.wantRange && s.Hours == nil {
				t.Fatal("expected a resolved range")
			}
			if !c.wantRange && s.Hours != nil {
				t.Fatalf("unexpected range %+v", s.Hours)
			}
			if len(s.PerDay) != c.wantDays {
				t.Fatalf("expected %d per-day entries, got %d", c.wantDays, len(s.PerDay))
			}
		})
	}
}

func TestResolveWorkingHoursAfterMongoRoundTrip(t *testing.T) {
	// mongo-driver decodes an interface{} sub-document as primitive.D and a
	// nested array as primitive.A, not as map[string]any and []any. Stored
	// rows must resolve the same as freshly built ones.
	cases := []struct {
		name      string
		hours     any
		wantRange bool
		wantDays  int
	}{
		{
			name:      "range sub-document",
			hours:     map[string]any{"start": "10:00", "end": "18:00"},
			wantRange: true,
		},
		{
			name:     "per-day sub-document with slot arrays",
			hours:    map[string]any{"monday": []string{"10:00", "11:00"}, "friday": []string{"09:00"}},
			wantDays: 2,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			data, err := bson.Marshal(models.RawSchedule{
				Availability: []string{"Monday"},
				WorkingHours: c.hours,
			})
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}
			var stored models.RawSchedule
			if err := bson.Unmarshal(data, &stored); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}

			s := Resolve(stored)
			if c.wantRange {
				if s.Hours == nil {
					t.Fatalf("working-hours range lost in storage: %+v", s)
				}
				slots := SlotsFor(s, "2024-06-10", DefaultIncrement)
				if len(slots) == 0 || slots[0] != "10:00" {
					t.Fatalf("expected slots starting at 10:00, got %v", slots)
				}
			}
			if len(s.PerDay) != c.wantDays {
				t.Fatalf("expected %d per-day entries, got %+v", c.wantDays, s.PerDay)
			}
			if c.wantDays > 0 {
				if slots := SlotsFor(s, "2024-06-10", DefaultIncrement); len(slots) != 2 {
					t.Fatalf("expected Monday's two slots, got %v", slots)
				}
			}
		})
	}
}

func TestAvailableDatesWeekdayMembership(t *testing.T) {
	raw := models.RawSchedule{Availability: []string{"Monday", "Wednesday"}}
	s := Resolve(raw)

	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	dates := AvailableDates(s, from, 45)
	if len(dates) == 0 {
		t.Fatal("expected candidate dates")
	}
	for _, ds := range dates {
		day, err := time.Parse(DateLayout, ds)
		if err != nil {
			t.Fatalf("malformed candidate date %q", ds)
		}
		if day.Weekday() != time.Monday && day.Weekday() != time.Wednesday {
			t.Fatalf("candidate %s falls on %v, outside the availability list", ds, day.Weekday())
		}
	}
}

func TestAvailableDatesIncludesExplicitDates(t *testing.T) {
	raw := models.RawSchedule{
		Availability: []string{"Monday"},
		WorkingDays:  []string{"2024-06-13"}, // a Thursday
	}
	s := Resolve(raw)

	from := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	dates := AvailableDates(s, from, 7)

	found := false
	for _, ds := range dates {
		if ds == "2024-06-13" {
			found = true
		}
	}
	if !found {
		t.Fatalf("explicit working date missing from candidates: %v", dates)
	}
}

func TestAvailableDatesHoursOnlyFallback(t *testing.T) {
	// Hours present but no usable day signal: assume Monday-Friday.
	s := Resolve(models.RawSchedule{
		WorkingDays:  []string{"not-a-day"},
		WorkingHours: map[string]any{"start": "10:00", "end": "18:00"},
	})

	from := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC) // a Monday
	dates := AvailableDates(s, from, 7)
	if len(dates) != 5 {
		t.Fatalf("expected 5 weekday candidates, got %v", dates)
	}
	for _, ds := range dates {
		day, _ := time.Parse(DateLayout, ds)
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			t.Fatalf("fallback produced a weekend candidate: %s", ds)
		}
	}

	// Weekday names inside workingDays restrict the fallback instead.
	s = Resolve(models.RawSchedule{
		WorkingDays:  []string{"Saturday"},
		WorkingHours: map[string]any{"start": "10:00", "end": "18:00"},
	})
	dates = AvailableDates(s, from, 7)
	if len(dates) != 1 {
		t.Fatalf("expected a single Saturday candidate, got %v", dates)
	}
	if day, _ := time.Parse(DateLayout, dates[0]); day.Weekday() != time.Saturday {
		t.Fatalf("expected Saturday, got %v", day.Weekday())
	}
}

func TestAvailableDatesNoSignal(t *testing.T) {
	s := Resolve(models.RawSchedule{})
	from := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	if dates := AvailableDates(s, from, 30); len(dates) != 0 {
		t.Fatalf("expected no availability without any signal, got %v", dates)
	}
}
