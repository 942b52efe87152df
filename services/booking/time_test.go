package booking

import (
	"testing"
	"time"
)

func TestComposeStartTime(t *testing.T) {
	got, err := ComposeStartTime("2024-06-10", "10:00 - 11:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 6, 10, 10, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	// A bare start time without the end half works too.
	got, err = ComposeStartTime("2024-06-10", "22:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour() != 22 || got.Minute() != 0 {
		t.Fatalf("expected 22:00, got %v", got)
	}
}

func TestComposeStartTimeRejectsGarbage(t *testing.T) {
	cases := []struct{ date, slot string }{
		{"2024-06-10", "noon - 1pm"},
		{"June 10th", "10:00 - 11:00"},
		{"", ""},
	}
	for _, c := range cases {
		if _, err := ComposeStartTime(c.date, c.slot); err == nil {
			t.Errorf("ComposeStartTime(%q, %q): expected error", c.date, c.slot)
		}
	}
}
