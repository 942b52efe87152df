// Package schedule disambiguates the heterogeneous schedule fields on
// therapist rows into one tagged representation, resolved once at the
// repository boundary instead of re-interpreted by every consumer.
package schedule

import (
	"encoding/json"
	"strings"
	"time"

	"mendwell/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout is the wire format for explicit working dates.
const DateLayout = "2006-01-02"

// DefaultIncrement is the slot width used when a therapist only provides a
// working-hours range.
const DefaultIncrement = 60 * time.Minute

// DefaultLookaheadDays bounds the booking window when the caller does not
// ask for a specific one.
const DefaultLookaheadDays = 30

// MaxLookaheadDays is the hard ceiling on the booking window.
const MaxLookaheadDays = 60

// Range is a single daily working-hours span. End may be at or before Start,
// which means the span wraps past midnight.
type Range struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Schedule is the disambiguated form of models.RawSchedule.
//
// Day signal: Weekdays (recurring) and Dates (explicit) both contribute
// candidates; recurring weekday names are authoritative when the two
// disagree, but candidates are unioned. Hours signal: PerDay wins over
// Hours when both survive resolution.
type Schedule struct {
	Weekdays map[time.Weekday]struct{}
	Dates    map[string]struct{}
	PerDay   map[time.Weekday][]string
	Hours    *Range
}

// HasDaySignal reports whether any weekday or explicit date survived parsing.
func (s Schedule) HasDaySignal() bool {
	return len(s.Weekdays) > 0 || len(s.Dates) > 0
}

// HasHours reports whether any working-hours signal survived parsing.
func (s Schedule) HasHours() bool {
	return len(s.PerDay) > 0 || s.Hours != nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday accepts full weekday names or three-letter prefixes,
// case-insensitively.
func ParseWeekday(s string) (time.Weekday, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if wd, ok := weekdayNames[key]; ok {
		return wd, true
	}
	if len(key) == 3 {
		for name, wd := range weekdayNames {
			if strings.HasPrefix(name, key) {
				return wd, true
			}
		}
	}
	return time.Sunday, false
}

// Resolve turns legacy schedule fields into a Schedule. Malformed entries
// are skipped per item; a working-hours blob that cannot be interpreted
// resolves to no hours at all.
func Resolve(raw models.RawSchedule) Schedule {
	s := Schedule{
		Weekdays: make(map[time.Weekday]struct{}),
		Dates:    make(map[string]struct{}),
	}

	for _, name := range raw.Availability {
		if wd, ok := ParseWeekday(name); ok {
			s.Weekdays[wd] = struct{}{}
		}
	}

	for _, item := range raw.WorkingDays {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if d, err := time.Parse(DateLayout, item); err == nil {
			s.Dates[d.Format(DateLayout)] = struct{}{}
			continue
		}
		if wd, ok := ParseWeekday(item); ok {
			s.Weekdays[wd] = struct{}{}
		}
		// Anything else is silently dropped.
	}

	s.PerDay, s.Hours = resolveHours(raw.WorkingHours)
	return s
}

// resolveHours interprets the working-hours blob, which may arrive as a
// {start,end} range, a weekday -> slot-list map, or either serialized as a
// JSON string.
func resolveHours(value any) (map[time.Weekday][]string, *Range) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		var decoded map[string]any
		if err := json.Unmarshal([]byte(v), &decoded); err != nil {
			return nil, nil
		}
		return hoursFromMap(decoded)
	case map[string]any:
		return hoursFromMap(v)
	case primitive.D:
		// mongo-driver decodes an interface{} sub-document into primitive.D.
		decoded := make(map[string]any, len(v))
		for _, elem := range v {
			decoded[elem.Key] = elem.Value
		}
		return hoursFromMap(decoded)
	case map[string]string:
		converted := make(map[string]any, len(v))
		for k, val := range v {
			converted[k] = val
		}
		return hoursFromMap(converted)
	case map[string][]string:
		perDay := make(map[time.Weekday][]string)
		for k, slots := range v {
			if wd, ok := ParseWeekday(k); ok {
				perDay[wd] = cleanSlots(slots)
			}
		}
		if len(perDay) == 0 {
			return nil, nil
		}
		return perDay, nil
	default:
		return nil, nil
	}
}

func hoursFromMap(m map[string]any) (map[time.Weekday][]string, *Range) {
	start, hasStart := clockString(m["start"])
	end, hasEnd := clockString(m["end"])
	if hasStart && hasEnd {
		return nil, &Range{Start: start, End: end}
	}

	perDay := make(map[time.Weekday][]string)
	for key, val := range m {
		wd, ok := ParseWeekday(key)
		if !ok {
			continue
		}
		if slots := slotList(val); len(slots) > 0 {
			perDay[wd] = slots
		}
	}
	if len(perDay) == 0 {
		return nil, nil
	}
	return perDay, nil
}

func clockString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	if _, err := parseClock(s); err != nil {
		return "", false
	}
	return strings.TrimSpace(s), true
}

func slotList(v any) []string {
	switch list := v.(type) {
	case []string:
		return cleanSlots(list)
	case primitive.A:
		return slotList([]any(list))
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return cleanSlots(out)
	default:
		return nil
	}
}

func cleanSlots(slots []string) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		s = strings.TrimSpace(s)
		if _, err := parseClock(s); err == nil {
			out = append(out, s)
		}
	}
	return out
}
