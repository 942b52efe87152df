package models

// RawSchedule holds the schedule fields exactly as legacy therapist rows
// carry them. The three fields are mutually ambiguous:
//
//   - Availability: recurring weekday names ("Monday", "tue", ...).
//   - WorkingDays: either explicit "2006-01-02" dates or weekday names.
//   - WorkingHours: either a weekday -> slot-list map, a {start,end} range,
//     or either of those serialized as a JSON string.
//
// Rows are never interpreted directly; services/schedule.Resolve turns a
// RawSchedule into a tagged Schedule once, at the repository boundary.
type RawSchedule struct {
	Availability []string `bson:"availability,omitempty" json:"availability,omitempty"`
	WorkingDays  []string `bson:"working_days,omitempty" json:"workingDays,omitempty"`
	WorkingHours any      `bson:"working_hours,omitempty" json:"workingHours,omitempty"`
}
