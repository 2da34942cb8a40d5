// Package schedule defines timed scenario triggers and their validation.
package schedule

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"telepilot/internal/scenario"
)

// WeekdayNames indexes short day names by the Sunday=0 convention used in
// schedule entries (distinct from libraries counting Monday=0).
var WeekdayNames = []string{"Dim", "Lun", "Mar", "Mer", "Jeu", "Ven", "Sam"}

// Entry binds a scenario to a device and a recurrence rule. A nil Weekdays
// means every day.
type Entry struct {
	Scenario string
	Device   string
	Hour     int
	Minute   int
	Weekdays []int
	Enabled  bool
}

// wireEntry is the persisted JSON shape of one entry.
type wireEntry struct {
	Scenario string   `json:"scenario"`
	Device   string   `json:"device"`
	Time     wireTime `json:"time"`
	Weekdays []int    `json:"weekdays,omitempty"`
	Enabled  *bool    `json:"enabled,omitempty"`
}

type wireTime struct {
	Hour   *int `json:"hour"`
	Minute *int `json:"minute,omitempty"`
}

// File is the persisted shape of schedule.json.
type File struct {
	Schedules []json.RawMessage `json:"schedules"`
}

// MarshalJSON writes the wire shape; absent weekdays stays absent, not [].
func (e Entry) MarshalJSON() ([]byte, error) {
	hour, minute := e.Hour, e.Minute
	enabled := e.Enabled
	return json.Marshal(wireEntry{
		Scenario: e.Scenario,
		Device:   e.Device,
		Time:     wireTime{Hour: &hour, Minute: &minute},
		Weekdays: e.Weekdays,
		Enabled:  &enabled,
	})
}

// ParseEntry validates one raw entry; index is used in error messages.
func ParseEntry(raw json.RawMessage, index int) (Entry, error) {
	prefix := fmt.Sprintf("Planification [%d]", index)

	var w wireEntry
	if err := json.Unmarshal(raw, &w); err != nil {
		return Entry{}, scenario.NewValidationError("%s: JSON invalide: %v", prefix, err)
	}

	if w.Scenario == "" {
		return Entry{}, scenario.NewValidationError("%s: 'scenario' requis", prefix)
	}
	if w.Device == "" {
		return Entry{}, scenario.NewValidationError("%s: 'device' requis", prefix)
	}
	if w.Time.Hour == nil {
		return Entry{}, scenario.NewValidationError("%s: 'time.hour' requis", prefix)
	}

	hour := *w.Time.Hour
	if hour < 0 || hour > 23 {
		return Entry{}, scenario.NewValidationError("%s: 'hour' doit etre entre 0-23", prefix)
	}

	minute := 0
	if w.Time.Minute != nil {
		minute = *w.Time.Minute
	}
	if minute < 0 || minute > 59 {
		return Entry{}, scenario.NewValidationError("%s: 'minute' doit etre entre 0-59", prefix)
	}

	for _, day := range w.Weekdays {
		if day < 0 || day > 6 {
			return Entry{}, scenario.NewValidationError("%s: 'weekdays' doit contenir des entiers 0-6", prefix)
		}
	}

	enabled := true
	if w.Enabled != nil {
		enabled = *w.Enabled
	}

	return Entry{
		Scenario: w.Scenario,
		Device:   w.Device,
		Hour:     hour,
		Minute:   minute,
		Weekdays: w.Weekdays,
		Enabled:  enabled,
	}, nil
}

// ParseFile validates a whole schedule file. Errors across all entries are
// collected and reported together.
func ParseFile(data []byte) ([]Entry, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, scenario.NewValidationError("'schedules' doit etre une liste")
	}

	entries := make([]Entry, 0, len(f.Schedules))
	var errs []string
	for i, raw := range f.Schedules {
		entry, err := ParseEntry(raw, i)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		entries = append(entries, entry)
	}

	if err := scenario.AggregateErrors(errs); err != nil {
		return nil, err
	}
	return entries, nil
}

// ShouldRunAt reports whether the entry triggers at now: exact hour and
// minute match, and the day passes the weekday filter. time.Weekday already
// counts Sunday as 0, matching the entry convention, so the normalization is
// a single explicit conversion.
func (e Entry) ShouldRunAt(now time.Time) bool {
	if e.Weekdays != nil {
		day := int(now.Weekday()) // Sunday=0
		found := false
		for _, d := range e.Weekdays {
			if d == day {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return now.Hour() == e.Hour && now.Minute() == e.Minute
}

// TimeString formats the trigger time as HH:MM.
func (e Entry) TimeString() string {
	return fmt.Sprintf("%02d:%02d", e.Hour, e.Minute)
}

// WeekdaysString formats the weekday filter for display.
func (e Entry) WeekdaysString() string {
	if e.Weekdays == nil {
		return "Tous les jours"
	}
	days := append([]int(nil), e.Weekdays...)
	sort.Ints(days)
	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, WeekdayNames[d])
	}
	return strings.Join(names, ", ")
}
