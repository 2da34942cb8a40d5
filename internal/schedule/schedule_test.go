package schedule

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

// at returns a time on a known calendar: 2024-06-01 is a Saturday.
func at(day, hour, minute int) time.Time {
	return time.Date(2024, 6, day, hour, minute, 30, 0, time.UTC)
}

func TestShouldRunAt_WeekdayFilter(t *testing.T) {
	// Tuesday (2) and Saturday (6) at 20:00
	entry := Entry{Scenario: "s", Device: "d", Hour: 20, Minute: 0, Weekdays: []int{2, 6}, Enabled: true}

	saturday := at(1, 20, 0)
	if saturday.Weekday() != time.Saturday {
		t.Fatal("calendar assumption broken")
	}
	if !entry.ShouldRunAt(saturday) {
		t.Error("should fire Saturday 20:00")
	}
	if !entry.ShouldRunAt(at(4, 20, 0)) { // Tuesday
		t.Error("should fire Tuesday 20:00")
	}
	if entry.ShouldRunAt(at(3, 20, 0)) { // Monday
		t.Error("should not fire Monday")
	}
	if entry.ShouldRunAt(at(1, 20, 1)) {
		t.Error("should not fire at 20:01")
	}
	if entry.ShouldRunAt(at(1, 19, 0)) {
		t.Error("should not fire at 19:00")
	}
}

func TestShouldRunAt_EveryDayWhenNilWeekdays(t *testing.T) {
	entry := Entry{Scenario: "s", Device: "d", Hour: 7, Minute: 30, Enabled: true}

	for day := 1; day <= 7; day++ {
		if !entry.ShouldRunAt(at(day, 7, 30)) {
			t.Errorf("should fire on %v", at(day, 7, 30).Weekday())
		}
	}
	if entry.ShouldRunAt(at(1, 7, 31)) {
		t.Error("should not fire one minute late")
	}
}

func TestShouldRunAt_WorkweekEntry(t *testing.T) {
	entry := Entry{Scenario: "x", Device: "Salon", Hour: 20, Minute: 0, Weekdays: []int{1, 2, 3, 4, 5}, Enabled: true}

	if entry.ShouldRunAt(at(1, 20, 0)) { // Saturday
		t.Error("Saturday (6) is outside the workweek filter")
	}
	if !entry.ShouldRunAt(at(4, 20, 0)) { // Tuesday
		t.Error("Tuesday (2) should fire")
	}
}

func TestShouldRunAt_SundayIsZero(t *testing.T) {
	entry := Entry{Scenario: "s", Device: "d", Hour: 10, Minute: 0, Weekdays: []int{0}, Enabled: true}

	sunday := at(2, 10, 0)
	if sunday.Weekday() != time.Sunday {
		t.Fatal("calendar assumption broken")
	}
	if !entry.ShouldRunAt(sunday) {
		t.Error("weekday 0 should mean Sunday")
	}
	if entry.ShouldRunAt(at(3, 10, 0)) {
		t.Error("weekday 0 should not match Monday")
	}
}

func TestShouldRunAt_ExhaustiveGrid(t *testing.T) {
	// Fixed now: Tuesday 2024-06-04 20:00 (weekday 2).
	now := at(4, 20, 0)
	if now.Weekday() != time.Tuesday {
		t.Fatal("calendar assumption broken")
	}

	// Every hour x minute x weekday filter: nil plus all 128 subsets of 0..6.
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute++ {
			for mask := -1; mask < 128; mask++ {
				var days []int
				containsTuesday := true
				if mask >= 0 {
					days = []int{}
					containsTuesday = false
					for d := 0; d < 7; d++ {
						if mask&(1<<d) != 0 {
							days = append(days, d)
							if d == 2 {
								containsTuesday = true
							}
						}
					}
				}

				entry := Entry{Scenario: "s", Device: "d", Hour: hour, Minute: minute, Weekdays: days, Enabled: true}
				want := hour == 20 && minute == 0 && containsTuesday
				if got := entry.ShouldRunAt(now); got != want {
					t.Fatalf("ShouldRunAt(%02d:%02d, weekdays=%v) = %v, want %v",
						hour, minute, days, got, want)
				}
			}
		}
	}
}

func TestParseEntry_Defaults(t *testing.T) {
	raw := json.RawMessage(`{"scenario":"soir","device":"Salon","time":{"hour":20}}`)

	entry, err := ParseEntry(raw, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Minute != 0 {
		t.Errorf("Minute = %d, want 0", entry.Minute)
	}
	if !entry.Enabled {
		t.Error("Enabled should default to true")
	}
	if entry.Weekdays != nil {
		t.Errorf("Weekdays = %v, want nil", entry.Weekdays)
	}
}

func TestParseEntry_Validation(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"scenario manquant", `{"device":"d","time":{"hour":8}}`, "'scenario' requis"},
		{"device manquant", `{"scenario":"s","time":{"hour":8}}`, "'device' requis"},
		{"hour manquant", `{"scenario":"s","device":"d","time":{}}`, "'time.hour' requis"},
		{"hour hors plage", `{"scenario":"s","device":"d","time":{"hour":24}}`, "'hour' doit etre entre 0-23"},
		{"minute hors plage", `{"scenario":"s","device":"d","time":{"hour":8,"minute":60}}`, "'minute' doit etre entre 0-59"},
		{"weekday hors plage", `{"scenario":"s","device":"d","time":{"hour":8},"weekdays":[7]}`, "'weekdays' doit contenir des entiers 0-6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEntry(json.RawMessage(tt.raw), 3)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("message = %q, want substring %q", err.Error(), tt.want)
			}
			if !strings.Contains(err.Error(), "Planification [3]") {
				t.Errorf("message should carry the entry index: %q", err.Error())
			}
		})
	}
}

func TestParseFile_AggregatesErrors(t *testing.T) {
	data := []byte(`{"schedules":[
		{"scenario":"a","device":"d","time":{"hour":8}},
		{"device":"d","time":{"hour":8}},
		{"scenario":"c","device":"d","time":{"hour":25}}
	]}`)

	_, err := ParseFile(data)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.HasPrefix(err.Error(), "2 erreur(s) de validation:") {
		t.Errorf("expected aggregate header, got %q", err.Error())
	}
}

func TestMarshal_RoundTripKeepsNilWeekdays(t *testing.T) {
	entry := Entry{Scenario: "soir", Device: "Salon", Hour: 20, Minute: 15, Enabled: true}

	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "weekdays") {
		t.Errorf("absent weekdays must stay absent, got %s", data)
	}

	parsed, err := ParseEntry(data, 0)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if parsed.Weekdays != nil {
		t.Errorf("round trip produced weekdays %v, want nil", parsed.Weekdays)
	}
	if parsed.Hour != 20 || parsed.Minute != 15 {
		t.Errorf("round trip time = %02d:%02d", parsed.Hour, parsed.Minute)
	}
}

func TestDisplayHelpers(t *testing.T) {
	entry := Entry{Hour: 7, Minute: 5, Weekdays: []int{6, 2}}
	if got := entry.TimeString(); got != "07:05" {
		t.Errorf("TimeString() = %q", got)
	}
	if got := entry.WeekdaysString(); got != "Mar, Sam" {
		t.Errorf("WeekdaysString() = %q", got)
	}
	if got := (Entry{}).WeekdaysString(); got != "Tous les jours" {
		t.Errorf("WeekdaysString() without filter = %q", got)
	}
}
