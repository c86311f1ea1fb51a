package timesheet

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// 2026-10-12 is a Monday.
var monday = time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)

func fullWeek(hours float64) []TimeEntry {
	out := make([]TimeEntry, 0, WorkDays)
	for i := 0; i < WorkDays; i++ {
		out = append(out, TimeEntry{ProjectID: "p1", Date: monday.AddDate(0, 0, i), Hours: hours})
	}
	return out
}

func hasWarning(ws []string, substr string) bool {
	for _, w := range ws {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

func TestWeekDates(t *testing.T) {
	week := WeekDates(monday.Add(15 * time.Hour))
	if !week[0].Equal(monday) {
		t.Fatalf("week[0] = %v, want %v", week[0], monday)
	}
	if week[4].Weekday() != time.Friday {
		t.Fatalf("week[4] = %v, want Friday", week[4].Weekday())
	}
	if !IsMonday(monday) || IsMonday(monday.AddDate(0, 0, 1)) {
		t.Fatalf("IsMonday mismatch")
	}
}

func TestValidate_FullWeekNoWarnings(t *testing.T) {
	if ws := Validate(fullWeek(9), WeekDates(monday)); len(ws) != 0 {
		t.Fatalf("expected no warnings, got %v", ws)
	}
}

func TestValidate_DailyBounds(t *testing.T) {
	entries := fullWeek(9)
	entries[1].Hours = 6  // Tuesday
	entries[2].Hours = 11 // Wednesday
	ws := Validate(entries, WeekDates(monday))
	if !hasWarning(ws, "Tuesday 2026-10-13: less than 8 hours (6h)") {
		t.Fatalf("missing Tuesday warning: %v", ws)
	}
	if !hasWarning(ws, "Wednesday 2026-10-14: more than 10 hours (11h)") {
		t.Fatalf("missing Wednesday warning: %v", ws)
	}
	if len(ws) != 2 {
		t.Fatalf("want 2 warnings, got %v", ws)
	}
}

func TestValidate_SumsMultipleEntriesPerDay(t *testing.T) {
	entries := fullWeek(4.5)
	entries = append(entries, fullWeek(4.5)...)
	if ws := Validate(entries, WeekDates(monday)); len(ws) != 0 {
		t.Fatalf("9h split over two entries per day should pass, got %v", ws)
	}
}

func TestValidate_MissingDay(t *testing.T) {
	entries := fullWeek(9)[1:] // drop Monday
	ws := Validate(entries, WeekDates(monday))
	if !hasWarning(ws, "Monday 2026-10-12: no entries") {
		t.Fatalf("missing no-entries warning: %v", ws)
	}
	if !hasWarning(ws, "Monday 2026-10-12: less than 8 hours (0h)") {
		t.Fatalf("missing low-hours warning: %v", ws)
	}
}

func TestValidate_WeeklyCapCountsEveryEntry(t *testing.T) {
	entries := fullWeek(10)
	entries = append(entries, TimeEntry{ProjectID: "p1", Date: monday.AddDate(0, 0, 5), Hours: 10})
	ws := Validate(entries, WeekDates(monday))
	if !hasWarning(ws, "weekly total exceeds 56 hours (60h)") {
		t.Fatalf("missing weekly warning: %v", ws)
	}
	if hasWarning(ws, "more than 10") || hasWarning(ws, "less than 8") {
		t.Fatalf("10h days must not warn: %v", ws)
	}
}

func TestValidate_FractionalHoursSumExactly(t *testing.T) {
	entries := fullWeek(9)[1:]
	for i := 0; i < 7; i++ {
		entries = append(entries, TimeEntry{ProjectID: "p1", Date: monday, Hours: 1.1})
	}
	entries = append(entries, TimeEntry{ProjectID: "p1", Date: monday, Hours: 0.3})
	if ws := Validate(entries, WeekDates(monday)); len(ws) != 0 {
		t.Fatalf("Monday totals 8.00h, want no warnings, got %v", ws)
	}

	// 5 x 11.2 = 56.00h exactly; only the daily cap may warn
	week := fullWeek(11.2)
	ws := Validate(week, WeekDates(monday))
	if hasWarning(ws, "weekly total") {
		t.Fatalf("56.00h must not exceed the weekly cap: %v", ws)
	}
	if !hasWarning(ws, "Monday 2026-10-12: more than 10 hours (11.2h)") {
		t.Fatalf("daily warning should show the exact total: %v", ws)
	}
}

func TestValidateEntry(t *testing.T) {
	tests := []struct {
		name  string
		entry TimeEntry
		ok    bool
	}{
		{"zero hours", TimeEntry{Date: monday, Hours: 0}, false},
		{"negative hours", TimeEntry{Date: monday, Hours: -1}, false},
		{"upper bound inclusive", TimeEntry{Date: monday, Hours: 24}, true},
		{"over 24", TimeEntry{Date: monday, Hours: 24.5}, false},
		{"friday in window", TimeEntry{Date: monday.AddDate(0, 0, 4), Hours: 8}, true},
		{"saturday outside", TimeEntry{Date: monday.AddDate(0, 0, 5), Hours: 8}, false},
		{"previous sunday outside", TimeEntry{Date: monday.AddDate(0, 0, -1), Hours: 8}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntry(tt.entry, monday)
			if tt.ok && err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("want ErrValidationFailed, got %v", err)
			}
		})
	}
}

func TestSubmitProblems(t *testing.T) {
	empty := &Timesheet{WeekStart: monday}
	if ps := empty.SubmitProblems(); len(ps) != 1 || ps[0] != "timesheet has no entries" {
		t.Fatalf("empty timesheet problems = %v", ps)
	}

	ok := &Timesheet{WeekStart: monday, Entries: fullWeek(9)}
	if ps := ok.SubmitProblems(); len(ps) != 0 {
		t.Fatalf("full week should have no problems, got %v", ps)
	}

	sixDays := &Timesheet{WeekStart: monday, Entries: append(fullWeek(10),
		TimeEntry{ProjectID: "p1", Date: monday.AddDate(0, 0, 5), Hours: 10})}
	ps := sixDays.SubmitProblems()
	if !hasWarning(ps, "entry 6: validation failed: entry date") || !hasWarning(ps, "weekly total exceeds 56") {
		t.Fatalf("six-day timesheet problems = %v", ps)
	}
}
