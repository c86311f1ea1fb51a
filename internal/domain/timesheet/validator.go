package timesheet

import (
	"fmt"
	"math"
	"time"
)

const (
	WorkDays       = 5
	MinDailyHours  = 8.0
	MaxDailyHours  = 10.0
	MaxWeeklyHours = 56.0
	MaxEntryHours  = 24.0
)

// DateOnly drops the clock and zone, keeping the calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func IsMonday(t time.Time) bool { return t.Weekday() == time.Monday }

// WeekDates returns Monday..Friday starting at weekStart.
func WeekDates(weekStart time.Time) [WorkDays]time.Time {
	var out [WorkDays]time.Time
	start := DateOnly(weekStart)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}

// DuplicateWeek is returned when the owner already has a timesheet for week.
func DuplicateWeek(week time.Time) error {
	return Rejected("week start", "a timesheet for "+DateOnly(week).Format("2006-01-02")+" already exists")
}

func dayLabel(d time.Time) string {
	return d.Weekday().String() + " " + d.Format("2006-01-02")
}

// hundredths converts hours to whole hundredths so sums of two-decimal
// values compare exactly.
func hundredths(h float64) int64 { return int64(math.Round(h * 100)) }

func fmtHours(c int64) string { return fmt.Sprintf("%gh", float64(c)/100) }

// Validate returns advisory warnings for a week of entries. The weekly
// total counts every entry, including ones dated outside the five days.
func Validate(entries []TimeEntry, week [WorkDays]time.Time) []string {
	perDay := make(map[time.Time]int64, WorkDays)
	count := make(map[time.Time]int, WorkDays)
	var total int64
	for _, e := range entries {
		d := DateOnly(e.Date)
		c := hundredths(e.Hours)
		perDay[d] += c
		count[d]++
		total += c
	}

	var warnings []string
	for _, d := range week {
		d = DateOnly(d)
		sum := perDay[d]
		switch {
		case sum < hundredths(MinDailyHours):
			warnings = append(warnings, fmt.Sprintf("%s: less than 8 hours (%s)", dayLabel(d), fmtHours(sum)))
		case sum > hundredths(MaxDailyHours):
			warnings = append(warnings, fmt.Sprintf("%s: more than 10 hours (%s)", dayLabel(d), fmtHours(sum)))
		}
	}
	if total > hundredths(MaxWeeklyHours) {
		warnings = append(warnings, fmt.Sprintf("weekly total exceeds 56 hours (%s)", fmtHours(total)))
	}
	for _, d := range week {
		d = DateOnly(d)
		if count[d] == 0 {
			warnings = append(warnings, fmt.Sprintf("%s: no entries", dayLabel(d)))
		}
	}
	return warnings
}

// ValidateEntry is the hard check applied before an entry is accepted.
func ValidateEntry(e TimeEntry, weekStart time.Time) error {
	if math.IsNaN(e.Hours) || e.Hours <= 0 || e.Hours > MaxEntryHours {
		return Rejected("entry hours", fmt.Sprintf("hours must be in (0, 24], got %g", e.Hours))
	}
	start := DateOnly(weekStart)
	end := start.AddDate(0, 0, WorkDays-1)
	d := DateOnly(e.Date)
	if d.Before(start) || d.After(end) {
		return Rejected("entry date", fmt.Sprintf("%s is outside %s..%s",
			d.Format("2006-01-02"), start.Format("2006-01-02"), end.Format("2006-01-02")))
	}
	return nil
}

func (t *Timesheet) Warnings() []string {
	return Validate(t.Entries, WeekDates(t.WeekStart))
}

// SubmitProblems lists everything blocking draft -> submitted. Empty means
// the timesheet may be submitted.
func (t *Timesheet) SubmitProblems() []string {
	if len(t.Entries) == 0 {
		return []string{"timesheet has no entries"}
	}
	var out []string
	for i, e := range t.Entries {
		if err := ValidateEntry(e, t.WeekStart); err != nil {
			out = append(out, fmt.Sprintf("entry %d: %v", i+1, err))
		}
	}
	return append(out, t.Warnings()...)
}
