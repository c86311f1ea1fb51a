package workflow

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"worktrack-backend/internal/domain/role"
	"worktrack-backend/internal/domain/team"
	"worktrack-backend/internal/domain/timesheet"
)

// MinReasonLength applies to the trimmed rejection reason.
const MinReasonLength = 10

type CreateInput struct {
	WeekStart time.Time
	Entries   []timesheet.TimeEntry
}

type ListInput struct {
	Status    timesheet.Status
	WeekStart *time.Time
	Limit     int
}

// Reviewer is an actor cleared to approve, with the team scope resolved
// once. The scope is shared read-only between concurrent reviews.
type Reviewer struct {
	role.Actor
	Scope team.Scope
}

// ValidateReason returns the trimmed reason.
func ValidateReason(reason string) (string, error) {
	r := strings.TrimSpace(reason)
	if n := utf8.RuneCountInString(r); n < MinReasonLength {
		return "", timesheet.Rejected("rejection reason",
			fmt.Sprintf("must be at least %d characters, got %d", MinReasonLength, n))
	}
	return r, nil
}

// annotate prefixes a guard error with the 1-based entry position.
func annotate(err error, i int) error {
	var g *timesheet.GuardError
	if !errors.As(err, &g) {
		return err
	}
	return &timesheet.GuardError{Kind: g.Kind, Guard: fmt.Sprintf("entry %d: %s", i+1, g.Guard), Details: g.Details}
}
