package role

import "strings"

type Role string

// Canonical role set, lowest to highest.
const (
	Employee   Role = "employee"
	TeamLead   Role = "team_lead"
	Manager    Role = "manager"
	Management Role = "management"
	SuperAdmin Role = "super_admin"
)

var ranks = map[Role]int{
	Employee:   1,
	TeamLead:   2,
	Manager:    3,
	Management: 4,
	SuperAdmin: 5,
}

// All returns the canonical roles in ascending rank.
func All() []Role {
	return []Role{Employee, TeamLead, Manager, Management, SuperAdmin}
}

// Parse normalizes case and surrounding whitespace. It does not alias
// legacy spellings such as "lead"; those stay unknown.
func Parse(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

// Rank returns 0 for anything outside the canonical set.
func Rank(r Role) int { return ranks[r] }

func (r Role) Known() bool {
	_, ok := ranks[r]
	return ok
}

// Dominates reports whether a ranks at or above b. An unknown a never
// dominates a known b.
func Dominates(a, b Role) bool { return Rank(a) >= Rank(b) }

// Actor is the authenticated identity for the duration of a request.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}
