package team

import (
	"context"

	"worktrack-backend/internal/domain/role"
)

// Scope maps a user id to the projects it shares with the viewing lead.
// Treated as a read-only snapshot; never mutate one after it is built.
type Scope map[string][]string

// Contains reports whether userID shares at least one project.
func (s Scope) Contains(userID string) bool {
	return len(s[userID]) > 0
}

// UserIDs returns the users with a non-empty project list.
func (s Scope) UserIDs() []string {
	out := make([]string, 0, len(s))
	for u, projects := range s {
		if len(projects) > 0 {
			out = append(out, u)
		}
	}
	return out
}

// ProjectRoles that put a member's project peers in their scope.
var QualifyingProjectRoles = []string{ProjectRoleLead, ProjectRoleManager, ProjectRoleOwner}

type ProjectMember struct {
	ProjectID   string `gorm:"column:project_id;type:char(32);primaryKey"`
	UserID      string `gorm:"column:user_id;type:char(32);primaryKey;index"`
	ProjectRole string `gorm:"column:project_role;type:varchar(16);not null"`
}

func (ProjectMember) TableName() string { return "project_members" }

// ScopeSource loads the scope of an actor from the backing store.
type ScopeSource interface {
	FetchTeamScope(ctx context.Context, actorID string) (Scope, error)
}

// CanManageUser decides whether the actor may act on targetUserID's data.
// Managers are organization-wide; team leads are limited to scope.
func CanManageUser(actorRole role.Role, actorID, targetUserID string, scope Scope) bool {
	switch actorRole {
	case role.SuperAdmin, role.Management, role.Manager:
		return true
	case role.TeamLead:
		return scope.Contains(targetUserID)
	}
	return false
}

// NeedsScope reports whether CanManageUser consults the scope for r.
func NeedsScope(r role.Role) bool { return r == role.TeamLead }
