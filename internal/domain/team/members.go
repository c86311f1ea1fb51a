package team

import "context"

// Project roles a member may hold. The first three qualify for scope.
const (
	ProjectRoleLead    = "lead"
	ProjectRoleManager = "manager"
	ProjectRoleOwner   = "owner"
	ProjectRoleMember  = "member"
)

func ValidProjectRole(r string) bool {
	switch r {
	case ProjectRoleLead, ProjectRoleManager, ProjectRoleOwner, ProjectRoleMember:
		return true
	}
	return false
}

// MemberStore writes project membership, the input of every scope.
type MemberStore interface {
	// AddMember inserts or updates the (project, user) row.
	AddMember(ctx context.Context, m *ProjectMember) error
	ProjectMemberIDs(ctx context.Context, projectID string) ([]string, error)
}

// ScopeInvalidator drops cached scopes; implemented by the redis scope cache.
type ScopeInvalidator interface {
	Invalidate(ctx context.Context, actorID string) error
}
