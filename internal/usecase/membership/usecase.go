package membership

import (
	"context"

	"worktrack-backend/internal/domain/permission"
	"worktrack-backend/internal/domain/role"
	"worktrack-backend/internal/domain/team"
	"worktrack-backend/internal/domain/timesheet"
	"worktrack-backend/internal/logger"
)

type Usecase struct {
	members team.MemberStore
	scopes  team.ScopeInvalidator
	log     *logger.Logger
}

// NewUsecase: scopes may be nil when no scope cache is configured.
func NewUsecase(members team.MemberStore, scopes team.ScopeInvalidator, log *logger.Logger) *Usecase {
	if log == nil {
		log = logger.Nop()
	}
	return &Usecase{members: members, scopes: scopes, log: log}
}

// SetMember adds userID to projectID or changes its project role. Every
// member of the project, the new one included, gets its cached scope
// dropped, since any of them may now see a different team.
func (u *Usecase) SetMember(ctx context.Context, actor role.Actor, projectID, userID, projectRole string) (*team.ProjectMember, error) {
	if !permission.CanManageProjects(actor.Role) {
		return nil, timesheet.Denied("manage projects")
	}
	if !team.ValidProjectRole(projectRole) {
		return nil, timesheet.Rejected("project role", "unknown project role "+projectRole)
	}

	m := &team.ProjectMember{ProjectID: projectID, UserID: userID, ProjectRole: projectRole}
	if err := u.members.AddMember(ctx, m); err != nil {
		return nil, timesheet.Remote("add project member", err)
	}
	log := u.log.WithActor(actor.ID, string(actor.Role))
	log.Audit("project member set", "project_id", projectID, "user_id", userID, "project_role", projectRole)

	if u.scopes == nil {
		return m, nil
	}
	ids, err := u.members.ProjectMemberIDs(ctx, projectID)
	if err != nil {
		// the write stands; cached scopes age out with their TTL
		log.Warnw("scope invalidation skipped", "project_id", projectID, "error", err)
		return m, nil
	}
	for _, id := range ids {
		if err := u.scopes.Invalidate(ctx, id); err != nil {
			log.Warnw("scope invalidation failed", "user_id", id, "error", err)
		}
	}
	return m, nil
}
