package mysql

import (
	"context"

	teamDomain "worktrack-backend/internal/domain/team"

	"gorm.io/gorm"
)

type TeamRepository struct{ db *gorm.DB }

func NewTeamRepository(db *gorm.DB) *TeamRepository { return &TeamRepository{db: db} }

var (
	_ teamDomain.ScopeSource = (*TeamRepository)(nil)
	_ teamDomain.MemberStore = (*TeamRepository)(nil)
)

func (r *TeamRepository) AddMember(ctx context.Context, m *teamDomain.ProjectMember) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *TeamRepository) ProjectMemberIDs(ctx context.Context, projectID string) ([]string, error) {
	out := []string{}
	err := r.db.WithContext(ctx).
		Model(&teamDomain.ProjectMember{}).
		Where("project_id = ?", projectID).
		Order("user_id").
		Pluck("user_id", &out).Error
	return out, err
}

// FetchTeamScope returns every other member of the projects where actorID
// holds a qualifying project role.
func (r *TeamRepository) FetchTeamScope(ctx context.Context, actorID string) (teamDomain.Scope, error) {
	var rows []struct {
		UserID    string
		ProjectID string
	}
	err := r.db.WithContext(ctx).
		Table("project_members AS peer").
		Select("peer.user_id, peer.project_id").
		Joins("JOIN project_members AS me ON me.project_id = peer.project_id").
		Where("me.user_id = ? AND me.project_role IN ? AND peer.user_id <> ?",
			actorID, teamDomain.QualifyingProjectRoles, actorID).
		Order("peer.user_id, peer.project_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	scope := teamDomain.Scope{}
	for _, row := range rows {
		scope[row.UserID] = append(scope[row.UserID], row.ProjectID)
	}
	return scope, nil
}
