package permission

import "worktrack-backend/internal/domain/role"

// Capability is a role-derived permission. Checked exhaustively in Can.
type Capability int

const (
	ManageUsers Capability = iota + 1
	ManageProjects
	ManageClients
	ManageBilling
	ApproveTimesheets
	ViewTeamData
	ViewAuditLogs
	ModifySystemSettings
)

// required returns the minimum role for c; ok is false for values outside
// the enum.
func required(c Capability) (role.Role, bool) {
	switch c {
	case ManageUsers, ManageClients, ManageBilling:
		return role.Management, true
	case ManageProjects:
		return role.Manager, true
	case ApproveTimesheets, ViewTeamData:
		return role.TeamLead, true
	case ViewAuditLogs, ModifySystemSettings:
		return role.SuperAdmin, true
	}
	return "", false
}

// Can reports whether r holds capability c.
func Can(r role.Role, c Capability) bool {
	floor, ok := required(c)
	if !ok || !r.Known() {
		return false
	}
	return role.Dominates(r, floor)
}

func CanManageUsers(r role.Role) bool          { return Can(r, ManageUsers) }
func CanManageProjects(r role.Role) bool       { return Can(r, ManageProjects) }
func CanManageClients(r role.Role) bool        { return Can(r, ManageClients) }
func CanManageBilling(r role.Role) bool        { return Can(r, ManageBilling) }
func CanApproveTimesheets(r role.Role) bool    { return Can(r, ApproveTimesheets) }
func CanViewTeamData(r role.Role) bool         { return Can(r, ViewTeamData) }
func CanViewAuditLogs(r role.Role) bool        { return Can(r, ViewAuditLogs) }
func CanModifySystemSettings(r role.Role) bool { return Can(r, ModifySystemSettings) }

type ReportType string

const (
	ReportPersonal  ReportType = "personal"
	ReportTeam      ReportType = "team"
	ReportProject   ReportType = "project"
	ReportFinancial ReportType = "financial"
	ReportExecutive ReportType = "executive"
)

// CanViewReport allows every role to see report types without a tier
// requirement (personal reports).
func CanViewReport(r role.Role, t ReportType) bool {
	switch t {
	case ReportTeam, ReportProject:
		return role.Dominates(r, role.TeamLead)
	case ReportFinancial, ReportExecutive:
		return role.Dominates(r, role.Management)
	}
	return true
}

type RecordType string

const (
	RecordUser      RecordType = "user"
	RecordClient    RecordType = "client"
	RecordProject   RecordType = "project"
	RecordTask      RecordType = "task"
	RecordTimesheet RecordType = "timesheet"
)

// CanDeleteRecord denies unlisted record types outright.
func CanDeleteRecord(r role.Role, t RecordType) bool {
	switch t {
	case RecordUser, RecordClient:
		return role.Dominates(r, role.Management)
	case RecordProject, RecordTask:
		return role.Dominates(r, role.Manager)
	case RecordTimesheet:
		return role.Dominates(r, role.TeamLead)
	}
	return false
}

// CanEditUser lets anyone edit themselves. Editing someone else needs a
// management-tier actor ranked strictly above a known target role; peers,
// superiors and targets with no (or an unrecognized) role are denied.
func CanEditUser(actorRole role.Role, actorID, targetID string, targetRole role.Role) bool {
	if actorID == targetID {
		return true
	}
	if !targetRole.Known() {
		return false
	}
	return role.Dominates(actorRole, role.Management) && role.Rank(actorRole) > role.Rank(targetRole)
}

// Snapshot is the full capability set of a role, as served to clients.
type Snapshot struct {
	Role                 role.Role `json:"role"`
	ManageUsers          bool      `json:"manage_users"`
	ManageProjects       bool      `json:"manage_projects"`
	ManageClients        bool      `json:"manage_clients"`
	ManageBilling        bool      `json:"manage_billing"`
	ApproveTimesheets    bool      `json:"approve_timesheets"`
	ViewTeamData         bool      `json:"view_team_data"`
	ViewAuditLogs        bool      `json:"view_audit_logs"`
	ModifySystemSettings bool      `json:"modify_system_settings"`
}

func SnapshotFor(r role.Role) Snapshot {
	return Snapshot{
		Role:                 r,
		ManageUsers:          CanManageUsers(r),
		ManageProjects:       CanManageProjects(r),
		ManageClients:        CanManageClients(r),
		ManageBilling:        CanManageBilling(r),
		ApproveTimesheets:    CanApproveTimesheets(r),
		ViewTeamData:         CanViewTeamData(r),
		ViewAuditLogs:        CanViewAuditLogs(r),
		ModifySystemSettings: CanModifySystemSettings(r),
	}
}
