package timesheet

import (
	"time"

	"gorm.io/gorm"
)

// Table: timesheets
type Timesheet struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	TimesheetID     string         `gorm:"column:timesheet_id;type:char(32);not null;uniqueIndex:ux_timesheets_timesheet_id" json:"timesheet_id"`
	OwnerUserID     string         `gorm:"column:owner_user_id;type:char(32);not null;uniqueIndex:ux_timesheets_owner_week,priority:1" json:"owner_user_id"`
	WeekStart       time.Time      `gorm:"column:week_start;type:date;not null;uniqueIndex:ux_timesheets_owner_week,priority:2" json:"week_start"`
	Status          Status         `gorm:"column:status;type:varchar(16);not null;default:'draft';index" json:"status"`
	Cycle           int            `gorm:"column:cycle;not null;default:0" json:"cycle"`
	SubmittedAt     *time.Time     `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	ReviewedAt      *time.Time     `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	ReviewedBy      *string        `gorm:"column:reviewed_by;type:char(32)" json:"reviewed_by,omitempty"`
	RejectionReason *string        `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`
	Entries         []TimeEntry    `gorm:"foreignKey:SheetID;references:ID" json:"entries"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
	DeletedBy       *string        `gorm:"column:deleted_by;type:char(32)" json:"-"`
	// 0 while live, the row id once deleted. Part of the owner/week unique
	// index, since NULL deleted_at values never collide in MySQL.
	DeleteToken     uint64         `gorm:"column:delete_token;not null;default:0;uniqueIndex:ux_timesheets_owner_week,priority:3" json:"-"`
}

func (Timesheet) TableName() string { return "timesheets" }

// Table: time_entries. Position keeps the owner's ordering.
type TimeEntry struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	SheetID     uint64    `gorm:"column:sheet_id;not null;index" json:"-"`
	Position    int       `gorm:"column:position;not null" json:"-"`
	ProjectID   string    `gorm:"column:project_id;type:char(32);not null" json:"project_id"`
	TaskID      string    `gorm:"column:task_id;type:char(32)" json:"task_id"`
	Date        time.Time `gorm:"column:date;type:date;not null" json:"date"`
	Hours       float64   `gorm:"column:hours;type:decimal(5,2);not null" json:"hours"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	IsBillable  bool      `gorm:"column:is_billable;not null;default:false" json:"is_billable"`
}

func (TimeEntry) TableName() string { return "time_entries" }

// Filter narrows Fetch. A nil OwnerIDs means every owner; an empty non-nil
// slice matches nothing.
type Filter struct {
	OwnerIDs  []string
	Status    Status
	WeekStart *time.Time
	Limit     int
}
