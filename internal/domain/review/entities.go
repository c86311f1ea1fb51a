package review

import (
	"time"

	"worktrack-backend/internal/domain/timesheet"
)

// Table: timesheet_reviews. One row per lifecycle transition.
type Record struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	ReviewID string `gorm:"column:review_id;type:char(32);not null;uniqueIndex:ux_timesheet_reviews_review_id" json:"review_id"`
	// FK to timesheets.id (numeric)
	SheetID   uint64           `gorm:"column:sheet_id;not null;index" json:"-"`
	Action    timesheet.Action `gorm:"column:action;type:varchar(16);not null" json:"action"`
	ActorID   string           `gorm:"column:actor_id;type:char(32);not null" json:"actor_id"`
	Cycle     int              `gorm:"column:cycle;not null" json:"cycle"`
	Reason    *string          `gorm:"column:reason;type:text" json:"reason,omitempty"`
	CreatedAt time.Time        `gorm:"column:created_at;not null" json:"created_at"`
}

func (Record) TableName() string { return "timesheet_reviews" }
