package mysql

import (
	"context"
	"errors"
	"time"

	tsDomain "worktrack-backend/internal/domain/timesheet"

	"gorm.io/gorm"
)

type TimesheetRepository struct{ db *gorm.DB }

func NewTimesheetRepository(db *gorm.DB) *TimesheetRepository { return &TimesheetRepository{db: db} }

var _ tsDomain.Repository = (*TimesheetRepository)(nil)

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tsDomain.ErrNotFound
	}
	return err
}

func orderedEntries(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }

func (r *TimesheetRepository) Create(ctx context.Context, t *tsDomain.Timesheet) error {
	for i := range t.Entries {
		t.Entries[i].Position = i
	}
	err := r.db.WithContext(ctx).Create(t).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return tsDomain.DuplicateWeek(t.WeekStart)
	}
	return err
}

func (r *TimesheetRepository) GetByTimesheetID(ctx context.Context, timesheetID string) (*tsDomain.Timesheet, error) {
	var out tsDomain.Timesheet
	err := r.db.WithContext(ctx).
		Preload("Entries", orderedEntries).
		Where("timesheet_id = ?", timesheetID).
		First(&out).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &out, nil
}

func (r *TimesheetRepository) Fetch(ctx context.Context, f tsDomain.Filter) ([]tsDomain.Timesheet, error) {
	out := []tsDomain.Timesheet{}
	if f.OwnerIDs != nil && len(f.OwnerIDs) == 0 {
		return out, nil
	}
	q := r.db.WithContext(ctx).Preload("Entries", orderedEntries)
	if f.OwnerIDs != nil {
		q = q.Where("owner_user_id IN ?", f.OwnerIDs)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.WeekStart != nil {
		q = q.Where("week_start = ?", tsDomain.DateOnly(*f.WeekStart))
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	err := q.Order("week_start DESC, id DESC").Find(&out).Error
	return out, err
}

// ReplaceEntries rewrites the entry list while the timesheet is a draft.
func (r *TimesheetRepository) ReplaceEntries(ctx context.Context, timesheetID string, entries []tsDomain.TimeEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sheet tsDomain.Timesheet
		err := tx.Where("timesheet_id = ? AND status = ?", timesheetID, tsDomain.StatusDraft).First(&sheet).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return (&TimesheetRepository{db: tx}).missOrStale(ctx, timesheetID, "edit entries")
		}
		if err != nil {
			return err
		}
		if err := tx.Where("sheet_id = ?", sheet.ID).Delete(&tsDomain.TimeEntry{}).Error; err != nil {
			return err
		}
		if len(entries) > 0 {
			rows := make([]tsDomain.TimeEntry, len(entries))
			for i, e := range entries {
				e.ID = 0
				e.SheetID = sheet.ID
				e.Position = i
				rows[i] = e
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return tx.Model(&sheet).Update("updated_at", time.Now().UTC()).Error
	})
}

func (r *TimesheetRepository) Submit(ctx context.Context, timesheetID string, at time.Time) error {
	return r.transition(ctx, timesheetID, tsDomain.ActionSubmit, map[string]any{
		"submitted_at":     at.UTC(),
		"reviewed_at":      nil,
		"reviewed_by":      nil,
		"rejection_reason": nil,
		"cycle":            gorm.Expr("cycle + 1"),
	})
}

func (r *TimesheetRepository) Approve(ctx context.Context, timesheetID, reviewerID string, at time.Time) error {
	return r.transition(ctx, timesheetID, tsDomain.ActionApprove, map[string]any{
		"reviewed_at": at.UTC(),
		"reviewed_by": reviewerID,
	})
}

func (r *TimesheetRepository) Reject(ctx context.Context, timesheetID, reviewerID, reason string, at time.Time) error {
	return r.transition(ctx, timesheetID, tsDomain.ActionReject, map[string]any{
		"reviewed_at":      at.UTC(),
		"reviewed_by":      reviewerID,
		"rejection_reason": reason,
	})
}

func (r *TimesheetRepository) Reopen(ctx context.Context, timesheetID string) error {
	return r.transition(ctx, timesheetID, tsDomain.ActionReopen, map[string]any{})
}

// Delete soft-deletes and frees the owner's week for a new timesheet.
func (r *TimesheetRepository) Delete(ctx context.Context, timesheetID, deletedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&tsDomain.Timesheet{}).
			Where("timesheet_id = ?", timesheetID).
			Updates(map[string]any{"deleted_by": deletedBy, "delete_token": gorm.Expr("id")})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return tsDomain.ErrNotFound
		}
		return tx.Where("timesheet_id = ?", timesheetID).Delete(&tsDomain.Timesheet{}).Error
	})
}

// transition moves the row from a's source status to its target. The status
// predicate makes a repeated or racing call a no-op that reports
// ErrInvalidTransition instead of applying twice.
func (r *TimesheetRepository) transition(ctx context.Context, timesheetID string, a tsDomain.Action, updates map[string]any) error {
	from, ok := a.Source()
	if !ok {
		return tsDomain.Invalid("unknown action " + string(a))
	}
	to, _ := from.Next(a)
	updates["status"] = to

	res := r.db.WithContext(ctx).
		Model(&tsDomain.Timesheet{}).
		Where("timesheet_id = ? AND status = ?", timesheetID, from).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.missOrStale(ctx, timesheetID, string(a))
	}
	return nil
}

func (r *TimesheetRepository) missOrStale(ctx context.Context, timesheetID, op string) error {
	var cur tsDomain.Timesheet
	err := r.db.WithContext(ctx).Select("status").Where("timesheet_id = ?", timesheetID).First(&cur).Error
	if err != nil {
		return notFound(err)
	}
	return tsDomain.Invalid(op + " from " + string(cur.Status))
}
