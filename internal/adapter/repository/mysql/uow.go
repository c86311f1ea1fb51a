package mysql

import (
	"context"

	tsDomain "worktrack-backend/internal/domain/timesheet"
	"worktrack-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

var _ uow.UnitOfWork = (*GormUoW)(nil)

func bind(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Timesheets: &TimesheetRepository{db: tx},
		Reviews:    &ReviewRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(bind(tx))
	})
}

func (u *GormUoW) WithinTimesheetTx(ctx context.Context, timesheetID string, fn func(r uow.Repos, t *tsDomain.Timesheet) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := bind(tx)
		t, err := r.Timesheets.GetByTimesheetID(ctx, timesheetID)
		if err != nil {
			return err
		}
		return fn(r, t)
	})
}
