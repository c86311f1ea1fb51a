package mysql

import (
	"context"
	"testing"
	"time"

	reviewDomain "worktrack-backend/internal/domain/review"
	teamDomain "worktrack-backend/internal/domain/team"
	tsDomain "worktrack-backend/internal/domain/timesheet"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// 2026-10-12 is a Monday.
var monday = time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)

// openTestDB creates an in-memory sqlite DB with every table migrated.
// One connection only: each sqlite :memory: connection is its own database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&tsDomain.Timesheet{}, &tsDomain.TimeEntry{}, &reviewDomain.Record{}, &teamDomain.ProjectMember{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeTimesheet(id, owner string, hours ...float64) *tsDomain.Timesheet {
	entries := make([]tsDomain.TimeEntry, 0, len(hours))
	for i, h := range hours {
		entries = append(entries, tsDomain.TimeEntry{
			ProjectID: "proj-1",
			TaskID:    "task-1",
			Date:      monday.AddDate(0, 0, i),
			Hours:     h,
		})
	}
	return &tsDomain.Timesheet{
		TimesheetID: id,
		OwnerUserID: owner,
		WeekStart:   monday,
		Status:      tsDomain.StatusDraft,
		Entries:     entries,
	}
}

func seed(t *testing.T, repo *TimesheetRepository, ts *tsDomain.Timesheet) *tsDomain.Timesheet {
	t.Helper()
	if err := repo.Create(context.Background(), ts); err != nil {
		t.Fatalf("seed timesheet %s: %v", ts.TimesheetID, err)
	}
	return ts
}
