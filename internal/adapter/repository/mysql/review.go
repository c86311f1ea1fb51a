package mysql

import (
	"context"

	reviewDomain "worktrack-backend/internal/domain/review"

	"gorm.io/gorm"
)

type ReviewRepository struct{ db *gorm.DB }

func NewReviewRepository(db *gorm.DB) *ReviewRepository { return &ReviewRepository{db: db} }

func (r *ReviewRepository) Create(ctx context.Context, rec *reviewDomain.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *ReviewRepository) ListBySheetID(ctx context.Context, sheetID uint64) ([]reviewDomain.Record, error) {
	out := []reviewDomain.Record{}
	res := r.db.WithContext(ctx).
		Where("sheet_id = ?", sheetID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
