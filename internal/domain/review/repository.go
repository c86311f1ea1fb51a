package review

import "context"

type Repository interface {
	Create(ctx context.Context, r *Record) error

	// Oldest first
	ListBySheetID(ctx context.Context, sheetID uint64) ([]Record, error)
}
