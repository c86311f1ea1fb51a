package reviewmock

import (
	"context"
	"sync"

	domain "worktrack-backend/internal/domain/review"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// With no functions set it records every created row in Created.
type Repo struct {
	CreateFn        func(ctx context.Context, r *domain.Record) error
	ListBySheetIDFn func(ctx context.Context, sheetID uint64) ([]domain.Record, error)

	mu      sync.Mutex
	Created []domain.Record
}

func (m *Repo) Create(ctx context.Context, r *domain.Record) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Created = append(m.Created, *r)
	return nil
}

func (m *Repo) ListBySheetID(ctx context.Context, sheetID uint64) ([]domain.Record, error) {
	if m.ListBySheetIDFn != nil {
		return m.ListBySheetIDFn(ctx, sheetID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Record{}
	for _, r := range m.Created {
		if r.SheetID == sheetID {
			out = append(out, r)
		}
	}
	return out, nil
}

// Records returns a copy of what Create stored.
func (m *Repo) Records() []domain.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Record(nil), m.Created...)
}
