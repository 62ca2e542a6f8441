package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gopinathan2007/office-visitor-flow/internal/domain"
	"github.com/gopinathan2007/office-visitor-flow/internal/repo"
)

// mockVisitorRepo is a hand-written test double for repo.VisitorRepo.
// Each method is a function field; set only the ones your test needs.
type mockVisitorRepo struct {
	create     func(ctx context.Context, data domain.VisitorData) (domain.Visit, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Visit, error)
	listActive func(ctx context.Context) ([]domain.Visit, error)
	listRecent func(ctx context.Context, limit int) ([]domain.Visit, error)
	history    func(ctx context.Context, f domain.HistoryFilter) ([]domain.Visit, int64, error)
	checkOut   func(ctx context.Context, id uuid.UUID) (domain.Visit, error)
	aggregate  func(ctx context.Context, since time.Time, tz string) (domain.WindowAggregates, error)
}

func (m *mockVisitorRepo) Create(ctx context.Context, data domain.VisitorData) (domain.Visit, error) {
	return m.create(ctx, data)
}
func (m *mockVisitorRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Visit, error) {
	return m.getByID(ctx, id)
}
func (m *mockVisitorRepo) ListActive(ctx context.Context) ([]domain.Visit, error) {
	return m.listActive(ctx)
}
func (m *mockVisitorRepo) ListRecent(ctx context.Context, limit int) ([]domain.Visit, error) {
	return m.listRecent(ctx, limit)
}
func (m *mockVisitorRepo) History(ctx context.Context, f domain.HistoryFilter) ([]domain.Visit, int64, error) {
	return m.history(ctx, f)
}
func (m *mockVisitorRepo) CheckOut(ctx context.Context, id uuid.UUID) (domain.Visit, error) {
	return m.checkOut(ctx, id)
}
func (m *mockVisitorRepo) Aggregate(ctx context.Context, since time.Time, tz string) (domain.WindowAggregates, error) {
	return m.aggregate(ctx, since, tz)
}

// mockActivityRepo records every Append and fails them all when err is set.
type mockActivityRepo struct {
	err      error
	appended []domain.ActivityType
	list     func(ctx context.Context, id uuid.UUID) ([]domain.ActivityLogEntry, error)
}

func (m *mockActivityRepo) Append(_ context.Context, id uuid.UUID, activity domain.ActivityType) (domain.ActivityLogEntry, error) {
	m.appended = append(m.appended, activity)
	if m.err != nil {
		return domain.ActivityLogEntry{}, m.err
	}
	return domain.ActivityLogEntry{ID: uuid.New(), VisitorID: id, ActivityType: activity}, nil
}
func (m *mockActivityRepo) ListByVisit(ctx context.Context, id uuid.UUID) ([]domain.ActivityLogEntry, error) {
	return m.list(ctx, id)
}

// compile-time checks: the mocks must satisfy the repo interfaces.
var (
	_ repo.VisitorRepo  = (*mockVisitorRepo)(nil)
	_ repo.ActivityRepo = (*mockActivityRepo)(nil)
)
