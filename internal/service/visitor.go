// Package service contains the business logic for the visitor tracker.
// Services validate inputs, enforce the visit lifecycle, and orchestrate repo
// calls. No SQL lives here; services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gopinathan2007/office-visitor-flow/internal/domain"
	"github.com/gopinathan2007/office-visitor-flow/internal/repo"
)

// RecentLimit is the number of visits returned by ListRecent.
const RecentLimit = 100

// VisitorService implements the visit lifecycle and the read models built
// on top of it (active list, history, analytics).
type VisitorService struct {
	visits   repo.VisitorRepo
	activity repo.ActivityRepo
	log      *slog.Logger
	now      func() time.Time
	loc      *time.Location
}

// Option configures a VisitorService.
type Option func(*VisitorService)

// WithLogger sets the logger used for activity-log failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *VisitorService) { s.log = l }
}

// WithClock replaces time.Now as the anchor for analytics windows and the
// "today" history filter.
func WithClock(now func() time.Time) Option {
	return func(s *VisitorService) { s.now = now }
}

// WithLocation sets the zone used for calendar dates and weekdays.
func WithLocation(loc *time.Location) Option {
	return func(s *VisitorService) { s.loc = loc }
}

// NewVisitorService constructs a VisitorService backed by the provided repos.
func NewVisitorService(visits repo.VisitorRepo, activity repo.ActivityRepo, opts ...Option) *VisitorService {
	s := &VisitorService{
		visits:   visits,
		activity: activity,
		log:      slog.Default(),
		now:      time.Now,
		loc:      time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckIn validates data and records a new active visit.
// Returns domain.ErrValidation if any field is missing or the email is malformed;
// nothing is written in that case. The check_in activity is logged best-effort:
// a failure is reported in Receipt.AuditErr and never fails the check-in.
func (s *VisitorService) CheckIn(ctx context.Context, data domain.VisitorData) (domain.Receipt, error) {
	data, err := normalizeVisitorData(data)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("service.VisitorService.CheckIn: %w", err)
	}

	v, err := s.visits.Create(ctx, data)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("service.VisitorService.CheckIn: %w", err)
	}

	return domain.Receipt{
		VisitID:  v.ID,
		AuditErr: s.recordActivity(ctx, v.ID, domain.ActivityCheckIn),
	}, nil
}

// CheckOut ends an active visit.
// Returns domain.ErrNotFound if the visit does not exist or was already
// checked out; repeating a successful checkout is therefore harmless.
func (s *VisitorService) CheckOut(ctx context.Context, id uuid.UUID) (domain.Receipt, error) {
	v, err := s.visits.CheckOut(ctx, id)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("service.VisitorService.CheckOut: %w", err)
	}

	return domain.Receipt{
		VisitID:  v.ID,
		AuditErr: s.recordActivity(ctx, v.ID, domain.ActivityCheckOut),
	}, nil
}

// GetByID returns a single visit.
// Returns domain.ErrNotFound if it does not exist.
func (s *VisitorService) GetByID(ctx context.Context, id uuid.UUID) (domain.Visit, error) {
	v, err := s.visits.GetByID(ctx, id)
	if err != nil {
		return domain.Visit{}, fmt.Errorf("service.VisitorService.GetByID: %w", err)
	}
	return v, nil
}

// ListActive returns every active visit, most recent check-in first.
// Always returns a non-nil slice.
func (s *VisitorService) ListActive(ctx context.Context) ([]domain.Visit, error) {
	visits, err := s.visits.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.VisitorService.ListActive: %w", err)
	}
	if visits == nil {
		return []domain.Visit{}, nil
	}
	return visits, nil
}

// ListRecent returns the latest RecentLimit visits of any status.
func (s *VisitorService) ListRecent(ctx context.Context) ([]domain.Visit, error) {
	visits, err := s.visits.ListRecent(ctx, RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("service.VisitorService.ListRecent: %w", err)
	}
	if visits == nil {
		return []domain.Visit{}, nil
	}
	return visits, nil
}

// History returns one page of visits matching f.
// Returns domain.ErrValidation for an unknown status.
func (s *VisitorService) History(ctx context.Context, f domain.HistoryFilter) (domain.HistoryPage, error) {
	if f.Status != "" && !f.Status.IsValid() {
		return domain.HistoryPage{}, fmt.Errorf("service.VisitorService.History: %w: status must be one of all, active, checked_out, no_show",
			domain.ErrValidation)
	}
	f.Search = strings.TrimSpace(f.Search)
	if f.Limit < 1 {
		f.Limit = domain.DefaultHistoryLimit
	}
	f.Limit = min(f.Limit, domain.MaxHistoryLimit)
	f.Offset = max(f.Offset, 0)
	if f.Today {
		start := startOfDay(s.now(), s.loc)
		f.Since = &start
	}

	records, total, err := s.visits.History(ctx, f)
	if err != nil {
		return domain.HistoryPage{}, fmt.Errorf("service.VisitorService.History: %w", err)
	}
	if records == nil {
		records = []domain.Visit{}
	}

	return domain.HistoryPage{
		Records: records,
		Total:   total,
		Limit:   f.Limit,
		Offset:  f.Offset,
	}, nil
}

// Activity returns the audit trail of one visit, oldest first.
// Returns domain.ErrNotFound if the visit does not exist.
func (s *VisitorService) Activity(ctx context.Context, id uuid.UUID) ([]domain.ActivityLogEntry, error) {
	if _, err := s.visits.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("service.VisitorService.Activity: %w", err)
	}
	entries, err := s.activity.ListByVisit(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.VisitorService.Activity: %w", err)
	}
	if entries == nil {
		return []domain.ActivityLogEntry{}, nil
	}
	return entries, nil
}

// recordActivity appends to the activity log on a context that survives
// cancellation of the request. The error is logged and handed back for
// diagnostics only.
func (s *VisitorService) recordActivity(ctx context.Context, id uuid.UUID, activity domain.ActivityType) error {
	if _, err := s.activity.Append(context.WithoutCancel(ctx), id, activity); err != nil {
		s.log.WarnContext(ctx, "activity log write failed",
			"visitor_id", id,
			"activity", activity,
			"error", err,
		)
		return err
	}
	return nil
}

// normalizeVisitorData trims every field and enforces the check-in rules:
//   - every field is required (whitespace-only counts as empty).
//   - email must be a bare address such as "name@example.com".
func normalizeVisitorData(d domain.VisitorData) (domain.VisitorData, error) {
	fields := []struct {
		name  string
		value *string
	}{
		{"name", &d.Name},
		{"email", &d.Email},
		{"phone", &d.Phone},
		{"company", &d.Company},
		{"hostName", &d.HostName},
		{"purpose", &d.Purpose},
		{"department", &d.Department},
	}
	for _, f := range fields {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			return domain.VisitorData{}, fmt.Errorf("%w: %s is required", domain.ErrValidation, f.name)
		}
	}
	if !validEmail(d.Email) {
		return domain.VisitorData{}, fmt.Errorf("%w: email is not a valid address", domain.ErrValidation)
	}
	return d, nil
}

// validEmail accepts a bare RFC 5322 addr-spec whose domain has at least
// one dot. Display names ("Ann <ann@example.com>") are rejected.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	host := s[at+1:]
	return strings.Contains(host, ".") &&
		!strings.HasPrefix(host, ".") &&
		!strings.HasSuffix(host, ".")
}

// startOfDay returns local midnight of t in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
