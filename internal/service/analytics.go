package service

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/gopinathan2007/office-visitor-flow/internal/domain"
)

// Analytics summarises the trailing window of days ending now.
// days == 0 selects domain.DefaultAnalyticsDays; any value not listed in
// domain.AnalyticsWindows is a domain.ErrValidation.
//
// Ties are broken deterministically: departments by name, peak days by
// ISO weekday order (Monday first).
func (s *VisitorService) Analytics(ctx context.Context, days int) (domain.Analytics, error) {
	if days == 0 {
		days = domain.DefaultAnalyticsDays
	}
	if !slices.Contains(domain.AnalyticsWindows, days) {
		return domain.Analytics{}, fmt.Errorf("service.VisitorService.Analytics: %w: days must be one of 7, 30, 90",
			domain.ErrValidation)
	}

	since := s.now().Add(-time.Duration(days) * 24 * time.Hour)
	agg, err := s.visits.Aggregate(ctx, since, s.loc.String())
	if err != nil {
		return domain.Analytics{}, fmt.Errorf("service.VisitorService.Analytics: %w", err)
	}

	return buildAnalytics(since, days, agg), nil
}

// buildAnalytics orders the raw aggregate series and derives the headline stats.
func buildAnalytics(since time.Time, days int, agg domain.WindowAggregates) domain.Analytics {
	daily := slices.Clone(agg.Daily)
	slices.SortFunc(daily, func(a, b domain.DailyCount) int {
		return cmp.Compare(b.Date, a.Date)
	})

	depts := slices.Clone(agg.Departments)
	slices.SortFunc(depts, func(a, b domain.DepartmentCount) int {
		if c := cmp.Compare(b.Visits, a.Visits); c != 0 {
			return c
		}
		return cmp.Compare(a.Department, b.Department)
	})

	weekly := slices.Clone(agg.Weekly)
	slices.SortFunc(weekly, func(a, b domain.WeeklyTrend) int {
		return cmp.Compare(a.WeekStart, b.WeekStart)
	})

	stats := domain.MonthlyStats{
		TotalVisitors: agg.Total,
		PeakDay:       peakDay(agg.Weekdays),
		TopDepartment: domain.NotAvailable,
	}
	if len(depts) > 0 {
		stats.TopDepartment = depts[0].Department
	}
	if agg.AvgDuration != nil {
		stats.AvgDuration = int(math.Round(*agg.AvgDuration))
	}

	return domain.Analytics{
		Since:            since,
		Days:             days,
		DailyVisits:      nonNil(daily),
		DepartmentVisits: nonNil(depts),
		WeeklyTrends:     nonNil(weekly),
		MonthlyStats:     stats,
	}
}

// peakDay returns the English name of the busiest ISO weekday, preferring
// the earlier weekday on a tie, or domain.NotAvailable when counts is empty.
func peakDay(counts []domain.WeekdayCount) string {
	best := -1
	for i, c := range counts {
		if c.Visits <= 0 {
			continue
		}
		if best < 0 || c.Visits > counts[best].Visits ||
			(c.Visits == counts[best].Visits && c.ISODay < counts[best].ISODay) {
			best = i
		}
	}
	if best < 0 {
		return domain.NotAvailable
	}
	// ISO 7 (Sunday) maps to time.Sunday (0).
	return time.Weekday(counts[best].ISODay % 7).String()
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
