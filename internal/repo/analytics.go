package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gopinathan2007/office-visitor-flow/internal/domain"
)

// Aggregate runs one grouped query per analytics series over the window
// starting at since. Ordering and peak selection are left to the service.
func (r *pgVisitorRepo) Aggregate(ctx context.Context, since time.Time, tz string) (domain.WindowAggregates, error) {
	args := pgx.NamedArgs{"since": since, "tz": tz}
	var out domain.WindowAggregates

	const totalsQ = `
		SELECT COUNT(*), AVG(duration)::float8
		FROM visitors
		WHERE check_in_time >= @since`
	if err := r.db.QueryRow(ctx, totalsQ, args).Scan(&out.Total, &out.AvgDuration); err != nil {
		return domain.WindowAggregates{}, fmt.Errorf("repo.VisitorRepo.Aggregate: totals: %w", err)
	}

	const dailyQ = `
		SELECT to_char((check_in_time AT TIME ZONE @tz)::date, 'YYYY-MM-DD') AS day, COUNT(*)
		FROM visitors
		WHERE check_in_time >= @since
		GROUP BY day
		ORDER BY day DESC`
	daily, err := collect(ctx, r.db, dailyQ, args, func(row pgx.CollectableRow) (domain.DailyCount, error) {
		var d domain.DailyCount
		err := row.Scan(&d.Date, &d.Visits)
		return d, err
	})
	if err != nil {
		return domain.WindowAggregates{}, fmt.Errorf("repo.VisitorRepo.Aggregate: daily: %w", err)
	}
	out.Daily = daily

	const deptQ = `
		SELECT department, COUNT(*) AS visits
		FROM visitors
		WHERE check_in_time >= @since
		GROUP BY department
		ORDER BY visits DESC, department`
	depts, err := collect(ctx, r.db, deptQ, args, func(row pgx.CollectableRow) (domain.DepartmentCount, error) {
		var d domain.DepartmentCount
		err := row.Scan(&d.Department, &d.Visits)
		return d, err
	})
	if err != nil {
		return domain.WindowAggregates{}, fmt.Errorf("repo.VisitorRepo.Aggregate: departments: %w", err)
	}
	out.Departments = depts

	const weekdayQ = `
		SELECT EXTRACT(ISODOW FROM check_in_time AT TIME ZONE @tz)::integer AS isodow, COUNT(*)
		FROM visitors
		WHERE check_in_time >= @since
		GROUP BY isodow
		ORDER BY isodow`
	weekdays, err := collect(ctx, r.db, weekdayQ, args, func(row pgx.CollectableRow) (domain.WeekdayCount, error) {
		var w domain.WeekdayCount
		err := row.Scan(&w.ISODay, &w.Visits)
		return w, err
	})
	if err != nil {
		return domain.WindowAggregates{}, fmt.Errorf("repo.VisitorRepo.Aggregate: weekdays: %w", err)
	}
	out.Weekdays = weekdays

	const weeklyQ = `
		SELECT to_char(date_trunc('week', check_in_time AT TIME ZONE @tz), 'YYYY-MM-DD') AS week,
		       COUNT(*),
		       COALESCE(ROUND(AVG(duration)), 0)::integer
		FROM visitors
		WHERE check_in_time >= @since
		GROUP BY week
		ORDER BY week`
	weekly, err := collect(ctx, r.db, weeklyQ, args, func(row pgx.CollectableRow) (domain.WeeklyTrend, error) {
		var w domain.WeeklyTrend
		err := row.Scan(&w.WeekStart, &w.Visits, &w.AvgDuration)
		return w, err
	})
	if err != nil {
		return domain.WindowAggregates{}, fmt.Errorf("repo.VisitorRepo.Aggregate: weekly: %w", err)
	}
	out.Weekly = weekly

	return out, nil
}

// collect runs q and maps every row with fn. The returned slice is never nil.
func collect[T any](ctx context.Context, db db, q string, args pgx.NamedArgs, fn func(pgx.CollectableRow) (T, error)) ([]T, error) {
	rows, err := db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	items, err := pgx.CollectRows(rows, fn)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
