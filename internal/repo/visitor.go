// Package repo contains all database access logic for the visitor tracker.
// Each table has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/gopinathan2007/office-visitor-flow/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// VisitorRepo defines the persistence operations for visits.
// The service layer depends on this interface, not the Postgres implementation.
type VisitorRepo interface {
	// Create inserts a new active visit and returns the persisted record with
	// the store-assigned id and check-in time.
	Create(ctx context.Context, data domain.VisitorData) (domain.Visit, error)

	// GetByID retrieves a single visit by id.
	// Returns domain.ErrNotFound if no visit with that id exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Visit, error)

	// ListActive returns every active visit, most recent check-in first.
	ListActive(ctx context.Context) ([]domain.Visit, error)

	// ListRecent returns up to limit visits of any status, most recent first.
	ListRecent(ctx context.Context, limit int) ([]domain.Visit, error)

	// History returns one page of visits matching f and the total number of
	// matching visits, ignoring f.Limit and f.Offset.
	History(ctx context.Context, f domain.HistoryFilter) ([]domain.Visit, int64, error)

	// CheckOut moves an active visit to checked_out, stamping the check-out
	// time and duration. The update is conditional on status='active', so of
	// two concurrent calls for one visit exactly one succeeds.
	// Returns domain.ErrNotFound if the visit does not exist or is not active.
	CheckOut(ctx context.Context, id uuid.UUID) (domain.Visit, error)

	// Aggregate computes the grouped analytics rows for visits checked in at
	// or after since. Calendar dates and weekdays are taken in the IANA zone tz.
	Aggregate(ctx context.Context, since time.Time, tz string) (domain.WindowAggregates, error)
}

// pgVisitorRepo is the Postgres implementation of VisitorRepo.
type pgVisitorRepo struct {
	db db
}

// NewVisitorRepo constructs a VisitorRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewVisitorRepo(db db) VisitorRepo {
	return &pgVisitorRepo{db: db}
}

const visitColumns = `id, name, email, phone, company, host_name, purpose, department,
		check_in_time, check_out_time, status, duration`

// Create inserts a visit row. Status and check-in time come from column defaults.
func (r *pgVisitorRepo) Create(ctx context.Context, data domain.VisitorData) (domain.Visit, error) {
	const q = `
		INSERT INTO visitors (name, email, phone, company, host_name, purpose, department)
		VALUES (@name, @email, @phone, @company, @host_name, @purpose, @department)
		RETURNING ` + visitColumns

	args := pgx.NamedArgs{
		"name":       data.Name,
		"email":      data.Email,
		"phone":      data.Phone,
		"company":    data.Company,
		"host_name":  data.HostName,
		"purpose":    data.Purpose,
		"department": data.Department,
	}

	v, err := scanVisit(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Visit{}, fmt.Errorf("repo.VisitorRepo.Create: %w", err)
	}
	return v, nil
}

// GetByID retrieves a visit by primary key.
func (r *pgVisitorRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Visit, error) {
	const q = `SELECT ` + visitColumns + ` FROM visitors WHERE id = @id`

	v, err := scanVisit(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Visit{}, fmt.Errorf("repo.VisitorRepo.GetByID: %w", err)
	}
	return v, nil
}

// ListActive returns active visits ordered by check_in_time descending.
func (r *pgVisitorRepo) ListActive(ctx context.Context) ([]domain.Visit, error) {
	const q = `
		SELECT ` + visitColumns + `
		FROM visitors
		WHERE status = @status
		ORDER BY check_in_time DESC`

	visits, err := r.queryVisits(ctx, q, pgx.NamedArgs{"status": string(domain.StatusActive)})
	if err != nil {
		return nil, fmt.Errorf("repo.VisitorRepo.ListActive: %w", err)
	}
	return visits, nil
}

// ListRecent returns the latest visits regardless of status.
func (r *pgVisitorRepo) ListRecent(ctx context.Context, limit int) ([]domain.Visit, error) {
	const q = `
		SELECT ` + visitColumns + `
		FROM visitors
		ORDER BY check_in_time DESC
		LIMIT @limit`

	visits, err := r.queryVisits(ctx, q, pgx.NamedArgs{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.VisitorRepo.ListRecent: %w", err)
	}
	return visits, nil
}

// History runs the filtered page query and the matching count query.
// Both share the WHERE fragment produced by buildHistoryWhere.
func (r *pgVisitorRepo) History(ctx context.Context, f domain.HistoryFilter) ([]domain.Visit, int64, error) {
	where, args := buildHistoryWhere(f)

	countQ := `SELECT COUNT(*) FROM visitors` + where
	var total int64
	if err := r.db.QueryRow(ctx, countQ, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.VisitorRepo.History: count: %w", err)
	}

	pageArgs := pgx.NamedArgs{"limit": f.Limit, "offset": f.Offset}
	for k, v := range args {
		pageArgs[k] = v
	}
	pageQ := `SELECT ` + visitColumns + ` FROM visitors` + where + `
		ORDER BY check_in_time DESC
		LIMIT @limit OFFSET @offset`

	visits, err := r.queryVisits(ctx, pageQ, pageArgs)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.VisitorRepo.History: %w", err)
	}
	return visits, total, nil
}

// CheckOut is a compare-and-set on status. Duration is the elapsed time in
// whole minutes, rounded to nearest.
func (r *pgVisitorRepo) CheckOut(ctx context.Context, id uuid.UUID) (domain.Visit, error) {
	const q = `
		UPDATE visitors
		SET status         = @checked_out,
		    check_out_time = now_ts,
		    duration       = ROUND(EXTRACT(EPOCH FROM (now_ts - check_in_time)) / 60)::integer
		FROM (SELECT clock_timestamp() AS now_ts) AS clock
		WHERE id = @id
		  AND status = @active
		RETURNING ` + visitColumns

	args := pgx.NamedArgs{
		"id":          id,
		"active":      string(domain.StatusActive),
		"checked_out": string(domain.StatusCheckedOut),
	}

	v, err := scanVisit(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Visit{}, fmt.Errorf("repo.VisitorRepo.CheckOut: %w", err)
	}
	return v, nil
}

// queryVisits runs q and scans every row. The returned slice is never nil.
func (r *pgVisitorRepo) queryVisits(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Visit, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	visits := []domain.Visit{}
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return visits, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanVisit maps one row selected with visitColumns into a domain.Visit.
func scanVisit(s scanner) (domain.Visit, error) {
	var (
		v        domain.Visit
		id       pgtype.UUID
		checkOut pgtype.Timestamptz
		duration pgtype.Int4
		status   string
	)

	err := s.Scan(
		&id, &v.Name, &v.Email, &v.Phone, &v.Company, &v.HostName, &v.Purpose, &v.Department,
		&v.CheckInTime, &checkOut, &status, &duration,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Visit{}, domain.ErrNotFound
		}
		return domain.Visit{}, err
	}

	v.ID = uuid.UUID(id.Bytes)
	v.Status = domain.Status(status)
	if checkOut.Valid {
		t := checkOut.Time
		v.CheckOutTime = &t
	}
	if duration.Valid {
		d := int(duration.Int32)
		v.Duration = &d
	}
	return v, nil
}
