package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/gopinathan2007/office-visitor-flow/internal/domain"
)

// ActivityRepo defines the persistence operations for the append-only
// visitor_logs table. Entries are never updated or deleted.
type ActivityRepo interface {
	// Append records one activity for visitorID and returns the stored entry.
	Append(ctx context.Context, visitorID uuid.UUID, activity domain.ActivityType) (domain.ActivityLogEntry, error)

	// ListByVisit returns the entries for one visit, oldest first.
	ListByVisit(ctx context.Context, visitorID uuid.UUID) ([]domain.ActivityLogEntry, error)
}

// pgActivityRepo is the Postgres implementation of ActivityRepo.
type pgActivityRepo struct {
	db db
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db connection.
func NewActivityRepo(db db) ActivityRepo {
	return &pgActivityRepo{db: db}
}

func (r *pgActivityRepo) Append(ctx context.Context, visitorID uuid.UUID, activity domain.ActivityType) (domain.ActivityLogEntry, error) {
	const q = `
		INSERT INTO visitor_logs (visitor_id, activity_type)
		VALUES (@visitor_id, @activity_type)
		RETURNING id, visitor_id, activity_type, timestamp`

	args := pgx.NamedArgs{"visitor_id": visitorID, "activity_type": string(activity)}
	e, err := scanActivity(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.ActivityLogEntry{}, fmt.Errorf("repo.ActivityRepo.Append: %w", err)
	}
	return e, nil
}

func (r *pgActivityRepo) ListByVisit(ctx context.Context, visitorID uuid.UUID) ([]domain.ActivityLogEntry, error) {
	const q = `
		SELECT id, visitor_id, activity_type, timestamp
		FROM visitor_logs
		WHERE visitor_id = @visitor_id
		ORDER BY timestamp`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"visitor_id": visitorID})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByVisit: %w", err)
	}
	defer rows.Close()

	entries := []domain.ActivityLogEntry{}
	for rows.Next() {
		e, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ActivityRepo.ListByVisit: scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByVisit: rows: %w", err)
	}
	return entries, nil
}

func scanActivity(s scanner) (domain.ActivityLogEntry, error) {
	var (
		e         domain.ActivityLogEntry
		id        pgtype.UUID
		visitorID pgtype.UUID
		activity  string
	)
	if err := s.Scan(&id, &visitorID, &activity, &e.Timestamp); err != nil {
		return domain.ActivityLogEntry{}, err
	}
	e.ID = uuid.UUID(id.Bytes)
	e.VisitorID = uuid.UUID(visitorID.Bytes)
	e.ActivityType = domain.ActivityType(activity)
	return e, nil
}
