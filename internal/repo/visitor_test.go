package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gopinathan2007/office-visitor-flow/internal/domain"
	"github.com/gopinathan2007/office-visitor-flow/internal/repo"
	"github.com/gopinathan2007/office-visitor-flow/testutil"
)

// newTestTx opens a transaction against the test database and empties both
// tables inside it. The transaction is rolled back when the test finishes,
// giving free per-test isolation.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	for _, table := range []string{"visitor_logs", "visitors"} {
		_, err = tx.Exec(context.Background(), "DELETE FROM "+table)
		require.NoError(t, err, "empty %s", table)
	}
	return tx
}

// visitorFixture returns valid check-in data. Callers override fields as needed.
func visitorFixture() domain.VisitorData {
	return domain.VisitorData{
		Name:       "Ann Lee",
		Email:      "ann@example.com",
		Phone:      "555-0100",
		Company:    "Acme",
		HostName:   "Bob Smith",
		Purpose:    "Interview",
		Department: "Engineering",
	}
}

// seedVisit inserts a visit with an explicit check-in time. A non-nil
// duration makes the row checked_out at checkIn+duration minutes.
func seedVisit(t *testing.T, tx pgx.Tx, data domain.VisitorData, checkIn time.Time, duration *int) uuid.UUID {
	t.Helper()

	args := pgx.NamedArgs{
		"name": data.Name, "email": data.Email, "phone": data.Phone, "company": data.Company,
		"host_name": data.HostName, "purpose": data.Purpose, "department": data.Department,
		"check_in": checkIn, "status": string(domain.StatusActive),
	}
	if duration != nil {
		args["status"] = string(domain.StatusCheckedOut)
		args["check_out"] = checkIn.Add(time.Duration(*duration) * time.Minute)
		args["duration"] = *duration
	} else {
		args["check_out"] = nil
		args["duration"] = nil
	}

	const q = `
		INSERT INTO visitors (name, email, phone, company, host_name, purpose, department,
		                      check_in_time, check_out_time, status, duration)
		VALUES (@name, @email, @phone, @company, @host_name, @purpose, @department,
		        @check_in, @check_out, @status, @duration)
		RETURNING id`

	var id uuid.UUID
	require.NoError(t, tx.QueryRow(context.Background(), q, args).Scan(&id), "seed visit")
	return id
}

func minutes(n int) *int { return &n }

func TestVisitorRepo_Create(t *testing.T) {
	r := repo.NewVisitorRepo(newTestTx(t))
	ctx := context.Background()

	input := visitorFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, input, got.VisitorData)
	assert.Equal(t, domain.StatusActive, got.Status)
	assert.False(t, got.CheckInTime.IsZero(), "CheckInTime should be set by DB")
	assert.Nil(t, got.CheckOutTime)
	assert.Nil(t, got.Duration)
}

func TestVisitorRepo_GetByID(t *testing.T) {
	r := repo.NewVisitorRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, visitorFixture())
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Name, got.Name)
	assert.True(t, created.CheckInTime.Equal(got.CheckInTime))
}

func TestVisitorRepo_GetByID_NotFound(t *testing.T) {
	r := repo.NewVisitorRepo(newTestTx(t))

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVisitorRepo_ListActive(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewVisitorRepo(tx)
	ctx := context.Background()

	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	older := seedVisit(t, tx, visitorFixture(), base, nil)
	newer := seedVisit(t, tx, visitorFixture(), base.Add(time.Hour), nil)
	seedVisit(t, tx, visitorFixture(), base.Add(2*time.Hour), minutes(15))

	got, err := r.ListActive(ctx)

	require.NoError(t, err)
	require.Len(t, got, 2, "checked-out visits are excluded")
	assert.Equal(t, newer, got[0].ID, "most recent check-in first")
	assert.Equal(t, older, got[1].ID)
}

func TestVisitorRepo_ListActive_Empty(t *testing.T) {
	r := repo.NewVisitorRepo(newTestTx(t))

	got, err := r.ListActive(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestVisitorRepo_ListRecent(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewVisitorRepo(tx)

	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		ids = append(ids, seedVisit(t, tx, visitorFixture(), base.Add(time.Duration(i)*time.Hour), nil))
	}

	got, err := r.ListRecent(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, ids[2], got[0].ID)
	assert.Equal(t, ids[1], got[1].ID)
}

func TestVisitorRepo_CheckOut(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewVisitorRepo(tx)
	ctx := context.Background()

	checkIn := time.Now().Add(-90 * time.Minute)
	id := seedVisit(t, tx, visitorFixture(), checkIn, nil)

	got, err := r.CheckOut(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCheckedOut, got.Status)
	require.NotNil(t, got.CheckOutTime)
	assert.False(t, got.CheckOutTime.Before(got.CheckInTime))
	require.NotNil(t, got.Duration)
	assert.InDelta(t, 90, *got.Duration, 1)
}

func TestVisitorRepo_CheckOut_Twice(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewVisitorRepo(tx)
	ctx := context.Background()

	created, err := r.Create(ctx, visitorFixture())
	require.NoError(t, err)

	first, err := r.CheckOut(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, first.Duration)
	assert.Equal(t, 0, *first.Duration, "immediate checkout rounds to zero minutes")

	_, err = r.CheckOut(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "second checkout must not match")

	again, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, first.CheckOutTime.Equal(*again.CheckOutTime), "checkout time is never overwritten")
}

func TestVisitorRepo_CheckOut_NotFound(t *testing.T) {
	r := repo.NewVisitorRepo(newTestTx(t))

	_, err := r.CheckOut(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestVisitorRepo_CheckOut_Concurrent runs outside a transaction so the two
// updates race on real row locks.
func TestVisitorRepo_CheckOut_Concurrent(t *testing.T) {
	pool := testutil.NewPool(t)
	r := repo.NewVisitorRepo(pool)
	ctx := context.Background()

	created, err := r.Create(ctx, visitorFixture())
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM visitors WHERE id = $1`, created.ID)
	})

	const callers = 8
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		go func() {
			_, err := r.CheckOut(ctx, created.ID)
			errs <- err
		}()
	}

	var ok, notFound int
	for i := 0; i < callers; i++ {
		err := <-errs
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrNotFound):
			notFound++
		}
	}
	assert.Equal(t, 1, ok, "exactly one checkout wins")
	assert.Equal(t, callers-1, notFound)
}

func TestVisitorRepo_History(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewVisitorRepo(tx)
	ctx := context.Background()

	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	acme := visitorFixture()
	globex := visitorFixture()
	globex.Name = "Carl Diaz"
	globex.Company = "Globex"
	globex.HostName = "Dana"
	pct := visitorFixture()
	pct.Name = "Eve"
	pct.Company = "100% Foods"
	pct.HostName = "Dana"

	a := seedVisit(t, tx, acme, base, minutes(30))
	g := seedVisit(t, tx, globex, base.Add(time.Hour), nil)
	p := seedVisit(t, tx, pct, base.Add(2*time.Hour), nil)

	since := base.Add(30 * time.Minute)

	tests := []struct {
		name    string
		filter  domain.HistoryFilter
		wantIDs []uuid.UUID
		total   int64
	}{
		{"all newest first", domain.HistoryFilter{Limit: 50}, []uuid.UUID{p, g, a}, 3},
		{"status", domain.HistoryFilter{Status: domain.StatusCheckedOut, Limit: 50}, []uuid.UUID{a}, 1},
		{"search is case-insensitive on company", domain.HistoryFilter{Search: "GLOB", Limit: 50}, []uuid.UUID{g}, 1},
		{"search matches host", domain.HistoryFilter{Search: "dana", Limit: 50}, []uuid.UUID{p, g}, 2},
		{"percent is literal", domain.HistoryFilter{Search: "100%", Limit: 50}, []uuid.UUID{p}, 1},
		{"underscore is literal", domain.HistoryFilter{Search: "_", Limit: 50}, nil, 0},
		{"since", domain.HistoryFilter{Since: &since, Limit: 50}, []uuid.UUID{p, g}, 2},
		{"combined", domain.HistoryFilter{Status: domain.StatusActive, Search: "dana", Since: &since, Limit: 50}, []uuid.UUID{p, g}, 2},
		{"limit", domain.HistoryFilter{Limit: 1}, []uuid.UUID{p}, 3},
		{"offset", domain.HistoryFilter{Limit: 2, Offset: 2}, []uuid.UUID{a}, 3},
		{"offset past end", domain.HistoryFilter{Limit: 2, Offset: 10}, nil, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, total, err := r.History(ctx, tc.filter)

			require.NoError(t, err)
			assert.Equal(t, tc.total, total)
			var ids []uuid.UUID
			for _, v := range got {
				ids = append(ids, v.ID)
			}
			assert.Equal(t, tc.wantIDs, ids)
		})
	}
}

func TestVisitorRepo_History_Pagination(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewVisitorRepo(tx)

	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		ids = append(ids, seedVisit(t, tx, visitorFixture(), base.Add(time.Duration(i)*time.Minute), nil))
	}

	got, total, err := r.History(context.Background(), domain.HistoryFilter{Limit: 2, Offset: 2})

	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, got, 2)
	assert.Equal(t, ids[2], got[0].ID, "3rd most recent")
	assert.Equal(t, ids[1], got[1].ID, "4th most recent")
}
