package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/gopinathan2007/office-visitor-flow/internal/domain"
	"github.com/gopinathan2007/office-visitor-flow/internal/handler"
)

// mockVisitorServicer is a test double for handler.VisitorServicer.
// Set only the method fields your test needs.
type mockVisitorServicer struct {
	checkIn    func(ctx context.Context, data domain.VisitorData) (domain.Receipt, error)
	checkOut   func(ctx context.Context, id uuid.UUID) (domain.Receipt, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Visit, error)
	listActive func(ctx context.Context) ([]domain.Visit, error)
	listRecent func(ctx context.Context) ([]domain.Visit, error)
	history    func(ctx context.Context, f domain.HistoryFilter) (domain.HistoryPage, error)
	analytics  func(ctx context.Context, days int) (domain.Analytics, error)
	activity   func(ctx context.Context, id uuid.UUID) ([]domain.ActivityLogEntry, error)
}

func (m *mockVisitorServicer) CheckIn(ctx context.Context, d domain.VisitorData) (domain.Receipt, error) {
	return m.checkIn(ctx, d)
}
func (m *mockVisitorServicer) CheckOut(ctx context.Context, id uuid.UUID) (domain.Receipt, error) {
	return m.checkOut(ctx, id)
}
func (m *mockVisitorServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Visit, error) {
	return m.getByID(ctx, id)
}
func (m *mockVisitorServicer) ListActive(ctx context.Context) ([]domain.Visit, error) {
	return m.listActive(ctx)
}
func (m *mockVisitorServicer) ListRecent(ctx context.Context) ([]domain.Visit, error) {
	return m.listRecent(ctx)
}
func (m *mockVisitorServicer) History(ctx context.Context, f domain.HistoryFilter) (domain.HistoryPage, error) {
	return m.history(ctx, f)
}
func (m *mockVisitorServicer) Analytics(ctx context.Context, days int) (domain.Analytics, error) {
	return m.analytics(ctx, days)
}
func (m *mockVisitorServicer) Activity(ctx context.Context, id uuid.UUID) ([]domain.ActivityLogEntry, error) {
	return m.activity(ctx, id)
}

// compile-time check: mockVisitorServicer must satisfy handler.VisitorServicer.
var _ handler.VisitorServicer = (*mockVisitorServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mock into its chi router,
// the same way the serve command does in production.
func newHTTPHandler(svc handler.VisitorServicer) http.Handler {
	return handler.NewServer(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Handler()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// do sends req through h and returns the recorder.
func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals the recorder body into a generic map.
func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}
