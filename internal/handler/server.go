// Package handler implements the HTTP transport for the visitor tracker.
// All handlers are methods on Server. Every supported operation appears in
// the route table returned by Routes, which Handler registers into chi.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gopinathan2007/office-visitor-flow/internal/domain"
)

// VisitorServicer defines the business operations the handlers depend on.
// Defining it here, in the consumer package, lets handler tests inject a
// mock without touching the database or service layer.
type VisitorServicer interface {
	CheckIn(ctx context.Context, data domain.VisitorData) (domain.Receipt, error)
	CheckOut(ctx context.Context, id uuid.UUID) (domain.Receipt, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Visit, error)
	ListActive(ctx context.Context) ([]domain.Visit, error)
	ListRecent(ctx context.Context) ([]domain.Visit, error)
	History(ctx context.Context, f domain.HistoryFilter) (domain.HistoryPage, error)
	Analytics(ctx context.Context, days int) (domain.Analytics, error)
	Activity(ctx context.Context, id uuid.UUID) ([]domain.ActivityLogEntry, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	visitors VisitorServicer
	log      *slog.Logger
	now      func() time.Time
}

// NewServer constructs the Server. A nil logger falls back to slog.Default.
func NewServer(visitors VisitorServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{visitors: visitors, log: log, now: time.Now}
}

// Route is one entry of the route table.
type Route struct {
	Method  string
	Pattern string
	Name    string
	Handler http.HandlerFunc
}

// Routes returns every operation the API supports.
func (s *Server) Routes() []Route {
	return []Route{
		{http.MethodGet, "/healthz", "getHealth", s.GetHealth},
		{http.MethodGet, "/openapi.yaml", "getOpenAPI", s.GetOpenAPI},
		{http.MethodGet, "/departments", "listDepartments", s.ListDepartments},
		{http.MethodPost, "/visitors/checkin", "checkIn", s.CheckIn},
		{http.MethodPut, "/visitors/checkout", "checkOut", s.CheckOut},
		{http.MethodGet, "/visitors", "listRecent", s.ListRecent},
		{http.MethodGet, "/visitors/active", "listActive", s.ListActive},
		{http.MethodGet, "/visitors/history", "listHistory", s.ListHistory},
		{http.MethodGet, "/visitors/analytics", "getAnalytics", s.GetAnalytics},
		{http.MethodGet, "/visitors/{id}", "getVisit", s.GetVisit},
		{http.MethodGet, "/visitors/{id}/activity", "listActivity", s.ListActivity},
	}
}

// Handler builds a chi router from the route table. Unknown paths and
// methods get JSON error bodies like every other failure.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	for _, rt := range s.Routes() {
		r.Method(rt.Method, rt.Pattern, rt.Handler)
	}
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}
