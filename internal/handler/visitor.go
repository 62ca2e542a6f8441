package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/gopinathan2007/office-visitor-flow/internal/domain"
)

type checkInResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	VisitorID uuid.UUID `json:"visitorId"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type dataResponse[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

type historyResponse struct {
	Success bool           `json:"success"`
	Data    []domain.Visit `json:"data"`
	Total   int64          `json:"total"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
}

// checkOutRequest accepts the id as visitorId or, from older clients, visitor_id.
type checkOutRequest struct {
	VisitorID       *string `json:"visitorId"`
	LegacyVisitorID *string `json:"visitor_id"`
}

// CheckIn handles POST /visitors/checkin.
func (s *Server) CheckIn(w http.ResponseWriter, r *http.Request) {
	var body domain.VisitorData
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		decodeError(w, err)
		return
	}

	receipt, err := s.visitors.CheckIn(r.Context(), body)
	if err != nil {
		s.writeServiceError(w, r, err, "visitor not found")
		return
	}

	writeJSON(w, http.StatusCreated, checkInResponse{
		Success:   true,
		Message:   "Visitor checked in successfully",
		VisitorID: receipt.VisitID,
	})
}

// CheckOut handles PUT /visitors/checkout.
func (s *Server) CheckOut(w http.ResponseWriter, r *http.Request) {
	var body checkOutRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		decodeError(w, err)
		return
	}

	raw := body.VisitorID
	if raw == nil {
		raw = body.LegacyVisitorID
	}
	if raw == nil || *raw == "" {
		writeError(w, http.StatusBadRequest, "visitorId is required")
		return
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "visitorId must be a UUID")
		return
	}

	if _, err := s.visitors.CheckOut(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, "Active visitor not found")
		return
	}

	writeJSON(w, http.StatusOK, successResponse{
		Success: true,
		Message: "Visitor checked out successfully",
	})
}

// ListRecent handles GET /visitors.
func (s *Server) ListRecent(w http.ResponseWriter, r *http.Request) {
	visits, err := s.visitors.ListRecent(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "visitor not found")
		return
	}
	writeJSON(w, http.StatusOK, dataResponse[[]domain.Visit]{Success: true, Data: visits})
}

// ListDepartments handles GET /departments.
func (s *Server) ListDepartments(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, dataResponse[[]string]{Success: true, Data: domain.Departments})
}

// ListActive handles GET /visitors/active.
func (s *Server) ListActive(w http.ResponseWriter, r *http.Request) {
	visits, err := s.visitors.ListActive(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "visitor not found")
		return
	}
	writeJSON(w, http.StatusOK, dataResponse[[]domain.Visit]{Success: true, Data: visits})
}

// ListHistory handles GET /visitors/history.
// Supports ?limit=, ?offset=, ?status=, ?search=, ?date=today|all and
// ?format=json|csv.
func (s *Server) ListHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		limit, offset                *int
		status, search, date, format *string
	)
	params := []struct {
		name string
		dest any
	}{
		{"limit", &limit},
		{"offset", &offset},
		{"status", &status},
		{"search", &search},
		{"date", &date},
		{"format", &format},
	}
	for _, p := range params {
		if err := runtime.BindQueryParameter("form", true, false, p.name, q, p.dest); err != nil {
			writeError(w, http.StatusBadRequest, "invalid query parameter "+p.name)
			return
		}
	}

	f := domain.NewHistoryFilter(limit, offset, deref(status), deref(search))
	switch deref(date) {
	case "", "all":
	case "today":
		f.Today = true
	default:
		writeError(w, http.StatusBadRequest, "date must be one of all, today")
		return
	}

	wantCSV := false
	switch deref(format) {
	case "", "json":
	case "csv":
		wantCSV = true
	default:
		writeError(w, http.StatusBadRequest, "format must be one of json, csv")
		return
	}

	page, err := s.visitors.History(r.Context(), f)
	if err != nil {
		s.writeServiceError(w, r, err, "visitor not found")
		return
	}

	if wantCSV {
		s.writeHistoryCSV(w, page.Records)
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{
		Success: true,
		Data:    page.Records,
		Total:   page.Total,
		Limit:   page.Limit,
		Offset:  page.Offset,
	})
}

// GetAnalytics handles GET /visitors/analytics. Supports ?days=7|30|90.
func (s *Server) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	var days *int
	if err := runtime.BindQueryParameter("form", true, false, "days", r.URL.Query(), &days); err != nil {
		writeError(w, http.StatusBadRequest, "invalid query parameter days")
		return
	}

	a, err := s.visitors.Analytics(r.Context(), deref(days))
	if err != nil {
		s.writeServiceError(w, r, err, "visitor not found")
		return
	}
	writeJSON(w, http.StatusOK, dataResponse[domain.Analytics]{Success: true, Data: a})
}

// GetVisit handles GET /visitors/{id}.
func (s *Server) GetVisit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	v, err := s.visitors.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "visitor not found")
		return
	}
	writeJSON(w, http.StatusOK, dataResponse[domain.Visit]{Success: true, Data: v})
}

// ListActivity handles GET /visitors/{id}/activity.
func (s *Server) ListActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	entries, err := s.visitors.Activity(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "visitor not found")
		return
	}
	writeJSON(w, http.StatusOK, dataResponse[[]domain.ActivityLogEntry]{Success: true, Data: entries})
}

// pathID binds the {id} path parameter, writing a 400 when it is not a UUID.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be a UUID")
		return uuid.UUID{}, false
	}
	return id, true
}

// deref returns the value behind p, or the zero value when p is nil.
func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
