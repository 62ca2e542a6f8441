package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gopinathan2007/office-visitor-flow/internal/domain"
)

// csvHeaders defines the column names written as the first row of a history export.
var csvHeaders = []string{
	"Name", "Email", "Phone", "Company", "Host", "Department", "Purpose",
	"Check In", "Check Out", "Duration", "Status",
}

// writeHistoryCSV encodes visits as a CSV attachment named after today's date.
func (s *Server) writeHistoryCSV(w http.ResponseWriter, visits []domain.Visit) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer
	cw.Write(csvHeaders)
	for _, v := range visits {
		//nolint:errcheck
		cw.Write(visitToCSVRecord(v))
	}
	cw.Flush()

	filename := fmt.Sprintf("visitor-history-%s.csv", s.now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(buf.Bytes())
}

// visitToCSVRecord flattens a visit into one CSV row.
// A visit still in progress has "N/A" for check-out and duration.
func visitToCSVRecord(v domain.Visit) []string {
	checkOut := domain.NotAvailable
	if v.CheckOutTime != nil {
		checkOut = v.CheckOutTime.UTC().Format(time.RFC3339)
	}
	return []string{
		v.Name,
		v.Email,
		v.Phone,
		v.Company,
		v.HostName,
		v.Department,
		v.Purpose,
		v.CheckInTime.UTC().Format(time.RFC3339),
		checkOut,
		formatDuration(v.Duration),
		string(v.Status),
	}
}

// formatDuration renders minutes as "1h 5m" or "45m"; nil and zero are "N/A".
func formatDuration(minutes *int) string {
	if minutes == nil || *minutes == 0 {
		return domain.NotAvailable
	}
	h, m := *minutes/60, *minutes%60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
