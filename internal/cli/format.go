package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/gopinathan2007/office-visitor-flow/internal/domain"
)

// printJSON marshals v as indented JSON and writes it to out.
func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printVisitTable prints visits as a formatted table.
func printVisitTable(out io.Writer, visits []domain.Visit) error {
	if len(visits) == 0 {
		fmt.Fprintln(out, "No visitors found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tNAME\tCOMPANY\tHOST\tDEPARTMENT\tCHECK IN\tCHECK OUT\tSTATUS"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}

	for _, v := range visits {
		checkOut := "-"
		if v.CheckOutTime != nil {
			checkOut = v.CheckOutTime.Local().Format("2006-01-02 15:04")
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(v.ID.String()), truncate(v.Name, 30), truncate(v.Company, 24), truncate(v.HostName, 24),
			v.Department, v.CheckInTime.Local().Format("2006-01-02 15:04"), checkOut, v.Status); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}
	return nil
}

// shortID keeps the first UUID group, enough to tell rows apart on screen.
func shortID(id string) string {
	if len(id) < 8 {
		return id
	}
	return id[:8]
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
