// Package domain contains the core data types for the visitor tracker.
// This package has no dependencies on the other internal packages and is
// imported by every one of them (repo, service, handler, cli).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a Visit.
type Status string

const (
	StatusActive     Status = "active"
	StatusCheckedOut Status = "checked_out"
	// StatusNoShow is reserved: nothing transitions a visit into it yet.
	StatusNoShow Status = "no_show"
)

// Statuses lists every status a Visit row may hold.
var Statuses = []Status{StatusActive, StatusCheckedOut, StatusNoShow}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// VisitorData is the set of details a visitor supplies at check-in.
// Every field is required.
type VisitorData struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Company    string `json:"company"`
	HostName   string `json:"hostName"`
	Purpose    string `json:"purpose"`
	Department string `json:"department"`
}

// Visit is one physical visit, from check-in to an optional check-out.
// CheckOutTime and Duration are nil until the visit is checked out, and are
// never changed afterwards.
type Visit struct {
	ID uuid.UUID `json:"id"`
	VisitorData
	CheckInTime  time.Time  `json:"checkInTime"`
	CheckOutTime *time.Time `json:"checkOutTime"`
	Status       Status     `json:"status"`
	Duration     *int       `json:"duration"` // minutes
}

// Departments is the list served to check-in forms. Check-in itself accepts
// any non-empty department.
var Departments = []string{
	"Reception",
	"Human Resources",
	"Sales",
	"Marketing",
	"Engineering",
	"Finance",
	"Operations",
	"Management",
}
