package domain

import "time"

// NotAvailable is reported for PeakDay and TopDepartment when the window
// holds no visits.
const NotAvailable = "N/A"

// DefaultAnalyticsDays is the width of the trailing analytics window.
const DefaultAnalyticsDays = 30

// AnalyticsWindows lists the window widths, in days, callers may request.
var AnalyticsWindows = []int{7, 30, 90}

// DailyCount is the number of visits checked in on one calendar date.
type DailyCount struct {
	Date   string `json:"date"` // 2006-01-02
	Visits int64  `json:"visits"`
}

// DepartmentCount is the number of visits to one department.
type DepartmentCount struct {
	Department string `json:"department"`
	Visits     int64  `json:"visits"`
}

// WeekdayCount is the number of visits on one day of the week.
// ISODay follows ISO 8601: 1 is Monday, 7 is Sunday.
type WeekdayCount struct {
	ISODay int
	Visits int64
}

// WeeklyTrend summarises one calendar week of visits.
type WeeklyTrend struct {
	WeekStart   string `json:"weekStart"` // Monday, 2006-01-02
	Visits      int64  `json:"visits"`
	AvgDuration int    `json:"avgDuration"`
}

// MonthlyStats are the headline numbers for the analytics window.
type MonthlyStats struct {
	TotalVisitors int64  `json:"totalVisitors"`
	AvgDuration   int    `json:"avgDuration"`
	PeakDay       string `json:"peakDay"`
	TopDepartment string `json:"topDepartment"`
}

// Analytics is the full analytics payload for a trailing window.
type Analytics struct {
	Since            time.Time         `json:"since"`
	Days             int               `json:"days"`
	DailyVisits      []DailyCount      `json:"dailyVisits"`
	DepartmentVisits []DepartmentCount `json:"departmentVisits"`
	WeeklyTrends     []WeeklyTrend     `json:"weeklyTrends"`
	MonthlyStats     MonthlyStats      `json:"monthlyStats"`
}

// WindowAggregates is the raw material the store returns for one window.
// AvgDuration is nil when no visit in the window has been checked out.
type WindowAggregates struct {
	Total       int64
	AvgDuration *float64
	Daily       []DailyCount
	Departments []DepartmentCount
	Weekdays    []WeekdayCount
	Weekly      []WeeklyTrend
}
