package dto

import "github.com/campuskeep/outpass-api/internal/models"

// StatusCounts aggregates outpass records per lifecycle state.
type StatusCounts struct {
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Active    int `json:"active"`
	Rejected  int `json:"rejected"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	Total     int `json:"total"`
}

// ResidentDashboard summarizes a resident's own records.
type ResidentDashboard struct {
	Counts StatusCounts     `json:"counts"`
	Recent []models.Outpass `json:"recent"`
}

// SupervisorStatistics is the hostel-scoped statistics view.
type SupervisorStatistics struct {
	Hostel        string           `json:"hostel"`
	Counts        StatusCounts     `json:"counts"`
	LateReturns   int              `json:"late_returns"`
	ApprovalRate  float64          `json:"approval_rate"`
	RejectionRate float64          `json:"rejection_rate"`
	Recent        []models.Outpass `json:"recent"`
	PendingReview []models.Outpass `json:"pending_review"`
}

// OfficerDashboard is the gate-side operational view.
type OfficerDashboard struct {
	ApprovedCount     int              `json:"approved_count"`
	ActiveCount       int              `json:"active_count"`
	CompletedToday    int              `json:"completed_today"`
	LateReturns       int              `json:"late_returns"`
	PendingDepartures []models.Outpass `json:"pending_departures"`
	PendingReturns    []models.Outpass `json:"pending_returns"`
	RecentActivity    []models.Outpass `json:"recent_activity"`
}

// TodayActivity partitions records into the officer's current calendar day.
type TodayActivity struct {
	DeparturesToday []models.Outpass `json:"departures_today"`
	ReturnsToday    []models.Outpass `json:"returns_today"`
	ExpectedReturns []models.Outpass `json:"expected_returns"`
}

// AdminDashboard reports role population counts filtered by the caller's
// permission tier. Admins and TotalUsers include the admin population only
// for SUPER_ADMIN callers.
type AdminDashboard struct {
	Residents      int                   `json:"residents"`
	Supervisors    int                   `json:"supervisors"`
	Officers       int                   `json:"officers"`
	Admins         *int                  `json:"admins,omitempty"`
	TotalUsers     int                   `json:"total_users"`
	PermissionTier models.PermissionTier `json:"permission_tier"`
}
