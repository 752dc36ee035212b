package models

import "time"

// OutpassStatus is the lifecycle state of an outpass record.
type OutpassStatus string

const (
	StatusPending   OutpassStatus = "PENDING"
	StatusApproved  OutpassStatus = "APPROVED"
	StatusRejected  OutpassStatus = "REJECTED"
	StatusActive    OutpassStatus = "ACTIVE"
	StatusCompleted OutpassStatus = "COMPLETED"
	StatusCancelled OutpassStatus = "CANCELLED"
	StatusExpired   OutpassStatus = "EXPIRED"
)

// DepartureWindow is the period after actual departure within which a
// return is considered within-window.
const DepartureWindow = 24 * time.Hour

// Outpass is a time-bounded permission record allowing a resident to leave
// and return to the hostel. Records are never physically deleted; terminal
// states are retained for history.
type Outpass struct {
	ID                 string        `db:"id" json:"id"`
	ResidentID         string        `db:"resident_id" json:"resident_id"`
	Reason             string        `db:"reason" json:"reason"`
	LeaveStartAt       time.Time     `db:"leave_start_at" json:"leave_start_at"`
	ExpectedReturnAt   time.Time     `db:"expected_return_at" json:"expected_return_at"`
	Destination        string        `db:"destination" json:"destination"`
	EmergencyName      string        `db:"emergency_contact_name" json:"emergency_contact_name,omitempty"`
	EmergencyNumber    string        `db:"emergency_contact_number" json:"emergency_contact_number,omitempty"`
	EmergencyRelation  string        `db:"emergency_contact_relation" json:"emergency_contact_relation,omitempty"`
	Status             OutpassStatus `db:"status" json:"status"`
	ReviewerID         *string       `db:"reviewer_id" json:"reviewer_id,omitempty"`
	ReviewComments     *string       `db:"review_comments" json:"review_comments,omitempty"`
	ReviewedAt         *time.Time    `db:"reviewed_at" json:"reviewed_at,omitempty"`
	DepartureOfficerID *string       `db:"departure_officer_id" json:"departure_officer_id,omitempty"`
	DepartureComments  *string       `db:"departure_comments" json:"departure_comments,omitempty"`
	ActualDepartureAt  *time.Time    `db:"actual_departure_at" json:"actual_departure_at,omitempty"`
	ReturnOfficerID    *string       `db:"return_officer_id" json:"return_officer_id,omitempty"`
	ReturnComments     *string       `db:"return_comments" json:"return_comments,omitempty"`
	ActualReturnAt     *time.Time    `db:"actual_return_at" json:"actual_return_at,omitempty"`
	IsLateReturn       *bool         `db:"is_late_return" json:"is_late_return,omitempty"`
	LateReturnReason   *string       `db:"late_return_reason" json:"late_return_reason,omitempty"`
	CreatedAt          time.Time     `db:"created_at" json:"created_at"`

	// Denormalized resident fields populated by list/get queries.
	ResidentName string `db:"resident_name" json:"resident_name,omitempty"`
	RollNumber   string `db:"roll_number" json:"roll_number,omitempty"`
	HostelName   string `db:"hostel_name" json:"hostel_name,omitempty"`
}

// CanBeEdited reports whether a resident may still edit the record.
func (o *Outpass) CanBeEdited() bool {
	return o.Status == StatusPending
}

// CanBeCancelled reports whether a resident may still cancel the record.
func (o *Outpass) CanBeCancelled() bool {
	return o.Status == StatusPending || o.Status == StatusApproved
}

// Valid reports whether the status is a known lifecycle state.
func (s OutpassStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusActive,
		StatusCompleted, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s OutpassStatus) Terminal() bool {
	switch s {
	case StatusRejected, StatusCompleted, StatusCancelled, StatusExpired:
		return true
	}
	return false
}
