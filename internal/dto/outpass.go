package dto

import "time"

// OutpassRequest is the payload for creating or editing an outpass.
type OutpassRequest struct {
	Reason            string    `json:"reason" validate:"required,min=10,max=500"`
	LeaveStartAt      time.Time `json:"leave_start_at" validate:"required"`
	ExpectedReturnAt  time.Time `json:"expected_return_at" validate:"required"`
	Destination       string    `json:"destination" validate:"required,max=200"`
	EmergencyName     string    `json:"emergency_contact_name,omitempty"`
	EmergencyNumber   string    `json:"emergency_contact_number,omitempty" validate:"omitempty,len=10,numeric"`
	EmergencyRelation string    `json:"emergency_contact_relation,omitempty"`
}

// ReviewRequest carries the supervisor's decision on a pending outpass.
type ReviewRequest struct {
	Approved bool   `json:"approved"`
	Comments string `json:"comments" validate:"max=500"`
}

// DepartureRequest carries gate comments for marking departure.
type DepartureRequest struct {
	Comments string `json:"comments" validate:"max=500"`
}

// ReturnRequest carries gate comments and an optional late-return reason.
type ReturnRequest struct {
	Comments         string `json:"comments" validate:"max=500"`
	LateReturnReason string `json:"late_return_reason,omitempty" validate:"max=500"`
}
