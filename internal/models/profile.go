package models

import "strings"

// PermissionTier is the administrator-only sub-privilege level gating
// sensitive admin operations.
type PermissionTier string

const (
	TierViewer     PermissionTier = "VIEWER"
	TierModerator  PermissionTier = "MODERATOR"
	TierAdmin      PermissionTier = "ADMIN"
	TierSuperAdmin PermissionTier = "SUPER_ADMIN"
)

// tierRank orders tiers for privilege comparisons.
var tierRank = map[PermissionTier]int{
	TierViewer:     0,
	TierModerator:  1,
	TierAdmin:      2,
	TierSuperAdmin: 3,
}

// AtLeast reports whether the tier grants the privileges of minimum.
func (t PermissionTier) AtLeast(minimum PermissionTier) bool {
	return tierRank[t] >= tierRank[minimum]
}

// NormalizeTier maps the free-text tier strings found in storage onto the
// canonical enum. Historical rows carry variants like "STANDARD"; unknown
// values default to MODERATOR. The second return value is false when the
// input was not a canonical spelling, so callers can log the anomaly.
func NormalizeTier(raw string) (PermissionTier, bool) {
	var tier PermissionTier
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "SUPER_ADMIN", "SUPERADMIN":
		tier = TierSuperAdmin
	case "ADMIN", "STANDARD":
		tier = TierAdmin
	case "MODERATOR":
		tier = TierModerator
	case "VIEWER":
		tier = TierViewer
	default:
		return TierModerator, false
	}
	return tier, raw == string(tier)
}

// ResidentProfile extends a RESIDENT user.
type ResidentProfile struct {
	UserID           string `db:"user_id" json:"user_id"`
	RollNumber       string `db:"roll_number" json:"roll_number"`
	Program          string `db:"program" json:"program"`
	Degree           string `db:"degree" json:"degree"`
	YearOfStudy      int    `db:"year_of_study" json:"year_of_study"`
	HostelName       string `db:"hostel_name" json:"hostel_name"`
	RoomNumber       string `db:"room_number" json:"room_number"`
	Address          string `db:"address" json:"address,omitempty"`
	GuardianName     string `db:"guardian_name" json:"guardian_name,omitempty"`
	GuardianMobile   string `db:"guardian_mobile" json:"guardian_mobile,omitempty"`
	GuardianRelation string `db:"guardian_relation" json:"guardian_relation,omitempty"`
}

// SupervisorProfile extends a SUPERVISOR user.
type SupervisorProfile struct {
	UserID            string `db:"user_id" json:"user_id"`
	EmployeeID        string `db:"employee_id" json:"employee_id"`
	Department        string `db:"department" json:"department"`
	Designation       string `db:"designation" json:"designation"`
	HostelAssigned    string `db:"hostel_assigned" json:"hostel_assigned"`
	YearsOfExperience int    `db:"years_of_experience" json:"years_of_experience,omitempty"`
	OfficeLocation    string `db:"office_location" json:"office_location,omitempty"`
	OfficeHours       string `db:"office_hours" json:"office_hours,omitempty"`
}

// OfficerProfile extends an OFFICER user.
type OfficerProfile struct {
	UserID            string `db:"user_id" json:"user_id"`
	OfficerID         string `db:"officer_id" json:"officer_id"`
	Shift             string `db:"shift" json:"shift"`
	GateAssigned      string `db:"gate_assigned" json:"gate_assigned"`
	SupervisorName    string `db:"supervisor_name" json:"supervisor_name,omitempty"`
	SupervisorContact string `db:"supervisor_contact" json:"supervisor_contact,omitempty"`
	YearsOfService    int    `db:"years_of_service" json:"years_of_service,omitempty"`
	ClearanceLevel    string `db:"clearance_level" json:"clearance_level,omitempty"`
}

// AdminProfile extends an ADMIN user. PermissionTier holds the raw storage
// string; repositories normalize it via NormalizeTier before it reaches
// business logic.
type AdminProfile struct {
	UserID         string         `db:"user_id" json:"user_id"`
	AdminID        string         `db:"admin_id" json:"admin_id"`
	Department     string         `db:"department" json:"department"`
	Designation    string         `db:"designation" json:"designation"`
	PermissionTier PermissionTier `db:"permission_tier" json:"permission_tier"`
}
