package dto

import "github.com/campuskeep/outpass-api/internal/models"

// RegisterRequest carries role-tagged registration input. The role-specific
// identifier blocks are validated by the account service per role.
type RegisterRequest struct {
	Username     string `json:"username" validate:"required,min=3,max=50"`
	Password     string `json:"password" validate:"required,min=8"`
	FullName     string `json:"full_name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email"`
	MobileNumber string `json:"mobile_number" validate:"required,len=10,numeric"`
	Role         string `json:"role" validate:"required"`

	// Resident fields.
	RollNumber       string `json:"roll_number,omitempty" validate:"omitempty,alphanum,min=6,max=12"`
	Program          string `json:"program,omitempty"`
	Degree           string `json:"degree,omitempty"`
	YearOfStudy      int    `json:"year_of_study,omitempty"`
	HostelName       string `json:"hostel_name,omitempty"`
	RoomNumber       string `json:"room_number,omitempty"`
	Address          string `json:"address,omitempty"`
	GuardianName     string `json:"guardian_name,omitempty"`
	GuardianMobile   string `json:"guardian_mobile,omitempty"`
	GuardianRelation string `json:"guardian_relation,omitempty"`

	// Supervisor fields.
	EmployeeID        string `json:"employee_id,omitempty"`
	Department        string `json:"department,omitempty"`
	Designation       string `json:"designation,omitempty"`
	HostelAssigned    string `json:"hostel_assigned,omitempty"`
	YearsOfExperience int    `json:"years_of_experience,omitempty"`
	OfficeLocation    string `json:"office_location,omitempty"`
	OfficeHours       string `json:"office_hours,omitempty"`

	// Officer fields.
	OfficerID         string `json:"officer_id,omitempty"`
	Shift             string `json:"shift,omitempty"`
	GateAssigned      string `json:"gate_assigned,omitempty"`
	SupervisorName    string `json:"supervisor_name,omitempty"`
	SupervisorContact string `json:"supervisor_contact,omitempty"`
	YearsOfService    int    `json:"years_of_service,omitempty"`
	ClearanceLevel    string `json:"clearance_level,omitempty"`
}

// UpdateAccountRequest is a partial-field merge: only non-empty supplied
// fields overwrite existing values.
type UpdateAccountRequest struct {
	FullName     string `json:"full_name,omitempty"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	MobileNumber string `json:"mobile_number,omitempty" validate:"omitempty,len=10,numeric"`

	Program     string `json:"program,omitempty"`
	Degree      string `json:"degree,omitempty"`
	YearOfStudy int    `json:"year_of_study,omitempty"`
	HostelName  string `json:"hostel_name,omitempty"`
	RoomNumber  string `json:"room_number,omitempty"`

	Department     string `json:"department,omitempty"`
	Designation    string `json:"designation,omitempty"`
	HostelAssigned string `json:"hostel_assigned,omitempty"`

	Shift        string `json:"shift,omitempty"`
	GateAssigned string `json:"gate_assigned,omitempty"`

	PermissionTier string `json:"permission_tier,omitempty"`
}

// StatusRequest toggles an account's active flag.
type StatusRequest struct {
	Active bool `json:"active"`
}

// TierRequest sets an admin's permission tier.
type TierRequest struct {
	PermissionTier string `json:"permission_tier" validate:"required"`
}

// IdentityResetRequest is the identity-verified password reset: the
// username and registered mobile number must match before the reset.
type IdentityResetRequest struct {
	Username     string `json:"username" validate:"required"`
	MobileNumber string `json:"mobile_number" validate:"required,len=10,numeric"`
	NewPassword  string `json:"new_password" validate:"required,min=8"`
}

// PrivilegedResetRequest is the tier-privileged reset performed by an admin.
type PrivilegedResetRequest struct {
	Username    string `json:"username" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// AccountView is the admin-facing projection of a user plus its
// role-specific profile fields.
type AccountView struct {
	User models.User `json:"user"`

	RollNumber  string `json:"roll_number,omitempty"`
	Program     string `json:"program,omitempty"`
	Degree      string `json:"degree,omitempty"`
	YearOfStudy int    `json:"year_of_study,omitempty"`
	HostelName  string `json:"hostel_name,omitempty"`
	RoomNumber  string `json:"room_number,omitempty"`

	EmployeeID     string `json:"employee_id,omitempty"`
	Department     string `json:"department,omitempty"`
	Designation    string `json:"designation,omitempty"`
	HostelAssigned string `json:"hostel_assigned,omitempty"`

	OfficerID    string `json:"officer_id,omitempty"`
	Shift        string `json:"shift,omitempty"`
	GateAssigned string `json:"gate_assigned,omitempty"`

	AdminID        string                `json:"admin_id,omitempty"`
	PermissionTier models.PermissionTier `json:"permission_tier,omitempty"`
}

// AdminDetails is the admin's own record with the normalized tier.
type AdminDetails struct {
	User           models.User           `json:"user"`
	AdminID        string                `json:"admin_id"`
	Department     string                `json:"department"`
	Designation    string                `json:"designation"`
	PermissionTier models.PermissionTier `json:"permission_tier"`
}

// UpdateProfileRequest lets any authenticated user update contact fields.
type UpdateProfileRequest struct {
	FullName     string `json:"full_name,omitempty"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	MobileNumber string `json:"mobile_number,omitempty" validate:"omitempty,len=10,numeric"`
}
