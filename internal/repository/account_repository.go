package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/campuskeep/outpass-api/internal/models"
)

// AccountRepository manages the base identity together with its role
// profile. The paired rows are always written and removed inside a single
// transaction so a profile never exists without its base record.
type AccountRepository struct {
	db *sqlx.DB
}

// NewAccountRepository creates a new instance of AccountRepository.
func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// NewAccount bundles the base user with exactly one role profile.
type NewAccount struct {
	User       *models.User
	Resident   *models.ResidentProfile
	Supervisor *models.SupervisorProfile
	Officer    *models.OfficerProfile
	Admin      *models.AdminProfile
}

// AccountUpdate bundles the writes of one account update. User is nil when
// no contact field changed; exactly one profile pointer is set.
type AccountUpdate struct {
	User       *models.User
	Resident   *models.ResidentProfile
	Supervisor *models.SupervisorProfile
	Officer    *models.OfficerProfile
	Admin      *models.AdminProfile
}

const (
	contactUpdateQuery    = `UPDATE users SET full_name = :full_name, email = :email, mobile_number = :mobile_number, updated_at = :updated_at WHERE id = :id`
	residentUpdateQuery   = `UPDATE resident_profiles SET program = :program, degree = :degree, year_of_study = :year_of_study, hostel_name = :hostel_name, room_number = :room_number WHERE user_id = :user_id`
	supervisorUpdateQuery = `UPDATE supervisor_profiles SET department = :department, designation = :designation, hostel_assigned = :hostel_assigned WHERE user_id = :user_id`
	officerUpdateQuery    = `UPDATE officer_profiles SET shift = :shift, gate_assigned = :gate_assigned WHERE user_id = :user_id`
	adminUpdateQuery      = `UPDATE admin_profiles SET department = :department, designation = :designation, permission_tier = :permission_tier WHERE user_id = :user_id`
)

// Create inserts the base user and its role profile atomically.
func (r *AccountRepository) Create(ctx context.Context, account NewAccount) error {
	user := account.User
	if user.ID == "" {
		user.ID = newID()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create account: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const userInsert = `INSERT INTO users (id, username, password_hash, full_name, email, mobile_number, role, active, created_at, updated_at)
		VALUES (:id, :username, :password_hash, :full_name, :email, :mobile_number, :role, :active, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, userInsert, user); err != nil {
		return fmt.Errorf("create user: %w", translateConstraint(err))
	}

	switch {
	case account.Resident != nil:
		account.Resident.UserID = user.ID
		const q = `INSERT INTO resident_profiles (user_id, roll_number, program, degree, year_of_study, hostel_name, room_number, address, guardian_name, guardian_mobile, guardian_relation)
			VALUES (:user_id, :roll_number, :program, :degree, :year_of_study, :hostel_name, :room_number, :address, :guardian_name, :guardian_mobile, :guardian_relation)`
		_, err = tx.NamedExecContext(ctx, q, account.Resident)
	case account.Supervisor != nil:
		account.Supervisor.UserID = user.ID
		const q = `INSERT INTO supervisor_profiles (user_id, employee_id, department, designation, hostel_assigned, years_of_experience, office_location, office_hours)
			VALUES (:user_id, :employee_id, :department, :designation, :hostel_assigned, :years_of_experience, :office_location, :office_hours)`
		_, err = tx.NamedExecContext(ctx, q, account.Supervisor)
	case account.Officer != nil:
		account.Officer.UserID = user.ID
		const q = `INSERT INTO officer_profiles (user_id, officer_id, shift, gate_assigned, supervisor_name, supervisor_contact, years_of_service, clearance_level)
			VALUES (:user_id, :officer_id, :shift, :gate_assigned, :supervisor_name, :supervisor_contact, :years_of_service, :clearance_level)`
		_, err = tx.NamedExecContext(ctx, q, account.Officer)
	case account.Admin != nil:
		account.Admin.UserID = user.ID
		const q = `INSERT INTO admin_profiles (user_id, admin_id, department, designation, permission_tier)
			VALUES (:user_id, :admin_id, :department, :designation, :permission_tier)`
		_, err = tx.NamedExecContext(ctx, q, account.Admin)
	default:
		return fmt.Errorf("create account: missing role profile for user %s", user.ID)
	}
	if err != nil {
		return fmt.Errorf("create role profile: %w", translateConstraint(err))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create account: %w", err)
	}
	return nil
}

// Update writes the merged contact fields and the role profile as one
// atomic unit. A failed profile write rolls the contact change back, so the
// base record and its role extension never diverge.
func (r *AccountRepository) Update(ctx context.Context, update AccountUpdate) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update account: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if update.User != nil {
		update.User.UpdatedAt = time.Now().UTC()
		if _, err := tx.NamedExecContext(ctx, contactUpdateQuery, update.User); err != nil {
			return fmt.Errorf("update user contact: %w", translateConstraint(err))
		}
	}

	switch {
	case update.Resident != nil:
		_, err = tx.NamedExecContext(ctx, residentUpdateQuery, update.Resident)
	case update.Supervisor != nil:
		_, err = tx.NamedExecContext(ctx, supervisorUpdateQuery, update.Supervisor)
	case update.Officer != nil:
		_, err = tx.NamedExecContext(ctx, officerUpdateQuery, update.Officer)
	case update.Admin != nil:
		_, err = tx.NamedExecContext(ctx, adminUpdateQuery, update.Admin)
	}
	if err != nil {
		return fmt.Errorf("update role profile: %w", translateConstraint(err))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update account: %w", err)
	}
	return nil
}

// Delete removes the role profile first, then the base identity, as one
// atomic unit. Referencing rows (a resident's outpasses) block the delete.
func (r *AccountRepository) Delete(ctx context.Context, userID string, role models.UserRole) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete account: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	profileTable := map[models.UserRole]string{
		models.RoleResident:   "resident_profiles",
		models.RoleSupervisor: "supervisor_profiles",
		models.RoleOfficer:    "officer_profiles",
		models.RoleAdmin:      "admin_profiles",
	}[role]
	if profileTable == "" {
		return fmt.Errorf("delete account: unknown role %q", role)
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1`, profileTable), userID); err != nil {
		return fmt.Errorf("delete role profile: %w", translateConstraint(err))
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", translateConstraint(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete account: %w", err)
	}
	return nil
}

// FindResident returns the resident profile for a user.
func (r *AccountRepository) FindResident(ctx context.Context, userID string) (*models.ResidentProfile, error) {
	const query = `SELECT user_id, roll_number, program, degree, year_of_study, hostel_name, room_number, address, guardian_name, guardian_mobile, guardian_relation FROM resident_profiles WHERE user_id = $1 LIMIT 1`
	var p models.ResidentProfile
	if err := r.db.GetContext(ctx, &p, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find resident profile: %w", err)
	}
	return &p, nil
}

// FindSupervisor returns the supervisor profile for a user.
func (r *AccountRepository) FindSupervisor(ctx context.Context, userID string) (*models.SupervisorProfile, error) {
	const query = `SELECT user_id, employee_id, department, designation, hostel_assigned, years_of_experience, office_location, office_hours FROM supervisor_profiles WHERE user_id = $1 LIMIT 1`
	var p models.SupervisorProfile
	if err := r.db.GetContext(ctx, &p, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find supervisor profile: %w", err)
	}
	return &p, nil
}

// FindOfficer returns the officer profile for a user.
func (r *AccountRepository) FindOfficer(ctx context.Context, userID string) (*models.OfficerProfile, error) {
	const query = `SELECT user_id, officer_id, shift, gate_assigned, supervisor_name, supervisor_contact, years_of_service, clearance_level FROM officer_profiles WHERE user_id = $1 LIMIT 1`
	var p models.OfficerProfile
	if err := r.db.GetContext(ctx, &p, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find officer profile: %w", err)
	}
	return &p, nil
}

// FindAdmin returns the admin profile for a user.
func (r *AccountRepository) FindAdmin(ctx context.Context, userID string) (*models.AdminProfile, error) {
	const query = `SELECT user_id, admin_id, department, designation, permission_tier FROM admin_profiles WHERE user_id = $1 LIMIT 1`
	var p models.AdminProfile
	if err := r.db.GetContext(ctx, &p, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find admin profile: %w", err)
	}
	return &p, nil
}

// UpdateAdmin overwrites the mutable admin profile fields including the
// raw tier string.
func (r *AccountRepository) UpdateAdmin(ctx context.Context, p *models.AdminProfile) error {
	if _, err := r.db.NamedExecContext(ctx, adminUpdateQuery, p); err != nil {
		return fmt.Errorf("update admin profile: %w", err)
	}
	return nil
}

// ExistsByRollNumber reports whether a roll number is already registered.
func (r *AccountRepository) ExistsByRollNumber(ctx context.Context, rollNumber string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM resident_profiles WHERE roll_number = $1)`, rollNumber)
}

// ExistsByEmployeeID reports whether an employee id is already registered.
func (r *AccountRepository) ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM supervisor_profiles WHERE employee_id = $1)`, employeeID)
}

// ExistsByOfficerID reports whether an officer id is already registered.
func (r *AccountRepository) ExistsByOfficerID(ctx context.Context, officerID string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM officer_profiles WHERE officer_id = $1)`, officerID)
}

// ExistsByAdminID reports whether a generated admin id is already taken.
func (r *AccountRepository) ExistsByAdminID(ctx context.Context, adminID string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM admin_profiles WHERE admin_id = $1)`, adminID)
}

func (r *AccountRepository) exists(ctx context.Context, query, arg string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, arg); err != nil {
		return false, fmt.Errorf("existence check: %w", err)
	}
	return exists, nil
}

// ListByRole returns the users of one role joined with their profile.
func (r *AccountRepository) ListByRole(ctx context.Context, role models.UserRole) ([]AccountRow, error) {
	query := map[models.UserRole]string{
		models.RoleResident: `SELECT u.id, u.username, u.full_name, u.email, u.mobile_number, u.role, u.active, u.created_at,
				p.roll_number, p.program, p.degree, p.year_of_study, p.hostel_name, p.room_number
			FROM users u JOIN resident_profiles p ON p.user_id = u.id ORDER BY u.created_at DESC`,
		models.RoleSupervisor: `SELECT u.id, u.username, u.full_name, u.email, u.mobile_number, u.role, u.active, u.created_at,
				p.employee_id, p.department, p.designation, p.hostel_assigned
			FROM users u JOIN supervisor_profiles p ON p.user_id = u.id ORDER BY u.created_at DESC`,
		models.RoleOfficer: `SELECT u.id, u.username, u.full_name, u.email, u.mobile_number, u.role, u.active, u.created_at,
				p.officer_id, p.shift, p.gate_assigned
			FROM users u JOIN officer_profiles p ON p.user_id = u.id ORDER BY u.created_at DESC`,
		models.RoleAdmin: `SELECT u.id, u.username, u.full_name, u.email, u.mobile_number, u.role, u.active, u.created_at,
				p.admin_id, p.department, p.designation, p.permission_tier
			FROM users u JOIN admin_profiles p ON p.user_id = u.id ORDER BY u.created_at DESC`,
	}[role]
	if query == "" {
		return nil, fmt.Errorf("list accounts: unknown role %q", role)
	}

	var rows []AccountRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list accounts by role: %w", err)
	}
	return rows, nil
}

// AccountRow is the flat join row for account listings. Profile columns not
// present for the queried role stay at their zero values.
type AccountRow struct {
	ID           string          `db:"id"`
	Username     string          `db:"username"`
	FullName     string          `db:"full_name"`
	Email        string          `db:"email"`
	MobileNumber string          `db:"mobile_number"`
	Role         models.UserRole `db:"role"`
	Active       bool            `db:"active"`
	CreatedAt    time.Time       `db:"created_at"`

	RollNumber  *string `db:"roll_number"`
	Program     *string `db:"program"`
	Degree      *string `db:"degree"`
	YearOfStudy *int    `db:"year_of_study"`
	HostelName  *string `db:"hostel_name"`
	RoomNumber  *string `db:"room_number"`

	EmployeeID     *string `db:"employee_id"`
	Department     *string `db:"department"`
	Designation    *string `db:"designation"`
	HostelAssigned *string `db:"hostel_assigned"`

	OfficerID    *string `db:"officer_id"`
	Shift        *string `db:"shift"`
	GateAssigned *string `db:"gate_assigned"`

	AdminID        *string `db:"admin_id"`
	PermissionTier *string `db:"permission_tier"`
}
