package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuskeep/outpass-api/internal/dto"
	"github.com/campuskeep/outpass-api/internal/models"
	"github.com/campuskeep/outpass-api/internal/policy"
	"github.com/campuskeep/outpass-api/internal/repository"
	appErrors "github.com/campuskeep/outpass-api/pkg/errors"
)

const adminIDAttempts = 5

type accountUserStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	EmailOwnedByOther(ctx context.Context, email, userID string) (bool, error)
	UpdateContact(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error
	SetActive(ctx context.Context, id string, active bool) error
}

type accountProfileStore interface {
	Create(ctx context.Context, account repository.NewAccount) error
	Delete(ctx context.Context, userID string, role models.UserRole) error
	FindResident(ctx context.Context, userID string) (*models.ResidentProfile, error)
	FindSupervisor(ctx context.Context, userID string) (*models.SupervisorProfile, error)
	FindOfficer(ctx context.Context, userID string) (*models.OfficerProfile, error)
	FindAdmin(ctx context.Context, userID string) (*models.AdminProfile, error)
	Update(ctx context.Context, update repository.AccountUpdate) error
	UpdateAdmin(ctx context.Context, p *models.AdminProfile) error
	ExistsByRollNumber(ctx context.Context, rollNumber string) (bool, error)
	ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error)
	ExistsByOfficerID(ctx context.Context, officerID string) (bool, error)
	ExistsByAdminID(ctx context.Context, adminID string) (bool, error)
	ListByRole(ctx context.Context, role models.UserRole) ([]repository.AccountRow, error)
}

// AccountService is the administrative identity engine: registration,
// partial updates, status toggles, deletion, rosters, password resets, and
// admin tier management.
type AccountService struct {
	users     accountUserStore
	accounts  accountProfileStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAccountService constructs an AccountService.
func NewAccountService(users accountUserStore, accounts accountProfileStore, validate *validator.Validate, logger *zap.Logger) *AccountService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{users: users, accounts: accounts, validator: validate, logger: logger}
}

// Register creates a base identity with its role profile atomically.
// Duplicate identifiers are rejected before persistence; a race that slips
// past the pre-checks surfaces as a conflict from the unique constraint.
func (s *AccountService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	role := models.UserRole(strings.ToUpper(strings.TrimSpace(req.Role)))
	if !role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown role %q", req.Role))
	}

	if err := s.checkIdentityAvailable(ctx, req); err != nil {
		return nil, err
	}

	account, err := s.buildAccount(ctx, role, req)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	account.User.PasswordHash = string(hash)

	if err := s.accounts.Create(ctx, *account); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "username, email or identifier already registered")
		}
		return nil, storeFailure(err, "failed to create account")
	}

	s.logger.Info("account registered",
		zap.String("user_id", account.User.ID),
		zap.String("username", account.User.Username),
		zap.String("role", string(role)))
	return account.User, nil
}

func (s *AccountService) checkIdentityAvailable(ctx context.Context, req dto.RegisterRequest) error {
	taken, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return storeFailure(err, "failed to check username")
	}
	if taken {
		return appErrors.Clone(appErrors.ErrValidation, "username already taken")
	}
	taken, err = s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return storeFailure(err, "failed to check email")
	}
	if taken {
		return appErrors.Clone(appErrors.ErrValidation, "email already registered")
	}
	return nil
}

func (s *AccountService) buildAccount(ctx context.Context, role models.UserRole, req dto.RegisterRequest) (*repository.NewAccount, error) {
	account := &repository.NewAccount{
		User: &models.User{
			Username:     req.Username,
			FullName:     req.FullName,
			Email:        strings.ToLower(req.Email),
			MobileNumber: req.MobileNumber,
			Role:         role,
			Active:       true,
		},
	}

	switch role {
	case models.RoleResident:
		if req.RollNumber == "" || req.HostelName == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "roll number and hostel name are required for residents")
		}
		taken, err := s.accounts.ExistsByRollNumber(ctx, req.RollNumber)
		if err != nil {
			return nil, storeFailure(err, "failed to check roll number")
		}
		if taken {
			return nil, appErrors.Clone(appErrors.ErrValidation, "roll number already registered")
		}
		account.Resident = &models.ResidentProfile{
			RollNumber:       req.RollNumber,
			Program:          req.Program,
			Degree:           req.Degree,
			YearOfStudy:      req.YearOfStudy,
			HostelName:       req.HostelName,
			RoomNumber:       req.RoomNumber,
			Address:          req.Address,
			GuardianName:     req.GuardianName,
			GuardianMobile:   req.GuardianMobile,
			GuardianRelation: req.GuardianRelation,
		}
	case models.RoleSupervisor:
		if req.EmployeeID == "" || req.HostelAssigned == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "employee id and assigned hostel are required for supervisors")
		}
		taken, err := s.accounts.ExistsByEmployeeID(ctx, req.EmployeeID)
		if err != nil {
			return nil, storeFailure(err, "failed to check employee id")
		}
		if taken {
			return nil, appErrors.Clone(appErrors.ErrValidation, "employee id already registered")
		}
		account.Supervisor = &models.SupervisorProfile{
			EmployeeID:        req.EmployeeID,
			Department:        req.Department,
			Designation:       req.Designation,
			HostelAssigned:    req.HostelAssigned,
			YearsOfExperience: req.YearsOfExperience,
			OfficeLocation:    req.OfficeLocation,
			OfficeHours:       req.OfficeHours,
		}
	case models.RoleOfficer:
		if req.OfficerID == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "officer id is required for officers")
		}
		taken, err := s.accounts.ExistsByOfficerID(ctx, req.OfficerID)
		if err != nil {
			return nil, storeFailure(err, "failed to check officer id")
		}
		if taken {
			return nil, appErrors.Clone(appErrors.ErrValidation, "officer id already registered")
		}
		account.Officer = &models.OfficerProfile{
			OfficerID:         req.OfficerID,
			Shift:             req.Shift,
			GateAssigned:      req.GateAssigned,
			SupervisorName:    req.SupervisorName,
			SupervisorContact: req.SupervisorContact,
			YearsOfService:    req.YearsOfService,
			ClearanceLevel:    req.ClearanceLevel,
		}
	case models.RoleAdmin:
		adminID, err := s.generateAdminID(ctx)
		if err != nil {
			return nil, err
		}
		account.Admin = &models.AdminProfile{
			AdminID:        adminID,
			Department:     req.Department,
			Designation:    req.Designation,
			PermissionTier: models.TierModerator,
		}
	}
	return account, nil
}

// generateAdminID produces a unique short admin identifier.
func (s *AccountService) generateAdminID(ctx context.Context) (string, error) {
	for i := 0; i < adminIDAttempts; i++ {
		candidate := "ADM" + strings.ToUpper(uuid.NewString()[:6])
		taken, err := s.accounts.ExistsByAdminID(ctx, candidate)
		if err != nil {
			return "", storeFailure(err, "failed to check admin id")
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", appErrors.Clone(appErrors.ErrInternal, "could not allocate admin id")
}

// Get returns one account joined with its role profile.
func (s *AccountService) Get(ctx context.Context, userID string) (*dto.AccountView, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &dto.AccountView{User: *user}
	switch user.Role {
	case models.RoleResident:
		p, err := s.accounts.FindResident(ctx, userID)
		if err != nil {
			return nil, s.profileFailure(err)
		}
		view.RollNumber = p.RollNumber
		view.Program = p.Program
		view.Degree = p.Degree
		view.YearOfStudy = p.YearOfStudy
		view.HostelName = p.HostelName
		view.RoomNumber = p.RoomNumber
	case models.RoleSupervisor:
		p, err := s.accounts.FindSupervisor(ctx, userID)
		if err != nil {
			return nil, s.profileFailure(err)
		}
		view.EmployeeID = p.EmployeeID
		view.Department = p.Department
		view.Designation = p.Designation
		view.HostelAssigned = p.HostelAssigned
	case models.RoleOfficer:
		p, err := s.accounts.FindOfficer(ctx, userID)
		if err != nil {
			return nil, s.profileFailure(err)
		}
		view.OfficerID = p.OfficerID
		view.Shift = p.Shift
		view.GateAssigned = p.GateAssigned
	case models.RoleAdmin:
		p, err := s.accounts.FindAdmin(ctx, userID)
		if err != nil {
			return nil, s.profileFailure(err)
		}
		view.AdminID = p.AdminID
		view.Department = p.Department
		view.Designation = p.Designation
		tier, _ := models.NormalizeTier(string(p.PermissionTier))
		view.PermissionTier = tier
	}
	return view, nil
}

// Update applies a partial merge: only non-empty supplied fields overwrite.
// The contact and role-profile writes travel as one atomic repository call,
// so neither half can land without the other.
func (s *AccountService) Update(ctx context.Context, userID string, req dto.UpdateAccountRequest) (*dto.AccountView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid update payload")
	}
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	contactChanged, err := s.stageContact(ctx, user, req.FullName, req.Email, req.MobileNumber)
	if err != nil {
		return nil, err
	}

	update := repository.AccountUpdate{}
	if contactChanged {
		update.User = user
	}

	switch user.Role {
	case models.RoleResident:
		p, err := s.accounts.FindResident(ctx, userID)
		if err != nil {
			return nil, s.profileFailure(err)
		}
		mergeString(&p.Program, req.Program)
		mergeString(&p.Degree, req.Degree)
		mergeString(&p.HostelName, req.HostelName)
		mergeString(&p.RoomNumber, req.RoomNumber)
		if req.YearOfStudy > 0 {
			p.YearOfStudy = req.YearOfStudy
		}
		update.Resident = p
	case models.RoleSupervisor:
		p, err := s.accounts.FindSupervisor(ctx, userID)
		if err != nil {
			return nil, s.profileFailure(err)
		}
		mergeString(&p.Department, req.Department)
		mergeString(&p.Designation, req.Designation)
		mergeString(&p.HostelAssigned, req.HostelAssigned)
		update.Supervisor = p
	case models.RoleOfficer:
		p, err := s.accounts.FindOfficer(ctx, userID)
		if err != nil {
			return nil, s.profileFailure(err)
		}
		mergeString(&p.Shift, req.Shift)
		mergeString(&p.GateAssigned, req.GateAssigned)
		update.Officer = p
	case models.RoleAdmin:
		p, err := s.accounts.FindAdmin(ctx, userID)
		if err != nil {
			return nil, s.profileFailure(err)
		}
		mergeString(&p.Department, req.Department)
		mergeString(&p.Designation, req.Designation)
		update.Admin = p
	}

	if err := s.accounts.Update(ctx, update); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered to another account")
		}
		return nil, storeFailure(err, "failed to update account")
	}

	return s.Get(ctx, userID)
}

// UpdateOwnProfile lets any authenticated user update their contact fields.
func (s *AccountService) UpdateOwnProfile(ctx context.Context, claims *models.JWTClaims, req dto.UpdateProfileRequest) (*dto.AccountView, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}
	user, err := s.loadUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.mergeContact(ctx, user, req.FullName, req.Email, req.MobileNumber); err != nil {
		return nil, err
	}
	return s.Get(ctx, claims.UserID)
}

// stageContact merges the supplied contact fields into user without
// persisting anything. The email ownership pre-check runs here so a conflict
// is reported before any write is attempted.
func (s *AccountService) stageContact(ctx context.Context, user *models.User, fullName, email, mobile string) (bool, error) {
	changed := false
	if fullName != "" && fullName != user.FullName {
		user.FullName = fullName
		changed = true
	}
	if email != "" && !strings.EqualFold(email, user.Email) {
		owned, err := s.users.EmailOwnedByOther(ctx, strings.ToLower(email), user.ID)
		if err != nil {
			return false, storeFailure(err, "failed to check email")
		}
		if owned {
			return false, appErrors.Clone(appErrors.ErrConflict, "email already registered to another account")
		}
		user.Email = strings.ToLower(email)
		changed = true
	}
	if mobile != "" && mobile != user.MobileNumber {
		user.MobileNumber = mobile
		changed = true
	}
	return changed, nil
}

func (s *AccountService) mergeContact(ctx context.Context, user *models.User, fullName, email, mobile string) error {
	changed, err := s.stageContact(ctx, user, fullName, email, mobile)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if err := s.users.UpdateContact(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return appErrors.Clone(appErrors.ErrConflict, "email already registered to another account")
		}
		return storeFailure(err, "failed to update account")
	}
	return nil
}

// SetStatus flips the active flag. An administrator cannot deactivate their
// own account.
func (s *AccountService) SetStatus(ctx context.Context, claims *models.JWTClaims, userID string, active bool) error {
	if claims == nil {
		return appErrors.ErrUnauthorized
	}
	if !active {
		if err := policy.CanManageAccount(claims.UserID, userID); err != nil {
			return err
		}
	}
	if err := s.users.SetActive(ctx, userID, active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return storeFailure(err, "failed to update account status")
	}
	s.logger.Info("account status changed",
		zap.String("user_id", userID),
		zap.String("actor_id", claims.UserID),
		zap.Bool("active", active))
	return nil
}

// Delete removes an account and its role profile atomically. A resident
// with outpass history is protected by the referential constraint and the
// failure is reported as a conflict, never a raw driver error.
func (s *AccountService) Delete(ctx context.Context, claims *models.JWTClaims, userID string) error {
	if claims == nil {
		return appErrors.ErrUnauthorized
	}
	if err := policy.CanManageAccount(claims.UserID, userID); err != nil {
		return err
	}
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.accounts.Delete(ctx, userID, user.Role); err != nil {
		switch {
		case errors.Is(err, repository.ErrRestricted):
			return appErrors.Clone(appErrors.ErrConflict, "account has related records and cannot be deleted")
		case errors.Is(err, sql.ErrNoRows):
			return appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return storeFailure(err, "failed to delete account")
	}
	s.logger.Info("account deleted",
		zap.String("user_id", userID),
		zap.String("actor_id", claims.UserID),
		zap.String("role", string(user.Role)))
	return nil
}

// List returns the roster for one role. The admin roster is only visible
// to SUPER_ADMIN callers.
func (s *AccountService) List(ctx context.Context, claims *models.JWTClaims, role models.UserRole) ([]dto.AccountView, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if !role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown role %q", role))
	}
	if role == models.RoleAdmin {
		if err := s.requireTier(ctx, claims, models.TierSuperAdmin); err != nil {
			return nil, err
		}
	}

	rows, err := s.accounts.ListByRole(ctx, role)
	if err != nil {
		return nil, storeFailure(err, "failed to list accounts")
	}

	views := make([]dto.AccountView, 0, len(rows))
	for _, row := range rows {
		views = append(views, accountViewFromRow(row))
	}
	return views, nil
}

// ResetPasswordByIdentity is the self-service reset: the username and the
// registered mobile number must both match. The mismatch message never
// reveals which of the two was wrong.
func (s *AccountService) ResetPasswordByIdentity(ctx context.Context, req dto.IdentityResetRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reset payload")
	}
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrValidation, "username and mobile number do not match")
		}
		return storeFailure(err, "failed to load account")
	}
	if user.MobileNumber != req.MobileNumber {
		return appErrors.Clone(appErrors.ErrValidation, "username and mobile number do not match")
	}
	return s.resetPassword(ctx, user, req.NewPassword)
}

// ResetPasswordPrivileged lets an ADMIN-tier caller reset any account.
func (s *AccountService) ResetPasswordPrivileged(ctx context.Context, claims *models.JWTClaims, req dto.PrivilegedResetRequest) error {
	if claims == nil {
		return appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reset payload")
	}
	if err := s.requireTier(ctx, claims, models.TierAdmin); err != nil {
		return err
	}
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return storeFailure(err, "failed to load account")
	}
	if err := s.resetPassword(ctx, user, req.NewPassword); err != nil {
		return err
	}
	s.logger.Info("password reset by administrator",
		zap.String("user_id", user.ID),
		zap.String("actor_id", claims.UserID))
	return nil
}

func (s *AccountService) resetPassword(ctx context.Context, user *models.User, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hash), time.Now().UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return storeFailure(err, "failed to reset password")
	}
	return nil
}

// AdminDetails returns the caller's own admin record with the normalized
// permission tier.
func (s *AccountService) AdminDetails(ctx context.Context, claims *models.JWTClaims) (*dto.AdminDetails, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	user, err := s.loadUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	profile, err := s.accounts.FindAdmin(ctx, claims.UserID)
	if err != nil {
		return nil, s.profileFailure(err)
	}
	tier, canonical := models.NormalizeTier(string(profile.PermissionTier))
	if !canonical {
		s.logger.Warn("non-canonical permission tier normalized",
			zap.String("user_id", claims.UserID),
			zap.String("raw_tier", string(profile.PermissionTier)),
			zap.String("tier", string(tier)))
	}
	return &dto.AdminDetails{
		User:           *user,
		AdminID:        profile.AdminID,
		Department:     profile.Department,
		Designation:    profile.Designation,
		PermissionTier: tier,
	}, nil
}

// SetTier sets another admin's permission tier. Only SUPER_ADMIN callers
// may change tiers, and never their own.
func (s *AccountService) SetTier(ctx context.Context, claims *models.JWTClaims, targetID string, req dto.TierRequest) error {
	if claims == nil {
		return appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid tier payload")
	}
	if claims.UserID == targetID {
		return appErrors.Clone(appErrors.ErrForbidden, "cannot change your own permission tier")
	}
	if err := s.requireTier(ctx, claims, models.TierSuperAdmin); err != nil {
		return err
	}

	tier, canonical := models.NormalizeTier(req.PermissionTier)
	if !canonical {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown permission tier %q", req.PermissionTier))
	}

	profile, err := s.accounts.FindAdmin(ctx, targetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "admin account not found")
		}
		return storeFailure(err, "failed to load admin profile")
	}
	profile.PermissionTier = tier
	if err := s.accounts.UpdateAdmin(ctx, profile); err != nil {
		return storeFailure(err, "failed to update permission tier")
	}

	s.logger.Info("permission tier changed",
		zap.String("user_id", targetID),
		zap.String("actor_id", claims.UserID),
		zap.String("tier", string(tier)))
	return nil
}

func (s *AccountService) requireTier(ctx context.Context, claims *models.JWTClaims, minimum models.PermissionTier) error {
	profile, err := s.accounts.FindAdmin(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrForbidden, "no admin profile for caller")
		}
		return storeFailure(err, "failed to load admin profile")
	}
	tier, _ := models.NormalizeTier(string(profile.PermissionTier))
	return policy.RequireTier(tier, minimum)
}

func (s *AccountService) loadUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return nil, storeFailure(err, "failed to load account")
	}
	return user, nil
}

func (s *AccountService) profileFailure(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, "role profile not found")
	}
	return storeFailure(err, "failed to load role profile")
}

func mergeString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func accountViewFromRow(row repository.AccountRow) dto.AccountView {
	view := dto.AccountView{
		User: models.User{
			ID:           row.ID,
			Username:     row.Username,
			FullName:     row.FullName,
			Email:        row.Email,
			MobileNumber: row.MobileNumber,
			Role:         row.Role,
			Active:       row.Active,
			CreatedAt:    row.CreatedAt,
		},
	}
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&view.RollNumber, row.RollNumber)
	setString(&view.Program, row.Program)
	setString(&view.Degree, row.Degree)
	setString(&view.HostelName, row.HostelName)
	setString(&view.RoomNumber, row.RoomNumber)
	if row.YearOfStudy != nil {
		view.YearOfStudy = *row.YearOfStudy
	}
	setString(&view.EmployeeID, row.EmployeeID)
	setString(&view.Department, row.Department)
	setString(&view.Designation, row.Designation)
	setString(&view.HostelAssigned, row.HostelAssigned)
	setString(&view.OfficerID, row.OfficerID)
	setString(&view.Shift, row.Shift)
	setString(&view.GateAssigned, row.GateAssigned)
	setString(&view.AdminID, row.AdminID)
	if row.PermissionTier != nil {
		tier, _ := models.NormalizeTier(*row.PermissionTier)
		view.PermissionTier = tier
	}
	return view
}
