package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuskeep/outpass-api/internal/dto"
	"github.com/campuskeep/outpass-api/internal/models"
	"github.com/campuskeep/outpass-api/internal/policy"
	"github.com/campuskeep/outpass-api/internal/repository"
	appErrors "github.com/campuskeep/outpass-api/pkg/errors"
)

// clockSkewTolerance lets a resident request immediate departure even when
// client and server clocks drift slightly.
const clockSkewTolerance = 5 * time.Minute

// minDuration is the shortest allowed gap between leave start and expected
// return.
const minDuration = 30 * time.Minute

type outpassStore interface {
	Create(ctx context.Context, o *models.Outpass) error
	FindByID(ctx context.Context, id string) (*models.Outpass, error)
	ListByResident(ctx context.Context, residentID string) ([]models.Outpass, error)
	ListByStatus(ctx context.Context, status models.OutpassStatus, hostel string) ([]models.Outpass, error)
	ListAll(ctx context.Context, hostel string) ([]models.Outpass, error)
	UpdateContent(ctx context.Context, o *models.Outpass) (bool, error)
	Cancel(ctx context.Context, id string, expected models.OutpassStatus) (bool, error)
	Review(ctx context.Context, id string, status models.OutpassStatus, reviewerID, comments string, reviewedAt time.Time) (bool, error)
	MarkDeparture(ctx context.Context, id, officerID, comments string, departedAt time.Time) (bool, error)
	MarkReturn(ctx context.Context, id string, stamp repository.ReturnStamp) (bool, error)
}

type supervisorReader interface {
	FindSupervisor(ctx context.Context, userID string) (*models.SupervisorProfile, error)
}

// OutpassService owns the outpass lifecycle state machine. Every operation
// checks the permission policy before touching the store, and every status
// transition is compare-and-set so a concurrent loser observes the state
// error it would have seen arriving second.
type OutpassService struct {
	repo      outpassStore
	accounts  supervisorReader
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewOutpassService constructs an OutpassService.
func NewOutpassService(repo outpassStore, accounts supervisorReader, validate *validator.Validate, logger *zap.Logger) *OutpassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OutpassService{repo: repo, accounts: accounts, validator: validate, logger: logger, now: time.Now}
}

// Create validates and persists a new PENDING outpass owned by the caller.
func (s *OutpassService) Create(ctx context.Context, claims *models.JWTClaims, req dto.OutpassRequest) (*models.Outpass, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	outpass := &models.Outpass{
		ResidentID:        claims.UserID,
		Reason:            strings.TrimSpace(req.Reason),
		LeaveStartAt:      req.LeaveStartAt,
		ExpectedReturnAt:  req.ExpectedReturnAt,
		Destination:       strings.TrimSpace(req.Destination),
		EmergencyName:     req.EmergencyName,
		EmergencyNumber:   req.EmergencyNumber,
		EmergencyRelation: req.EmergencyRelation,
		Status:            models.StatusPending,
	}

	if err := s.repo.Create(ctx, outpass); err != nil {
		return nil, storeFailure(err, "failed to create outpass")
	}

	s.logger.Info("outpass created",
		zap.String("outpass_id", outpass.ID),
		zap.String("resident_id", claims.UserID),
		zap.Time("leave_start_at", outpass.LeaveStartAt))
	return outpass, nil
}

// Edit overwrites the resident-editable fields of a PENDING record.
func (s *OutpassService) Edit(ctx context.Context, claims *models.JWTClaims, id string, req dto.OutpassRequest) (*models.Outpass, error) {
	outpass, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanActOnOutpass(claims, outpass.ResidentID); err != nil {
		return nil, err
	}
	if !outpass.CanBeEdited() {
		return nil, invalidState("outpass cannot be edited in status %s", outpass.Status)
	}
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	outpass.Reason = strings.TrimSpace(req.Reason)
	outpass.LeaveStartAt = req.LeaveStartAt
	outpass.ExpectedReturnAt = req.ExpectedReturnAt
	outpass.Destination = strings.TrimSpace(req.Destination)
	outpass.EmergencyName = req.EmergencyName
	outpass.EmergencyNumber = req.EmergencyNumber
	outpass.EmergencyRelation = req.EmergencyRelation

	applied, err := s.repo.UpdateContent(ctx, outpass)
	if err != nil {
		return nil, storeFailure(err, "failed to update outpass")
	}
	if !applied {
		return nil, s.concurrentStateError(ctx, id, "outpass cannot be edited")
	}
	return outpass, nil
}

// Cancel transitions a PENDING or APPROVED record to CANCELLED.
func (s *OutpassService) Cancel(ctx context.Context, claims *models.JWTClaims, id string) error {
	outpass, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.CanActOnOutpass(claims, outpass.ResidentID); err != nil {
		return err
	}
	if !outpass.CanBeCancelled() {
		return invalidState("outpass cannot be cancelled in status %s", outpass.Status)
	}

	applied, err := s.repo.Cancel(ctx, id, outpass.Status)
	if err != nil {
		return storeFailure(err, "failed to cancel outpass")
	}
	if !applied {
		return s.concurrentStateError(ctx, id, "outpass cannot be cancelled")
	}

	s.logger.Info("outpass cancelled", zap.String("outpass_id", id), zap.String("resident_id", claims.UserID))
	return nil
}

// Review applies the supervisor's decision to a PENDING record. The
// supervisor must be assigned to the resident's hostel.
func (s *OutpassService) Review(ctx context.Context, claims *models.JWTClaims, id string, req dto.ReviewRequest) (*models.Outpass, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	outpass, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	supervisor, err := s.accounts.FindSupervisor(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "no supervisor profile for caller")
		}
		return nil, storeFailure(err, "failed to load supervisor profile")
	}
	if err := policy.CanReviewOutpass(supervisor.HostelAssigned, outpass.HostelName); err != nil {
		return nil, err
	}
	if outpass.Status != models.StatusPending {
		return nil, invalidState("only pending outpasses can be reviewed, current status %s", outpass.Status)
	}

	status := models.StatusRejected
	if req.Approved {
		status = models.StatusApproved
	}
	reviewedAt := s.now().UTC()

	applied, err := s.repo.Review(ctx, id, status, claims.UserID, req.Comments, reviewedAt)
	if err != nil {
		return nil, storeFailure(err, "failed to review outpass")
	}
	if !applied {
		return nil, s.concurrentStateError(ctx, id, "only pending outpasses can be reviewed")
	}

	outpass.Status = status
	outpass.ReviewerID = &claims.UserID
	outpass.ReviewComments = &req.Comments
	outpass.ReviewedAt = &reviewedAt

	s.logger.Info("outpass reviewed",
		zap.String("outpass_id", id),
		zap.String("reviewer_id", claims.UserID),
		zap.Bool("approved", req.Approved))
	return outpass, nil
}

// MarkDeparture transitions an APPROVED record to ACTIVE, stamping the
// acting officer and the actual departure time.
func (s *OutpassService) MarkDeparture(ctx context.Context, claims *models.JWTClaims, id string, req dto.DepartureRequest) (*models.Outpass, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	outpass, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if outpass.Status != models.StatusApproved {
		return nil, invalidState("only approved outpasses can be marked for departure, current status %s", outpass.Status)
	}

	departedAt := s.now().UTC()
	applied, err := s.repo.MarkDeparture(ctx, id, claims.UserID, req.Comments, departedAt)
	if err != nil {
		return nil, storeFailure(err, "failed to mark departure")
	}
	if !applied {
		return nil, s.concurrentStateError(ctx, id, "only approved outpasses can be marked for departure")
	}

	outpass.Status = models.StatusActive
	outpass.DepartureOfficerID = &claims.UserID
	outpass.DepartureComments = &req.Comments
	outpass.ActualDepartureAt = &departedAt

	s.logger.Info("departure marked", zap.String("outpass_id", id), zap.String("officer_id", claims.UserID))
	return outpass, nil
}

// MarkReturn transitions an ACTIVE record to COMPLETED and classifies the
// return. A return after the 24h departure window is expired-late; a return
// merely past the expected time is ordinary-late. The window breach never
// blocks completion, it only affects classification and the stored reason.
func (s *OutpassService) MarkReturn(ctx context.Context, claims *models.JWTClaims, id string, req dto.ReturnRequest) (*models.Outpass, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	outpass, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if outpass.Status != models.StatusActive {
		return nil, invalidState("only active outpasses can be marked for return, current status %s", outpass.Status)
	}

	returnedAt := s.now().UTC()
	stamp := classifyReturn(outpass, returnedAt, req)
	stamp.OfficerID = claims.UserID
	stamp.ReturnedAt = returnedAt

	applied, err := s.repo.MarkReturn(ctx, id, stamp)
	if err != nil {
		return nil, storeFailure(err, "failed to mark return")
	}
	if !applied {
		return nil, s.concurrentStateError(ctx, id, "only active outpasses can be marked for return")
	}

	outpass.Status = models.StatusCompleted
	outpass.ReturnOfficerID = &claims.UserID
	outpass.ReturnComments = &stamp.Comments
	outpass.ActualReturnAt = &returnedAt
	outpass.IsLateReturn = &stamp.IsLateReturn
	outpass.LateReturnReason = stamp.LateReturnReason

	s.logger.Info("return marked",
		zap.String("outpass_id", id),
		zap.String("officer_id", claims.UserID),
		zap.Bool("late", stamp.IsLateReturn))
	return outpass, nil
}

// Get returns a single record after a role/scope visibility check.
func (s *OutpassService) Get(ctx context.Context, claims *models.JWTClaims, id string) (*models.Outpass, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	outpass, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	var supervisorHostel string
	if claims.Role == models.RoleSupervisor {
		supervisor, err := s.accounts.FindSupervisor(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrForbidden, "no supervisor profile for caller")
			}
			return nil, storeFailure(err, "failed to load supervisor profile")
		}
		supervisorHostel = supervisor.HostelAssigned
	}

	if err := policy.CanViewOutpass(claims, outpass, supervisorHostel); err != nil {
		return nil, err
	}
	return outpass, nil
}

// ListOwn returns the caller's records, newest first.
func (s *OutpassService) ListOwn(ctx context.Context, claims *models.JWTClaims) ([]models.Outpass, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	list, err := s.repo.ListByResident(ctx, claims.UserID)
	if err != nil {
		return nil, storeFailure(err, "failed to list outpasses")
	}
	return list, nil
}

// ListByStatus returns records in one state, unscoped. Gate operations are
// hostel-agnostic; supervisor listings go through the dashboard service.
func (s *OutpassService) ListByStatus(ctx context.Context, status models.OutpassStatus) ([]models.Outpass, error) {
	list, err := s.repo.ListByStatus(ctx, status, "")
	if err != nil {
		return nil, storeFailure(err, "failed to list outpasses")
	}
	return list, nil
}

// ListAll returns every record, newest first. Used by administrative
// report exports.
func (s *OutpassService) ListAll(ctx context.Context) ([]models.Outpass, error) {
	list, err := s.repo.ListAll(ctx, "")
	if err != nil {
		return nil, storeFailure(err, "failed to list outpasses")
	}
	return list, nil
}

func (s *OutpassService) validateRequest(req dto.OutpassRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid outpass payload")
	}
	now := s.now()
	if req.LeaveStartAt.Before(now.Add(-clockSkewTolerance)) {
		return appErrors.Clone(appErrors.ErrValidation, "leave start date must be current or future time")
	}
	if !req.ExpectedReturnAt.After(req.LeaveStartAt) {
		return appErrors.Clone(appErrors.ErrValidation, "return date must be after leave start date")
	}
	if req.ExpectedReturnAt.Sub(req.LeaveStartAt) < minDuration {
		return appErrors.Clone(appErrors.ErrValidation, "minimum outpass duration is 30 minutes")
	}
	return nil
}

func (s *OutpassService) load(ctx context.Context, id string) (*models.Outpass, error) {
	outpass, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "outpass not found")
		}
		return nil, storeFailure(err, "failed to load outpass")
	}
	return outpass, nil
}

// concurrentStateError reports the state a CAS loser would have observed
// arriving second. The record existed moments ago, so a vanished row still
// maps to not-found for safety.
func (s *OutpassService) concurrentStateError(ctx context.Context, id, message string) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return appErrors.Clone(appErrors.ErrNotFound, "outpass not found")
	}
	return invalidState("%s, current status %s", message, current.Status)
}

func invalidState(format string, args ...interface{}) error {
	return appErrors.Clone(appErrors.ErrInvalidState, fmt.Sprintf(format, args...))
}

// classifyReturn computes the late/expired classification for a return at
// returnedAt. Facts live in structured fields; the comment prefix only
// distinguishes expired-window returns in the free-text trail.
func classifyReturn(outpass *models.Outpass, returnedAt time.Time, req dto.ReturnRequest) repository.ReturnStamp {
	var expired bool
	if outpass.ActualDepartureAt != nil {
		expired = returnedAt.After(outpass.ActualDepartureAt.Add(models.DepartureWindow))
	}
	late := returnedAt.After(outpass.ExpectedReturnAt)

	stamp := repository.ReturnStamp{IsLateReturn: expired || late}

	switch {
	case expired:
		stamp.Comments = "EXPIRED RETURN: " + req.Comments
		var b strings.Builder
		b.WriteString("Departure window expired (24h limit exceeded).")
		if late {
			hours := int(returnedAt.Sub(outpass.ExpectedReturnAt).Hours())
			fmt.Fprintf(&b, " Also returned %d hours after expected return time.", hours)
		}
		if reason := strings.TrimSpace(req.LateReturnReason); reason != "" {
			b.WriteString(" " + reason)
		} else {
			b.WriteString(" No specific reason provided.")
		}
		reason := b.String()
		stamp.LateReturnReason = &reason
	case late:
		stamp.Comments = "Return: " + req.Comments
		reason := strings.TrimSpace(req.LateReturnReason)
		if reason == "" {
			minutes := int(returnedAt.Sub(outpass.ExpectedReturnAt).Minutes())
			reason = fmt.Sprintf("Returned %d minutes late. No reason provided.", minutes)
		}
		stamp.LateReturnReason = &reason
	default:
		stamp.Comments = "Return: " + req.Comments
	}

	return stamp
}
