package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/campuskeep/outpass-api/internal/dto"
	"github.com/campuskeep/outpass-api/internal/models"
	"github.com/campuskeep/outpass-api/internal/policy"
	appErrors "github.com/campuskeep/outpass-api/pkg/errors"
)

const (
	recentActivityCap        = 10
	supervisorCacheKeyPrefix = "dashboard:supervisor:"
)

type dashboardOutpassStore interface {
	ListByResident(ctx context.Context, residentID string) ([]models.Outpass, error)
	ListByStatus(ctx context.Context, status models.OutpassStatus, hostel string) ([]models.Outpass, error)
	ListAll(ctx context.Context, hostel string) ([]models.Outpass, error)
	CountByStatus(ctx context.Context, status models.OutpassStatus, hostel string) (int, error)
	CountLateReturns(ctx context.Context, hostel string) (int, error)
	CountReturnedBetween(ctx context.Context, from, to time.Time) (int, error)
	ListDepartedBetween(ctx context.Context, from, to time.Time) ([]models.Outpass, error)
	ListReturnedBetween(ctx context.Context, from, to time.Time) ([]models.Outpass, error)
	ListExpectedReturnBetween(ctx context.Context, from, to time.Time) ([]models.Outpass, error)
	ListRecentMovement(ctx context.Context, hostel string, limit int) ([]models.Outpass, error)
}

type roleCounter interface {
	CountByRole(ctx context.Context, role models.UserRole) (int, error)
}

type adminReader interface {
	FindSupervisor(ctx context.Context, userID string) (*models.SupervisorProfile, error)
	FindAdmin(ctx context.Context, userID string) (*models.AdminProfile, error)
}

// DashboardService builds the role-scoped aggregate views. Supervisor
// statistics are the expensive query and get a short-lived Redis cache; a
// cache outage degrades to direct queries rather than failing the request.
type DashboardService struct {
	outpasses dashboardOutpassStore
	users     roleCounter
	accounts  adminReader
	cache     *redis.Client
	cacheTTL  time.Duration
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewDashboardService constructs a DashboardService. A nil cache client
// disables caching entirely; a nil metrics service disables cache counters.
func NewDashboardService(outpasses dashboardOutpassStore, users roleCounter, accounts adminReader, cache *redis.Client, cacheTTL time.Duration, metrics *MetricsService, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &DashboardService{
		outpasses: outpasses,
		users:     users,
		accounts:  accounts,
		cache:     cache,
		cacheTTL:  cacheTTL,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// ResidentDashboard returns the caller's own records with per-status counts.
func (s *DashboardService) ResidentDashboard(ctx context.Context, claims *models.JWTClaims) (*dto.ResidentDashboard, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	records, err := s.outpasses.ListByResident(ctx, claims.UserID)
	if err != nil {
		return nil, storeFailure(err, "failed to load resident dashboard")
	}

	dashboard := &dto.ResidentDashboard{Recent: capList(records, recentActivityCap)}
	for _, o := range records {
		tallyStatus(&dashboard.Counts, o.Status)
	}
	return dashboard, nil
}

// SupervisorHostel resolves the caller's assigned hostel. Every supervisor
// view is scoped through it.
func (s *DashboardService) SupervisorHostel(ctx context.Context, claims *models.JWTClaims) (string, error) {
	if claims == nil {
		return "", appErrors.ErrUnauthorized
	}
	profile, err := s.accounts.FindSupervisor(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrForbidden, "no supervisor profile for caller")
		}
		return "", storeFailure(err, "failed to load supervisor profile")
	}
	return profile.HostelAssigned, nil
}

// SupervisorOutpasses lists hostel-scoped records, optionally in one state.
func (s *DashboardService) SupervisorOutpasses(ctx context.Context, claims *models.JWTClaims, status models.OutpassStatus) ([]models.Outpass, error) {
	if status != "" && !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status filter %q", status))
	}
	hostel, err := s.SupervisorHostel(ctx, claims)
	if err != nil {
		return nil, err
	}
	var list []models.Outpass
	if status == "" {
		list, err = s.outpasses.ListAll(ctx, hostel)
	} else {
		list, err = s.outpasses.ListByStatus(ctx, status, hostel)
	}
	if err != nil {
		return nil, storeFailure(err, "failed to list hostel outpasses")
	}
	return list, nil
}

// SupervisorStatistics builds the hostel statistics view, serving from the
// Redis cache when possible.
func (s *DashboardService) SupervisorStatistics(ctx context.Context, claims *models.JWTClaims) (*dto.SupervisorStatistics, error) {
	hostel, err := s.SupervisorHostel(ctx, claims)
	if err != nil {
		return nil, err
	}

	if cached := s.cachedStatistics(ctx, hostel); cached != nil {
		return cached, nil
	}

	stats, err := s.buildStatistics(ctx, hostel)
	if err != nil {
		return nil, err
	}
	s.storeStatistics(ctx, hostel, stats)
	return stats, nil
}

func (s *DashboardService) buildStatistics(ctx context.Context, hostel string) (*dto.SupervisorStatistics, error) {
	stats := &dto.SupervisorStatistics{Hostel: hostel}

	records, err := s.outpasses.ListAll(ctx, hostel)
	if err != nil {
		return nil, storeFailure(err, "failed to load hostel statistics")
	}
	for _, o := range records {
		tallyStatus(&stats.Counts, o.Status)
		if o.Status == models.StatusPending {
			stats.PendingReview = append(stats.PendingReview, o)
		}
	}

	// Records that cleared review count toward approval even after they
	// moved on to ACTIVE or COMPLETED.
	approved := stats.Counts.Approved + stats.Counts.Active + stats.Counts.Completed
	stats.ApprovalRate = rate(approved, stats.Counts.Total)
	stats.RejectionRate = rate(stats.Counts.Rejected, stats.Counts.Total)

	if stats.LateReturns, err = s.outpasses.CountLateReturns(ctx, hostel); err != nil {
		return nil, storeFailure(err, "failed to count late returns")
	}
	if stats.Recent, err = s.outpasses.ListRecentMovement(ctx, hostel, recentActivityCap); err != nil {
		return nil, storeFailure(err, "failed to load recent activity")
	}
	return stats, nil
}

func (s *DashboardService) cachedStatistics(ctx context.Context, hostel string) *dto.SupervisorStatistics {
	if s.cache == nil {
		return nil
	}
	payload, err := s.cache.Get(ctx, supervisorCacheKeyPrefix+hostel).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("dashboard cache read failed", zap.String("hostel", hostel), zap.Error(err))
		}
		s.metrics.RecordCacheOperation(false)
		return nil
	}
	var stats dto.SupervisorStatistics
	if err := json.Unmarshal(payload, &stats); err != nil {
		s.logger.Warn("dashboard cache entry corrupt", zap.String("hostel", hostel), zap.Error(err))
		s.metrics.RecordCacheOperation(false)
		return nil
	}
	s.metrics.RecordCacheOperation(true)
	return &stats
}

func (s *DashboardService) storeStatistics(ctx context.Context, hostel string, stats *dto.SupervisorStatistics) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		s.logger.Warn("dashboard cache encode failed", zap.String("hostel", hostel), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, supervisorCacheKeyPrefix+hostel, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.String("hostel", hostel), zap.Error(err))
	}
}

// InvalidateSupervisorCache drops the cached statistics for one hostel.
// Called after lifecycle transitions that change the hostel's numbers.
func (s *DashboardService) InvalidateSupervisorCache(ctx context.Context, hostel string) {
	if s.cache == nil || hostel == "" {
		return
	}
	if err := s.cache.Del(ctx, supervisorCacheKeyPrefix+hostel).Err(); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.String("hostel", hostel), zap.Error(err))
	}
}

// OfficerDashboard builds the unscoped gate-side view.
func (s *DashboardService) OfficerDashboard(ctx context.Context, claims *models.JWTClaims) (*dto.OfficerDashboard, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}

	dashboard := &dto.OfficerDashboard{}
	var err error

	if dashboard.PendingDepartures, err = s.outpasses.ListByStatus(ctx, models.StatusApproved, ""); err != nil {
		return nil, storeFailure(err, "failed to load pending departures")
	}
	if dashboard.PendingReturns, err = s.outpasses.ListByStatus(ctx, models.StatusActive, ""); err != nil {
		return nil, storeFailure(err, "failed to load pending returns")
	}
	dashboard.ApprovedCount = len(dashboard.PendingDepartures)
	dashboard.ActiveCount = len(dashboard.PendingReturns)

	dayStart, dayEnd := s.localDay()
	if dashboard.CompletedToday, err = s.outpasses.CountReturnedBetween(ctx, dayStart, dayEnd); err != nil {
		return nil, storeFailure(err, "failed to count completed returns")
	}
	if dashboard.LateReturns, err = s.outpasses.CountLateReturns(ctx, ""); err != nil {
		return nil, storeFailure(err, "failed to count late returns")
	}
	if dashboard.RecentActivity, err = s.outpasses.ListRecentMovement(ctx, "", recentActivityCap); err != nil {
		return nil, storeFailure(err, "failed to load recent activity")
	}
	return dashboard, nil
}

// TodayActivity partitions gate traffic into the current local calendar day.
func (s *DashboardService) TodayActivity(ctx context.Context, claims *models.JWTClaims) (*dto.TodayActivity, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	dayStart, dayEnd := s.localDay()

	activity := &dto.TodayActivity{}
	var err error
	if activity.DeparturesToday, err = s.outpasses.ListDepartedBetween(ctx, dayStart, dayEnd); err != nil {
		return nil, storeFailure(err, "failed to load today's departures")
	}
	if activity.ReturnsToday, err = s.outpasses.ListReturnedBetween(ctx, dayStart, dayEnd); err != nil {
		return nil, storeFailure(err, "failed to load today's returns")
	}
	if activity.ExpectedReturns, err = s.outpasses.ListExpectedReturnBetween(ctx, dayStart, dayEnd); err != nil {
		return nil, storeFailure(err, "failed to load expected returns")
	}
	return activity, nil
}

// AdminDashboard reports role population counts. The admin population and
// therefore the true total are only disclosed at SUPER_ADMIN tier.
func (s *DashboardService) AdminDashboard(ctx context.Context, claims *models.JWTClaims) (*dto.AdminDashboard, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	profile, err := s.accounts.FindAdmin(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "no admin profile for caller")
		}
		return nil, storeFailure(err, "failed to load admin profile")
	}
	tier, canonical := models.NormalizeTier(string(profile.PermissionTier))
	if !canonical {
		s.logger.Warn("non-canonical permission tier normalized",
			zap.String("user_id", claims.UserID),
			zap.String("raw_tier", string(profile.PermissionTier)),
			zap.String("tier", string(tier)))
	}

	dashboard := &dto.AdminDashboard{PermissionTier: tier}
	if dashboard.Residents, err = s.users.CountByRole(ctx, models.RoleResident); err != nil {
		return nil, storeFailure(err, "failed to count residents")
	}
	if dashboard.Supervisors, err = s.users.CountByRole(ctx, models.RoleSupervisor); err != nil {
		return nil, storeFailure(err, "failed to count supervisors")
	}
	if dashboard.Officers, err = s.users.CountByRole(ctx, models.RoleOfficer); err != nil {
		return nil, storeFailure(err, "failed to count officers")
	}
	dashboard.TotalUsers = dashboard.Residents + dashboard.Supervisors + dashboard.Officers

	if tier.AtLeast(models.TierSuperAdmin) {
		admins, err := s.users.CountByRole(ctx, models.RoleAdmin)
		if err != nil {
			return nil, storeFailure(err, "failed to count admins")
		}
		dashboard.Admins = &admins
		dashboard.TotalUsers += admins
	}
	return dashboard, nil
}

// AdminTier resolves the caller's normalized permission tier for route-level
// tier gates.
func (s *DashboardService) AdminTier(ctx context.Context, claims *models.JWTClaims, minimum models.PermissionTier) (models.PermissionTier, error) {
	if claims == nil {
		return "", appErrors.ErrUnauthorized
	}
	profile, err := s.accounts.FindAdmin(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrForbidden, "no admin profile for caller")
		}
		return "", storeFailure(err, "failed to load admin profile")
	}
	tier, _ := models.NormalizeTier(string(profile.PermissionTier))
	if err := policy.RequireTier(tier, minimum); err != nil {
		return "", err
	}
	return tier, nil
}

func (s *DashboardService) localDay() (time.Time, time.Time) {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.Add(24 * time.Hour)
}

func tallyStatus(counts *dto.StatusCounts, status models.OutpassStatus) {
	counts.Total++
	switch status {
	case models.StatusPending:
		counts.Pending++
	case models.StatusApproved:
		counts.Approved++
	case models.StatusActive:
		counts.Active++
	case models.StatusRejected:
		counts.Rejected++
	case models.StatusCompleted:
		counts.Completed++
	case models.StatusCancelled:
		counts.Cancelled++
	}
}

func rate(part, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return math.Round(float64(part)/float64(total)*100*100) / 100
}

func capList(list []models.Outpass, limit int) []models.Outpass {
	if len(list) <= limit {
		return list
	}
	return list[:limit]
}
