package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskeep/outpass-api/internal/models"
	appErrors "github.com/campuskeep/outpass-api/pkg/errors"
)

type fakeDashboardStore struct {
	residentRecords []models.Outpass
	hostelRecords   []models.Outpass
	statusRecords   []models.Outpass
	lateReturns     int
	returnedToday   int
	recent          []models.Outpass

	departedToday []models.Outpass
	returnedList  []models.Outpass
	expectedList  []models.Outpass

	listAllHostel string
	statusAsked   models.OutpassStatus
}

func (f *fakeDashboardStore) ListByResident(context.Context, string) ([]models.Outpass, error) {
	return f.residentRecords, nil
}

func (f *fakeDashboardStore) ListByStatus(_ context.Context, status models.OutpassStatus, _ string) ([]models.Outpass, error) {
	f.statusAsked = status
	return f.statusRecords, nil
}

func (f *fakeDashboardStore) ListAll(_ context.Context, hostel string) ([]models.Outpass, error) {
	f.listAllHostel = hostel
	return f.hostelRecords, nil
}

func (f *fakeDashboardStore) CountByStatus(context.Context, models.OutpassStatus, string) (int, error) {
	return 0, nil
}

func (f *fakeDashboardStore) CountLateReturns(context.Context, string) (int, error) {
	return f.lateReturns, nil
}

func (f *fakeDashboardStore) CountReturnedBetween(context.Context, time.Time, time.Time) (int, error) {
	return f.returnedToday, nil
}

func (f *fakeDashboardStore) ListDepartedBetween(context.Context, time.Time, time.Time) ([]models.Outpass, error) {
	return f.departedToday, nil
}

func (f *fakeDashboardStore) ListReturnedBetween(context.Context, time.Time, time.Time) ([]models.Outpass, error) {
	return f.returnedList, nil
}

func (f *fakeDashboardStore) ListExpectedReturnBetween(context.Context, time.Time, time.Time) ([]models.Outpass, error) {
	return f.expectedList, nil
}

func (f *fakeDashboardStore) ListRecentMovement(context.Context, string, int) ([]models.Outpass, error) {
	return f.recent, nil
}

type fakeRoleCounter struct {
	counts map[models.UserRole]int
}

func (f *fakeRoleCounter) CountByRole(_ context.Context, role models.UserRole) (int, error) {
	return f.counts[role], nil
}

type fakeAdminReader struct {
	supervisor *models.SupervisorProfile
	admin      *models.AdminProfile
}

func (f *fakeAdminReader) FindSupervisor(context.Context, string) (*models.SupervisorProfile, error) {
	if f.supervisor == nil {
		return nil, sql.ErrNoRows
	}
	return f.supervisor, nil
}

func (f *fakeAdminReader) FindAdmin(context.Context, string) (*models.AdminProfile, error) {
	if f.admin == nil {
		return nil, sql.ErrNoRows
	}
	return f.admin, nil
}

func withStatuses(statuses ...models.OutpassStatus) []models.Outpass {
	records := make([]models.Outpass, 0, len(statuses))
	for i, status := range statuses {
		records = append(records, models.Outpass{ID: string(rune('a' + i)), Status: status})
	}
	return records
}

func TestDashboardRate(t *testing.T) {
	assert.Equal(t, 0.0, rate(0, 0))
	assert.Equal(t, 50.0, rate(1, 2))
	assert.Equal(t, 33.33, rate(1, 3))
	assert.Equal(t, 66.67, rate(2, 3))
	assert.Equal(t, 100.0, rate(3, 3))
}

func TestResidentDashboardCounts(t *testing.T) {
	store := &fakeDashboardStore{
		residentRecords: withStatuses(
			models.StatusPending, models.StatusPending, models.StatusApproved,
			models.StatusCompleted, models.StatusCancelled,
		),
	}
	svc := NewDashboardService(store, nil, nil, nil, 0, nil, nil)

	dashboard, err := svc.ResidentDashboard(context.Background(), residentClaims("r-1"))
	require.NoError(t, err)
	assert.Equal(t, 2, dashboard.Counts.Pending)
	assert.Equal(t, 1, dashboard.Counts.Approved)
	assert.Equal(t, 1, dashboard.Counts.Completed)
	assert.Equal(t, 1, dashboard.Counts.Cancelled)
	assert.Equal(t, 5, dashboard.Counts.Total)
	assert.Len(t, dashboard.Recent, 5)
}

func TestResidentDashboardCapsRecent(t *testing.T) {
	statuses := make([]models.OutpassStatus, 14)
	for i := range statuses {
		statuses[i] = models.StatusCompleted
	}
	store := &fakeDashboardStore{residentRecords: withStatuses(statuses...)}
	svc := NewDashboardService(store, nil, nil, nil, 0, nil, nil)

	dashboard, err := svc.ResidentDashboard(context.Background(), residentClaims("r-1"))
	require.NoError(t, err)
	assert.Len(t, dashboard.Recent, recentActivityCap)
	assert.Equal(t, 14, dashboard.Counts.Total)
}

func TestSupervisorStatisticsRates(t *testing.T) {
	store := &fakeDashboardStore{
		hostelRecords: withStatuses(
			models.StatusPending,
			models.StatusApproved,
			models.StatusActive,
			models.StatusCompleted,
			models.StatusRejected,
			models.StatusCancelled,
		),
		lateReturns: 2,
	}
	accounts := &fakeAdminReader{supervisor: &models.SupervisorProfile{HostelAssigned: "North Block"}}
	svc := NewDashboardService(store, nil, accounts, nil, 0, nil, nil)

	claims := &models.JWTClaims{UserID: "s-1", Role: models.RoleSupervisor}
	stats, err := svc.SupervisorStatistics(context.Background(), claims)
	require.NoError(t, err)
	assert.Equal(t, "North Block", stats.Hostel)
	assert.Equal(t, "North Block", store.listAllHostel)
	// APPROVED, ACTIVE and COMPLETED all cleared review: 3 of 6.
	assert.Equal(t, 50.0, stats.ApprovalRate)
	assert.Equal(t, 16.67, stats.RejectionRate)
	assert.Equal(t, 2, stats.LateReturns)
	assert.Len(t, stats.PendingReview, 1)
}

func TestSupervisorStatisticsEmptyHostel(t *testing.T) {
	store := &fakeDashboardStore{}
	accounts := &fakeAdminReader{supervisor: &models.SupervisorProfile{HostelAssigned: "North Block"}}
	svc := NewDashboardService(store, nil, accounts, nil, 0, nil, nil)

	claims := &models.JWTClaims{UserID: "s-1", Role: models.RoleSupervisor}
	stats, err := svc.SupervisorStatistics(context.Background(), claims)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.ApprovalRate)
	assert.Equal(t, 0.0, stats.RejectionRate)
	assert.Equal(t, 0, stats.Counts.Total)
}

func TestSupervisorOutpassesStatusFilter(t *testing.T) {
	store := &fakeDashboardStore{statusRecords: withStatuses(models.StatusPending)}
	accounts := &fakeAdminReader{supervisor: &models.SupervisorProfile{HostelAssigned: "North Block"}}
	svc := NewDashboardService(store, nil, accounts, nil, 0, nil, nil)

	claims := &models.JWTClaims{UserID: "s-1", Role: models.RoleSupervisor}
	list, err := svc.SupervisorOutpasses(context.Background(), claims, models.StatusPending)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, models.StatusPending, store.statusAsked)

	store.hostelRecords = withStatuses(models.StatusPending, models.StatusCompleted)
	list, err = svc.SupervisorOutpasses(context.Background(), claims, "")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestSupervisorOutpassesUnknownStatusFilter(t *testing.T) {
	accounts := &fakeAdminReader{supervisor: &models.SupervisorProfile{HostelAssigned: "North Block"}}
	svc := NewDashboardService(&fakeDashboardStore{}, nil, accounts, nil, 0, nil, nil)

	claims := &models.JWTClaims{UserID: "s-1", Role: models.RoleSupervisor}
	_, err := svc.SupervisorOutpasses(context.Background(), claims, models.OutpassStatus("FINISHED"))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "unknown status filter")
}

func TestSupervisorViewsWithoutProfile(t *testing.T) {
	svc := NewDashboardService(&fakeDashboardStore{}, nil, &fakeAdminReader{}, nil, 0, nil, nil)

	claims := &models.JWTClaims{UserID: "s-1", Role: models.RoleSupervisor}
	_, err := svc.SupervisorStatistics(context.Background(), claims)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestOfficerDashboard(t *testing.T) {
	store := &fakeDashboardStore{
		statusRecords: withStatuses(models.StatusApproved, models.StatusApproved),
		returnedToday: 3,
		lateReturns:   1,
	}
	svc := NewDashboardService(store, nil, nil, nil, 0, nil, nil)

	claims := &models.JWTClaims{UserID: "o-1", Role: models.RoleOfficer}
	dashboard, err := svc.OfficerDashboard(context.Background(), claims)
	require.NoError(t, err)
	assert.Equal(t, 2, dashboard.ApprovedCount)
	assert.Equal(t, 2, dashboard.ActiveCount)
	assert.Equal(t, 3, dashboard.CompletedToday)
	assert.Equal(t, 1, dashboard.LateReturns)
}

func TestTodayActivityPartitions(t *testing.T) {
	store := &fakeDashboardStore{
		departedToday: withStatuses(models.StatusActive),
		returnedList:  withStatuses(models.StatusCompleted, models.StatusCompleted),
		expectedList:  withStatuses(models.StatusActive, models.StatusActive, models.StatusActive),
	}
	svc := NewDashboardService(store, nil, nil, nil, 0, nil, nil)

	claims := &models.JWTClaims{UserID: "o-1", Role: models.RoleOfficer}
	activity, err := svc.TodayActivity(context.Background(), claims)
	require.NoError(t, err)
	assert.Len(t, activity.DeparturesToday, 1)
	assert.Len(t, activity.ReturnsToday, 2)
	assert.Len(t, activity.ExpectedReturns, 3)
}

func TestAdminDashboardTierGating(t *testing.T) {
	users := &fakeRoleCounter{counts: map[models.UserRole]int{
		models.RoleResident:   100,
		models.RoleSupervisor: 5,
		models.RoleOfficer:    8,
		models.RoleAdmin:      3,
	}}

	t.Run("moderator hides admin population", func(t *testing.T) {
		accounts := &fakeAdminReader{admin: &models.AdminProfile{PermissionTier: models.TierModerator}}
		svc := NewDashboardService(&fakeDashboardStore{}, users, accounts, nil, 0, nil, nil)

		claims := &models.JWTClaims{UserID: "a-1", Role: models.RoleAdmin}
		dashboard, err := svc.AdminDashboard(context.Background(), claims)
		require.NoError(t, err)
		assert.Nil(t, dashboard.Admins)
		assert.Equal(t, 113, dashboard.TotalUsers)
		assert.Equal(t, models.TierModerator, dashboard.PermissionTier)
	})

	t.Run("super admin sees the full picture", func(t *testing.T) {
		accounts := &fakeAdminReader{admin: &models.AdminProfile{PermissionTier: models.TierSuperAdmin}}
		svc := NewDashboardService(&fakeDashboardStore{}, users, accounts, nil, 0, nil, nil)

		claims := &models.JWTClaims{UserID: "a-1", Role: models.RoleAdmin}
		dashboard, err := svc.AdminDashboard(context.Background(), claims)
		require.NoError(t, err)
		require.NotNil(t, dashboard.Admins)
		assert.Equal(t, 3, *dashboard.Admins)
		assert.Equal(t, 116, dashboard.TotalUsers)
	})

	t.Run("legacy tier string normalizes", func(t *testing.T) {
		accounts := &fakeAdminReader{admin: &models.AdminProfile{PermissionTier: "STANDARD"}}
		svc := NewDashboardService(&fakeDashboardStore{}, users, accounts, nil, 0, nil, nil)

		claims := &models.JWTClaims{UserID: "a-1", Role: models.RoleAdmin}
		dashboard, err := svc.AdminDashboard(context.Background(), claims)
		require.NoError(t, err)
		assert.Equal(t, models.TierAdmin, dashboard.PermissionTier)
		assert.Nil(t, dashboard.Admins)
	})
}

func TestAdminTierGate(t *testing.T) {
	accounts := &fakeAdminReader{admin: &models.AdminProfile{PermissionTier: models.TierModerator}}
	svc := NewDashboardService(&fakeDashboardStore{}, nil, accounts, nil, 0, nil, nil)

	claims := &models.JWTClaims{UserID: "a-1", Role: models.RoleAdmin}
	_, err := svc.AdminTier(context.Background(), claims, models.TierSuperAdmin)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	tier, err := svc.AdminTier(context.Background(), claims, models.TierViewer)
	require.NoError(t, err)
	assert.Equal(t, models.TierModerator, tier)
}
