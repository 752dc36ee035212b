package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskeep/outpass-api/internal/models"
	appErrors "github.com/campuskeep/outpass-api/pkg/errors"
)

func TestCanActOnOutpass(t *testing.T) {
	owner := &models.JWTClaims{UserID: "r-1", Role: models.RoleResident}
	assert.NoError(t, CanActOnOutpass(owner, "r-1"))

	other := &models.JWTClaims{UserID: "r-2", Role: models.RoleResident}
	err := CanActOnOutpass(other, "r-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	supervisor := &models.JWTClaims{UserID: "r-1", Role: models.RoleSupervisor}
	assert.Error(t, CanActOnOutpass(supervisor, "r-1"))

	assert.Equal(t, appErrors.ErrUnauthorized, CanActOnOutpass(nil, "r-1"))
}

func TestCanReviewOutpass(t *testing.T) {
	assert.NoError(t, CanReviewOutpass("North Block", "North Block"))
	assert.Error(t, CanReviewOutpass("North Block", "South Block"))
	assert.Error(t, CanReviewOutpass("", ""))
}

func TestCanViewOutpass(t *testing.T) {
	record := &models.Outpass{ResidentID: "r-1", HostelName: "North Block"}

	assert.NoError(t, CanViewOutpass(&models.JWTClaims{UserID: "r-1", Role: models.RoleResident}, record, ""))
	assert.Error(t, CanViewOutpass(&models.JWTClaims{UserID: "r-2", Role: models.RoleResident}, record, ""))

	assert.NoError(t, CanViewOutpass(&models.JWTClaims{UserID: "s-1", Role: models.RoleSupervisor}, record, "North Block"))
	assert.Error(t, CanViewOutpass(&models.JWTClaims{UserID: "s-1", Role: models.RoleSupervisor}, record, "South Block"))

	assert.NoError(t, CanViewOutpass(&models.JWTClaims{UserID: "o-1", Role: models.RoleOfficer}, record, ""))
	assert.NoError(t, CanViewOutpass(&models.JWTClaims{UserID: "a-1", Role: models.RoleAdmin}, record, ""))

	assert.Error(t, CanViewOutpass(&models.JWTClaims{UserID: "x-1", Role: models.UserRole("GHOST")}, record, ""))
	assert.Equal(t, appErrors.ErrUnauthorized, CanViewOutpass(nil, record, ""))
}

func TestRequireTier(t *testing.T) {
	assert.NoError(t, RequireTier(models.TierSuperAdmin, models.TierAdmin))
	assert.NoError(t, RequireTier(models.TierAdmin, models.TierAdmin))
	assert.Error(t, RequireTier(models.TierModerator, models.TierAdmin))
	assert.Error(t, RequireTier(models.TierViewer, models.TierSuperAdmin))
}

func TestCanManageAccount(t *testing.T) {
	assert.NoError(t, CanManageAccount("a-1", "u-2"))

	err := CanManageAccount("a-1", "a-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}
