// Package policy holds the pure permission-decision functions evaluated
// before any lifecycle or query operation touches the record store.
package policy

import (
	appErrors "github.com/campuskeep/outpass-api/pkg/errors"

	"github.com/campuskeep/outpass-api/internal/models"
)

// CanActOnOutpass checks resident ownership for create/edit/cancel actions.
func CanActOnOutpass(claims *models.JWTClaims, ownerID string) error {
	if claims == nil {
		return appErrors.ErrUnauthorized
	}
	if claims.Role != models.RoleResident || claims.UserID != ownerID {
		return appErrors.Clone(appErrors.ErrForbidden, "you can only act on your own outpass")
	}
	return nil
}

// CanReviewOutpass checks that the supervisor's assigned hostel matches the
// resident's hostel. Review is hostel-scoped; the lifecycle engine enforces
// the PENDING requirement separately.
func CanReviewOutpass(supervisorHostel, residentHostel string) error {
	if supervisorHostel == "" || supervisorHostel != residentHostel {
		return appErrors.Clone(appErrors.ErrForbidden, "outpass belongs to a different hostel")
	}
	return nil
}

// CanViewOutpass decides single-record visibility. Residents see their own
// records, supervisors see their hostel's, officers and admins see all
// (gate operations are hostel-agnostic).
func CanViewOutpass(claims *models.JWTClaims, record *models.Outpass, supervisorHostel string) error {
	if claims == nil {
		return appErrors.ErrUnauthorized
	}
	switch claims.Role {
	case models.RoleResident:
		if record.ResidentID != claims.UserID {
			return appErrors.Clone(appErrors.ErrForbidden, "you can only view your own outpass")
		}
	case models.RoleSupervisor:
		if err := CanReviewOutpass(supervisorHostel, record.HostelName); err != nil {
			return err
		}
	case models.RoleOfficer, models.RoleAdmin:
	default:
		return appErrors.ErrForbidden
	}
	return nil
}

// RequireTier gates admin sub-resources on a minimum permission tier.
func RequireTier(tier, minimum models.PermissionTier) error {
	if !tier.AtLeast(minimum) {
		return appErrors.Clone(appErrors.ErrForbidden, "insufficient permission tier")
	}
	return nil
}

// CanManageAccount applies the self-protection rule: an administrator may
// not delete or deactivate their own identity record.
func CanManageAccount(actorID, targetID string) error {
	if actorID == targetID {
		return appErrors.Clone(appErrors.ErrForbidden, "administrators cannot deactivate or delete their own account")
	}
	return nil
}
