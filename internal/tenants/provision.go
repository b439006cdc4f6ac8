package tenants

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/rentdesk/rentdesk/internal/identity"
	"github.com/rentdesk/rentdesk/internal/policy"
	"github.com/rentdesk/rentdesk/internal/shared"
)

// IdentityStore is the slice of the identity repository provisioning needs.
type IdentityStore interface {
	CreatePrincipal(ctx context.Context, email, passwordHash string) (int64, error)
	AssignRole(ctx context.Context, principalID int64, role identity.Role) error
	DeletePrincipal(ctx context.Context, principalID int64) error
}

// PartialProvisioningError reports an interrupted provisioning run whose
// compensation also failed, leaving an orphaned principal behind for the
// reconciliation sweep to surface.
type PartialProvisioningError struct {
	PrincipalID int64
	Step        string
	Err         error
}

func (e *PartialProvisioningError) Error() string {
	return fmt.Sprintf("provisioning failed at %s, principal %d left orphaned: %v", e.Step, e.PrincipalID, e.Err)
}

func (e *PartialProvisioningError) Unwrap() error { return e.Err }

// Is lets callers match the error against shared.ErrPartialProvisioning.
func (e *PartialProvisioningError) Is(target error) bool {
	return target == shared.ErrPartialProvisioning
}

// Provisioner runs the three-step tenant provisioning saga: create the
// principal, create the linked profile, assign the tenant role. A failure
// after step one triggers compensation so the caller observes the whole
// unit as atomic.
type Provisioner struct {
	ids      IdentityStore
	repo     Repository
	logger   *slog.Logger
	validate *validator.Validate
}

// NewProvisioner constructs a Provisioner.
func NewProvisioner(ids IdentityStore, repo Repository, logger *slog.Logger) *Provisioner {
	return &Provisioner{ids: ids, repo: repo, logger: logger, validate: validator.New()}
}

// Provision creates identity, profile and role for a new tenant. Admin only.
// All field constraints are checked before the first write.
func (pv *Provisioner) Provision(ctx context.Context, p identity.Principal, req ProvisionTenantRequest) (TenantProfile, error) {
	if !policy.CanWriteTenantProfile(p) {
		return TenantProfile{}, shared.ErrForbidden
	}
	if err := pv.validate.Struct(req); err != nil {
		return TenantProfile{}, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}

	hash, err := identity.HashPassword(req.Password)
	if err != nil {
		return TenantProfile{}, err
	}

	principalID, err := pv.ids.CreatePrincipal(ctx, req.Email, hash)
	if err != nil {
		// Nothing written yet; CredentialConflict and friends pass through.
		return TenantProfile{}, err
	}

	profile, err := pv.repo.Create(ctx, TenantProfile{
		Name:              req.Name,
		RoomNo:            req.RoomNo,
		Contact:           req.Contact,
		DepositAmount:     req.DepositAmount,
		LinkedPrincipalID: &principalID,
	})
	if err != nil {
		return TenantProfile{}, pv.compensate(ctx, principalID, "create profile", err)
	}

	if err := pv.ids.AssignRole(ctx, principalID, identity.RoleTenant); err != nil {
		if delErr := pv.repo.Delete(ctx, profile.ID); delErr != nil {
			pv.logger.Error("provisioning: profile compensation failed",
				slog.Int64("profile_id", profile.ID), slog.Any("error", delErr))
			return TenantProfile{}, &PartialProvisioningError{PrincipalID: principalID, Step: "assign role", Err: err}
		}
		return TenantProfile{}, pv.compensate(ctx, principalID, "assign role", err)
	}

	return profile, nil
}

// compensate deletes the principal created in step one. If the delete itself
// fails the run is surfaced as a PartialProvisioningFailure so operators can
// clean up or retry; it is never silently ignored.
func (pv *Provisioner) compensate(ctx context.Context, principalID int64, step string, cause error) error {
	if err := pv.ids.DeletePrincipal(ctx, principalID); err != nil {
		pv.logger.Error("provisioning: principal compensation failed",
			slog.Int64("principal_id", principalID), slog.Any("error", err))
		return &PartialProvisioningError{PrincipalID: principalID, Step: step, Err: cause}
	}
	return fmt.Errorf("provisioning rolled back at %s: %w", step, cause)
}
