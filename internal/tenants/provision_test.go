package tenants

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rentdesk/rentdesk/internal/identity"
	"github.com/rentdesk/rentdesk/internal/shared"
)

type memoryIdentityStore struct {
	nextID     int64
	principals map[int64]string
	roles      map[int64]identity.Role

	failCreate error
	failAssign error
	failDelete error
}

func newMemoryIdentityStore() *memoryIdentityStore {
	return &memoryIdentityStore{
		nextID:     1000,
		principals: map[int64]string{},
		roles:      map[int64]identity.Role{},
	}
}

func (s *memoryIdentityStore) CreatePrincipal(_ context.Context, email, _ string) (int64, error) {
	if s.failCreate != nil {
		return 0, s.failCreate
	}
	s.nextID++
	s.principals[s.nextID] = email
	return s.nextID, nil
}

func (s *memoryIdentityStore) AssignRole(_ context.Context, principalID int64, role identity.Role) error {
	if s.failAssign != nil {
		return s.failAssign
	}
	s.roles[principalID] = role
	return nil
}

func (s *memoryIdentityStore) DeletePrincipal(_ context.Context, principalID int64) error {
	if s.failDelete != nil {
		return s.failDelete
	}
	delete(s.principals, principalID)
	delete(s.roles, principalID)
	return nil
}

type memoryRepository struct {
	nextID   int64
	profiles map[int64]TenantProfile

	failCreate error
	failDelete error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{nextID: 0, profiles: map[int64]TenantProfile{}}
}

func (r *memoryRepository) List(_ context.Context, req ListTenantsRequest) ([]TenantProfile, error) {
	var out []TenantProfile
	for _, p := range r.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (r *memoryRepository) Get(_ context.Context, id int64) (TenantProfile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return TenantProfile{}, shared.ErrNotFound
	}
	return p, nil
}

func (r *memoryRepository) Create(_ context.Context, profile TenantProfile) (TenantProfile, error) {
	if r.failCreate != nil {
		return TenantProfile{}, r.failCreate
	}
	r.nextID++
	profile.ID = r.nextID
	profile.CreatedAt = time.Now()
	r.profiles[profile.ID] = profile
	return profile, nil
}

func (r *memoryRepository) Update(_ context.Context, id int64, profile TenantProfile) error {
	if _, ok := r.profiles[id]; !ok {
		return shared.ErrNotFound
	}
	profile.ID = id
	r.profiles[id] = profile
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id int64) error {
	if r.failDelete != nil {
		return r.failDelete
	}
	if _, ok := r.profiles[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.profiles, id)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func admin() identity.Principal {
	return identity.Principal{ID: 1, Email: "admin@test.local", Role: identity.RoleAdmin}
}

func validProvisionRequest() ProvisionTenantRequest {
	return ProvisionTenantRequest{
		Name:          "Alice Tan",
		RoomNo:        "A-101",
		Contact:       "08123456789",
		DepositAmount: 500,
		Email:         "alice@test.local",
		Password:      "sup3rsecret",
	}
}

func TestProvisionCreatesPrincipalProfileAndRole(t *testing.T) {
	ids := newMemoryIdentityStore()
	repo := newMemoryRepository()
	pv := NewProvisioner(ids, repo, testLogger())

	profile, err := pv.Provision(context.Background(), admin(), validProvisionRequest())
	require.NoError(t, err)
	require.NotZero(t, profile.ID)
	require.NotNil(t, profile.LinkedPrincipalID)

	require.Equal(t, "alice@test.local", ids.principals[*profile.LinkedPrincipalID])
	require.Equal(t, identity.RoleTenant, ids.roles[*profile.LinkedPrincipalID])
	require.Len(t, repo.profiles, 1)
}

func TestProvisionRejectsNonAdmin(t *testing.T) {
	tenantID := int64(3)
	p := identity.Principal{ID: 7, Role: identity.RoleTenant, TenantID: &tenantID}
	pv := NewProvisioner(newMemoryIdentityStore(), newMemoryRepository(), testLogger())

	_, err := pv.Provision(context.Background(), p, validProvisionRequest())
	require.ErrorIs(t, err, shared.ErrForbidden)
}

func TestProvisionValidatesBeforeFirstWrite(t *testing.T) {
	ids := newMemoryIdentityStore()
	repo := newMemoryRepository()
	pv := NewProvisioner(ids, repo, testLogger())

	req := validProvisionRequest()
	req.Contact = "123" // below minimum length

	_, err := pv.Provision(context.Background(), admin(), req)
	require.ErrorIs(t, err, shared.ErrValidation)
	require.Empty(t, ids.principals)
	require.Empty(t, repo.profiles)
}

func TestProvisionCredentialConflictPassesThrough(t *testing.T) {
	ids := newMemoryIdentityStore()
	ids.failCreate = shared.ErrCredentialConflict
	pv := NewProvisioner(ids, newMemoryRepository(), testLogger())

	_, err := pv.Provision(context.Background(), admin(), validProvisionRequest())
	require.ErrorIs(t, err, shared.ErrCredentialConflict)
}

func TestProvisionCompensatesOnProfileFailure(t *testing.T) {
	ids := newMemoryIdentityStore()
	repo := newMemoryRepository()
	repo.failCreate = errors.New("profiles table unavailable")
	pv := NewProvisioner(ids, repo, testLogger())

	_, err := pv.Provision(context.Background(), admin(), validProvisionRequest())
	require.Error(t, err)
	require.NotErrorIs(t, err, shared.ErrPartialProvisioning)
	require.Empty(t, ids.principals, "compensation must delete the step-one principal")
}

func TestProvisionCompensatesOnRoleFailure(t *testing.T) {
	ids := newMemoryIdentityStore()
	ids.failAssign = errors.New("user_roles table unavailable")
	repo := newMemoryRepository()
	pv := NewProvisioner(ids, repo, testLogger())

	_, err := pv.Provision(context.Background(), admin(), validProvisionRequest())
	require.Error(t, err)
	require.NotErrorIs(t, err, shared.ErrPartialProvisioning)
	require.Empty(t, ids.principals)
	require.Empty(t, repo.profiles)
}

func TestProvisionReportsPartialFailureWhenCompensationFails(t *testing.T) {
	ids := newMemoryIdentityStore()
	ids.failAssign = errors.New("user_roles table unavailable")
	ids.failDelete = errors.New("principals table unavailable")
	repo := newMemoryRepository()
	pv := NewProvisioner(ids, repo, testLogger())

	_, err := pv.Provision(context.Background(), admin(), validProvisionRequest())
	require.ErrorIs(t, err, shared.ErrPartialProvisioning)

	var partial *PartialProvisioningError
	require.ErrorAs(t, err, &partial)
	require.NotZero(t, partial.PrincipalID)
	require.Equal(t, "assign role", partial.Step)
	require.Contains(t, ids.principals, partial.PrincipalID, "orphaned principal stays behind")
}
