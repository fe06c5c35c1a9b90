package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora.id/homeserve/internal/model"
	"velora.id/homeserve/pkg/apperror"
)

type visibilityFixture struct {
	users    *fakeUserRepo
	requests *fakeRequestRepo
	services *fakeServiceRepo
	svc      VisibilityService
}

func newVisibilityFixture(t *testing.T) *visibilityFixture {
	t.Helper()

	users := newFakeUserRepo()
	requests := newFakeRequestRepo()
	services := newFakeServiceRepo(requests)

	svc := NewVisibilityService(NewRoleResolver(users), requests, services, nil, 0)
	return &visibilityFixture{
		users:    users,
		requests: requests,
		services: services,
		svc:      svc,
	}
}

func (f *visibilityFixture) addRequest(t *testing.T, customerID uint, professionalID *uint, service *model.Service, remarks string) *model.ServiceRequest {
	t.Helper()

	request := &model.ServiceRequest{
		CustomerID:     customerID,
		ProfessionalID: professionalID,
		ServiceID:      service.ID,
		Service:        service,
		Status:         model.StatusRequested,
		Remarks:        remarks,
	}
	require.NoError(t, f.requests.Create(context.Background(), request))
	return request
}

func TestVisibleRequests(t *testing.T) {
	ctx := context.Background()
	f := newVisibilityFixture(t)

	admin := f.users.addUser("admin", "admin@example.com", model.RoleAdmin, true)
	pro := f.users.addUser("bob", "bob@example.com", model.RoleProfessional, true)
	alice := f.users.addUser("alice", "alice@example.com", model.RoleCustomer, true)
	dave := f.users.addUser("dave", "dave@example.com", model.RoleCustomer, true)

	plumbing := f.services.addService("Plumbing", 1)

	aliceReq := f.addRequest(t, alice.ID, &pro.ID, plumbing, "leaking sink")
	daveReq := f.addRequest(t, dave.ID, nil, plumbing, "clogged drain")

	t.Run("admin sees everything", func(t *testing.T) {
		got, err := f.svc.VisibleRequests(ctx, admin.ID)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("professional sees only assigned requests", func(t *testing.T) {
		got, err := f.svc.VisibleRequests(ctx, pro.ID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, aliceReq.ID, got[0].ID)
	})

	t.Run("customer never sees another customer's requests", func(t *testing.T) {
		got, err := f.svc.VisibleRequests(ctx, dave.ID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, daveReq.ID, got[0].ID)
		for _, request := range got {
			assert.Equal(t, dave.ID, request.CustomerID)
		}
	})

	t.Run("user without a role is denied", func(t *testing.T) {
		stranger := f.users.addUser("eve", "eve@example.com", model.RoleCustomer, true)
		f.users.users[stranger.ID].Roles = nil

		_, err := f.svc.VisibleRequests(ctx, stranger.ID)
		assert.True(t, errors.Is(err, apperror.ErrForbidden))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := f.svc.VisibleRequests(ctx, 9999)
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
	})
}

func TestSearchServices(t *testing.T) {
	ctx := context.Background()
	f := newVisibilityFixture(t)

	admin := f.users.addUser("admin", "admin@example.com", model.RoleAdmin, true)
	pro := f.users.addUser("bob", "bob@example.com", model.RoleProfessional, true)
	alice := f.users.addUser("alice", "alice@example.com", model.RoleCustomer, true)
	dave := f.users.addUser("dave", "dave@example.com", model.RoleCustomer, true)

	plumbing := f.services.addService("Plumbing", 1)
	cleaning := f.services.addService("Deep Cleaning", 1)

	f.addRequest(t, alice.ID, &pro.ID, plumbing, "pipe burst in kitchen")
	f.addRequest(t, dave.ID, nil, cleaning, "weekly visit")

	t.Run("service names match case-insensitively for every role", func(t *testing.T) {
		result, err := f.svc.SearchServices(ctx, alice.ID, "plumb")
		require.NoError(t, err)
		require.Len(t, result.Services, 1)
		assert.Equal(t, "Plumbing", result.Services[0].Name)
	})

	t.Run("admin requests union remarks and service-name matches", func(t *testing.T) {
		// "pipe" hits one request via remarks; "cleaning" hits the other
		// via its service's name.
		result, err := f.svc.SearchServices(ctx, admin.ID, "pipe")
		require.NoError(t, err)
		require.Len(t, result.ServiceRequests, 1)
		assert.Equal(t, "pipe burst in kitchen", result.ServiceRequests[0].Remarks)

		result, err = f.svc.SearchServices(ctx, admin.ID, "cleaning")
		require.NoError(t, err)
		require.Len(t, result.ServiceRequests, 1)
		assert.Equal(t, "weekly visit", result.ServiceRequests[0].Remarks)
	})

	t.Run("customer request scope ignores the query", func(t *testing.T) {
		result, err := f.svc.SearchServices(ctx, dave.ID, "plumb")
		require.NoError(t, err)
		require.Len(t, result.ServiceRequests, 1)
		assert.Equal(t, dave.ID, result.ServiceRequests[0].CustomerID)
	})

	t.Run("professional request scope is their assignments", func(t *testing.T) {
		result, err := f.svc.SearchServices(ctx, pro.ID, "anything")
		require.NoError(t, err)
		require.Len(t, result.ServiceRequests, 1)
		require.NotNil(t, result.ServiceRequests[0].ProfessionalID)
		assert.Equal(t, pro.ID, *result.ServiceRequests[0].ProfessionalID)
	})

	t.Run("user without a role is denied", func(t *testing.T) {
		stranger := f.users.addUser("eve", "eve@example.com", model.RoleCustomer, true)
		f.users.users[stranger.ID].Roles = nil

		_, err := f.svc.SearchServices(ctx, stranger.ID, "plumb")
		assert.True(t, errors.Is(err, apperror.ErrForbidden))
	})
}
