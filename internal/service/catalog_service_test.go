package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora.id/homeserve/internal/dto"
	"velora.id/homeserve/internal/model"
	"velora.id/homeserve/pkg/apperror"
)

type catalogFixture struct {
	categories *fakeCategoryRepo
	services   *fakeServiceRepo
	requests   *fakeRequestRepo
	svc        CatalogService
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()

	categories := newFakeCategoryRepo()
	requests := newFakeRequestRepo()
	services := newFakeServiceRepo(requests)

	return &catalogFixture{
		categories: categories,
		services:   services,
		requests:   requests,
		svc:        NewCatalogService(categories, services),
	}
}

func TestCategoryCRUD(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)

	created, err := f.svc.CreateCategory(ctx, dto.CategoryInput{Name: "Home Repair"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	updated, err := f.svc.UpdateCategory(ctx, created.ID, dto.CategoryInput{Name: "Home Maintenance"})
	require.NoError(t, err)
	assert.Equal(t, "Home Maintenance", updated.Name)

	listed, err := f.svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Home Maintenance", listed[0].Name)

	require.NoError(t, f.svc.DeleteCategory(ctx, created.ID))

	err = f.svc.DeleteCategory(ctx, created.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	_, err = f.svc.UpdateCategory(ctx, created.ID, dto.CategoryInput{Name: "x"})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestServiceTypes(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)

	_, err := f.svc.CreateCategory(ctx, dto.CategoryInput{Name: "Cleaning"})
	require.NoError(t, err)
	_, err = f.svc.CreateCategory(ctx, dto.CategoryInput{Name: "Repair"})
	require.NoError(t, err)

	names, err := f.svc.ServiceTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cleaning", "Repair"}, names)
}

func TestCreateService(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)

	t.Run("requires an existing category", func(t *testing.T) {
		_, err := f.svc.CreateService(ctx, dto.ServiceInput{Name: "Plumbing", CategoryID: 42})
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
	})

	t.Run("creates under its category", func(t *testing.T) {
		category, err := f.svc.CreateCategory(ctx, dto.CategoryInput{Name: "Repair"})
		require.NoError(t, err)

		service, err := f.svc.CreateService(ctx, dto.ServiceInput{
			Name:       "Plumbing",
			Price:      150,
			CategoryID: category.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, category.ID, service.CategoryID)

		byCategory, err := f.svc.ListServicesByCategory(ctx, category.ID)
		require.NoError(t, err)
		require.Len(t, byCategory, 1)
		assert.Equal(t, "Plumbing", byCategory[0].Name)
	})
}

func TestDeleteServiceCascades(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)

	category, err := f.svc.CreateCategory(ctx, dto.CategoryInput{Name: "Repair"})
	require.NoError(t, err)

	service, err := f.svc.CreateService(ctx, dto.ServiceInput{Name: "Plumbing", CategoryID: category.ID})
	require.NoError(t, err)

	request := &model.ServiceRequest{CustomerID: 1, ServiceID: service.ID, Status: model.StatusRequested}
	require.NoError(t, f.requests.Create(ctx, request))

	require.NoError(t, f.svc.DeleteService(ctx, service.ID))

	_, err = f.requests.FindByID(ctx, request.ID)
	assert.Error(t, err, "dependent requests go with the service")

	err = f.svc.DeleteService(ctx, service.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
