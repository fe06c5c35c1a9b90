package service

import (
	"context"
	"fmt"

	"velora.id/homeserve/internal/dto"
	"velora.id/homeserve/internal/model"
	"velora.id/homeserve/internal/repository"
	"velora.id/homeserve/pkg/apperror"
)

// CatalogService manages categories and the services inside them.
type CatalogService interface {
	CreateCategory(ctx context.Context, input dto.CategoryInput) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, id uint, input dto.CategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
	ServiceTypes(ctx context.Context) ([]string, error)

	CreateService(ctx context.Context, input dto.ServiceInput) (*model.Service, error)
	ListServices(ctx context.Context) ([]model.Service, error)
	ListServicesByCategory(ctx context.Context, categoryID uint) ([]model.Service, error)
	UpdateService(ctx context.Context, id uint, input dto.ServiceInput) (*model.Service, error)
	DeleteService(ctx context.Context, id uint) error
}

type catalogService struct {
	categories repository.CategoryRepository
	services   repository.ServiceRepository
}

func NewCatalogService(categories repository.CategoryRepository, services repository.ServiceRepository) CatalogService {
	return &catalogService{
		categories: categories,
		services:   services,
	}
}

func (s *catalogService) CreateCategory(ctx context.Context, input dto.CategoryInput) (*model.Category, error) {
	category := &model.Category{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categories.FindAll(ctx)
}

func (s *catalogService) UpdateCategory(ctx context.Context, id uint, input dto.CategoryInput) (*model.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("category not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	category.Name = input.Name
	category.Description = input.Description
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return fmt.Errorf("category not found: %w", apperror.ErrNotFound)
		}
		return err
	}
	return nil
}

// ServiceTypes lists category names; the registration form offers them as a
// professional's specialization choices.
func (s *catalogService) ServiceTypes(ctx context.Context) ([]string, error) {
	return s.categories.ListNames(ctx)
}

func (s *catalogService) CreateService(ctx context.Context, input dto.ServiceInput) (*model.Service, error) {
	if _, err := s.categories.FindByID(ctx, input.CategoryID); err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("category not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	service := &model.Service{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		CategoryID:  input.CategoryID,
	}
	if err := s.services.Create(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *catalogService) ListServices(ctx context.Context) ([]model.Service, error) {
	return s.services.FindAll(ctx)
}

func (s *catalogService) ListServicesByCategory(ctx context.Context, categoryID uint) ([]model.Service, error) {
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("category not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return s.services.FindByCategory(ctx, categoryID)
}

func (s *catalogService) UpdateService(ctx context.Context, id uint, input dto.ServiceInput) (*model.Service, error) {
	service, err := s.services.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("service not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	service.Name = input.Name
	service.Description = input.Description
	service.Price = input.Price
	service.CategoryID = input.CategoryID
	service.Category = nil

	if err := s.services.Update(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

// DeleteService cascades over dependent service requests and feedback before
// removing the service itself.
func (s *catalogService) DeleteService(ctx context.Context, id uint) error {
	if err := s.services.DeleteWithDependents(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return fmt.Errorf("service not found: %w", apperror.ErrNotFound)
		}
		return err
	}
	return nil
}
