package service

import (
	"context"
	"fmt"
	"time"

	"velora.id/homeserve/internal/cache"
	"velora.id/homeserve/internal/dto"
	"velora.id/homeserve/internal/model"
	"velora.id/homeserve/internal/repository"
	"velora.id/homeserve/pkg/apperror"
)

// VisibilityService scopes reads by role: admins see every request,
// professionals see their assignments, customers see their own.
type VisibilityService interface {
	VisibleRequests(ctx context.Context, userID uint) ([]model.ServiceRequest, error)
	SearchServices(ctx context.Context, userID uint, query string) (*dto.SearchResult, error)
}

type visibilityService struct {
	resolver RoleResolver
	requests repository.RequestRepository
	services repository.ServiceRepository
	cache    *cache.Cache
	cacheTTL time.Duration
}

func NewVisibilityService(
	resolver RoleResolver,
	requests repository.RequestRepository,
	services repository.ServiceRepository,
	searchCache *cache.Cache,
	cacheTTL time.Duration,
) VisibilityService {
	return &visibilityService{
		resolver: resolver,
		requests: requests,
		services: services,
		cache:    searchCache,
		cacheTTL: cacheTTL,
	}
}

func (s *visibilityService) VisibleRequests(ctx context.Context, userID uint) ([]model.ServiceRequest, error) {
	roles, err := s.resolver.RolesOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch {
	case roles.Has(model.RoleAdmin):
		return s.requests.FindAll(ctx)
	case roles.Has(model.RoleProfessional):
		return s.requests.FindByProfessional(ctx, userID)
	case roles.Has(model.RoleCustomer):
		return s.requests.FindByCustomer(ctx, userID)
	}
	return nil, fmt.Errorf("user holds no marketplace role: %w", apperror.ErrForbidden)
}

// SearchServices matches service names case-insensitively for every role.
// The request side stays role-scoped: admins additionally get requests whose
// remarks or service name match the query, professionals and customers get
// their visibility scope unfiltered.
func (s *visibilityService) SearchServices(ctx context.Context, userID uint, query string) (*dto.SearchResult, error) {
	roles, err := s.resolver.RolesOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !roles.HasAny(model.RoleAdmin, model.RoleProfessional, model.RoleCustomer) {
		return nil, fmt.Errorf("user holds no marketplace role: %w", apperror.ErrForbidden)
	}

	key := cache.Key("search", fmt.Sprint(userID), query)
	var cached dto.SearchResult
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	services, err := s.services.SearchByName(ctx, query)
	if err != nil {
		return nil, err
	}

	var requests []model.ServiceRequest
	switch {
	case roles.Has(model.RoleAdmin):
		requests, err = s.requests.SearchForAdmin(ctx, query)
	case roles.Has(model.RoleProfessional):
		requests, err = s.requests.FindByProfessional(ctx, userID)
	default:
		requests, err = s.requests.FindByCustomer(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	result := &dto.SearchResult{
		Services:        services,
		ServiceRequests: requests,
	}
	_ = s.cache.SetJSON(ctx, key, result, s.cacheTTL)

	return result, nil
}
