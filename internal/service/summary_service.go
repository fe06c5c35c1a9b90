package service

import (
	"context"
	"fmt"
	"time"

	"velora.id/homeserve/internal/cache"
	"velora.id/homeserve/internal/dto"
	"velora.id/homeserve/internal/model"
	"velora.id/homeserve/internal/repository"
)

const topServicesLimit = 5

// SummaryService computes role-specific statistics. Every view is a plain
// read over the store at call time; the cache in front only shortens the
// window between recomputations, it carries no invalidation logic.
type SummaryService interface {
	AdminSummary(ctx context.Context) (*dto.AdminSummary, error)
	ProfessionalSummary(ctx context.Context, professionalID uint) (*dto.RoleSummary, error)
	CustomerSummary(ctx context.Context, customerID uint) (*dto.RoleSummary, error)
}

type summaryService struct {
	users      repository.UserRepository
	requests   repository.RequestRepository
	services   repository.ServiceRepository
	categories repository.CategoryRepository
	cache      *cache.Cache
	cacheTTL   time.Duration
}

func NewSummaryService(
	users repository.UserRepository,
	requests repository.RequestRepository,
	services repository.ServiceRepository,
	categories repository.CategoryRepository,
	summaryCache *cache.Cache,
	cacheTTL time.Duration,
) SummaryService {
	return &summaryService{
		users:      users,
		requests:   requests,
		services:   services,
		categories: categories,
		cache:      summaryCache,
		cacheTTL:   cacheTTL,
	}
}

// AdminSummary counts professionals regardless of their active flag.
// "Pending" here means any request whose status is not closed.
func (s *summaryService) AdminSummary(ctx context.Context) (*dto.AdminSummary, error) {
	key := cache.Key("summary", "admin")
	var cached dto.AdminSummary
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	summary := &dto.AdminSummary{}

	var err error
	if summary.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if summary.TotalServicePros, err = s.users.CountByRole(ctx, model.RoleProfessional); err != nil {
		return nil, err
	}
	if summary.TotalRequests, err = s.requests.Count(ctx); err != nil {
		return nil, err
	}
	if summary.CompletedRequests, err = s.requests.CountByStatus(ctx, model.StatusClosed); err != nil {
		return nil, err
	}
	if summary.PendingRequests, err = s.requests.CountNotStatus(ctx, model.StatusClosed); err != nil {
		return nil, err
	}
	if summary.TotalServices, err = s.services.Count(ctx); err != nil {
		return nil, err
	}
	if summary.TotalCategories, err = s.categories.Count(ctx); err != nil {
		return nil, err
	}
	if summary.PopularServices, err = s.services.TopRequested(ctx, topServicesLimit); err != nil {
		return nil, err
	}

	_ = s.cache.SetJSON(ctx, key, summary, s.cacheTTL)
	return summary, nil
}

// ProfessionalSummary narrows "pending" to accepted work that has not been
// closed yet. Requests still sitting at requested are not counted.
func (s *summaryService) ProfessionalSummary(ctx context.Context, professionalID uint) (*dto.RoleSummary, error) {
	key := cache.Key("summary", "professional", fmt.Sprint(professionalID))
	var cached dto.RoleSummary
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	summary := &dto.RoleSummary{}

	var err error
	if summary.TotalRequests, err = s.requests.CountByProfessional(ctx, professionalID); err != nil {
		return nil, err
	}
	if summary.CompletedRequests, err = s.requests.CountByProfessionalAndStatus(ctx, professionalID, model.StatusClosed); err != nil {
		return nil, err
	}
	if summary.PendingRequests, err = s.requests.CountByProfessionalAndStatus(ctx, professionalID, model.StatusAccepted); err != nil {
		return nil, err
	}

	_ = s.cache.SetJSON(ctx, key, summary, s.cacheTTL)
	return summary, nil
}

func (s *summaryService) CustomerSummary(ctx context.Context, customerID uint) (*dto.RoleSummary, error) {
	key := cache.Key("summary", "customer", fmt.Sprint(customerID))
	var cached dto.RoleSummary
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	summary := &dto.RoleSummary{}

	var err error
	if summary.TotalRequests, err = s.requests.CountByCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	if summary.CompletedRequests, err = s.requests.CountByCustomerAndStatus(ctx, customerID, model.StatusClosed); err != nil {
		return nil, err
	}
	if summary.PendingRequests, err = s.requests.CountByCustomerNotStatus(ctx, customerID, model.StatusClosed); err != nil {
		return nil, err
	}

	_ = s.cache.SetJSON(ctx, key, summary, s.cacheTTL)
	return summary, nil
}
