package service

import (
	"context"
	"fmt"
	"time"

	"velora.id/homeserve/internal/dto"
	"velora.id/homeserve/internal/model"
	"velora.id/homeserve/internal/repository"
	"velora.id/homeserve/pkg/apperror"
)

// RequestService owns creation and lifecycle transitions of service
// requests. It is the only component that mutates a request's status or
// completion timestamp.
type RequestService interface {
	Create(ctx context.Context, customerID uint, input dto.CreateServiceRequestInput) (*model.ServiceRequest, error)
	AssignProfessional(ctx context.Context, requestID, professionalID uint) error
	SetStatus(ctx context.Context, requestID uint, newStatus model.RequestStatus, roles RoleSet) error
	Update(ctx context.Context, requestID uint, input dto.UpdateServiceRequestInput, roles RoleSet) (*model.ServiceRequest, error)
	Delete(ctx context.Context, requestID uint) error
}

type requestService struct {
	requests repository.RequestRepository
	services repository.ServiceRepository
	users    repository.UserRepository
	now      func() time.Time
}

func NewRequestService(
	requests repository.RequestRepository,
	services repository.ServiceRepository,
	users repository.UserRepository,
) RequestService {
	return &requestService{
		requests: requests,
		services: services,
		users:    users,
		now:      time.Now,
	}
}

func (s *requestService) Create(ctx context.Context, customerID uint, input dto.CreateServiceRequestInput) (*model.ServiceRequest, error) {
	if input.ServiceID == 0 {
		return nil, fmt.Errorf("missing service_id: %w", apperror.ErrInvalidInput)
	}

	if _, err := s.services.FindByID(ctx, input.ServiceID); err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("service not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	if input.ProfessionalID != nil {
		if _, err := s.users.FindByID(ctx, *input.ProfessionalID); err != nil {
			if repository.IsNotFound(err) {
				return nil, fmt.Errorf("professional not found: %w", apperror.ErrNotFound)
			}
			return nil, err
		}
	}

	remarks := input.Remarks
	if remarks == "" {
		remarks = "No remarks"
	}

	request := &model.ServiceRequest{
		CustomerID:     customerID,
		ProfessionalID: input.ProfessionalID,
		ServiceID:      input.ServiceID,
		DateOfRequest:  s.now().UTC(),
		Status:         model.StatusRequested,
		Remarks:        remarks,
	}

	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// AssignProfessional sets the professional on a request without touching its
// status. Reassignment is last-write-wins; the row lock inside UpdateLocked
// keeps concurrent writers from interleaving.
func (s *requestService) AssignProfessional(ctx context.Context, requestID, professionalID uint) error {
	if _, err := s.users.FindByID(ctx, professionalID); err != nil {
		if repository.IsNotFound(err) {
			return fmt.Errorf("professional not found: %w", apperror.ErrNotFound)
		}
		return err
	}

	_, err := s.requests.UpdateLocked(ctx, requestID, func(request *model.ServiceRequest) error {
		if request.Status == model.StatusClosed {
			return fmt.Errorf("request is closed: %w", apperror.ErrInvalidState)
		}
		request.ProfessionalID = &professionalID
		return nil
	})
	if repository.IsNotFound(err) {
		return fmt.Errorf("service request not found: %w", apperror.ErrNotFound)
	}
	return err
}

// SetStatus advances the lifecycle by exactly one step. Only admins and
// professionals may transition a request. The completion timestamp is
// stamped once, inside the same locked transaction that moves the request to
// closed.
func (s *requestService) SetStatus(ctx context.Context, requestID uint, newStatus model.RequestStatus, roles RoleSet) error {
	if !roles.HasAny(model.RoleAdmin, model.RoleProfessional) {
		return fmt.Errorf("role may not change request status: %w", apperror.ErrForbidden)
	}
	if !newStatus.Valid() {
		return fmt.Errorf("unknown status %q: %w", newStatus, apperror.ErrInvalidInput)
	}

	_, err := s.requests.UpdateLocked(ctx, requestID, func(request *model.ServiceRequest) error {
		if !request.Status.CanTransitionTo(newStatus) {
			return fmt.Errorf("cannot move %s request to %s: %w", request.Status, newStatus, apperror.ErrInvalidState)
		}
		request.Status = newStatus
		if newStatus == model.StatusClosed && request.DateOfCompletion == nil {
			completed := s.now().UTC()
			request.DateOfCompletion = &completed
		}
		return nil
	})
	if repository.IsNotFound(err) {
		return fmt.Errorf("service request not found: %w", apperror.ErrNotFound)
	}
	return err
}

// Update applies the API's partial patch: optional reassignment, optional
// status transition. Remark edits stay allowed on closed requests.
func (s *requestService) Update(ctx context.Context, requestID uint, input dto.UpdateServiceRequestInput, roles RoleSet) (*model.ServiceRequest, error) {
	if input.ProfessionalID != nil {
		if err := s.AssignProfessional(ctx, requestID, *input.ProfessionalID); err != nil {
			return nil, err
		}
	}

	if input.ServiceStatus != nil {
		if err := s.SetStatus(ctx, requestID, model.RequestStatus(*input.ServiceStatus), roles); err != nil {
			return nil, err
		}
	}

	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("service request not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return request, nil
}

func (s *requestService) Delete(ctx context.Context, requestID uint) error {
	if err := s.requests.Delete(ctx, requestID); err != nil {
		if repository.IsNotFound(err) {
			return fmt.Errorf("service request not found: %w", apperror.ErrNotFound)
		}
		return err
	}
	return nil
}
