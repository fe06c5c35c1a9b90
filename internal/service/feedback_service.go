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

// FeedbackService records customer feedback. Entries are append-only; this
// service never updates or deletes them.
type FeedbackService interface {
	Submit(ctx context.Context, customerID, serviceID uint, input dto.FeedbackInput) (*model.Feedback, error)
	List(ctx context.Context) ([]repository.FeedbackDetail, error)
}

type feedbackService struct {
	feedback repository.FeedbackRepository
	services repository.ServiceRepository
	now      func() time.Time
}

func NewFeedbackService(feedback repository.FeedbackRepository, services repository.ServiceRepository) FeedbackService {
	return &feedbackService{
		feedback: feedback,
		services: services,
		now:      time.Now,
	}
}

func (s *feedbackService) Submit(ctx context.Context, customerID, serviceID uint, input dto.FeedbackInput) (*model.Feedback, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5: %w", apperror.ErrInvalidInput)
	}

	if _, err := s.services.FindByID(ctx, serviceID); err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("service not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	feedback := &model.Feedback{
		ServiceID:  serviceID,
		CustomerID: customerID,
		Rating:     input.Rating,
		Comments:   input.Comments,
		Date:       s.now().UTC(),
	}

	if err := s.feedback.Create(ctx, feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

func (s *feedbackService) List(ctx context.Context) ([]repository.FeedbackDetail, error) {
	return s.feedback.FindAllDetailed(ctx)
}
