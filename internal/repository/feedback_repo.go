package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"velora.id/homeserve/internal/model"
)

// FeedbackDetail is a feedback row joined with the customer and service
// names for listing.
type FeedbackDetail struct {
	ID           uint      `json:"id"`
	ServiceID    uint      `json:"service_id"`
	CustomerID   uint      `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	ServiceName  string    `json:"service_name"`
	Rating       int       `json:"rating"`
	Comments     *string   `json:"comments"`
	Date         time.Time `json:"date"`
}

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *model.Feedback) error
	FindAllDetailed(ctx context.Context) ([]FeedbackDetail, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *model.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepository) FindAllDetailed(ctx context.Context) ([]FeedbackDetail, error) {
	var rows []FeedbackDetail
	err := r.db.WithContext(ctx).
		Model(&model.Feedback{}).
		Select("feedbacks.id, feedbacks.service_id, feedbacks.customer_id, feedbacks.rating, feedbacks.comments, feedbacks.date, users.username AS customer_name, services.name AS service_name").
		Joins("JOIN users ON users.id = feedbacks.customer_id").
		Joins("JOIN services ON services.id = feedbacks.service_id").
		Order("feedbacks.service_id, feedbacks.rating DESC").
		Scan(&rows).Error
	return rows, err
}
