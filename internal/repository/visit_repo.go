package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"velora.id/homeserve/internal/model"
)

type VisitRepository interface {
	Touch(ctx context.Context, userID uint, day time.Time) error
}

type visitRepository struct {
	db *gorm.DB
}

func NewVisitRepository(db *gorm.DB) VisitRepository {
	return &visitRepository{db: db}
}

// Touch records a visit for the user on the given day, once per day.
func (r *visitRepository) Touch(ctx context.Context, userID uint, day time.Time) error {
	visit := model.DailyVisit{
		UserID: userID,
		Date:   day.Truncate(24 * time.Hour),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&visit).Error
}
