package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"velora.id/homeserve/internal/model"
)

type RequestRepository interface {
	Create(ctx context.Context, request *model.ServiceRequest) error
	FindByID(ctx context.Context, id uint) (*model.ServiceRequest, error)
	FindAll(ctx context.Context) ([]model.ServiceRequest, error)
	FindByCustomer(ctx context.Context, customerID uint) ([]model.ServiceRequest, error)
	FindByProfessional(ctx context.Context, professionalID uint) ([]model.ServiceRequest, error)
	CountByProfessionalAndStatus(ctx context.Context, professionalID uint, status model.RequestStatus) (int64, error)
	FindRequestedSince(ctx context.Context, customerID uint, since time.Time) ([]model.ServiceRequest, error)
	FindClosedSince(ctx context.Context, customerID uint, since time.Time) ([]model.ServiceRequest, error)
	SearchForAdmin(ctx context.Context, query string) ([]model.ServiceRequest, error)
	UpdateLocked(ctx context.Context, id uint, mutate func(*model.ServiceRequest) error) (*model.ServiceRequest, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status model.RequestStatus) (int64, error)
	CountNotStatus(ctx context.Context, status model.RequestStatus) (int64, error)
	CountByProfessional(ctx context.Context, professionalID uint) (int64, error)
	CountByCustomer(ctx context.Context, customerID uint) (int64, error)
	CountByCustomerAndStatus(ctx context.Context, customerID uint, status model.RequestStatus) (int64, error)
	CountByCustomerNotStatus(ctx context.Context, customerID uint, status model.RequestStatus) (int64, error)
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, request *model.ServiceRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *requestRepository) FindByID(ctx context.Context, id uint) (*model.ServiceRequest, error) {
	var request model.ServiceRequest
	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Customer").
		Preload("Professional").
		First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) FindAll(ctx context.Context) ([]model.ServiceRequest, error) {
	var requests []model.ServiceRequest
	err := r.preloaded(ctx).Order("id").Find(&requests).Error
	return requests, err
}

func (r *requestRepository) FindByCustomer(ctx context.Context, customerID uint) ([]model.ServiceRequest, error) {
	var requests []model.ServiceRequest
	err := r.preloaded(ctx).Where("customer_id = ?", customerID).Order("id").Find(&requests).Error
	return requests, err
}

func (r *requestRepository) FindByProfessional(ctx context.Context, professionalID uint) ([]model.ServiceRequest, error) {
	var requests []model.ServiceRequest
	err := r.preloaded(ctx).Where("professional_id = ?", professionalID).Order("id").Find(&requests).Error
	return requests, err
}

func (r *requestRepository) CountByProfessionalAndStatus(ctx context.Context, professionalID uint, status model.RequestStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ServiceRequest{}).
		Where("professional_id = ? AND status = ?", professionalID, status).
		Count(&count).Error
	return count, err
}

func (r *requestRepository) FindRequestedSince(ctx context.Context, customerID uint, since time.Time) ([]model.ServiceRequest, error) {
	var requests []model.ServiceRequest
	err := r.preloaded(ctx).
		Where("customer_id = ? AND date_of_request >= ?", customerID, since).
		Order("id").
		Find(&requests).Error
	return requests, err
}

func (r *requestRepository) FindClosedSince(ctx context.Context, customerID uint, since time.Time) ([]model.ServiceRequest, error) {
	var requests []model.ServiceRequest
	err := r.preloaded(ctx).
		Where("customer_id = ? AND date_of_completion >= ? AND status = ?", customerID, since, model.StatusClosed).
		Order("id").
		Find(&requests).Error
	return requests, err
}

// SearchForAdmin unions two predicates: requests whose remarks contain the
// query, and requests whose service name contains it.
func (r *requestRepository) SearchForAdmin(ctx context.Context, query string) ([]model.ServiceRequest, error) {
	pattern := "%" + query + "%"
	var requests []model.ServiceRequest
	err := r.preloaded(ctx).
		Joins("JOIN services ON services.id = service_requests.service_id").
		Where("service_requests.remarks ILIKE ? OR services.name ILIKE ?", pattern, pattern).
		Order("service_requests.id").
		Find(&requests).Error
	return requests, err
}

// UpdateLocked serializes mutations per request id: the row is locked FOR
// UPDATE inside a transaction, mutate is applied to the fresh row, and the
// result is saved before the lock is released.
func (r *requestRepository) UpdateLocked(ctx context.Context, id uint, mutate func(*model.ServiceRequest) error) (*model.ServiceRequest, error) {
	var request model.ServiceRequest
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&request, "id = ?", id).Error; err != nil {
			return err
		}
		if err := mutate(&request); err != nil {
			return err
		}
		return tx.Save(&request).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.ServiceRequest{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *requestRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ServiceRequest{}).Count(&count).Error
	return count, err
}

func (r *requestRepository) CountByStatus(ctx context.Context, status model.RequestStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ServiceRequest{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *requestRepository) CountNotStatus(ctx context.Context, status model.RequestStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ServiceRequest{}).
		Where("status <> ?", status).
		Count(&count).Error
	return count, err
}

func (r *requestRepository) CountByProfessional(ctx context.Context, professionalID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ServiceRequest{}).
		Where("professional_id = ?", professionalID).
		Count(&count).Error
	return count, err
}

func (r *requestRepository) CountByCustomer(ctx context.Context, customerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ServiceRequest{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	return count, err
}

func (r *requestRepository) CountByCustomerAndStatus(ctx context.Context, customerID uint, status model.RequestStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ServiceRequest{}).
		Where("customer_id = ? AND status = ?", customerID, status).
		Count(&count).Error
	return count, err
}

func (r *requestRepository) CountByCustomerNotStatus(ctx context.Context, customerID uint, status model.RequestStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ServiceRequest{}).
		Where("customer_id = ? AND status <> ?", customerID, status).
		Count(&count).Error
	return count, err
}

func (r *requestRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Service").
		Preload("Customer").
		Preload("Professional")
}
