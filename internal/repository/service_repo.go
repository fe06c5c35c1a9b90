package repository

import (
	"context"

	"gorm.io/gorm"

	"velora.id/homeserve/internal/model"
)

// PopularService is one row of the most-requested ranking.
type PopularService struct {
	ServiceID    uint   `json:"service_id"`
	Name         string `json:"name"`
	RequestCount int64  `json:"request_count"`
}

type ServiceRepository interface {
	Create(ctx context.Context, service *model.Service) error
	FindByID(ctx context.Context, id uint) (*model.Service, error)
	FindAll(ctx context.Context) ([]model.Service, error)
	FindByCategory(ctx context.Context, categoryID uint) ([]model.Service, error)
	SearchByName(ctx context.Context, query string) ([]model.Service, error)
	Update(ctx context.Context, service *model.Service) error
	DeleteWithDependents(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	TopRequested(ctx context.Context, limit int) ([]PopularService, error)
}

type serviceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, service *model.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *serviceRepository) FindByID(ctx context.Context, id uint) (*model.Service, error) {
	var service model.Service
	if err := r.db.WithContext(ctx).Preload("Category").First(&service, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) FindAll(ctx context.Context) ([]model.Service, error) {
	var services []model.Service
	if err := r.db.WithContext(ctx).Order("id").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *serviceRepository) FindByCategory(ctx context.Context, categoryID uint) ([]model.Service, error) {
	var services []model.Service
	if err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Order("id").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *serviceRepository) SearchByName(ctx context.Context, query string) ([]model.Service, error) {
	var services []model.Service
	err := r.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+query+"%").
		Order("id").
		Find(&services).Error
	return services, err
}

func (r *serviceRepository) Update(ctx context.Context, service *model.Service) error {
	return r.db.WithContext(ctx).Save(service).Error
}

// DeleteWithDependents removes a service together with its service requests
// and feedback in a single transaction. The request cascade is deliberate
// application-level behavior, not a schema-level foreign key cascade.
func (r *serviceRepository) DeleteWithDependents(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var service model.Service
		if err := tx.First(&service, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Delete(&model.ServiceRequest{}, "service_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Feedback{}, "service_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&service).Error
	})
}

func (r *serviceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Service{}).Count(&count).Error
	return count, err
}

// TopRequested ranks services by request count descending. Ties break on
// service id ascending so repeated calls over identical data return the same
// order.
func (r *serviceRepository) TopRequested(ctx context.Context, limit int) ([]PopularService, error) {
	var rows []PopularService
	err := r.db.WithContext(ctx).
		Model(&model.Service{}).
		Select("services.id AS service_id, services.name AS name, COUNT(service_requests.id) AS request_count").
		Joins("JOIN service_requests ON service_requests.service_id = services.id").
		Group("services.id, services.name").
		Order("request_count DESC, services.id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
