package dto

type CreateServiceRequestInput struct {
	ServiceID      uint   `json:"service_id" binding:"required"`
	ProfessionalID *uint  `json:"professional_id"`
	Remarks        string `json:"remarks"`
}

// UpdateServiceRequestInput carries a partial update: either field may be
// absent. A present ServiceStatus drives a lifecycle transition; a present
// ProfessionalID reassigns the request.
type UpdateServiceRequestInput struct {
	ProfessionalID *uint   `json:"professional_id"`
	ServiceStatus  *string `json:"service_status" binding:"omitempty,oneof=requested accepted closed"`
}
