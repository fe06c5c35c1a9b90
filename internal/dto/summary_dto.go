package dto

import "velora.id/homeserve/internal/repository"

type AdminSummary struct {
	TotalUsers        int64                       `json:"total_users"`
	TotalServicePros  int64                       `json:"total_service_pros"`
	TotalRequests     int64                       `json:"total_requests"`
	CompletedRequests int64                       `json:"completed_requests"`
	PendingRequests   int64                       `json:"pending_requests"`
	TotalServices     int64                       `json:"total_services"`
	TotalCategories   int64                       `json:"total_categories"`
	PopularServices   []repository.PopularService `json:"popular_services"`
}

// RoleSummary is the per-user request breakdown returned to professionals
// and customers. "Pending" means status=accepted for professionals and
// status!=closed for customers.
type RoleSummary struct {
	TotalRequests     int64 `json:"total_requests"`
	CompletedRequests int64 `json:"completed_requests"`
	PendingRequests   int64 `json:"pending_requests"`
}
