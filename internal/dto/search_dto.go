package dto

import "velora.id/homeserve/internal/model"

type SearchInput struct {
	Search string `json:"search" binding:"required"`
}

type SearchResult struct {
	Services        []model.Service        `json:"services"`
	ServiceRequests []model.ServiceRequest `json:"service_requests"`
}
