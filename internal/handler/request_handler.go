package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"velora.id/homeserve/internal/dto"
	"velora.id/homeserve/internal/middleware"
	"velora.id/homeserve/internal/service"
	"velora.id/homeserve/pkg/response"
	"velora.id/homeserve/pkg/validator"
)

type RequestHandler struct {
	requests   service.RequestService
	visibility service.VisibilityService
	auth       *middleware.AuthMiddleware
}

func NewRequestHandler(
	requests service.RequestService,
	visibility service.VisibilityService,
	auth *middleware.AuthMiddleware,
) *RequestHandler {
	return &RequestHandler{
		requests:   requests,
		visibility: visibility,
		auth:       auth,
	}
}

// List returns the caller's visibility scope: everything for admins,
// assigned requests for professionals, own requests for customers.
func (h *RequestHandler) List(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	requests, err := h.visibility.VisibleRequests(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (h *RequestHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreateServiceRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	request, err := h.requests.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":            "service request created",
		"service_request_id": request.ID,
	})
}

func (h *RequestHandler) Update(c *gin.Context) {
	requestID, ok := parseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var req dto.UpdateServiceRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	roles, err := h.auth.RolesFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	request, err := h.requests.Update(c.Request.Context(), requestID, req, roles)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "service request updated",
		"service_status": request.Status,
	})
}

func (h *RequestHandler) Delete(c *gin.Context) {
	requestID, ok := parseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	if err := h.requests.Delete(c.Request.Context(), requestID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "service request deleted"})
}
