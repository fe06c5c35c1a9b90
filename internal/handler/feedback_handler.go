package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"velora.id/homeserve/internal/dto"
	"velora.id/homeserve/internal/service"
	"velora.id/homeserve/pkg/response"
	"velora.id/homeserve/pkg/validator"
)

type FeedbackHandler struct {
	service service.FeedbackService
}

func NewFeedbackHandler(service service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

func (h *FeedbackHandler) Submit(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	serviceID, ok := parseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
		return
	}

	var req dto.FeedbackInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	feedback, err := h.service.Submit(c.Request.Context(), userID, serviceID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "feedback submitted", "feedback": feedback})
}

func (h *FeedbackHandler) List(c *gin.Context) {
	feedbacks, err := h.service.List(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedbacks)
}
