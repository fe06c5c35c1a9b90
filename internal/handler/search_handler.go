package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"velora.id/homeserve/internal/dto"
	"velora.id/homeserve/internal/service"
	"velora.id/homeserve/pkg/response"
	"velora.id/homeserve/pkg/validator"
)

type SearchHandler struct {
	visibility service.VisibilityService
}

func NewSearchHandler(visibility service.VisibilityService) *SearchHandler {
	return &SearchHandler{visibility: visibility}
}

func (h *SearchHandler) Search(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.SearchInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	result, err := h.visibility.SearchServices(c.Request.Context(), userID, req.Search)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
