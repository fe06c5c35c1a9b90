package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"velora.id/homeserve/internal/jobs"
	"velora.id/homeserve/internal/service"
	"velora.id/homeserve/pkg/response"
)

type AdminHandler struct {
	users     service.UserService
	scheduler *jobs.Scheduler
}

func NewAdminHandler(users service.UserService, scheduler *jobs.Scheduler) *AdminHandler {
	return &AdminHandler{
		users:     users,
		scheduler: scheduler,
	}
}

func (h *AdminHandler) ActivateProfessional(c *gin.Context) {
	userID, ok := parseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.users.ActivateProfessional(c.Request.Context(), userID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user is activated"})
}

// ListProfessionals returns all professionals; ?inactive=true narrows to the
// ones still awaiting activation.
func (h *AdminHandler) ListProfessionals(c *gin.Context) {
	inactiveOnly := c.Query("inactive") == "true"

	professionals, err := h.users.ListProfessionals(c.Request.Context(), inactiveOnly)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, professionals)
}

func (h *AdminHandler) DeleteProfessional(c *gin.Context) {
	userID, ok := parseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.users.DeleteProfessional(c.Request.Context(), userID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "service professional deleted"})
}

// RunJob triggers a scheduled job outside its cadence.
func (h *AdminHandler) RunJob(c *gin.Context) {
	name := c.Param("name")

	if err := h.scheduler.RunByName(c.Request.Context(), name); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "job triggered", "job": name})
}

// ListJobs shows which jobs can be triggered.
func (h *AdminHandler) ListJobs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"jobs": h.scheduler.JobNames()})
}
