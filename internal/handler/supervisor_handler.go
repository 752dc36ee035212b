package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campuskeep/outpass-api/internal/dto"
	"github.com/campuskeep/outpass-api/internal/models"
	"github.com/campuskeep/outpass-api/internal/service"
	appErrors "github.com/campuskeep/outpass-api/pkg/errors"
	"github.com/campuskeep/outpass-api/pkg/response"
)

// SupervisorHandler serves the hostel-scoped review endpoints.
type SupervisorHandler struct {
	outpasses *service.OutpassService
	dashboard *service.DashboardService
	metrics   *service.MetricsService
}

// NewSupervisorHandler creates a new handler.
func NewSupervisorHandler(outpasses *service.OutpassService, dashboard *service.DashboardService, metrics *service.MetricsService) *SupervisorHandler {
	return &SupervisorHandler{outpasses: outpasses, dashboard: dashboard, metrics: metrics}
}

// List godoc
// @Summary List outpasses for the assigned hostel
// @Tags Supervisor
// @Produce json
// @Security BearerAuth
// @Param status query string false "Lifecycle status filter"
// @Success 200 {object} response.Envelope
// @Router /supervisor/outpasses [get]
func (h *SupervisorHandler) List(c *gin.Context) {
	status := models.OutpassStatus(strings.ToUpper(c.Query("status")))
	list, err := h.dashboard.SupervisorOutpasses(c.Request.Context(), claimsFromContext(c), status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// Get godoc
// @Summary Get one outpass in the assigned hostel
// @Tags Supervisor
// @Produce json
// @Security BearerAuth
// @Param id path string true "Outpass ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /supervisor/outpasses/{id} [get]
func (h *SupervisorHandler) Get(c *gin.Context) {
	outpass, err := h.outpasses.Get(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, outpass)
}

// Review godoc
// @Summary Approve or reject a pending outpass
// @Tags Supervisor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Outpass ID"
// @Param payload body dto.ReviewRequest true "Review decision"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /supervisor/outpasses/{id}/review [post]
func (h *SupervisorHandler) Review(c *gin.Context) {
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid review payload"))
		return
	}

	outpass, err := h.outpasses.Review(c.Request.Context(), claimsFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if req.Approved {
		h.metrics.RecordTransition("approved")
	} else {
		h.metrics.RecordTransition("rejected")
	}
	h.dashboard.InvalidateSupervisorCache(c.Request.Context(), outpass.HostelName)
	response.JSON(c, http.StatusOK, outpass)
}

// Dashboard godoc
// @Summary Supervisor dashboard
// @Tags Supervisor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /supervisor/dashboard [get]
func (h *SupervisorHandler) Dashboard(c *gin.Context) {
	stats, err := h.dashboard.SupervisorStatistics(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

// Statistics godoc
// @Summary Hostel statistics
// @Tags Supervisor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /supervisor/statistics [get]
func (h *SupervisorHandler) Statistics(c *gin.Context) {
	stats, err := h.dashboard.SupervisorStatistics(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}
