package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskeep/outpass-api/internal/dto"
	"github.com/campuskeep/outpass-api/internal/models"
	"github.com/campuskeep/outpass-api/internal/service"
	appErrors "github.com/campuskeep/outpass-api/pkg/errors"
	"github.com/campuskeep/outpass-api/pkg/response"
)

// OfficerHandler serves the gate-side departure and return endpoints.
// Gate operations are hostel-agnostic.
type OfficerHandler struct {
	outpasses *service.OutpassService
	dashboard *service.DashboardService
	metrics   *service.MetricsService
}

// NewOfficerHandler creates a new handler.
func NewOfficerHandler(outpasses *service.OutpassService, dashboard *service.DashboardService, metrics *service.MetricsService) *OfficerHandler {
	return &OfficerHandler{outpasses: outpasses, dashboard: dashboard, metrics: metrics}
}

// Approved godoc
// @Summary List approved outpasses awaiting departure
// @Tags Officer
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /officer/outpasses/approved [get]
func (h *OfficerHandler) Approved(c *gin.Context) {
	list, err := h.outpasses.ListByStatus(c.Request.Context(), models.StatusApproved)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// Active godoc
// @Summary List active outpasses awaiting return
// @Tags Officer
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /officer/outpasses/active [get]
func (h *OfficerHandler) Active(c *gin.Context) {
	list, err := h.outpasses.ListByStatus(c.Request.Context(), models.StatusActive)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// Get godoc
// @Summary Get one outpass
// @Tags Officer
// @Produce json
// @Security BearerAuth
// @Param id path string true "Outpass ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /officer/outpasses/{id} [get]
func (h *OfficerHandler) Get(c *gin.Context) {
	outpass, err := h.outpasses.Get(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, outpass)
}

// Departure godoc
// @Summary Mark departure at the gate
// @Tags Officer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Outpass ID"
// @Param payload body dto.DepartureRequest true "Gate comments"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /officer/outpasses/{id}/departure [post]
func (h *OfficerHandler) Departure(c *gin.Context) {
	var req dto.DepartureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid departure payload"))
		return
	}

	outpass, err := h.outpasses.MarkDeparture(c.Request.Context(), claimsFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordTransition("departed")
	h.dashboard.InvalidateSupervisorCache(c.Request.Context(), outpass.HostelName)
	response.JSON(c, http.StatusOK, outpass)
}

// Return godoc
// @Summary Mark return at the gate
// @Tags Officer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Outpass ID"
// @Param payload body dto.ReturnRequest true "Gate comments and late reason"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /officer/outpasses/{id}/return [post]
func (h *OfficerHandler) Return(c *gin.Context) {
	var req dto.ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid return payload"))
		return
	}

	outpass, err := h.outpasses.MarkReturn(c.Request.Context(), claimsFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordTransition("returned")
	if outpass.IsLateReturn != nil && *outpass.IsLateReturn {
		h.metrics.RecordLateReturn()
	}
	h.dashboard.InvalidateSupervisorCache(c.Request.Context(), outpass.HostelName)
	response.JSON(c, http.StatusOK, outpass)
}

// Dashboard godoc
// @Summary Officer dashboard
// @Tags Officer
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /officer/dashboard [get]
func (h *OfficerHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.dashboard.OfficerDashboard(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dashboard)
}

// Today godoc
// @Summary Today's gate activity
// @Tags Officer
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /officer/today [get]
func (h *OfficerHandler) Today(c *gin.Context) {
	activity, err := h.dashboard.TodayActivity(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, activity)
}
