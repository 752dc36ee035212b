package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskeep/outpass-api/internal/dto"
	"github.com/campuskeep/outpass-api/internal/service"
	appErrors "github.com/campuskeep/outpass-api/pkg/errors"
	"github.com/campuskeep/outpass-api/pkg/response"
)

// ResidentHandler serves the resident-facing outpass endpoints.
type ResidentHandler struct {
	outpasses *service.OutpassService
	dashboard *service.DashboardService
	metrics   *service.MetricsService
}

// NewResidentHandler creates a new handler.
func NewResidentHandler(outpasses *service.OutpassService, dashboard *service.DashboardService, metrics *service.MetricsService) *ResidentHandler {
	return &ResidentHandler{outpasses: outpasses, dashboard: dashboard, metrics: metrics}
}

// Create godoc
// @Summary Request a new outpass
// @Tags Resident
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.OutpassRequest true "Outpass payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /resident/outpasses [post]
func (h *ResidentHandler) Create(c *gin.Context) {
	var req dto.OutpassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid outpass payload"))
		return
	}

	outpass, err := h.outpasses.Create(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordTransition("created")
	response.Created(c, outpass)
}

// Update godoc
// @Summary Edit a pending outpass
// @Tags Resident
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Outpass ID"
// @Param payload body dto.OutpassRequest true "Outpass payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /resident/outpasses/{id} [put]
func (h *ResidentHandler) Update(c *gin.Context) {
	var req dto.OutpassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid outpass payload"))
		return
	}

	outpass, err := h.outpasses.Edit(c.Request.Context(), claimsFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, outpass)
}

// Cancel godoc
// @Summary Cancel a pending or approved outpass
// @Tags Resident
// @Produce json
// @Security BearerAuth
// @Param id path string true "Outpass ID"
// @Success 204 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /resident/outpasses/{id}/cancel [post]
func (h *ResidentHandler) Cancel(c *gin.Context) {
	if err := h.outpasses.Cancel(c.Request.Context(), claimsFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordTransition("cancelled")
	response.NoContent(c)
}

// List godoc
// @Summary List own outpasses
// @Tags Resident
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /resident/outpasses [get]
func (h *ResidentHandler) List(c *gin.Context) {
	list, err := h.outpasses.ListOwn(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// Get godoc
// @Summary Get one of own outpasses
// @Tags Resident
// @Produce json
// @Security BearerAuth
// @Param id path string true "Outpass ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /resident/outpasses/{id} [get]
func (h *ResidentHandler) Get(c *gin.Context) {
	outpass, err := h.outpasses.Get(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, outpass)
}

// Dashboard godoc
// @Summary Resident dashboard
// @Tags Resident
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /resident/dashboard [get]
func (h *ResidentHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.dashboard.ResidentDashboard(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dashboard)
}
