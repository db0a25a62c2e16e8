package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/parancompany/navycamp-api/internal/dto"
	"github.com/parancompany/navycamp-api/internal/middleware"
	"github.com/parancompany/navycamp-api/internal/models"
	appErrors "github.com/parancompany/navycamp-api/pkg/errors"
	"github.com/parancompany/navycamp-api/pkg/response"
)

type requestService interface {
	Create(ctx context.Context, input dto.CreateRequestInput) (*dto.RequestResponse, error)
	Get(ctx context.Context, id int64) (*dto.RequestResponse, error)
	List(ctx context.Context, filter models.RequestFilter) ([]dto.RequestResponse, error)
	UpdateStatus(ctx context.Context, id int64, input dto.UpdateStatusInput) (*dto.RequestResponse, error)
	AssignInstructors(ctx context.Context, id int64, input dto.AssignInstructorsInput) (*dto.RequestResponse, error)
	UpdatePlan(ctx context.Context, id int64, input dto.UpdatePlanInput) (*dto.RequestResponse, error)
	CheckAvailability(ctx context.Context, startStr, endStr string) (*dto.AvailabilityResponse, error)
}

// RequestHandler exposes training-request endpoints.
type RequestHandler struct {
	requests requestService
}

// NewRequestHandler constructs RequestHandler.
func NewRequestHandler(requests requestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

// Create godoc
// @Summary Submit a training request
// @Tags Requests
// @Accept json
// @Produce json
// @Param payload body dto.CreateRequestInput true "Request payload"
// @Success 201 {object} response.Envelope
// @Router /requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	var input dto.CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	// Unit accounts always file under their own identity.
	if claims, ok := middleware.CurrentClaims(c); ok && claims.Role == models.RoleUnit {
		input.UserID = claims.UserID
	}
	created, err := h.requests.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// List godoc
// @Summary List training requests
// @Tags Requests
// @Produce json
// @Param userId query int false "Filter by requesting account (admin only)"
// @Param fleet query string false "Filter by fleet"
// @Success 200 {object} response.Envelope
// @Router /requests [get]
func (h *RequestHandler) List(c *gin.Context) {
	filter := models.RequestFilter{Fleet: c.Query("fleet")}
	if raw := c.Query("userId"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid userId"))
			return
		}
		filter.UserID = &userID
	}
	// Unit accounts only ever see their own requests.
	if claims, ok := middleware.CurrentClaims(c); ok && claims.Role == models.RoleUnit {
		userID := claims.UserID
		filter.UserID = &userID
	}
	requests, err := h.requests.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests, nil)
}

// Get godoc
// @Summary Get a training request
// @Tags Requests
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} response.Envelope
// @Router /requests/{id} [get]
func (h *RequestHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	request, err := h.requests.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if claims, ok := middleware.CurrentClaims(c); ok && claims.Role == models.RoleUnit && request.UserID != claims.UserID {
		response.Error(c, appErrors.ErrForbidden)
		return
	}
	response.JSON(c, http.StatusOK, request, nil)
}

// UpdateStatus godoc
// @Summary Move a request through the approval pipeline
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param payload body dto.UpdateStatusInput true "Status payload"
// @Success 200 {object} response.Envelope
// @Router /requests/{id}/status [patch]
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input dto.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	updated, err := h.requests.UpdateStatus(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated, nil)
}

// AssignInstructors godoc
// @Summary Assign the three category instructor slots
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param payload body dto.AssignInstructorsInput true "Slot payload"
// @Success 200 {object} response.Envelope
// @Router /requests/{id}/instructors [patch]
func (h *RequestHandler) AssignInstructors(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input dto.AssignInstructorsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	updated, err := h.requests.AssignInstructors(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated, nil)
}

// UpdatePlan godoc
// @Summary Store the operational plan text
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param payload body dto.UpdatePlanInput true "Plan payload"
// @Success 200 {object} response.Envelope
// @Router /requests/{id}/plan [patch]
func (h *RequestHandler) UpdatePlan(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input dto.UpdatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	updated, err := h.requests.UpdatePlan(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated, nil)
}

// CheckAvailability godoc
// @Summary List booked venues and instructors on a date range
// @Tags Requests
// @Produce json
// @Param date query string true "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /requests/availability [get]
func (h *RequestHandler) CheckAvailability(c *gin.Context) {
	availability, err := h.requests.CheckAvailability(c.Request.Context(), c.Query("date"), c.Query("endDate"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, availability, nil)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid id"))
		return 0, false
	}
	return id, true
}
