package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/parancompany/navycamp-api/internal/dto"
	"github.com/parancompany/navycamp-api/internal/models"
	appErrors "github.com/parancompany/navycamp-api/pkg/errors"
	"github.com/parancompany/navycamp-api/pkg/response"
)

type instructorService interface {
	Create(ctx context.Context, input dto.InstructorInput) (*models.Instructor, error)
	Get(ctx context.Context, id int64) (*models.Instructor, error)
	List(ctx context.Context, category string) ([]models.Instructor, error)
	Update(ctx context.Context, id int64, input dto.InstructorInput) (*models.Instructor, error)
	Delete(ctx context.Context, id int64) error
	AddSchedule(ctx context.Context, instructorID int64, input dto.ScheduleInput) (*models.InstructorSchedule, error)
	ListSchedules(ctx context.Context, instructorID int64) ([]models.InstructorSchedule, error)
	RemoveSchedule(ctx context.Context, instructorID, scheduleID int64) error
}

// InstructorHandler exposes instructor directory endpoints.
type InstructorHandler struct {
	instructors instructorService
}

// NewInstructorHandler constructs InstructorHandler.
func NewInstructorHandler(instructors instructorService) *InstructorHandler {
	return &InstructorHandler{instructors: instructors}
}

// List returns instructors, optionally filtered by category.
func (h *InstructorHandler) List(c *gin.Context) {
	instructors, err := h.instructors.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructors, nil)
}

// Get returns a single instructor.
func (h *InstructorHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	instructor, err := h.instructors.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructor, nil)
}

// Create registers an instructor.
func (h *InstructorHandler) Create(c *gin.Context) {
	var input dto.InstructorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	instructor, err := h.instructors.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, instructor)
}

// Update overwrites an instructor profile.
func (h *InstructorHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input dto.InstructorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	instructor, err := h.instructors.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructor, nil)
}

// Delete removes an instructor.
func (h *InstructorHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.instructors.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListSchedules returns an instructor's schedule entries.
func (h *InstructorHandler) ListSchedules(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	schedules, err := h.instructors.ListSchedules(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedules, nil)
}

// AddSchedule records a manual commitment.
func (h *InstructorHandler) AddSchedule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input dto.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	schedule, err := h.instructors.AddSchedule(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, schedule)
}

// RemoveSchedule deletes a manual schedule entry.
func (h *InstructorHandler) RemoveSchedule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	scheduleID, err := strconv.ParseInt(c.Param("scheduleId"), 10, 64)
	if err != nil || scheduleID <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid schedule id"))
		return
	}
	if err := h.instructors.RemoveSchedule(c.Request.Context(), id, scheduleID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
