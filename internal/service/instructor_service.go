package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/parancompany/navycamp-api/internal/dto"
	"github.com/parancompany/navycamp-api/internal/models"
	appErrors "github.com/parancompany/navycamp-api/pkg/errors"
)

type instructorDirectory interface {
	Create(ctx context.Context, inst *models.Instructor) error
	GetByID(ctx context.Context, id int64) (*models.Instructor, error)
	List(ctx context.Context, category models.InstructorCategory) ([]models.Instructor, error)
	Update(ctx context.Context, inst *models.Instructor) error
	Delete(ctx context.Context, id int64) error
	CreateSchedule(ctx context.Context, s *models.InstructorSchedule) error
	ListSchedules(ctx context.Context, instructorID int64) ([]models.InstructorSchedule, error)
	DeleteSchedule(ctx context.Context, instructorID, scheduleID int64) error
}

// InstructorService manages the instructor directory and manual schedules.
type InstructorService struct {
	repo      instructorDirectory
	validator *validator.Validate
	logger    *zap.Logger
}

// NewInstructorService constructs an InstructorService.
func NewInstructorService(repo instructorDirectory, validate *validator.Validate, logger *zap.Logger) *InstructorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstructorService{repo: repo, validator: validate, logger: logger}
}

// Create registers a new instructor.
func (s *InstructorService) Create(ctx context.Context, input dto.InstructorInput) (*models.Instructor, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid instructor payload")
	}
	category, err := parseCategory(input.Category)
	if err != nil {
		return nil, err
	}
	inst := instructorFromInput(input, category)
	if err := s.repo.Create(ctx, inst); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create instructor")
	}
	return inst, nil
}

// Get returns a single instructor.
func (s *InstructorService) Get(ctx context.Context, id int64) (*models.Instructor, error) {
	inst, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "instructor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load instructor")
	}
	return inst, nil
}

// List returns instructors, optionally narrowed to one category.
func (s *InstructorService) List(ctx context.Context, category string) ([]models.Instructor, error) {
	var parsed models.InstructorCategory
	if category != "" {
		var err error
		parsed, err = parseCategory(category)
		if err != nil {
			return nil, err
		}
	}
	instructors, err := s.repo.List(ctx, parsed)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list instructors")
	}
	return instructors, nil
}

// Update overwrites an instructor profile.
func (s *InstructorService) Update(ctx context.Context, id int64, input dto.InstructorInput) (*models.Instructor, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid instructor payload")
	}
	category, err := parseCategory(input.Category)
	if err != nil {
		return nil, err
	}
	inst := instructorFromInput(input, category)
	inst.ID = id
	if err := s.repo.Update(ctx, inst); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "instructor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update instructor")
	}
	return s.Get(ctx, id)
}

// Delete removes an instructor.
func (s *InstructorService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "instructor not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete instructor")
	}
	return nil
}

// AddSchedule records a manual commitment for an instructor.
func (s *InstructorService) AddSchedule(ctx context.Context, instructorID int64, input dto.ScheduleInput) (*models.InstructorSchedule, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}
	if _, err := s.Get(ctx, instructorID); err != nil {
		return nil, err
	}
	start, err := time.Parse(dateLayout, input.ScheduleDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "scheduleDate must be YYYY-MM-DD")
	}
	var end *time.Time
	if input.EndDate != nil && *input.EndDate != "" {
		parsed, err := time.Parse(dateLayout, *input.EndDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must be YYYY-MM-DD")
		}
		if parsed.Before(start) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "endDate precedes scheduleDate")
		}
		end = &parsed
	}
	schedule := &models.InstructorSchedule{
		InstructorID: instructorID,
		ScheduleDate: start,
		EndDate:      end,
		Description:  input.Description,
		Source:       models.ScheduleSourceManual,
	}
	if err := s.repo.CreateSchedule(ctx, schedule); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create schedule")
	}
	return schedule, nil
}

// ListSchedules returns an instructor's schedule entries.
func (s *InstructorService) ListSchedules(ctx context.Context, instructorID int64) ([]models.InstructorSchedule, error) {
	schedules, err := s.repo.ListSchedules(ctx, instructorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}
	return schedules, nil
}

// RemoveSchedule deletes a manual schedule entry.
func (s *InstructorService) RemoveSchedule(ctx context.Context, instructorID, scheduleID int64) error {
	if err := s.repo.DeleteSchedule(ctx, instructorID, scheduleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete schedule")
	}
	return nil
}

func parseCategory(raw string) (models.InstructorCategory, error) {
	category := models.InstructorCategory(raw)
	switch category {
	case models.CategoryIdentity, models.CategorySecurity, models.CategoryCommunication:
		return category, nil
	}
	return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown category %q", raw))
}

func instructorFromInput(input dto.InstructorInput, category models.InstructorCategory) *models.Instructor {
	return &models.Instructor{
		Name:            input.Name,
		Rank:            input.Rank,
		Category:        category,
		Specialty:       input.Specialty,
		Phone:           input.Phone,
		Email:           input.Email,
		Affiliation:     input.Affiliation,
		AvailableRegion: input.AvailableRegion,
		Rating:          input.Rating,
		Notes:           input.Notes,
		PhotoURL:        input.PhotoURL,
	}
}
