package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/parancompany/navycamp-api/internal/models"
)

const instructorColumns = `id, name, "rank", category, specialty, phone, email,
       affiliation, available_region, rating, notes, photo_url, created_at`

// InstructorRepository persists the instructor directory and schedules.
type InstructorRepository struct {
	db *sqlx.DB
}

// NewInstructorRepository constructs the repository.
func NewInstructorRepository(db *sqlx.DB) *InstructorRepository {
	return &InstructorRepository{db: db}
}

// Create inserts a new instructor.
func (r *InstructorRepository) Create(ctx context.Context, inst *models.Instructor) error {
	const query = `INSERT INTO instructors
	(name, "rank", category, specialty, phone, email, affiliation, available_region, rating, notes, photo_url)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING id, created_at`
	row := r.db.QueryRowContext(ctx, query,
		inst.Name, inst.Rank, inst.Category, inst.Specialty, inst.Phone, inst.Email,
		inst.Affiliation, inst.AvailableRegion, inst.Rating, inst.Notes, inst.PhotoURL)
	if err := row.Scan(&inst.ID, &inst.CreatedAt); err != nil {
		return fmt.Errorf("insert instructor: %w", err)
	}
	return nil
}

// GetByID fetches an instructor by identifier.
func (r *InstructorRepository) GetByID(ctx context.Context, id int64) (*models.Instructor, error) {
	query := "SELECT " + instructorColumns + " FROM instructors WHERE id = $1"
	var inst models.Instructor
	if err := r.db.GetContext(ctx, &inst, query, id); err != nil {
		return nil, err
	}
	return &inst, nil
}

// List returns all instructors, optionally filtered by category.
func (r *InstructorRepository) List(ctx context.Context, category models.InstructorCategory) ([]models.Instructor, error) {
	query := "SELECT " + instructorColumns + " FROM instructors"
	args := []interface{}{}
	if category != "" {
		query += " WHERE category = $1"
		args = append(args, category)
	}
	query += " ORDER BY name"
	instructors := []models.Instructor{}
	if err := r.db.SelectContext(ctx, &instructors, query, args...); err != nil {
		return nil, fmt.Errorf("list instructors: %w", err)
	}
	return instructors, nil
}

// Update overwrites an instructor's profile.
func (r *InstructorRepository) Update(ctx context.Context, inst *models.Instructor) error {
	const query = `UPDATE instructors
	SET name = $1, "rank" = $2, category = $3, specialty = $4, phone = $5, email = $6,
	    affiliation = $7, available_region = $8, rating = $9, notes = $10, photo_url = $11
	WHERE id = $12`
	result, err := r.db.ExecContext(ctx, query,
		inst.Name, inst.Rank, inst.Category, inst.Specialty, inst.Phone, inst.Email,
		inst.Affiliation, inst.AvailableRegion, inst.Rating, inst.Notes, inst.PhotoURL, inst.ID)
	if err != nil {
		return fmt.Errorf("update instructor: %w", err)
	}
	return requireRowAffected(result)
}

// Delete removes an instructor from the directory.
func (r *InstructorRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM instructors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete instructor: %w", err)
	}
	return requireRowAffected(result)
}

// CreateSchedule inserts a schedule entry (manual or request-sourced).
func (r *InstructorRepository) CreateSchedule(ctx context.Context, s *models.InstructorSchedule) error {
	const query = `INSERT INTO instructor_schedules
	(instructor_id, schedule_date, end_date, description, source, request_id)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at`
	row := r.db.QueryRowContext(ctx, query,
		s.InstructorID, s.ScheduleDate, s.EndDate, s.Description, s.Source, s.RequestID)
	if err := row.Scan(&s.ID, &s.CreatedAt); err != nil {
		return fmt.Errorf("insert instructor schedule: %w", err)
	}
	return nil
}

// ListSchedules returns an instructor's schedule entries, earliest first.
func (r *InstructorRepository) ListSchedules(ctx context.Context, instructorID int64) ([]models.InstructorSchedule, error) {
	const query = `SELECT id, instructor_id, schedule_date, end_date, description, source, request_id, created_at
	FROM instructor_schedules WHERE instructor_id = $1 ORDER BY schedule_date, id`
	schedules := []models.InstructorSchedule{}
	if err := r.db.SelectContext(ctx, &schedules, query, instructorID); err != nil {
		return nil, fmt.Errorf("list instructor schedules: %w", err)
	}
	return schedules, nil
}

// DeleteSchedule removes a single manual schedule entry.
func (r *InstructorRepository) DeleteSchedule(ctx context.Context, instructorID, scheduleID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM instructor_schedules WHERE id = $1 AND instructor_id = $2`, scheduleID, instructorID)
	if err != nil {
		return fmt.Errorf("delete instructor schedule: %w", err)
	}
	return requireRowAffected(result)
}

// DeleteSchedulesByRequest removes all schedule rows created for a request.
func (r *InstructorRepository) DeleteSchedulesByRequest(ctx context.Context, requestID int64) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM instructor_schedules WHERE request_id = $1`, requestID); err != nil {
		return fmt.Errorf("delete request schedules: %w", err)
	}
	return nil
}

// ListBookedInstructorIDs returns distinct instructors with a schedule entry
// overlapping [start, end].
func (r *InstructorRepository) ListBookedInstructorIDs(ctx context.Context, start, end time.Time) ([]int64, error) {
	const query = `SELECT DISTINCT instructor_id FROM instructor_schedules
	WHERE schedule_date <= $1 AND COALESCE(end_date, schedule_date) >= $2
	ORDER BY instructor_id`
	ids := []int64{}
	if err := r.db.SelectContext(ctx, &ids, query, end, start); err != nil {
		return nil, fmt.Errorf("list booked instructors: %w", err)
	}
	return ids, nil
}
