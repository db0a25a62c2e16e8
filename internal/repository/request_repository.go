package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/parancompany/navycamp-api/internal/models"
)

// ErrVenueBooked signals that an active request already claims one of the
// requested venues on an overlapping date range.
var ErrVenueBooked = errors.New("venue already booked for the requested range")

const requestDetailColumns = `r.id, r.user_id, r.venue_id, r.second_venue_id,
       r.identity_instructor_id, r.security_instructor_id, r.communication_instructor_id,
       r.training_type, r.fleet, r.ship, r.participant_count,
       r.request_date, r.request_end_date, r.start_time,
       r.status, r.notes, r.plan, r.rejection_reason, r.created_at, r.updated_at,
       u.name AS user_name, u.email AS user_email,
       v.name AS venue_name, sv.name AS second_venue_name,
       ii.name AS identity_instructor_name,
       si.name AS security_instructor_name,
       ci.name AS communication_instructor_name`

const requestDetailJoins = ` FROM training_requests r
  JOIN users u ON u.id = r.user_id
  JOIN venues v ON v.id = r.venue_id
  LEFT JOIN venues sv ON sv.id = r.second_venue_id
  LEFT JOIN instructors ii ON ii.id = r.identity_instructor_id
  LEFT JOIN instructors si ON si.id = r.security_instructor_id
  LEFT JOIN instructors ci ON ci.id = r.communication_instructor_id`

// RequestRepository persists training requests.
type RequestRepository struct {
	db *sqlx.DB
}

// NewRequestRepository constructs the repository.
func NewRequestRepository(db *sqlx.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// Create inserts a new request after verifying, inside one serializable
// transaction, that no active request claims either venue on an overlapping
// date range. Returns ErrVenueBooked when the check fails.
func (r *RequestRepository) Create(ctx context.Context, req *models.TrainingRequest) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin create request: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	venueIDs := []int64{req.VenueID}
	if req.SecondVenueID != nil {
		venueIDs = append(venueIDs, *req.SecondVenueID)
	}
	endDate := req.EndOrStart()

	var booked bool
	const overlapQuery = `SELECT EXISTS (
	SELECT 1 FROM training_requests
	WHERE status NOT IN ('REJECTED', 'CANCELLED')
	  AND request_date <= $1
	  AND COALESCE(request_end_date, request_date) >= $2
	  AND (venue_id = ANY($3) OR second_venue_id = ANY($3)))`
	if err := tx.GetContext(ctx, &booked, overlapQuery, endDate, req.RequestDate, pq.Array(venueIDs)); err != nil {
		return fmt.Errorf("check venue overlap: %w", err)
	}
	if booked {
		return ErrVenueBooked
	}

	const insertQuery = `INSERT INTO training_requests
	(user_id, venue_id, second_venue_id,
	 identity_instructor_id, security_instructor_id, communication_instructor_id,
	 training_type, fleet, ship, participant_count,
	 request_date, request_end_date, start_time, status, notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	RETURNING id, created_at, updated_at`
	row := tx.QueryRowContext(ctx, insertQuery,
		req.UserID, req.VenueID, req.SecondVenueID,
		req.IdentityInstructorID, req.SecurityInstructorID, req.CommunicationInstructorID,
		req.TrainingType, req.Fleet, req.Ship, req.ParticipantCount,
		req.RequestDate, req.RequestEndDate, req.StartTime, req.Status, req.Notes,
	)
	if err := row.Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt); err != nil {
		return fmt.Errorf("insert request: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create request: %w", err)
	}
	return nil
}

// GetByID fetches a bare request row.
func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*models.TrainingRequest, error) {
	const query = `SELECT id, user_id, venue_id, second_venue_id,
       identity_instructor_id, security_instructor_id, communication_instructor_id,
       training_type, fleet, ship, participant_count,
       request_date, request_end_date, start_time,
       status, notes, plan, rejection_reason, created_at, updated_at
	FROM training_requests WHERE id = $1`
	var req models.TrainingRequest
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		return nil, err
	}
	return &req, nil
}

// GetDetailByID fetches a request with joined display names.
func (r *RequestRepository) GetDetailByID(ctx context.Context, id int64) (*models.TrainingRequestDetail, error) {
	query := "SELECT " + requestDetailColumns + requestDetailJoins + " WHERE r.id = $1"
	var detail models.TrainingRequestDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// List returns requests matching the filter, newest first.
func (r *RequestRepository) List(ctx context.Context, filter models.RequestFilter) ([]models.TrainingRequestDetail, error) {
	builder := strings.Builder{}
	builder.WriteString("SELECT " + requestDetailColumns + requestDetailJoins)

	args := make([]interface{}, 0, 2)
	conditions := make([]string, 0, 2)
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conditions = append(conditions, fmt.Sprintf("r.user_id = $%d", len(args)))
	}
	if filter.Fleet != "" {
		args = append(args, filter.Fleet)
		conditions = append(conditions, fmt.Sprintf("r.fleet = $%d", len(args)))
	}
	if len(conditions) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}
	builder.WriteString(" ORDER BY r.created_at DESC, r.id DESC")

	details := []models.TrainingRequestDetail{}
	if err := r.db.SelectContext(ctx, &details, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return details, nil
}

// ListActiveOverlapping returns the non-terminal requests whose inclusive date
// range intersects [start, end].
func (r *RequestRepository) ListActiveOverlapping(ctx context.Context, start, end time.Time) ([]models.TrainingRequest, error) {
	const query = `SELECT id, user_id, venue_id, second_venue_id,
       identity_instructor_id, security_instructor_id, communication_instructor_id,
       training_type, fleet, ship, participant_count,
       request_date, request_end_date, start_time,
       status, notes, plan, rejection_reason, created_at, updated_at
	FROM training_requests
	WHERE status NOT IN ('REJECTED', 'CANCELLED')
	  AND request_date <= $1
	  AND COALESCE(request_end_date, request_date) >= $2
	ORDER BY id`
	requests := []models.TrainingRequest{}
	if err := r.db.SelectContext(ctx, &requests, query, end, start); err != nil {
		return nil, fmt.Errorf("list overlapping requests: %w", err)
	}
	return requests, nil
}

// ListConfirmedInRange returns confirmed requests overlapping [start, end],
// used by schedule exports.
func (r *RequestRepository) ListConfirmedInRange(ctx context.Context, start, end time.Time) ([]models.TrainingRequestDetail, error) {
	query := "SELECT " + requestDetailColumns + requestDetailJoins + `
	WHERE r.status = 'CONFIRMED'
	  AND r.request_date <= $1
	  AND COALESCE(r.request_end_date, r.request_date) >= $2
	ORDER BY r.request_date, r.id`
	details := []models.TrainingRequestDetail{}
	if err := r.db.SelectContext(ctx, &details, query, end, start); err != nil {
		return nil, fmt.Errorf("list confirmed requests: %w", err)
	}
	return details, nil
}

// UpdateStatusFrom moves a request from one status to another with a
// compare-and-set guard on the current status. Returns sql.ErrNoRows when the
// request no longer carries the expected status.
func (r *RequestRepository) UpdateStatusFrom(ctx context.Context, id int64, from, to models.RequestStatus, reason *string) error {
	const query = `UPDATE training_requests
	SET status = $1, rejection_reason = $2, updated_at = $3
	WHERE id = $4 AND status = $5`
	result, err := r.db.ExecContext(ctx, query, to, reason, time.Now().UTC(), id, from)
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	return requireRowAffected(result)
}

// UpdateInstructors overwrites the three category slots.
func (r *RequestRepository) UpdateInstructors(ctx context.Context, id int64, identity, security, communication *int64) error {
	const query = `UPDATE training_requests
	SET identity_instructor_id = $1, security_instructor_id = $2, communication_instructor_id = $3, updated_at = $4
	WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query, identity, security, communication, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update request instructors: %w", err)
	}
	return requireRowAffected(result)
}

// UpdatePlan overwrites the operational plan text.
func (r *RequestRepository) UpdatePlan(ctx context.Context, id int64, plan string) error {
	const query = `UPDATE training_requests SET plan = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, plan, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update request plan: %w", err)
	}
	return requireRowAffected(result)
}

func requireRowAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check affected rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
