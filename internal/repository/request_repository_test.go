package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/parancompany/navycamp-api/internal/models"
)

func newRequestRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestRequestRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRequestRepoMock(t)
	defer cleanup()

	repo := NewRequestRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO training_requests")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))
	mock.ExpectCommit()

	participants := 120
	req := &models.TrainingRequest{
		UserID:           3,
		VenueID:          11,
		TrainingType:     models.TrainingTypeOneDay,
		Fleet:            "1함대",
		ParticipantCount: &participants,
		RequestDate:      time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Status:           models.RequestStatusPending,
	}
	require.NoError(t, repo.Create(context.Background(), req))
	require.Equal(t, int64(7), req.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryCreateVenueBooked(t *testing.T) {
	db, mock, cleanup := newRequestRepoMock(t)
	defer cleanup()

	repo := NewRequestRepository(db)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	req := &models.TrainingRequest{
		UserID:       3,
		VenueID:      11,
		TrainingType: models.TrainingTypeOneDay,
		RequestDate:  time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Status:       models.RequestStatusPending,
	}
	err := repo.Create(context.Background(), req)
	require.ErrorIs(t, err, ErrVenueBooked)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newRequestRepoMock(t)
	defer cleanup()

	repo := NewRequestRepository(db)
	now := time.Now()
	cols := []string{
		"id", "user_id", "venue_id", "second_venue_id",
		"identity_instructor_id", "security_instructor_id", "communication_instructor_id",
		"training_type", "fleet", "ship", "participant_count",
		"request_date", "request_end_date", "start_time",
		"status", "notes", "plan", "rejection_reason", "created_at", "updated_at",
		"user_name", "user_email", "venue_name", "second_venue_name",
		"identity_instructor_name", "security_instructor_name", "communication_instructor_name",
	}
	rows := sqlmock.NewRows(cols).AddRow(
		int64(5), int64(3), int64(11), nil,
		nil, nil, nil,
		"ONE_DAY", "1함대", nil, 80,
		now, nil, nil,
		"PENDING", nil, nil, nil, now, now,
		"김철수", "unit@navy.mil.kr", "해군회관", nil,
		nil, nil, nil,
	)
	userID := int64(3)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT r.id, r.user_id")).
		WithArgs(userID, "1함대").
		WillReturnRows(rows)

	details, err := repo.List(context.Background(), models.RequestFilter{UserID: &userID, Fleet: "1함대"})
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.Equal(t, int64(5), details[0].ID)
	require.Equal(t, "해군회관", details[0].VenueName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryUpdateStatusFrom(t *testing.T) {
	db, mock, cleanup := newRequestRepoMock(t)
	defer cleanup()

	repo := NewRequestRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE training_requests")).
		WithArgs("VENUE_CHECK", nil, sqlmock.AnyArg(), int64(5), "PENDING").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateStatusFrom(context.Background(), 5,
		models.RequestStatusPending, models.RequestStatusVenueCheck, nil))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE training_requests")).
		WithArgs("VENUE_CHECK", nil, sqlmock.AnyArg(), int64(5), "PENDING").
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.UpdateStatusFrom(context.Background(), 5,
		models.RequestStatusPending, models.RequestStatusVenueCheck, nil)
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryUpdateInstructors(t *testing.T) {
	db, mock, cleanup := newRequestRepoMock(t)
	defer cleanup()

	repo := NewRequestRepository(db)
	identity := int64(21)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE training_requests")).
		WithArgs(identity, nil, nil, sqlmock.AnyArg(), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateInstructors(context.Background(), 5, &identity, nil, nil))
	require.NoError(t, mock.ExpectationsWereMet())
}
