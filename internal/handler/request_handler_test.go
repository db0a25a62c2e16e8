package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parancompany/navycamp-api/internal/dto"
	"github.com/parancompany/navycamp-api/internal/middleware"
	"github.com/parancompany/navycamp-api/internal/models"
	appErrors "github.com/parancompany/navycamp-api/pkg/errors"
)

type requestServiceMock struct {
	createdInput *dto.CreateRequestInput
	listFilter   *models.RequestFilter
	getResp      *dto.RequestResponse
	statusErr    error
}

func (m *requestServiceMock) Create(ctx context.Context, input dto.CreateRequestInput) (*dto.RequestResponse, error) {
	m.createdInput = &input
	return &dto.RequestResponse{ID: 1, UserID: input.UserID, Status: models.RequestStatusPending}, nil
}

func (m *requestServiceMock) Get(ctx context.Context, id int64) (*dto.RequestResponse, error) {
	if m.getResp == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "request not found")
	}
	return m.getResp, nil
}

func (m *requestServiceMock) List(ctx context.Context, filter models.RequestFilter) ([]dto.RequestResponse, error) {
	m.listFilter = &filter
	return []dto.RequestResponse{}, nil
}

func (m *requestServiceMock) UpdateStatus(ctx context.Context, id int64, input dto.UpdateStatusInput) (*dto.RequestResponse, error) {
	if m.statusErr != nil {
		return nil, m.statusErr
	}
	return &dto.RequestResponse{ID: id, Status: models.RequestStatus(input.Status)}, nil
}

func (m *requestServiceMock) AssignInstructors(ctx context.Context, id int64, input dto.AssignInstructorsInput) (*dto.RequestResponse, error) {
	return &dto.RequestResponse{ID: id}, nil
}

func (m *requestServiceMock) UpdatePlan(ctx context.Context, id int64, input dto.UpdatePlanInput) (*dto.RequestResponse, error) {
	return &dto.RequestResponse{ID: id, Plan: &input.Plan}, nil
}

func (m *requestServiceMock) CheckAvailability(ctx context.Context, startStr, endStr string) (*dto.AvailabilityResponse, error) {
	return &dto.AvailabilityResponse{BookedVenueIDs: []int64{11}, BookedInstructorIDs: []int64{}}, nil
}

func newRequestTestContext(t *testing.T, method, target string, payload interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, target, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestRequestHandlerCreateForcesUnitIdentity(t *testing.T) {
	mock := &requestServiceMock{}
	h := NewRequestHandler(mock)

	c, w := newRequestTestContext(t, http.MethodPost, "/requests", dto.CreateRequestInput{
		UserID:       99,
		VenueID:      11,
		TrainingType: "ONE_DAY",
		Fleet:        "1함대",
		RequestDate:  "2026-09-10",
	})
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 3, Role: models.RoleUnit})

	h.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, mock.createdInput)
	assert.Equal(t, int64(3), mock.createdInput.UserID)
}

func TestRequestHandlerCreateInvalidBody(t *testing.T) {
	h := NewRequestHandler(&requestServiceMock{})
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/requests", bytes.NewReader([]byte(`not json`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestHandlerListScopesUnitAccounts(t *testing.T) {
	mock := &requestServiceMock{}
	h := NewRequestHandler(mock)

	c, w := newRequestTestContext(t, http.MethodGet, "/requests", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 3, Role: models.RoleUnit})

	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mock.listFilter)
	require.NotNil(t, mock.listFilter.UserID)
	assert.Equal(t, int64(3), *mock.listFilter.UserID)

	mock.listFilter = nil
	c, w = newRequestTestContext(t, http.MethodGet, "/requests", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 1, Role: models.RoleAdmin})

	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mock.listFilter)
	assert.Nil(t, mock.listFilter.UserID)
}

func TestRequestHandlerGetHidesForeignRequests(t *testing.T) {
	mock := &requestServiceMock{getResp: &dto.RequestResponse{ID: 5, UserID: 9}}
	h := NewRequestHandler(mock)

	c, w := newRequestTestContext(t, http.MethodGet, "/requests/5", nil)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 3, Role: models.RoleUnit})

	h.Get(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequestHandlerUpdateStatusMapsErrors(t *testing.T) {
	mock := &requestServiceMock{statusErr: appErrors.Clone(appErrors.ErrInvalidTransition, "")}
	h := NewRequestHandler(mock)

	c, w := newRequestTestContext(t, http.MethodPatch, "/requests/5/status", dto.UpdateStatusInput{Status: "CONFIRMED"})
	c.Params = gin.Params{{Key: "id", Value: "5"}}

	h.UpdateStatus(c)
	assert.Equal(t, http.StatusConflict, w.Code)

	var envelope struct {
		Error *appErrors.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "INVALID_TRANSITION", envelope.Error.Code)
}

func TestRequestHandlerRejectsBadID(t *testing.T) {
	h := NewRequestHandler(&requestServiceMock{})

	c, w := newRequestTestContext(t, http.MethodGet, "/requests/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.Get(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestHandlerAvailability(t *testing.T) {
	h := NewRequestHandler(&requestServiceMock{})

	c, w := newRequestTestContext(t, http.MethodGet, "/requests/availability?date=2026-09-10", nil)

	h.CheckAvailability(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.AvailabilityResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, []int64{11}, envelope.Data.BookedVenueIDs)
}
