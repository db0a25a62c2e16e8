package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parancompany/navycamp-api/internal/dto"
	"github.com/parancompany/navycamp-api/internal/models"
	appErrors "github.com/parancompany/navycamp-api/pkg/errors"
	"github.com/parancompany/navycamp-api/pkg/response"
)

type authService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error)
}

type accessMailer interface {
	AccessRequested(input dto.AccessRequestInput) error
}

// AuthHandler exposes login, registration and the access-request form.
type AuthHandler struct {
	auth   authService
	mailer accessMailer
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth authService, mailer accessMailer) *AuthHandler {
	return &AuthHandler{auth: auth, mailer: mailer}
}

// Login godoc
// @Summary Authenticate an account
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Register godoc
// @Summary Create an account
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.RegisterRequest true "Account payload"
// @Success 201 {object} response.Envelope
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	user, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, user)
}

// RequestAccess godoc
// @Summary Submit the schedule access contact form
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.AccessRequestInput true "Contact form"
// @Success 202 {object} response.Envelope
// @Router /auth/access-request [post]
func (h *AuthHandler) RequestAccess(c *gin.Context) {
	var input dto.AccessRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if h.mailer == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "access requests are not accepted right now"))
		return
	}
	if err := h.mailer.AccessRequested(input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to forward access request"))
		return
	}
	response.JSON(c, http.StatusAccepted, gin.H{"received": true}, nil)
}
