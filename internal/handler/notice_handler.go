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

type noticeService interface {
	CreateNotice(ctx context.Context, input dto.NoticeInput) (*models.Notice, error)
	ListNotices(ctx context.Context) ([]models.Notice, error)
	DeleteNotice(ctx context.Context, id int64) error
	CreateBoardPost(ctx context.Context, input dto.BoardPostInput) (*models.BoardPost, error)
	ListBoardPosts(ctx context.Context) ([]models.BoardPost, error)
	DeleteBoardPost(ctx context.Context, id int64) error
}

// NoticeHandler exposes notice and board endpoints.
type NoticeHandler struct {
	notices noticeService
}

// NewNoticeHandler constructs NoticeHandler.
func NewNoticeHandler(notices noticeService) *NoticeHandler {
	return &NoticeHandler{notices: notices}
}

// ListNotices returns announcements.
func (h *NoticeHandler) ListNotices(c *gin.Context) {
	notices, err := h.notices.ListNotices(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notices, nil)
}

// CreateNotice publishes an announcement.
func (h *NoticeHandler) CreateNotice(c *gin.Context) {
	var input dto.NoticeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	notice, err := h.notices.CreateNotice(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, notice)
}

// DeleteNotice removes an announcement.
func (h *NoticeHandler) DeleteNotice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.notices.DeleteNotice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListBoardPosts returns board posts.
func (h *NoticeHandler) ListBoardPosts(c *gin.Context) {
	posts, err := h.notices.ListBoardPosts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, posts, nil)
}

// CreateBoardPost publishes a board post.
func (h *NoticeHandler) CreateBoardPost(c *gin.Context) {
	var input dto.BoardPostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	post, err := h.notices.CreateBoardPost(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, post)
}

// DeleteBoardPost removes a board post.
func (h *NoticeHandler) DeleteBoardPost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.notices.DeleteBoardPost(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
