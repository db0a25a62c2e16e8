package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/parancompany/navycamp-api/internal/dto"
	"github.com/parancompany/navycamp-api/internal/models"
	appErrors "github.com/parancompany/navycamp-api/pkg/errors"
)

type noticeStore interface {
	CreateNotice(ctx context.Context, n *models.Notice) error
	ListNotices(ctx context.Context) ([]models.Notice, error)
	DeleteNotice(ctx context.Context, id int64) error
	CreateBoardPost(ctx context.Context, p *models.BoardPost) error
	ListBoardPosts(ctx context.Context) ([]models.BoardPost, error)
	DeleteBoardPost(ctx context.Context, id int64) error
}

// NoticeService manages announcements and the information board.
type NoticeService struct {
	repo      noticeStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNoticeService constructs a NoticeService.
func NewNoticeService(repo noticeStore, validate *validator.Validate, logger *zap.Logger) *NoticeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoticeService{repo: repo, validator: validate, logger: logger}
}

// CreateNotice publishes an announcement.
func (s *NoticeService) CreateNotice(ctx context.Context, input dto.NoticeInput) (*models.Notice, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid notice payload")
	}
	notice := &models.Notice{
		Title:     input.Title,
		Content:   input.Content,
		Author:    input.Author,
		Important: input.Important,
	}
	if err := s.repo.CreateNotice(ctx, notice); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create notice")
	}
	return notice, nil
}

// ListNotices returns announcements, important ones first.
func (s *NoticeService) ListNotices(ctx context.Context) ([]models.Notice, error) {
	notices, err := s.repo.ListNotices(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notices")
	}
	return notices, nil
}

// DeleteNotice removes an announcement.
func (s *NoticeService) DeleteNotice(ctx context.Context, id int64) error {
	if err := s.repo.DeleteNotice(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "notice not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete notice")
	}
	return nil
}

// CreateBoardPost publishes a board post.
func (s *NoticeService) CreateBoardPost(ctx context.Context, input dto.BoardPostInput) (*models.BoardPost, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid board post payload")
	}
	post := &models.BoardPost{
		Title:   input.Title,
		Content: input.Content,
		Summary: input.Summary,
		Author:  input.Author,
		Tags:    input.Tags,
	}
	if err := s.repo.CreateBoardPost(ctx, post); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create board post")
	}
	return post, nil
}

// ListBoardPosts returns board posts newest first.
func (s *NoticeService) ListBoardPosts(ctx context.Context) ([]models.BoardPost, error) {
	posts, err := s.repo.ListBoardPosts(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list board posts")
	}
	return posts, nil
}

// DeleteBoardPost removes a board post.
func (s *NoticeService) DeleteBoardPost(ctx context.Context, id int64) error {
	if err := s.repo.DeleteBoardPost(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "board post not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete board post")
	}
	return nil
}
