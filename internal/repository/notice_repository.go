package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/parancompany/navycamp-api/internal/models"
)

// NoticeRepository persists notices and board posts.
type NoticeRepository struct {
	db *sqlx.DB
}

// NewNoticeRepository constructs the repository.
func NewNoticeRepository(db *sqlx.DB) *NoticeRepository {
	return &NoticeRepository{db: db}
}

// CreateNotice inserts a notice.
func (r *NoticeRepository) CreateNotice(ctx context.Context, n *models.Notice) error {
	const query = `INSERT INTO notices (title, content, author, important)
	VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	row := r.db.QueryRowContext(ctx, query, n.Title, n.Content, n.Author, n.Important)
	if err := row.Scan(&n.ID, &n.CreatedAt); err != nil {
		return fmt.Errorf("insert notice: %w", err)
	}
	return nil
}

// ListNotices returns notices, important first then newest first.
func (r *NoticeRepository) ListNotices(ctx context.Context) ([]models.Notice, error) {
	const query = `SELECT id, title, content, author, important, created_at
	FROM notices ORDER BY important DESC, created_at DESC`
	notices := []models.Notice{}
	if err := r.db.SelectContext(ctx, &notices, query); err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	return notices, nil
}

// DeleteNotice removes a notice.
func (r *NoticeRepository) DeleteNotice(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete notice: %w", err)
	}
	return requireRowAffected(result)
}

// CreateBoardPost inserts a board post.
func (r *NoticeRepository) CreateBoardPost(ctx context.Context, p *models.BoardPost) error {
	const query = `INSERT INTO board_posts (title, content, summary, author, tags)
	VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	row := r.db.QueryRowContext(ctx, query, p.Title, p.Content, p.Summary, p.Author, p.Tags)
	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("insert board post: %w", err)
	}
	return nil
}

// ListBoardPosts returns board posts newest first.
func (r *NoticeRepository) ListBoardPosts(ctx context.Context) ([]models.BoardPost, error) {
	const query = `SELECT id, title, content, summary, author, tags, created_at
	FROM board_posts ORDER BY created_at DESC`
	posts := []models.BoardPost{}
	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("list board posts: %w", err)
	}
	return posts, nil
}

// DeleteBoardPost removes a board post.
func (r *NoticeRepository) DeleteBoardPost(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM board_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete board post: %w", err)
	}
	return requireRowAffected(result)
}
