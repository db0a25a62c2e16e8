package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parancompany/navycamp-api/internal/dto"
	"github.com/parancompany/navycamp-api/internal/models"
	"github.com/parancompany/navycamp-api/pkg/config"
	"github.com/parancompany/navycamp-api/pkg/jobs"
	"github.com/parancompany/navycamp-api/pkg/mail"
)

const (
	jobTypeLifecycleMail = "lifecycle_mail"
	jobTypeAccessMail    = "access_request_mail"
)

// NotificationService composes Korean lifecycle emails and delivers them
// asynchronously through the background queue. Delivery failures never
// propagate into the request lifecycle.
type NotificationService struct {
	sender  mail.Sender
	queue   *jobs.Queue
	metrics *MetricsService
	cfg     config.NotificationsConfig
	logger  *zap.Logger
}

// NewNotificationService builds the service and its delivery queue. The queue
// must be started with Start before notifications flow.
func NewNotificationService(sender mail.Sender, metrics *MetricsService, cfg config.NotificationsConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &NotificationService{sender: sender, metrics: metrics, cfg: cfg, logger: logger}
	s.queue = jobs.NewQueue("notifications", s.deliver, jobs.QueueConfig{
		Workers:    cfg.Workers,
		BufferSize: cfg.QueueCapacity,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return s
}

// Start launches the delivery workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the delivery workers.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// Enabled reports whether outbound mail is configured.
func (s *NotificationService) Enabled() bool {
	return s != nil && s.cfg.Enabled && s.sender != nil
}

// RequestCreated notifies the camp administrator about a new request.
func (s *NotificationService) RequestCreated(detail *models.TrainingRequestDetail) {
	if !s.Enabled() || s.cfg.AdminEmail == "" {
		return
	}
	subject := fmt.Sprintf("[필승해군캠프] 새 교육 신청 접수 (#%d)", detail.ID)
	body := new(strings.Builder)
	fmt.Fprintf(body, "새로운 교육 신청이 접수되었습니다.\n\n")
	fmt.Fprintf(body, "신청 번호: %d\n", detail.ID)
	fmt.Fprintf(body, "신청 부대: %s", detail.Fleet)
	if detail.Ship != nil {
		fmt.Fprintf(body, " %s", *detail.Ship)
	}
	fmt.Fprintf(body, "\n신청자: %s (%s)\n", detail.UserName, detail.UserEmail)
	fmt.Fprintf(body, "교육 장소: %s\n", detail.VenueName)
	fmt.Fprintf(body, "교육 일자: %s\n", formatRange(detail))
	s.enqueue(jobTypeLifecycleMail, mail.Message{
		To:      s.cfg.AdminEmail,
		Subject: subject,
		Text:    body.String(),
	})
}

// StatusChanged notifies the requesting unit when a request is confirmed,
// rejected or cancelled.
func (s *NotificationService) StatusChanged(detail *models.TrainingRequestDetail, reason string) {
	if !s.Enabled() || detail.UserEmail == "" {
		return
	}
	var subject, headline string
	switch detail.Status {
	case models.RequestStatusConfirmed:
		subject = fmt.Sprintf("[필승해군캠프] 교육 신청이 확정되었습니다 (#%d)", detail.ID)
		headline = "신청하신 교육 일정이 확정되었습니다."
	case models.RequestStatusRejected:
		subject = fmt.Sprintf("[필승해군캠프] 교육 신청이 반려되었습니다 (#%d)", detail.ID)
		headline = "신청하신 교육이 반려되었습니다."
	case models.RequestStatusCancelled:
		subject = fmt.Sprintf("[필승해군캠프] 교육 신청이 취소되었습니다 (#%d)", detail.ID)
		headline = "신청하신 교육이 취소되었습니다."
	default:
		return
	}

	body := new(strings.Builder)
	fmt.Fprintf(body, "%s님, 안녕하세요.\n\n%s\n\n", detail.UserName, headline)
	fmt.Fprintf(body, "신청 번호: %d\n", detail.ID)
	fmt.Fprintf(body, "교육 장소: %s\n", detail.VenueName)
	fmt.Fprintf(body, "교육 일자: %s\n", formatRange(detail))
	if reason != "" {
		fmt.Fprintf(body, "사유: %s\n", reason)
	}
	fmt.Fprintf(body, "\n필승해군캠프 운영팀 드림")
	s.enqueue(jobTypeLifecycleMail, mail.Message{
		To:      detail.UserEmail,
		Subject: subject,
		Text:    body.String(),
	})
}

// AccessRequested forwards the schedule access contact form to the admin.
func (s *NotificationService) AccessRequested(input dto.AccessRequestInput) error {
	if !s.Enabled() || s.cfg.AdminEmail == "" {
		return fmt.Errorf("notifications disabled")
	}
	body := new(strings.Builder)
	fmt.Fprintf(body, "일정 열람 권한 신청이 접수되었습니다.\n\n")
	fmt.Fprintf(body, "성명: %s\n", input.Name)
	fmt.Fprintf(body, "계급: %s\n", input.Rank)
	fmt.Fprintf(body, "소속: %s\n", input.Unit)
	fmt.Fprintf(body, "이메일: %s\n", input.Email)
	fmt.Fprintf(body, "연락처: %s\n", input.Phone)
	fmt.Fprintf(body, "신청 사유: %s\n", input.Reason)
	return s.enqueue(jobTypeAccessMail, mail.Message{
		To:      s.cfg.AdminEmail,
		Subject: "[필승해군캠프] 일정 열람 권한 신청",
		Text:    body.String(),
	})
}

func (s *NotificationService) enqueue(jobType string, msg mail.Message) error {
	err := s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    jobType,
		Payload: msg,
	})
	if err != nil {
		s.logger.Warn("failed to enqueue notification", zap.String("type", jobType), zap.Error(err))
	}
	return err
}

func (s *NotificationService) deliver(ctx context.Context, job jobs.Job) error {
	msg, ok := job.Payload.(mail.Message)
	if !ok {
		s.logger.Error("unexpected notification payload", zap.String("job_id", job.ID))
		return nil
	}
	if err := s.sender.Send(msg); err != nil {
		if job.Attempt >= s.cfg.MaxRetries {
			s.metrics.RecordEmail(false)
		}
		return err
	}
	s.metrics.RecordEmail(true)
	return nil
}

func formatRange(detail *models.TrainingRequestDetail) string {
	start := detail.RequestDate.Format("2006-01-02")
	if detail.RequestEndDate != nil {
		return fmt.Sprintf("%s ~ %s", start, detail.RequestEndDate.Format("2006-01-02"))
	}
	return start
}
