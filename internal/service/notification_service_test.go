package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parancompany/navycamp-api/internal/dto"
	"github.com/parancompany/navycamp-api/internal/models"
	"github.com/parancompany/navycamp-api/pkg/config"
	"github.com/parancompany/navycamp-api/pkg/mail"
)

type captureSender struct {
	mu       sync.Mutex
	messages []mail.Message
}

func (c *captureSender) Send(msg mail.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
	return nil
}

func (c *captureSender) waitFor(t *testing.T, n int) []mail.Message {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		c.mu.Lock()
		count := len(c.messages)
		c.mu.Unlock()
		if count >= n {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	require.Len(t, c.messages, n)
	return append([]mail.Message(nil), c.messages...)
}

func notificationTestConfig() config.NotificationsConfig {
	return config.NotificationsConfig{
		Enabled:       true,
		AdminEmail:    "admin@navycamp.kr",
		Workers:       1,
		MaxRetries:    1,
		RetryDelay:    10 * time.Millisecond,
		QueueCapacity: 8,
	}
}

func confirmedDetail() *models.TrainingRequestDetail {
	return &models.TrainingRequestDetail{
		TrainingRequest: models.TrainingRequest{
			ID:          5,
			Fleet:       "1함대",
			RequestDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			Status:      models.RequestStatusConfirmed,
		},
		UserName:  "김철수",
		UserEmail: "unit@navy.mil.kr",
		VenueName: "해군회관",
	}
}

func TestNotificationServiceStatusChanged(t *testing.T) {
	sender := &captureSender{}
	svc := NewNotificationService(sender, nil, notificationTestConfig(), nil)
	svc.Start(context.Background())
	defer svc.Stop()

	svc.StatusChanged(confirmedDetail(), "")

	messages := sender.waitFor(t, 1)
	assert.Equal(t, "unit@navy.mil.kr", messages[0].To)
	assert.Contains(t, messages[0].Subject, "확정")
	assert.Contains(t, messages[0].Text, "해군회관")
	assert.Contains(t, messages[0].Text, "2026-09-10")
}

func TestNotificationServiceRejectionIncludesReason(t *testing.T) {
	sender := &captureSender{}
	svc := NewNotificationService(sender, nil, notificationTestConfig(), nil)
	svc.Start(context.Background())
	defer svc.Stop()

	detail := confirmedDetail()
	detail.Status = models.RequestStatusRejected
	svc.StatusChanged(detail, "장소 섭외 불가")

	messages := sender.waitFor(t, 1)
	assert.Contains(t, messages[0].Subject, "반려")
	assert.Contains(t, messages[0].Text, "장소 섭외 불가")
}

func TestNotificationServiceAccessRequest(t *testing.T) {
	sender := &captureSender{}
	svc := NewNotificationService(sender, nil, notificationTestConfig(), nil)
	svc.Start(context.Background())
	defer svc.Stop()

	err := svc.AccessRequested(dto.AccessRequestInput{
		Name:   "이영희",
		Rank:   "대위",
		Unit:   "2함대",
		Email:  "lee@navy.mil.kr",
		Phone:  "010-1234-5678",
		Reason: "교육 일정 확인",
	})
	require.NoError(t, err)

	messages := sender.waitFor(t, 1)
	assert.Equal(t, "admin@navycamp.kr", messages[0].To)
	assert.Contains(t, messages[0].Text, "이영희")
}

func TestNotificationServiceDisabledIsNoop(t *testing.T) {
	sender := &captureSender{}
	cfg := notificationTestConfig()
	cfg.Enabled = false
	svc := NewNotificationService(sender, nil, cfg, nil)
	svc.Start(context.Background())
	defer svc.Stop()

	svc.StatusChanged(confirmedDetail(), "")
	svc.RequestCreated(confirmedDetail())

	time.Sleep(50 * time.Millisecond)
	sender.mu.Lock()
	defer sender.mu.Unlock()
	assert.Empty(t, sender.messages)
}
