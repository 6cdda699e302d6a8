package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"clubhub/internal/config"
	"clubhub/internal/models"
	"clubhub/internal/services"
	"clubhub/internal/tasks/rate"
	"clubhub/internal/utils/logger"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

var (
	cfg, _ = config.Load()
)

// TaskHandler handles task processing with improved error handling and logging
type TaskHandler struct {
	db          *gorm.DB
	logger      *logger.Logger
	taskClient  *TaskClient
	mailLimiter *rate.QueueRateLimiter
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(db *gorm.DB) *TaskHandler {
	taskClient := NewTaskClient(cfg.Redis.Addr, cfg.Redis.Username, cfg.Redis.Password, cfg.Redis.DB)
	return &TaskHandler{
		db:         db,
		logger:     logger.New("task_handler"),
		taskClient: taskClient,
		mailLimiter: rate.NewQueueRateLimiter(taskClient.redisClient, rate.QueueConfig{
			Name: QueueCritical,
			RateLimit: rate.RateLimit{
				Window:  time.Minute,
				MaxJobs: 60,
			},
		}),
	}
}

// HandleAuditRecord persists one denied access check.
func (h *TaskHandler) HandleAuditRecord(ctx context.Context, t *asynq.Task) error {
	var p AuditRecordPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal audit payload: %w", err)
	}

	audit := models.AccessAudit{
		Email:    p.Email,
		Role:     p.Role,
		ClubID:   p.ClubID,
		Module:   p.Module,
		DeniedAt: p.At,
	}

	if err := h.db.WithContext(ctx).Create(&audit).Error; err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}

	h.logger.Info("Recorded denied access for %s on %s", p.Email, p.Module)
	return nil
}

// HandleMailSend delivers one message through the registered mailer.
func (h *TaskHandler) HandleMailSend(ctx context.Context, t *asynq.Task) error {
	var p MailSendPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal mail payload: %w", err)
	}

	allowed, err := h.mailLimiter.Allow(ctx, mailDomain(p.To))
	if err != nil {
		h.logger.Warn("Mail rate limiter unavailable, sending anyway: %v", err)
	} else if !allowed {
		// Returning an error puts the task back on the queue with backoff.
		return fmt.Errorf("mail rate limit reached for %s", mailDomain(p.To))
	}

	if err := services.SendMail(ctx, p.To, p.Subject, p.HTML); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", p.To, err)
	}
	return nil
}

func mailDomain(addr string) string {
	if i := strings.LastIndex(addr, "@"); i >= 0 {
		return addr[i+1:]
	}
	return addr
}

// HandleNewsletterSend fans one issue out to every member of its club and
// marks the issue sent. Individual deliveries are queued separately so one
// bad address does not fail the whole issue.
func (h *TaskHandler) HandleNewsletterSend(ctx context.Context, t *asynq.Task) error {
	var p NewsletterSendPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal newsletter payload: %w", err)
	}

	var issue models.NewsletterIssue
	if err := h.db.WithContext(ctx).Where("id = ? AND is_deleted = ?", p.IssueID, false).First(&issue).Error; err != nil {
		return fmt.Errorf("failed to load newsletter issue %s: %w", p.IssueID, err)
	}
	if issue.Status == models.NewsletterStatusSent {
		return nil
	}

	var members []models.Member
	if err := h.db.WithContext(ctx).Where("club_id = ? AND is_deleted = ?", issue.ClubID, false).Find(&members).Error; err != nil {
		return fmt.Errorf("failed to load recipients: %w", err)
	}

	for _, member := range members {
		err := h.taskClient.EnqueueMail(MailSendPayload{
			To:      member.Email,
			Subject: issue.Subject,
			HTML:    issue.HTMLBody,
		})
		if err != nil {
			h.logger.Error("Failed to enqueue newsletter mail", err)
		}
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":  models.NewsletterStatusSent,
		"sent_at": &now,
	}
	if err := h.db.WithContext(ctx).Model(&issue).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to mark issue sent: %w", err)
	}

	h.logger.Success("Newsletter %s queued for %d recipients", issue.ID, len(members))
	return nil
}

// HandleAuditCleanup trims audit rows older than the retention window.
func (h *TaskHandler) HandleAuditCleanup(ctx context.Context, t *asynq.Task) error {
	var p AuditCleanupPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal cleanup payload: %w", err)
	}
	if p.RetentionDays <= 0 {
		p.RetentionDays = 90
	}

	cutoff := time.Now().AddDate(0, 0, -p.RetentionDays)
	res := h.db.WithContext(ctx).Where("denied_at < ?", cutoff).Delete(&models.AccessAudit{})
	if res.Error != nil {
		return fmt.Errorf("failed to clean audit records: %w", res.Error)
	}

	h.logger.Info("Removed %d audit records older than %d days", res.RowsAffected, p.RetentionDays)
	return nil
}
