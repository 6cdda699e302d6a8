package tasks

import (
	"encoding/json"
	"time"

	"clubhub/internal/events"
	"clubhub/internal/models"
	"clubhub/internal/rbac"
	"clubhub/internal/utils/logger"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// TaskClient handles task enqueuing with improved error handling and context support
type TaskClient struct {
	client       *asynq.Client
	logger       *logger.Logger
	redisOptions *redis.Options
	redisClient  *redis.Client
}

func (c *TaskClient) GetClient() *asynq.Client {
	return c.client
}

// NewTaskClient creates a new TaskClient with the given Redis configuration
func NewTaskClient(redisAddr, username, password string, db int) *TaskClient {
	redisOpt := asynq.RedisClientOpt{
		Addr:     redisAddr,
		Username: username,
		Password: password,
		DB:       db,
	}

	redisClient := redis.NewClient(
		&redis.Options{
			Addr:     redisAddr,
			Username: username,
			Password: password,
			DB:       db,
		},
	)

	return &TaskClient{
		client: asynq.NewClient(redisOpt),
		redisOptions: &redis.Options{
			Addr:     redisAddr,
			Username: username,
			Password: password,
			DB:       db,
		},
		redisClient: redisClient,
		logger:      logger.New("TASKS"),
	}
}

// Close closes the underlying asynq client
func (c *TaskClient) Close() error {
	return c.client.Close()
}

// EnqueueAuditRecord queues one denied access check for persistence.
func (c *TaskClient) EnqueueAuditRecord(p AuditRecordPayload) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeAuditRecord, payload)
	_, err = c.client.Enqueue(task,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(RetryDefault),
		asynq.Timeout(TimeoutShort),
	)
	return err
}

// EnqueueMail queues one outbound message on the critical queue.
func (c *TaskClient) EnqueueMail(p MailSendPayload) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeMailSend, payload)
	_, err = c.client.Enqueue(task,
		asynq.Queue(QueueCritical),
		asynq.MaxRetry(RetryMax),
		asynq.Timeout(TimeoutShort),
	)
	return err
}

// EnqueueNewsletterSend queues the fan-out of one newsletter issue.
func (c *TaskClient) EnqueueNewsletterSend(issueID string, at time.Time) error {
	payload, err := json.Marshal(NewsletterSendPayload{IssueID: issueID})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeNewsletterSend, payload)
	opts := []asynq.Option{
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(RetryDefault),
		asynq.Timeout(TimeoutMedium),
	}
	if !at.IsZero() {
		opts = append(opts, asynq.ProcessAt(at))
	}
	_, err = c.client.Enqueue(task, opts...)
	return err
}

// SubscribeDenials bridges the in-process denial events onto the task
// queue. Event handlers already run on their own goroutines, so a slow or
// unreachable queue never blocks the request that was denied.
func (c *TaskClient) SubscribeDenials() {
	events.On(rbac.EventAccessDenied, func(data interface{}) {
		denial, ok := data.(rbac.Denial)
		if !ok {
			return
		}
		err := c.EnqueueAuditRecord(AuditRecordPayload{
			Email:  denial.Email,
			Role:   string(denial.Role),
			ClubID: denial.ClubID,
			Module: string(denial.Module),
			At:     denial.At,
		})
		if err != nil {
			c.logger.Error("Failed to enqueue audit record", err)
		}
	})
}

// SubscribeNewsletterSchedules queues scheduled issues for delivery at
// their ScheduledFor time.
func (c *TaskClient) SubscribeNewsletterSchedules() {
	events.On("newsletter.scheduled", func(data interface{}) {
		issue, ok := data.(*models.NewsletterIssue)
		if !ok {
			return
		}
		if err := c.EnqueueNewsletterSend(issue.ID, issue.ScheduledFor); err != nil {
			c.logger.Error("Failed to enqueue newsletter send", err)
		}
	})
}
