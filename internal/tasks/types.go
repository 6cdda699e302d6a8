package tasks

import "time"

// Task Types
const (
	// Audit trail tasks
	TaskTypeAuditRecord  = "audit:record"
	TaskTypeAuditCleanup = "audit:cleanup"

	// Mail tasks
	TaskTypeMailSend       = "mail:send"
	TaskTypeNewsletterSend = "newsletter:send"
)

// Task Queues
const (
	QueueCritical = "critical" // For time-sensitive tasks like mail sending
	QueueDefault  = "default"  // For regular tasks
	QueueLow      = "low"      // For background tasks like cleanup
)

// Task Priorities (1-10, higher is more important)
const (
	PriorityCritical = 10
	PriorityHigh     = 8
	PriorityNormal   = 5
	PriorityLow      = 3
	PriorityBG       = 1
)

// Task Timeouts
const (
	TimeoutShort  = 1 * time.Minute
	TimeoutMedium = 5 * time.Minute
	TimeoutLong   = 30 * time.Minute
)

// Task Retry Settings
const (
	RetryMax     = 5
	RetryDefault = 3
	RetryMin     = 1
)

// AuditRecordPayload is the queued form of one denied access check.
type AuditRecordPayload struct {
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	ClubID string    `json:"clubId"`
	Module string    `json:"module"`
	At     time.Time `json:"at"`
}

// MailSendPayload is one outbound message.
type MailSendPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// NewsletterSendPayload fans a newsletter issue out to the club's members.
type NewsletterSendPayload struct {
	IssueID string `json:"issueId"`
}

// AuditCleanupPayload trims audit rows older than the retention window.
type AuditCleanupPayload struct {
	RetentionDays int `json:"retentionDays"`
}
