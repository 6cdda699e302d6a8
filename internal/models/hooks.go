package models

import (
	"clubhub/internal/events"

	"gorm.io/gorm"
)

func (m *Member) AfterCreate(tx *gorm.DB) error {
	events.Emit("member.created", m)
	return nil
}

func (i *MemberInvite) AfterCreate(tx *gorm.DB) error {
	log.Info("Member invite created for %s (club %s)", i.Email, i.ClubID)
	events.Emit("invite.created", i)
	return nil
}

// AfterSave fires whenever an issue lands in SCHEDULED state; the task
// client picks the event up and queues the send for ScheduledFor.
func (n *NewsletterIssue) AfterSave(tx *gorm.DB) error {
	if n.Status == NewsletterStatusScheduled {
		events.Emit("newsletter.scheduled", n)
	}
	return nil
}
