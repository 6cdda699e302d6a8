package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base contains common columns for all tables
type Base struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	DeletedAt time.Time `gorm:"index;default:NULL" json:"-" validate:"omitempty"`
	IsDeleted bool      `json:"isDeleted" default:"false"`
}

// BeforeCreate will set a UUID rather than numeric ID
func (base *Base) BeforeCreate(tx *gorm.DB) error {
	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	return nil
}

type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "PENDING"
	InviteStatusAccepted InviteStatus = "ACCEPTED"
	InviteStatusRejected InviteStatus = "REJECTED"
)

type NewsletterStatus string

const (
	NewsletterStatusDraft     NewsletterStatus = "DRAFT"
	NewsletterStatusScheduled NewsletterStatus = "SCHEDULED"
	NewsletterStatusSent      NewsletterStatus = "SENT"
	NewsletterStatusFailed    NewsletterStatus = "FAILED"
)

type LeadStatus string

const (
	LeadStatusOpen      LeadStatus = "OPEN"
	LeadStatusContacted LeadStatus = "CONTACTED"
	LeadStatusWon       LeadStatus = "WON"
	LeadStatusLost      LeadStatus = "LOST"
)

type ContractStatus string

const (
	ContractStatusDraft   ContractStatus = "DRAFT"
	ContractStatusActive  ContractStatus = "ACTIVE"
	ContractStatusExpired ContractStatus = "EXPIRED"
)
