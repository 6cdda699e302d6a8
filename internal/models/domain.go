package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Team is a squad inside a club (not the tenant itself).
type Team struct {
	Base
	ClubID   string   `gorm:"type:uuid;not null;index" json:"clubId" validate:"required,uuid"`
	Club     *Club    `json:"club,omitempty"`
	Name     string   `gorm:"not null" json:"name" validate:"required,min=2"`
	AgeGroup string   `json:"ageGroup,omitempty"`
	CoachID  string   `gorm:"type:uuid;default:NULL" json:"coachId,omitempty" validate:"omitempty,uuid"`
	Coach    *Member  `json:"coach,omitempty"`
	Members  []Member `gorm:"many2many:member_teams" json:"members,omitempty"`
}

type MatchFixture struct {
	Base
	ClubID    string    `gorm:"type:uuid;not null;index" json:"clubId" validate:"required,uuid"`
	TeamID    string    `gorm:"type:uuid;not null" json:"teamId" validate:"required,uuid"`
	Team      *Team     `json:"team,omitempty"`
	Opponent  string    `gorm:"not null" json:"opponent" validate:"required"`
	KickoffAt time.Time `gorm:"not null" json:"kickoffAt" validate:"required"`
	Venue     string    `json:"venue,omitempty"`
	HomeScore *int      `json:"homeScore,omitempty"`
	AwayScore *int      `json:"awayScore,omitempty"`
	CreatedBy string    `gorm:"type:uuid;default:NULL" json:"createdBy,omitempty"`
}

type Training struct {
	Base
	ClubID    string    `gorm:"type:uuid;not null;index" json:"clubId" validate:"required,uuid"`
	TeamID    string    `gorm:"type:uuid;not null" json:"teamId" validate:"required,uuid"`
	Team      *Team     `json:"team,omitempty"`
	StartsAt  time.Time `gorm:"not null" json:"startsAt" validate:"required"`
	Location  string    `json:"location,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedBy string    `gorm:"type:uuid;default:NULL" json:"createdBy,omitempty"`
}

type Event struct {
	Base
	ClubID      string    `gorm:"type:uuid;not null;index" json:"clubId" validate:"required,uuid"`
	Title       string    `gorm:"not null" json:"title" validate:"required,min=2"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	StartsAt    time.Time `gorm:"not null" json:"startsAt" validate:"required"`
	EndsAt      time.Time `json:"endsAt,omitempty"`
	CreatedBy   string    `gorm:"type:uuid;default:NULL" json:"createdBy,omitempty"`
}

// Highlight is a media clip (goal video, photo gallery item). MediaPath is
// the storage key; SignedURL is resolved on read through the registered
// media signer.
type Highlight struct {
	Base
	ClubID    string `gorm:"type:uuid;not null;index" json:"clubId" validate:"required,uuid"`
	Title     string `gorm:"not null" json:"title" validate:"required"`
	MediaPath string `gorm:"not null" json:"mediaPath" validate:"required"`
	MediaType string `json:"mediaType,omitempty"`
	Size      int64  `json:"size,omitempty"`
	CreatedBy string `gorm:"type:uuid;default:NULL" json:"createdBy,omitempty"`
	SignedURL string `gorm:"-" json:"signedUrl,omitempty"` // Virtual field
}

func (h *Highlight) AfterFind(tx *gorm.DB) error {
	registryMu.RLock()
	signer := mediaSigner
	registryMu.RUnlock()

	if signer != nil {
		// Generate URL with 1-hour expiry
		url, err := signer.GetSignedURL(tx.Statement.Context, h.MediaPath, time.Hour)
		if err != nil {
			return fmt.Errorf("failed to generate signed URL: %w", err)
		}
		h.SignedURL = url
	}
	return nil
}

type SponsorContract struct {
	Base
	ClubID       string         `gorm:"type:uuid;not null;index" json:"clubId" validate:"required,uuid"`
	SponsorName  string         `gorm:"not null" json:"sponsorName" validate:"required"`
	ContactEmail string         `json:"contactEmail,omitempty" validate:"omitempty,email"`
	AmountCents  int64          `json:"amountCents,omitempty"`
	StartsAt     time.Time      `json:"startsAt,omitempty"`
	EndsAt       time.Time      `json:"endsAt,omitempty"`
	Status       ContractStatus `gorm:"not null;default:'DRAFT'" json:"status" validate:"required,contract_status"`
}

// NewsletterIssue is one outbound mailing for a club. Sending goes through
// the mail task queue; this row only tracks content and status.
type NewsletterIssue struct {
	Base
	ClubID       string           `gorm:"type:uuid;not null;index" json:"clubId" validate:"required,uuid"`
	Subject      string           `gorm:"not null" json:"subject" validate:"required"`
	HTMLBody     string           `gorm:"not null" json:"htmlBody" validate:"required"`
	Status       NewsletterStatus `gorm:"not null;default:'DRAFT'" json:"status" validate:"required,newsletter_status"`
	ScheduledFor time.Time        `json:"scheduledFor,omitempty" validate:"required_if=Status SCHEDULED"`
	SentAt       *time.Time       `json:"sentAt,omitempty"`
}

// SMTPSettings holds a club's outbound mail account. Password is encrypted
// at rest with the process key pair; cmd/helper encrypts values for env
// seeding.
type SMTPSettings struct {
	Base
	ClubID   string `gorm:"type:uuid;not null;uniqueIndex" json:"clubId" validate:"required,uuid"`
	Host     string `gorm:"not null" json:"host" validate:"required,hostname"`
	Port     int    `gorm:"not null" json:"port" validate:"required,min=1,max=65535"`
	Username string `gorm:"not null" json:"username" validate:"required"`
	Password string `gorm:"not null" json:"-"`
	FromAddr string `gorm:"not null" json:"fromAddr" validate:"required,email"`
}

type Lead struct {
	Base
	ClubID  string         `gorm:"type:uuid;not null;index" json:"clubId" validate:"required,uuid"`
	Name    string         `gorm:"not null" json:"name" validate:"required"`
	Email   string         `json:"email,omitempty" validate:"omitempty,email"`
	Source  string         `json:"source,omitempty"`
	Status  LeadStatus     `gorm:"not null;default:'OPEN'" json:"status" validate:"required,lead_status"`
	OwnerID string         `gorm:"type:uuid;default:NULL" json:"ownerId,omitempty"`
	Notes   datatypes.JSON `gorm:"type:jsonb" json:"notes,omitempty"`
}
