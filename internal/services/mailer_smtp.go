package services

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"clubhub/internal/config"
	"clubhub/internal/models"
	"clubhub/internal/utils/crypto"
	"clubhub/internal/utils/logger"

	"gorm.io/gorm"
)

// SMTPMailer delivers mail over plain SMTP. When the recipient is a member
// of a club with its own SMTPSettings row, that club's account is used (the
// stored password is decrypted with the process key pair); otherwise the
// platform-wide account from the environment applies.
type SMTPMailer struct {
	db  *gorm.DB
	cfg config.SMTPConfig
	log *logger.Logger
}

func NewSMTPMailer(db *gorm.DB, cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		db:  db,
		cfg: cfg,
		log: logger.New("smtp_mailer"),
	}
}

func (m *SMTPMailer) SendMail(ctx context.Context, to, subject, html string) error {
	host, port, username, password, from := m.accountFor(ctx, to)
	if host == "" {
		return fmt.Errorf("no SMTP account configured for %s", to)
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(html)

	auth := smtp.PlainAuth("", username, password, host)
	addr := fmt.Sprintf("%s:%d", host, port)

	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(msg.String())); err != nil {
		return m.log.Error("Failed to send mail", err)
	}

	m.log.Success("Mail sent to %s via %s", to, host)
	return nil
}

// accountFor picks the sending account for one recipient. A failed club
// lookup or an undecryptable password falls back to the platform account
// rather than failing the send.
func (m *SMTPMailer) accountFor(ctx context.Context, to string) (host string, port int, username, password, from string) {
	host = m.cfg.Host
	port = m.cfg.Port
	username = m.cfg.Username
	password = m.cfg.Password
	from = m.cfg.From

	var member models.Member
	if err := m.db.WithContext(ctx).Where("LOWER(email) = LOWER(?) AND is_deleted = ?", to, false).First(&member).Error; err != nil {
		return
	}

	var settings models.SMTPSettings
	if err := m.db.WithContext(ctx).Where("club_id = ? AND is_deleted = ?", member.ClubID, false).First(&settings).Error; err != nil {
		return
	}

	decrypted, err := crypto.Decrypt(settings.Password)
	if err != nil {
		m.log.Warn("Failed to decrypt club SMTP password, using platform account: %v", err)
		return
	}

	return settings.Host, settings.Port, settings.Username, decrypted, settings.FromAddr
}
