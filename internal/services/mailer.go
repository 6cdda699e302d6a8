package services

import (
	"context"
	"sync"

	"clubhub/internal/utils/logger"
)

// Mailer is the outbound delivery seam. Actual delivery lives outside this
// service; the mail task handler calls whatever implementation is
// registered. When none is registered, sends are logged and dropped so the
// queue never wedges on a missing collaborator.
type Mailer interface {
	SendMail(ctx context.Context, to, subject, html string) error
}

var (
	mailer   Mailer
	mailerMu sync.RWMutex
	mailLog  = logger.New("mailer")
)

// RegisterMailer sets the outbound mail implementation.
func RegisterMailer(m Mailer) {
	mailerMu.Lock()
	defer mailerMu.Unlock()
	mailer = m
}

// SendMail dispatches through the registered mailer.
func SendMail(ctx context.Context, to, subject, html string) error {
	mailerMu.RLock()
	m := mailer
	mailerMu.RUnlock()

	if m == nil {
		mailLog.Warn("No mailer registered, dropping mail to %s (%s)", to, subject)
		return nil
	}
	return m.SendMail(ctx, to, subject, html)
}
