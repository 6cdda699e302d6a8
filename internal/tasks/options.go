package tasks

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// ValidateCronSpec rejects a malformed cron expression before it reaches the
// scheduler, so a bad schedule fails at registration instead of at startup.
func ValidateCronSpec(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return nil
}
