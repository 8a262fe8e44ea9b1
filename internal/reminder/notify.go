package reminder

import (
	"github.com/gen2brain/beeep"
)

// Notifier is the notification side channel. Delivery is best effort: at
// the scheduled time or later, never earlier.
type Notifier interface {
	Notify(title, body string) error
}

// Desktop delivers reminders as OS desktop notifications.
type Desktop struct{}

var _ Notifier = Desktop{}

func (Desktop) Notify(title, body string) error {
	return beeep.Notify(title, body, "")
}
