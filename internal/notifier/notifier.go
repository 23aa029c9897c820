package notifier

import "github.com/charmbracelet/log"

// Notifier is the transient, toast-style notification surface. Every
// user-triggered operation reports its outcome through one of these;
// notifications are fire-and-forget and never block or fail the caller.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
	Warn(msg string)
}

// Announcer posts club-wide announcements for noteworthy events. Decouples
// the rest of the application from the specific provider (e.g. Slack).
type Announcer interface {
	AnnounceMatchCreated(title, date, timeOfDay, publicCode string) error
	AnnounceScoreSubmitted(code, team string, scoreFor, scoreAgainst int) error
}

// LogNotifier writes notifications to the structured log. It is the
// default surface for the daemon, where there is no screen to toast on.
type LogNotifier struct{}

var _ Notifier = (*LogNotifier)(nil)

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Success(msg string) {
	log.Info("notice", "level", "success", "msg", msg)
}

func (n *LogNotifier) Error(msg string) {
	log.Error("notice", "level", "error", "msg", msg)
}

func (n *LogNotifier) Info(msg string) {
	log.Info("notice", "level", "info", "msg", msg)
}

func (n *LogNotifier) Warn(msg string) {
	log.Warn("notice", "level", "warn", "msg", msg)
}

// NopAnnouncer is used when no announcement channel is configured.
type NopAnnouncer struct{}

var _ Announcer = (*NopAnnouncer)(nil)

func (NopAnnouncer) AnnounceMatchCreated(title, date, timeOfDay, publicCode string) error {
	return nil
}

func (NopAnnouncer) AnnounceScoreSubmitted(code, team string, scoreFor, scoreAgainst int) error {
	return nil
}
