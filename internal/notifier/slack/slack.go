package slack

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mlfc/matchday/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Announcer = (*Announcer)(nil)

// Announcer posts club announcements to a Slack channel.
type Announcer struct {
	api       slackClient
	channelID string
}

// NewAnnouncer creates a new Announcer.
func NewAnnouncer(token, channelID string) *Announcer {
	return &Announcer{
		api:       slack.New(token),
		channelID: channelID,
	}
}

// NewAnnouncerWithAPI creates a new Announcer with a specific client instance.
// Useful for tests that need to intercept API calls.
func NewAnnouncerWithAPI(api slackClient, channelID string) *Announcer {
	return &Announcer{
		api:       api,
		channelID: channelID,
	}
}

func (a *Announcer) sendMessage(message slack.Message) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := a.api.PostMessageContext(
		ctx,
		a.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		log.Error("Failed to send Slack announcement", "error", err, "channel", a.channelID)
		return fmt.Errorf("failed to post message: %w", err)
	}

	log.Info("Sent Slack announcement", "channel", channelID, "timestamp", timestamp)
	return nil
}

func (a *Announcer) AnnounceMatchCreated(title, date, timeOfDay, publicCode string) error {
	msg := formatMatchCreated(title, date, timeOfDay, publicCode)
	return a.sendMessage(msg)
}

func (a *Announcer) AnnounceScoreSubmitted(code, team string, scoreFor, scoreAgainst int) error {
	msg := formatScoreSubmitted(code, team, scoreFor, scoreAgainst)
	return a.sendMessage(msg)
}

func formatMatchCreated(title, date, timeOfDay, publicCode string) slack.Message {
	header := slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, ":soccer: New match posted", false, false),
	)
	body := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("*%s*\n%s at %s\nPost your availability with code `%s`.", title, date, timeOfDay, publicCode),
			false, false),
		nil, nil,
	)
	return slack.NewBlockMessage(header, body)
}

func formatScoreSubmitted(code, team string, scoreFor, scoreAgainst int) slack.Message {
	header := slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, ":trophy: Final score is in", false, false),
	)
	result := "drew"
	if scoreFor > scoreAgainst {
		result = "won"
	} else if scoreFor < scoreAgainst {
		result = "lost"
	}
	body := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("Match `%s`: %s %s *%d-%d*.", code, team, result, scoreFor, scoreAgainst),
			false, false),
		nil, nil,
	)
	return slack.NewBlockMessage(header, body)
}
