package notifier

import (
	"github.com/slack-go/slack"
	"log/slog"
)

// SlackNotifier posts guard transitions to a Slack channel.
type SlackNotifier struct {
	SlackSender
	Logger  *slog.Logger
	Channel string
}

type SlackSender interface {
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ Notifier = &SlackNotifier{}

func (s *SlackNotifier) Notify(msg string) {
	_, _, err := s.SlackSender.PostMessage(s.Channel, slack.MsgOptionAttachments(slack.Attachment{
		Color: "good",
		Title: "printer-sentry",
		Text:  msg,
	}))
	if err != nil {
		s.Logger.Error("failed to post to slack", "err", err)
	}
}
