package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio_backend/internal/email"
	"portfolio_backend/internal/events"
	"portfolio_backend/internal/locale"
	"portfolio_backend/platform/config"
	"portfolio_backend/platform/logger"
)

// Channel is one outbound notification target.
type Channel interface {
	Name() string
	Notify(ctx context.Context, evt events.ContactSubmitted) error
}

// Notifier fans a submission out to every configured channel. A failing
// channel never prevents the others from running.
type Notifier struct {
	channels []Channel
	log      *logger.Logger
}

func NewNotifier(log *logger.Logger, channels ...Channel) *Notifier {
	active := make([]Channel, 0, len(channels))
	for _, ch := range channels {
		if ch != nil {
			active = append(active, ch)
		}
	}
	return &Notifier{channels: active, log: log}
}

// Config is what NewNotifierFromConfig reads.
type Config interface {
	config.NotificationConfig
	config.EmailConfig
}

// NewNotifierFromConfig wires the Discord and email channels that cfg enables,
// labelled in the configured default locale.
func NewNotifierFromConfig(cfg Config, catalog *locale.Catalog, log *logger.Logger) *Notifier {
	loc, ok := catalog.Parse(cfg.GetDefaultLocale())
	if !ok {
		loc = locale.Fallback
	}
	msgs := catalog.Messages(loc)
	region := cfg.GetPhoneDefaultRegion()

	var sender email.Sender
	if cfg.GetNotifyEmailEnabled() {
		sender = email.NewSMTPSenderFromConfig(cfg)
	}

	return NewNotifier(log,
		NewDiscordChannel(NewDiscordClient(cfg.GetDiscordWebhookURL(), log), msgs, region),
		NewEmailChannel(sender, cfg.GetNotifyEmailTo(), msgs, region),
	)
}

// Channels returns the names of the active channels.
func (n *Notifier) Channels() []string {
	names := make([]string, 0, len(n.channels))
	for _, ch := range n.channels {
		names = append(names, ch.Name())
	}
	return names
}

// Deliver sends evt through every channel and joins their errors.
func (n *Notifier) Deliver(ctx context.Context, evt events.ContactSubmitted) error {
	var errs []error
	for _, ch := range n.channels {
		if err := n.notify(ctx, ch, evt); err != nil {
			n.log.NotificationFailed(ch.Name(), evt.SubmissionID.String(), err)
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func (n *Notifier) notify(ctx context.Context, ch Channel, evt events.ContactSubmitted) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("channel panicked: %v", r)
		}
	}()
	return ch.Notify(ctx, evt)
}

type discordSender interface {
	Send(ctx context.Context, payload DiscordPayload) error
}

// DiscordChannel posts submissions to a Discord webhook.
type DiscordChannel struct {
	client discordSender
	msgs   *locale.Messages
	region string
}

// NewDiscordChannel returns nil when client is nil so NewNotifier can skip it.
func NewDiscordChannel(client *DiscordClient, msgs *locale.Messages, region string) Channel {
	if client == nil {
		return nil
	}
	return &DiscordChannel{client: client, msgs: msgs, region: region}
}

func (c *DiscordChannel) Name() string { return "discord" }

func (c *DiscordChannel) Notify(ctx context.Context, evt events.ContactSubmitted) error {
	return c.client.Send(ctx, BuildDiscordPayload(evt, c.msgs, c.region))
}

// EmailChannel emails the site owner.
type EmailChannel struct {
	sender email.Sender
	to     string
	msgs   *locale.Messages
	region string
}

func NewEmailChannel(sender email.Sender, to string, msgs *locale.Messages, region string) Channel {
	if sender == nil || to == "" {
		return nil
	}
	return &EmailChannel{sender: sender, to: to, msgs: msgs, region: region}
}

func (c *EmailChannel) Name() string { return "email" }

func (c *EmailChannel) Notify(ctx context.Context, evt events.ContactSubmitted) error {
	subject := locale.Format(c.msgs.Notification.EmailSubject, "subject", evt.Subject)
	return c.sender.SendContactSubmitted(ctx, c.to, subject, BuildEmailData(evt, c.msgs, c.region))
}

// BuildEmailData maps a submission onto the owner email template.
func BuildEmailData(evt events.ContactSubmitted, msgs *locale.Messages, region string) email.ContactSubmittedData {
	labels := msgs.Notification
	methods := make([]email.MethodLine, 0, len(evt.SelectedMethods))
	for _, id := range evt.SelectedMethods {
		methods = append(methods, email.MethodLine{
			Label:  msgs.MethodLabel(id),
			Detail: displayDetail(id, evt.ContactDetails[id], region),
		})
	}

	return email.ContactSubmittedData{
		Title:        labels.Title,
		SubmissionID: evt.SubmissionID.String(),
		SubjectLabel: labels.SubjectField,
		Subject:      evt.Subject,
		MethodsLabel: labels.MethodsField,
		Methods:      methods,
		MessageLabel: labels.MessageField,
		Message:      evt.Message,
		ReceivedAt:   timestamp(evt).Format(time.RFC1123),
	}
}
