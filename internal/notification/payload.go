package notification

import (
	"strings"
	"time"

	"portfolio_backend/internal/events"
	"portfolio_backend/internal/locale"
	"portfolio_backend/platform/phone"
)

const (
	discordUsername  = "Dnzx - Contact Form"
	discordAvatarURL = "https://cdn.discordapp.com/embed/avatars/0.png"
	discordColor     = 0x2b2d31

	// Discord rejects embed field values above this many characters.
	maxFieldValue = 1024
	ellipsis      = "..."
	emptyValue    = "N/A"

	methodWhatsApp = "whatsapp"
)

type DiscordPayload struct {
	Username  string         `json:"username"`
	AvatarURL string         `json:"avatar_url"`
	Embeds    []DiscordEmbed `json:"embeds"`
}

type DiscordEmbed struct {
	Title     string         `json:"title"`
	Color     int            `json:"color"`
	Fields    []DiscordField `json:"fields"`
	Footer    DiscordFooter  `json:"footer"`
	Timestamp string         `json:"timestamp"`
}

type DiscordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type DiscordFooter struct {
	Text string `json:"text"`
}

// BuildDiscordPayload renders a submission as a single-embed webhook message
// labelled with msgs. WhatsApp details are shown in E.164 when they parse.
func BuildDiscordPayload(evt events.ContactSubmitted, msgs *locale.Messages, region string) DiscordPayload {
	labels := msgs.Notification

	return DiscordPayload{
		Username:  discordUsername,
		AvatarURL: discordAvatarURL,
		Embeds: []DiscordEmbed{{
			Title: labels.Title,
			Color: discordColor,
			Fields: []DiscordField{
				{Name: labels.SubjectField, Value: evt.Subject},
				{Name: labels.MethodsField, Value: methodsList(evt, region)},
				{Name: labels.MessageField, Value: truncateField(evt.Message)},
			},
			Footer:    DiscordFooter{Text: "ID: " + evt.SubmissionID.String()},
			Timestamp: timestamp(evt).Format(time.RFC3339),
		}},
	}
}

func methodsList(evt events.ContactSubmitted, region string) string {
	lines := make([]string, 0, len(evt.SelectedMethods))
	for _, id := range evt.SelectedMethods {
		detail := displayDetail(id, evt.ContactDetails[id], region)
		if detail == "" {
			lines = append(lines, "**"+id+"**")
			continue
		}
		lines = append(lines, "**"+id+"**: "+detail)
	}
	if len(lines) == 0 {
		return emptyValue
	}
	return strings.Join(lines, "\n")
}

func displayDetail(methodID, detail, region string) string {
	detail = strings.TrimSpace(detail)
	if detail == "" || methodID != methodWhatsApp {
		return detail
	}
	return phone.NormalizeE164(detail, region)
}

func truncateField(value string) string {
	runes := []rune(value)
	if len(runes) <= maxFieldValue {
		return value
	}
	return string(runes[:maxFieldValue-len(ellipsis)]) + ellipsis
}

func timestamp(evt events.ContactSubmitted) time.Time {
	if !evt.CreatedAt.IsZero() {
		return evt.CreatedAt.UTC()
	}
	return evt.OccurredAt().UTC()
}
