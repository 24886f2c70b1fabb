package locale

import "strings"

// ContactMethod is one selectable way of being contacted back.
type ContactMethod struct {
	ID          string `yaml:"id"`
	Label       string `yaml:"label"`
	Placeholder string `yaml:"placeholder"`
}

// ContactSteps holds the per-step prompts of the contact wizard.
type ContactSteps struct {
	ContactMethodPrompt string `yaml:"contactMethodPrompt"`
	ContactDetailPrompt string `yaml:"contactDetailPrompt"`
	SubjectPrompt       string `yaml:"subjectPrompt"`
	MessagePrompt       string `yaml:"messagePrompt"`
	Done                string `yaml:"done"`
	Hint                string `yaml:"hint"`
}

// ContactStrings is the contact wizard's table.
type ContactStrings struct {
	SectionLabel   string          `yaml:"sectionLabel"`
	Title          string          `yaml:"title"`
	Subtitle       string          `yaml:"subtitle"`
	AgentStatus    string          `yaml:"agentStatus"`
	InitialMessage string          `yaml:"initialMessage"`
	AgentReply     string          `yaml:"agentReply"`
	Send           string          `yaml:"send"`
	Placeholder    string          `yaml:"placeholder"`
	Hint           string          `yaml:"hint"`
	ContactMethods []ContactMethod `yaml:"contactMethods"`
	Subjects       []string        `yaml:"subjects"`
	Steps          ContactSteps    `yaml:"steps"`
	Confirm        string          `yaml:"confirm"`
	CharCount      string          `yaml:"charCount"`
}

// DashboardAuthStrings covers the dashboard login form.
type DashboardAuthStrings struct {
	Required         string `yaml:"required"`
	TokenInvalid     string `yaml:"tokenInvalid"`
	TokenPlaceholder string `yaml:"tokenPlaceholder"`
	TokenError       string `yaml:"tokenError"`
	Enter            string `yaml:"enter"`
}

// DashboardStrings is the dashboard's table.
type DashboardStrings struct {
	Title          string               `yaml:"title"`
	Auth           DashboardAuthStrings `yaml:"auth"`
	UnreadSingular string               `yaml:"unreadSingular"`
	UnreadPlural   string               `yaml:"unreadPlural"`
	Logout         string               `yaml:"logout"`
	Messages       string               `yaml:"messages"`
	Loading        string               `yaml:"loading"`
	Empty          string               `yaml:"empty"`
	Prev           string               `yaml:"prev"`
	Next           string               `yaml:"next"`
	Page           string               `yaml:"page"`
	SelectMessage  string               `yaml:"selectMessage"`
	MarkRead       string               `yaml:"markRead"`
	MarkUnread     string               `yaml:"markUnread"`
	Delete         string               `yaml:"delete"`
	ContactLabel   string               `yaml:"contactLabel"`
	MessageLabel   string               `yaml:"messageLabel"`
	SubjectLabel   string               `yaml:"subjectLabel"`
	ReceivedLabel  string               `yaml:"receivedLabel"`
	MissingDetail  string               `yaml:"missingDetail"`
}

// NotificationStrings labels the owner notifications.
type NotificationStrings struct {
	Title        string `yaml:"title"`
	SubjectField string `yaml:"subjectField"`
	MethodsField string `yaml:"methodsField"`
	MessageField string `yaml:"messageField"`
	EmailSubject string `yaml:"emailSubject"`
}

// Messages is the full string table of one locale.
type Messages struct {
	Contact      ContactStrings      `yaml:"contact"`
	Dashboard    DashboardStrings    `yaml:"dashboard"`
	Notification NotificationStrings `yaml:"notification"`
}

// Method returns the contact method with the given id.
func (m *Messages) Method(id string) (ContactMethod, bool) {
	for _, method := range m.Contact.ContactMethods {
		if method.ID == id {
			return method, true
		}
	}
	return ContactMethod{}, false
}

// MethodLabel returns the display label for id, or id itself when unknown.
func (m *Messages) MethodLabel(id string) string {
	if method, ok := m.Method(id); ok {
		return method.Label
	}
	return id
}

// HasSubject reports whether subject is one of the configured subjects.
func (m *Messages) HasSubject(subject string) bool {
	for _, s := range m.Contact.Subjects {
		if s == subject {
			return true
		}
	}
	return false
}

// Format replaces {name} placeholders in tmpl. pairs alternate name, value.
func Format(tmpl string, pairs ...string) string {
	if len(pairs) < 2 {
		return tmpl
	}
	args := make([]string, 0, len(pairs))
	for i := 0; i+1 < len(pairs); i += 2 {
		args = append(args, "{"+pairs[i]+"}", pairs[i+1])
	}
	return strings.NewReplacer(args...).Replace(tmpl)
}
