package email

import (
	"strings"
	"testing"
)

func TestRenderContactSubmittedEscapesInput(t *testing.T) {
	html, err := renderEmailTemplate(templateContactSubmitted, ContactSubmittedData{
		Title:        "New contact message",
		SubmissionID: "0b8f6f1e-1c1a-4a4e-9a53-8f1e4f3d7c11",
		SubjectLabel: "Subject",
		Subject:      "General",
		MethodsLabel: "Contact methods",
		Methods:      []MethodLine{{Label: "email", Detail: "a@b.com"}, {Label: "discord"}},
		MessageLabel: "Message",
		Message:      "<script>alert(1)</script>",
		ReceivedAt:   "2026-03-01T10:00:00Z",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, fragment := range []string{
		"<title>New contact message</title>",
		"<strong>email</strong>: a@b.com",
		"<strong>discord</strong></li>",
		"ID: 0b8f6f1e-1c1a-4a4e-9a53-8f1e4f3d7c11",
		"&lt;script&gt;",
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected rendered email to contain %q", fragment)
		}
	}
	if strings.Contains(html, "<script>") {
		t.Fatal("message must be HTML-escaped")
	}
}

func TestRenderContactSubmittedWithoutMethods(t *testing.T) {
	html, err := renderEmailTemplate(templateContactSubmitted, ContactSubmittedData{Title: "x"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "<li>N/A</li>") {
		t.Fatal("expected N/A placeholder for an empty method list")
	}
}

func TestNewMessageRejectsInvalidRecipient(t *testing.T) {
	s := NewSMTPSender("smtp.example.dev", 587, "user", "pass", "owner@example.dev", "Portfolio")

	if _, err := s.newMessage("not an address", "subject", "<p>x</p>"); err == nil {
		t.Fatal("expected invalid recipient to fail")
	}
	if _, err := s.newMessage("owner@example.dev", "subject", "<p>x</p>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
