package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"portfolio_backend/internal/apiclient"
	"portfolio_backend/internal/dashboardui"
	"portfolio_backend/internal/locale"

	"github.com/google/uuid"
)

const validToken = "s3cret"

type fakeAPI struct {
	rows     []apiclient.Submission
	patches  []bool
	deletes  int
	lastPage int
}

func (f *fakeAPI) ListSubmissions(_ context.Context, token string, page, limit int) (apiclient.Page, error) {
	if token != validToken {
		return apiclient.Page{}, &apiclient.StatusError{Code: 401, Message: "Unauthorized"}
	}
	f.lastPage = page
	start := (page - 1) * limit
	end := min(start+limit, len(f.rows))
	if start > end {
		start = end
	}
	return apiclient.Page{Data: append([]apiclient.Submission(nil), f.rows[start:end]...), Total: len(f.rows), Page: page, Limit: limit}, nil
}

func (f *fakeAPI) MarkRead(_ context.Context, _ string, _ uuid.UUID, read bool) error {
	f.patches = append(f.patches, read)
	return nil
}

func (f *fakeAPI) Delete(_ context.Context, _ string, id uuid.UUID) error {
	f.deletes++
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			break
		}
	}
	return nil
}

func seedRows(n int) []apiclient.Submission {
	rows := make([]apiclient.Submission, n)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := range rows {
		rows[i] = apiclient.Submission{
			ID:              uuid.New(),
			SelectedMethods: []string{"email", "discord"},
			ContactDetails:  map[string]string{"email": "a@b.com"},
			Subject:         "General",
			Message:         "message body",
			CreatedAt:       base.Add(-time.Duration(i) * time.Minute),
		}
	}
	return rows
}

func TestConsoleSession(t *testing.T) {
	msgs := locale.MustLoad().Messages(locale.EnUS)
	api := &fakeAPI{rows: seedRows(17)}
	var out bytes.Buffer
	c := newConsole(dashboardui.New(api), msgs, &out)
	ctx := context.Background()

	c.exec(ctx, "wrong")
	c.prompt()
	if !strings.Contains(out.String(), msgs.Dashboard.Auth.TokenInvalid) {
		t.Fatalf("expected invalid token notice, got:\n%s", out.String())
	}

	c.exec(ctx, validToken)
	if !strings.Contains(out.String(), "Page 1 of 2") {
		t.Fatalf("expected pager, got:\n%s", out.String())
	}

	out.Reset()
	c.exec(ctx, "1")
	if len(api.patches) != 1 || !api.patches[0] {
		t.Fatalf("expected one read patch, got %v", api.patches)
	}
	text := out.String()
	if !strings.Contains(text, "Email: a@b.com") || !strings.Contains(text, "Discord: "+msgs.Dashboard.MissingDetail) {
		t.Fatalf("expected detail view, got:\n%s", text)
	}

	c.exec(ctx, "1")
	if len(api.patches) != 1 {
		t.Fatalf("reopening a read row must not patch again, got %v", api.patches)
	}

	c.exec(ctx, "n")
	if api.lastPage != 2 || len(c.state.View().Rows) != 2 {
		t.Fatalf("expected second page with 2 rows, got page %d rows %d", api.lastPage, len(c.state.View().Rows))
	}

	c.exec(ctx, "d 1")
	if api.deletes != 1 || c.state.View().Total != 16 {
		t.Fatalf("expected delete to drop total to 16, got %d", c.state.View().Total)
	}

	c.exec(ctx, "d 99")
	if api.deletes != 1 {
		t.Fatal("out of range row must not be deleted")
	}

	c.exec(ctx, "l")
	if c.state.View().Authed {
		t.Fatal("expected logout")
	}
	if quit := c.exec(ctx, ""); quit {
		t.Fatal("blank login must not quit")
	}
}

func TestPreview(t *testing.T) {
	if got := preview("a\n  b"); got != "a b" {
		t.Fatalf("unexpected preview %q", got)
	}
	long := strings.Repeat("x", 60)
	if got := preview(long); len([]rune(got)) != previewChars || !strings.HasSuffix(got, "…") {
		t.Fatalf("unexpected preview %q", got)
	}
}
