package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"portfolio_backend/internal/apiclient"
	"portfolio_backend/internal/dashboardui"
	"portfolio_backend/internal/locale"
)

const (
	previewChars = 48
	timeLayout   = "2006-01-02 15:04"
)

type console struct {
	state *dashboardui.State
	msgs  *locale.Messages
	out   io.Writer
}

func newConsole(state *dashboardui.State, msgs *locale.Messages, out io.Writer) *console {
	return &console{state: state, msgs: msgs, out: out}
}

func (c *console) prompt() {
	view := c.state.View()
	if !view.Authed {
		if view.AuthError {
			fmt.Fprintln(c.out, c.msgs.Dashboard.Auth.TokenInvalid)
		}
		fmt.Fprintf(c.out, "%s\n%s > ", c.msgs.Dashboard.Auth.Required, c.msgs.Dashboard.Auth.TokenPlaceholder)
		return
	}
	fmt.Fprint(c.out, "[n]ext [p]rev [r]efresh <#> open [m #] read [u #] unread [d #] delete [l]ogout [q]uit > ")
}

// exec runs one input line and reports whether the user asked to quit.
func (c *console) exec(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if !c.state.View().Authed {
		if line == "" {
			return false
		}
		if err := c.state.Login(ctx, line); err != nil && !errors.Is(err, apiclient.ErrUnauthorized) {
			fmt.Fprintln(c.out, err)
		}
		c.render()
		return false
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	var err error
	switch cmd := fields[0]; cmd {
	case "q":
		return true
	case "l":
		c.state.Logout()
		return false
	case "n":
		err = c.state.NextPage(ctx)
	case "p":
		err = c.state.PrevPage(ctx)
	case "r":
		err = c.state.Refresh(ctx)
	case "m", "u", "d":
		row, ok := c.row(fields)
		if !ok {
			fmt.Fprintln(c.out, c.msgs.Dashboard.SelectMessage)
			return false
		}
		switch cmd {
		case "m":
			err = c.state.SetRead(ctx, row.ID, true)
		case "u":
			err = c.state.SetRead(ctx, row.ID, false)
		default:
			err = c.state.Delete(ctx, row.ID)
		}
	default:
		row, ok := c.row([]string{"", cmd})
		if !ok {
			fmt.Fprintln(c.out, c.msgs.Dashboard.SelectMessage)
			return false
		}
		err = c.state.Select(ctx, row.ID)
	}

	if err != nil && !errors.Is(err, apiclient.ErrUnauthorized) {
		fmt.Fprintln(c.out, err)
	}
	c.render()
	return false
}

// row resolves the 1-based row number in fields[1].
func (c *console) row(fields []string) (apiclient.Submission, bool) {
	if len(fields) < 2 {
		return apiclient.Submission{}, false
	}
	n, err := strconv.Atoi(fields[1])
	rows := c.state.View().Rows
	if err != nil || n < 1 || n > len(rows) {
		return apiclient.Submission{}, false
	}
	return rows[n-1], true
}

func (c *console) render() {
	view := c.state.View()
	if !view.Authed {
		return
	}
	d := c.msgs.Dashboard

	unreadLabel := d.UnreadPlural
	if view.Unread == 1 {
		unreadLabel = d.UnreadSingular
	}
	fmt.Fprintf(c.out, "\n%s · %d %s · %d %s\n", d.Title, view.Total, d.Messages, view.Unread, unreadLabel)

	if len(view.Rows) == 0 {
		fmt.Fprintln(c.out, d.Empty)
	}
	for i, row := range view.Rows {
		mark := " "
		if !row.Read {
			mark = "•"
		}
		fmt.Fprintf(c.out, "%s %2d. %s  %-20s %s\n", mark, i+1, row.CreatedAt.Local().Format(timeLayout), row.Subject, preview(row.Message))
	}
	fmt.Fprintln(c.out, locale.Format(d.Page, "page", strconv.Itoa(view.Page), "pages", strconv.Itoa(max(view.TotalPages, 1))))

	if view.Selected != nil {
		c.renderDetail(*view.Selected)
	}
}

func (c *console) renderDetail(row apiclient.Submission) {
	d := c.msgs.Dashboard
	fmt.Fprintf(c.out, "\n%s: %s\n", d.SubjectLabel, row.Subject)
	fmt.Fprintf(c.out, "%s: %s\n", d.ReceivedLabel, row.CreatedAt.Local().Format(timeLayout))
	fmt.Fprintf(c.out, "%s:\n", d.ContactLabel)
	for _, id := range row.SelectedMethods {
		detail := row.ContactDetails[id]
		if detail == "" {
			detail = d.MissingDetail
		}
		fmt.Fprintf(c.out, "  %s: %s\n", c.msgs.MethodLabel(id), detail)
	}
	fmt.Fprintf(c.out, "%s:\n%s\n\n", d.MessageLabel, row.Message)
}

func preview(message string) string {
	flat := strings.Join(strings.Fields(message), " ")
	runes := []rune(flat)
	if len(runes) <= previewChars {
		return flat
	}
	return string(runes[:previewChars-1]) + "…"
}
