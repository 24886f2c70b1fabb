package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"portfolio_backend/internal/locale"
	"portfolio_backend/internal/wizard"
)

// continuation marks a message line that should be followed by a newline (Shift+Enter).
const continuation = `\`

type terminal struct {
	w       *wizard.Wizard
	msgs    *locale.Messages
	out     io.Writer
	lines   chan string
	changed <-chan struct{}
	printed int
}

func newTerminal(w *wizard.Wizard, msgs *locale.Messages, in io.Reader, out io.Writer, changed <-chan struct{}) *terminal {
	t := &terminal{w: w, msgs: msgs, out: out, lines: make(chan string), changed: changed}
	go func() {
		defer close(t.lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			t.lines <- scanner.Text()
		}
	}()
	return t
}

func (t *terminal) run(ctx context.Context) error {
	fmt.Fprintf(t.out, "%s · %s\n%s\n\n", t.msgs.Contact.SectionLabel, t.msgs.Contact.Title, t.msgs.Contact.Subtitle)

	for {
		st, err := t.waitIdle(ctx)
		if err != nil {
			return err
		}

		switch st.Step {
		case wizard.StepContactMethod:
			err = t.chooseMethods(ctx, st)
		case wizard.StepContactDetail:
			err = t.enterDetail(ctx, st)
		case wizard.StepSubject:
			err = t.chooseSubject(ctx)
		case wizard.StepMessage:
			err = t.writeMessage(ctx)
		case wizard.StepDone:
			fmt.Fprintf(t.out, "\n✓ %s\n", t.msgs.Contact.Steps.Done)
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// waitIdle prints new transcript entries until no agent reply or submission is outstanding.
func (t *terminal) waitIdle(ctx context.Context) (wizard.State, error) {
	for {
		st := t.w.State()
		t.flush(st.Transcript)
		if !st.Typing && !st.Sending {
			return st, nil
		}
		select {
		case <-ctx.Done():
			return st, ctx.Err()
		case <-t.changed:
		}
	}
}

func (t *terminal) flush(transcript []wizard.Message) {
	for ; t.printed < len(transcript); t.printed++ {
		msg := transcript[t.printed]
		prefix := "  you"
		if msg.Role == wizard.RoleAgent {
			prefix = "agent"
		}
		fmt.Fprintf(t.out, "[%s] %s: %s\n", msg.Timestamp.Format("15:04"), prefix, msg.Content)
	}
}

func (t *terminal) readLine(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-t.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

func (t *terminal) chooseMethods(ctx context.Context, st wizard.State) error {
	methods := t.msgs.Contact.ContactMethods
	fmt.Fprintf(t.out, "\n%s\n", t.msgs.Contact.Steps.ContactMethodPrompt)
	for i, m := range methods {
		mark := " "
		if contains(st.SelectedMethods, m.ID) {
			mark = "x"
		}
		fmt.Fprintf(t.out, "  [%s] %d. %s\n", mark, i+1, m.Label)
	}

	line, err := t.readLine(ctx, "> ")
	if err != nil {
		return err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		err := t.w.ConfirmMethods()
		if errors.Is(err, wizard.ErrNoMethods) {
			fmt.Fprintln(t.out, t.msgs.Contact.Steps.Hint)
			return nil
		}
		return ignoreReplyPending(err)
	}

	for _, token := range strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' }) {
		id := token
		if n, err := strconv.Atoi(token); err == nil && n >= 1 && n <= len(methods) {
			id = methods[n-1].ID
		}
		if err := t.w.ToggleMethod(id); err != nil {
			fmt.Fprintf(t.out, "%q: %v\n", token, err)
		}
	}
	fmt.Fprintf(t.out, "(%s: Enter)\n", t.msgs.Contact.Confirm)
	return nil
}

func (t *terminal) enterDetail(ctx context.Context, st wizard.State) error {
	placeholder := ""
	if st.CurrentMethod != nil {
		placeholder = st.CurrentMethod.Placeholder
	}
	line, err := t.readLine(ctx, fmt.Sprintf("%s > ", placeholder))
	if err != nil {
		return err
	}
	err = t.w.SubmitDetail(line)
	if errors.Is(err, wizard.ErrEmptyInput) {
		return nil
	}
	return ignoreReplyPending(err)
}

func (t *terminal) chooseSubject(ctx context.Context) error {
	subjects := t.msgs.Contact.Subjects
	for i, s := range subjects {
		fmt.Fprintf(t.out, "  %d. %s\n", i+1, s)
	}
	line, err := t.readLine(ctx, "> ")
	if err != nil {
		return err
	}

	choice := strings.TrimSpace(line)
	if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(subjects) {
		choice = subjects[n-1]
	}
	err = t.w.SelectSubject(choice)
	if errors.Is(err, wizard.ErrUnknownSubject) {
		fmt.Fprintln(t.out, t.msgs.Contact.Steps.Hint)
		return nil
	}
	return ignoreReplyPending(err)
}

func (t *terminal) writeMessage(ctx context.Context) error {
	fmt.Fprintf(t.out, "%s (%s)\n", t.msgs.Contact.Placeholder, t.msgs.Contact.Hint)

	var draft strings.Builder
	for {
		line, err := t.readLine(ctx, "> ")
		if err != nil {
			return err
		}

		shift := strings.HasSuffix(line, continuation)
		draft.WriteString(strings.TrimSuffix(line, continuation))
		if err := t.w.SetMessageInput(draft.String()); err != nil {
			return err
		}

		input := t.w.State().Input
		fmt.Fprintln(t.out, locale.Format(t.msgs.Contact.CharCount,
			"count", strconv.Itoa(utf8.RuneCountInString(input)),
			"max", strconv.Itoa(wizard.MaxMessageChars)))

		if err := t.w.HandleKey(ctx, "Enter", shift); err != nil {
			if errors.Is(err, wizard.ErrEmptyInput) {
				draft.Reset()
				continue
			}
			return ignoreReplyPending(err)
		}
		if !shift {
			return nil
		}
		draft.Reset()
		draft.WriteString(t.w.State().Input)
	}
}

func ignoreReplyPending(err error) error {
	if errors.Is(err, wizard.ErrReplyPending) {
		return nil
	}
	return err
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
