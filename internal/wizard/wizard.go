// Package wizard implements the chat-style contact form: a forward-only
// sequence of steps that builds a transcript and, at the end, one submission.
package wizard

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"portfolio_backend/internal/locale"
	"portfolio_backend/platform/logger"

	"github.com/google/uuid"
)

// Step is a stage of the conversation.
type Step string

const (
	StepContactMethod Step = "contact-method"
	StepContactDetail Step = "contact-detail"
	StepSubject       Step = "subject"
	StepMessage       Step = "message"
	StepDone          Step = "done"
)

// Role says who authored a transcript entry.
type Role string

const (
	RoleAgent Role = "agent"
	RoleUser  Role = "user"
)

const (
	// MaxMessageChars caps the free-text message, counted in runes.
	MaxMessageChars = 500
	// TypingDelay is how long the agent "types" before a prompt appears.
	TypingDelay = 900 * time.Millisecond
	// ReplyDelay is the longer pause before the closing acknowledgement.
	ReplyDelay = 1800 * time.Millisecond

	initialMessageID = "init"
)

var (
	ErrWrongStep      = errors.New("action not allowed in the current step")
	ErrReplyPending   = errors.New("agent reply pending")
	ErrNoMethods      = errors.New("no contact method selected")
	ErrUnknownMethod  = errors.New("unknown contact method")
	ErrUnknownSubject = errors.New("unknown subject")
	ErrEmptyInput     = errors.New("input is empty")
	ErrSending        = errors.New("submission in flight")
)

// Message is one transcript entry.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
}

// Submission is what the completed conversation produces.
type Submission struct {
	SelectedMethods []string          `json:"selectedMethods"`
	ContactDetails  map[string]string `json:"contactDetails"`
	Subject         string            `json:"subject"`
	Message         string            `json:"message"`
}

// Submitter delivers the finished submission. Its error is logged only.
type Submitter interface {
	SubmitContact(ctx context.Context, sub Submission) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, sub Submission) error

func (f SubmitterFunc) SubmitContact(ctx context.Context, sub Submission) error { return f(ctx, sub) }

// State is a point-in-time copy of the wizard for rendering.
type State struct {
	Step            Step
	SelectedMethods []string
	ContactDetails  map[string]string
	CurrentMethod   *locale.ContactMethod
	Subject         string
	Input           string
	Transcript      []Message
	Typing          bool
	Sending         bool
}

// Options configures a Wizard.
type Options struct {
	Messages  *locale.Messages
	Scheduler Scheduler
	Submitter Submitter
	Logger    *logger.Logger
	// OnChange is called, outside the lock, after every state change.
	OnChange func()
}

// Wizard is safe for concurrent use.
type Wizard struct {
	mu        sync.Mutex
	msgs      *locale.Messages
	sched     Scheduler
	submitter Submitter
	log       *logger.Logger
	onChange  func()
	dispatch  sync.WaitGroup

	step        Step
	selected    []string
	details     map[string]string
	detailIndex int
	subject     string
	input       string
	transcript  []Message
	pending     Timer
	sending     bool
}

// New starts a conversation with the agent greeting already in the transcript.
func New(opts Options) *Wizard {
	sched := opts.Scheduler
	if sched == nil {
		sched = RealScheduler{}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	w := &Wizard{
		msgs:      opts.Messages,
		sched:     sched,
		submitter: opts.Submitter,
		log:       log,
		onChange:  opts.OnChange,
		step:      StepContactMethod,
		details:   make(map[string]string),
	}
	w.transcript = []Message{{
		ID:        initialMessageID,
		Role:      RoleAgent,
		Content:   opts.Messages.Contact.InitialMessage,
		Timestamp: sched.Now(),
	}}
	return w
}

// ToggleMethod adds id to the selection, or removes it if already selected.
func (w *Wizard) ToggleMethod(id string) error {
	return w.mutate(func() error {
		if w.step != StepContactMethod {
			return ErrWrongStep
		}
		if _, ok := w.msgs.Method(id); !ok {
			return ErrUnknownMethod
		}
		for i, selected := range w.selected {
			if selected == id {
				w.selected = append(w.selected[:i:i], w.selected[i+1:]...)
				return nil
			}
		}
		w.selected = append(w.selected, id)
		return nil
	})
}

// ConfirmMethods fixes the selection and asks for the first method's detail.
// An empty selection changes nothing.
func (w *Wizard) ConfirmMethods() error {
	return w.mutate(func() error {
		if w.step != StepContactMethod {
			return ErrWrongStep
		}
		if len(w.selected) == 0 {
			return ErrNoMethods
		}
		if w.pending != nil {
			return ErrReplyPending
		}

		labels := make([]string, len(w.selected))
		for i, id := range w.selected {
			labels[i] = w.msgs.MethodLabel(id)
		}
		w.appendMessage(RoleUser, strings.Join(labels, ", "))
		w.step = StepContactDetail
		w.detailIndex = 0
		w.scheduleAgent(w.detailPrompt(w.selected[0]), TypingDelay)
		return nil
	})
}

// SubmitDetail records the contact detail for the current method.
func (w *Wizard) SubmitDetail(value string) error {
	return w.mutate(func() error {
		if w.step != StepContactDetail {
			return ErrWrongStep
		}
		if w.pending != nil {
			return ErrReplyPending
		}
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return ErrEmptyInput
		}

		methodID := w.selected[w.detailIndex]
		w.appendMessage(RoleUser, w.msgs.MethodLabel(methodID)+": "+trimmed)
		w.details[methodID] = trimmed
		w.detailIndex++

		if w.detailIndex < len(w.selected) {
			w.scheduleAgent(w.detailPrompt(w.selected[w.detailIndex]), TypingDelay)
			return nil
		}
		w.step = StepSubject
		w.scheduleAgent(w.msgs.Contact.Steps.SubjectPrompt, TypingDelay)
		return nil
	})
}

// SelectSubject picks one of the configured subjects.
func (w *Wizard) SelectSubject(subject string) error {
	return w.mutate(func() error {
		if w.step != StepSubject {
			return ErrWrongStep
		}
		if w.pending != nil {
			return ErrReplyPending
		}
		if !w.msgs.HasSubject(subject) {
			return ErrUnknownSubject
		}

		w.subject = subject
		w.appendMessage(RoleUser, subject)
		w.step = StepMessage
		w.scheduleAgent(w.msgs.Contact.Steps.MessagePrompt, TypingDelay)
		return nil
	})
}

// SetMessageInput replaces the message draft, clipped to MaxMessageChars.
func (w *Wizard) SetMessageInput(text string) error {
	return w.mutate(func() error {
		if w.step != StepMessage {
			return ErrWrongStep
		}
		w.input = clip(text, MaxMessageChars)
		return nil
	})
}

// HandleKey applies a key press in the message step: Enter submits,
// Shift+Enter inserts a newline. Other keys are ignored.
func (w *Wizard) HandleKey(ctx context.Context, key string, shift bool) error {
	if key != "Enter" {
		return nil
	}
	if !shift {
		return w.SubmitMessage(ctx)
	}
	return w.mutate(func() error {
		if w.step != StepMessage {
			return ErrWrongStep
		}
		w.input = clip(w.input+"\n", MaxMessageChars)
		return nil
	})
}

// SubmitMessage finishes the conversation. The submission is dispatched in
// the background; whatever its outcome, the agent acknowledges after ReplyDelay.
func (w *Wizard) SubmitMessage(ctx context.Context) error {
	return w.mutate(func() error {
		if w.step != StepMessage {
			return ErrWrongStep
		}
		trimmed := strings.TrimSpace(w.input)
		if trimmed == "" {
			return ErrEmptyInput
		}
		if w.pending != nil {
			return ErrReplyPending
		}
		if w.sending {
			return ErrSending
		}

		w.appendMessage(RoleUser, trimmed)
		w.input = ""
		w.step = StepDone
		w.sending = true

		sub := Submission{
			SelectedMethods: append([]string(nil), w.selected...),
			ContactDetails:  copyDetails(w.details),
			Subject:         w.subject,
			Message:         trimmed,
		}
		w.dispatch.Add(1)
		go w.deliver(ctx, sub)
		return nil
	})
}

func (w *Wizard) deliver(ctx context.Context, sub Submission) {
	defer w.dispatch.Done()

	if w.submitter != nil {
		if err := w.submitter.SubmitContact(ctx, sub); err != nil {
			w.log.Error("failed to submit contact form", "error", err)
		}
	}

	_ = w.mutate(func() error {
		w.sending = false
		w.scheduleAgent(w.msgs.Contact.AgentReply, ReplyDelay)
		return nil
	})
}

// Wait blocks until a dispatched submission has been handed to the Submitter
// and the closing reply is scheduled.
func (w *Wizard) Wait() {
	w.dispatch.Wait()
}

// Close cancels a pending agent reply.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending != nil {
		w.pending.Stop()
		w.pending = nil
	}
}

// State returns a copy of the current state.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	st := State{
		Step:            w.step,
		SelectedMethods: append([]string(nil), w.selected...),
		ContactDetails:  copyDetails(w.details),
		Subject:         w.subject,
		Input:           w.input,
		Transcript:      append([]Message(nil), w.transcript...),
		Typing:          w.pending != nil,
		Sending:         w.sending,
	}
	if w.step == StepContactDetail && w.detailIndex < len(w.selected) {
		if method, ok := w.msgs.Method(w.selected[w.detailIndex]); ok {
			st.CurrentMethod = &method
		}
	}
	return st
}

// mutate runs fn under the lock and notifies the listener when fn succeeds.
func (w *Wizard) mutate(fn func() error) error {
	w.mu.Lock()
	err := fn()
	w.mu.Unlock()

	if err == nil && w.onChange != nil {
		w.onChange()
	}
	return err
}

// scheduleAgent must be called with the lock held and no reply pending.
func (w *Wizard) scheduleAgent(content string, delay time.Duration) {
	var timer Timer
	timer = w.sched.AfterFunc(delay, func() {
		_ = w.mutate(func() error {
			if w.pending != timer {
				return ErrReplyPending
			}
			w.pending = nil
			w.appendMessage(RoleAgent, content)
			return nil
		})
	})
	w.pending = timer
}

func (w *Wizard) appendMessage(role Role, content string) {
	w.transcript = append(w.transcript, Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: w.sched.Now(),
	})
}

func (w *Wizard) detailPrompt(methodID string) string {
	return locale.Format(w.msgs.Contact.Steps.ContactDetailPrompt, "method", w.msgs.MethodLabel(methodID))
}

func clip(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max])
}

func copyDetails(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
