// Package dashboardui holds the client-side state of the submissions
// dashboard: login, paging, selection and local updates after mutations.
package dashboardui

import (
	"context"
	"errors"
	"strings"
	"sync"

	"portfolio_backend/internal/apiclient"

	"github.com/google/uuid"
)

// PageSize is the number of rows requested per page.
const PageSize = 15

// API is the subset of the HTTP client the dashboard uses.
type API interface {
	ListSubmissions(ctx context.Context, token string, page, limit int) (apiclient.Page, error)
	MarkRead(ctx context.Context, token string, id uuid.UUID, read bool) error
	Delete(ctx context.Context, token string, id uuid.UUID) error
}

// ErrNotLoggedIn is returned by operations that need a token.
var ErrNotLoggedIn = errors.New("not logged in")

// View is a point-in-time copy of the dashboard for rendering.
type View struct {
	Authed     bool
	AuthError  bool
	Page       int
	TotalPages int
	Total      int
	Unread     int
	Rows       []apiclient.Submission
	Selected   *apiclient.Submission
	LastError  error
}

// State is safe for concurrent use. The token lives in memory only.
type State struct {
	mu        sync.Mutex
	api       API
	token     string
	page      int
	rows      []apiclient.Submission
	total     int
	selected  *uuid.UUID
	authError bool
	lastErr   error
}

// New creates a logged-out dashboard.
func New(api API) *State {
	return &State{api: api, page: 1}
}

// Login validates token by fetching the first page. Blank input is ignored.
// A 401 sets the auth error flag and keeps the user logged out. Any other
// server response stores the token; an error status leaves the first page
// empty and is reported through LastError. Transport failures store nothing.
func (s *State) Login(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}

	s.mu.Lock()
	s.authError = false
	s.mu.Unlock()

	page, err := s.api.ListSubmissions(ctx, token, 1, PageSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	if errors.Is(err, apiclient.ErrUnauthorized) {
		s.authError = true
		return err
	}
	var statusErr *apiclient.StatusError
	if err != nil && !errors.As(err, &statusErr) {
		s.lastErr = err
		return err
	}

	s.token = token
	s.page = 1
	s.selected = nil
	s.lastErr = err
	if err != nil {
		page = apiclient.Page{Page: 1, Limit: PageSize}
	}
	s.apply(page)
	return err
}

// Logout forgets the token and every loaded row.
func (s *State) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logoutLocked()
}

// Refresh reloads the current page, replacing rows and total wholesale.
func (s *State) Refresh(ctx context.Context) error {
	s.mu.Lock()
	page := s.page
	s.mu.Unlock()
	return s.load(ctx, page)
}

// NextPage moves forward one page unless already on the last.
func (s *State) NextPage(ctx context.Context) error {
	s.mu.Lock()
	page := s.page
	last := s.totalPagesLocked()
	s.mu.Unlock()

	if page >= last {
		return nil
	}
	return s.load(ctx, page+1)
}

// PrevPage moves back one page unless already on the first.
func (s *State) PrevPage(ctx context.Context) error {
	s.mu.Lock()
	page := s.page
	s.mu.Unlock()

	if page <= 1 {
		return nil
	}
	return s.load(ctx, page-1)
}

// Select opens a row. Opening an unread row marks it read on the server.
func (s *State) Select(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	row := s.findLocked(id)
	if row == nil {
		s.mu.Unlock()
		return nil
	}
	selected := id
	s.selected = &selected
	unread := !row.Read
	s.mu.Unlock()

	if unread {
		return s.SetRead(ctx, id, true)
	}
	return nil
}

// SetRead changes the read flag and, once the server confirms, the local row.
func (s *State) SetRead(ctx context.Context, id uuid.UUID, read bool) error {
	token, err := s.currentToken()
	if err != nil {
		return err
	}

	err = s.api.MarkRead(ctx, token, id, read)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		return s.failLocked(err)
	}
	if row := s.findLocked(id); row != nil {
		row.Read = read
	}
	s.lastErr = nil
	return nil
}

// Delete removes a row and, once the server confirms, drops it locally.
func (s *State) Delete(ctx context.Context, id uuid.UUID) error {
	token, err := s.currentToken()
	if err != nil {
		return err
	}

	err = s.api.Delete(ctx, token, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		return s.failLocked(err)
	}

	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i:i], s.rows[i+1:]...)
			break
		}
	}
	if s.selected != nil && *s.selected == id {
		s.selected = nil
	}
	if s.total > 0 {
		s.total--
	}
	s.lastErr = nil
	return nil
}

// Unread counts unread rows on the current page.
func (s *State) Unread() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unreadLocked()
}

// TotalPages is ceil(total / PageSize).
func (s *State) TotalPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalPagesLocked()
}

// View returns a copy of the state.
func (s *State) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Authed:     s.token != "",
		AuthError:  s.authError,
		Page:       s.page,
		TotalPages: s.totalPagesLocked(),
		Total:      s.total,
		Unread:     s.unreadLocked(),
		Rows:       append([]apiclient.Submission(nil), s.rows...),
		LastError:  s.lastErr,
	}
	if s.selected != nil {
		if row := s.findLocked(*s.selected); row != nil {
			copied := *row
			v.Selected = &copied
		}
	}
	return v
}

func (s *State) load(ctx context.Context, page int) error {
	token, err := s.currentToken()
	if err != nil {
		return err
	}

	result, err := s.api.ListSubmissions(ctx, token, page, PageSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		return s.failLocked(err)
	}
	s.page = page
	s.lastErr = nil
	s.apply(result)
	return nil
}

func (s *State) apply(page apiclient.Page) {
	s.rows = page.Data
	if s.rows == nil {
		s.rows = []apiclient.Submission{}
	}
	s.total = page.Total
	if s.selected != nil && s.findLocked(*s.selected) == nil {
		s.selected = nil
	}
}

func (s *State) currentToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", ErrNotLoggedIn
	}
	return s.token, nil
}

// failLocked records err; a 401 ends the session.
func (s *State) failLocked(err error) error {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		s.logoutLocked()
		s.authError = true
		return err
	}
	s.lastErr = err
	return err
}

func (s *State) logoutLocked() {
	s.token = ""
	s.page = 1
	s.rows = nil
	s.total = 0
	s.selected = nil
	s.lastErr = nil
}

func (s *State) findLocked(id uuid.UUID) *apiclient.Submission {
	for i := range s.rows {
		if s.rows[i].ID == id {
			return &s.rows[i]
		}
	}
	return nil
}

func (s *State) unreadLocked() int {
	n := 0
	for _, row := range s.rows {
		if !row.Read {
			n++
		}
	}
	return n
}

func (s *State) totalPagesLocked() int {
	if s.total <= 0 {
		return 0
	}
	return (s.total + PageSize - 1) / PageSize
}
