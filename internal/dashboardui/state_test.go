package dashboardui

import (
	"context"
	"errors"
	"testing"
	"time"

	"portfolio_backend/internal/apiclient"

	"github.com/google/uuid"
)

type patchCall struct {
	id   uuid.UUID
	read bool
}

type fakeAPI struct {
	token   string
	rows    []apiclient.Submission
	patches []patchCall
	deletes []uuid.UUID
	failErr error
}

func newFakeAPI(n int) *fakeAPI {
	api := &fakeAPI{token: "tok"}
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		api.rows = append(api.rows, apiclient.Submission{
			ID:        uuid.New(),
			Subject:   "General",
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		})
	}
	return api
}

func (f *fakeAPI) check(token string) error {
	if token != f.token {
		return &apiclient.StatusError{Code: 401, Message: "Unauthorized"}
	}
	return f.failErr
}

func (f *fakeAPI) ListSubmissions(_ context.Context, token string, page, limit int) (apiclient.Page, error) {
	if err := f.check(token); err != nil {
		return apiclient.Page{}, err
	}
	from := (page - 1) * limit
	if from > len(f.rows) {
		from = len(f.rows)
	}
	to := from + limit
	if to > len(f.rows) {
		to = len(f.rows)
	}
	data := append([]apiclient.Submission(nil), f.rows[from:to]...)
	return apiclient.Page{Data: data, Total: len(f.rows), Page: page, Limit: limit}, nil
}

func (f *fakeAPI) MarkRead(_ context.Context, token string, id uuid.UUID, read bool) error {
	if err := f.check(token); err != nil {
		return err
	}
	f.patches = append(f.patches, patchCall{id: id, read: read})
	return nil
}

func (f *fakeAPI) Delete(_ context.Context, token string, id uuid.UUID) error {
	if err := f.check(token); err != nil {
		return err
	}
	f.deletes = append(f.deletes, id)
	return nil
}

func loggedIn(t *testing.T, api *fakeAPI) *State {
	t.Helper()
	s := New(api)
	if err := s.Login(context.Background(), "tok"); err != nil {
		t.Fatalf("login: %v", err)
	}
	return s
}

func TestLoginBlankIsNoop(t *testing.T) {
	s := New(newFakeAPI(3))
	if err := s.Login(context.Background(), "   "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v := s.View(); v.Authed || v.AuthError {
		t.Fatalf("blank login must not change state: %+v", v)
	}
}

func TestLoginRejectedSetsAuthError(t *testing.T) {
	s := New(newFakeAPI(3))
	if err := s.Login(context.Background(), "wrong"); !errors.Is(err, apiclient.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	v := s.View()
	if v.Authed || !v.AuthError || len(v.Rows) != 0 {
		t.Fatalf("unexpected view after rejected login: %+v", v)
	}
}

func TestLoginNon401ResponseStoresToken(t *testing.T) {
	api := newFakeAPI(3)
	api.failErr = &apiclient.StatusError{Code: 500, Message: "Database error"}
	s := New(api)

	if err := s.Login(context.Background(), "tok"); err == nil {
		t.Fatal("expected the 500 to be returned")
	}
	v := s.View()
	if !v.Authed || v.AuthError {
		t.Fatalf("a non-401 response must store the token: %+v", v)
	}
	if v.LastError == nil || v.Page != 1 || len(v.Rows) != 0 || v.Total != 0 {
		t.Fatalf("unexpected view after failed first page: %+v", v)
	}

	api.failErr = nil
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if v := s.View(); len(v.Rows) != 3 || v.LastError != nil {
		t.Fatalf("expected refresh to recover with the stored token: %+v", v)
	}
}

func TestLoginTransportFailureKeepsLoggedOut(t *testing.T) {
	api := newFakeAPI(3)
	api.failErr = errors.New("dial tcp: connection refused")
	s := New(api)

	if err := s.Login(context.Background(), "tok"); err == nil {
		t.Fatal("expected transport error")
	}
	if v := s.View(); v.Authed || v.AuthError || v.LastError == nil {
		t.Fatalf("unexpected view after transport failure: %+v", v)
	}
}

func TestLoginLoadsFirstPage(t *testing.T) {
	s := loggedIn(t, newFakeAPI(17))
	v := s.View()

	if !v.Authed || v.Page != 1 || len(v.Rows) != PageSize || v.Total != 17 || v.TotalPages != 2 {
		t.Fatalf("unexpected view: page=%d rows=%d total=%d pages=%d", v.Page, len(v.Rows), v.Total, v.TotalPages)
	}
}

func TestPagingIsBounded(t *testing.T) {
	s := loggedIn(t, newFakeAPI(17))
	ctx := context.Background()

	_ = s.PrevPage(ctx)
	if s.View().Page != 1 {
		t.Fatal("page must not go below 1")
	}
	_ = s.NextPage(ctx)
	if v := s.View(); v.Page != 2 || len(v.Rows) != 2 {
		t.Fatalf("expected page 2 with 2 rows, got page %d with %d", v.Page, len(v.Rows))
	}
	_ = s.NextPage(ctx)
	if s.View().Page != 2 {
		t.Fatal("page must not go past the last page")
	}
	_ = s.PrevPage(ctx)
	if s.View().Page != 1 {
		t.Fatal("expected to return to page 1")
	}
}

func TestSelectingUnreadRowPatchesExactlyOnce(t *testing.T) {
	api := newFakeAPI(2)
	s := loggedIn(t, api)
	id := api.rows[0].ID
	ctx := context.Background()

	if err := s.Select(ctx, id); err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(api.patches) != 1 || api.patches[0] != (patchCall{id: id, read: true}) {
		t.Fatalf("expected one PATCH {read:true}, got %+v", api.patches)
	}
	v := s.View()
	if v.Selected == nil || v.Selected.ID != id || !v.Selected.Read || v.Unread != 1 {
		t.Fatalf("unexpected view after select: %+v", v)
	}

	_ = s.Select(ctx, id)
	if len(api.patches) != 1 {
		t.Fatalf("reselecting a read row must not PATCH again, got %d", len(api.patches))
	}
}

func TestSetReadFalseUpdatesRowAndSelection(t *testing.T) {
	api := newFakeAPI(1)
	s := loggedIn(t, api)
	id := api.rows[0].ID
	ctx := context.Background()

	_ = s.Select(ctx, id)
	if err := s.SetRead(ctx, id, false); err != nil {
		t.Fatalf("set read: %v", err)
	}
	if v := s.View(); v.Selected.Read || v.Unread != 1 {
		t.Fatalf("expected row back to unread: %+v", v)
	}
}

func TestDeleteRemovesRowAndDecrementsTotal(t *testing.T) {
	api := newFakeAPI(3)
	s := loggedIn(t, api)
	id := api.rows[1].ID
	ctx := context.Background()

	_ = s.Select(ctx, id)
	if err := s.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	v := s.View()
	if len(v.Rows) != 2 || v.Total != 2 || v.Selected != nil {
		t.Fatalf("unexpected view after delete: rows=%d total=%d selected=%v", len(v.Rows), v.Total, v.Selected)
	}
	for _, row := range v.Rows {
		if row.ID == id {
			t.Fatal("deleted row still present")
		}
	}
}

func TestMutationFailureSurfacesLastError(t *testing.T) {
	api := newFakeAPI(2)
	s := loggedIn(t, api)
	id := api.rows[0].ID
	api.failErr = errors.New("api returned 500: Database error")

	if err := s.Delete(context.Background(), id); err == nil {
		t.Fatal("expected error")
	}
	v := s.View()
	if v.LastError == nil || len(v.Rows) != 2 || v.Total != 2 {
		t.Fatalf("failed delete must keep rows and surface the error: %+v", v)
	}
}

func TestUnauthorizedRefreshLogsOut(t *testing.T) {
	api := newFakeAPI(2)
	s := loggedIn(t, api)
	api.token = "rotated"

	if err := s.Refresh(context.Background()); !errors.Is(err, apiclient.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	v := s.View()
	if v.Authed || !v.AuthError || len(v.Rows) != 0 {
		t.Fatalf("expected logged-out view, got %+v", v)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	s := loggedIn(t, newFakeAPI(2))
	s.Logout()

	v := s.View()
	if v.Authed || len(v.Rows) != 0 || v.Total != 0 || v.Page != 1 {
		t.Fatalf("unexpected view after logout: %+v", v)
	}
	if err := s.Refresh(context.Background()); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}
