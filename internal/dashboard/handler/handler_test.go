package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"portfolio_backend/internal/dashboard/auth"
	"portfolio_backend/internal/dashboard/service"
	"portfolio_backend/internal/submissions/repository"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const secret = "dashboard-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

// memoryStore mimics the repository's ordering and no-op semantics.
type memoryStore struct {
	rows    []repository.Submission
	failErr error
	patches int
}

func seededStore(n int) *memoryStore {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	store := &memoryStore{}
	for i := 0; i < n; i++ {
		store.rows = append(store.rows, repository.Submission{
			ID:              uuid.New(),
			SelectedMethods: []string{"email"},
			ContactDetails:  map[string]string{"email": "a@b.com"},
			Subject:         "General",
			Message:         "Hello",
			CreatedAt:       base.Add(time.Duration(i) * time.Minute),
		})
	}
	return store
}

func (m *memoryStore) List(_ context.Context, p repository.ListParams) ([]repository.Submission, int, error) {
	if m.failErr != nil {
		return nil, 0, m.failErr
	}
	sorted := append([]repository.Submission(nil), m.rows...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	if p.Offset >= len(sorted) {
		return []repository.Submission{}, len(sorted), nil
	}
	end := p.Offset + p.Limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[p.Offset:end], len(sorted), nil
}

func (m *memoryStore) SetRead(_ context.Context, id uuid.UUID, read bool) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.patches++
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].Read = read
		}
	}
	return nil
}

func (m *memoryStore) Delete(_ context.Context, id uuid.UUID) error {
	if m.failErr != nil {
		return m.failErr
	}
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func newRouter(store service.Store) *gin.Engine {
	log := logger.Discard()
	h := New(service.New(store, log), validator.New())
	r := gin.New()
	g := r.Group("/dashboard", auth.Middleware(auth.NewStaticTokenAuthenticator(secret), log))
	g.GET("", h.List)
	g.PATCH("", h.SetRead)
	g.DELETE("", h.Delete)
	return r
}

func do(r *gin.Engine, method, target, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type listBody struct {
	Data  []repository.Submission `json:"data"`
	Total int                     `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) listBody {
	t.Helper()
	var body listBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	return body
}

func TestListSecondPageOfSeventeen(t *testing.T) {
	store := seededStore(17)
	rec := do(newRouter(store), http.MethodGet, "/dashboard?page=2&limit=15", secret, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeList(t, rec)
	if len(body.Data) != 2 || body.Total != 17 || body.Page != 2 || body.Limit != 15 {
		t.Fatalf("unexpected page: rows=%d total=%d page=%d limit=%d", len(body.Data), body.Total, body.Page, body.Limit)
	}
	if !body.Data[0].CreatedAt.After(body.Data[1].CreatedAt) {
		t.Fatal("rows must be ordered newest first")
	}
	// The two oldest rows land on the second page.
	if !body.Data[1].CreatedAt.Equal(store.rows[0].CreatedAt) {
		t.Fatalf("expected oldest row last, got %s", body.Data[1].CreatedAt)
	}
}

func TestListPagingFallbacks(t *testing.T) {
	tests := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{query: "", wantPage: 1, wantLimit: 20},
		{query: "?page=0&limit=-5", wantPage: 1, wantLimit: 20},
		{query: "?page=abc&limit=xyz", wantPage: 1, wantLimit: 20},
		{query: "?limit=1000", wantPage: 1, wantLimit: 100},
		{query: "?page=2&limit=150", wantPage: 2, wantLimit: 100},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := do(newRouter(seededStore(3)), http.MethodGet, "/dashboard"+tt.query, secret, "")
			body := decodeList(t, rec)
			if body.Page != tt.wantPage || body.Limit != tt.wantLimit {
				t.Fatalf("expected page=%d limit=%d, got page=%d limit=%d", tt.wantPage, tt.wantLimit, body.Page, body.Limit)
			}
		})
	}
}

func TestListEmptyReturnsEmptyArray(t *testing.T) {
	rec := do(newRouter(seededStore(0)), http.MethodGet, "/dashboard", secret, "")
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Fatalf("expected empty data array, got %s", rec.Body.String())
	}
}

func TestUnauthorizedNeverEchoesTokenOrRows(t *testing.T) {
	store := seededStore(2)
	r := newRouter(store)

	for _, token := range []string{"", "wrong-token-value"} {
		for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodDelete} {
			rec := do(r, method, "/dashboard", token, `{"id":"`+store.rows[0].ID.String()+`","read":true}`)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("%s with %q: expected 401, got %d", method, token, rec.Code)
			}
			body := rec.Body.String()
			if strings.TrimSpace(body) != `{"error":"Unauthorized"}` {
				t.Fatalf("unexpected 401 body: %s", body)
			}
		}
	}
	if store.patches != 0 || len(store.rows) != 2 {
		t.Fatal("unauthorized requests must not mutate anything")
	}
}

func TestSetReadUnknownIDSucceeds(t *testing.T) {
	store := seededStore(1)
	rec := do(newRouter(store), http.MethodPatch, "/dashboard", secret, `{"id":"`+uuid.NewString()+`","read":true}`)

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Fatalf("expected success, got %d %s", rec.Code, rec.Body.String())
	}
	if store.rows[0].Read {
		t.Fatal("unrelated row must not change")
	}
}

func TestSetReadUpdatesRow(t *testing.T) {
	store := seededStore(1)
	id := store.rows[0].ID.String()

	rec := do(newRouter(store), http.MethodPatch, "/dashboard", secret, `{"id":"`+id+`","read":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !store.rows[0].Read {
		t.Fatal("expected row to be marked read")
	}
}

func TestSetReadRejectsMalformedBodies(t *testing.T) {
	bodies := map[string]string{
		"bad json":     `{"id":`,
		"missing read": `{"id":"` + uuid.NewString() + `"}`,
		"missing id":   `{"read":true}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			rec := do(newRouter(seededStore(1)), http.MethodPatch, "/dashboard", secret, body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestNonUUIDIDIsUnknownNoop(t *testing.T) {
	store := seededStore(2)
	r := newRouter(store)

	for _, tc := range []struct{ method, body string }{
		{http.MethodPatch, `{"id":"42","read":true}`},
		{http.MethodDelete, `{"id":"not-a-uuid"}`},
	} {
		rec := do(r, tc.method, "/dashboard", secret, tc.body)
		if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != `{"success":true}` {
			t.Fatalf("%s: expected success no-op, got %d %s", tc.method, rec.Code, rec.Body.String())
		}
	}
	if store.patches != 0 || len(store.rows) != 2 || store.rows[0].Read || store.rows[1].Read {
		t.Fatal("non-uuid ids must not touch any row")
	}
}

func TestDeleteRemovesRowAndToleratesUnknownID(t *testing.T) {
	store := seededStore(2)
	r := newRouter(store)
	id := store.rows[0].ID.String()

	if rec := do(r, http.MethodDelete, "/dashboard", secret, `{"id":"`+id+`"}`); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(store.rows) != 1 {
		t.Fatalf("expected 1 row left, got %d", len(store.rows))
	}
	if rec := do(r, http.MethodDelete, "/dashboard", secret, `{"id":"`+id+`"}`); rec.Code != http.StatusOK {
		t.Fatalf("expected repeated delete to succeed, got %d", rec.Code)
	}
}

func TestStorageFailureIsDatabaseError(t *testing.T) {
	store := seededStore(1)
	store.failErr = errors.New("pool closed")
	r := newRouter(store)

	for _, tc := range []struct{ method, body string }{
		{http.MethodGet, ""},
		{http.MethodPatch, `{"id":"` + uuid.NewString() + `","read":false}`},
		{http.MethodDelete, `{"id":"` + uuid.NewString() + `"}`},
	} {
		rec := do(r, tc.method, "/dashboard", secret, tc.body)
		if rec.Code != http.StatusInternalServerError || !strings.Contains(rec.Body.String(), "Database error") {
			t.Fatalf("%s: expected 500 Database error, got %d %s", tc.method, rec.Code, rec.Body.String())
		}
	}
}
