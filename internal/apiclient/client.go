// Package apiclient talks to the contact and dashboard HTTP endpoints on
// behalf of the terminal clients.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultTimeout = 10 * time.Second

// ErrUnauthorized matches a 401 response through errors.Is.
var ErrUnauthorized = errors.New("unauthorized")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned %d", e.Code)
	}
	return fmt.Sprintf("api returned %d: %s", e.Code, e.Message)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.Code == http.StatusUnauthorized
}

// ContactRequest is the body of POST /contact.
type ContactRequest struct {
	SelectedMethods []string          `json:"selectedMethods"`
	ContactDetails  map[string]string `json:"contactDetails"`
	Subject         string            `json:"subject"`
	Message         string            `json:"message"`
}

// ContactResponse is returned after a submission is stored.
type ContactResponse struct {
	Success bool      `json:"success"`
	ID      uuid.UUID `json:"id"`
}

// Submission is a dashboard row.
type Submission struct {
	ID              uuid.UUID         `json:"id"`
	SelectedMethods []string          `json:"selected_methods"`
	ContactDetails  map[string]string `json:"contact_details"`
	Subject         string            `json:"subject"`
	Message         string            `json:"message"`
	CreatedAt       time.Time         `json:"created_at"`
	Read            bool              `json:"read"`
}

// Page is one page of dashboard rows.
type Page struct {
	Data  []Submission `json:"data"`
	Total int          `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Client calls the API at a fixed base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for baseURL (e.g. "http://localhost:8080").
// A nil httpClient gets a default with a 10s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// SubmitContact posts a completed contact conversation.
func (c *Client) SubmitContact(ctx context.Context, req ContactRequest) (ContactResponse, error) {
	var out ContactResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/contact", "", req, &out)
	return out, err
}

// ListSubmissions fetches one dashboard page.
func (c *Client) ListSubmissions(ctx context.Context, token string, page, limit int) (Page, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var out Page
	err := c.do(ctx, http.MethodGet, "/api/v1/dashboard?"+query.Encode(), token, nil, &out)
	return out, err
}

// MarkRead sets the read flag of a submission.
func (c *Client) MarkRead(ctx context.Context, token string, id uuid.UUID, read bool) error {
	body := struct {
		ID   uuid.UUID `json:"id"`
		Read bool      `json:"read"`
	}{ID: id, Read: read}
	return c.do(ctx, http.MethodPatch, "/api/v1/dashboard", token, body, nil)
}

// Delete removes a submission.
func (c *Client) Delete(ctx context.Context, token string, id uuid.UUID) error {
	body := struct {
		ID uuid.UUID `json:"id"`
	}{ID: id}
	return c.do(ctx, http.MethodDelete, "/api/v1/dashboard", token, body, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out interface{}) error {
	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var body errorBody
		msg := strings.TrimSpace(string(data))
		if json.Unmarshal(data, &body) == nil && body.Error != "" {
			msg = body.Error
		}
		return &StatusError{Code: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
