package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// HTTPClient talks to the helpdesk API over HTTP with bearer authentication
// and the conventional {message, data} response envelope.
type HTTPClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewHTTPClient builds a client for the given base URL, e.g.
// "http://localhost:8080". Token may be empty until login.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken installs the bearer token used on subsequent requests.
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

type envelope struct {
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data"`
}

type loginData struct {
	Auth struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expiresAt"`
	} `json:"auth"`
}

// Login exchanges credentials for a bearer token and installs it on the
// client for subsequent requests.
func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	var data loginData
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &data); err != nil {
		return err
	}
	c.token = data.Auth.Token
	return nil
}

// GetTicketByNumber fetches full detail via the optimized by-number route.
func (c *HTTPClient) GetTicketByNumber(ctx context.Context, number string) (*TicketDetail, error) {
	var detail TicketDetail
	if err := c.do(ctx, http.MethodGet, "/tickets/by-number/"+url.PathEscape(number), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// GetTicketByID fetches full detail via the legacy numeric-id route.
func (c *HTTPClient) GetTicketByID(ctx context.Context, id int64) (*TicketDetail, error) {
	var detail TicketDetail
	if err := c.do(ctx, http.MethodGet, "/tickets/"+strconv.FormatInt(id, 10), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListTickets fetches one page of summaries.
func (c *HTTPClient) ListTickets(ctx context.Context, params ListParams) (*TicketPage, error) {
	q := url.Values{}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(params.PageSize))
	}
	if params.Query != "" {
		q.Set("q", params.Query)
	}
	path := "/tickets"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var page TicketPage
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateTicket submits a new ticket and returns the acknowledged detail.
func (c *HTTPClient) CreateTicket(ctx context.Context, input CreateTicketInput) (*TicketDetail, error) {
	var detail TicketDetail
	if err := c.do(ctx, http.MethodPost, "/tickets", input, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// UpdateTicketStatus changes a ticket's status by numeric id.
func (c *HTTPClient) UpdateTicketStatus(ctx context.Context, id int64, newStatus string) error {
	body := map[string]string{"newStatus": newStatus}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/tickets/%d/status", id), body, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 400 {
		var env envelope
		_ = json.NewDecoder(resp.Body).Decode(&env)
		return &StatusError{Code: resp.StatusCode, Message: env.Message}
	}
	if out == nil {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return err
	}
	return json.Unmarshal(env.Data, out)
}
