// Package supabase is a thin REST client for a hosted Supabase project:
// PostgREST row access under /rest/v1 and GoTrue auth under /auth/v1.
package supabase

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

	"github.com/tidwall/gjson"
)

// ErrMissingCredentials is returned by New when the project URL or API key is empty.
var ErrMissingCredentials = errors.New("supabase url and api key are required")

const maxResponseBytes = 8 << 20 // 8 MiB

// Config configures the client.
type Config struct {
	URL        string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client performs Supabase REST calls with the project API key.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a client.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" || cfg.APIKey == "" {
		return nil, ErrMissingCredentials
	}
	if _, err := url.ParseRequestURI(cfg.URL); err != nil {
		return nil, fmt.Errorf("invalid supabase url: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}, nil
}

// APIError is a non-2xx answer from the hosted service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supabase API error %d: %s", e.StatusCode, e.Message)
}

// Response is a successful answer.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// JSON unmarshals the response body into v.
func (r *Response) JSON(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	return json.Unmarshal(r.Body, v)
}

// =============================================================================
// PostgREST
// =============================================================================

// From starts a query on a table.
func (c *Client) From(table string) *QueryBuilder {
	return &QueryBuilder{client: c, table: table}
}

// QueryBuilder builds a PostgREST request.
type QueryBuilder struct {
	client  *Client
	table   string
	columns string
	filters [][2]string
	orders  []string
	limit   int
}

// Select sets the column list. Nested resources select joined rows,
// e.g. "*,users(first_name,email)".
func (q *QueryBuilder) Select(columns string) *QueryBuilder {
	q.columns = columns
	return q
}

// Eq adds an equality filter.
func (q *QueryBuilder) Eq(column string, value any) *QueryBuilder {
	q.filters = append(q.filters, [2]string{column, fmt.Sprintf("eq.%v", value)})
	return q
}

// Order adds an ORDER BY term.
func (q *QueryBuilder) Order(column string, ascending bool) *QueryBuilder {
	dir := "asc"
	if !ascending {
		dir = "desc"
	}
	q.orders = append(q.orders, column+"."+dir)
	return q
}

// Limit sets the LIMIT.
func (q *QueryBuilder) Limit(n int) *QueryBuilder {
	q.limit = n
	return q
}

func (q *QueryBuilder) url(withRead bool) string {
	params := url.Values{}
	for _, f := range q.filters {
		params.Add(f[0], f[1])
	}
	if withRead {
		if q.columns != "" {
			params.Set("select", q.columns)
		}
		if len(q.orders) > 0 {
			params.Set("order", strings.Join(q.orders, ","))
		}
		if q.limit > 0 {
			params.Set("limit", strconv.Itoa(q.limit))
		}
	}
	u := fmt.Sprintf("%s/rest/v1/%s", q.client.baseURL, url.PathEscape(q.table))
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// Execute runs a SELECT.
func (q *QueryBuilder) Execute(ctx context.Context) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, q.url(true), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return q.client.do(req)
}

// ExecuteInsert inserts data (a row or a slice of rows) and returns the stored rows.
func (q *QueryBuilder) ExecuteInsert(ctx context.Context, data any) (*Response, error) {
	return q.write(ctx, http.MethodPost, data)
}

// ExecuteUpdate patches every row matching the filters and returns them.
func (q *QueryBuilder) ExecuteUpdate(ctx context.Context, data any) (*Response, error) {
	return q.write(ctx, http.MethodPatch, data)
}

// ExecuteDelete deletes every row matching the filters.
func (q *QueryBuilder) ExecuteDelete(ctx context.Context) (*Response, error) {
	return q.write(ctx, http.MethodDelete, nil)
}

func (q *QueryBuilder) write(ctx context.Context, method string, data any) (*Response, error) {
	var body io.Reader
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("marshal data: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, q.url(false), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Prefer", "return=representation")
	return q.client.do(req)
}

// =============================================================================
// GoTrue
// =============================================================================

// Auth returns the auth client.
func (c *Client) Auth() *AuthClient {
	return &AuthClient{client: c}
}

// AuthClient handles GoTrue operations.
type AuthClient struct {
	client *Client
}

// User is a GoTrue user.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// AuthResponse is a GoTrue session. User is set even when no tokens are issued.
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

// SignUp creates an identity with email and password.
func (a *AuthClient) SignUp(ctx context.Context, email, password string) (*AuthResponse, error) {
	return a.credentials(ctx, "/auth/v1/signup", email, password)
}

// SignIn exchanges email and password for a session.
func (a *AuthClient) SignIn(ctx context.Context, email, password string) (*AuthResponse, error) {
	return a.credentials(ctx, "/auth/v1/token?grant_type=password", email, password)
}

// DeleteUser removes an identity. It needs a service-role key.
func (a *AuthClient) DeleteUser(ctx context.Context, id string) error {
	reqURL := fmt.Sprintf("%s/auth/v1/admin/users/%s", a.client.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	_, err = a.client.do(req)
	return err
}

func (a *AuthClient) credentials(ctx context.Context, path, email, password string) (*AuthResponse, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("marshal credentials: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.client.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.do(req)
	if err != nil {
		return nil, err
	}

	var authResp AuthResponse
	if err := resp.JSON(&authResp); err != nil {
		return nil, fmt.Errorf("unmarshal auth response: %w", err)
	}
	// With email confirmation on, signup answers with the bare user object.
	if authResp.User == nil && gjson.GetBytes(resp.Body, "id").Exists() {
		var u User
		if err := resp.JSON(&u); err != nil {
			return nil, fmt.Errorf("unmarshal user: %w", err)
		}
		authResp.User = &u
	}
	return &authResp, nil
}

// =============================================================================
// Transport
// =============================================================================

func (c *Client) do(req *http.Request) (*Response, error) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}
	return &Response{StatusCode: resp.StatusCode, Body: body, Headers: resp.Header}, nil
}

// errorMessage picks the human-readable field out of a PostgREST or GoTrue error body.
func errorMessage(body []byte) string {
	if gjson.ValidBytes(body) {
		for _, key := range []string{"message", "msg", "error_description", "error"} {
			if v := gjson.GetBytes(body, key); v.Exists() && v.String() != "" {
				return v.String()
			}
		}
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = "empty response"
	}
	return msg
}
