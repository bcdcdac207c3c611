package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/model"
)

const (
	// DefaultBaseURL is the production hack-or-snooze API endpoint.
	DefaultBaseURL = "https://hack-or-snooze-v3.herokuapp.com"

	// DefaultTimeout is the per-request timeout. The API is a small
	// hosted service; anything slower than this is effectively down.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies this client in HTTP requests.
	DefaultUserAgent = "hacksnooze/1.0 (+https://github.com/BlueMycon/hack-or-snooze-ajax-api)"

	// maxResponseBody limits the response body size to read.
	// 4MB covers the largest story feed the server will return while
	// preventing memory exhaustion from a misbehaving endpoint.
	maxResponseBody = 4 * 1024 * 1024
)

// Client issues requests against the hack-or-snooze REST API.
//
// Design decision: We use a struct with the http.Client rather than
// passing the client on each call because:
//  1. Client configuration (timeouts, base URL) should be consistent
//  2. Connection pooling works better with a shared client
//  3. Easier to test against httptest servers
type Client struct {
	// baseURL is the API endpoint without a trailing slash.
	baseURL string

	// httpClient performs the actual requests.
	httpClient *http.Client

	// userAgent is the User-Agent header sent with every request.
	userAgent string

	// timeout is applied to the internally constructed http.Client.
	// Ignored when the caller supplies their own client.
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
// Useful for tests and for callers that need transport-level control.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout for the internally
// constructed HTTP client. Has no effect together with WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a gateway client for the API at baseURL.
// An empty baseURL selects the production endpoint.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: DefaultUserAgent,
		timeout:   DefaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}

	return c
}

// BaseURL returns the configured API endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request and response envelopes matching the documented REST contract.
// These stay unexported: callers only ever see the record types.

type storiesResponse struct {
	Stories []model.StoryRecord `json:"stories"`
}

type storyResponse struct {
	Story   model.StoryRecord `json:"story"`
	Message string            `json:"message,omitempty"`
}

type userResponse struct {
	User model.UserRecord `json:"user"`
}

type authResponse struct {
	User  model.UserRecord `json:"user"`
	Token string           `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type createStoryRequest struct {
	Token string           `json:"token"`
	Story model.StoryDraft `json:"story"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type credentialsRequest struct {
	User credentials `json:"user"`
}

// ListStories fetches the global story feed. No authentication required.
// The server returns stories most-recent-first; order is preserved.
func (c *Client) ListStories(ctx context.Context) ([]model.StoryRecord, error) {
	var out storiesResponse
	if err := c.do(ctx, http.MethodGet, "/stories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Stories, nil
}

// CreateStory submits a new story. The token travels in the body.
// Returns the server-completed story record (id, username, timestamp).
func (c *Client) CreateStory(ctx context.Context, token string, draft model.StoryDraft) (model.StoryRecord, error) {
	body := createStoryRequest{Token: token, Story: draft}
	var out storyResponse
	if err := c.do(ctx, http.MethodPost, "/stories", nil, body, &out); err != nil {
		return model.StoryRecord{}, err
	}
	return out.Story, nil
}

// DeleteStory removes a story by id. The token travels in the body.
// Returns the deleted record and the server's confirmation message.
func (c *Client) DeleteStory(ctx context.Context, token, storyID string) (model.StoryRecord, string, error) {
	body := tokenRequest{Token: token}
	var out storyResponse
	path := "/stories/" + url.PathEscape(storyID)
	if err := c.do(ctx, http.MethodDelete, path, nil, body, &out); err != nil {
		return model.StoryRecord{}, "", err
	}
	return out.Story, out.Message, nil
}

// Signup registers a new account and returns the profile plus a fresh
// session token. A taken username surfaces as ErrAuth.
func (c *Client) Signup(ctx context.Context, username, password, name string) (model.UserRecord, string, error) {
	body := credentialsRequest{User: credentials{Username: username, Password: password, Name: name}}
	var out authResponse
	if err := c.do(ctx, http.MethodPost, "/signup", nil, body, &out); err != nil {
		return model.UserRecord{}, "", err
	}
	return out.User, out.Token, nil
}

// Login exchanges credentials for the profile plus a session token.
// Wrong credentials surface as ErrAuth.
func (c *Client) Login(ctx context.Context, username, password string) (model.UserRecord, string, error) {
	body := credentialsRequest{User: credentials{Username: username, Password: password}}
	var out authResponse
	if err := c.do(ctx, http.MethodPost, "/login", nil, body, &out); err != nil {
		return model.UserRecord{}, "", err
	}
	return out.User, out.Token, nil
}

// GetUser fetches a user's profile including nested favorite and owned
// story records. This is a read, so the token travels as a query
// parameter per the API contract.
func (c *Client) GetUser(ctx context.Context, token, username string) (model.UserRecord, error) {
	query := url.Values{"token": []string{token}}
	var out userResponse
	path := "/users/" + url.PathEscape(username)
	if err := c.do(ctx, http.MethodGet, path, query, nil, &out); err != nil {
		return model.UserRecord{}, err
	}
	return out.User, nil
}

// AddFavorite marks a story as a favorite of the given user.
// The remote call is idempotent; repeating it is harmless.
func (c *Client) AddFavorite(ctx context.Context, token, username, storyID string) (string, error) {
	body := tokenRequest{Token: token}
	var out messageResponse
	path := "/users/" + url.PathEscape(username) + "/favorites/" + url.PathEscape(storyID)
	if err := c.do(ctx, http.MethodPost, path, nil, body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// RemoveFavorite clears a story from the given user's favorites.
func (c *Client) RemoveFavorite(ctx context.Context, token, username, storyID string) (string, error) {
	body := tokenRequest{Token: token}
	var out messageResponse
	path := "/users/" + url.PathEscape(username) + "/favorites/" + url.PathEscape(storyID)
	if err := c.do(ctx, http.MethodDelete, path, nil, body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// do performs one request/response cycle: build the request, attach
// headers, classify failures, and decode the successful body into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: "failed to encode request body", cause: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &APIError{Message: "failed to build request", cause: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: err.Error(), cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: "failed to read response body", cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: serverMessage(data, resp.Status)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &APIError{StatusCode: resp.StatusCode, Message: "malformed response body", cause: err}
		}
	}

	return nil
}

// errorEnvelope mirrors the API's error body. The service wraps errors
// as {"error": {"status": ..., "title": ..., "message": ...}}, but we
// also accept a top-level message for robustness.
type errorEnvelope struct {
	Error *struct {
		Status  int    `json:"status"`
		Title   string `json:"title"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// serverMessage extracts a human-readable message from an error body.
// Falls back to the HTTP status text when the body is not the expected
// JSON envelope.
func serverMessage(data []byte, statusText string) string {
	var envelope errorEnvelope
	if err := json.Unmarshal(data, &envelope); err == nil {
		if envelope.Error != nil && envelope.Error.Message != "" {
			return envelope.Error.Message
		}
		if envelope.Error != nil && envelope.Error.Title != "" {
			return envelope.Error.Title
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return statusText
}
