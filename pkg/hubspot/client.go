// Package hubspot provides a thin client for the HubSpot CRM v3 REST API,
// covering the contact, deal, task, note, and association primitives used by
// the sync layer.
package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// ObjectType names a HubSpot CRM object collection.
type ObjectType string

const (
	ObjectContacts ObjectType = "contacts"
	ObjectDeals    ObjectType = "deals"
	ObjectTasks    ObjectType = "tasks"
	ObjectNotes    ObjectType = "notes"
)

// Object is a CRM record addressed by an opaque string ID.
type Object struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
}

// Client defines the HubSpot CRM operations used by the sync layer.
type Client interface {
	// SearchContactByEmail finds a contact by exact email match.
	// Returns nil when no contact exists for that email.
	SearchContactByEmail(ctx context.Context, email string) (*Object, error)
	CreateContact(ctx context.Context, properties map[string]string) (string, error)
	UpdateContact(ctx context.Context, contactID string, properties map[string]string) error
	CreateDeal(ctx context.Context, properties map[string]string) (string, error)
	CreateTask(ctx context.Context, properties map[string]string) (string, error)
	CreateNote(ctx context.Context, properties map[string]string) (string, error)
	// Associate links two CRM records using the default association type
	// for the object pair.
	Associate(ctx context.Context, fromType ObjectType, fromID string, toType ObjectType, toID string) error
}

// Option configures the HubSpot client.
type Option func(*httpClient)

// WithBaseURL sets a custom API base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit overrides the default request throttle (10 req/s).
// A non-positive rate disables throttling.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		} else {
			c.limiter = nil
		}
	}
}

type httpClient struct {
	token   string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a HubSpot client authenticated with a private-app token.
// Requests are throttled to 10 req/s by default to stay inside HubSpot's
// burst limit. The client does not retry; callers decide what a failure
// means for their operation.
func NewClient(token string, opts ...Option) Client {
	c := &httpClient{
		token:   token,
		baseURL: "https://api.hubapi.com",
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(10, 10),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// wait blocks until the rate limiter allows one event, or ctx is cancelled.
func (c *httpClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// apiError is HubSpot's standard error envelope.
type apiError struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Category string `json:"category"`
}

// doJSON executes one API request, decoding the response into out when out
// is non-nil. Non-2xx statuses are converted to an error carrying the HTTP
// status and HubSpot's error message.
func (c *httpClient) doJSON(ctx context.Context, method, path string, body, out any) error {
	if err := c.wait(ctx); err != nil {
		return eris.Wrap(err, "hubspot: rate limit")
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return eris.Wrap(err, "hubspot: marshal request")
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return eris.Wrap(err, "hubspot: build request")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, fmt.Sprintf("hubspot: %s %s", method, path))
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, fmt.Sprintf("hubspot: read response %s", path))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return eris.New(fmt.Sprintf("hubspot: %s %s: status %d: %s", method, path, resp.StatusCode, apiErr.Message))
		}
		return eris.New(fmt.Sprintf("hubspot: %s %s: status %d", method, path, resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return eris.Wrap(err, fmt.Sprintf("hubspot: decode response %s", path))
	}
	return nil
}

// createObject creates a record in the given collection and returns its ID.
func (c *httpClient) createObject(ctx context.Context, objType ObjectType, properties map[string]string) (string, error) {
	var created Object
	req := map[string]any{"properties": properties}
	if err := c.doJSON(ctx, http.MethodPost, "/crm/v3/objects/"+string(objType), req, &created); err != nil {
		return "", eris.Wrap(err, fmt.Sprintf("hubspot: create %s", objType))
	}
	if created.ID == "" {
		return "", eris.New(fmt.Sprintf("hubspot: create %s returned empty id", objType))
	}
	return created.ID, nil
}
