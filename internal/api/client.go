// Package api is the REST client for the TaskBit backend.
//
// Authenticated requests carry the session token as a bearer token. A 401 on
// such a request logs the session out and returns ErrSessionExpired.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Session is the part of the session store the client needs
type Session interface {
	GetToken() (string, bool)
	Logout() error
}

// Client talks to the backend. It is safe for concurrent use.
type Client struct {
	baseURL         string
	http            *http.Client
	session         Session
	logger          *log.Logger
	timeout         time.Duration
	mutationTimeout time.Duration
}

// Option customises a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. The client is copied,
// so the caller's value is never modified; nil is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the timeout applied to every request
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMutationTimeout sets the budget for task and alert creation
func WithMutationTimeout(d time.Duration) Option {
	return func(c *Client) { c.mutationTimeout = d }
}

// WithLogger enables request logging
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Client for baseURL
func New(baseURL string, session Session, opts ...Option) *Client {
	c := &Client{
		baseURL:         strings.TrimRight(baseURL, "/"),
		http:            http.DefaultClient,
		session:         session,
		logger:          log.New(io.Discard, "", 0),
		timeout:         15 * time.Second,
		mutationTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	hc := *c.http
	hc.Timeout = c.timeout
	c.http = &hc
	return c
}

type request struct {
	method string
	path   string
	body   any
	out    any
	auth   bool
}

func (c *Client) do(ctx context.Context, r request) error {
	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.auth {
		token, ok := c.session.GetToken()
		if !ok {
			return ErrNotAuthenticated
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("%s %s [%s] failed after %s: %v", r.method, r.path, requestID, time.Since(start), err)
		return transportError(err)
	}
	defer resp.Body.Close()
	c.logger.Printf("%s %s [%s] -> %d in %s", r.method, r.path, requestID, resp.StatusCode, time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized && r.auth {
		if err := c.session.Logout(); err != nil {
			c.logger.Printf("clearing expired session failed: %v", err)
		}
		return ErrSessionExpired
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if r.out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(r.out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func transportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrConnection, err)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var envelope errorBody
	if err := json.Unmarshal(raw, &envelope); err == nil {
		apiErr.Message = envelope.Message
		if apiErr.Message == "" {
			apiErr.Message = envelope.Error
		}
	} else if text := strings.TrimSpace(string(raw)); text != "" && !strings.HasPrefix(text, "<") {
		apiErr.Message = text
	}

	apiErr.Field = FieldForMessage(apiErr.Message)
	return apiErr
}

// withMutationBudget bounds creation requests by the fixed wall-clock budget
func (c *Client) withMutationBudget(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.mutationTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.mutationTimeout)
}
