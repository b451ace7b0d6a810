// Package httpx is the shared REST client. Every request carries the bearer
// token (when a session exists) and a request id; a 401 on any
// authenticated call clears the session through a callback so the UI can
// drop to the login screen. Login and register go through Anonymous so
// their 401s surface inline instead of looping back to login.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "fitterm/internal/platform/errors"
	"fitterm/internal/platform/id"
)

// TokenSource yields the current bearer token, if any.
type TokenSource interface {
	Token() (string, bool)
}

// APIError is a non-2xx response with whatever message the server sent.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

type Client struct {
	http      *http.Client
	base      string
	tokens    TokenSource
	ids       id.Generator
	log       *slog.Logger
	onExpired func()
	anonymous bool
}

func New(base string, timeout time.Duration, tokens TokenSource, ids id.Generator, log *slog.Logger, onExpired func()) *Client {
	return &Client{
		http:      &http.Client{Timeout: timeout},
		base:      strings.TrimRight(base, "/"),
		tokens:    tokens,
		ids:       ids,
		log:       log,
		onExpired: onExpired,
	}
}

// Anonymous returns a client that sends no bearer token and treats 401 as an
// ordinary API error. Used for login and register.
func (c *Client) Anonymous() *Client {
	clone := *c
	clone.anonymous = true
	return &clone
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", c.ids.New())
	if !c.anonymous {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.log.DebugContext(ctx, "request", "method", method, "path", path)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && !c.anonymous {
		c.log.WarnContext(ctx, "session rejected", "path", path)
		if c.onExpired != nil {
			c.onExpired()
		}
		return apperrors.ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: readMessage(resp.Body)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func readMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 1<<16)).Decode(&body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
