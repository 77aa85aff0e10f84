// Package api wraps the remote storefront REST API behind a single HTTP
// client. All request bodies are JSON and every call except login/register
// attaches the current auth token when one is present.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenSource supplies the current auth token, or "" when anonymous.
type TokenSource func() string

// Error is a non-2xx response carrying the server-provided message.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// errorBody mirrors the backend's error payloads, which use either
// "detail" or "error" for the human-readable message.
type errorBody struct {
	Detail string `json:"detail"`
	Err    string `json:"error"`
}

// Client talks to the storefront backend.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
}

// New builds a Client for baseURL (e.g. "http://localhost:8000/api").
// token may be nil for a purely anonymous client.
func New(baseURL string, timeout time.Duration, token TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		token:   token,
	}
}

// do performs one request. body and out may be nil; out is filled from the
// response JSON on 2xx. Non-2xx responses become *Error, transport failures
// are returned wrapped.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Token "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var body errorBody
	msg := ""
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Detail != "" {
			msg = body.Detail
		} else if body.Err != "" {
			msg = body.Err
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", resp.StatusCode)
	}
	return &Error{Status: resp.StatusCode, Message: msg}
}
