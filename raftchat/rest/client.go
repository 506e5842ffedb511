package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client provides REST access to the raft-chat server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a REST client. baseURL is the server root, e.g.
// "http://127.0.0.1:9121". Set timeout to 0 to disable it.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetHTTPClient allows setting a custom HTTP client.
func (c *Client) SetHTTPClient(client *http.Client) {
	if client != nil {
		c.httpClient = client
	}
}

// Rooms returns the names of all rooms the server currently knows.
func (c *Client) Rooms(ctx context.Context) ([]string, error) {
	var rooms []string
	if err := c.get(ctx, "/rooms", &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// RoomHistory returns the posts of a room in server order. A room the
// server has never seen yields an empty history, not an error.
func (c *Client) RoomHistory(ctx context.Context, room string) ([]Post, error) {
	var posts []Post
	if err := c.get(ctx, "/rooms/"+url.PathEscape(room), &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// PostMessage submits a new post to a room. The response body carries
// nothing useful; the post comes back on the push stream once the
// server commits it.
func (c *Client) PostMessage(ctx context.Context, room, user, message string) error {
	return c.post(ctx, "/rooms/"+url.PathEscape(room), postRequest{User: user, Message: message}, nil)
}

// Helper methods

func (c *Client) get(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, dest)
}

func (c *Client) post(ctx context.Context, path string, body, dest any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, dest)
}

func (c *Client) do(req *http.Request, dest any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	// The server reports failures as plain-text bodies.
	if resp.StatusCode >= 400 {
		return fmt.Errorf("http error: %s (status %d)", strings.TrimSpace(string(body)), resp.StatusCode)
	}

	if dest != nil {
		if err := json.Unmarshal(body, dest); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}
