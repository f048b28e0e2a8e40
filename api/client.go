// Package api is the client for the external usage-session tracker.
// Once a reservation is approved its id and interval are final, and
// the tracker may open a usage session against them.
package api

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

const defaultUserAgent = "labbook-cli"

type Client struct {
	HTTP      *http.Client
	BaseURL   string
	UserAgent string
	AuthToken string
}

func NewClient(baseURL string) *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: 15 * time.Second},
		BaseURL:   baseURL,
		UserAgent: defaultUserAgent,
	}
}

// StartSession asks the tracker to open a usage session for an
// approved reservation.
func (c *Client) StartSession(ctx context.Context, session StartSessionRequest) (Session, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/sessions", nil, session)
	if err != nil {
		return Session{}, err
	}

	var created Session
	if err := c.doJSON(req, &created); err != nil {
		return Session{}, err
	}
	return created, nil
}

// GetSessions lists the tracker's sessions for a reservation.
func (c *Client) GetSessions(ctx context.Context, reservationID string) ([]Session, error) {
	q := url.Values{}
	q.Set("reservation_id", reservationID)

	req, err := c.newRequest(ctx, http.MethodGet, "/sessions", q, nil)
	if err != nil {
		return nil, err
	}

	var sessions []Session
	if err := c.doJSON(req, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, err
	}
	path = strings.TrimPrefix(path, "/")
	base.Path = strings.TrimSuffix(base.Path, "/") + "/" + path
	if query != nil {
		base.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, base.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AuthToken)
	}
	return req, nil
}

func (c *Client) doJSON(req *http.Request, dest any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}
