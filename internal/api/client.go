// Package api is the HTTP client for the external processing backend: audio
// processing, transcript and summary retrieval, and user/patient/session
// CRUD.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client calls the backend REST API. Set a bearer token after sign-in; every
// request carries it.
type Client struct {
	base  string
	token string
	c     *http.Client
}

// New builds a Client for the backend at base.
func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		c:    &http.Client{Timeout: 60 * time.Second},
	}
}

// SetToken records the ID token sent as the Authorization bearer.
func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// doRaw executes the request and returns the response body, turning non-200
// statuses into errors that carry the body.
func (c *Client) doRaw(req *http.Request, what string) ([]byte, error) {
	resp, err := c.c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s read: %w", what, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s %s: %s", what, resp.Status, string(body))
	}
	return body, nil
}

// doJSON executes the request and decodes the response into out, unwrapping
// one level of string encoding first when the backend double-serializes.
func (c *Client) doJSON(req *http.Request, what string, out any) error {
	body, err := c.doRaw(req, what)
	if err != nil {
		return err
	}
	if err := decodeMaybeWrapped(body, out); err != nil {
		return fmt.Errorf("%s decode: %w", what, err)
	}
	return nil
}

func decodeMaybeWrapped(data []byte, out any) error {
	var inner string
	if err := json.Unmarshal(data, &inner); err == nil {
		data = []byte(inner)
	}
	return json.Unmarshal(data, out)
}
