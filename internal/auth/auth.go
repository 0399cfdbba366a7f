// Package auth is a thin client for the external identity provider. It signs
// users in, requests password resets, and verifies ID tokens, caching
// successful verifications so repeated renders do not re-hit the provider.
package auth

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Credentials is the result of a successful sign-in.
type Credentials struct {
	UserID       string `json:"localId"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	Email        string `json:"email"`
}

// Claims are the verified identity attached to an ID token.
type Claims struct {
	UserID string
	Email  string
}

type cacheEntry struct {
	expiresAt time.Time
	claims    Claims
}

// Client calls the identity provider's REST API.
type Client struct {
	baseURL string
	apiKey  string
	ttl     time.Duration
	httpc   *http.Client

	mu    sync.Mutex
	cache map[string]cacheEntry
	now   func() time.Time
}

// New builds a Client. ttl bounds how long a verified token stays cached when
// the token itself carries no expiry claim.
func New(baseURL, apiKey string, ttl time.Duration) *Client {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		ttl:     ttl,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		cache:   map[string]cacheEntry{},
		now:     time.Now,
	}
}

func (c *Client) post(ctx context.Context, endpoint string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/accounts:%s?key=%s", c.baseURL, endpoint, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("identity %s %s: %s", endpoint, resp.Status, string(b))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("identity %s decode: %w", endpoint, err)
	}
	return nil
}

// SignIn authenticates with email and password and returns the issued
// credentials.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Credentials, error) {
	payload := map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}
	var creds Credentials
	if err := c.post(ctx, "signInWithPassword", payload, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// SendPasswordReset asks the provider to mail a password reset link.
func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	payload := map[string]any{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	}
	return c.post(ctx, "sendOobCode", payload, nil)
}

type lookupResponse struct {
	Users []struct {
		LocalID string `json:"localId"`
		Email   string `json:"email"`
	} `json:"users"`
}

// VerifyToken resolves an ID token to its claims. Verified tokens are cached
// until the token's own exp claim passes, or for the client TTL when the
// token carries none.
func (c *Client) VerifyToken(ctx context.Context, idToken string) (Claims, error) {
	now := c.now()

	c.mu.Lock()
	if entry, ok := c.cache[idToken]; ok && entry.expiresAt.After(now) {
		c.mu.Unlock()
		return entry.claims, nil
	}
	c.mu.Unlock()

	var lookup lookupResponse
	if err := c.post(ctx, "lookup", map[string]any{"idToken": idToken}, &lookup); err != nil {
		return Claims{}, err
	}
	if len(lookup.Users) == 0 {
		return Claims{}, fmt.Errorf("identity lookup: token matched no user")
	}

	claims := Claims{UserID: lookup.Users[0].LocalID, Email: lookup.Users[0].Email}

	expiresAt := now.Add(c.ttl)
	if exp, ok := tokenExpiry(idToken); ok && exp.After(now) {
		expiresAt = exp
	}

	c.mu.Lock()
	c.cache[idToken] = cacheEntry{expiresAt: expiresAt, claims: claims}
	c.mu.Unlock()

	return claims, nil
}

// tokenExpiry pulls the exp claim out of a JWT payload without verifying the
// signature. Verification is the provider's job; this only scopes the cache.
func tokenExpiry(token string) (time.Time, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return time.Time{}, false
	}
	var claims struct {
		Exp int64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil || claims.Exp == 0 {
		return time.Time{}, false
	}
	return time.Unix(claims.Exp, 0), true
}
