package auth

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "test-key", 5*time.Minute)
}

func TestSignIn(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "accounts:signInWithPassword") {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("key = %q, want test-key", r.URL.Query().Get("key"))
		}
		fmt.Fprint(w, `{"localId":"u-1","idToken":"tok","refreshToken":"ref","email":"a@b.c"}`)
	})

	creds, err := c.SignIn(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if creds.UserID != "u-1" {
		t.Errorf("user id = %q, want u-1", creds.UserID)
	}
	if creds.IDToken != "tok" {
		t.Errorf("id token = %q, want tok", creds.IDToken)
	}
}

func TestSignInRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"INVALID_PASSWORD"}}`, http.StatusBadRequest)
	})

	if _, err := c.SignIn(context.Background(), "a@b.c", "bad"); err == nil {
		t.Fatal("expected error for rejected sign-in")
	}
}

func TestSendPasswordReset(t *testing.T) {
	var called atomic.Bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called.Store(true)
		if !strings.Contains(r.URL.Path, "accounts:sendOobCode") {
			t.Errorf("path = %q", r.URL.Path)
		}
		fmt.Fprint(w, `{}`)
	})

	if err := c.SendPasswordReset(context.Background(), "a@b.c"); err != nil {
		t.Fatalf("SendPasswordReset: %v", err)
	}
	if !called.Load() {
		t.Error("provider was never called")
	}
}

func TestVerifyTokenCaches(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"users":[{"localId":"u-1","email":"a@b.c"}]}`)
	})

	for i := 0; i < 3; i++ {
		claims, err := c.VerifyToken(context.Background(), "opaque-token")
		if err != nil {
			t.Fatalf("VerifyToken: %v", err)
		}
		if claims.UserID != "u-1" {
			t.Errorf("user id = %q, want u-1", claims.UserID)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("provider called %d times, want 1", calls.Load())
	}
}

func TestVerifyTokenCacheExpiry(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"users":[{"localId":"u-1"}]}`)
	})

	base := time.Now()
	c.now = func() time.Time { return base }

	if _, err := c.VerifyToken(context.Background(), "tok"); err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}

	// Past the TTL the cached entry no longer counts.
	c.now = func() time.Time { return base.Add(6 * time.Minute) }
	if _, err := c.VerifyToken(context.Background(), "tok"); err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("provider called %d times, want 2", calls.Load())
	}
}

func TestVerifyTokenHonorsExpClaim(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"users":[{"localId":"u-1"}]}`)
	})

	base := time.Now()
	c.now = func() time.Time { return base }

	// Token whose exp claim outlives the client TTL.
	exp := base.Add(time.Hour).Unix()
	payload := base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf(`{"exp":%d}`, exp)))
	token := "header." + payload + ".sig"

	if _, err := c.VerifyToken(context.Background(), token); err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}

	c.now = func() time.Time { return base.Add(30 * time.Minute) }
	if _, err := c.VerifyToken(context.Background(), token); err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("provider called %d times, want 1 (exp claim should hold the cache)", calls.Load())
	}
}

func TestVerifyTokenNoUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"users":[]}`)
	})

	if _, err := c.VerifyToken(context.Background(), "tok"); err == nil {
		t.Fatal("expected error when lookup returns no user")
	}
}
