package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_BlocksOverBudget(t *testing.T) {
	l := New(2, time.Minute)

	if !l.Allow("k") || !l.Allow("k") {
		t.Fatal("first two hits should be allowed")
	}
	if l.Allow("k") {
		t.Error("third hit should be blocked")
	}
	if !l.Allow("other") {
		t.Error("a different key has its own budget")
	}
}

func TestLimiter_WindowExpires(t *testing.T) {
	l := New(1, 30*time.Millisecond)

	if !l.Allow("k") {
		t.Fatal("first hit should be allowed")
	}
	if l.Allow("k") {
		t.Fatal("second hit inside the window should be blocked")
	}

	time.Sleep(40 * time.Millisecond)
	if !l.Allow("k") {
		t.Error("hit after the window expires should be allowed")
	}
}

func TestLoginLimiter_BlocksAccountBeforeIP(t *testing.T) {
	ll := NewLoginLimiter()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)

	for i := 0; i < 5; i++ {
		if ok, _ := ll.Check(req, "aisha@almanar.org"); !ok {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	ok, reason := ll.Check(req, "aisha@almanar.org")
	if ok {
		t.Fatal("sixth attempt for the same account should be blocked")
	}
	if reason == "" {
		t.Error("expected a reason when blocked")
	}
}

func TestLoginLimiter_ResetEmailRestoresBudget(t *testing.T) {
	ll := NewLoginLimiter()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)

	for i := 0; i < 5; i++ {
		ll.Check(req, "Aisha@Almanar.org")
	}
	ll.ResetEmail("aisha@almanar.org")

	if ok, _ := ll.Check(req, "aisha@almanar.org"); !ok {
		t.Error("expected the account budget to be restored after reset")
	}
}

func TestClientIP_PrefersForwardedHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:4444"
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	if ip := ClientIP(req); ip != "203.0.113.9" {
		t.Errorf("ClientIP: got %q, want 203.0.113.9", ip)
	}
}

func TestClientIP_StripsPort(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:4444"

	if ip := ClientIP(req); ip != "203.0.113.9" {
		t.Errorf("ClientIP: got %q, want 203.0.113.9", ip)
	}
}
