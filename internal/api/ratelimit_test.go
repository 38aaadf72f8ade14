package api

import (
	"testing"
	"time"
)

func TestRateLimiterSlidingWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatalf("first two attempts should pass")
	}
	if rl.Allow("a") {
		t.Fatalf("third attempt inside the window should be rejected")
	}
	if !rl.Allow("b") {
		t.Fatalf("keys are limited independently")
	}

	now = now.Add(30 * time.Second)
	if rl.Allow("a") {
		t.Fatalf("window has not slid yet")
	}

	now = now.Add(31 * time.Second)
	if !rl.Allow("a") {
		t.Fatalf("attempts older than the window should be forgotten")
	}
}

func TestRateLimiterPrunesIdleKeys(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(5, time.Minute)
	rl.now = func() time.Time { return now }

	rl.Allow("old")
	now = now.Add(2 * time.Minute)
	rl.Allow("new")

	if _, ok := rl.requests["old"]; ok {
		t.Fatalf("idle key was not pruned")
	}
	if _, ok := rl.requests["new"]; !ok {
		t.Fatalf("active key was pruned")
	}
}
