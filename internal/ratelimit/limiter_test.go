package ratelimit

import (
	"testing"
	"time"
)

func TestLimiterAllowsUpToLimit(t *testing.T) {
	l := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("user-1") {
			t.Fatalf("request %d denied, want allowed", i+1)
		}
	}
	if l.Allow("user-1") {
		t.Error("request over limit allowed, want denied")
	}
	// Other keys are unaffected.
	if !l.Allow("user-2") {
		t.Error("different key denied, want allowed")
	}
}

func TestLimiterWindowExpiry(t *testing.T) {
	now := time.Now()
	l := New(1, time.Minute)
	l.now = func() time.Time { return now }

	if !l.Allow("k") {
		t.Fatal("first request denied")
	}
	if l.Allow("k") {
		t.Fatal("second request in window allowed")
	}

	now = now.Add(time.Minute)
	if !l.Allow("k") {
		t.Error("request in fresh window denied")
	}
}

func TestLimiterSweep(t *testing.T) {
	now := time.Now()
	l := New(1, time.Minute)
	l.now = func() time.Time { return now }

	l.Allow("stale")
	now = now.Add(2 * time.Minute)
	l.Allow("fresh")

	l.sweep()

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.entries["stale"]; ok {
		t.Error("stale entry survived sweep")
	}
	if _, ok := l.entries["fresh"]; !ok {
		t.Error("fresh entry removed by sweep")
	}
}
