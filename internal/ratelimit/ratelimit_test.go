package ratelimit

import (
	"testing"
	"time"
)

func TestAllowBurstThenReject(t *testing.T) {
	l := New(Config{RequestsPerMinute: 60, BurstSize: 3, CleanupInterval: time.Minute})
	defer l.Stop()

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d within burst should be allowed", i)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Fatal("request beyond burst should be rejected")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New(Config{RequestsPerMinute: 60, BurstSize: 1, CleanupInterval: time.Minute})
	defer l.Stop()

	if !l.Allow("1.2.3.4") {
		t.Fatal("first key should be allowed")
	}
	if l.Allow("1.2.3.4") {
		t.Fatal("first key should now be exhausted")
	}
	if !l.Allow("5.6.7.8") {
		t.Fatal("second key must have its own bucket")
	}
}

func TestAllowRefillsOverTime(t *testing.T) {
	l := New(Config{RequestsPerMinute: 600, BurstSize: 1, CleanupInterval: time.Minute})
	defer l.Stop()

	if !l.Allow("1.2.3.4") {
		t.Fatal("first request should be allowed")
	}
	if l.Allow("1.2.3.4") {
		t.Fatal("bucket should be empty")
	}

	// Backdate the last check instead of sleeping: 600 rpm is 10 tokens/s,
	// so 200ms refills one token.
	l.mu.Lock()
	l.clients["1.2.3.4"].lastCheck = time.Now().Add(-200 * time.Millisecond)
	l.mu.Unlock()

	if !l.Allow("1.2.3.4") {
		t.Fatal("bucket should have refilled one token")
	}
}

func TestTokensCappedAtBurst(t *testing.T) {
	l := New(Config{RequestsPerMinute: 6000, BurstSize: 2, CleanupInterval: time.Minute})
	defer l.Stop()

	l.Allow("1.2.3.4")
	l.mu.Lock()
	l.clients["1.2.3.4"].lastCheck = time.Now().Add(-time.Hour)
	l.mu.Unlock()

	// After an hour the bucket holds at most BurstSize tokens.
	for i := 0; i < 2; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d within burst cap should be allowed", i)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Fatal("tokens must be capped at burst size")
	}
}
