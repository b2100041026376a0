package client

import (
	"context"
	"testing"
	"time"
)

func TestThrottle_SpacesAcquisitions(t *testing.T) {
	throttle := NewThrottle(100 * time.Millisecond)
	ctx := context.Background()

	if err := throttle.Acquire(ctx); err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}

	start := time.Now()
	if err := throttle.Acquire(ctx); err != nil {
		t.Fatalf("second acquire failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 95*time.Millisecond {
		t.Fatalf("expected at least ~100ms between acquisitions, got %v", elapsed)
	}
}

func TestThrottle_CancelledContext(t *testing.T) {
	throttle := NewThrottle(time.Minute)
	ctx := context.Background()

	if err := throttle.Acquire(ctx); err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := throttle.Acquire(cancelled); err == nil {
		t.Fatal("expected error acquiring with cancelled context")
	}
}

func TestThrottle_NonPositiveIntervalFallsBack(t *testing.T) {
	throttle := NewThrottle(0)
	if err := throttle.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
}
