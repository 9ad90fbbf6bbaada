package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestWaitUnlimitedReturnsImmediately(t *testing.T) {
	t.Parallel()

	l := New(Config{})
	start := time.Now()
	for i := 0; i < 10; i++ {
		if err := l.Wait(context.Background(), "https://example.com/a"); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("unlimited limiter blocked for %v", elapsed)
	}
}

func TestWaitCanceledContext(t *testing.T) {
	t.Parallel()

	l := New(Config{DefaultRPS: 0.001, DefaultBurst: 1})
	// Drain the single burst token.
	if err := l.Wait(context.Background(), "https://example.com/"); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, "https://example.com/"); err == nil {
		t.Fatal("expected context deadline error")
	}
}

func TestWaitSeparateHosts(t *testing.T) {
	t.Parallel()

	l := New(Config{DefaultRPS: 0.001, DefaultBurst: 1})
	if err := l.Wait(context.Background(), "https://a.example/"); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	// A different host has its own bucket and must not block.
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, "https://b.example/"); err != nil {
		t.Fatalf("expected independent bucket, got %v", err)
	}
}

func TestWaitMalformedURL(t *testing.T) {
	t.Parallel()

	l := New(Config{})
	if err := l.Wait(context.Background(), "::not a url::"); err != nil {
		t.Fatalf("malformed URLs fall into the shared bucket, got %v", err)
	}
}
