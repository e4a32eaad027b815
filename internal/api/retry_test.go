package api

import (
	"context"
	"testing"
	"time"
)

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()

	if cfg.MaxRetries != 1 {
		t.Errorf("MaxRetries = %d, want 1", cfg.MaxRetries)
	}
	if cfg.BaseDelay != time.Second {
		t.Errorf("BaseDelay = %v, want 1s", cfg.BaseDelay)
	}
	if cfg.MaxDelay != 30*time.Second {
		t.Errorf("MaxDelay = %v, want 30s", cfg.MaxDelay)
	}
	if cfg.Multiplier != 2.0 {
		t.Errorf("Multiplier = %v, want 2.0", cfg.Multiplier)
	}
	if cfg.Jitter != 0.2 {
		t.Errorf("Jitter = %v, want 0.2", cfg.Jitter)
	}
	if cfg.RetryableOn == nil {
		t.Error("RetryableOn is nil")
	}
}

func TestRetryConfig_ShouldRetry(t *testing.T) {
	cfg := DefaultRetryConfig()
	cfg.MaxRetries = 3

	tests := []struct {
		name       string
		attempt    int
		statusCode int
		expected   bool
	}{
		{"first attempt, retryable", 0, 503, true},
		{"second attempt, retryable", 1, 503, true},
		{"third attempt, retryable", 2, 503, true},
		{"max attempts reached", 3, 503, false},
		{"over max attempts", 4, 503, false},
		{"non-retryable status", 0, 400, false},
		{"non-retryable 401", 0, 401, false},
		{"non-retryable 403", 0, 403, false},
		{"non-retryable 404", 0, 404, false},
		{"retryable 408", 0, 408, true},
		{"retryable 429", 0, 429, true},
		{"retryable 500", 0, 500, true},
		{"retryable 502", 0, 502, true},
		{"retryable 504", 0, 504, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cfg.ShouldRetry(tt.attempt, tt.statusCode)
			if result != tt.expected {
				t.Errorf("ShouldRetry(%d, %d) = %v, want %v",
					tt.attempt, tt.statusCode, result, tt.expected)
			}
		})
	}
}

func TestRetryConfig_Delay(t *testing.T) {
	cfg := &RetryConfig{
		BaseDelay:  time.Second,
		MaxDelay:   30 * time.Second,
		Multiplier: 2.0,
		Jitter:     0, // No jitter for predictable tests
	}

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, time.Second},      // 1 * 2^0 = 1s
		{1, 2 * time.Second},  // 1 * 2^1 = 2s
		{2, 4 * time.Second},  // 1 * 2^2 = 4s
		{3, 8 * time.Second},  // 1 * 2^3 = 8s
		{4, 16 * time.Second}, // 1 * 2^4 = 16s
		{5, 30 * time.Second}, // 1 * 2^5 = 32s, capped at 30s
		{6, 30 * time.Second}, // Still capped at 30s
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			delay := cfg.Delay(tt.attempt)
			if delay != tt.expected {
				t.Errorf("Delay(%d) = %v, want %v", tt.attempt, delay, tt.expected)
			}
		})
	}
}

func TestRetryConfig_Delay_WithJitter(t *testing.T) {
	cfg := &RetryConfig{
		BaseDelay:  time.Second,
		MaxDelay:   30 * time.Second,
		Multiplier: 2.0,
		Jitter:     0.5, // 50% jitter
	}

	// With 50% jitter on 1s base delay, the range should be 0.5s to 1.5s
	minDelay := 500 * time.Millisecond
	maxDelay := 1500 * time.Millisecond

	for i := 0; i < 100; i++ {
		delay := cfg.Delay(0)
		if delay < minDelay || delay > maxDelay {
			t.Errorf("Delay(0) = %v, expected between %v and %v", delay, minDelay, maxDelay)
		}
	}
}

func TestRetryConfig_Wait(t *testing.T) {
	cfg := &RetryConfig{
		BaseDelay:  10 * time.Millisecond,
		MaxDelay:   100 * time.Millisecond,
		Multiplier: 2.0,
		Jitter:     0,
	}

	start := time.Now()
	if err := cfg.Wait(context.Background(), 0); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("Wait() returned too early: %v", elapsed)
	}
}

func TestRetryConfig_Wait_ContextCancellation(t *testing.T) {
	cfg := &RetryConfig{
		BaseDelay:  10 * time.Second, // Long delay
		MaxDelay:   30 * time.Second,
		Multiplier: 2.0,
		Jitter:     0,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := cfg.Wait(ctx, 0)
	elapsed := time.Since(start)

	if err != context.Canceled {
		t.Errorf("Wait() error = %v, want context.Canceled", err)
	}
	if elapsed > 200*time.Millisecond {
		t.Errorf("Wait() took too long after cancellation: %v", elapsed)
	}
}

func TestRetryConfig_CustomRetryableOn(t *testing.T) {
	cfg := &RetryConfig{
		MaxRetries: 3,
		RetryableOn: func(statusCode int) bool {
			return statusCode == 418
		},
	}

	if !cfg.ShouldRetry(0, 418) {
		t.Error("ShouldRetry(0, 418) = false, want true")
	}
	if cfg.ShouldRetry(0, 503) {
		t.Error("ShouldRetry(0, 503) = true, want false")
	}
}

func TestZstdRoundTrip(t *testing.T) {
	payloads := [][]byte{
		nil,
		[]byte("x"),
		[]byte("From: a@b.c\n\nA longer message body that compresses reasonably well well well."),
	}
	for _, payload := range payloads {
		got, err := decompress(compress(payload))
		if err != nil {
			t.Fatalf("decompress(compress(%q)) error = %v", payload, err)
		}
		if string(got) != string(payload) {
			t.Errorf("round trip = %q, want %q", got, payload)
		}
	}
}
