package util

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func fastRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("database is locked"), true},
		{errors.New("SQLITE_BUSY: database busy"), true},
		{errors.New("operation timed out"), true},
		{errors.New("no such table: foo"), false},
		{errors.New("constraint violation"), false},
	}

	for _, tt := range tests {
		if got := IsRetryableError(tt.err); got != tt.want {
			t.Errorf("IsRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestRetryWithBackoffSucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	result, err := RetryWithBackoff(fastRetryConfig(), func() (int, error) {
		attempts++
		if attempts < 3 {
			return 0, errors.New("database is locked")
		}
		return 42, nil
	}, "test-op")

	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if result != 42 {
		t.Errorf("result = %d", result)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestRetryWithBackoffStopsOnPermanentError(t *testing.T) {
	attempts := 0
	_, err := RetryWithBackoff(fastRetryConfig(), func() (int, error) {
		attempts++
		return 0, errors.New("no such table: foo")
	}, "test-op")

	if err == nil {
		t.Fatal("expected an error")
	}
	if attempts != 1 {
		t.Errorf("permanent errors must not retry, got %d attempts", attempts)
	}
}

func TestRetryWithBackoffExhausts(t *testing.T) {
	SetQuiet(true)
	defer SetLogLevel(LevelInfo)

	attempts := 0
	locked := errors.New("database is locked")
	_, err := RetryWithBackoff(fastRetryConfig(), func() (int, error) {
		attempts++
		return 0, fmt.Errorf("tx: %w", locked)
	}, "test-op")

	if err == nil {
		t.Fatal("expected an error after exhausting retries")
	}
	if !errors.Is(err, locked) {
		t.Errorf("final error should wrap the cause, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestRetryNilConfigUsesDefaults(t *testing.T) {
	called := false
	err := Retry(nil, func() error {
		called = true
		return nil
	}, "test-op")
	if err != nil || !called {
		t.Errorf("err=%v called=%v", err, called)
	}
}
