package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransient = &RetryableError{Err: errors.New("503")}

func TestBackoff_Do(t *testing.T) {
	tests := []struct {
		name      string
		attempts  int
		failures  int
		permanent bool
		wantCalls int
		wantErr   bool
	}{
		{"first try", 3, 0, false, 1, false},
		{"recovers", 3, 2, false, 3, false},
		{"exhausted", 3, 5, false, 3, true},
		{"single attempt", 1, 5, false, 1, true},
		{"zero attempts means one", 0, 5, false, 1, true},
		{"permanent stops", 3, 5, true, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Backoff{Attempts: tt.attempts, Delay: time.Millisecond}.Do(context.Background(), func() error {
				calls++
				if calls <= tt.failures {
					if tt.permanent {
						return errors.New("404")
					}
					return errTransient
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBackoff_MaxDelay(t *testing.T) {
	start := time.Now()
	b := Backoff{Attempts: 4, Delay: 20 * time.Millisecond, MaxDelay: 20 * time.Millisecond}
	_ = b.Do(context.Background(), func() error { return errTransient })

	// Uncapped this would wait 20+40+80ms.
	if elapsed := time.Since(start); elapsed > 120*time.Millisecond {
		t.Errorf("elapsed %v, delay not capped", elapsed)
	}
}

func TestBackoff_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Backoff{Attempts: 5, Delay: time.Hour}.Do(ctx, func() error {
		calls++
		cancel()
		return errTransient
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
