package retry

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func stubSleep(t *testing.T) *int {
	t.Helper()
	delays := 0
	sleep = func(time.Duration) { delays++ }
	t.Cleanup(func() { sleep = time.Sleep })
	return &delays
}

func TestDoReturnsSuccessAfterFailures(t *testing.T) {
	delays := stubSleep(t)

	calls := 0
	v, err := Do("op", 3, time.Second, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("boom")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if v != "ok" {
		t.Errorf("expected ok, got %q", v)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
	if *delays != 2 {
		t.Errorf("expected 2 delays, got %d", *delays)
	}
}

func TestDoPropagatesFinalError(t *testing.T) {
	delays := stubSleep(t)

	calls := 0
	_, err := Do("op", 4, time.Second, func() (int, error) {
		calls++
		return 0, fmt.Errorf("fail %d", calls)
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if err.Error() != "fail 4" {
		t.Errorf("expected the final attempt's error, got %v", err)
	}
	if calls != 4 {
		t.Errorf("expected 4 calls, got %d", calls)
	}
	if *delays != 3 {
		t.Errorf("expected 3 delays, got %d", *delays)
	}
}

func TestDoDoesNotRetryOnImmediateSuccess(t *testing.T) {
	delays := stubSleep(t)

	calls := 0
	v, err := Do("op", 3, time.Second, func() (int, error) {
		calls++
		return 42, nil
	})
	if err != nil || v != 42 {
		t.Fatalf("expected 42, got %d (%v)", v, err)
	}
	if calls != 1 || *delays != 0 {
		t.Errorf("expected 1 call and 0 delays, got %d calls and %d delays", calls, *delays)
	}
}
