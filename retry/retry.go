package retry

import (
	"log"
	"time"
)

// Overridable so tests can count delays without waiting them out.
var sleep = time.Sleep

// Do runs op up to attempts times, waiting delay between attempts. The
// delay is fixed (no backoff, no jitter) and the wait cannot be cancelled;
// the caller is a single serial loop. After the final failure the last
// error is returned.
func Do[T any](name string, attempts int, delay time.Duration, op func() (T, error)) (T, error) {
	var zero T
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		var v T
		if v, err = op(); err == nil {
			return v, nil
		}
		log.Printf("%s failed (attempt %d/%d): %v", name, attempt, attempts, err)
		if attempt < attempts {
			sleep(delay)
		}
	}
	return zero, err
}
