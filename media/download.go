package media

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"tweet-relay-bot/retry"
)

const (
	downloadTimeout    = 15 * time.Second
	downloadAttempts   = 3
	downloadRetryDelay = time.Second
)

// downloadToLocal fetches url into the cache directory under filename and
// returns the local path. The whole download is retried as a unit.
func (r *Resolver) downloadToLocal(url, filename string) (string, error) {
	return retry.Do("media download", r.attempts, r.delay, func() (string, error) {
		if err := os.MkdirAll(r.cacheDir, 0755); err != nil {
			return "", fmt.Errorf("create cache directory: %w", err)
		}

		resp, err := r.http.Get(url)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("unexpected status %d downloading %s", resp.StatusCode, url)
		}

		path := filepath.Join(r.cacheDir, filename)
		f, err := os.Create(path)
		if err != nil {
			return "", err
		}
		if _, err := io.Copy(f, resp.Body); err != nil {
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return "", err
		}
		return path, nil
	})
}

// CleanupAfter removes path once delay has elapsed, tolerating the file
// already being gone. The timer fires regardless of how the surrounding
// send path turned out.
func CleanupAfter(path string, delay time.Duration) *time.Timer {
	return time.AfterFunc(delay, func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("could not remove cached media %s: %v", path, err)
		}
	})
}

// PurgeCache deletes cached media files older than maxAge. Videos are
// normally removed shortly after posting; this sweeps up leftovers from
// crashed or failed sends.
func (r *Resolver) PurgeCache(maxAge time.Duration) {
	entries, err := os.ReadDir(r.cacheDir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("could not read cache directory %s: %v", r.cacheDir, err)
		}
		return
	}
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil || info.IsDir() {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(r.cacheDir, entry.Name())); err == nil {
				removed++
			}
		}
	}
	if removed > 0 {
		log.Printf("purged %d stale media files from %s", removed, r.cacheDir)
	}
}
