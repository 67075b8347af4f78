package state

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"

	"tweet-relay-bot/models"
)

// Store persists the seen-tweet set and the cycle state as two JSON files.
// Both records are overwritten as a whole on every save.
type Store struct {
	seenPath  string
	cyclePath string
}

// NewStore creates a store backed by the given file paths.
func NewStore(seenPath, cyclePath string) *Store {
	return &Store{seenPath: seenPath, cyclePath: cyclePath}
}

// Load reads both records at process start. Missing or corrupt files are
// logged and degrade to empty state; they are never fatal.
func (s *Store) Load() (models.SeenSet, *time.Time) {
	seen := models.SeenSet{}
	if data, err := os.ReadFile(s.seenPath); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("could not read %s, starting with an empty seen set: %v", s.seenPath, err)
		}
	} else if err := json.Unmarshal(data, &seen); err != nil {
		log.Printf("%s is corrupt, starting with an empty seen set: %v", s.seenPath, err)
		seen = models.SeenSet{}
	}

	var last *time.Time
	if data, err := os.ReadFile(s.cyclePath); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("could not read %s, treating as a first run: %v", s.cyclePath, err)
		}
	} else {
		var ps models.PollState
		if err := json.Unmarshal(data, &ps); err != nil {
			log.Printf("%s is corrupt, treating as a first run: %v", s.cyclePath, err)
		} else {
			last = ps.LastFetchTimestamp
		}
	}
	return seen, last
}

// Save overwrites both records.
func (s *Store) Save(seen models.SeenSet, last *time.Time) error {
	if err := writeJSON(s.seenPath, seen); err != nil {
		return err
	}
	return writeJSON(s.cyclePath, models.PollState{LastFetchTimestamp: last})
}

// Reset unconditionally deletes both records, logging which of them
// existed. A missing file is not an error.
func (s *Store) Reset() error {
	for _, path := range []string{s.seenPath, s.cyclePath} {
		switch err := os.Remove(path); {
		case err == nil:
			log.Printf("removed %s", path)
		case os.IsNotExist(err):
			log.Printf("%s was not present, nothing to remove", path)
		default:
			return err
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
