package poller

import (
	"sort"
	"time"

	"tweet-relay-bot/models"
)

// freshnessWindow bounds reprocessing of tweets the upstream feed keeps
// re-serving: only tweets younger than this are eligible for publishing.
const freshnessWindow = 60 * time.Second

// filterCycle decides which fetched tweets are recent and which of those
// should be published. Tweets are ordered newest first; a tweet is a
// publish candidate only when it is recent and absent from seen. The seen
// set itself is not mutated here.
func filterCycle(tweets []models.Tweet, seen models.SeenSet, now time.Time) (recent, publish []models.Tweet) {
	sorted := make([]models.Tweet, len(tweets))
	copy(sorted, tweets)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	for _, t := range sorted {
		if now.Sub(t.CreatedAt) > freshnessWindow {
			continue
		}
		recent = append(recent, t)
		if !seen[t.ID] {
			publish = append(publish, t)
		}
	}
	return recent, publish
}
