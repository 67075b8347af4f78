package models

import "time"

// SeenSet maps tweet IDs to a processed marker. It grows monotonically;
// entries are only ever removed by an explicit state reset.
type SeenSet map[string]bool

// PollState is the durable cycle record. A nil LastFetchTimestamp means
// the bot has never completed a fetch, which triggers the baseline cycle.
type PollState struct {
	LastFetchTimestamp *time.Time `json:"lastFetchTimestamp"`
}
