// Command reset deletes the persisted seen-tweet and poll-state records
// so the next bot run re-baselines the feed.
package main

import (
	"log"

	"github.com/spf13/viper"

	"tweet-relay-bot/config"
	"tweet-relay-bot/state"
)

func main() {
	config.LoadConfig()

	store := state.NewStore(viper.GetString("state.seenFile"), viper.GetString("state.cycleFile"))
	if err := store.Reset(); err != nil {
		log.Fatalf("Reset failed: %v", err)
	}
	log.Println("State reset complete.")
}
