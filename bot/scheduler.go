package bot

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"

	"tweet-relay-bot/database"
	"tweet-relay-bot/media"
	"tweet-relay-bot/utils"
)

var c *cron.Cron

// startScheduler starts the daily maintenance jobs: purging leftover
// files from the media cache and pruning old archive rows.
func startScheduler(resolver *media.Resolver, archive *sql.DB) {
	log.Println("Initializing maintenance scheduler...")
	c = cron.New()
	_, err := c.AddFunc("@daily", func() {
		log.Println("Running daily maintenance...")
		resolver.PurgeCache(24 * time.Hour)
		if archive != nil {
			retention := viper.GetInt("archive.retentionDays")
			cutoff := time.Now().AddDate(0, 0, -retention)
			removed, err := database.PruneOlderThan(archive, cutoff)
			if err != nil {
				log.Printf("Archive prune failed: %v", err)
				utils.Error("scheduler", "ArchivePrune", err.Error())
			} else if removed > 0 {
				log.Printf("Pruned %d archived tweets older than %d days", removed, retention)
				utils.Info("scheduler", "ArchivePrune", fmt.Sprintf("Pruned %d archived tweets older than %d days", removed, retention))
			}
		}
	})
	if err != nil {
		log.Fatalf("Could not set up cron job: %v", err)
	}
	c.Start()
	log.Println("Maintenance job scheduled to run daily.")
}

// stopScheduler stops the cron jobs.
func stopScheduler() {
	if c != nil {
		c.Stop()
		log.Println("Scheduler stopped.")
	}
}
