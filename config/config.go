package config

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// expectedFeedHosts is a soft allowlist for the feed URL host. A mismatch
// is only warned about, since deployments may front the upstream with a
// proxy under another name.
var expectedFeedHosts = []string{"twitter.com", "x.com"}

const defaultIntervalMs = 300

// LoadConfig loads configuration from a .env file, config.yaml and the
// environment. Environment variables override same-named file settings.
func LoadConfig() {
	// .env is optional; absence is not an error.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found, skipping")
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("no config.yaml found, using environment variables and defaults")
		} else {
			panic(fmt.Errorf("fatal error reading config file: %w", err))
		}
	}
}

func setDefaults() {
	viper.SetDefault("poll.intervalMs", defaultIntervalMs)
	viper.SetDefault("media.cacheDir", "cache")
	viper.SetDefault("state.seenFile", "data/seen_tweets.json")
	viper.SetDefault("state.cycleFile", "data/poll_state.json")
	viper.SetDefault("archive.dbPath", "data/archive.db")
	viper.SetDefault("archive.retentionDays", 31)
}

// Validate checks the settings the bot cannot start without. The feed
// host is checked softly: an unexpected host only logs a warning.
func Validate() error {
	if viper.GetString("bot.channelId") == "" {
		return fmt.Errorf("bot.channelId is not set")
	}

	feedURL := viper.GetString("feed.url")
	if feedURL == "" {
		return fmt.Errorf("feed.url is not set")
	}
	parsed, err := url.Parse(feedURL)
	if err != nil || parsed.Host == "" {
		return fmt.Errorf("feed.url %q is not a valid URL", feedURL)
	}
	if !isExpectedFeedHost(parsed.Host) {
		log.Printf("warning: feed.url host %q does not match the expected upstream", parsed.Host)
	}

	if viper.GetInt("poll.intervalMs") <= 0 {
		return fmt.Errorf("poll.intervalMs must be positive")
	}
	return nil
}

func isExpectedFeedHost(host string) bool {
	for _, expected := range expectedFeedHosts {
		if host == expected || strings.HasSuffix(host, "."+expected) {
			return true
		}
	}
	return false
}

// PollInterval returns the polling interval as a duration.
func PollInterval() time.Duration {
	ms := viper.GetInt("poll.intervalMs")
	if ms <= 0 {
		ms = defaultIntervalMs
	}
	return time.Duration(ms) * time.Millisecond
}
