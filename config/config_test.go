package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func setupValidConfig(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	setDefaults()
	viper.Set("bot.channelId", "123456789")
	viper.Set("feed.url", "https://api.x.com/feed")
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	setupValidConfig(t)
	if err := Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateRejectsMissingChannel(t *testing.T) {
	setupValidConfig(t)
	viper.Set("bot.channelId", "")
	if err := Validate(); err == nil {
		t.Fatal("expected an error for a missing channel ID")
	}
}

func TestValidateRejectsMissingFeedURL(t *testing.T) {
	setupValidConfig(t)
	viper.Set("feed.url", "")
	if err := Validate(); err == nil {
		t.Fatal("expected an error for a missing feed URL")
	}
}

func TestValidateRejectsMalformedFeedURL(t *testing.T) {
	setupValidConfig(t)
	viper.Set("feed.url", "not-a-url")
	if err := Validate(); err == nil {
		t.Fatal("expected an error for a malformed feed URL")
	}
}

func TestValidateAcceptsOffHostFeedURLWithWarning(t *testing.T) {
	setupValidConfig(t)
	viper.Set("feed.url", "https://feed-proxy.internal.example/feed")
	if err := Validate(); err != nil {
		t.Fatalf("an off-host feed URL must only warn, got %v", err)
	}
}

func TestPollIntervalDefault(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	setDefaults()
	if got := PollInterval(); got != 300*time.Millisecond {
		t.Errorf("expected 300ms default interval, got %v", got)
	}
	viper.Set("poll.intervalMs", 5000)
	if got := PollInterval(); got != 5*time.Second {
		t.Errorf("expected 5s interval, got %v", got)
	}
}
