package utils

import (
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
)

const (
	ColorInfo  = 0x00ff00 // Green
	ColorWarn  = 0xffff00 // Yellow
	ColorError = 0xff0000 // Red
)

var (
	session   *discordgo.Session
	channelID string
)

// InitLogger initializes the logger with a Discord session. When an admin
// channel is configured, log entries are mirrored there as embeds.
func InitLogger(s *discordgo.Session) {
	session = s
	channelID = viper.GetString("bot.adminChannelId")
	if channelID == "" {
		log.Println("Warning: bot.adminChannelId is not set. Logging to channel will be disabled.")
	}
}

// Log sends a log message to the admin channel.
func Log(level, component, event, details string) {
	if session == nil || channelID == "" {
		log.Printf("[%s] Component: %s, Event: %s, Details: %s", level, component, event, details)
		return
	}

	var color int
	switch level {
	case "INFO":
		color = ColorInfo
	case "WARN":
		color = ColorWarn
	case "ERROR":
		color = ColorError
	default:
		color = ColorInfo
	}

	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("Log Level: %s", level),
		Color:     color,
		Timestamp: time.Now().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Component",
				Value:  component,
				Inline: true,
			},
			{
				Name:   "Event",
				Value:  event,
				Inline: true,
			},
			{
				Name:  "Details",
				Value: details,
			},
		},
	}

	if _, err := session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.Printf("Error sending log message to Discord: %v", err)
	}
}

// Info logs an informational message.
func Info(component, event, details string) {
	Log("INFO", component, event, details)
}

// Warn logs a warning message.
func Warn(component, event, details string) {
	Log("WARN", component, event, details)
}

// Error logs an error message.
func Error(component, event, details string) {
	Log("ERROR", component, event, details)
}
