package handlers

import (
	"log"

	"github.com/bwmarrin/discordgo"

	"tweet-relay-bot/bot"
)

// Register all handlers to the bot.
func Register(b *bot.Bot) {
	b.Session.AddHandler(InteractionCreate(b))

	// Log when the bot is connected.
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
	})
}
