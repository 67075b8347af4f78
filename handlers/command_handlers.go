package handlers

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"tweet-relay-bot/bot"
	"tweet-relay-bot/database"
	"tweet-relay-bot/poller"
	"tweet-relay-bot/utils"
)

// recentRelayLimit caps how many archive rows the /status embed lists.
const recentRelayLimit = 3

// InteractionCreate dispatches slash-command interactions.
func InteractionCreate(b *bot.Bot) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		switch i.ApplicationCommandData().Name {
		case "ping":
			respond(s, i, "Pong!")
		case "status":
			handleStatus(s, i, b)
		case "poll":
			handlePoll(s, i, b)
		}
	}
}

func handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	embed := statusEmbed(b.Poller, b.Archive)
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}},
	}); err != nil {
		log.Printf("Could not respond to /status: %v", err)
	}
}

func statusEmbed(p *poller.Poller, archive *sql.DB) *discordgo.MessageEmbed {
	seenCount, lastFetch := p.Status()

	lastFetchText := "never"
	if lastFetch != nil {
		lastFetchText = lastFetch.Format(time.RFC3339)
	}
	archiveText := "disabled"
	if archive != nil {
		if count, err := database.CountRepublished(archive); err == nil {
			archiveText = fmt.Sprintf("%d tweets", count)
		}
	}

	embed := &discordgo.MessageEmbed{
		Title: "Relay status",
		Color: utils.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Seen tweets", Value: fmt.Sprintf("%d", seenCount), Inline: true},
			{Name: "Last fetch", Value: lastFetchText, Inline: true},
			{Name: "Archive", Value: archiveText, Inline: true},
		},
	}
	if archive != nil {
		if recent, err := database.RecentRepublished(archive, recentRelayLimit); err == nil && len(recent) > 0 {
			lines := make([]string, 0, len(recent))
			for _, rec := range recent {
				lines = append(lines, fmt.Sprintf("@%s %s (%s)", rec.AuthorHandle, rec.TweetID, rec.TweetType))
			}
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "Recent relays",
				Value: strings.Join(lines, "\n"),
			})
		}
	}
	return embed
}

func handlePoll(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	auth, err := utils.NewAuth()
	if err != nil {
		log.Printf("Could not load command auth config: %v", err)
		respond(s, i, "Authorization configuration is broken.")
		return
	}
	user := i.User
	if user == nil && i.Member != nil {
		user = i.Member.User
	}
	if user == nil || !auth.IsOperator(user.ID) {
		respond(s, i, "You are not allowed to trigger a poll cycle.")
		return
	}

	go b.Poller.RunCycle()
	respond(s, i, "Poll cycle triggered.")
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	}); err != nil {
		log.Printf("Could not respond to interaction: %v", err)
	}
}
