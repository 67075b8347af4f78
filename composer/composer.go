package composer

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"tweet-relay-bot/models"
)

const (
	embedColor    = 0x1da1f2
	canonicalBase = "https://x.com"
)

// Build turns a tweet and its resolved media into a channel-ready message.
// An image is embedded inline; a video is announced in the footer and sent
// by the caller as a follow-up file message.
func Build(t models.Tweet, media models.ResolvedMedia) *discordgo.MessageSend {
	embed := &discordgo.MessageEmbed{
		Color: embedColor,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    fmt.Sprintf("%s (@%s)", t.Author.Name, t.Author.Handle),
			URL:     TweetURL(t),
			IconURL: t.Author.AvatarURL,
		},
		URL:         TweetURL(t),
		Title:       titleFor(t),
		Description: bodyFor(t, media),
		Timestamp:   t.CreatedAt.Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: footerFor(t, media),
		},
	}

	if media.Kind == models.MediaImage {
		embed.Image = &discordgo.MessageEmbedImage{URL: media.URL}
	}
	if t.IsReply() {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Reply",
			Value: "This tweet is a reply to another tweet.",
		})
	}

	return &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{embed}}
}

// TweetURL returns the canonical URL of a tweet.
func TweetURL(t models.Tweet) string {
	return fmt.Sprintf("%s/%s/status/%s", canonicalBase, t.Author.Handle, t.ID)
}

func titleFor(t models.Tweet) string {
	switch t.Type {
	case models.TypeReply:
		return "New reply"
	case models.TypeRetweet:
		return "New retweet"
	default:
		return "New tweet"
	}
}

// bodyFor returns the tweet text, or a synthesized placeholder chosen by
// classification and media presence when the body is empty.
func bodyFor(t models.Tweet, media models.ResolvedMedia) string {
	if t.Text != "" {
		return t.Text
	}
	switch {
	case t.IsRetweet():
		return "Retweeted"
	case media.Kind != models.MediaNone:
		return "Shared media"
	default:
		return "Posted a tweet"
	}
}

func footerFor(t models.Tweet, media models.ResolvedMedia) string {
	label := classificationLabel(t)
	switch media.Kind {
	case models.MediaVideo:
		if media.Note != "" {
			return fmt.Sprintf("%s • video will follow (%s)", label, media.Note)
		}
		return label + " • video will follow"
	case models.MediaImage:
		if media.Count > 1 {
			return fmt.Sprintf("%s • %d images", label, media.Count)
		}
		return label + " • 1 image"
	case models.MediaMarker:
		return label + " • contains media"
	default:
		return label
	}
}

func classificationLabel(t models.Tweet) string {
	switch t.Type {
	case models.TypeReply:
		return "Reply"
	case models.TypeRetweet:
		return "Retweet"
	default:
		return "Tweet"
	}
}
