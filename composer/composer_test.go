package composer

import (
	"strings"
	"testing"
	"time"

	"tweet-relay-bot/models"
)

func sampleTweet(typ, text string) models.Tweet {
	return models.Tweet{
		ID:        "123",
		Type:      typ,
		Text:      text,
		CreatedAt: time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
		Author:    models.Author{Handle: "gopher", Name: "The Gopher", AvatarURL: "https://pbs.twimg.com/avatar.jpg"},
	}
}

func TestBuildBasicEmbed(t *testing.T) {
	msg := Build(sampleTweet(models.TypeTweet, "hello world"), models.ResolvedMedia{Kind: models.MediaNone})

	if len(msg.Embeds) != 1 {
		t.Fatalf("expected one embed, got %d", len(msg.Embeds))
	}
	embed := msg.Embeds[0]
	if embed.Description != "hello world" {
		t.Errorf("unexpected description %q", embed.Description)
	}
	if embed.URL != "https://x.com/gopher/status/123" {
		t.Errorf("unexpected canonical URL %q", embed.URL)
	}
	if embed.Author == nil || !strings.Contains(embed.Author.Name, "@gopher") {
		t.Errorf("author line missing the handle: %+v", embed.Author)
	}
	if embed.Footer == nil || embed.Footer.Text != "Tweet" {
		t.Errorf("unexpected footer: %+v", embed.Footer)
	}
}

func TestPlaceholderSelection(t *testing.T) {
	cases := []struct {
		name  string
		tweet models.Tweet
		media models.ResolvedMedia
		want  string
	}{
		{"empty retweet", sampleTweet(models.TypeRetweet, ""), models.ResolvedMedia{Kind: models.MediaNone}, "Retweeted"},
		{"empty with media", sampleTweet(models.TypeTweet, ""), models.ResolvedMedia{Kind: models.MediaImage, URL: "u", Count: 1}, "Shared media"},
		{"empty plain", sampleTweet(models.TypeTweet, ""), models.ResolvedMedia{Kind: models.MediaNone}, "Posted a tweet"},
		{"body wins", sampleTweet(models.TypeRetweet, "actual text"), models.ResolvedMedia{Kind: models.MediaNone}, "actual text"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := Build(tc.tweet, tc.media)
			if got := msg.Embeds[0].Description; got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestImageEmbeddedInline(t *testing.T) {
	media := models.ResolvedMedia{Kind: models.MediaImage, URL: "https://pbs.twimg.com/media/pic.jpg", Count: 3}
	msg := Build(sampleTweet(models.TypeTweet, "look"), media)

	embed := msg.Embeds[0]
	if embed.Image == nil || embed.Image.URL != media.URL {
		t.Fatalf("image not embedded: %+v", embed.Image)
	}
	if embed.Footer.Text != "Tweet • 3 images" {
		t.Errorf("unexpected footer %q", embed.Footer.Text)
	}
}

func TestVideoAnnouncedInFooter(t *testing.T) {
	media := models.ResolvedMedia{Kind: models.MediaVideo, LocalPath: "/tmp/v.mp4", Filename: "video_123.mp4", Count: 1}
	msg := Build(sampleTweet(models.TypeTweet, "clip"), media)

	embed := msg.Embeds[0]
	if embed.Image != nil {
		t.Error("video must not be embedded as an image")
	}
	if embed.Footer.Text != "Tweet • video will follow" {
		t.Errorf("unexpected footer %q", embed.Footer.Text)
	}
}

func TestReplyGetsNoteField(t *testing.T) {
	msg := Build(sampleTweet(models.TypeReply, "answering"), models.ResolvedMedia{Kind: models.MediaNone})

	embed := msg.Embeds[0]
	if len(embed.Fields) != 1 || embed.Fields[0].Name != "Reply" {
		t.Fatalf("expected a reply note field, got %+v", embed.Fields)
	}
	if embed.Footer.Text != "Reply" {
		t.Errorf("unexpected footer %q", embed.Footer.Text)
	}
}

func TestMarkerNotedInFooter(t *testing.T) {
	media := models.ResolvedMedia{Kind: models.MediaMarker, Note: "media attachment present"}
	msg := Build(sampleTweet(models.TypeTweet, "something"), media)

	if got := msg.Embeds[0].Footer.Text; got != "Tweet • contains media" {
		t.Errorf("unexpected footer %q", got)
	}
}
