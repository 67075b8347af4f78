package models

import "time"

// Tweet classification values as delivered by the feed endpoint.
const (
	TypeTweet   = "tweet"
	TypeReply   = "reply"
	TypeRetweet = "retweet"
)

// Tweet represents a single feed item. Immutable once fetched.
type Tweet struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	Author    Author    `json:"author"`

	// Raw media references. Depending on the feed variant any of these
	// may be present; the media resolver walks them in a fixed order.
	ExtendedEntities *Entities    `json:"extendedEntities,omitempty"`
	Entities         *Entities    `json:"entities,omitempty"`
	Attachments      *Attachments `json:"attachments,omitempty"`
}

// IsReply reports whether the tweet is a reply to another tweet.
func (t Tweet) IsReply() bool { return t.Type == TypeReply }

// IsRetweet reports whether the tweet is a retweet.
func (t Tweet) IsRetweet() bool { return t.Type == TypeRetweet }

// Author identifies the account a tweet was posted from.
type Author struct {
	Handle    string `json:"handle"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

// Entities holds the media and URL entities embedded in a tweet body.
type Entities struct {
	Media []EntityMedia `json:"media,omitempty"`
	URLs  []EntityURL   `json:"urls,omitempty"`
}

// EntityMedia is one media entry inside a tweet's (extended) entities.
type EntityMedia struct {
	Type          string     `json:"type"`
	MediaURLHTTPS string     `json:"media_url_https"`
	VideoInfo     *VideoInfo `json:"video_info,omitempty"`
}

// EntityURL is one shortened URL inside a tweet body. Some feed variants
// attach preview images to it; others only carry the display/expanded form.
type EntityURL struct {
	DisplayURL  string         `json:"display_url"`
	ExpandedURL string         `json:"expanded_url"`
	Images      []EntityURLImg `json:"images,omitempty"`
}

// EntityURLImg is a preview image attached to a URL entity.
type EntityURLImg struct {
	URL string `json:"url"`
}

// Attachments carries opaque media keys when the feed exposes no URLs.
type Attachments struct {
	MediaKeys []string `json:"media_keys,omitempty"`
}
