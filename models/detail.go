package models

// TweetDetail is the richer per-tweet record fetched lazily from the
// detail endpoint. At most one of its media sources ends up being used.
type TweetDetail struct {
	Video        *DetailVideo  `json:"video,omitempty"`
	Parent       *TweetDetail  `json:"parent,omitempty"`
	MediaDetails []MediaDetail `json:"mediaDetails,omitempty"`
	Photos       []Photo       `json:"photos,omitempty"`
}

// DetailVideo is the top-level video object of a detail record.
type DetailVideo struct {
	Variants []DetailVariant `json:"variants"`
}

// DetailVariant is one playable rendition of a detail video.
type DetailVariant struct {
	Type string `json:"type"`
	Src  string `json:"src"`
}

// MediaDetail is one entry of a detail record's mediaDetails list.
type MediaDetail struct {
	Type          string     `json:"type"`
	MediaURLHTTPS string     `json:"media_url_https"`
	VideoInfo     *VideoInfo `json:"video_info,omitempty"`
}

// VideoInfo lists the encoded variants of a video or animated GIF.
type VideoInfo struct {
	Variants []VideoVariant `json:"variants"`
}

// VideoVariant is one encoding of a video. Bitrate is absent for
// streaming playlists and treated as zero.
type VideoVariant struct {
	Bitrate     int    `json:"bitrate,omitempty"`
	ContentType string `json:"content_type"`
	URL         string `json:"url"`
}

// Photo is one entry of a detail record's photos list.
type Photo struct {
	URL string `json:"url"`
}
