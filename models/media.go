package models

// MediaKind tags the outcome of media resolution for a tweet.
type MediaKind int

const (
	// MediaNone means no media could be resolved.
	MediaNone MediaKind = iota
	// MediaImage means an image URL ready to embed inline.
	MediaImage
	// MediaVideo means a video downloaded to a local file, sent as a
	// follow-up attachment message.
	MediaVideo
	// MediaMarker means media exists but no URL could be resolved;
	// only a note is attached to the outgoing message.
	MediaMarker
)

// String returns the archive/footer label for the media kind.
func (k MediaKind) String() string {
	switch k {
	case MediaImage:
		return "image"
	case MediaVideo:
		return "video"
	case MediaMarker:
		return "marker"
	default:
		return "none"
	}
}

// ResolvedMedia is the single media item attached to an outgoing message.
// Exactly one kind applies; Count annotates how many items the winning
// source actually carried.
type ResolvedMedia struct {
	Kind      MediaKind
	URL       string // image URL, set when Kind is MediaImage
	LocalPath string // downloaded file, set when Kind is MediaVideo
	Filename  string // attachment filename, set when Kind is MediaVideo
	Count     int
	Note      string
}
