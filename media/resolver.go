package media

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"tweet-relay-bot/models"
)

const (
	mp4ContentType  = "video/mp4"
	photoPathMarker = "/media/"
)

// Resolver determines which single media item, if any, accompanies a tweet.
// Video strictly wins over images at every tier of the cascade.
type Resolver struct {
	cacheDir string
	http     *http.Client
	attempts int
	delay    time.Duration
}

// NewResolver creates a resolver that downloads videos into cacheDir.
func NewResolver(cacheDir string) *Resolver {
	return &Resolver{
		cacheDir: cacheDir,
		http:     &http.Client{Timeout: downloadTimeout},
		attempts: downloadAttempts,
		delay:    downloadRetryDelay,
	}
}

type resolveContext struct {
	tweet  models.Tweet
	detail *models.TweetDetail
	r      *Resolver
}

// A strategy inspects one media source and returns a resolved item or nil.
// Strategies are tried in order; the first non-nil result wins.
type strategy func(resolveContext) *models.ResolvedMedia

// Resolve runs the cascade over the detail record (when present) and the
// raw tweet fields. A failed video download is treated as "no video" so
// the cascade can still fall through to image resolution.
func (r *Resolver) Resolve(t models.Tweet, detail *models.TweetDetail) models.ResolvedMedia {
	ctx := resolveContext{tweet: t, detail: detail, r: r}
	for _, s := range []strategy{
		detailVideo,
		parentVideo,
		mediaDetailsVideo,
		detailPhotos,
		mediaDetailsPhoto,
		extendedEntityMedia,
		plainEntityMedia,
		entityURLImages,
		photoLinkURLs,
		mediaKeyMarker,
	} {
		if m := s(ctx); m != nil {
			return *m
		}
	}
	return models.ResolvedMedia{Kind: models.MediaNone}
}

// detailVideo uses the detail record's own video object.
func detailVideo(ctx resolveContext) *models.ResolvedMedia {
	if ctx.detail == nil || ctx.detail.Video == nil {
		return nil
	}
	src := pickMP4Variant(ctx.detail.Video.Variants)
	if src == "" {
		return nil
	}
	return ctx.r.downloadVideo(ctx.tweet.ID, src, fmt.Sprintf("video_%s.mp4", ctx.tweet.ID), "")
}

// parentVideo covers replies to a tweet that carries a video.
func parentVideo(ctx resolveContext) *models.ResolvedMedia {
	if ctx.detail == nil || ctx.detail.Parent == nil || ctx.detail.Parent.Video == nil {
		return nil
	}
	src := pickMP4Variant(ctx.detail.Parent.Video.Variants)
	if src == "" {
		return nil
	}
	return ctx.r.downloadVideo(ctx.tweet.ID, src, fmt.Sprintf("video_parent_%s.mp4", ctx.tweet.ID), "from the referenced tweet")
}

// mediaDetailsVideo scans the detail record's mediaDetails list for videos
// and animated GIFs, picking the highest-bitrate MP4 across all of them.
func mediaDetailsVideo(ctx resolveContext) *models.ResolvedMedia {
	if ctx.detail == nil {
		return nil
	}
	var variants []models.VideoVariant
	count := 0
	for _, md := range ctx.detail.MediaDetails {
		if md.Type != "video" && md.Type != "animated_gif" {
			continue
		}
		count++
		if md.VideoInfo != nil {
			variants = append(variants, md.VideoInfo.Variants...)
		}
	}
	src := pickBestMP4(variants)
	if src == "" {
		return nil
	}
	m := ctx.r.downloadVideo(ctx.tweet.ID, src, fmt.Sprintf("video_%s.mp4", ctx.tweet.ID), "")
	if m != nil {
		m.Count = count
	}
	return m
}

// detailPhotos uses the detail record's photos list, taking the first
// entry that looks like an actual media asset.
func detailPhotos(ctx resolveContext) *models.ResolvedMedia {
	if ctx.detail == nil {
		return nil
	}
	for _, p := range ctx.detail.Photos {
		if strings.Contains(p.URL, photoPathMarker) {
			return &models.ResolvedMedia{Kind: models.MediaImage, URL: p.URL, Count: len(ctx.detail.Photos)}
		}
	}
	return nil
}

// mediaDetailsPhoto falls back to the first photo entry of mediaDetails.
func mediaDetailsPhoto(ctx resolveContext) *models.ResolvedMedia {
	if ctx.detail == nil {
		return nil
	}
	photos := 0
	var first string
	for _, md := range ctx.detail.MediaDetails {
		if md.Type != "photo" || md.MediaURLHTTPS == "" {
			continue
		}
		photos++
		if first == "" {
			first = md.MediaURLHTTPS
		}
	}
	if first == "" {
		return nil
	}
	return &models.ResolvedMedia{Kind: models.MediaImage, URL: first, Count: photos}
}

// extendedEntityMedia works off the raw tweet's extended media entries,
// video first via the same MP4/bitrate rule, else the first image URL.
func extendedEntityMedia(ctx resolveContext) *models.ResolvedMedia {
	ee := ctx.tweet.ExtendedEntities
	if ee == nil || len(ee.Media) == 0 {
		return nil
	}
	var variants []models.VideoVariant
	for _, em := range ee.Media {
		if (em.Type == "video" || em.Type == "animated_gif") && em.VideoInfo != nil {
			variants = append(variants, em.VideoInfo.Variants...)
		}
	}
	if src := pickBestMP4(variants); src != "" {
		m := ctx.r.downloadVideo(ctx.tweet.ID, src, fmt.Sprintf("video_%s.mp4", ctx.tweet.ID), "")
		if m != nil {
			m.Count = len(ee.Media)
			return m
		}
		// Download failed; fall through to the image entries below.
	}
	for _, em := range ee.Media {
		if em.MediaURLHTTPS != "" {
			return &models.ResolvedMedia{Kind: models.MediaImage, URL: em.MediaURLHTTPS, Count: len(ee.Media)}
		}
	}
	return nil
}

// plainEntityMedia uses the legacy entities.media list.
func plainEntityMedia(ctx resolveContext) *models.ResolvedMedia {
	e := ctx.tweet.Entities
	if e == nil {
		return nil
	}
	for _, em := range e.Media {
		if em.MediaURLHTTPS != "" {
			return &models.ResolvedMedia{Kind: models.MediaImage, URL: em.MediaURLHTTPS, Count: len(e.Media)}
		}
	}
	return nil
}

// entityURLImages uses preview images embedded in URL entities.
func entityURLImages(ctx resolveContext) *models.ResolvedMedia {
	e := ctx.tweet.Entities
	if e == nil {
		return nil
	}
	for _, u := range e.URLs {
		if len(u.Images) > 0 {
			return &models.ResolvedMedia{Kind: models.MediaImage, URL: u.Images[0].URL, Count: len(u.Images)}
		}
	}
	return nil
}

// photoLinkURLs detects URL entities that point at a photo page. The page
// URL is not an image asset, so only a marker is attached.
func photoLinkURLs(ctx resolveContext) *models.ResolvedMedia {
	e := ctx.tweet.Entities
	if e == nil {
		return nil
	}
	for _, u := range e.URLs {
		if strings.Contains(u.DisplayURL, "pic.twitter.com") ||
			strings.Contains(u.DisplayURL, "pic.x.com") ||
			strings.Contains(u.ExpandedURL, "/photo/") {
			return &models.ResolvedMedia{Kind: models.MediaMarker, Note: "tweet links to a photo"}
		}
	}
	return nil
}

// mediaKeyMarker notes that media exists when only opaque keys are present.
func mediaKeyMarker(ctx resolveContext) *models.ResolvedMedia {
	a := ctx.tweet.Attachments
	if a == nil || len(a.MediaKeys) == 0 {
		return nil
	}
	return &models.ResolvedMedia{Kind: models.MediaMarker, Note: "media attachment present", Count: len(a.MediaKeys)}
}

// downloadVideo wraps downloadToLocal, translating a failed download into
// "no video" so the cascade continues instead of aborting the tweet.
func (r *Resolver) downloadVideo(tweetID, src, filename, note string) *models.ResolvedMedia {
	path, err := r.downloadToLocal(src, filename)
	if err != nil {
		log.Printf("video download for tweet %s failed, falling back to images: %v", tweetID, err)
		return nil
	}
	return &models.ResolvedMedia{
		Kind:      models.MediaVideo,
		LocalPath: path,
		Filename:  filename,
		Count:     1,
		Note:      note,
	}
}

// pickMP4Variant returns the first variant whose type or URL suffix
// denotes MP4.
func pickMP4Variant(variants []models.DetailVariant) string {
	for _, v := range variants {
		if v.Type == mp4ContentType || strings.Contains(v.Src, ".mp4") {
			return v.Src
		}
	}
	return ""
}

// pickBestMP4 filters variants to MP4 content type and returns the URL
// with the highest bitrate. An absent bitrate counts as zero.
func pickBestMP4(variants []models.VideoVariant) string {
	best := ""
	bestBitrate := -1
	for _, v := range variants {
		if v.ContentType != mp4ContentType {
			continue
		}
		if v.Bitrate > bestBitrate {
			best = v.URL
			bestBitrate = v.Bitrate
		}
	}
	return best
}
