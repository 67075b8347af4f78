package poller

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/bwmarrin/discordgo"

	"tweet-relay-bot/composer"
	"tweet-relay-bot/media"
	"tweet-relay-bot/models"
	"tweet-relay-bot/state"
	"tweet-relay-bot/utils"
)

// defaultCleanupDelay is how long a posted video file lingers in the
// cache before the deferred removal fires.
const defaultCleanupDelay = 5 * time.Second

// Feed is the slice of the feed client the poll loop needs.
type Feed interface {
	FetchBatch() ([]models.Tweet, error)
	FetchDetail(id string) (*models.TweetDetail, error)
}

// Resolver turns a tweet (and its optional detail record) into media.
type Resolver interface {
	Resolve(t models.Tweet, detail *models.TweetDetail) models.ResolvedMedia
}

// Publisher is the opaque message sink. The only ordering the loop relies
// on is issuing the file message strictly after the embed message.
type Publisher interface {
	SendMessage(channelID string, msg *discordgo.MessageSend) error
	SendFile(channelID, filename string, r io.Reader) error
}

// Archiver records a republished tweet; failures are logged, never fatal.
type Archiver interface {
	Record(t models.Tweet, m models.ResolvedMedia) error
}

// Poller runs the fetch → filter → resolve → compose → publish → persist
// cycle on a fixed interval. Cycles are scheduled by wall clock from cycle
// start; an overrunning cycle may overlap the next one, and SeenSet access
// is deliberately unsynchronized under that rare overlap.
type Poller struct {
	feed      Feed
	resolver  Resolver
	publisher Publisher
	store     *state.Store
	archive   Archiver
	channelID string
	interval  time.Duration

	seen      models.SeenSet
	lastFetch *time.Time

	stop         chan struct{}
	now          func() time.Time
	cleanupDelay time.Duration
}

// New creates a poller and loads persisted state from the store.
func New(feed Feed, resolver Resolver, publisher Publisher, store *state.Store, archive Archiver, channelID string, interval time.Duration) *Poller {
	seen, last := store.Load()
	return &Poller{
		feed:         feed,
		resolver:     resolver,
		publisher:    publisher,
		store:        store,
		archive:      archive,
		channelID:    channelID,
		interval:     interval,
		seen:         seen,
		lastFetch:    last,
		now:          time.Now,
		cleanupDelay: defaultCleanupDelay,
	}
}

// Start launches the polling loop. The first cycle runs immediately;
// every subsequent tick launches its cycle in a fresh goroutine.
func (p *Poller) Start() {
	p.stop = make(chan struct{})
	log.Printf("polling feed every %v into channel %s", p.interval, p.channelID)
	go func() {
		p.RunCycle()
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				go p.RunCycle()
			case <-p.stop:
				return
			}
		}
	}()
}

// Stop halts scheduling of new cycles. In-flight cycles run to completion.
func (p *Poller) Stop() {
	if p.stop != nil {
		close(p.stop)
	}
}

// Status reports the seen-set size and the last successful fetch time.
// Reads are as unsynchronized as the rest of SeenSet access: a handler
// calling this while a cycle runs may observe a size mid-update, which
// is acceptable for an informational embed.
func (p *Poller) Status() (int, *time.Time) {
	return len(p.seen), p.lastFetch
}

// RunCycle executes one full pass. An error in one tweet never aborts the
// cycle or affects other tweets.
func (p *Poller) RunCycle() {
	tweets, err := p.feed.FetchBatch()
	if err != nil {
		log.Printf("feed fetch failed, skipping cycle: %v", err)
		utils.Error("poller", "FetchBatch", err.Error())
		return
	}
	now := p.now()

	if p.lastFetch == nil {
		// First-ever run: mark everything currently visible as seen and
		// publish nothing. This establishes the baseline.
		for _, t := range tweets {
			p.seen[t.ID] = true
		}
		p.lastFetch = &now
		if err := p.store.Save(p.seen, p.lastFetch); err != nil {
			log.Printf("could not persist baseline state: %v", err)
		}
		log.Printf("baseline established: %d tweets marked seen", len(tweets))
		return
	}

	recent, publish := filterCycle(tweets, p.seen, now)

	// Seen markers are written and persisted before any publish side
	// effect, so a crash mid-cycle drops tweets instead of duplicating.
	for _, t := range tweets {
		p.seen[t.ID] = true
	}
	p.lastFetch = &now
	if len(recent) > 0 {
		if err := p.store.Save(p.seen, p.lastFetch); err != nil {
			log.Printf("could not persist state: %v", err)
		}
	}

	for _, t := range publish {
		if err := p.processTweet(t); err != nil {
			log.Printf("processing tweet %s failed: %v", t.ID, err)
			utils.Error("poller", "ProcessTweet", fmt.Sprintf("tweet %s: %v", t.ID, err))
		}
	}
}

func (p *Poller) processTweet(t models.Tweet) error {
	detail, err := p.feed.FetchDetail(t.ID)
	if err != nil {
		log.Printf("detail fetch for tweet %s failed, resolving from the raw tweet: %v", t.ID, err)
		detail = nil
	}

	resolved := p.resolver.Resolve(t, detail)
	msg := composer.Build(t, resolved)

	if err := p.publisher.SendMessage(p.channelID, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	if resolved.Kind == models.MediaVideo {
		if err := p.sendVideo(resolved); err != nil {
			return err
		}
	}

	if p.archive != nil {
		if err := p.archive.Record(t, resolved); err != nil {
			log.Printf("could not archive tweet %s: %v", t.ID, err)
		}
	}
	return nil
}

// sendVideo posts the downloaded file as a follow-up message. Cleanup of
// the cached file is scheduled whether or not the send succeeds.
func (p *Poller) sendVideo(resolved models.ResolvedMedia) error {
	defer media.CleanupAfter(resolved.LocalPath, p.cleanupDelay)

	f, err := os.Open(resolved.LocalPath)
	if err != nil {
		return fmt.Errorf("open downloaded video: %w", err)
	}
	defer f.Close()

	if err := p.publisher.SendFile(p.channelID, resolved.Filename, f); err != nil {
		return fmt.Errorf("send video file: %w", err)
	}
	return nil
}
