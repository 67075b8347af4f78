package bot

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"

	"tweet-relay-bot/config"
	"tweet-relay-bot/database"
	"tweet-relay-bot/fetcher"
	"tweet-relay-bot/media"
	"tweet-relay-bot/poller"
	"tweet-relay-bot/state"
	"tweet-relay-bot/utils"
)

// Bot encapsulates the bot's state.
type Bot struct {
	Session  *discordgo.Session
	Poller   *poller.Poller
	Resolver *media.Resolver
	Archive  *sql.DB
}

// NewBot creates and initializes a new Bot instance. Configuration and
// token problems are reported here so the process can exit nonzero.
func NewBot() (*Bot, error) {
	config.LoadConfig()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	token := viper.GetString("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("no bot token provided")
	}

	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsGuilds

	return &Bot{Session: dg}, nil
}

// channelPublisher adapts the Discord session to the poll loop's sink.
type channelPublisher struct {
	session *discordgo.Session
}

func (p channelPublisher) SendMessage(channelID string, msg *discordgo.MessageSend) error {
	_, err := p.session.ChannelMessageSendComplex(channelID, msg)
	return err
}

func (p channelPublisher) SendFile(channelID, filename string, r io.Reader) error {
	_, err := p.session.ChannelFileSend(channelID, filename, r)
	return err
}

// Start opens the bot's session and wires the polling pipeline.
func (b *Bot) Start(registerHandlers func(*Bot), commands []*discordgo.ApplicationCommand) error {
	registerHandlers(b)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	utils.InitLogger(b.Session)

	// Fail fast on an inaccessible target channel.
	channelID := viper.GetString("bot.channelId")
	if _, err := b.Session.Channel(channelID); err != nil {
		return fmt.Errorf("cannot access channel %s: %w", channelID, err)
	}

	// Register slash commands
	for _, def := range commands {
		if _, err := b.Session.ApplicationCommandCreate(b.Session.State.User.ID, "", def); err != nil {
			log.Printf("Cannot create '%v' command: %v", def.Name, err)
		}
	}

	// The archive is best-effort: a failure disables it, never startup.
	var archiver poller.Archiver
	if db, err := database.InitDB(viper.GetString("archive.dbPath")); err != nil {
		log.Printf("Archive disabled: %v", err)
	} else {
		b.Archive = db
		archiver = &database.Archive{DB: db}
	}

	feed := fetcher.New(viper.GetString("feed.url"))
	b.Resolver = media.NewResolver(viper.GetString("media.cacheDir"))
	store := state.NewStore(viper.GetString("state.seenFile"), viper.GetString("state.cycleFile"))
	b.Poller = poller.New(feed, b.Resolver, channelPublisher{b.Session}, store, archiver, channelID, config.PollInterval())

	startScheduler(b.Resolver, b.Archive)
	b.Poller.Start()

	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop gracefully shuts the bot down.
func (b *Bot) Stop() {
	stopScheduler()
	if b.Poller != nil {
		b.Poller.Stop()
	}
	if b.Archive != nil {
		b.Archive.Close()
	}
	if b.Session != nil {
		b.Session.Close()
	}
	fmt.Println("Bot stopped gracefully.")
}

// Run is the main entry point for the bot application.
func Run(registerHandlers func(*Bot), commands []*discordgo.ApplicationCommand) {
	bot, err := NewBot()
	if err != nil {
		log.Fatalf("Error initializing bot: %v", err)
	}

	if err := bot.Start(registerHandlers, commands); err != nil {
		log.Fatalf("Error starting bot: %v", err)
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	bot.Stop()
}
