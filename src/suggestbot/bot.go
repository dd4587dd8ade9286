package suggestbot

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/kalexmills/prefix-suggest/src/suggestbot/db"
)

const DefaultPrefix = "!suggest"

type Config struct {
	Token          string
	DBPath         string
	Prefix         string
	MaxSuggestions int
	DefaultFlags   db.ConfigFlag
	InvalidReact   string

	Debug bool
}

func (c Config) String() string {
	return fmt.Sprintf("\tPrefix: %s\n\tMaxSuggestions: %d\n\tDefaultFlags: %v\n\tDBPath: %s\n",
		c.Prefix, c.MaxSuggestions, c.DefaultFlags, c.DBPath)
}

type SuggestBot struct {
	session *discordgo.Session
	db      *sql.DB
	index   Querier

	config Config
}

// NewSuggestBot creates a bot answering from index. Discord handlers run concurrently, so index must be safe for
// concurrent use.
func NewSuggestBot(config Config, index Querier) *SuggestBot {
	if config.Prefix == "" {
		config.Prefix = DefaultPrefix
	}
	log.Printf("Suggest Bot Config:\n%v", config)
	return &SuggestBot{
		config: config,
		index:  index,
	}
}

func (b *SuggestBot) Open() error {
	var err error
	b.db, err = db.Open(b.config.DBPath)
	if err != nil {
		log.Println("error opening settings database,", err)
		return err
	}

	b.session, err = discordgo.New("Bot " + b.config.Token)
	if err != nil {
		log.Println("error creating Discord session,", err)
		return err
	}

	if b.config.Debug {
		b.session.LogLevel = discordgo.LogDebug
	}

	b.session.AddHandler(b.ReceiveNewMessage)

	b.session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages |
		discordgo.IntentsGuildMessageReactions | discordgo.IntentsDirectMessageReactions

	err = b.session.Open()
	if err != nil {
		log.Println("error opening connection,", err)
		return err
	}
	return nil
}

func (b *SuggestBot) Close() error {
	var sessionErr error
	if b.session != nil {
		sessionErr = b.session.Close()
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			log.Println("error closing settings database,", err)
		}
	}
	return sessionErr
}

func (b *SuggestBot) ReceiveNewMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("recovered from panic on content %q: %v\n%s", m.Content, r, debug.Stack())
		}
	}()
	if m.Author == nil || m.Author.Bot {
		return
	}
	args, ok := b.stripPrefix(m.Content)
	if !ok {
		return
	}
	if rest, isAdmin := stripWord(args, "admin"); isAdmin {
		b.HandleAdminCommand(s, m.Message, rest)
		return
	}
	b.HandleSuggest(s, m.Message, args)
}

func (b *SuggestBot) HandleSuggest(s *discordgo.Session, m *discordgo.Message, args string) {
	settings, err := b.settings(m)
	if err != nil {
		log.Println("could not look up settings,", err)
		return
	}
	resp := Answer(b.index, args, settings.Flags, settings.MaxSuggestions)
	if resp.React && b.config.InvalidReact != "" {
		b.react(s, m, b.config.InvalidReact)
	}
	if resp.Reply == "" {
		return
	}
	_, err = s.ChannelMessageSendReply(m.ChannelID, resp.Reply, reference(m))
	if err != nil {
		log.Println("could not send suggestions,", err)
	}
}

// settings returns the enabled features and the suggestion limit for the channel m was sent to. Direct messages
// always use the configured defaults.
func (b *SuggestBot) settings(m *discordgo.Message) (db.Settings, error) {
	if m.GuildID == "" {
		return db.Settings{Flags: b.config.DefaultFlags, MaxSuggestions: b.config.MaxSuggestions}, nil
	}
	gid, err := strconv.Atoi(m.GuildID)
	if err != nil {
		return db.Settings{}, fmt.Errorf("could not parse guildID %s as integer: %w", m.GuildID, err)
	}
	cid, err := strconv.Atoi(m.ChannelID)
	if err != nil {
		return db.Settings{}, fmt.Errorf("could not parse channelID %s as integer: %w", m.ChannelID, err)
	}
	return db.LookupSettings(context.Background(), b.db, gid, cid, b.config.DefaultFlags, b.config.MaxSuggestions)
}

func (b *SuggestBot) stripPrefix(content string) (string, bool) {
	return stripWord(strings.TrimSpace(content), b.config.Prefix)
}

// stripWord removes word from the start of s if s is exactly word or starts with word followed by whitespace.
func stripWord(s string, word string) (string, bool) {
	if !strings.HasPrefix(s, word) {
		return "", false
	}
	rest := s[len(word):]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' && rest[0] != '\n' {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

func (b *SuggestBot) react(s *discordgo.Session, m *discordgo.Message, reaction string) {
	err := s.MessageReactionAdd(m.ChannelID, m.ID, reaction)
	if err != nil {
		log.Println("could not add emoji reaction,", err)
		return
	}
}

func reference(m *discordgo.Message) *discordgo.MessageReference {
	return &discordgo.MessageReference{
		MessageID: m.ID,
		ChannelID: m.ChannelID,
		GuildID:   m.GuildID,
	}
}
