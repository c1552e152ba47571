package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// commandTimeout bounds the store and catalog work behind one chat command.
const commandTimeout = 10 * time.Second

type command int

const (
	cmdNone command = iota
	cmdAlbumNext
	cmdAlbumCurrent
	cmdReviewerNext
	cmdReviewerReset
)

// parseCommand maps message content to a command. Content must start with
// the prefix; anything unrecognized is cmdNone.
func parseCommand(prefix, content string) command {
	if !strings.HasPrefix(content, prefix) {
		return cmdNone
	}

	fields := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(fields) < 2 {
		return cmdNone
	}

	switch fields[0] {
	case "album":
		switch fields[1] {
		case "next":
			return cmdAlbumNext
		case "current":
			return cmdAlbumCurrent
		}
	case "reviewer":
		switch fields[1] {
		case "next":
			return cmdReviewerNext
		case "reset":
			return cmdReviewerReset
		}
	}

	return cmdNone
}

// Bot is the Discord gateway connection serving the club's commands.
type Bot struct {
	session *discordgo.Session
	app     *App
	prefix  string
	logger  zerolog.Logger
}

// New creates a Bot over a gateway session. The session is not opened yet;
// call Open.
func New(token, prefix string, app *App, logger zerolog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	// Reading command text requires the message-content privileged intent.
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	b := &Bot{
		session: session,
		app:     app,
		prefix:  prefix,
		logger:  logger.With().Str("component", "discord").Logger(),
	}
	session.AddHandler(b.onMessage)

	return b, nil
}

// Open connects to the gateway and starts serving commands.
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	b.logger.Info().Str("prefix", b.prefix).Msg("Connected to Discord")
	return nil
}

// Close disconnects from the gateway.
func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	cmd := parseCommand(b.prefix, m.Content)
	if cmd == cmdNone {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	var reply string
	switch cmd {
	case cmdAlbumNext:
		reply = b.app.NextAlbum()
	case cmdAlbumCurrent:
		reply = b.app.CurrentAlbum(ctx)
	case cmdReviewerNext:
		reply = b.app.NextReviewer(ctx)
	case cmdReviewerReset:
		reply = b.app.ResetReviewers(ctx)
	}

	if _, err := s.ChannelMessageSend(m.ChannelID, reply); err != nil {
		b.logger.Error().Err(err).
			Str("channel", m.ChannelID).
			Msg("Failed to send reply")
	}
}
