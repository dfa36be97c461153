// Package discord owns the gateway session and dispatches prefixed chat
// commands to their registered handlers.
package discord

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/vuxmai/salary-in-discord/internal/discord/handlers"
)

// Bot wraps the Discord session and the command registry. It is
// constructed with its collaborators at startup; lifecycle is owned by the
// process entry point.
type Bot struct {
	session  *discordgo.Session
	prefix   string
	registry map[string]CommandDefinition
}

// New creates the Discord session and registers all salary commands.
func New(token, prefix string, h *handlers.Handlers) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	b := &Bot{
		session:  session,
		prefix:   prefix,
		registry: make(map[string]CommandDefinition),
	}
	b.registerCommands(h)

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentMessageContent

	// Register the message handler
	session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		b.processCommand(s, m)
	})

	return b, nil
}

// Open opens the gateway connection to Discord.
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("error opening connection to Discord: %w", err)
	}
	log.Println("Connected to Discord successfully")
	return nil
}

// Close closes the Discord session
func (b *Bot) Close() {
	if b.session != nil {
		b.session.Close()
	}
}

// Session returns the underlying Discord session
func (b *Bot) Session() *discordgo.Session {
	return b.session
}
