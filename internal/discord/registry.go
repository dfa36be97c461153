package discord

import (
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// CommandHandler defines the function signature for command handlers
type CommandHandler func(s *discordgo.Session, m *discordgo.MessageCreate, args []string)

// CommandDefinition holds information about a command
type CommandDefinition struct {
	Name        string
	Aliases     []string
	Description string
	Usage       string
	Examples    []string
	Handler     CommandHandler
}

// registerCommand adds a command and its aliases to the bot's registry
func (b *Bot) registerCommand(cmd CommandDefinition) {
	b.registry[strings.ToLower(cmd.Name)] = cmd
	for _, alias := range cmd.Aliases {
		b.registry[strings.ToLower(alias)] = cmd
	}
}

// getCommand retrieves a command from the registry
func (b *Bot) getCommand(name string) (CommandDefinition, bool) {
	cmd, exists := b.registry[strings.ToLower(name)]
	return cmd, exists
}

// processCommand routes a message to the appropriate command handler
func (b *Bot) processCommand(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Skip messages from the bot itself
	if m.Author.ID == s.State.User.ID {
		return
	}

	// Parse the message
	content := strings.TrimSpace(m.Content)
	args := strings.Fields(content)
	if len(args) == 0 {
		return
	}

	// Extract the command name (remove the configured prefix)
	commandName := strings.ToLower(args[0])
	if !strings.HasPrefix(commandName, b.prefix) {
		return
	}
	commandName = strings.TrimPrefix(commandName, b.prefix)

	// Route to the registered command handler
	if cmd, exists := b.getCommand(commandName); exists {
		go cmd.Handler(s, m, args)
		return
	}

	// If no registered command found, log it for debugging
	log.Printf("Unrecognized command: %s", commandName)
}
