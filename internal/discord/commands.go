package discord

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/vuxmai/salary-in-discord/internal/discord/handlers"
)

// registerCommands registers all salary commands against the injected
// handler set.
func (b *Bot) registerCommands(h *handlers.Handlers) {
	b.registerCommand(CommandDefinition{
		Name:        "credit",
		Aliases:     []string{"a"},
		Description: "Add an amount to a user's salary for a reporting period",
		Usage:       b.prefix + "credit @user <amount> [period]",
		Examples: []string{
			b.prefix + "credit @user 50",
			b.prefix + "credit @user 50 2024-01-01 00:00:00",
		},
		Handler: h.HandleCredit,
	})

	b.registerCommand(CommandDefinition{
		Name:        "debit",
		Aliases:     []string{"m"},
		Description: "Subtract an amount from a user's salary for a reporting period",
		Usage:       b.prefix + "debit @user <amount> [period]",
		Examples: []string{
			b.prefix + "debit @user 10",
			b.prefix + "debit @user 10 2024-01-01 00:00:00",
		},
		Handler: h.HandleDebit,
	})

	b.registerCommand(CommandDefinition{
		Name:        "reset",
		Description: "Delete a user's salary and entire salary history",
		Usage:       b.prefix + "reset @user",
		Examples: []string{
			b.prefix + "reset @user",
		},
		Handler: h.HandleReset,
	})

	b.registerCommand(CommandDefinition{
		Name:        "undo",
		Description: "Revert the most recent salary change for a period",
		Usage:       b.prefix + "undo @user [period]",
		Examples: []string{
			b.prefix + "undo @user",
			b.prefix + "undo @user 2024-01-01 00:00:00",
		},
		Handler: h.HandleUndo,
	})

	b.registerCommand(CommandDefinition{
		Name:        "view",
		Description: "Send a user their salary history privately",
		Usage:       b.prefix + "view @user",
		Examples: []string{
			b.prefix + "view @user",
		},
		Handler: h.HandleView,
	})

	b.registerCommand(CommandDefinition{
		Name:        "me",
		Aliases:     []string{"p"},
		Description: "Receive your own salary history privately",
		Usage:       b.prefix + "me",
		Examples: []string{
			b.prefix + "me",
		},
		Handler: h.HandleMyHistory,
	})

	b.registerCommand(CommandDefinition{
		Name:        "help",
		Description: "Show the available commands",
		Usage:       b.prefix + "help",
		Handler:     b.handleHelp,
	})
}

// handleHelp lists every registered command with its usage.
func (b *Bot) handleHelp(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	seen := make(map[string]bool)
	var names []string
	for _, cmd := range b.registry {
		if !seen[cmd.Name] {
			seen[cmd.Name] = true
			names = append(names, cmd.Name)
		}
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("**Commands:**\n")
	for _, name := range names {
		cmd := b.registry[name]
		sb.WriteString(fmt.Sprintf("- `%s` - %s\n", cmd.Usage, cmd.Description))
		if len(cmd.Aliases) > 0 {
			sb.WriteString(fmt.Sprintf("  (alias: `%s%s`)\n", b.prefix, strings.Join(cmd.Aliases, "`, `"+b.prefix)))
		}
	}

	s.ChannelMessageSend(m.ChannelID, sb.String())
}
