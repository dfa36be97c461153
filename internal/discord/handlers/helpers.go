package handlers

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/vuxmai/salary-in-discord/internal/messages"
	"github.com/vuxmai/salary-in-discord/internal/policy"
)

var userMentionRegex = regexp.MustCompile(`<@!?(\d+)>`)

// SendDirectMessage sends a direct message to a user
func SendDirectMessage(s *discordgo.Session, userID, message string) error {
	// Create a DM channel with the user
	channel, err := s.UserChannelCreate(userID)
	if err != nil {
		log.Printf("Could not create DM channel with %s: %v", userID, err)
		return err
	}

	// Send the message
	_, err = s.ChannelMessageSend(channel.ID, message)
	if err != nil {
		log.Printf("Failed to send DM to %s: %v", userID, err)
		return err
	}

	return nil
}

// SendErrorMessage sends a warning message to the specified Discord channel
func SendErrorMessage(s *discordgo.Session, channelID, message string) {
	log.Printf("ERROR to user (Channel: %s): %s", channelID, message)
	_, err := s.ChannelMessageSend(channelID, fmt.Sprintf(":warning: **%s**", message))
	if err != nil {
		log.Printf("Failed to send error message to Discord: %v", err)
	}
}

// parseTargetUser extracts the mentioned user's ID from a command argument.
func parseTargetUser(arg string) (string, bool) {
	match := userMentionRegex.FindStringSubmatch(arg)
	if len(match) < 2 {
		return "", false
	}
	return match[1], true
}

// parseAmount parses the salary amount argument.
func parseAmount(arg string) (float64, bool) {
	amount, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

// parsePeriod joins the trailing arguments into a period label, defaulting
// to the current timestamp when none was supplied.
func parsePeriod(args []string) string {
	if len(args) == 0 {
		return time.Now().Format(messages.PeriodLayout)
	}
	return strings.Join(args, " ")
}

// actorFromMessage builds the policy Actor for the invoking user: guild
// roles from the message member, effective permissions from the channel.
func actorFromMessage(s *discordgo.Session, m *discordgo.MessageCreate) policy.Actor {
	actor := policy.Actor{ID: m.Author.ID}
	if m.Member != nil {
		actor.RoleIDs = m.Member.Roles
	}

	perms, err := s.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil {
		log.Printf("Could not resolve channel permissions for %s: %v", m.Author.ID, err)
	} else {
		actor.Permissions = perms
	}

	return actor
}

// mention renders a user ID as a Discord mention.
func mention(userID string) string {
	return fmt.Sprintf("<@%s>", userID)
}
