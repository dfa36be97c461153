package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/vuxmai/salary-in-discord/internal/models"
	"github.com/vuxmai/salary-in-discord/internal/policy"
)

// HandleCredit handles the !credit (!a) command: add an amount to a user's
// salary for a reporting period.
func (h *Handlers) HandleCredit(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	h.handleAdjustment(s, m, args, policy.OpCredit)
}

// HandleDebit handles the !debit (!m) command: subtract an amount from a
// user's salary for a reporting period.
func (h *Handlers) HandleDebit(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	h.handleAdjustment(s, m, args, policy.OpDebit)
}

func (h *Handlers) handleAdjustment(s *discordgo.Session, m *discordgo.MessageCreate, args []string, op policy.Operation) {
	if !h.allow(s, m, op) {
		return
	}

	if len(args) < 3 {
		SendErrorMessage(s, m.ChannelID, fmt.Sprintf("Invalid format. Use `%s @user <amount> [period]`", args[0]))
		return
	}
	targetID, ok := parseTargetUser(args[1])
	if !ok {
		SendErrorMessage(s, m.ChannelID, fmt.Sprintf("Invalid format. Use `%s @user <amount> [period]`", args[0]))
		return
	}
	amount, ok := parseAmount(args[2])
	if !ok {
		SendErrorMessage(s, m.ChannelID, fmt.Sprintf("`%s` is not a valid amount", args[2]))
		return
	}
	period := parsePeriod(args[3:])

	operation := models.OperationCredit
	delta := amount
	if op == policy.OpDebit {
		operation = models.OperationDebit
		delta = -amount
	}

	newBalance, err := h.svc.ApplyAdjustment(context.Background(), targetID, delta, operation, m.Author.ID, period)
	if err != nil {
		log.Printf("Failed to apply %s of %.2f to %s by %s: %v", operation, amount, targetID, m.Author.ID, err)
		SendErrorMessage(s, m.ChannelID, "Could not update the salary, please try again later")
		return
	}

	oldBalance := newBalance - delta
	s.ChannelMessageSend(m.ChannelID, h.msg.Adjusted(mention(targetID), period, newBalance, oldBalance))

	// Private notification is best effort; a closed DM must not fail the command.
	if err := SendDirectMessage(s, targetID, h.msg.AdjustedDM(operation, period, delta, newBalance)); err != nil {
		log.Printf("Could not notify %s about %s: %v", targetID, operation, err)
	}
}

// HandleReset handles the !reset command: delete a user's account and its
// entire salary history.
func (h *Handlers) HandleReset(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !h.allow(s, m, policy.OpReset) {
		return
	}

	if len(args) < 2 {
		SendErrorMessage(s, m.ChannelID, "Invalid format. Use `"+args[0]+" @user`")
		return
	}
	targetID, ok := parseTargetUser(args[1])
	if !ok {
		SendErrorMessage(s, m.ChannelID, "Invalid format. Use `"+args[0]+" @user`")
		return
	}

	if err := h.svc.ResetAccount(context.Background(), targetID); err != nil {
		log.Printf("Failed to reset salary of %s by %s: %v", targetID, m.Author.ID, err)
		SendErrorMessage(s, m.ChannelID, "Could not reset the salary, please try again later")
		return
	}

	s.ChannelMessageSend(m.ChannelID, h.msg.ResetChannel(mention(targetID)))

	if err := SendDirectMessage(s, targetID, h.msg.ResetDM()); err != nil {
		log.Printf("Could not notify %s about reset: %v", targetID, err)
	}
}

// HandleUndo handles the !undo command: revert the most recent salary
// change recorded for the given period.
func (h *Handlers) HandleUndo(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !h.allow(s, m, policy.OpUndo) {
		return
	}

	if len(args) < 2 {
		SendErrorMessage(s, m.ChannelID, "Invalid format. Use `"+args[0]+" @user [period]`")
		return
	}
	targetID, ok := parseTargetUser(args[1])
	if !ok {
		SendErrorMessage(s, m.ChannelID, "Invalid format. Use `"+args[0]+" @user [period]`")
		return
	}
	period := parsePeriod(args[2:])

	undone, err := h.svc.UndoLatest(context.Background(), targetID, period)
	if err != nil {
		log.Printf("Failed to undo salary change of %s by %s: %v", targetID, m.Author.ID, err)
		SendErrorMessage(s, m.ChannelID, "Could not undo the last change, please try again later")
		return
	}

	if undone == nil {
		s.ChannelMessageSend(m.ChannelID, h.msg.NothingToUndo(mention(targetID)))
		return
	}
	s.ChannelMessageSend(m.ChannelID, h.msg.UndoDone(mention(targetID)))
}

// HandleView handles the !view command: DM the target user their salary
// history and acknowledge in the channel.
func (h *Handlers) HandleView(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !h.allow(s, m, policy.OpView) {
		return
	}

	if len(args) < 2 {
		SendErrorMessage(s, m.ChannelID, "Invalid format. Use `"+args[0]+" @user`")
		return
	}
	targetID, ok := parseTargetUser(args[1])
	if !ok {
		SendErrorMessage(s, m.ChannelID, "Invalid format. Use `"+args[0]+" @user`")
		return
	}

	h.sendHistory(s, m, targetID, false)
}

// HandleMyHistory handles the !me (!p) command: the self-view variant. It
// always targets the invoking author, ignoring any supplied target.
func (h *Handlers) HandleMyHistory(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !h.allow(s, m, policy.OpView) {
		return
	}

	h.sendHistory(s, m, m.Author.ID, true)
}

func (h *Handlers) sendHistory(s *discordgo.Session, m *discordgo.MessageCreate, targetID string, self bool) {
	entries, err := h.svc.History(context.Background(), targetID, "")
	if err != nil {
		log.Printf("Failed to load salary history of %s: %v", targetID, err)
		SendErrorMessage(s, m.ChannelID, "Could not load the salary history, please try again later")
		return
	}

	if len(entries) == 0 {
		s.ChannelMessageSend(m.ChannelID, h.msg.NoHistory(mention(targetID)))
		return
	}

	if err := SendDirectMessage(s, targetID, h.msg.History(mention(targetID), entries)); err != nil {
		log.Printf("Could not DM salary history to %s: %v", targetID, err)
	}

	if self {
		s.ChannelMessageSend(m.ChannelID, h.msg.HistorySentSelf())
		return
	}
	s.ChannelMessageSend(m.ChannelID, h.msg.HistorySent(mention(targetID)))
}

// allow runs the access policy for the invoking actor. Refusals are silent
// to the channel, matching the reference behavior, but always logged.
func (h *Handlers) allow(s *discordgo.Session, m *discordgo.MessageCreate, op policy.Operation) bool {
	actor := actorFromMessage(s, m)
	if h.policy.Allow(actor, op) {
		return true
	}
	log.Printf("Access denied: user %s may not run %s in channel %s", m.Author.ID, op, m.ChannelID)
	return false
}
