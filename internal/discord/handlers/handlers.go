// Package handlers implements the salary bot's chat commands. Each handler
// parses its arguments, gates the invoking actor through the access policy,
// calls the balance service and reports the result back to the channel
// (and, for most commands, privately to the target user).
package handlers

import (
	"github.com/vuxmai/salary-in-discord/internal/ledger"
	"github.com/vuxmai/salary-in-discord/internal/messages"
	"github.com/vuxmai/salary-in-discord/internal/policy"
)

// Handlers holds the collaborators the command handlers run against. It is
// constructed once at startup and injected into the command registry; there
// is no ambient global state.
type Handlers struct {
	svc    *ledger.Service
	policy *policy.Policy
	msg    *messages.Formatter
}

// New wires the command handlers to their collaborators.
func New(svc *ledger.Service, pol *policy.Policy, msg *messages.Formatter) *Handlers {
	return &Handlers{
		svc:    svc,
		policy: pol,
		msg:    msg,
	}
}
